package handler

import (
	"pharmastock/internal/model"
	"pharmastock/internal/repository"
	"pharmastock/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

func parseProductID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid product ID")
	}
	return id, nil
}

// GetProducts lists products, optionally filtered.
// GET /api/products?q=<text>&category=<MEDICAMENT|PARAPHARMACIE>
func (h *InventoryHandler) GetProducts(c *fiber.Ctx) error {
	category, ok := model.ParseCategory(c.Query("category"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid category")
	}

	products, err := h.service.GetProducts(repository.ProductFilter{
		Query:    c.Query("q"),
		Category: category,
	})
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// GET /api/products/:id
func (h *InventoryHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseProductID(c)
	if err != nil {
		return err
	}

	product, err := h.service.GetProduct(id)
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// GetExpiringProducts lists the products expiring within the alert window.
// GET /api/alerts/expiring
func (h *InventoryHandler) GetExpiringProducts(c *fiber.Ctx) error {
	products, err := h.service.GetExpiringProducts()
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// POST /api/products
func (h *InventoryHandler) CreateProduct(c *fiber.Ctx) error {
	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid JSON")
	}

	if err := h.service.CreateProduct(&product); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// UpdateProduct replaces the whole record.
// PUT /api/products/:id
func (h *InventoryHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseProductID(c)
	if err != nil {
		return err
	}

	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid JSON")
	}

	updated, err := h.service.UpdateProduct(id, &product)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

// DELETE /api/products/:id
func (h *InventoryHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseProductID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteProduct(id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
