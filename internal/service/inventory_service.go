package service

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"pharmastock/internal/expiry"
	"pharmastock/internal/model"
	"pharmastock/internal/repository"
	"pharmastock/internal/ws"
	"pharmastock/pkg/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrValidation matches every *ValidationError with errors.Is.
var ErrValidation = errors.New("validation failed")

// ValidationError lists the rules a product failed on the write path.
type ValidationError struct {
	Violations validator.Errors
}

func (e *ValidationError) Error() string { return e.Violations.Error() }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Publisher receives change notifications. *ws.Hub is the production one.
type Publisher interface {
	Publish(ev ws.Event)
}

type InventoryService interface {
	GetProducts(filter repository.ProductFilter) ([]model.Product, error)
	GetProduct(id uuid.UUID) (*model.Product, error)
	GetExpiringProducts() ([]model.Product, error)
	CreateProduct(req *model.Product) error
	UpdateProduct(id uuid.UUID, req *model.Product) (*model.Product, error)
	DeleteProduct(id uuid.UUID) error
}

type inventoryService struct {
	productRepo repository.ProductRepository
	db          *gorm.DB
	publisher   Publisher
	now         func() time.Time
}

type Option func(*inventoryService)

// WithClock replaces time.Now, which dates every days-remaining computation.
func WithClock(now func() time.Time) Option {
	return func(s *inventoryService) { s.now = now }
}

func NewInventoryService(pRepo repository.ProductRepository, db *gorm.DB, publisher Publisher, opts ...Option) InventoryService {
	s := &inventoryService{
		productRepo: pRepo,
		db:          db,
		publisher:   publisher,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func validateProduct(p *model.Product) error {
	p.Normalize()
	if errs := validator.ValidateStruct(p); len(errs) > 0 {
		return &ValidationError{Violations: errs}
	}
	return nil
}

func (s *inventoryService) GetProducts(filter repository.ProductFilter) ([]model.Product, error) {
	products, err := s.productRepo.FindAll(filter)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	expiry.Annotate(products, s.now())
	return products, nil
}

func (s *inventoryService) GetProduct(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	expiry.AnnotateProduct(product, s.now())
	return product, nil
}

// GetExpiringProducts returns the AT_RISK products, soonest first.
func (s *inventoryService) GetExpiringProducts() ([]model.Product, error) {
	products, err := s.GetProducts(repository.ProductFilter{})
	if err != nil {
		return nil, err
	}
	atRisk := expiry.FilterAtRisk(products)
	sort.SliceStable(atRisk, func(i, j int) bool {
		return *atRisk[i].DaysRemaining < *atRisk[j].DaysRemaining
	})
	return atRisk, nil
}

func (s *inventoryService) CreateProduct(req *model.Product) error {
	if err := validateProduct(req); err != nil {
		return err
	}

	// Ids are server-assigned.
	req.ID = uuid.Nil
	if err := s.productRepo.Create(req); err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	expiry.AnnotateProduct(req, s.now())

	zap.L().Info("product created", zap.String("id", req.ID.String()), zap.String("name", req.CommercialName))
	s.publish("product_created", fmt.Sprintf("Product '%s' created", req.CommercialName), req)
	return nil
}

// UpdateProduct replaces every mutable field of product id with req's.
func (s *inventoryService) UpdateProduct(id uuid.UUID, req *model.Product) (*model.Product, error) {
	if err := validateProduct(req); err != nil {
		return nil, err
	}

	var updated model.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.productRepo.WithTx(tx)
		existing, err := repo.FindByID(id)
		if err != nil {
			return err
		}
		oldStock := existing.StockQuantity

		existing.CopyMutableFields(req)
		if err := repo.Update(existing); err != nil {
			return fmt.Errorf("update product: %w", err)
		}
		if oldStock != existing.StockQuantity {
			zap.L().Info("stock changed",
				zap.String("id", id.String()),
				zap.Int("old_stock", oldStock),
				zap.Int("new_stock", existing.StockQuantity))
		}
		updated = *existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	expiry.AnnotateProduct(&updated, s.now())
	s.publish("product_updated", fmt.Sprintf("Product '%s' updated", updated.CommercialName), updated)
	return &updated, nil
}

func (s *inventoryService) DeleteProduct(id uuid.UUID) error {
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}
	zap.L().Info("product deleted", zap.String("id", id.String()))
	s.publish("product_deleted", "Product deleted", map[string]interface{}{"id": id})
	return nil
}

func (s *inventoryService) publish(action, message string, data interface{}) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(ws.Event{
		Type:    "stock_update",
		Action:  action,
		Message: message,
		Data:    data,
	})
}
