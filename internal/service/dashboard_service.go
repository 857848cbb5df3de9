package service

import (
	"pharmastock/internal/expiry"
	"pharmastock/internal/repository"
)

type DashboardService interface {
	GetDashboardStats() (*expiry.Summary, error)
}

type dashboardService struct {
	inventory InventoryService
}

func NewDashboardService(inventory InventoryService) DashboardService {
	return &dashboardService{inventory: inventory}
}

// GetDashboardStats aggregates over the whole inventory.
func (s *dashboardService) GetDashboardStats() (*expiry.Summary, error) {
	products, err := s.inventory.GetProducts(repository.ProductFilter{})
	if err != nil {
		return nil, err
	}
	summary := expiry.Summarize(products)
	return &summary, nil
}
