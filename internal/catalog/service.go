package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/farmbazaar/farmbazaar/internal/farmers"
	"github.com/farmbazaar/farmbazaar/internal/retailers"
)

// Service enforces the stock invariants on every product mutation.
type Service struct {
	repo         Repository
	farmerRepo   farmers.Repository
	retailerRepo retailers.Repository
}

// NewService builds Service.
func NewService(repo Repository, farmerRepo farmers.Repository, retailerRepo retailers.Repository) *Service {
	return &Service{repo: repo, farmerRepo: farmerRepo, retailerRepo: retailerRepo}
}

// Create lists a new product. InStock is derived from the initial quantity.
func (s *Service) Create(ctx context.Context, farmerID int64, req CreateProductRequest) (*Product, error) {
	if _, err := s.farmerRepo.Get(ctx, farmerID); err != nil {
		return nil, fmt.Errorf("verify farmer: %w", err)
	}
	if req.Price < 0 {
		return nil, ErrInvalidPrice
	}
	if req.Quantity < 0 {
		return nil, ErrInvalidQuantity
	}
	p := Product{
		FarmerID: farmerID,
		Name:     strings.TrimSpace(req.Name),
		Category: strings.TrimSpace(req.Category),
		Price:    req.Price,
		Quantity: req.Quantity,
		InStock:  req.Quantity > 0,
	}
	return s.repo.Create(ctx, p)
}

// Update applies a partial update. A quantity change re-derives InStock;
// an explicit in_stock flag in the same request wins over the derived value.
func (s *Service) Update(ctx context.Context, productID, farmerID int64, req UpdateProductRequest) (*Product, error) {
	if _, err := s.farmerRepo.Get(ctx, farmerID); err != nil {
		return nil, fmt.Errorf("verify farmer: %w", err)
	}
	p, err := s.repo.GetOwned(ctx, productID, farmerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		p.Category = strings.TrimSpace(*req.Category)
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, ErrInvalidPrice
		}
		p.Price = *req.Price
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return nil, ErrInvalidQuantity
		}
		p.Quantity = *req.Quantity
		p.InStock = *req.Quantity > 0
	}
	if req.InStock != nil {
		p.InStock = *req.InStock
	}

	return s.repo.Update(ctx, *p)
}

// MarkSoldOut forces a listing out of stock regardless of quantity. Calling
// it on an already sold-out product is a no-op.
func (s *Service) MarkSoldOut(ctx context.Context, productID, farmerID int64) (*Product, error) {
	if _, err := s.farmerRepo.Get(ctx, farmerID); err != nil {
		return nil, fmt.Errorf("verify farmer: %w", err)
	}
	p, err := s.repo.GetOwned(ctx, productID, farmerID)
	if err != nil {
		return nil, err
	}
	if !p.InStock {
		return p, nil
	}
	p.InStock = false
	return s.repo.Update(ctx, *p)
}

// List returns a farmer's products, most recently updated first.
func (s *Service) List(ctx context.Context, farmerID int64, filter StatusFilter) ([]Product, error) {
	if _, err := s.farmerRepo.Get(ctx, farmerID); err != nil {
		return nil, fmt.Errorf("verify farmer: %w", err)
	}
	switch filter {
	case StatusAny, StatusActive, StatusSoldOut:
	default:
		return nil, ErrInvalidStatus
	}
	return s.repo.List(ctx, farmerID, filter)
}

// Available returns in-stock products from farmers in the retailer's state.
func (s *Service) Available(ctx context.Context, retailerID string) ([]AvailableProduct, error) {
	rt, err := s.retailerRepo.Get(ctx, retailerID)
	if err != nil {
		return nil, fmt.Errorf("verify retailer: %w", err)
	}
	return s.repo.AvailableInState(ctx, rt.State)
}
