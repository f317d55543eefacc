package purchases

import (
	"context"
	"fmt"
	"time"

	"github.com/farmbazaar/farmbazaar/internal/retailers"
)

// Service records purchases. The stock check, the decrement and the purchase
// insert commit as a single transaction so two concurrent buyers can never
// overdraw the same product.
type Service struct {
	repo         Repository
	retailerRepo retailers.Repository
	now          func() time.Time
}

// NewService builds Service.
func NewService(repo Repository, retailerRepo retailers.Repository) *Service {
	return &Service{repo: repo, retailerRepo: retailerRepo, now: time.Now}
}

// Purchase buys qty units of a product for a retailer. The payment amount is
// the product's unit price at commit time multiplied by the quantity; caller
// input never sets it.
func (s *Service) Purchase(ctx context.Context, productID int64, req PurchaseRequest) (*Purchase, error) {
	if _, err := s.retailerRepo.Get(ctx, req.RetailerID); err != nil {
		return nil, fmt.Errorf("verify retailer: %w", err)
	}
	if _, err := s.repo.GetProduct(ctx, productID); err != nil {
		return nil, fmt.Errorf("verify product: %w", err)
	}
	if req.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	var purchase *Purchase
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		price, err := tx.DeductStock(ctx, productID, req.Quantity)
		if err != nil {
			return err
		}
		p, err := tx.InsertPurchase(ctx, Purchase{
			RetailerID:    req.RetailerID,
			ProductID:     productID,
			Quantity:      req.Quantity,
			PaymentType:   req.PaymentType,
			PaymentAmount: price * float64(req.Quantity),
		})
		if err != nil {
			return err
		}
		purchase = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return purchase, nil
}

// History lists every purchase a retailer has made, newest first.
func (s *Service) History(ctx context.Context, retailerID string) ([]HistoryRow, error) {
	if _, err := s.retailerRepo.Get(ctx, retailerID); err != nil {
		return nil, fmt.Errorf("verify retailer: %w", err)
	}
	rows, err := s.repo.History(ctx, retailerID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoTransactions
	}
	return rows, nil
}

// StockBoughtThisMonth lists the retailer's purchases in the current
// calendar month.
func (s *Service) StockBoughtThisMonth(ctx context.Context, retailerID string) ([]HistoryRow, error) {
	if _, err := s.retailerRepo.Get(ctx, retailerID); err != nil {
		return nil, fmt.Errorf("verify retailer: %w", err)
	}
	now := s.now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	rows, err := s.repo.HistoryBetween(ctx, retailerID, from, to)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoTransactions
	}
	return rows, nil
}
