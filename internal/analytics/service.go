package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/farmbazaar/farmbazaar/internal/farmers"
	"github.com/farmbazaar/farmbazaar/internal/marketrates"
	"github.com/farmbazaar/farmbazaar/internal/retailers"
)

// PDFRenderer turns an HTML document into PDF bytes.
type PDFRenderer interface {
	RenderHTML(ctx context.Context, html string) ([]byte, error)
}

// Service recomputes every report from the stored purchase and product rows
// on demand. The market-rate table is an injected read-only dependency.
type Service struct {
	repo         Repository
	farmerRepo   farmers.Repository
	retailerRepo retailers.Repository
	rates        *marketrates.Table
	pdf          PDFRenderer
}

// NewService builds Service.
func NewService(repo Repository, farmerRepo farmers.Repository, retailerRepo retailers.Repository, rates *marketrates.Table, pdf PDFRenderer) *Service {
	return &Service{
		repo:         repo,
		farmerRepo:   farmerRepo,
		retailerRepo: retailerRepo,
		rates:        rates,
		pdf:          pdf,
	}
}

const dateLayout = "2006-01-02"

// ProductHistory lists every product the farmer has listed, with dates.
func (s *Service) ProductHistory(ctx context.Context, farmerID int64) ([]ProductHistoryEntry, error) {
	if _, err := s.farmerRepo.Get(ctx, farmerID); err != nil {
		return nil, fmt.Errorf("verify farmer: %w", err)
	}
	products, err := s.repo.FarmerProducts(ctx, farmerID)
	if err != nil {
		return nil, err
	}
	entries := make([]ProductHistoryEntry, 0, len(products))
	for _, p := range products {
		entries = append(entries, ProductHistoryEntry{
			ProductID:   p.ID,
			Name:        p.Name,
			Category:    p.Category,
			Price:       p.Price,
			Quantity:    p.Quantity,
			InStock:     p.InStock,
			ListedDate:  p.CreatedAt.Format(time.RFC3339),
			LastUpdated: p.UpdatedAt.Format(time.RFC3339),
		})
	}
	return entries, nil
}

// FarmerTransactions lists every sale of the farmer's products, one row per
// purchase with its total. No grouping.
func (s *Service) FarmerTransactions(ctx context.Context, farmerID int64) ([]SaleRow, error) {
	if _, err := s.farmerRepo.Get(ctx, farmerID); err != nil {
		return nil, fmt.Errorf("verify farmer: %w", err)
	}
	return s.repo.FarmerSales(ctx, farmerID)
}

// FarmerSummary aggregates stock and revenue across the farmer's whole
// history. Ties for the most sold category break to the lexicographically
// smallest category name.
func (s *Service) FarmerSummary(ctx context.Context, farmerID int64) (*Summary, error) {
	if _, err := s.farmerRepo.Get(ctx, farmerID); err != nil {
		return nil, fmt.Errorf("verify farmer: %w", err)
	}
	products, err := s.repo.FarmerProducts(ctx, farmerID)
	if err != nil {
		return nil, err
	}
	sales, err := s.repo.FarmerSales(ctx, farmerID)
	if err != nil {
		return nil, err
	}

	soldByProduct := map[int64]int64{}
	summary := Summary{CategorySales: map[string]int64{}}
	for _, sale := range sales {
		soldByProduct[sale.ProductID] += sale.QuantitySold
		summary.TotalRevenue += sale.PaymentAmount
		summary.CategorySales[sale.Category] += sale.QuantitySold
	}
	for _, p := range products {
		summary.TotalPresentStock += p.Quantity
		summary.TotalListedStock += p.Quantity + soldByProduct[p.ID]
	}

	for category, units := range summary.CategorySales {
		if summary.MostSoldCategory == nil {
			c := category
			summary.MostSoldCategory = &c
			continue
		}
		top := *summary.MostSoldCategory
		if units > summary.CategorySales[top] || (units == summary.CategorySales[top] && category < top) {
			c := category
			summary.MostSoldCategory = &c
		}
	}
	return &summary, nil
}

// ProfitAnalysis compares every sale of one product against its market rate.
func (s *Service) ProfitAnalysis(ctx context.Context, farmerID int64, category, productName string) ([]ProfitRow, error) {
	if category == "" || productName == "" {
		return nil, ErrMissingQuery
	}
	farmer, err := s.farmerRepo.Get(ctx, farmerID)
	if err != nil {
		return nil, fmt.Errorf("verify farmer: %w", err)
	}
	rate, ok := s.rates.Lookup(farmer.State, category, productName)
	if !ok {
		return nil, ErrRateNotFound
	}
	sales, err := s.repo.ProductSales(ctx, farmerID, category, productName)
	if err != nil {
		return nil, err
	}
	if len(sales) == 0 {
		return nil, ErrNoTransactions
	}

	rows := make([]ProfitRow, 0, len(sales))
	for _, sale := range sales {
		rows = append(rows, ProfitRow{
			ProductName:       sale.ProductName,
			Category:          sale.Category,
			MarketRatePerUnit: rate,
			SoldPricePerUnit:  sale.UnitPrice,
			QuantitySold:      sale.QuantitySold,
			TotalSoldPrice:    sale.PaymentAmount,
			ProfitOrLoss:      sale.PaymentAmount - rate*float64(sale.QuantitySold),
			TransactionDate:   sale.SoldDate,
		})
	}
	return rows, nil
}

// RetailerPurchaseAnalysis compares every purchase a retailer made against
// market rates. A missing rate yields the "N/A" sentinel for the market
// columns, never a numeric fallback.
func (s *Service) RetailerPurchaseAnalysis(ctx context.Context, retailerID string) ([]PurchaseAnalysisRow, error) {
	if _, err := s.retailerRepo.Get(ctx, retailerID); err != nil {
		return nil, fmt.Errorf("verify retailer: %w", err)
	}
	purchases, err := s.repo.RetailerPurchases(ctx, retailerID)
	if err != nil {
		return nil, err
	}
	if len(purchases) == 0 {
		return nil, ErrNoTransactions
	}

	rows := make([]PurchaseAnalysisRow, 0, len(purchases))
	for _, pu := range purchases {
		var perUnit float64
		if pu.Quantity > 0 {
			perUnit = pu.PaymentAmount / float64(pu.Quantity)
		}
		row := PurchaseAnalysisRow{
			OrderID:              pu.OrderID,
			ProductName:          pu.ProductName,
			Category:             pu.Category,
			FarmerName:           pu.FarmerName,
			QuantityBought:       pu.Quantity,
			PurchasePricePerUnit: round2(perUnit),
			TotalPurchaseAmount:  pu.PaymentAmount,
			PurchaseDate:         pu.PurchaseDate,
		}
		if rate, ok := s.rates.Lookup(pu.FarmerState, pu.Category, pu.ProductName); ok {
			row.MarketPricePerUnit = OptionalRate{Value: rate, Valid: true}
			row.PriceDifferencePerUnit = OptionalRate{Value: perUnit - rate, Valid: true}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// TransactionReport renders the farmer's sales in [from, to] (inclusive,
// YYYY-MM-DD) as a PDF document.
func (s *Service) TransactionReport(ctx context.Context, farmerID int64, fromStr, toStr string) ([]byte, error) {
	farmer, err := s.farmerRepo.Get(ctx, farmerID)
	if err != nil {
		return nil, fmt.Errorf("verify farmer: %w", err)
	}
	if fromStr == "" || toStr == "" {
		return nil, fmt.Errorf("%w: both from_date and to_date are required", ErrInvalidDateRange)
	}
	from, err := time.Parse(dateLayout, fromStr)
	if err != nil {
		return nil, fmt.Errorf("%w: dates must be YYYY-MM-DD", ErrInvalidDateRange)
	}
	to, err := time.Parse(dateLayout, toStr)
	if err != nil {
		return nil, fmt.Errorf("%w: dates must be YYYY-MM-DD", ErrInvalidDateRange)
	}
	if from.After(to) {
		return nil, fmt.Errorf("%w: from_date cannot be later than to_date", ErrInvalidDateRange)
	}

	sales, err := s.repo.SalesBetween(ctx, farmerID, from, to.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	if len(sales) == 0 {
		return nil, ErrNoTransactions
	}

	html, err := reportHTML(farmer.FarmerName, fromStr, toStr, sales)
	if err != nil {
		return nil, fmt.Errorf("render report html: %w", err)
	}
	pdf, err := s.pdf.RenderHTML(ctx, html)
	if err != nil {
		return nil, fmt.Errorf("render report pdf: %w", err)
	}
	return pdf, nil
}
