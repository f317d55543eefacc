package analytics

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/farmbazaar/farmbazaar/internal/catalog"
	"github.com/farmbazaar/farmbazaar/internal/farmers"
	"github.com/farmbazaar/farmbazaar/internal/marketrates"
	"github.com/farmbazaar/farmbazaar/internal/retailers"
)

type memoryRepo struct {
	products  []catalog.Product
	sales     []SaleRow
	purchases []retailerPurchaseRow
	saleDates map[int64]time.Time
}

func (r *memoryRepo) FarmerProducts(ctx context.Context, farmerID int64) ([]catalog.Product, error) {
	var out []catalog.Product
	for _, p := range r.products {
		if p.FarmerID == farmerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memoryRepo) FarmerSales(ctx context.Context, farmerID int64) ([]SaleRow, error) {
	return r.salesWhere(farmerID, "", "", time.Time{}, time.Time{}), nil
}

func (r *memoryRepo) ProductSales(ctx context.Context, farmerID int64, category, productName string) ([]SaleRow, error) {
	return r.salesWhere(farmerID, category, productName, time.Time{}, time.Time{}), nil
}

func (r *memoryRepo) SalesBetween(ctx context.Context, farmerID int64, from, to time.Time) ([]SaleRow, error) {
	return r.salesWhere(farmerID, "", "", from, to), nil
}

func (r *memoryRepo) salesWhere(farmerID int64, category, name string, from, to time.Time) []SaleRow {
	owner := map[int64]int64{}
	for _, p := range r.products {
		owner[p.ID] = p.FarmerID
	}
	var out []SaleRow
	for _, s := range r.sales {
		if owner[s.ProductID] != farmerID {
			continue
		}
		if category != "" && s.Category != category {
			continue
		}
		if name != "" && s.ProductName != name {
			continue
		}
		if !from.IsZero() {
			at := r.saleDates[s.TransactionID]
			if at.Before(from) || !at.Before(to) {
				continue
			}
		}
		out = append(out, s)
	}
	return out
}

func (r *memoryRepo) RetailerPurchases(ctx context.Context, retailerID string) ([]retailerPurchaseRow, error) {
	return r.purchases, nil
}

type memoryFarmers struct{ known map[int64]farmers.Farmer }

func (r *memoryFarmers) Create(ctx context.Context, f farmers.Farmer) (int64, error) { return 0, nil }

func (r *memoryFarmers) Get(ctx context.Context, id int64) (*farmers.Farmer, error) {
	f, ok := r.known[id]
	if !ok {
		return nil, farmers.ErrNotFound
	}
	return &f, nil
}

func (r *memoryFarmers) FindByMobile(ctx context.Context, mobile string) (*farmers.Farmer, error) {
	return nil, farmers.ErrNotFound
}

type memoryRetailers struct{ known map[string]retailers.Retailer }

func (r *memoryRetailers) Create(ctx context.Context, rt retailers.Retailer) error { return nil }

func (r *memoryRetailers) Get(ctx context.Context, aadhaar string) (*retailers.Retailer, error) {
	rt, ok := r.known[aadhaar]
	if !ok {
		return nil, retailers.ErrNotFound
	}
	return &rt, nil
}

func (r *memoryRetailers) FindByMobile(ctx context.Context, mobile string) (*retailers.Retailer, error) {
	return nil, retailers.ErrNotFound
}

type fakePDF struct{ lastHTML string }

func (f *fakePDF) RenderHTML(ctx context.Context, html string) ([]byte, error) {
	f.lastHTML = html
	return []byte("%PDF-1.4 fake"), nil
}

const ratesFixture = `{
	"Maharashtra": {
		"products": {
			"Vegetables": {"Tomato": 12},
			"Grains": {"Wheat": 25}
		}
	}
}`

func newTestService(t *testing.T, repo *memoryRepo) (*Service, *fakePDF) {
	t.Helper()
	rates, err := marketrates.Parse([]byte(ratesFixture))
	require.NoError(t, err)
	pdf := &fakePDF{}
	svc := NewService(
		repo,
		&memoryFarmers{known: map[int64]farmers.Farmer{1: {ID: 1, FarmerName: "Ravi Patil", State: "Maharashtra"}}},
		&memoryRetailers{known: map[string]retailers.Retailer{"1111": {Aadhaar: "1111", State: "Maharashtra"}}},
		rates,
		pdf,
	)
	return svc, pdf
}

func fixtureRepo() *memoryRepo {
	listed := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	return &memoryRepo{
		products: []catalog.Product{
			{ID: 1, FarmerID: 1, Name: "Tomato", Category: "Vegetables", Price: 10, Quantity: 2, InStock: true, CreatedAt: listed, UpdatedAt: listed},
			{ID: 2, FarmerID: 1, Name: "Wheat", Category: "Grains", Price: 30, Quantity: 4, InStock: true, CreatedAt: listed, UpdatedAt: listed},
		},
		sales: []SaleRow{
			{TransactionID: 1, ProductID: 1, ProductName: "Tomato", Category: "Vegetables", UnitPrice: 10, QuantitySold: 3, PaymentType: "UPI", PaymentAmount: 30, SoldDate: "2025-05-10"},
			{TransactionID: 2, ProductID: 2, ProductName: "Wheat", Category: "Grains", UnitPrice: 30, QuantitySold: 3, PaymentType: "cash", PaymentAmount: 90, SoldDate: "2025-06-01"},
		},
		saleDates: map[int64]time.Time{
			1: time.Date(2025, 5, 10, 10, 0, 0, 0, time.UTC),
			2: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		},
	}
}

func TestFarmerSummaryStockInvariant(t *testing.T) {
	repo := fixtureRepo()
	svc, _ := newTestService(t, repo)

	summary, err := svc.FarmerSummary(context.Background(), 1)
	require.NoError(t, err)

	// present (2+4) + sold to date (3+3) == listed.
	require.EqualValues(t, 6, summary.TotalPresentStock)
	require.EqualValues(t, 12, summary.TotalListedStock)
	require.InDelta(t, 120.0, summary.TotalRevenue, 0.0001)
	require.EqualValues(t, 3, summary.CategorySales["Vegetables"])
	require.EqualValues(t, 3, summary.CategorySales["Grains"])
}

func TestFarmerSummaryTieBreaksLexicographically(t *testing.T) {
	repo := fixtureRepo()
	svc, _ := newTestService(t, repo)

	// Both categories sold 3 units; Grains < Vegetables.
	summary, err := svc.FarmerSummary(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, summary.MostSoldCategory)
	require.Equal(t, "Grains", *summary.MostSoldCategory)
}

func TestFarmerSummaryNoSales(t *testing.T) {
	repo := fixtureRepo()
	repo.sales = nil
	svc, _ := newTestService(t, repo)

	summary, err := svc.FarmerSummary(context.Background(), 1)
	require.NoError(t, err)
	require.Nil(t, summary.MostSoldCategory)
	require.EqualValues(t, 6, summary.TotalListedStock)
	require.EqualValues(t, 6, summary.TotalPresentStock)
	require.Zero(t, summary.TotalRevenue)
}

func TestProfitAnalysis(t *testing.T) {
	repo := fixtureRepo()
	svc, _ := newTestService(t, repo)
	ctx := context.Background()

	rows, err := svc.ProfitAnalysis(ctx, 1, "Vegetables", "Tomato")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	// payment 30 minus market 12 * qty 3 = -6: sold below market.
	require.InDelta(t, -6.0, rows[0].ProfitOrLoss, 0.0001)
	require.InDelta(t, 12.0, rows[0].MarketRatePerUnit, 0.0001)
	require.InDelta(t, 10.0, rows[0].SoldPricePerUnit, 0.0001)
}

func TestProfitAnalysisMissingRate(t *testing.T) {
	repo := fixtureRepo()
	svc, _ := newTestService(t, repo)

	_, err := svc.ProfitAnalysis(context.Background(), 1, "Fruits", "Mango")
	require.ErrorIs(t, err, ErrRateNotFound)
}

func TestProfitAnalysisValidation(t *testing.T) {
	repo := fixtureRepo()
	svc, _ := newTestService(t, repo)
	ctx := context.Background()

	_, err := svc.ProfitAnalysis(ctx, 1, "", "Tomato")
	require.ErrorIs(t, err, ErrMissingQuery)

	// Rate exists but the farmer never sold any wheat under this name.
	repo.sales = repo.sales[:1]
	_, err = svc.ProfitAnalysis(ctx, 1, "Grains", "Wheat")
	require.ErrorIs(t, err, ErrNoTransactions)
}

func TestRetailerPurchaseAnalysis(t *testing.T) {
	repo := fixtureRepo()
	repo.purchases = []retailerPurchaseRow{
		{OrderID: 1, ProductName: "Tomato", Category: "Vegetables", FarmerName: "Ravi Patil", FarmerState: "Maharashtra", Quantity: 3, PaymentAmount: 30, PurchaseDate: "2025-05-10"},
		{OrderID: 2, ProductName: "Mango", Category: "Fruits", FarmerName: "Ravi Patil", FarmerState: "Maharashtra", Quantity: 2, PaymentAmount: 100, PurchaseDate: "2025-05-11"},
	}
	svc, _ := newTestService(t, repo)

	rows, err := svc.RetailerPurchaseAnalysis(context.Background(), "1111")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	require.InDelta(t, 10.0, rows[0].PurchasePricePerUnit, 0.0001)
	require.True(t, rows[0].MarketPricePerUnit.Valid)
	require.InDelta(t, 12.0, rows[0].MarketPricePerUnit.Value, 0.0001)
	require.True(t, rows[0].PriceDifferencePerUnit.Valid)
	require.InDelta(t, -2.0, rows[0].PriceDifferencePerUnit.Value, 0.0001)

	// No rate for Fruits/Mango: market columns carry the sentinel.
	require.False(t, rows[1].MarketPricePerUnit.Valid)
	require.False(t, rows[1].PriceDifferencePerUnit.Valid)

	payload, err := json.Marshal(rows[1])
	require.NoError(t, err)
	require.Contains(t, string(payload), `"market_price_per_unit":"N/A"`)
	require.Contains(t, string(payload), `"price_difference_per_unit":"N/A"`)
}

func TestRetailerPurchaseAnalysisZeroQuantity(t *testing.T) {
	repo := fixtureRepo()
	repo.purchases = []retailerPurchaseRow{
		{OrderID: 1, ProductName: "Tomato", Category: "Vegetables", FarmerState: "Maharashtra", Quantity: 0, PaymentAmount: 30, PurchaseDate: "2025-05-10"},
	}
	svc, _ := newTestService(t, repo)

	rows, err := svc.RetailerPurchaseAnalysis(context.Background(), "1111")
	require.NoError(t, err)
	require.Zero(t, rows[0].PurchasePricePerUnit)
}

func TestRetailerPurchaseAnalysisEmpty(t *testing.T) {
	repo := fixtureRepo()
	svc, _ := newTestService(t, repo)

	_, err := svc.RetailerPurchaseAnalysis(context.Background(), "1111")
	require.ErrorIs(t, err, ErrNoTransactions)
}

func TestTransactionReportValidation(t *testing.T) {
	repo := fixtureRepo()
	svc, _ := newTestService(t, repo)
	ctx := context.Background()

	_, err := svc.TransactionReport(ctx, 1, "", "2025-06-30")
	require.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = svc.TransactionReport(ctx, 1, "01/05/2025", "2025-06-30")
	require.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = svc.TransactionReport(ctx, 1, "2025-06-30", "2025-05-01")
	require.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = svc.TransactionReport(ctx, 1, "2024-01-01", "2024-01-31")
	require.ErrorIs(t, err, ErrNoTransactions)
}

func TestTransactionReportRendersRange(t *testing.T) {
	repo := fixtureRepo()
	svc, pdf := newTestService(t, repo)

	out, err := svc.TransactionReport(context.Background(), 1, "2025-05-01", "2025-05-31")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(out), "%PDF"))

	// Only the May sale lands in the document.
	require.Contains(t, pdf.lastHTML, "Tomato")
	require.NotContains(t, pdf.lastHTML, "Wheat")
	require.Contains(t, pdf.lastHTML, "Ravi Patil")
	require.Contains(t, pdf.lastHTML, "₹")
}

func TestTransactionReportRangeIsInclusive(t *testing.T) {
	repo := fixtureRepo()
	svc, pdf := newTestService(t, repo)

	// to_date equals the second sale's day; it must still be included.
	_, err := svc.TransactionReport(context.Background(), 1, "2025-05-10", "2025-06-01")
	require.NoError(t, err)
	require.Contains(t, pdf.lastHTML, "Tomato")
	require.Contains(t, pdf.lastHTML, "Wheat")
}

func TestProductHistory(t *testing.T) {
	repo := fixtureRepo()
	svc, _ := newTestService(t, repo)

	entries, err := svc.ProductHistory(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "Tomato", entries[0].Name)
	require.NotEmpty(t, entries[0].ListedDate)

	_, err = svc.ProductHistory(context.Background(), 99)
	require.ErrorIs(t, err, farmers.ErrNotFound)
}

func TestFarmerTransactionsFlatList(t *testing.T) {
	repo := fixtureRepo()
	svc, _ := newTestService(t, repo)

	rows, err := svc.FarmerTransactions(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.InDelta(t, 30.0, rows[0].PaymentAmount, 0.0001)
}
