package analytics

import (
	"html/template"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// The report body is plain HTML handed to the PDF renderer; layout stays
// deliberately minimal, the renderer owns pagination.
var reportTemplate = template.Must(template.New("transaction-report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
body { font-family: Helvetica, Arial, sans-serif; font-size: 12px; }
h1 { font-size: 16px; text-align: center; }
table { width: 100%; border-collapse: collapse; margin-top: 12px; }
th, td { border: 1px solid #333; padding: 4px 6px; text-align: left; }
th { background: #eee; }
</style>
</head>
<body>
<h1>Transaction Report for {{.FarmerName}}</h1>
<p>From: {{.From}} To: {{.To}}</p>
<table>
<tr><th>Transaction ID</th><th>Product Name</th><th>Category</th><th>Quantity</th><th>Amount</th><th>Date</th></tr>
{{range .Rows}}<tr><td>{{.TransactionID}}</td><td>{{.ProductName}}</td><td>{{.Category}}</td><td>{{.QuantitySold}}</td><td>{{.Amount}}</td><td>{{.SoldDate}}</td></tr>
{{end}}</table>
</body>
</html>`))

type reportRow struct {
	TransactionID int64
	ProductName   string
	Category      string
	QuantitySold  int64
	Amount        string
	SoldDate      string
}

type reportData struct {
	FarmerName string
	From       string
	To         string
	Rows       []reportRow
}

var inr = message.NewPrinter(language.English)

func formatAmount(v float64) string {
	return inr.Sprintf("₹%v", number.Decimal(v, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

func reportHTML(farmerName, from, to string, sales []SaleRow) (string, error) {
	data := reportData{FarmerName: farmerName, From: from, To: to}
	for _, sale := range sales {
		data.Rows = append(data.Rows, reportRow{
			TransactionID: sale.TransactionID,
			ProductName:   sale.ProductName,
			Category:      sale.Category,
			QuantitySold:  sale.QuantitySold,
			Amount:        formatAmount(sale.PaymentAmount),
			SoldDate:      sale.SoldDate,
		})
	}
	var buf strings.Builder
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
