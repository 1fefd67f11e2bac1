// Package receipt renders order receipts as HTML.
package receipt

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/Franklivania/go-to-market/internal/model"
	"github.com/Franklivania/go-to-market/internal/money"
)

const issuer = "Go To Market"

// Line is one item on a receipt.
type Line struct {
	Name     string
	Quantity float64
	Unit     string
	Price    string
}

// ListSection groups a receipt's lines per originating list.
type ListSection struct {
	Title    string
	Lines    []Line
	Subtotal string
}

// Data is everything the receipt template needs.
type Data struct {
	Issuer        string
	ReceiptNumber string
	Reference     string
	Date          string
	Lists         []ListSection
	Total         string
	Status        string
}

var tmpl = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Receipt {{.ReceiptNumber}}</title>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; max-width: 640px; margin: 2rem auto; color: #1a1a1a; }
h1 { font-size: 1.4rem; }
table { width: 100%; border-collapse: collapse; margin-bottom: 1.5rem; }
th, td { text-align: left; padding: 0.4rem 0.6rem; border-bottom: 1px solid #e5e5e5; }
td.amount, th.amount { text-align: right; }
.meta { color: #666; font-size: 0.9rem; }
.total { font-size: 1.2rem; font-weight: 600; text-align: right; }
.status { text-transform: capitalize; }
</style>
</head>
<body>
<h1>{{.Issuer}}</h1>
<p class="meta">
Receipt {{.ReceiptNumber}}<br>
Reference {{.Reference}}<br>
{{.Date}}<br>
Status: <span class="status">{{.Status}}</span>
</p>
{{range .Lists}}
<h2>{{.Title}}</h2>
<table>
<tr><th>Item</th><th>Qty</th><th class="amount">Price</th></tr>
{{range .Lines}}
<tr><td>{{.Name}}</td><td>{{.Quantity}} {{.Unit}}</td><td class="amount">{{.Price}}</td></tr>
{{end}}
<tr><td colspan="2">Subtotal</td><td class="amount">{{.Subtotal}}</td></tr>
</table>
{{end}}
<p class="total">Total {{.Total}}</p>
</body>
</html>
`))

// Build assembles receipt data for a payment and the lists it covered.
// Lists deleted since checkout are represented by a placeholder section
// so the receipt still accounts for the full amount.
func Build(p *model.Payment, lists map[string]model.MarketList) Data {
	data := Data{
		Issuer:        issuer,
		ReceiptNumber: p.ReceiptNumber,
		Reference:     p.Reference,
		Date:          p.CreatedAt.Format("2 January 2006, 3:04 PM"),
		Total:         money.FormatNaira(p.Amount),
		Status:        p.Status,
	}

	for _, id := range p.ListIDs {
		l, ok := lists[id]
		if !ok {
			data.Lists = append(data.Lists, ListSection{
				Title:    fmt.Sprintf("List %s (no longer available)", id),
				Subtotal: money.FormatNaira(0),
			})
			continue
		}

		section := ListSection{
			Title:    l.Title,
			Subtotal: money.FormatNaira(l.TotalPrice()),
			Lines:    make([]Line, 0, len(l.Items)),
		}
		for _, it := range l.Items {
			section.Lines = append(section.Lines, Line{
				Name:     it.Name,
				Quantity: it.Quantity,
				Unit:     string(it.Unit),
				Price:    money.FormatNaira(it.PriceOrZero()),
			})
		}
		data.Lists = append(data.Lists, section)
	}
	return data
}

// Render writes the receipt HTML for the given data.
func Render(w io.Writer, data Data) error {
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render receipt: %w", err)
	}
	return nil
}

// Number builds a human-readable receipt number from a timestamp and a
// short unique suffix.
func Number(now time.Time, suffix string) string {
	return fmt.Sprintf("RCP-%s-%s", now.Format("20060102"), suffix)
}
