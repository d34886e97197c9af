package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// InvoiceLine is one item row of an order document.
type InvoiceLine struct {
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
}

// OrderInvoice carries everything printed on an order document.
type OrderInvoice struct {
	OrderNumber     string
	OrderDate       time.Time
	CustomerName    string
	CustomerEmail   string
	ShippingAddress []string
	BillingAddress  []string
	Lines           []InvoiceLine
	Subtotal        decimal.Decimal
	Tax             decimal.Decimal
	Shipping        decimal.Decimal
	Total           decimal.Decimal
	Notes           string
}

// ArticleSheet is a single page print sheet for an article, optionally with
// the artwork to be printed.
type ArticleSheet struct {
	Name                  string
	ArticleType           string
	Description           string
	SupplierArticleNumber string
	Price                 decimal.Decimal
	ArtworkPNG            []byte
}

// Renderer produces A4 documents with the core Helvetica font.
type Renderer struct {
	CompanyName string
	Currency    string
}

func NewRenderer(companyName, currency string) *Renderer {
	return &Renderer{CompanyName: companyName, Currency: currency}
}

func (r *Renderer) newDocument(title string) (*fpdf.Fpdf, func(string) string) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle(title, true)
	doc.SetCreator(r.CompanyName, true)
	doc.SetMargins(15, 15, 15)
	doc.SetAutoPageBreak(true, 15)
	doc.AddPage()
	// core fonts are cp1252; translate so umlauts survive
	return doc, doc.UnicodeTranslatorFromDescriptor("")
}

func (r *Renderer) money(d decimal.Decimal) string {
	return fmt.Sprintf("%s %s", d.StringFixed(2), r.Currency)
}

// RenderOrder renders an invoice style order document.
func (r *Renderer) RenderOrder(inv OrderInvoice) ([]byte, error) {
	doc, tr := r.newDocument("Order " + inv.OrderNumber)

	doc.SetFont("Helvetica", "B", 18)
	doc.CellFormat(0, 10, tr(r.CompanyName), "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(0, 6, tr("Order "+inv.OrderNumber), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 6, inv.OrderDate.Format("2006-01-02"), "", 1, "L", false, 0, "")
	doc.Ln(4)

	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(90, 6, "Shipping address", "", 0, "L", false, 0, "")
	if len(inv.BillingAddress) > 0 {
		doc.CellFormat(90, 6, "Billing address", "", 0, "L", false, 0, "")
	}
	doc.Ln(6)
	doc.SetFont("Helvetica", "", 10)
	shipping := append([]string{inv.CustomerName}, inv.ShippingAddress...)
	rows := len(shipping)
	if len(inv.BillingAddress) > rows {
		rows = len(inv.BillingAddress)
	}
	for i := 0; i < rows; i++ {
		doc.CellFormat(90, 5, tr(lineAt(shipping, i)), "", 0, "L", false, 0, "")
		doc.CellFormat(90, 5, tr(lineAt(inv.BillingAddress, i)), "", 1, "L", false, 0, "")
	}
	if inv.CustomerEmail != "" {
		doc.CellFormat(0, 5, tr(inv.CustomerEmail), "", 1, "L", false, 0, "")
	}
	doc.Ln(6)

	widths := []float64{95, 20, 32, 33}
	doc.SetFont("Helvetica", "B", 10)
	doc.SetFillColor(230, 230, 230)
	for i, h := range []string{"Item", "Qty", "Unit price", "Total"} {
		align := "R"
		if i == 0 {
			align = "L"
		}
		doc.CellFormat(widths[i], 7, h, "1", 0, align, true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", 10)
	for _, line := range inv.Lines {
		doc.CellFormat(widths[0], 7, tr(line.Description), "1", 0, "L", false, 0, "")
		doc.CellFormat(widths[1], 7, fmt.Sprintf("%d", line.Quantity), "1", 0, "R", false, 0, "")
		doc.CellFormat(widths[2], 7, r.money(line.UnitPrice), "1", 0, "R", false, 0, "")
		doc.CellFormat(widths[3], 7, r.money(line.Total), "1", 1, "R", false, 0, "")
	}
	doc.Ln(4)

	totals := []struct {
		label string
		value decimal.Decimal
		bold  bool
	}{
		{"Subtotal", inv.Subtotal, false},
		{"VAT", inv.Tax, false},
		{"Shipping", inv.Shipping, false},
		{"Total", inv.Total, true},
	}
	for _, t := range totals {
		style := ""
		if t.bold {
			style = "B"
		}
		doc.SetFont("Helvetica", style, 10)
		doc.CellFormat(147, 6, t.label, "", 0, "R", false, 0, "")
		doc.CellFormat(33, 6, r.money(t.value), "", 1, "R", false, 0, "")
	}

	if inv.Notes != "" {
		doc.Ln(6)
		doc.SetFont("Helvetica", "I", 9)
		doc.MultiCell(0, 5, tr(inv.Notes), "", "L", false)
	}

	return output(doc)
}

// RenderArticle renders a print sheet; the artwork fills the upper half.
func (r *Renderer) RenderArticle(sheet ArticleSheet) ([]byte, error) {
	doc, tr := r.newDocument(sheet.Name)

	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(0, 9, tr(sheet.Name), "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(0, 6, tr("Type: "+sheet.ArticleType), "", 1, "L", false, 0, "")
	if sheet.SupplierArticleNumber != "" {
		doc.CellFormat(0, 6, tr("Supplier article no.: "+sheet.SupplierArticleNumber), "", 1, "L", false, 0, "")
	}
	doc.CellFormat(0, 6, "Price: "+r.money(sheet.Price), "", 1, "L", false, 0, "")
	doc.Ln(4)

	if len(sheet.ArtworkPNG) > 0 {
		opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
		doc.RegisterImageOptionsReader("artwork", opts, bytes.NewReader(sheet.ArtworkPNG))
		doc.ImageOptions("artwork", 15, doc.GetY(), 180, 0, true, opts, 0, "")
		doc.Ln(4)
	}

	if sheet.Description != "" {
		doc.MultiCell(0, 5, tr(sheet.Description), "", "L", false)
	}

	return output(doc)
}

func output(doc *fpdf.Fpdf) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := doc.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func lineAt(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}
	return ""
}
