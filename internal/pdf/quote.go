package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/MrZaiter32/atelierpro/internal/model"
	"github.com/MrZaiter32/atelierpro/internal/pricing"
)

// Generator renders a customer-facing quote for a single budget.
type Generator struct {
	shopName string
}

func NewGenerator(shopName string) *Generator {
	if strings.TrimSpace(shopName) == "" {
		shopName = "AtelierPro"
	}
	return &Generator{shopName: shopName}
}

func (g *Generator) Generate(budget model.Budget) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, g.shopName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Quote %s — %s", budget.Number, formatDate(budget.CreatedAt)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	if budget.Client != nil {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 6, "Customer", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, budget.Client.Name, "", "L", false)
		pdf.Ln(2)
	}
	if budget.Vehicle != nil {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 6, "Vehicle", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		lines := []string{
			fmt.Sprintf("VIN: %s", budget.Vehicle.VIN),
			fmt.Sprintf("Trim: %s", safeValue(budget.Vehicle.Trim)),
			fmt.Sprintf("Age: %d years", budget.Vehicle.AgeYears),
		}
		for _, line := range lines {
			pdf.MultiCell(0, 5, line, "", "L", false)
		}
		pdf.Ln(2)
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Items", "", 1, "L", false, 0, "")

	headers := []string{"Code", "Description", "Qty", "Hours", "Unit price", "Amount"}
	colWidths := []float64{28, 62, 14, 16, 30, 30}
	drawTableRow(pdf, headers, colWidths, true)

	for _, item := range budget.Items {
		row := []string{
			item.Code,
			item.Description,
			fmt.Sprintf("%d", item.Quantity),
			fmt.Sprintf("%.1f", item.Hours),
			formatMoney(item.UnitPrice),
			formatMoney(pricing.AdjustedCost(item)),
		}
		drawTableRow(pdf, row, colWidths, false)
	}

	subtotal := pricing.Subtotal(budget.Items)
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Subtotal: %s", formatMoney(subtotal)), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Tax: %s", formatMoney(budget.TaxApplied)), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Total: %s", formatMoney(budget.Total)), "", 1, "R", false, 0, "")

	if strings.TrimSpace(budget.Notes) != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 6, "Notes", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, budget.Notes, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawTableRow(pdf *gofpdf.Fpdf, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont("Helvetica", style, 9)
	for i, col := range cols {
		align := "L"
		if i > 1 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 7, col, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func formatMoney(value decimal.Decimal) string {
	return "$" + value.StringFixed(2)
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}
