package excel

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/MrZaiter32/atelierpro/internal/service"
)

// PriceListImporter reads a supplier price-list workbook. The first sheet is
// expected to carry a header row with the columns SKU, Name, Category,
// AvgCost, SalePrice, StockMin, StockMax.
type PriceListImporter struct{}

func NewPriceListImporter() *PriceListImporter {
	return &PriceListImporter{}
}

func (i *PriceListImporter) Parse(content []byte) ([]service.PriceListRow, error) {
	workbook, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %s has no data rows", sheets[0])
	}

	columns, err := mapColumns(rows[0])
	if err != nil {
		return nil, err
	}

	result := make([]service.PriceListRow, 0, len(rows)-1)
	for idx, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}

		parsed := service.PriceListRow{
			SKU:      cell(row, columns["sku"]),
			Name:     cell(row, columns["name"]),
			Category: cell(row, columns["category"]),
		}

		parsed.AvgCost, err = parseMoney(cell(row, columns["avgcost"]))
		if err != nil {
			return nil, fmt.Errorf("row %d: avg cost: %w", idx+2, err)
		}
		parsed.SalePrice, err = parseMoney(cell(row, columns["saleprice"]))
		if err != nil {
			return nil, fmt.Errorf("row %d: sale price: %w", idx+2, err)
		}
		parsed.StockMin, err = parseInt(cell(row, columns["stockmin"]))
		if err != nil {
			return nil, fmt.Errorf("row %d: stock min: %w", idx+2, err)
		}
		parsed.StockMax, err = parseInt(cell(row, columns["stockmax"]))
		if err != nil {
			return nil, fmt.Errorf("row %d: stock max: %w", idx+2, err)
		}

		result = append(result, parsed)
	}
	return result, nil
}

func mapColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", ""))
		if key != "" {
			columns[key] = i
		}
	}
	for _, required := range []string{"sku", "name"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}
	for _, optional := range []string{"category", "avgcost", "saleprice", "stockmin", "stockmax"} {
		if _, ok := columns[optional]; !ok {
			columns[optional] = -1
		}
	}
	return columns, nil
}

func cell(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}

func isEmptyRow(row []string) bool {
	for _, value := range row {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}

func parseMoney(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	raw = strings.ReplaceAll(strings.TrimPrefix(raw, "$"), ",", "")
	return decimal.NewFromString(raw)
}

func parseInt(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
