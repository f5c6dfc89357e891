package excel

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func mustDecimal(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	parsed, err := decimal.NewFromString(value)
	require.NoError(t, err)
	return parsed
}

func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()

	workbook := excelize.NewFile()
	sheet := workbook.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, workbook.SetSheetRow(sheet, cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, workbook.Write(&buf))
	return buf.Bytes()
}

func TestParsePriceList(t *testing.T) {
	content := buildWorkbook(t, [][]interface{}{
		{"SKU", "Name", "Category", "AvgCost", "SalePrice", "StockMin", "StockMax"},
		{"FIL-001", "Oil filter", "Filters", "85.50", "129.90", 5, 40},
		{"BRK-210", "Brake pad set", "Brakes", "450", "699", 2, 20},
	})

	rows, err := NewPriceListImporter().Parse(content)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "FIL-001", rows[0].SKU)
	assert.Equal(t, "Oil filter", rows[0].Name)
	assert.Equal(t, "Filters", rows[0].Category)
	assert.True(t, rows[0].AvgCost.Equal(mustDecimal(t, "85.50")))
	assert.True(t, rows[0].SalePrice.Equal(mustDecimal(t, "129.90")))
	assert.Equal(t, 5, rows[0].StockMin)
	assert.Equal(t, 40, rows[0].StockMax)

	assert.Equal(t, "BRK-210", rows[1].SKU)
	assert.True(t, rows[1].SalePrice.Equal(mustDecimal(t, "699")))
}

func TestParsePriceListSkipsEmptyRows(t *testing.T) {
	content := buildWorkbook(t, [][]interface{}{
		{"SKU", "Name"},
		{"FIL-001", "Oil filter"},
		{"", ""},
		{"BRK-210", "Brake pad set"},
	})

	rows, err := NewPriceListImporter().Parse(content)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestParsePriceListMissingRequiredColumn(t *testing.T) {
	content := buildWorkbook(t, [][]interface{}{
		{"Name", "Category"},
		{"Oil filter", "Filters"},
	})

	_, err := NewPriceListImporter().Parse(content)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sku")
}

func TestParsePriceListBadNumber(t *testing.T) {
	content := buildWorkbook(t, [][]interface{}{
		{"SKU", "Name", "AvgCost"},
		{"FIL-001", "Oil filter", "not-a-price"},
	})

	_, err := NewPriceListImporter().Parse(content)
	require.Error(t, err)
}
