package parser

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/telegram-shop-bot/internal/domain/entity"
)

func buildCatalogFile(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestParseCatalogFromBytes(t *testing.T) {
	data := buildCatalogFile(t, [][]any{
		{"sku", "назва", "ціна", "категорія", "наявність"},
		{"mug-01", "Чашка синя", "250", "посуд", "у наявності"},
		{"tee-02", "Футболка", "1 200", "одяг", "передзамовлення"},
	})

	products, err := NewExcelCatalogParser().ParseCatalogFromBytes(context.Background(), data, "catalog.xlsx")
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "mug-01", products[0].SKU)
	assert.Equal(t, "Чашка синя", products[0].Title)
	assert.EqualValues(t, 250, products[0].Price)
	assert.Equal(t, "посуд", products[0].Category)
	assert.Equal(t, entity.AvailabilityInStock, products[0].Availability)
	assert.True(t, products[0].IsActive)

	// Thousands separator in the price and preorder availability.
	assert.EqualValues(t, 1200, products[1].Price)
	assert.Equal(t, entity.AvailabilityPreorder, products[1].Availability)
}

func TestParseCatalogSkipsBadRows(t *testing.T) {
	data := buildCatalogFile(t, [][]any{
		{"sku", "title", "price"},
		{"ok-1", "Товар", "100"},
		{"", "без артикула", "50"},
		{"bad-price", "Товар", "дорого"},
		{"ok-1", "дубль", "999"},
		{"", "", ""},
	})

	products, err := NewExcelCatalogParser().ParseCatalogFromBytes(context.Background(), data, "catalog.xlsx")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "ok-1", products[0].SKU)
	assert.EqualValues(t, 100, products[0].Price)
}

func TestParseCatalogMissingColumns(t *testing.T) {
	noSKU := buildCatalogFile(t, [][]any{
		{"назва", "ціна"},
		{"Товар", "100"},
	})
	_, err := NewExcelCatalogParser().ParseCatalogFromBytes(context.Background(), noSKU, "catalog.xlsx")
	assert.Error(t, err)

	noPrice := buildCatalogFile(t, [][]any{
		{"sku", "назва"},
		{"a", "Товар"},
	})
	_, err = NewExcelCatalogParser().ParseCatalogFromBytes(context.Background(), noPrice, "catalog.xlsx")
	assert.Error(t, err)
}

func TestParseCatalogDefaultsTitleToSKU(t *testing.T) {
	data := buildCatalogFile(t, [][]any{
		{"sku", "price"},
		{"bare-sku", "42"},
	})

	products, err := NewExcelCatalogParser().ParseCatalogFromBytes(context.Background(), data, "catalog.xlsx")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "bare-sku", products[0].Title)
	assert.Equal(t, "UAH", products[0].Currency)
}
