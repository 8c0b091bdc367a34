package parser

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
	"github.com/yourusername/telegram-shop-bot/internal/domain/entity"
	"github.com/yourusername/telegram-shop-bot/internal/domain/repository"
)

type excelCatalogParser struct{}

// NewExcelCatalogParser builds the Excel catalog parser.
func NewExcelCatalogParser() repository.CatalogParser {
	return &excelCatalogParser{}
}

// ParseCatalog reads products from an Excel file on disk.
func (e *excelCatalogParser) ParseCatalog(ctx context.Context, filePath string) ([]entity.Product, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer f.Close()

	return e.parseFile(f)
}

// ParseCatalogFromBytes reads products from in-memory file data.
func (e *excelCatalogParser) ParseCatalogFromBytes(ctx context.Context, data []byte, filename string) ([]entity.Product, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open excel from bytes: %w", err)
	}
	defer f.Close()

	return e.parseFile(f)
}

func (e *excelCatalogParser) parseFile(f *excelize.File) ([]entity.Product, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("excel file has no data rows")
	}

	columns := mapColumns(rows[0])
	skuCol, ok := columns["sku"]
	if !ok {
		return nil, fmt.Errorf("sku column not found in header: %v", rows[0])
	}
	titleCol, hasTitle := columns["title"]
	priceCol, hasPrice := columns["price"]
	if !hasPrice {
		return nil, fmt.Errorf("price column not found in header: %v", rows[0])
	}
	currencyCol, hasCurrency := columns["currency"]
	categoryCol, hasCategory := columns["category"]
	descriptionCol, hasDescription := columns["description"]
	availabilityCol, hasAvailability := columns["availability"]
	imageCol, hasImage := columns["image_url"]

	var products []entity.Product
	seen := make(map[string]bool)

	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		sku := cellAt(row, skuCol)
		if sku == "" {
			continue
		}
		if seen[sku] {
			log.Warn().Str("sku", sku).Int("row", i+1).Msg("duplicate sku in catalog file, keeping first")
			continue
		}

		price, err := parsePrice(cellAt(row, priceCol))
		if err != nil {
			log.Warn().Str("sku", sku).Int("row", i+1).Msg("unparseable price, skipping row")
			continue
		}

		product := entity.Product{
			SKU:          sku,
			Title:        sku,
			Price:        price,
			Currency:     "UAH",
			IsActive:     true,
			Availability: entity.AvailabilityInStock,
		}

		if hasTitle {
			if title := cellAt(row, titleCol); title != "" {
				product.Title = title
			}
		}
		if hasCurrency {
			if currency := cellAt(row, currencyCol); currency != "" {
				product.Currency = strings.ToUpper(currency)
			}
		}
		if hasCategory {
			product.Category = cellAt(row, categoryCol)
		}
		if hasDescription {
			product.Description = cellAt(row, descriptionCol)
		}
		if hasAvailability {
			if availability := normalizeAvailability(cellAt(row, availabilityCol)); availability != "" {
				product.Availability = availability
			}
		}
		if hasImage {
			product.ImageURL = cellAt(row, imageCol)
		}

		seen[sku] = true
		products = append(products, product)
	}

	if len(products) == 0 {
		return nil, fmt.Errorf("no products found in excel file")
	}
	return products, nil
}

// mapColumns maps known header names (Ukrainian or English) to indexes.
func mapColumns(header []string) map[string]int {
	aliases := map[string]string{
		"sku": "sku", "артикул": "sku", "код": "sku",
		"title": "title", "name": "title", "назва": "title", "товар": "title",
		"price": "price", "ціна": "price", "цена": "price",
		"currency": "currency", "валюта": "currency",
		"category": "category", "категорія": "category", "категория": "category",
		"description": "description", "опис": "description", "описание": "description",
		"availability": "availability", "наявність": "availability",
		"image": "image_url", "image_url": "image_url", "фото": "image_url",
	}

	columns := make(map[string]int)
	for i, cell := range header {
		key := strings.ToLower(strings.TrimSpace(cell))
		if field, ok := aliases[key]; ok {
			if _, taken := columns[field]; !taken {
				columns[field] = i
			}
		}
	}
	return columns
}

// parsePrice handles "1 200", "1200,50" and plain integers; the catalog
// stores whole currency units, fractions are truncated.
func parsePrice(raw string) (int64, error) {
	cleaned := strings.NewReplacer(" ", "", " ", "", ",", ".").Replace(raw)
	if cleaned == "" {
		return 0, fmt.Errorf("empty price")
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, err
	}
	if value < 0 {
		return 0, fmt.Errorf("negative price")
	}
	return int64(value), nil
}

func normalizeAvailability(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "in_stock", "у наявності", "в наявності", "є":
		return entity.AvailabilityInStock
	case "preorder", "передзамовлення", "під замовлення":
		return entity.AvailabilityPreorder
	}
	return ""
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
