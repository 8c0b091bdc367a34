package repository

import (
	"context"

	"github.com/yourusername/telegram-shop-bot/internal/domain/entity"
)

// CatalogParser turns an uploaded spreadsheet into products.
type CatalogParser interface {
	// ParseCatalog reads products from an Excel file path.
	ParseCatalog(ctx context.Context, filePath string) ([]entity.Product, error)

	// ParseCatalogFromBytes reads products from in-memory file data.
	ParseCatalogFromBytes(ctx context.Context, data []byte, filename string) ([]entity.Product, error)
}
