package repository

import (
	"context"

	"github.com/yourusername/telegram-shop-bot/internal/domain/entity"
)

// ProductRepository persists the product catalog.
type ProductRepository interface {
	// Upsert inserts the product under patch's fields or updates only the
	// fields the patch carries when the SKU already exists.
	Upsert(ctx context.Context, sku string, patch entity.ProductPatch) error

	// GetBySKU returns a product or ErrNotFound.
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)

	// List returns products matching the filter, ordered by category, title.
	List(ctx context.Context, filter entity.ProductFilter) ([]entity.Product, error)

	// Deactivate hides a product from the storefront without deleting it.
	Deactivate(ctx context.Context, sku string) error

	// ReplaceAll swaps the whole catalog for the given products (bulk import).
	ReplaceAll(ctx context.Context, products []entity.Product) error
}
