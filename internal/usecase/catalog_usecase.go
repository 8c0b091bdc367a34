package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/yourusername/telegram-shop-bot/internal/domain/entity"
	"github.com/yourusername/telegram-shop-bot/internal/domain/repository"
)

// Catalog validation errors surfaced to the API layer.
var (
	ErrEmptySKU        = errors.New("empty sku")
	ErrBadAvailability = errors.New("availability must be in_stock or preorder")
	ErrNegativePrice   = errors.New("price must not be negative")
)

// CatalogUseCase is the product-catalog business logic.
type CatalogUseCase interface {
	// ListAll returns every product, filtered by query/category (admin view).
	ListAll(ctx context.Context, query, category string) ([]entity.Product, error)

	// ListActive returns only active products (storefront view).
	ListActive(ctx context.Context, query, category string) ([]entity.Product, error)

	// Upsert creates or partially updates a product by SKU.
	Upsert(ctx context.Context, sku string, patch entity.ProductPatch) error

	// Get returns one product by SKU.
	Get(ctx context.Context, sku string) (*entity.Product, error)

	// Deactivate hides a product from the storefront.
	Deactivate(ctx context.Context, sku string) error
}

type catalogUseCase struct {
	productRepo repository.ProductRepository
}

// NewCatalogUseCase builds the catalog usecase.
func NewCatalogUseCase(productRepo repository.ProductRepository) CatalogUseCase {
	return &catalogUseCase{productRepo: productRepo}
}

// ListAll returns every product matching the filters.
func (u *catalogUseCase) ListAll(ctx context.Context, query, category string) ([]entity.Product, error) {
	return u.productRepo.List(ctx, entity.ProductFilter{
		Query:    strings.TrimSpace(query),
		Category: strings.TrimSpace(category),
	})
}

// ListActive returns only active products matching the filters.
func (u *catalogUseCase) ListActive(ctx context.Context, query, category string) ([]entity.Product, error) {
	return u.productRepo.List(ctx, entity.ProductFilter{
		Query:      strings.TrimSpace(query),
		Category:   strings.TrimSpace(category),
		ActiveOnly: true,
	})
}

// Upsert validates the patch and writes it through the repository.
func (u *catalogUseCase) Upsert(ctx context.Context, sku string, patch entity.ProductPatch) error {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return ErrEmptySKU
	}
	if patch.Availability != nil && !entity.ValidAvailability(*patch.Availability) {
		return ErrBadAvailability
	}
	if patch.Price != nil && *patch.Price < 0 {
		return ErrNegativePrice
	}
	return u.productRepo.Upsert(ctx, sku, patch)
}

// Get returns one product by SKU.
func (u *catalogUseCase) Get(ctx context.Context, sku string) (*entity.Product, error) {
	return u.productRepo.GetBySKU(ctx, strings.TrimSpace(sku))
}

// Deactivate hides a product from the storefront.
func (u *catalogUseCase) Deactivate(ctx context.Context, sku string) error {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return ErrEmptySKU
	}
	return u.productRepo.Deactivate(ctx, sku)
}
