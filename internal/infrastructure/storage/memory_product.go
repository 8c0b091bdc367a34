package storage

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/yourusername/telegram-shop-bot/internal/domain/entity"
	"github.com/yourusername/telegram-shop-bot/internal/domain/repository"
)

type memoryProductRepository struct {
	mu       sync.RWMutex
	products map[string]entity.Product
}

// NewMemoryProductRepository builds an in-memory product store. It mirrors
// the SQLite repository's semantics and backs the unit tests.
func NewMemoryProductRepository() repository.ProductRepository {
	return &memoryProductRepository{
		products: make(map[string]entity.Product),
	}
}

// Upsert inserts or patches a product.
func (m *memoryProductRepository) Upsert(ctx context.Context, sku string, patch entity.ProductPatch) error {
	if strings.TrimSpace(sku) == "" {
		return errors.New("empty sku")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	p, exists := m.products[sku]
	if !exists {
		m.products[sku] = productFromPatch(sku, patch)
		return nil
	}

	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Currency != nil {
		p.Currency = *patch.Currency
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.IsActive != nil {
		p.IsActive = *patch.IsActive
	}
	if patch.Availability != nil {
		p.Availability = *patch.Availability
	}
	if patch.ImageURL != nil {
		p.ImageURL = *patch.ImageURL
	}
	m.products[sku] = p
	return nil
}

// GetBySKU returns a product or repository.ErrNotFound.
func (m *memoryProductRepository) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, exists := m.products[sku]
	if !exists {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

// List returns products matching the filter, ordered by category, title.
func (m *memoryProductRepository) List(ctx context.Context, filter entity.ProductFilter) ([]entity.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var products []entity.Product
	for _, p := range m.products {
		if filter.ActiveOnly && !p.IsActive {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Query != "" {
			q := strings.ToLower(filter.Query)
			if !strings.Contains(strings.ToLower(p.SKU), q) &&
				!strings.Contains(strings.ToLower(p.Title), q) {
				continue
			}
		}
		products = append(products, p)
	}

	sort.Slice(products, func(i, j int) bool {
		if products[i].Category != products[j].Category {
			return products[i].Category < products[j].Category
		}
		return products[i].Title < products[j].Title
	})
	return products, nil
}

// Deactivate hides a product from the storefront.
func (m *memoryProductRepository) Deactivate(ctx context.Context, sku string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, exists := m.products[sku]
	if !exists {
		return repository.ErrNotFound
	}
	p.IsActive = false
	m.products[sku] = p
	return nil
}

// ReplaceAll swaps the whole catalog.
func (m *memoryProductRepository) ReplaceAll(ctx context.Context, products []entity.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.products = make(map[string]entity.Product, len(products))
	for _, p := range products {
		m.products[p.SKU] = p
	}
	return nil
}
