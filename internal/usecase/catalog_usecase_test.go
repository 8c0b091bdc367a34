package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/telegram-shop-bot/internal/domain/entity"
	"github.com/yourusername/telegram-shop-bot/internal/infrastructure/storage"
)

func strPtr(s string) *string { return &s }
func i64Ptr(v int64) *int64 { return &v }
func boolPtr(b bool) *bool { return &b }

func TestUpsertInsertDefaults(t *testing.T) {
	uc := NewCatalogUseCase(storage.NewMemoryProductRepository())
	ctx := context.Background()

	require.NoError(t, uc.Upsert(ctx, "cup-7", entity.ProductPatch{Price: i64Ptr(300)}))

	p, err := uc.Get(ctx, "cup-7")
	require.NoError(t, err)
	assert.Equal(t, "cup-7", p.Title, "title falls back to sku")
	assert.Equal(t, "UAH", p.Currency)
	assert.True(t, p.IsActive)
	assert.Equal(t, entity.AvailabilityInStock, p.Availability)
}

func TestUpsertPartialUpdateKeepsOtherFields(t *testing.T) {
	uc := NewCatalogUseCase(storage.NewMemoryProductRepository())
	ctx := context.Background()

	require.NoError(t, uc.Upsert(ctx, "cup-7", entity.ProductPatch{
		Title:       strPtr("Чашка"),
		Price:       i64Ptr(300),
		Category:    strPtr("посуд"),
		Description: strPtr("керамічна"),
	}))

	// Only the price changes.
	require.NoError(t, uc.Upsert(ctx, "cup-7", entity.ProductPatch{Price: i64Ptr(350)}))

	p, err := uc.Get(ctx, "cup-7")
	require.NoError(t, err)
	assert.EqualValues(t, 350, p.Price)
	assert.Equal(t, "Чашка", p.Title)
	assert.Equal(t, "посуд", p.Category)
	assert.Equal(t, "керамічна", p.Description)
}

func TestUpsertValidation(t *testing.T) {
	uc := NewCatalogUseCase(storage.NewMemoryProductRepository())
	ctx := context.Background()

	assert.ErrorIs(t, uc.Upsert(ctx, "  ", entity.ProductPatch{}), ErrEmptySKU)
	assert.ErrorIs(t, uc.Upsert(ctx, "x", entity.ProductPatch{
		Availability: strPtr("soldout"),
	}), ErrBadAvailability)
	assert.ErrorIs(t, uc.Upsert(ctx, "x", entity.ProductPatch{
		Price: i64Ptr(-5),
	}), ErrNegativePrice)
}

func TestListActiveHidesInactive(t *testing.T) {
	uc := NewCatalogUseCase(storage.NewMemoryProductRepository())
	ctx := context.Background()

	require.NoError(t, uc.Upsert(ctx, "a1", entity.ProductPatch{Price: i64Ptr(10)}))
	require.NoError(t, uc.Upsert(ctx, "a2", entity.ProductPatch{
		Price:    i64Ptr(20),
		IsActive: boolPtr(false),
	}))

	all, err := uc.ListAll(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := uc.ListActive(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "a1", active[0].SKU)
}

func TestListFilters(t *testing.T) {
	uc := NewCatalogUseCase(storage.NewMemoryProductRepository())
	ctx := context.Background()

	require.NoError(t, uc.Upsert(ctx, "mug-01", entity.ProductPatch{
		Title: strPtr("Чашка синя"), Price: i64Ptr(10), Category: strPtr("посуд"),
	}))
	require.NoError(t, uc.Upsert(ctx, "tee-02", entity.ProductPatch{
		Title: strPtr("Футболка"), Price: i64Ptr(20), Category: strPtr("одяг"),
	}))

	byQuery, err := uc.ListAll(ctx, "чашка", "")
	require.NoError(t, err)
	require.Len(t, byQuery, 1)
	assert.Equal(t, "mug-01", byQuery[0].SKU)

	byCategory, err := uc.ListAll(ctx, "", "одяг")
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "tee-02", byCategory[0].SKU)
}

func TestDeactivate(t *testing.T) {
	uc := NewCatalogUseCase(storage.NewMemoryProductRepository())
	ctx := context.Background()

	require.NoError(t, uc.Upsert(ctx, "a1", entity.ProductPatch{Price: i64Ptr(10)}))
	require.NoError(t, uc.Deactivate(ctx, "a1"))

	p, err := uc.Get(ctx, "a1")
	require.NoError(t, err)
	assert.False(t, p.IsActive)
}
