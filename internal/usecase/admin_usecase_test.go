package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/telegram-shop-bot/internal/domain/entity"
	"github.com/yourusername/telegram-shop-bot/internal/infrastructure/storage"
)

type stubParser struct {
	products []entity.Product
	err      error
}

func (s *stubParser) ParseCatalog(ctx context.Context, filePath string) ([]entity.Product, error) {
	return s.products, s.err
}

func (s *stubParser) ParseCatalogFromBytes(ctx context.Context, data []byte, filename string) ([]entity.Product, error) {
	return s.products, s.err
}

func newAdminFixture(parser *stubParser) (AdminUseCase, CatalogUseCase) {
	products := storage.NewMemoryProductRepository()
	orders := storage.NewMemoryOrderRepository()
	orderUC := NewOrderUseCase(products, orders)
	adminUC := NewAdminUseCase("secret", storage.NewMemoryAdminRepository(),
		products, parser, orderUC)
	return adminUC, NewCatalogUseCase(products)
}

func TestLoginPassword(t *testing.T) {
	adminUC, _ := newAdminFixture(&stubParser{})
	ctx := context.Background()

	success, err := adminUC.Login(ctx, 7, "wrong")
	require.NoError(t, err)
	assert.False(t, success)

	isAdmin, _ := adminUC.IsAdmin(ctx, 7)
	assert.False(t, isAdmin)

	success, err = adminUC.Login(ctx, 7, "secret")
	require.NoError(t, err)
	assert.True(t, success)

	isAdmin, _ = adminUC.IsAdmin(ctx, 7)
	assert.True(t, isAdmin)

	require.NoError(t, adminUC.Logout(ctx, 7))
	isAdmin, _ = adminUC.IsAdmin(ctx, 7)
	assert.False(t, isAdmin)
}

func TestImportCatalogRequiresAdmin(t *testing.T) {
	adminUC, _ := newAdminFixture(&stubParser{})

	_, err := adminUC.ImportCatalog(context.Background(), 7, []byte("x"), "catalog.xlsx")
	assert.ErrorIs(t, err, ErrNotAdmin)
}

func TestImportCatalogReplacesProducts(t *testing.T) {
	parser := &stubParser{products: []entity.Product{
		{SKU: "new-1", Title: "Новий", Price: 100, Currency: "UAH", IsActive: true, Availability: entity.AvailabilityInStock},
		{SKU: "new-2", Title: "Ще один", Price: 200, Currency: "UAH", IsActive: true, Availability: entity.AvailabilityInStock},
	}}
	adminUC, catalogUC := newAdminFixture(parser)
	ctx := context.Background()

	// Pre-existing product must be gone after the import.
	price := int64(5)
	require.NoError(t, catalogUC.Upsert(ctx, "old-1", entity.ProductPatch{Price: &price}))

	_, err := adminUC.Login(ctx, 7, "secret")
	require.NoError(t, err)

	count, err := adminUC.ImportCatalog(ctx, 7, []byte("xlsx-bytes"), "catalog.xlsx")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	all, err := catalogUC.ListAll(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	_, err = catalogUC.Get(ctx, "old-1")
	assert.Error(t, err)
}

func TestMarkOrderRequiresAdmin(t *testing.T) {
	adminUC, _ := newAdminFixture(&stubParser{})

	err := adminUC.MarkOrder(context.Background(), 7, 1, entity.OrderStatusDone)
	assert.ErrorIs(t, err, ErrNotAdmin)
}
