package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/telegram-shop-bot/internal/domain/entity"
	"github.com/yourusername/telegram-shop-bot/internal/domain/repository"
)

// ErrNotAdmin is returned when a non-operator calls an operator action.
var ErrNotAdmin = fmt.Errorf("user is not admin")

// AdminUseCase is the operator-facing business logic.
type AdminUseCase interface {
	// Login checks the password and opens a session.
	Login(ctx context.Context, userID int64, password string) (bool, error)

	// Logout drops the session.
	Logout(ctx context.Context, userID int64) error

	// IsAdmin reports whether the user has a live session.
	IsAdmin(ctx context.Context, userID int64) (bool, error)

	// ImportCatalog replaces the catalog from an uploaded Excel file and
	// returns the number of imported products.
	ImportCatalog(ctx context.Context, userID int64, fileData []byte, filename string) (int, error)

	// CatalogInfo returns a human-readable catalog summary.
	CatalogInfo(ctx context.Context) (string, error)

	// MarkOrder moves an order to a new status on the operator's behalf.
	MarkOrder(ctx context.Context, userID int64, orderID int64, status string) error
}

type adminUseCase struct {
	password      string
	adminRepo     repository.AdminRepository
	productRepo   repository.ProductRepository
	catalogParser repository.CatalogParser
	orders        OrderUseCase
}

// NewAdminUseCase builds the admin usecase. The password comes from config.
func NewAdminUseCase(
	password string,
	adminRepo repository.AdminRepository,
	productRepo repository.ProductRepository,
	catalogParser repository.CatalogParser,
	orders OrderUseCase,
) AdminUseCase {
	return &adminUseCase{
		password:      password,
		adminRepo:     adminRepo,
		productRepo:   productRepo,
		catalogParser: catalogParser,
		orders:        orders,
	}
}

// Login checks the password and opens a session.
func (u *adminUseCase) Login(ctx context.Context, userID int64, password string) (bool, error) {
	if password != u.password {
		return false, nil
	}

	session := entity.AdminSession{
		UserID:       userID,
		IsAdmin:      true,
		LoginTime:    time.Now(),
		LastActivity: time.Now(),
	}
	if err := u.adminRepo.CreateSession(ctx, session); err != nil {
		return false, fmt.Errorf("failed to create session: %w", err)
	}

	u.logAction(ctx, userID, "login", "operator logged in")
	return true, nil
}

// Logout drops the session.
func (u *adminUseCase) Logout(ctx context.Context, userID int64) error {
	return u.adminRepo.DeleteSession(ctx, userID)
}

// IsAdmin reports whether the user has a live session.
func (u *adminUseCase) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	return u.adminRepo.IsAdmin(ctx, userID)
}

// ImportCatalog parses the Excel file and replaces the catalog with it.
func (u *adminUseCase) ImportCatalog(ctx context.Context, userID int64, fileData []byte, filename string) (int, error) {
	isAdmin, err := u.adminRepo.IsAdmin(ctx, userID)
	if err != nil {
		return 0, err
	}
	if !isAdmin {
		return 0, ErrNotAdmin
	}

	products, err := u.catalogParser.ParseCatalogFromBytes(ctx, fileData, filename)
	if err != nil {
		return 0, fmt.Errorf("failed to parse excel: %w", err)
	}

	if err := u.productRepo.ReplaceAll(ctx, products); err != nil {
		return 0, fmt.Errorf("failed to replace catalog: %w", err)
	}

	u.logAction(ctx, userID, "upload_catalog",
		fmt.Sprintf("imported %d products from %s", len(products), filename))
	return len(products), nil
}

// CatalogInfo returns a human-readable catalog summary.
func (u *adminUseCase) CatalogInfo(ctx context.Context) (string, error) {
	products, err := u.productRepo.List(ctx, entity.ProductFilter{})
	if err != nil {
		return "", err
	}
	if len(products) == 0 {
		return "", fmt.Errorf("catalog is empty")
	}

	categories := make(map[string]int)
	active := 0
	for _, p := range products {
		categories[p.Category]++
		if p.IsActive {
			active++
		}
	}

	info := fmt.Sprintf("📦 Каталог: %d товарів (%d активних)\n\n📂 Категорії:\n", len(products), active)
	for cat, count := range categories {
		if cat == "" {
			cat = "без категорії"
		}
		info += fmt.Sprintf("  • %s: %d\n", cat, count)
	}
	return info, nil
}

// MarkOrder moves an order to a new status on the operator's behalf.
func (u *adminUseCase) MarkOrder(ctx context.Context, userID int64, orderID int64, status string) error {
	isAdmin, err := u.adminRepo.IsAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if !isAdmin {
		return ErrNotAdmin
	}

	if err := u.orders.SetStatus(ctx, orderID, status); err != nil {
		return err
	}

	u.logAction(ctx, userID, "order_status",
		fmt.Sprintf("order #%d -> %s", orderID, status))
	return nil
}

func (u *adminUseCase) logAction(ctx context.Context, userID int64, action, details string) {
	_ = u.adminRepo.LogAction(ctx, entity.AdminAction{
		ID:        uuid.New().String(),
		UserID:    userID,
		Action:    action,
		Details:   details,
		Timestamp: time.Now(),
	})
}
