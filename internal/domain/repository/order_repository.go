package repository

import (
	"context"
	"errors"

	"github.com/yourusername/telegram-shop-bot/internal/domain/entity"
)

// ErrNotFound is returned when a looked-up record does not exist.
var ErrNotFound = errors.New("not found")

// OrderRepository persists orders and their items.
type OrderRepository interface {
	// Save writes the order and its items atomically and returns the new id.
	Save(ctx context.Context, order entity.Order) (int64, error)

	// GetByID returns an order with its items or ErrNotFound.
	GetByID(ctx context.Context, id int64) (*entity.Order, error)

	// ListRecent returns up to limit newest orders with items.
	ListRecent(ctx context.Context, limit int) ([]entity.Order, error)

	// UpdateStatus sets the order status.
	UpdateStatus(ctx context.Context, id int64, status string) error
}
