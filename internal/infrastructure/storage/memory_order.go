package storage

import (
	"context"
	"sync"
	"time"

	"github.com/yourusername/telegram-shop-bot/internal/domain/entity"
	"github.com/yourusername/telegram-shop-bot/internal/domain/repository"
)

type memoryOrderRepository struct {
	mu     sync.RWMutex
	nextID int64
	orders map[int64]entity.Order
}

// NewMemoryOrderRepository builds an in-memory order store for tests.
func NewMemoryOrderRepository() repository.OrderRepository {
	return &memoryOrderRepository{
		nextID: 1,
		orders: make(map[int64]entity.Order),
	}
}

// Save assigns an id and stores the order.
func (m *memoryOrderRepository) Save(ctx context.Context, order entity.Order) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	order.ID = m.nextID
	m.nextID++
	if order.Status == "" {
		order.Status = entity.OrderStatusNew
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	m.orders[order.ID] = order
	return order.ID, nil
}

// GetByID returns an order or repository.ErrNotFound.
func (m *memoryOrderRepository) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	order, exists := m.orders[id]
	if !exists {
		return nil, repository.ErrNotFound
	}
	return &order, nil
}

// ListRecent returns up to limit newest orders.
func (m *memoryOrderRepository) ListRecent(ctx context.Context, limit int) ([]entity.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var orders []entity.Order
	for id := m.nextID - 1; id >= 1 && (limit <= 0 || len(orders) < limit); id-- {
		if order, exists := m.orders[id]; exists {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

// UpdateStatus sets the order status.
func (m *memoryOrderRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, exists := m.orders[id]
	if !exists {
		return repository.ErrNotFound
	}
	order.Status = status
	m.orders[id] = order
	return nil
}
