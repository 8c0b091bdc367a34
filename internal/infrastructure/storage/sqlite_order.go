package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/yourusername/telegram-shop-bot/internal/domain/entity"
	"github.com/yourusername/telegram-shop-bot/internal/domain/repository"
)

type sqliteOrderRepository struct {
	db *sql.DB
}

// NewSQLiteOrderRepository builds the SQLite-backed order store.
func NewSQLiteOrderRepository(db *sql.DB) (repository.OrderRepository, error) {
	if err := createOrderSchema(db); err != nil {
		return nil, err
	}
	return &sqliteOrderRepository{db: db}, nil
}

func createOrderSchema(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS orders (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	tg_user_id INTEGER NOT NULL,
	tg_username TEXT NOT NULL DEFAULT '',
	tg_name TEXT NOT NULL DEFAULT '',
	total INTEGER NOT NULL DEFAULT 0,
	currency TEXT NOT NULL DEFAULT 'UAH',
	city TEXT NOT NULL DEFAULT '',
	branch TEXT NOT NULL DEFAULT '',
	receiver TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'new',
	created_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS order_items (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	order_id INTEGER NOT NULL,
	product_sku TEXT NOT NULL,
	product_title TEXT NOT NULL,
	price INTEGER NOT NULL,
	qty INTEGER NOT NULL,
	FOREIGN KEY(order_id) REFERENCES orders(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items (order_id);
`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("cannot create orders schema: %w", err)
	}
	return nil
}

// Save writes the order and its items in one transaction.
func (s *sqliteOrderRepository) Save(ctx context.Context, order entity.Order) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}

	createdAt := order.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	status := order.Status
	if status == "" {
		status = entity.OrderStatusNew
	}

	res, err := tx.ExecContext(ctx, `
INSERT INTO orders (tg_user_id, tg_username, tg_name, total, currency, city, branch, receiver, phone, status, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.Buyer.UserID, order.Buyer.Username, order.Buyer.Name,
		order.Total, order.Currency, order.City, order.Branch,
		order.Receiver, order.Phone, status, createdAt.Unix())
	if err != nil {
		tx.Rollback()
		return 0, err
	}

	orderID, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return 0, err
	}

	for _, item := range order.Items {
		_, err := tx.ExecContext(ctx, `
INSERT INTO order_items (order_id, product_sku, product_title, price, qty)
VALUES (?, ?, ?, ?, ?)`,
			orderID, item.SKU, item.Title, item.Price, item.Qty)
		if err != nil {
			tx.Rollback()
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return orderID, nil
}

// GetByID returns an order with its items.
func (s *sqliteOrderRepository) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, tg_user_id, tg_username, tg_name, total, currency, city, branch, receiver, phone, status, created_at
FROM orders WHERE id = ?`, id)

	order, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := s.loadItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

// ListRecent returns up to limit newest orders with their items.
func (s *sqliteOrderRepository) ListRecent(ctx context.Context, limit int) ([]entity.Order, error) {
	query := `
SELECT id, tg_user_id, tg_username, tg_name, total, currency, city, branch, receiver, phone, status, created_at
FROM orders ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []entity.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := s.loadItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

// UpdateStatus sets the order status.
func (s *sqliteOrderRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE orders SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (s *sqliteOrderRepository) loadItems(ctx context.Context, orderID int64) ([]entity.OrderItem, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT product_sku, product_title, price, qty FROM order_items WHERE order_id = ? ORDER BY id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []entity.OrderItem
	for rows.Next() {
		var item entity.OrderItem
		if err := rows.Scan(&item.SKU, &item.Title, &item.Price, &item.Qty); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanOrder(row rowScanner) (*entity.Order, error) {
	var order entity.Order
	var createdAt int64
	if err := row.Scan(&order.ID, &order.Buyer.UserID, &order.Buyer.Username,
		&order.Buyer.Name, &order.Total, &order.Currency, &order.City,
		&order.Branch, &order.Receiver, &order.Phone, &order.Status, &createdAt); err != nil {
		return nil, err
	}
	order.CreatedAt = time.Unix(createdAt, 0)
	return &order, nil
}
