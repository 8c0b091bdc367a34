package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/yourusername/telegram-shop-bot/internal/domain/entity"
	"github.com/yourusername/telegram-shop-bot/internal/domain/repository"
)

type sqliteProductRepository struct {
	db *sql.DB
}

// NewSQLiteProductRepository builds the product store over db, creating the
// schema if needed. The same database file is shared with the order store.
func NewSQLiteProductRepository(db *sql.DB) (repository.ProductRepository, error) {
	if err := createProductSchema(db); err != nil {
		return nil, err
	}
	return &sqliteProductRepository{db: db}, nil
}

// OpenDB opens the shared SQLite database in WAL mode.
func OpenDB(dbPath string) (*sql.DB, error) {
	if dbPath == "" {
		return nil, errors.New("db path must not be empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create db directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("cannot open sqlite: %w", err)
	}
	if _, err := db.Exec(`PRAGMA journal_mode = WAL; PRAGMA foreign_keys = ON;`); err != nil {
		return nil, fmt.Errorf("cannot set pragmas: %w", err)
	}
	return db, nil
}

func createProductSchema(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS products (
	sku TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	price INTEGER NOT NULL,
	currency TEXT NOT NULL DEFAULT 'UAH',
	category TEXT NOT NULL DEFAULT '',
	is_active INTEGER NOT NULL DEFAULT 1,
	availability TEXT NOT NULL DEFAULT 'in_stock',
	image_url TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products (category, title);
`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("cannot create products schema: %w", err)
	}
	return nil
}

const productColumns = `sku, title, description, price, currency, category, is_active, availability, image_url`

// Upsert inserts a new product or updates only the fields the patch carries.
func (s *sqliteProductRepository) Upsert(ctx context.Context, sku string, patch entity.ProductPatch) error {
	if strings.TrimSpace(sku) == "" {
		return errors.New("empty sku")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	var exists int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM products WHERE sku = ?`, sku).Scan(&exists); err != nil {
		tx.Rollback()
		return err
	}

	if exists > 0 {
		setParts, values := buildPatchSet(patch)
		if len(setParts) > 0 {
			values = append(values, sku)
			query := fmt.Sprintf(`UPDATE products SET %s WHERE sku = ?`, strings.Join(setParts, ", "))
			if _, err := tx.ExecContext(ctx, query, values...); err != nil {
				tx.Rollback()
				return err
			}
		}
	} else {
		p := productFromPatch(sku, patch)
		_, err := tx.ExecContext(ctx, `
INSERT INTO products (`+productColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.SKU, p.Title, p.Description, p.Price, p.Currency, p.Category,
			boolToInt(p.IsActive), p.Availability, p.ImageURL)
		if err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

// buildPatchSet turns the non-nil patch fields into SET clauses.
func buildPatchSet(patch entity.ProductPatch) ([]string, []any) {
	var parts []string
	var values []any
	add := func(col string, v any) {
		parts = append(parts, col+" = ?")
		values = append(values, v)
	}

	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Price != nil {
		add("price", *patch.Price)
	}
	if patch.Currency != nil {
		add("currency", *patch.Currency)
	}
	if patch.Category != nil {
		add("category", *patch.Category)
	}
	if patch.IsActive != nil {
		add("is_active", boolToInt(*patch.IsActive))
	}
	if patch.Availability != nil {
		add("availability", *patch.Availability)
	}
	if patch.ImageURL != nil {
		add("image_url", *patch.ImageURL)
	}
	return parts, values
}

// productFromPatch fills insert defaults for fields the patch does not carry.
func productFromPatch(sku string, patch entity.ProductPatch) entity.Product {
	p := entity.Product{
		SKU:          sku,
		Title:        sku,
		Currency:     "UAH",
		IsActive:     true,
		Availability: entity.AvailabilityInStock,
	}
	if patch.Title != nil && *patch.Title != "" {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Currency != nil && *patch.Currency != "" {
		p.Currency = *patch.Currency
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.IsActive != nil {
		p.IsActive = *patch.IsActive
	}
	if patch.Availability != nil && *patch.Availability != "" {
		p.Availability = *patch.Availability
	}
	if patch.ImageURL != nil {
		p.ImageURL = *patch.ImageURL
	}
	return p
}

// GetBySKU returns a product or repository.ErrNotFound.
func (s *sqliteProductRepository) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE sku = ?`, sku)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// List returns products matching the filter, ordered by category, title.
func (s *sqliteProductRepository) List(ctx context.Context, filter entity.ProductFilter) ([]entity.Product, error) {
	var where []string
	var args []any

	if filter.ActiveOnly {
		where = append(where, "is_active = 1")
	}
	if filter.Category != "" {
		where = append(where, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.Query != "" {
		where = append(where, "(sku LIKE ? OR title LIKE ?)")
		like := "%" + filter.Query + "%"
		args = append(args, like, like)
	}

	query := `SELECT ` + productColumns + ` FROM products`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY category, title"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

// Deactivate hides a product from the storefront.
func (s *sqliteProductRepository) Deactivate(ctx context.Context, sku string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE products SET is_active = 0 WHERE sku = ?`, sku)
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

// ReplaceAll swaps the catalog for the given products in one transaction.
func (s *sqliteProductRepository) ReplaceAll(ctx context.Context, products []entity.Product) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
		tx.Rollback()
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO products (`+productColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(sku) DO UPDATE SET
	title = excluded.title,
	description = excluded.description,
	price = excluded.price,
	currency = excluded.currency,
	category = excluded.category,
	is_active = excluded.is_active,
	availability = excluded.availability,
	image_url = excluded.image_url`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, p := range products {
		_, err := stmt.ExecContext(ctx, p.SKU, p.Title, p.Description, p.Price,
			p.Currency, p.Category, boolToInt(p.IsActive), p.Availability, p.ImageURL)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("cannot insert product %s: %w", p.SKU, err)
		}
	}

	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*entity.Product, error) {
	var p entity.Product
	var active int
	if err := row.Scan(&p.SKU, &p.Title, &p.Description, &p.Price, &p.Currency,
		&p.Category, &active, &p.Availability, &p.ImageURL); err != nil {
		return nil, err
	}
	p.IsActive = active != 0
	return &p, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
