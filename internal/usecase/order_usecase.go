package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/yourusername/telegram-shop-bot/internal/domain/entity"
	"github.com/yourusername/telegram-shop-bot/internal/domain/repository"
)

// Checkout errors surfaced to the bot layer.
var (
	ErrUnknownPayload = errors.New("unknown webapp payload type")
	ErrEmptyCart      = errors.New("cart is empty")
	ErrBadStatus      = errors.New("unknown order status")
)

// OrderUseCase is the order-intake business logic.
type OrderUseCase interface {
	// Checkout prices the cart against the live catalog, writes the order
	// and returns it with id and total filled in.
	Checkout(ctx context.Context, buyer entity.Buyer, req entity.CheckoutRequest) (*entity.Order, error)

	// ListRecent returns up to limit newest orders.
	ListRecent(ctx context.Context, limit int) ([]entity.Order, error)

	// Get returns one order by id.
	Get(ctx context.Context, id int64) (*entity.Order, error)

	// SetStatus moves an order to a new status.
	SetStatus(ctx context.Context, id int64, status string) error
}

type orderUseCase struct {
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
}

// NewOrderUseCase builds the order usecase.
func NewOrderUseCase(productRepo repository.ProductRepository, orderRepo repository.OrderRepository) OrderUseCase {
	return &orderUseCase{
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

// Checkout prices the cart from the catalog, never trusting client prices.
// Unknown SKUs and non-positive quantities are dropped silently; an order
// with nothing left to buy is rejected.
func (u *orderUseCase) Checkout(ctx context.Context, buyer entity.Buyer, req entity.CheckoutRequest) (*entity.Order, error) {
	if req.Type != "checkout" {
		return nil, ErrUnknownPayload
	}

	var items []entity.OrderItem
	var total int64
	currency := "UAH"

	for _, line := range req.Items {
		if line.Qty <= 0 {
			continue
		}
		product, err := u.productRepo.GetBySKU(ctx, line.SKU)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		items = append(items, entity.OrderItem{
			SKU:   product.SKU,
			Title: product.Title,
			Price: product.Price,
			Qty:   line.Qty,
		})
		total += product.Price * int64(line.Qty)
		currency = product.Currency
	}

	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	if username := strings.TrimSpace(req.Username); username != "" {
		buyer.Username = username
	}

	order := entity.Order{
		Buyer:     buyer,
		Items:     items,
		Total:     total,
		Currency:  currency,
		City:      strings.TrimSpace(req.City),
		Branch:    strings.TrimSpace(req.Branch),
		Receiver:  strings.TrimSpace(req.Receiver),
		Phone:     strings.TrimSpace(req.Phone),
		Status:    entity.OrderStatusNew,
		CreatedAt: time.Now(),
	}

	id, err := u.orderRepo.Save(ctx, order)
	if err != nil {
		return nil, err
	}
	order.ID = id
	return &order, nil
}

// ListRecent returns up to limit newest orders.
func (u *orderUseCase) ListRecent(ctx context.Context, limit int) ([]entity.Order, error) {
	return u.orderRepo.ListRecent(ctx, limit)
}

// Get returns one order by id.
func (u *orderUseCase) Get(ctx context.Context, id int64) (*entity.Order, error) {
	return u.orderRepo.GetByID(ctx, id)
}

// SetStatus moves an order to a new status.
func (u *orderUseCase) SetStatus(ctx context.Context, id int64, status string) error {
	switch status {
	case entity.OrderStatusNew, entity.OrderStatusDone, entity.OrderStatusCanceled:
	default:
		return ErrBadStatus
	}
	return u.orderRepo.UpdateStatus(ctx, id, status)
}
