package entity

import "time"

// Order statuses.
const (
	OrderStatusNew      = "new"
	OrderStatusDone     = "done"
	OrderStatusCanceled = "canceled"
)

// Buyer identifies the Telegram user who placed an order.
type Buyer struct {
	UserID   int64
	Username string
	Name     string
}

// OrderItem is one priced cart line. Title and price are denormalized at
// checkout time so later catalog edits do not rewrite history.
type OrderItem struct {
	SKU   string `json:"sku"`
	Title string `json:"title"`
	Price int64  `json:"price"`
	Qty   int    `json:"qty"`
}

// Order is a placed order together with delivery details.
type Order struct {
	ID        int64       `json:"id"`
	Buyer     Buyer       `json:"-"`
	Items     []OrderItem `json:"items"`
	Total     int64       `json:"total"`
	Currency  string      `json:"currency"`
	City      string      `json:"city"`
	Branch    string      `json:"branch"`
	Receiver  string      `json:"receiver"`
	Phone     string      `json:"phone"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
}

// CheckoutItem is a cart line as sent by the WebApp.
type CheckoutItem struct {
	SKU string `json:"sku"`
	Qty int    `json:"qty"`
}

// CheckoutRequest is the payload the storefront WebApp posts on checkout.
// The tg_* fields come from the WebApp's Telegram init data.
type CheckoutRequest struct {
	Type     string         `json:"type"`
	Items    []CheckoutItem `json:"items"`
	City     string         `json:"city"`
	Branch   string         `json:"branch"`
	Receiver string         `json:"receiver"`
	Phone    string         `json:"phone"`
	Username string         `json:"username"`
	UserID   int64          `json:"tg_user_id"`
	Name     string         `json:"tg_name"`
}
