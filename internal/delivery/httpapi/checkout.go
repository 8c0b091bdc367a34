package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/telegram-shop-bot/internal/domain/entity"
	"github.com/yourusername/telegram-shop-bot/internal/usecase"
)

// OrderNotifier is told about freshly created orders; the Telegram side
// confirms to the buyer and pings the operator chat.
type OrderNotifier interface {
	OrderCreated(order *entity.Order)
}

// SetNotifier attaches the order notifier. Without one, checkouts still
// succeed but nobody is messaged.
func (s *Server) SetNotifier(n OrderNotifier) {
	s.notifier = n
}

// handleCheckout processes a cart posted by the storefront WebApp.
func (s *Server) handleCheckout(c *gin.Context) {
	var req entity.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "bad json")
		return
	}

	buyer := entity.Buyer{
		UserID:   req.UserID,
		Username: req.Username,
		Name:     req.Name,
	}

	order, err := s.orders.Checkout(c.Request.Context(), buyer, req)
	switch {
	case errors.Is(err, usecase.ErrUnknownPayload):
		fail(c, http.StatusBadRequest, "unknown payload type")
		return
	case errors.Is(err, usecase.ErrEmptyCart):
		fail(c, http.StatusBadRequest, "cart empty")
		return
	case err != nil:
		s.log.Error().Err(err).Int64("user_id", req.UserID).Msg("checkout failed")
		fail(c, http.StatusInternalServerError, "storage error")
		return
	}

	s.log.Info().Int64("order_id", order.ID).Int64("total", order.Total).Msg("order created")
	if s.notifier != nil {
		s.notifier.OrderCreated(order)
	}
	ok(c, gin.H{"order_id": order.ID, "total": order.Total, "currency": order.Currency})
}
