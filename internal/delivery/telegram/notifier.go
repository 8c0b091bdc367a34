package telegram

import (
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/yourusername/telegram-shop-bot/internal/domain/entity"
)

// AdminNotifier delivers order notifications to the operator chat. It
// prefers a dedicated admin bot and falls back to the storefront bot when
// no separate token is configured.
type AdminNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	log    zerolog.Logger
}

// NewAdminNotifier builds the notifier. adminToken may be empty.
func NewAdminNotifier(mainBot *tgbotapi.BotAPI, adminToken string, chatID int64, log zerolog.Logger) (*AdminNotifier, error) {
	bot := mainBot
	if adminToken != "" {
		adminBot, err := tgbotapi.NewBotAPI(adminToken)
		if err != nil {
			return nil, fmt.Errorf("failed to create admin bot: %w", err)
		}
		bot = adminBot
	}
	return &AdminNotifier{bot: bot, chatID: chatID, log: log}, nil
}

// NotifyOrder sends the new-order message to the operator chat. A missing
// chat id disables notifications; a send failure is logged, never fatal.
func (n *AdminNotifier) NotifyOrder(order *entity.Order) {
	if n.chatID == 0 {
		return
	}

	msg := tgbotapi.NewMessage(n.chatID, formatOrderHTML(order))
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := n.bot.Send(msg); err != nil {
		n.log.Error().Err(err).Int64("order_id", order.ID).Msg("notify admin failed")
	}
}

// formatOrderHTML renders the operator notification.
func formatOrderHTML(order *entity.Order) string {
	var items strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&items, "• %s × %d = %d %s\n",
			html.EscapeString(item.Title), item.Qty, item.Price*int64(item.Qty), order.Currency)
	}

	buyerUsername := "—"
	if order.Buyer.Username != "" {
		buyerUsername = "@" + strings.TrimPrefix(order.Buyer.Username, "@")
	}

	return fmt.Sprintf(`🆕 <b>Замовлення #%d</b>
Клієнт: %s (%s)
UserID: <code>%d</code>

%s<b>Разом:</b> %d %s

<b>Доставка (НП)</b>
Місто: %s
Відділення: %s
Отримувач: %s
Телефон: %s`,
		order.ID,
		html.EscapeString(order.Buyer.Name), html.EscapeString(buyerUsername),
		order.Buyer.UserID,
		items.String(), order.Total, order.Currency,
		html.EscapeString(order.City), html.EscapeString(order.Branch),
		html.EscapeString(order.Receiver), html.EscapeString(order.Phone))
}
