package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/yourusername/telegram-shop-bot/internal/domain/entity"
	"github.com/yourusername/telegram-shop-bot/internal/usecase"
)

const maxCatalogFileSize = 5 * 1024 * 1024

// BotHandler is the storefront bot: buyer checkout plus operator commands.
type BotHandler struct {
	bot       *tgbotapi.BotAPI
	notifier  *AdminNotifier
	orders    usecase.OrderUseCase
	admin     usecase.AdminUseCase
	webAppURL string
	log       zerolog.Logger

	// Users who typed /admin and owe us a password.
	mu               sync.RWMutex
	awaitingPassword map[int64]bool
}

// NewBotHandler builds the bot handler around an already-created bot API.
func NewBotHandler(
	bot *tgbotapi.BotAPI,
	notifier *AdminNotifier,
	orders usecase.OrderUseCase,
	admin usecase.AdminUseCase,
	webAppURL string,
	log zerolog.Logger,
) *BotHandler {
	return &BotHandler{
		bot:              bot,
		notifier:         notifier,
		orders:           orders,
		admin:            admin,
		webAppURL:        webAppURL,
		log:              log,
		awaitingPassword: make(map[int64]bool),
	}
}

// Start runs the long-poll update loop until ctx is canceled.
func (h *BotHandler) Start(ctx context.Context) error {
	h.log.Info().Str("bot", h.bot.Self.UserName).Msg("bot started")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			h.log.Info().Msg("bot stopping")
			h.bot.StopReceivingUpdates()
			return ctx.Err()
		case update := <-updates:
			if update.CallbackQuery != nil {
				go h.handleCallback(ctx, update.CallbackQuery)
				continue
			}
			if update.Message == nil {
				continue
			}
			go h.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage dispatches one incoming message.
func (h *BotHandler) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID

	if message.Document != nil {
		h.handleDocumentMessage(ctx, message)
		return
	}

	if h.isAwaitingPassword(userID) {
		h.handlePasswordInput(ctx, message)
		return
	}

	if message.IsCommand() {
		h.handleCommand(ctx, message)
		return
	}
}

// handleCommand is the command dispatch table.
func (h *BotHandler) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	switch message.Command() {
	case "start":
		h.sendWelcome(message.Chat.ID)
	case "help":
		h.sendMessage(message.Chat.ID, helpText)
	case "admin":
		h.handleAdminCommand(ctx, message)
	case "logout":
		h.handleLogoutCommand(ctx, message)
	case "catalog":
		h.handleCatalogCommand(ctx, message)
	case "orders":
		h.handleOrdersCommand(ctx, message)
	default:
		h.sendMessage(message.Chat.ID, "Невідома команда. /help — довідка.")
	}
}

const helpText = `🛍 Магазин у Telegram

/start — відкрити вітрину
/help — ця довідка

Для оператора:
/admin — вхід в адмін-панель
/catalog — стан каталогу
/orders — останні замовлення
/logout — вихід`

// sendWelcome greets the buyer and links the storefront WebApp.
func (h *BotHandler) sendWelcome(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "Вітаємо! Відкрийте вітрину кнопкою нижче та зберіть кошик — замовлення прийде сюди в чат.")
	if h.webAppURL != "" {
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonURL("🛍 Відкрити магазин", h.webAppURL),
			),
		)
	}
	if _, err := h.bot.Send(msg); err != nil {
		h.log.Error().Err(err).Msg("send welcome failed")
	}
}

// OrderCreated confirms the order to the buyer in chat and notifies the
// operator. Called by the HTTP layer after a WebApp checkout.
func (h *BotHandler) OrderCreated(order *entity.Order) {
	if order.Buyer.UserID != 0 {
		h.sendMessage(order.Buyer.UserID,
			fmt.Sprintf("✅ Замовлення #%d створено! Ми зв'яжемося з вами щодо доставки.", order.ID))
	}
	h.notifier.NotifyOrder(order)
}

// handleAdminCommand starts the password login flow.
func (h *BotHandler) handleAdminCommand(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID

	isAdmin, _ := h.admin.IsAdmin(ctx, userID)
	if isAdmin {
		h.sendMessage(message.Chat.ID, "Ви вже увійшли як оператор.")
		return
	}

	h.setAwaitingPassword(userID, true)
	h.sendMessage(message.Chat.ID, "🔐 Введіть пароль оператора:")
}

// handlePasswordInput finishes the login flow; the password message is
// deleted from the chat right away.
func (h *BotHandler) handlePasswordInput(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID
	password := message.Text

	h.setAwaitingPassword(userID, false)

	deleteMsg := tgbotapi.NewDeleteMessage(message.Chat.ID, message.MessageID)
	if _, err := h.bot.Request(deleteMsg); err != nil {
		h.log.Warn().Err(err).Msg("cannot delete password message")
	}

	success, err := h.admin.Login(ctx, userID, password)
	if err != nil {
		h.log.Error().Err(err).Int64("user_id", userID).Msg("login failed")
		h.sendMessage(message.Chat.ID, "❌ Сталася помилка входу.")
		return
	}
	if !success {
		h.sendMessage(message.Chat.ID, "❌ Невірний пароль!")
		return
	}

	h.sendMessage(message.Chat.ID, `✅ Вітаємо в адмін-панелі!

📤 Щоб оновити каталог, надішліть Excel-файл (.xlsx, до 5МБ) зі стовпцями:
sku / артикул, назва, ціна, категорія, опис, наявність

/catalog — стан каталогу
/orders — останні замовлення
/logout — вихід`)
}

// handleLogoutCommand drops the operator session.
func (h *BotHandler) handleLogoutCommand(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID

	isAdmin, _ := h.admin.IsAdmin(ctx, userID)
	if !isAdmin {
		h.sendMessage(message.Chat.ID, "Ви не оператор.")
		return
	}

	if err := h.admin.Logout(ctx, userID); err != nil {
		h.sendMessage(message.Chat.ID, "Помилка виходу.")
		return
	}
	h.sendMessage(message.Chat.ID, "✅ Ви вийшли з адмін-панелі.")
}

// handleCatalogCommand shows catalog stats to the operator.
func (h *BotHandler) handleCatalogCommand(ctx context.Context, message *tgbotapi.Message) {
	isAdmin, _ := h.admin.IsAdmin(ctx, message.From.ID)
	if !isAdmin {
		h.sendMessage(message.Chat.ID, "❌ Ця команда лише для операторів.")
		return
	}

	info, err := h.admin.CatalogInfo(ctx)
	if err != nil {
		h.sendMessage(message.Chat.ID, "❌ Каталог порожній. Завантажте Excel-файл.")
		return
	}
	h.sendMessage(message.Chat.ID, info)
}

// handleOrdersCommand lists recent orders with status buttons.
func (h *BotHandler) handleOrdersCommand(ctx context.Context, message *tgbotapi.Message) {
	isAdmin, _ := h.admin.IsAdmin(ctx, message.From.ID)
	if !isAdmin {
		h.sendMessage(message.Chat.ID, "❌ Ця команда лише для операторів.")
		return
	}

	orders, err := h.orders.ListRecent(ctx, 10)
	if err != nil {
		h.log.Error().Err(err).Msg("list orders failed")
		h.sendMessage(message.Chat.ID, "❌ Не вдалося завантажити замовлення.")
		return
	}
	if len(orders) == 0 {
		h.sendMessage(message.Chat.ID, "Замовлень поки немає.")
		return
	}

	for _, order := range orders {
		msg := tgbotapi.NewMessage(message.Chat.ID, formatOrderSummary(&order))
		if order.Status == entity.OrderStatusNew {
			msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
				tgbotapi.NewInlineKeyboardRow(
					tgbotapi.NewInlineKeyboardButtonData("Виконано ✅", "ord_done:"+strconv.FormatInt(order.ID, 10)),
					tgbotapi.NewInlineKeyboardButtonData("Скасувати ❌", "ord_cancel:"+strconv.FormatInt(order.ID, 10)),
				),
			)
		}
		if _, err := h.bot.Send(msg); err != nil {
			h.log.Error().Err(err).Int64("order_id", order.ID).Msg("send order summary failed")
		}
	}
}

// formatOrderSummary renders one order for the operator's /orders list.
func formatOrderSummary(order *entity.Order) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📦 Замовлення #%d [%s]\n%s\n", order.ID, order.Status,
		order.CreatedAt.Format("2006-01-02 15:04"))
	for _, item := range order.Items {
		fmt.Fprintf(&sb, "• %s × %d = %d %s\n", item.Title, item.Qty,
			item.Price*int64(item.Qty), order.Currency)
	}
	fmt.Fprintf(&sb, "Разом: %d %s\n%s, %s\n%s, %s",
		order.Total, order.Currency, order.City, order.Branch, order.Receiver, order.Phone)
	return sb.String()
}

// handleDocumentMessage imports an Excel catalog sent by the operator.
func (h *BotHandler) handleDocumentMessage(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID

	isAdmin, _ := h.admin.IsAdmin(ctx, userID)
	if !isAdmin {
		h.sendMessage(message.Chat.ID, "❌ Файли можуть завантажувати лише оператори. Увійдіть через /admin.")
		return
	}

	doc := message.Document
	if doc.FileSize > maxCatalogFileSize {
		h.sendMessage(message.Chat.ID, "❌ Файл має бути не більше 5МБ!")
		return
	}
	if !strings.HasSuffix(doc.FileName, ".xlsx") && !strings.HasSuffix(doc.FileName, ".xls") {
		h.sendMessage(message.Chat.ID, "❌ Приймаються лише Excel-файли (.xlsx, .xls)!")
		return
	}

	h.sendMessage(message.Chat.ID, "⏳ Файл завантажується та обробляється...")

	fileBytes, err := h.downloadFile(doc.FileID)
	if err != nil {
		h.log.Error().Err(err).Str("file", doc.FileName).Msg("file download failed")
		h.sendMessage(message.Chat.ID, "❌ Не вдалося завантажити файл.")
		return
	}

	count, err := h.admin.ImportCatalog(ctx, userID, fileBytes, doc.FileName)
	if err != nil {
		h.log.Error().Err(err).Str("file", doc.FileName).Msg("catalog import failed")
		h.sendMessage(message.Chat.ID, fmt.Sprintf("❌ Помилка оновлення каталогу: %v", err))
		return
	}

	h.sendMessage(message.Chat.ID, fmt.Sprintf(`✅ Каталог оновлено!

📦 Імпортовано товарів: %d
📄 Файл: %s

/catalog — стан каталогу`, count, doc.FileName))
}

// downloadFile fetches a Telegram file by id.
func (h *BotHandler) downloadFile(fileID string) ([]byte, error) {
	file, err := h.bot.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, err
	}

	resp, err := http.Get(file.Link(h.bot.Token))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

// handleCallback processes order status buttons.
func (h *BotHandler) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	userID := cq.From.ID
	chatID := cq.Message.Chat.ID
	data := cq.Data

	callback := tgbotapi.NewCallback(cq.ID, "")
	if _, err := h.bot.Request(callback); err != nil {
		h.log.Warn().Err(err).Msg("callback ack failed")
	}

	var status string
	var idStr string
	switch {
	case strings.HasPrefix(data, "ord_done:"):
		status = entity.OrderStatusDone
		idStr = strings.TrimPrefix(data, "ord_done:")
	case strings.HasPrefix(data, "ord_cancel:"):
		status = entity.OrderStatusCanceled
		idStr = strings.TrimPrefix(data, "ord_cancel:")
	default:
		return
	}

	orderID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.sendMessage(chatID, "❌ Не вдалося прочитати номер замовлення.")
		return
	}

	if err := h.admin.MarkOrder(ctx, userID, orderID, status); err != nil {
		if err == usecase.ErrNotAdmin {
			h.sendMessage(chatID, "❌ Ця дія лише для операторів.")
			return
		}
		h.log.Error().Err(err).Int64("order_id", orderID).Msg("mark order failed")
		h.sendMessage(chatID, "❌ Не вдалося оновити статус замовлення.")
		return
	}

	// Drop the buttons from the processed order message.
	edit := tgbotapi.NewEditMessageText(chatID, cq.Message.MessageID,
		cq.Message.Text+"\n\n➡️ Статус: "+status)
	if _, err := h.bot.Send(edit); err != nil {
		h.log.Warn().Err(err).Msg("edit order message failed")
	}
}

// isAwaitingPassword reports whether we owe the user a password prompt.
func (h *BotHandler) isAwaitingPassword(userID int64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.awaitingPassword[userID]
}

// setAwaitingPassword toggles the password-wait flag.
func (h *BotHandler) setAwaitingPassword(userID int64, awaiting bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if awaiting {
		h.awaitingPassword[userID] = true
	} else {
		delete(h.awaitingPassword, userID)
	}
}

// sendMessage sends a plain text message.
func (h *BotHandler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		h.log.Error().Err(err).Int64("chat_id", chatID).Msg("send message failed")
	}
}
