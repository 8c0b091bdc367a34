package main

import (
	"context"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/yourusername/telegram-shop-bot/config"
	"github.com/yourusername/telegram-shop-bot/internal/delivery/httpapi"
	"github.com/yourusername/telegram-shop-bot/internal/delivery/telegram"
	"github.com/yourusername/telegram-shop-bot/internal/infrastructure/imaging"
	"github.com/yourusername/telegram-shop-bot/internal/infrastructure/parser"
	"github.com/yourusername/telegram-shop-bot/internal/infrastructure/storage"
	"github.com/yourusername/telegram-shop-bot/internal/logs"
	"github.com/yourusername/telegram-shop-bot/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	logger := logs.New(cfg.LogFile, cfg.LogConsole)

	db, err := storage.OpenDB(cfg.DBPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot open database")
	}
	defer db.Close()

	productRepo, err := storage.NewSQLiteProductRepository(db)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot init product store")
	}
	orderRepo, err := storage.NewSQLiteOrderRepository(db)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot init order store")
	}
	adminRepo := storage.NewMemoryAdminRepository()

	catalogUC := usecase.NewCatalogUseCase(productRepo)
	orderUC := usecase.NewOrderUseCase(productRepo, orderRepo)
	adminUC := usecase.NewAdminUseCase(cfg.AdminPassword, adminRepo, productRepo,
		parser.NewExcelCatalogParser(), orderUC)

	images, err := imaging.NewProcessor(cfg.UploadDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot init image processor")
	}

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create bot")
	}

	notifier, err := telegram.NewAdminNotifier(bot, cfg.AdminBotToken, cfg.AdminChatID, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create admin notifier")
	}

	handler := telegram.NewBotHandler(bot, notifier, orderUC, adminUC, cfg.WebAppURL, logger)

	server := httpapi.NewServer(catalogUC, orderUC, images, cfg.PublicDir, logger)
	server.SetNotifier(handler)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := ":" + cfg.HTTPPort
		logger.Info().Str("addr", addr).Msg("http server starting")
		if err := server.Run(addr); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	if err := handler.Start(ctx); err != nil && err != context.Canceled {
		logger.Fatal().Err(err).Msg("bot stopped with error")
	}
}
