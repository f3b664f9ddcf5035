package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"desyncbot/internal/catalog"
	"desyncbot/internal/config"
	"desyncbot/internal/dialog"
	"desyncbot/internal/handler"
	"desyncbot/internal/i18n"
	"desyncbot/internal/middleware"
	"desyncbot/internal/repository/memory"
	"desyncbot/internal/service"
	"desyncbot/internal/watchdog"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func main() {
	// Initialize logger
	logCfg := zap.NewProductionConfig()
	logger, err := logCfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting subscription bot")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}
	logCfg.Level.SetLevel(cfg.LogLevel)

	logger.Info("Configuration loaded successfully",
		zap.Duration("inactivity_timeout", cfg.InactivityTimeout),
		zap.String("default_language", cfg.DefaultLanguage.String()),
	)

	// Load static content
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		logger.Fatal("Failed to load catalog", zap.Error(err), zap.String("path", cfg.CatalogPath))
	}
	texts, err := i18n.Load(cfg.LocalesPath)
	if err != nil {
		logger.Fatal("Failed to load locales", zap.Error(err), zap.String("path", cfg.LocalesPath))
	}

	logger.Info("Content loaded",
		zap.Int("products", len(cat.Products())),
		zap.Int("faq_topics", len(cat.Topics())),
		zap.Int("messages", len(texts.Keys())),
	)

	// Initialize session state and inactivity timers
	sessions := service.NewSessionService(memory.NewSessionRepo(), cfg.DefaultLanguage, logger)
	timers := watchdog.New(cfg.InactivityTimeout, logger)

	// Initialize Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: cfg.PollTimeout},
		OnError: func(err error, c tele.Context) {
			fields := []zap.Field{zap.Error(err)}
			if c != nil && c.Sender() != nil {
				fields = append(fields, zap.Int64("user_id", c.Sender().ID))
			}
			logger.Error("Handler failed", fields...)
		},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	logger.Info("Telegram bot initialized", zap.String("username", bot.Me.Username))

	renderer := handler.NewRenderer(bot, cfg.SendMaxRetries, logger)
	ctrl, err := dialog.NewController(sessions, timers, cat, texts, renderer, logger)
	if err != nil {
		logger.Fatal("Failed to create dialog controller", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize handler
	h := handler.NewHandler(ctx, bot, ctrl, logger)
	h.RegisterHandlers(
		middleware.Recover(logger),
		middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst, logger).Middleware(),
	)

	logger.Info("Handlers registered")

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	// Graceful shutdown
	bot.Stop()
	timers.Stop()
	cancel()

	logger.Info("Bot stopped gracefully")
}
