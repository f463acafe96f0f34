package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/rutibeauty/salon_bot/internal/app"
	"github.com/rutibeauty/salon_bot/internal/calendar"
	"github.com/rutibeauty/salon_bot/internal/config"
	"github.com/rutibeauty/salon_bot/internal/controller"
	"github.com/rutibeauty/salon_bot/internal/dateparse"
	"github.com/rutibeauty/salon_bot/internal/invite"
	"github.com/rutibeauty/salon_bot/internal/model"
	"github.com/rutibeauty/salon_bot/internal/notify"
	"github.com/rutibeauty/salon_bot/internal/repository"
	"github.com/rutibeauty/salon_bot/internal/service"
	"github.com/rutibeauty/salon_bot/internal/tools"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting salon bot",
		zap.String("environment", cfg.Environment),
		zap.String("timezone", cfg.Timezone))

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Fatal("Failed to load timezone", zap.String("timezone", cfg.Timezone), zap.Error(err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Стор броней: Postgres если задан DSN, иначе память процесса
	var store repository.BookingStore
	if cfg.DBDSN != "" {
		pool, err := pgxpool.New(ctx, cfg.DBDSN)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer pool.Close()

		migrator, err := app.NewMigrator(pool, "migrations")
		if err != nil {
			logger.Fatal("Failed to create migrator", zap.Error(err))
		}
		if err := migrator.Run(ctx); err != nil {
			logger.Fatal("Failed to apply migrations", zap.Error(err))
		}
		migrator.Close()

		store = repository.NewPostgresStore(pool, loc)
		logger.Info("✅ Using Postgres booking store")
	} else {
		store = repository.NewMemoryStore()
		logger.Warn("DB_DSN not set, bookings will not survive restart")
	}

	hours := model.BusinessHours{
		OpenHour:    cfg.OpenHour,
		CloseHour:   cfg.CloseHour,
		SlotMinutes: cfg.SlotMinutes,
		Location:    loc,
	}

	feed := calendar.NewFeedClient(cfg.ICSFeedURL, cfg.FeedTimeout, loc, logger)
	availability := service.NewAvailabilityService(hours, feed, store, logger)

	// Уведомления: почта через SendGrid, без ключа — только логи
	var notifier notify.Notifier
	if cfg.SendgridAPIKey != "" && cfg.EmailFrom != "" {
		notifier = notify.NewEmailNotifier(cfg.SendgridAPIKey, cfg.EmailFrom, cfg.OwnerEmail, logger)
		logger.Info("✅ Email notifications enabled")
	} else {
		notifier = notify.NewNoopNotifier(logger)
		logger.Warn("SENDGRID_API_KEY not set, email notifications disabled")
	}

	booking := service.NewBookingService(
		availability,
		store,
		invite.NewBuilder(cfg.EmailFrom),
		notifier,
		logger,
	)

	toolset := tools.New(dateparse.New(loc), availability, booking, loc, logger)

	botInstance, err := bot.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	botController := controller.NewBotController(botInstance, toolset, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Fatal("Failed to register handlers", zap.Error(err))
	}

	if err := botController.Start(ctx); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}

	logger.Info("Bot stopped gracefully")
}
