package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tranqh/finbot/internal/bot"
	"github.com/tranqh/finbot/internal/config"
	"github.com/tranqh/finbot/internal/handler"
	"github.com/tranqh/finbot/internal/repository/postgres"
	"github.com/tranqh/finbot/internal/service"
)

func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Connect to database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Connected to database")

	// Apply schema migrations
	if err := postgres.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(pool)
	tagRepo := postgres.NewTagRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)

	// Initialize services
	identityService := service.NewIdentityService(userRepo)
	tagService := service.NewTagService(tagRepo)
	ledgerService := service.NewLedgerService(transactionRepo, userRepo, tagService)
	statsService := service.NewStatsService(transactionRepo)

	// Initialize Telegram API client
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Telegram client")
	}
	log.Info().Str("account", api.Self.UserName).Msg("Authorized on Telegram")

	limiter := bot.NewChatLimiter()
	defer limiter.Stop()
	botHandler := bot.NewHandler(api, identityService, tagService, ledgerService, statsService, limiter)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomiddleware.RequestID())
	e.Use(zerologMiddleware())
	e.Use(echomiddleware.Recover())

	webhookHandler := handler.NewWebhookHandler(botHandler)
	handler.RegisterRoutes(e, webhookHandler, cfg.BotToken)

	pollCtx, stopPolling := context.WithCancel(context.Background())
	defer stopPolling()

	if cfg.WebhookURL != "" {
		webhook, err := tgbotapi.NewWebhook(cfg.WebhookURL + "/bot" + cfg.BotToken)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid webhook URL")
		}
		if _, err := api.Request(webhook); err != nil {
			log.Fatal().Err(err).Msg("Failed to register webhook")
		}
		log.Info().Str("url", cfg.WebhookURL).Msg("Webhook registered")
	} else {
		// No public URL: fall back to long polling.
		updateConfig := tgbotapi.NewUpdate(0)
		updateConfig.Timeout = 60
		updates := api.GetUpdatesChan(updateConfig)
		go func() {
			for {
				select {
				case update := <-updates:
					botHandler.HandleUpdate(pollCtx, update)
				case <-pollCtx.Done():
					return
				}
			}
		}()
		log.Info().Msg("Long polling started")
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down...")
	stopPolling()
	api.StopReceivingUpdates()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
