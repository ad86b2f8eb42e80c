package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Eursukkul/eticket/config"
	"github.com/Eursukkul/eticket/internal/consumer"
	"github.com/Eursukkul/eticket/internal/handler"
	"github.com/Eursukkul/eticket/internal/middleware"
	"github.com/Eursukkul/eticket/internal/repository"
	"github.com/Eursukkul/eticket/internal/service"
	"github.com/Eursukkul/eticket/pkg/database"
	"github.com/Eursukkul/eticket/pkg/logger"
	"github.com/Eursukkul/eticket/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

const tokenTTL = 24 * time.Hour

func main() {
	cfg := config.Load()
	logger.Init(os.Stdout, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kv, err := newKVRepository(cfg)
	if err != nil {
		logger.Log.Error("[main] storage unavailable", "driver", cfg.StorageDriver, "error", err)
		os.Exit(1)
	}

	// RabbitMQ is optional: without a URL the store runs without events.
	var publisher service.EventPublisher
	if cfg.RabbitURL != "" {
		mqPublisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			logger.Log.Error("[main] failed to connect publisher to RabbitMQ", "error", err)
			os.Exit(1)
		}
		defer mqPublisher.Close()
		publisher = mqPublisher

		mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
		if err != nil {
			logger.Log.Error("[main] failed to connect consumer to RabbitMQ", "error", err)
			os.Exit(1)
		}
		defer mqConsumer.Close()

		msgs, err := mqConsumer.Consume()
		if err != nil {
			logger.Log.Error("[main] failed to start consuming", "error", err)
			os.Exit(1)
		}
		consumer.NewNotificationConsumer(consumer.LogNotifier{}).Start(ctx, msgs)
	}

	store := service.NewStore(kv, publisher, service.Options{StrictSeats: cfg.StrictSeats})
	store.Load(ctx)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Validator = middleware.NewRequestValidator()
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			logger.Log.Info("[http] request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency)
			return nil
		},
	}))
	e.Use(echoMw.Recover())
	e.Use(echoMw.CORS())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": "eticket"})
	})

	handler.RegisterRoutes(e, store, middleware.NewTokenIssuer(cfg.JWTSecret, tokenTTL))

	go func() {
		logger.Log.Info("[main] eticket service starting", "port", cfg.ServerPort, "storage", cfg.StorageDriver, "strict_seats", cfg.StrictSeats)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("[main] server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("[main] shutdown", "error", err)
	}
	if err := store.Flush(shutdownCtx); err != nil {
		logger.Log.Error("[main] final flush", "error", err)
	}
	logger.Log.Info("[main] stopped")
}

func newKVRepository(cfg *config.Config) (repository.KVRepository, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		return repository.NewMemoryKV(), nil
	case config.StoragePostgres:
		db, err := database.NewPostgresDB(cfg.DSN())
		if err != nil {
			return nil, err
		}
		return repository.NewKVRepository(db), nil
	default:
		return nil, errors.New("unknown STORAGE_DRIVER " + cfg.StorageDriver)
	}
}
