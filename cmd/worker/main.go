package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/saschaorth/item-catalog/pkg/app"
	"github.com/saschaorth/item-catalog/pkg/cache"
	"github.com/saschaorth/item-catalog/pkg/config"
	"github.com/saschaorth/item-catalog/pkg/database"
	"github.com/saschaorth/item-catalog/pkg/events"
	"github.com/saschaorth/item-catalog/pkg/logger"
	"github.com/saschaorth/item-catalog/pkg/telemetry"
	itemEvents "github.com/saschaorth/item-catalog/services/catalog/domain/events"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx := context.Background()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	appConfig := &app.Application{
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
		Config:   cfg,
	}

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	errCh, err := a.EventBus.Subscribe(ctx, itemEvents.TopicItemChanged, handleItemChanged(a))
	if err != nil {
		return err
	}

	// Drain subscriber errors in background so the channel never blocks.
	go func() {
		for err := range errCh {
			a.Logger.ErrorContext(ctx, "subscriber error",
				"topic", itemEvents.TopicItemChanged,
				"error", err,
			)
		}
	}()

	a.Logger.Info("event subscribers registered", "topics", []string{itemEvents.TopicItemChanged})
	return nil
}

// handleItemChanged returns a handler for catalog.item.changed events.
// Handlers must be idempotent. Creates and updates warm the Redis read-model
// cache; deletes evict the entry so GetByID cannot serve a removed item.
func handleItemChanged(a *app.Application) func(context.Context, *message.Message) error {
	itemCache := cache.NewItemCache(a.Redis)
	return func(ctx context.Context, msg *message.Message) error {
		var evt itemEvents.ItemChangedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		if evt.Action == itemEvents.ActionDeleted {
			if err := itemCache.Delete(ctx, evt.ItemID); err != nil {
				a.Logger.WarnContext(ctx, "cache evict failed for item change",
					"item_id", evt.ItemID, "error", err)
			}
			return nil
		}

		if err := itemCache.Set(ctx, &cache.CachedItem{
			ID:          evt.ItemID,
			Name:        evt.Name,
			Description: evt.Description,
			CategoryID:  evt.CategoryID,
			UserID:      evt.UserID,
			CreatedAt:   evt.OccurredAt,
		}); err != nil {
			// Cache warming is best-effort; log but do not fail the handler.
			a.Logger.WarnContext(ctx, "cache warm failed for item change",
				"item_id", evt.ItemID, "action", evt.Action, "error", err)
		} else {
			a.Logger.InfoContext(ctx, "cache warmed",
				"item_id", evt.ItemID, "action", evt.Action)
		}

		return nil
	}
}
