package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/epping-food-court/api/internal/board"
	"github.com/epping-food-court/api/internal/bus"
	"github.com/epping-food-court/api/internal/config"
	"github.com/epping-food-court/api/internal/handler"
	"github.com/epping-food-court/api/internal/lifecycle"
	"github.com/epping-food-court/api/internal/model"
	"github.com/epping-food-court/api/internal/notify"
	"github.com/epping-food-court/api/internal/router"
	"github.com/epping-food-court/api/internal/service"
	"github.com/epping-food-court/api/internal/stats"
	"github.com/epping-food-court/api/internal/store"
	"github.com/epping-food-court/api/internal/ticket"
	"github.com/epping-food-court/api/internal/ws"
	"github.com/epping-food-court/api/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.FromEnv())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Remote data API clients
	client := store.NewClient(cfg.DataAPIURL, cfg.HTTPTimeout)

	var cache *store.ListCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("redis unreachable, order list cache disabled", "addr", cfg.RedisAddr, "error", err)
		} else {
			cache = store.NewListCache(rdb, cfg.OrderCacheTTL, logger.Component(log, "cache"))
			defer rdb.Close()
		}
	}

	orders := store.NewOrders(client, cache)
	menu := store.NewMenu(client)
	inventory := store.NewInventory(client)
	settings := store.NewSettings(client)
	payments := store.NewPayments(client)

	// Notifications: AMQP when configured, log-only otherwise
	var notifier notify.Notifier
	if cfg.AMQPURL != "" {
		n, err := notify.NewAMQPNotifier(cfg.AMQPURL)
		if err != nil {
			log.Error("amqp connect failed, falling back to log notifier", "error", err)
			notifier = notify.NewLogNotifier(logger.Component(log, "notify"))
		} else {
			notifier = n
		}
	} else {
		notifier = notify.NewLogNotifier(logger.Component(log, "notify"))
	}
	defer notifier.Close()

	// Stats bus: recompute from the full order list plus low-stock count
	recompute := func(ctx context.Context) (*model.StatsSnapshot, error) {
		all, err := orders.List(ctx, store.OrderFilter{})
		if err != nil {
			return nil, fmt.Errorf("list orders: %w", err)
		}
		lowStock := 0
		if istats, err := inventory.Statistics(ctx); err != nil {
			log.Warn("inventory stats unavailable", "error", err)
		} else {
			lowStock = istats.LowStockItems
		}
		snap := stats.Compute(all, lowStock, time.Now())
		return &snap, nil
	}
	statsBus := bus.New(recompute, cfg.StatsDebounce, cfg.StatsHeartbeat, logger.Component(log, "bus"))

	lifecycleSvc := lifecycle.NewService(orders, statsBus, logger.Component(log, "lifecycle"))
	orderSvc := service.NewOrderService(orders, settings, payments, notifier, statsBus, logger.Component(log, "orders"))
	kanban := board.New(orders, lifecycleSvc)
	renderer := ticket.NewRenderer(cfg.TrackingBaseURL)

	hub := ws.NewHub(logger.Component(log, "ws"))
	unsubscribe := statsBus.Subscribe(hub.BroadcastStats)
	defer unsubscribe()

	hlog := logger.Component(log, "handler")
	r := router.New(cfg, router.Handlers{
		Orders:    handler.NewOrderHandler(orderSvc, orders, lifecycleSvc, renderer, hlog),
		Board:     handler.NewBoardHandler(kanban, hlog),
		Stats:     handler.NewStatsHandler(statsBus, hlog),
		Menu:      handler.NewMenuHandler(menu, hlog),
		Inventory: handler.NewInventoryHandler(inventory, hlog),
		Settings:  handler.NewSettingsHandler(settings, hlog),
	}, hub)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return statsBus.Run(gctx)
	})
	g.Go(func() error {
		return hub.Run(gctx)
	})
	g.Go(func() error {
		log.Info("server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
