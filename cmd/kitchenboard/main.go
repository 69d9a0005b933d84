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

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/angelmondragon/kitchenboard/api/controllers"
	"github.com/angelmondragon/kitchenboard/api/routes"
	"github.com/angelmondragon/kitchenboard/internal/board"
	"github.com/angelmondragon/kitchenboard/internal/catalog"
	"github.com/angelmondragon/kitchenboard/internal/orders"
	"github.com/angelmondragon/kitchenboard/internal/scheduler"
	"github.com/angelmondragon/kitchenboard/internal/settings"
	"github.com/angelmondragon/kitchenboard/internal/tickets"
	"github.com/angelmondragon/kitchenboard/pkg/backend"
	"github.com/angelmondragon/kitchenboard/pkg/config"
	"github.com/angelmondragon/kitchenboard/pkg/db"
	"github.com/angelmondragon/kitchenboard/pkg/instance"
	"github.com/angelmondragon/kitchenboard/pkg/logger"
	"github.com/angelmondragon/kitchenboard/pkg/metrics"
	"github.com/angelmondragon/kitchenboard/pkg/migrate"
	"github.com/angelmondragon/kitchenboard/pkg/pubsub"
	"github.com/angelmondragon/kitchenboard/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "kitchenboard"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	requireResource(context.Background(), logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "kitchenboard",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	requireResource(context.Background(), logg, "database", err)
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	err = migrate.MaybeRun(context.Background(), cfg, logg, dbClient)
	requireResource(context.Background(), logg, "migrations", err)

	var (
		redisClient *redis.Client
		redisPinger controllers.Pinger
		store       settings.Store = settings.NewMemoryStore()
		lease       scheduler.Lease
	)
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		requireResource(context.Background(), logg, "redis", err)
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		redisPinger = redisClient

		store, err = settings.NewRedisStore(redisClient)
		requireResource(context.Background(), logg, "settings store", err)

		lease, err = scheduler.NewRedisLease(redisClient, redisClient.LeaseKey("board"), instance.GetID(), cfg.Board.LeaseTTL)
		requireResource(context.Background(), logg, "scheduler lease", err)
	} else {
		logg.Warn(context.Background(), "redis not configured; toggles are kept in memory and this replica runs every task")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	boardMetrics := metrics.NewBoardMetrics(registry)
	taskMetrics := metrics.NewTaskMetrics(registry)

	backendClient, err := backend.NewClient(cfg.Backend.BaseURL,
		backend.WithAPIToken(cfg.Backend.APIToken),
		backend.WithTimeout(cfg.Backend.Timeout),
	)
	requireResource(context.Background(), logg, "backend client", err)

	names, err := catalog.New(backendClient, logg)
	requireResource(context.Background(), logg, "catalog", err)

	settingsService, err := settings.NewService(settings.ServiceParams{
		Store:    store,
		Logger:   logg,
		Defaults: settings.Flags{AutoPrint: cfg.Board.DefaultAutoPrint, AutoStatus: cfg.Board.DefaultAutoStatus},
	})
	requireResource(context.Background(), logg, "settings service", err)

	renderer, err := tickets.NewRenderer(names)
	requireResource(context.Background(), logg, "ticket renderer", err)

	sinks := []tickets.Sink{tickets.NewLogSink(logg)}
	if cfg.PubSub.Enabled() {
		pubsubClient, err := pubsub.NewClient(context.Background(), cfg.PubSub, logg)
		requireResource(context.Background(), logg, "pubsub", err)
		defer func() {
			if err := pubsubClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing pubsub", err)
			}
		}()
		pubsubSink, err := tickets.NewPubSubSink(pubsubClient.TicketPublisher())
		requireResource(context.Background(), logg, "pubsub ticket sink", err)
		sinks = append(sinks, pubsubSink)
	}

	ticketRepo := tickets.NewRepository(dbClient.DB())
	ticketService, err := tickets.NewService(tickets.ServiceParams{
		Repository: ticketRepo,
		Renderer:   renderer,
		Sinks:      sinks,
		Logger:     logg,
	})
	requireResource(context.Background(), logg, "ticket service", err)

	engine, err := board.NewEngine(board.EngineParams{
		Backend: backendClient,
		Printer: ticketService,
		Flags:   settingsService,
		Names:   names,
		Logger:  logg,
		Metrics: boardMetrics,
		Rules:   board.RulesFromConfig(cfg.Board),
	})
	requireResource(context.Background(), logg, "board engine", err)

	retentionTask, err := tickets.NewRetentionTask(tickets.RetentionTaskParams{
		Logger:     logg,
		DB:         dbClient,
		Repository: ticketRepo,
		Retention:  cfg.Tickets.Retention,
		Interval:   cfg.Tickets.RetentionInterval,
	})
	requireResource(context.Background(), logg, "ticket retention task", err)

	schedulerService, err := scheduler.NewService(scheduler.ServiceParams{
		Logger: logg,
		Registry: scheduler.NewRegistry(
			board.NewRefreshTask(engine, cfg.Board.RefreshInterval, names),
			board.NewAutoPrintTask(engine, cfg.Board.PrintInterval),
			board.NewAutoStatusTask(engine, cfg.Board.StatusInterval),
			retentionTask,
		),
		Lease:   lease,
		Metrics: taskMetrics,
	})
	requireResource(context.Background(), logg, "scheduler", err)

	ordersService, err := orders.NewService(orders.ServiceParams{
		Backend: backendClient,
		Board:   engine,
		Names:   names,
		Logger:  logg,
	})
	requireResource(context.Background(), logg, "orders service", err)

	addr := ":" + cfg.App.Port
	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisPinger,
			promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
			engine, settingsService, ticketService, ordersService),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.GetID(),
	})
	logg.Info(ctx, "starting kitchen board")

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return schedulerService.Run(groupCtx)
	})
	group.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "kitchen board stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(ctx, "kitchen board shut down gracefully")
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
