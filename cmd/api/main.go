package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"estudio/internal/api"
	"estudio/internal/config"
	"estudio/internal/database"
	"estudio/internal/domain"
	"estudio/internal/events"
	"estudio/internal/export"
	"estudio/internal/logging"
	"estudio/internal/metrics"
	"estudio/internal/notify"
	"estudio/internal/repository"
	"estudio/internal/service"
	"estudio/internal/storage"
	"estudio/internal/worker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}

	db, err := database.NewDB(cfg.Database.Path, &logger)
	if err != nil {
		logger.Error().Err(err).Str("db_path", cfg.Database.Path).Msg("init database")
		return err
	}
	defer db.Close()

	redisClient := initRedis(cfg, &logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	stream := initEventStream(redisClient, &logger)
	bus := events.NewEventBus()
	events.AttachStream(bus, stream, &logger)

	store, err := storage.NewLocalStorage(cfg.Storage, &logger)
	if err != nil {
		logger.Error().Err(err).Msg("init media storage")
		return err
	}

	exporter := export.NewScheduleExporter(db, db, cfg.Exports.Path, &logger)
	exportWorker := worker.NewExportWorker(exporter, redisClient, worker.DefaultRetryPolicy(), &logger)

	var exportQueue domain.ExportQueue = exportWorker
	if !cfg.Exports.Enabled {
		exportQueue = nil
	}

	deps := api.Deps{
		Bookings: service.NewBookingService(db, db, bus, exportQueue, cfg.Studio.MaxBookingDays, &logger),
		Profiles: service.NewProfileService(db, cfg.Studio.DefaultMonthlyHours, cfg.Studio.DefaultDailyHours, &logger),
		Radio:    service.NewRadioService(db, bus, &logger),
		Messages: service.NewMessageService(db, db, bus, &logger),
		Catalog:  service.NewCatalogService(db, db, &logger),
		Storage:  store,
		Exporter: exporter,
		Stream:   stream,
	}

	if cfg.Telegram.Enabled {
		notifier, err := notify.NewTelegramNotifier(cfg.Telegram, &logger)
		if err != nil {
			logger.Warn().Err(err).Msg("telegram init failed, continuing without notifications")
		} else {
			notify.AttachBookingNotifications(bus, notifier, db, &logger)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Exports.Enabled {
		go exportWorker.Start(ctx)
	}
	if cfg.Backup.Enabled {
		backup := database.NewBackupService(cfg.Database.Path, cfg.Backup, &logger)
		go backup.Start(ctx)
	}

	startMetrics(ctx, cfg, &logger)

	server := api.NewServer(*cfg, deps, &logger)
	return serve(ctx, server, &logger)
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("init logger: %w", err)
	}
	logger := logging.Component(baseLogger, "api-main")

	return cfg, logger, closer, nil
}

func initRedis(cfg *config.Config, logger *zerolog.Logger) *redis.Client {
	if !cfg.Redis.Enabled || cfg.Redis.Address == "" {
		return nil
	}

	redisClient := repository.NewRedisClient(cfg.Redis)
	if err := repository.Ping(context.Background(), redisClient); err != nil {
		logger.Warn().Err(err).Msg("redis connection failed, continuing without redis")
		_ = redisClient.Close()
		return nil
	}

	logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")
	return redisClient
}

// initEventStream picks the realtime transport: redis pub/sub guarded by an
// in-memory fallback when redis is configured, memory only otherwise.
func initEventStream(redisClient *redis.Client, logger *zerolog.Logger) domain.EventStream {
	memory := repository.NewMemoryEventStream()
	if redisClient == nil {
		return memory
	}
	return repository.NewFailoverEventStream(
		repository.NewRedisEventStream(redisClient), memory, logger)
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	metrics.Register()
	go startMetricsServer(ctx, cfg.Monitoring.PrometheusPort, logger)
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}

func serve(ctx context.Context, server *api.Server, logger *zerolog.Logger) error {
	go func() {
		if err := server.Start(); err != nil {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info().Msg("server stopped")
	return nil
}
