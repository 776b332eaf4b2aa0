package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	cacheadapter "github.com/paymentrails/monei-sync/internal/adapters/cache"
	httpadapter "github.com/paymentrails/monei-sync/internal/adapters/http"
	"github.com/paymentrails/monei-sync/internal/adapters/monei"
	"github.com/paymentrails/monei-sync/internal/adapters/postgres"
	"github.com/paymentrails/monei-sync/internal/adapters/scheduler"
	"github.com/paymentrails/monei-sync/internal/application"
	"github.com/paymentrails/monei-sync/internal/domain"
	"github.com/paymentrails/monei-sync/internal/ports"
)

type Runtime struct {
	cfg        Config
	logger     *slog.Logger
	httpServer *http.Server
	grpcServer *grpc.Server
	grpcLis    net.Listener
	worker     *scheduler.SyncWorker
	cleanupFn  func(context.Context)
}

func NewRuntime(ctx context.Context, configPath string) (*Runtime, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	logger.Info("bootstrapping monei sync service", "http_port", cfg.HTTPPort, "grpc_port", cfg.GRPCPort)

	pool, err := postgres.Connect(ctx, cfg.DatabaseURL, cfg.MaxDBConns)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	sqlDB, err := pool.DB()
	if err != nil {
		return nil, fmt.Errorf("gorm sql db: %w", err)
	}

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	redisClient, err := cacheadapter.Connect(ctx, cfg.RedisURL)
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if err := redisClient.Ping(ctx).Err(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	repos := postgres.NewRepositories(pool)

	if cfg.APIKey != "" {
		if err := seedAPIKey(ctx, repos.Settings, cfg.APIKey); err != nil {
			_ = sqlDB.Close()
			_ = redisClient.Close()
			return nil, fmt.Errorf("seed api key: %w", err)
		}
	}

	apiClient := monei.NewClient(monei.ClientConfig{
		Endpoint:   cfg.APIBaseURL,
		HTTPClient: &http.Client{Timeout: cfg.HTTPTimeout},
		Logger:     logger,
		KeyFunc:    storedKeyFunc(repos.Settings, cfg.APIKey),
	})

	syncLock := cacheadapter.NewRedisSyncLock(redisClient, logger)

	svc := application.NewService(application.Dependencies{
		Config: application.Config{
			DashboardURL:       cfg.DashboardURL,
			PageSize:           cfg.PageSize,
			ChangeDetection:    cfg.ChangeDetection,
			StoreLookupPolicy:  cfg.StoreLookupPolicy,
			CronWindow:         cfg.CronWindow,
			SyncLockTTL:        cfg.SyncLockTTL,
			CreatePollAttempts: cfg.CreatePollAttempts,
			CreatePollDelay:    cfg.CreatePollDelay,
		},
		Logger:   logger,
		Charges:  repos.Charges,
		Orders:   repos.Orders,
		Settings: repos.Settings,
		API:      apiClient,
		Lock:     syncLock,
	})

	handler := httpadapter.NewHandler(svc)
	router := httpadapter.NewRouter(handler)
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	grpcServer := grpc.NewServer()
	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthSrv)
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		_ = sqlDB.Close()
		_ = redisClient.Close()
		return nil, fmt.Errorf("listen gRPC: %w", err)
	}

	worker := scheduler.NewSyncWorker(logger, svc, cfg.SyncInterval)

	return &Runtime{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpServer,
		grpcServer: grpcServer,
		grpcLis:    lis,
		worker:     worker,
		cleanupFn: func(ctx context.Context) {
			_ = redisClient.Close()
			_ = sqlDB.Close()
		},
	}, nil
}

// seedAPIKey stores the bootstrap key only when no key exists yet, so a
// rotated key is never overwritten on restart.
func seedAPIKey(ctx context.Context, settings ports.SettingsRepository, key string) error {
	_, err := settings.Get(ctx, ports.SettingAPIKey)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return settings.Set(ctx, ports.SettingAPIKey, key, time.Now().UTC())
}

// storedKeyFunc resolves the API key per request, so key rotation takes
// effect without rebuilding the client.
func storedKeyFunc(settings ports.SettingsRepository, fallback string) monei.KeyFunc {
	return func(ctx context.Context) (string, error) {
		key, err := settings.Get(ctx, ports.SettingAPIKey)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fallback, nil
			}
			return "", err
		}
		return key, nil
	}
}

func (r *Runtime) RunAPI(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)
	go func() {
		r.logger.Info("http server started", "addr", r.httpServer.Addr)
		if err := r.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()
	go func() {
		r.logger.Info("grpc server started", "addr", r.grpcLis.Addr().String())
		if err := r.grpcServer.Serve(r.grpcLis); err != nil {
			errCh <- fmt.Errorf("grpc server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		r.logger.Info("shutdown signal received")
	case err := <-errCh:
		r.logger.Error("server failure", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = r.httpServer.Shutdown(shutdownCtx)
	r.grpcServer.GracefulStop()
	r.cleanupFn(shutdownCtx)
	return nil
}

func (r *Runtime) RunWorker(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	r.logger.Info("sync worker started")
	err := r.worker.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	r.cleanupFn(shutdownCtx)
	return nil
}
