package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/platinummonkey/alloykit/pkg/api"
	"github.com/platinummonkey/alloykit/pkg/config"
	"github.com/platinummonkey/alloykit/pkg/linter"
	"github.com/platinummonkey/alloykit/pkg/linter/rules"
	"github.com/platinummonkey/alloykit/pkg/middleware"
	"github.com/platinummonkey/alloykit/pkg/observability"
	"github.com/platinummonkey/alloykit/pkg/workspace"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// newServeCommand creates the serve command. It is configured from the
// environment (ALLOYKIT_*).
func newServeCommand() *Command {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)

	return &Command{
		Name:        "serve",
		Description: "Run the HTTP API server",
		Flags:       fs,
		Run: func(args []string) error {
			if err := fs.Parse(args); err != nil {
				return err
			}

			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			return runServe(context.Background(), cfg)
		},
	}
}

func runServe(ctx context.Context, cfg *config.Config) error {
	logger := observability.NewLoggerWithFormat(cfg.Observability.LogLevel, cfg.Observability.LogFormat, os.Stdout)

	// Initialize OpenTelemetry
	providers, err := observability.InitOTel(ctx, observability.OTelConfig{
		Enabled:        cfg.Observability.OTelEnabled,
		Endpoint:       cfg.Observability.OTelEndpoint,
		ServiceName:    cfg.Observability.OTelServiceName,
		ServiceVersion: cfg.Observability.OTelServiceVersion,
		Insecure:       cfg.Observability.OTelInsecure,
		SampleRatio:    cfg.Observability.OTelSampleRatio,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	server, cleanup, err := newAPIServer(ctx, cfg, logger)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      server.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	shutdown := observability.NewShutdownManager(logger, httpServer, cfg.Server.ShutdownTimeout)
	shutdown.RegisterShutdownFunc(cleanup)
	shutdown.RegisterShutdownFunc(func(ctx context.Context) error {
		return observability.ShutdownOTel(ctx, providers, logger)
	})

	serveErr := make(chan error, 1)
	go func() {
		logger.Infof("Starting alloykit server on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		if err, ok := <-serveErr; ok {
			logger.WithError(err).Error("HTTP server failed")
			cancel()
		}
	}()

	return shutdown.WaitForShutdown(ctx)
}

// newAPIServer wires the store, cache, metrics and session behind the API
// server. The returned cleanup releases the store.
func newAPIServer(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*api.Server, observability.ShutdownFunc, error) {
	lintConfig := linter.DefaultConfig()
	if cfg.Workspace.LintConfigPath != "" {
		loaded, err := linter.LoadConfig(cfg.Workspace.LintConfigPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load lint config: %w", err)
		}
		lintConfig = loaded
	}

	health := observability.NewHealthChecker(cfg.Observability.OTelServiceVersion)
	cleanup := func(context.Context) error { return nil }

	var (
		store   workspace.DiagnosticStore
		limiter middleware.Limiter
	)
	rateConfig := &middleware.RateLimitConfig{
		RequestsPerWindow: cfg.Server.RateLimit,
		WindowDuration:    cfg.Server.RateLimitWindow,
		BurstSize:         cfg.Server.RateLimitBurst,
	}
	switch cfg.Workspace.Store {
	case config.StoreRedis:
		redisStore, err := workspace.NewRedisStore(ctx, workspace.RedisOptions{
			URL:       cfg.Workspace.RedisURL,
			KeyPrefix: cfg.Workspace.RedisKeyPrefix,
			TTL:       cfg.Workspace.RedisTTL,
			PoolSize:  cfg.Workspace.RedisPoolSize,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		health.AddDependency("redis", redisStore)
		cleanup = func(context.Context) error { return redisStore.Close() }
		store = redisStore
		if rateConfig.RequestsPerWindow > 0 {
			limiter = middleware.NewDistributedRateLimiter(redisStore.Client(), rateConfig, cfg.Workspace.RedisKeyPrefix+"ratelimit")
		}
		logger.Info("Using redis diagnostic store")
	default:
		memoryStore := workspace.NewMemoryStore()
		health.AddDependency("store", memoryStore)
		store = memoryStore
		if rateConfig.RequestsPerWindow > 0 {
			local := middleware.NewRateLimiter(rateConfig)
			local.StartCleanup(ctx)
			limiter = local
		}
	}

	var (
		metrics  *observability.Metrics
		gatherer prometheus.Gatherer
	)
	if cfg.Observability.MetricsEnabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics = observability.NewMetrics(registry)
		gatherer = registry
	}

	opts := []workspace.Option{
		workspace.WithStore(store),
		workspace.WithLogger(logger),
		workspace.WithMetrics(metrics),
	}
	if cfg.Workspace.CacheSize > 0 {
		opts = append(opts, workspace.WithCache(workspace.NewAnalysisCache(cfg.Workspace.CacheSize, cfg.Workspace.CacheTTL)))
	}
	session := workspace.NewSession(rules.NewDefaultEngine(lintConfig), opts...)

	server := api.NewServer(session, api.Options{
		Logger:       logger,
		Metrics:      metrics,
		Gatherer:     gatherer,
		Health:       health,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
		RateLimiter:  limiter,
	})
	return server, cleanup, nil
}
