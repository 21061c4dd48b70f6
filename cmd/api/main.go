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

	"phonenumber_service/internal/constraints"
	apphttp "phonenumber_service/internal/http"
	"phonenumber_service/internal/http/router"
	"phonenumber_service/internal/phonecheck"
	"phonenumber_service/platform/cache"
	"phonenumber_service/platform/config"
	"phonenumber_service/platform/logger"
	"phonenumber_service/platform/metrics"
	"phonenumber_service/platform/phone"
	"phonenumber_service/platform/validator"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Phone Layer
	// ========================================================================

	engine := phone.NewEngine()
	constraintValidator := phone.NewConstraintValidator(engine, log)
	codec := phone.NewCodec(engine,
		phone.WithCodecRegion(cfg.GetPhoneDefaultRegion()),
		phone.WithOutputFormat(cfg.GetPhoneOutputFormat()),
	)

	registry, err := constraints.Load(cfg.GetPhoneConstraintsFile(), log)
	if err != nil {
		log.Error("failed to load phone constraints", "error", err)
		panic("failed to load phone constraints: " + err.Error())
	}

	// Shared validator instance; every named constraint doubles as a struct tag
	val := validator.New(constraintValidator)
	for _, name := range registry.Names() {
		c, _ := registry.Get(name)
		if err := val.RegisterConstraint(name, c); err != nil {
			log.Error("invalid phone constraint", "constraint", name, "error", err)
			panic("invalid phone constraint " + name + ": " + err.Error())
		}
	}
	log.Info("phone constraints loaded", "count", registry.Len())

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	phoneMetrics := metrics.NewPhoneMetrics(promRegistry)

	normalizeCache, closeCache := initNormalizeCache(ctx, cfg, log)
	if closeCache != nil {
		defer closeCache()
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	phoneService := phonecheck.NewService(phonecheck.Deps{
		Engine:    engine,
		Validator: constraintValidator,
		Codec:     codec,
		Registry:  registry,
		Cache:     normalizeCache,
		Metrics:   phoneMetrics,
		Log:       log,
	})

	app := &apphttp.App{
		Config:  cfg,
		Logger:  log,
		Metrics: promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}),
		Modules: []apphttp.Module{
			phonecheck.NewModule(phoneService, val),
		},
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 5 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error("server error", "error", err)
		panic("server error: " + err.Error())
	}
}

// initNormalizeCache connects to Redis when configured. The service runs
// without a cache when Redis is absent or unreachable.
func initNormalizeCache(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) (phonecheck.NormalizeCache, func()) {
	if !cfg.IsCacheEnabled() {
		log.Warn("REDIS_URL not configured; normalize cache disabled")
		return nil, nil
	}

	var client *redis.Client
	if err := withRetry(ctx, log, "redis connection", 3, time.Second, func() error {
		c, err := cache.NewRedisClient(ctx, cfg)
		if err != nil {
			return err
		}
		client = c
		return nil
	}); err != nil {
		log.Error("failed to connect to redis; normalize cache disabled", "error", err)
		return nil, nil
	}

	return phonecheck.NewRedisCache(client, cfg.GetNormalizeCacheTTL(), log), func() {
		_ = client.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return fmt.Errorf("%s: %w", name, lastErr)
}
