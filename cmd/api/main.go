package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/giftlinkhq/giftlink/internal/cache"
	"github.com/giftlinkhq/giftlink/internal/config"
	"github.com/giftlinkhq/giftlink/internal/db"
	httpx "github.com/giftlinkhq/giftlink/internal/http"
	"github.com/giftlinkhq/giftlink/internal/observability"
	"github.com/giftlinkhq/giftlink/internal/repo/mongodb"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// Load the config set up
	cfg := config.Load()

	// start up the observability logger
	log := observability.NewLogger(cfg.Env)

	if cfg.JWTSecret == "" {
		log.Error("JWT_SECRET is not set")
		os.Exit(1)
	}

	// tracing is optional, only wired when an endpoint is configured
	if cfg.OTLPEndpoint != "" {
		shutdownTracer, err := observability.InitTracer(context.Background(), "giftlink-api", cfg.OTLPEndpoint)

		if err != nil {
			log.Error("tracer init failed", "err", err)
			os.Exit(1)
		}

		defer func() {
			ctx, cancel := config.WithTimeout(5 * time.Second)
			defer cancel()
			_ = shutdownTracer(ctx)
		}()
	}

	// connect to Mongo once; the handle is shared read-only by all handlers
	client, database, err := db.Connect(cfg.MongoURL, cfg.MongoDB)

	if err != nil {
		log.Error("mongo connect failed", "err", err)
		os.Exit(1)
	}

	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	// metrics
	registry := prometheus.NewRegistry()
	prom := observability.NewProm(registry)

	// unique email index lives in the store, not the service
	{
		ctx, cancel := config.WithTimeout(5 * time.Second)
		err := mongodb.NewUsersRepo(database, prom).EnsureIndexes(ctx)
		cancel()

		if err != nil {
			log.Error("index creation failed", "err", err)
			os.Exit(1)
		}
	}

	// gift cache: redis when configured, in-process TTL map otherwise
	var giftCache cache.Cache
	var redisCache *cache.Redis

	if cfg.RedisAddr != "" {
		redisCache = cache.NewRedis(cfg.RedisAddr, 30*time.Second)
		giftCache = redisCache

		defer redisCache.Close()
	} else {
		giftCache = cache.NewMemory(30 * time.Second)
	}

	ping := func() error {
		ctx, cancel := config.WithTimeout(1 * time.Second)
		defer cancel()

		if err := client.Ping(ctx, nil); err != nil {
			return err
		}

		if redisCache != nil {
			return redisCache.Ping(ctx)
		}

		return nil
	}

	// set up routers with the log
	router := httpx.NewRouter(httpx.RouterDeps{
		Log:       log,
		Cfg:       cfg,
		DB:        database,
		GiftCache: giftCache,
		Prom:      prom,
		Gatherer:  registry,
		Ping:      ping,
	})

	// server set up
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// start server using a concurrent go-routine driven anonymous function.

	go func() {
		log.Info("Server starting", "port", cfg.Port, "env", cfg.Env)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)

		defer cancel()

		err := srv.Shutdown(ctx)

		if err != nil {
			log.Error("graceful shutdown failed", "err", err)

			return
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}
