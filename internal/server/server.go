// Package server boots the application: config, database, cache, logging
// sinks, the payment gateways, the HTTP surface, and graceful shutdown.
package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/vendika/app/routes"
	"github.com/shashiranjanraj/vendika/app/services/payment"
	"github.com/shashiranjanraj/vendika/app/services/paypal"
	"github.com/shashiranjanraj/vendika/config"
	"github.com/shashiranjanraj/vendika/pkg/cache"
	"github.com/shashiranjanraj/vendika/pkg/database"
	"github.com/shashiranjanraj/vendika/pkg/logger"
	"github.com/shashiranjanraj/vendika/pkg/metrics"
	"github.com/shashiranjanraj/vendika/pkg/middleware"
	"github.com/shashiranjanraj/vendika/pkg/migration"
	"github.com/shashiranjanraj/vendika/pkg/orm"
	"github.com/shashiranjanraj/vendika/pkg/reqid"
	"github.com/shashiranjanraj/vendika/pkg/router"
)

// cacheBridge exposes pkg/cache through the orm.Cacher interface.
type cacheBridge struct{}

func (cacheBridge) Get(key string, dest interface{}) bool { return cache.Get(key, dest) }
func (cacheBridge) Set(key string, value interface{}, ttl time.Duration) error {
	return cache.Set(key, value, ttl)
}
func (cacheBridge) Forget(key string) error { return cache.Forget(key) }

// Gateways builds the provider registry. Exposed so the CLI and tests can
// assemble the same wiring the server runs with.
func Gateways() *payment.Registry {
	registry := payment.NewRegistry()
	registry.Register(payment.NewPayPalGateway(paypal.NewClient()))
	registry.Register(payment.NewStripeGateway())
	return registry
}

// Routes assembles the full route table.
func Routes() *router.Router {
	r := router.New()
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))

	routes.Register(r, payment.NewService(Gateways()))
	r.HandleFunc("/metrics", metrics.Handler())
	return r
}

// Start boots everything and serves until SIGINT/SIGTERM, then drains
// in-flight requests.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	if err := database.Connect(); err != nil {
		return err
	}
	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, caching disabled", "error", err)
	}
	orm.CacheStore = cacheBridge{}

	if uri := config.MongoURI(); uri != "" {
		if err := logger.EnableMongoAudit(uri, config.MongoDatabase(), "audit_log"); err != nil {
			logger.Warn("mongo audit sink unavailable", "error", err)
		}
	}

	runner := migration.New(database.DB)
	if err := runner.EnsureTable(); err != nil {
		return err
	}
	if err := runner.Up(); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           Routes().Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
