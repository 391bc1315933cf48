// Package main starts the SmileCare portal API: it reads configuration,
// opens the key-value storage, builds the session and cart stores and serves
// them over HTTP until interrupted.
package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"github.com/atinyakov/SmileCare/internal/config"
	"github.com/atinyakov/SmileCare/internal/logger"
	"github.com/atinyakov/SmileCare/internal/metrics"
	"github.com/atinyakov/SmileCare/internal/middleware"
	"github.com/atinyakov/SmileCare/internal/server/handler/http"
	"github.com/atinyakov/SmileCare/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	options := config.Parse()

	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, closeStorage, err := openStorage(options)
	if err != nil {
		zapLogger.Fatal("cannot open storage", zap.String("driver", options.StorageDriver), zap.Error(err))
	}
	defer func() {
		if err := closeStorage(); err != nil {
			zapLogger.Warn("closing storage", zap.Error(err))
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	common := []service.Option{
		service.WithLogger(zapLogger),
		service.WithMetrics(m),
		service.WithLatency(time.Duration(options.Latency)),
	}
	sessions, err := service.NewSessionStore(ctx, st, common...)
	if err != nil {
		zapLogger.Fatal("cannot load session store", zap.Error(err))
	}
	cartOpts := append([]service.Option{}, common...)
	if options.PersistCart {
		cartOpts = append(cartOpts, service.WithCartStorage(st))
	}
	cart, err := service.NewCartStore(ctx, cartOpts...)
	if err != nil {
		zapLogger.Fatal("cannot load cart", zap.Error(err))
	}

	handlers := http.Handlers{
		Auth:         &http.AuthHandler{Sessions: sessions, Secret: options.JWTSecret, Logger: zapLogger},
		Appointments: &http.AppointmentHandler{Sessions: sessions, Logger: zapLogger},
		Records:      &http.RecordHandler{Sessions: sessions, Logger: zapLogger},
		Cart:         &http.CartHandler{Cart: cart, Logger: zapLogger},
		Plan:         &http.PlanHandler{Sessions: sessions},
	}
	limiter := middleware.NewRateLimiter(ctx, options.RateLimit, options.RateBurst)
	router := http.NewRouter(handlers, limiter, reg, zapLogger)

	server := &nethttp.Server{
		Addr:              options.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zapLogger.Error("shutdown", zap.Error(err))
		}
	}()

	zapLogger.Info("starting HTTP server",
		zap.String("addr", options.Port),
		zap.String("storage", options.StorageDriver),
		zap.Bool("persist_cart", options.PersistCart),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
	zapLogger.Info("server stopped")
}
