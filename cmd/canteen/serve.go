package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/canteen/client/internal/interfaces/http/handler"
	"github.com/canteen/client/internal/interfaces/http/middleware"
	"github.com/canteen/client/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the kiosk API for a counter screen",
	Long: `Serve exposes the menu, cart, orders, admin board and assistant over HTTP
for a kiosk or counter display. It shares the session and cart of this
machine with the CLI.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a := current
	cfg := a.cfg
	log := a.logger

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	var registry *prometheus.Registry
	if cfg.Server.MetricsEnabled {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	engine, err := router.NewEngine(router.Config{
		Logger:         log,
		TrustedProxies: cfg.Server.TrustedProxies,
		Tracing: middleware.TracingConfig{
			Enabled:     cfg.Telemetry.Enabled,
			ServiceName: cfg.Telemetry.ServiceName,
		},
		Registry: registry,
	}, router.Handlers{
		Menu:      handler.NewMenuHandler(a.menu, a.home),
		Cart:      handler.NewCartHandler(a.cart, a.menu),
		Auth:      handler.NewAuthHandler(a.auth),
		Order:     handler.NewOrderHandler(a.placement, a.history),
		Admin:     handler.NewAdminHandler(a.board),
		Recommend: handler.NewRecommendHandler(a.recommend, a.chat),
		System:    handler.NewSystemHandler(Version, map[string]handler.Pinger{"store": a.db.Ping}),
	}, router.Guards{
		Customer: a.auth.RequireCustomer,
		Admin:    a.auth.RequireAdmin,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Kiosk API starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Info("Shutting down kiosk API...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Kiosk API forced to shutdown", zap.Error(err))
		return err
	}
	log.Info("Kiosk API exited gracefully")
	return nil
}
