package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/talkincode/productcatalog/config"
	"github.com/talkincode/productcatalog/internal/app"
	"github.com/talkincode/productcatalog/internal/fiberapi"
	"github.com/talkincode/productcatalog/internal/restapi"
	"github.com/talkincode/productcatalog/internal/storefront"
	"github.com/talkincode/productcatalog/internal/webserver"
)

const shutdownTimeout = 10 * time.Second

// serveCmd runs both HTTP bindings until interrupted
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP bindings and the storefront page",
	Long: `Run the catalog API on the echo binding (web.port, with the storefront
page at /) and, when fiber.enabled is set, on the fiber binding (fiber.port).
Both bindings serve the same routes:

  GET  /api/products[?category=C]
  GET  /api/products/category/{C}
  POST /api/products`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	application, err := loadApplication()
	if err != nil {
		return err
	}
	defer application.Release()
	cfg := application.Config()
	srv, fiberApp := newServers(application)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(srv.Start)
	if cfg.Fiber.Enabled {
		g.Go(func() error {
			zap.L().Info("fiber server listening", zap.String("addr", fiberapi.Addr(cfg.Fiber)))
			return fiberApp.Listen(fiberapi.Addr(cfg.Fiber))
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		zap.L().Info("shutting down http servers")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zap.L().Warn("echo shutdown", zap.Error(err))
		}
		if cfg.Fiber.Enabled {
			if err := fiberApp.ShutdownWithContext(shutdownCtx); err != nil {
				zap.L().Warn("fiber shutdown", zap.Error(err))
			}
		}
		return nil
	})

	return g.Wait()
}

// newServers builds both bindings over the application's catalog service
func newServers(p interface {
	app.ConfigProvider
	app.CatalogProvider
}) (*webserver.WebServer, *fiber.App) {
	cfg := p.Config()
	svc := p.Catalog()

	srv := webserver.NewWebServer(cfg)
	restapi.RegisterProductRoutes(srv, svc)
	if cfg.Storefront.Enabled {
		client := storefront.NewClient(storefrontBaseURL(cfg), time.Duration(cfg.Storefront.Timeout)*time.Second)
		srv.GET("/", storefront.New(client).Handle)
	}

	fiberApp := fiberapi.NewApp(cfg.Fiber)
	fiberapi.RegisterRoutes(fiberApp, svc)
	return srv, fiberApp
}

// storefrontBaseURL defaults to the local echo binding.
func storefrontBaseURL(cfg *config.AppConfig) string {
	if cfg.Storefront.ApiBaseURL != "" {
		return cfg.Storefront.ApiBaseURL
	}
	host := cfg.Web.Host
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}
	return fmt.Sprintf("http://%s:%d/api", host, cfg.Web.Port)
}
