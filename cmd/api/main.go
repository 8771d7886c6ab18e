package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Harshalkatakiya/invoice-maker/api/routes"
	invoice "github.com/Harshalkatakiya/invoice-maker/internal/invoices"
	product "github.com/Harshalkatakiya/invoice-maker/internal/products"
	"github.com/Harshalkatakiya/invoice-maker/pkg/config"
	"github.com/Harshalkatakiya/invoice-maker/pkg/db"
	"github.com/Harshalkatakiya/invoice-maker/pkg/logger"
	"github.com/Harshalkatakiya/invoice-maker/pkg/migrate"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	productRepo := product.NewRepository(dbClient.DB())
	productService, err := product.NewService(productRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	invoiceService, err := invoice.NewService(invoice.NewRepository(dbClient.DB()), productRepo, dbClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create invoice service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()

	port := os.Getenv("PORT")
	if port != "" {
		cfg.Server.Port = port
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     cfg.Server.Addr(),
		"base_url": cfg.Server.BaseURL(),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: routes.NewRouter(cfg, logg, dbClient, registry, productService, invoiceService),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
