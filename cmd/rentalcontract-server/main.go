package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/goliatone/go-rentalcontract/internal/app"
	"github.com/goliatone/go-rentalcontract/internal/config"
	"github.com/goliatone/go-rentalcontract/internal/httpserver"
	"github.com/goliatone/go-rentalcontract/internal/logging"
	"github.com/goliatone/go-rentalcontract/pkg/apidoc"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file (defaults when empty)")
	envFile := flag.String("env", ".env", "optional .env file loaded before the configuration")
	flag.Parse()

	if err := config.LoadEnvFiles(*envFile); err != nil {
		log.Fatalf("Failed to load env file: %v", err)
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	components, err := app.Build(cfg.Contract)
	if err != nil {
		return err
	}
	api, err := apidoc.Load(ctx)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	srv, err := httpserver.New(httpserver.Options{
		Logger:          logger,
		Form:            components.Form,
		Pages:           components.Pages,
		Documents:       components.Documents,
		API:             api,
		Print:           components.Print,
		Downloads:       components.Downloads,
		StaticDir:       cfg.Server.StaticDir,
		AllowedOrigins:  cfg.CORS.AllowedOrigins,
		MaxBodyBytes:    cfg.Server.MaxBodyBytes,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Registry:        registry,
	})
	if err != nil {
		return err
	}

	logger.Info("Starting rental contract server",
		zap.String("addr", cfg.Addr()),
		zap.String("currency", cfg.Contract.Currency),
		zap.Strings("downloads", components.Downloads),
		zap.Int("clauses", len(components.Print.Clauses)),
	)
	return srv.Run(ctx, cfg.Addr())
}
