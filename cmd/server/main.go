package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mapknit/mapknit/internal/catalog"
	"github.com/mapknit/mapknit/internal/config"
	"github.com/mapknit/mapknit/internal/importer"
	"github.com/mapknit/mapknit/internal/logging"
	"github.com/mapknit/mapknit/internal/metrics"
	"github.com/mapknit/mapknit/internal/store"
	"github.com/mapknit/mapknit/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"map_path", cfg.Map.Path,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	// Read the map document and build the country ID universe from it
	svg, err := os.ReadFile(cfg.Map.Path)
	if err != nil {
		slog.Error("failed to read map document", "path", cfg.Map.Path, "error", err)
		os.Exit(1)
	}

	cat, err := catalog.LoadFromDocument(svg)
	if err != nil {
		slog.Error("failed to parse map document", "path", cfg.Map.Path, "error", err)
		os.Exit(1)
	}
	if cat.Len() == 0 {
		slog.Warn("map document yielded no country IDs; imports will keep every reference unchecked")
	}

	slog.Info("catalog loaded",
		"countries", cat.Len(),
	)

	st := store.New(cat)

	parser := importer.NewParser(cat, importer.Limits{
		MaxDocumentBytes: cfg.Import.MaxDocumentBytes,
		MaxSets:          cfg.Import.MaxSets,
		MaxCountryRefs:   cfg.Import.MaxCountryRefs,
		MaxNameLen:       cfg.Import.MaxNameLen,
		MaxColorLen:      cfg.Import.MaxColorLen,
	})

	m := metrics.New(prometheus.DefaultRegisterer)
	m.SetSetCount(1)

	server := web.NewServer(st, parser, svg, m, cfg)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}
