package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	v1 "github.com/kubev2v/docsql/api/v1"
	"github.com/kubev2v/docsql/internal/config"
	"github.com/kubev2v/docsql/internal/handlers"
	"github.com/kubev2v/docsql/internal/server"
	"github.com/kubev2v/docsql/internal/services"
	"github.com/kubev2v/docsql/internal/store"
	"github.com/kubev2v/docsql/pkg/schema"
)

const shutdownTimeout = 10 * time.Second

func NewRunCommand(cfg *config.Configuration) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Serve the query API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateConfiguration(cfg); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	registerFlags(cmd, cfg)

	return cmd
}

func registerFlags(cmd *cobra.Command, cfg *config.Configuration) {
	flags := cmd.Flags()

	flags.IntVar(&cfg.Server.HTTPPort, "server-http-port", cfg.Server.HTTPPort, "port the API listens on")
	flags.StringVar(&cfg.Server.ServerMode, "server-mode", cfg.Server.ServerMode, "server mode: dev or prod (prod serves HTTPS)")
	flags.StringVar(&cfg.Server.StaticsFolder, "server-statics-folder", cfg.Server.StaticsFolder, "folder with static files to serve")

	flags.StringVar(&cfg.Catalog.Path, "catalog", cfg.Catalog.Path, "path of the YAML catalog declaring the tables")

	flags.StringVar(&cfg.Store.Path, "db-path", cfg.Store.Path, "DuckDB file, or :memory:")
	flags.IntVar(&cfg.Store.Workers, "num-workers", cfg.Store.Workers, "number of queries run concurrently")
	flags.BoolVar(&cfg.Store.Seed, "seed", cfg.Store.Seed, "create the catalog tables and insert their rows at startup")

	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	flags.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: console or json")
}

func validateConfiguration(cfg *config.Configuration) error {
	if cfg.Server.HTTPPort < 1 || cfg.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid http-port %d: must be between 1 and 65535", cfg.Server.HTTPPort)
	}

	switch cfg.Server.ServerMode {
	case server.DevServer, server.ProductionServer:
	default:
		return fmt.Errorf("invalid server mode %q: must be 'dev' or 'prod'", cfg.Server.ServerMode)
	}

	if cfg.Catalog.Path == "" {
		return errors.New("catalog path must be set")
	}
	if _, err := os.Stat(cfg.Catalog.Path); err != nil {
		return fmt.Errorf("catalog %s: %w", cfg.Catalog.Path, err)
	}

	if cfg.Store.Workers < 1 {
		return fmt.Errorf("invalid num-workers %d: must be at least 1", cfg.Store.Workers)
	}

	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", cfg.LogLevel)
	}

	switch cfg.LogFormat {
	case logFormatConsole, logFormatJSON:
	default:
		return fmt.Errorf("invalid log format %q: must be 'console' or 'json'", cfg.LogFormat)
	}

	return nil
}

func run(ctx context.Context, cfg *config.Configuration) error {
	logger, err := newLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	catalog, err := schema.LoadCatalog(cfg.Catalog.Path)
	if err != nil {
		return err
	}

	db, err := store.NewDB(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	st := store.NewStore(db)
	defer st.Close()

	querySrv, err := services.NewQueryService(catalog, st, cfg.Store.Workers)
	if err != nil {
		return err
	}
	defer querySrv.Close()

	if cfg.Store.Seed {
		if err := querySrv.Seed(ctx); err != nil {
			return fmt.Errorf("seeding tables: %w", err)
		}
	}

	srv, err := server.NewServer(cfg, func(router *gin.RouterGroup) {
		v1.RegisterHandlers(router, handlers.New(querySrv))
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx)
	}()

	zap.S().Infow("server started", "port", cfg.Server.HTTPPort, "mode", cfg.Server.ServerMode, "tables", len(catalog.Tables()))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zap.S().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	srv.Stop(shutdownCtx)

	return nil
}
