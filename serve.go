package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/debemdeboas/brandi/internal/assets"
	"github.com/debemdeboas/brandi/internal/config"
	"github.com/debemdeboas/brandi/internal/logger"
	"github.com/debemdeboas/brandi/internal/metrics"
	"github.com/debemdeboas/brandi/internal/routes"
	"github.com/debemdeboas/brandi/internal/server"
	"github.com/debemdeboas/brandi/internal/view"
)

func serveCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to the YAML configuration file")
	return cmd
}

func runServer(ctx context.Context, configPath string) error {
	envErr := godotenv.Load()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return err
	}

	l := logger.New(cfg.Logging.Level)
	if envErr != nil {
		l.Debug().Err(envErr).Msg("No .env file loaded")
	}
	config.SetLogger(l)
	routes.SetLogger(l)
	view.SetLogger(l)
	assets.SetLogger(l)
	server.SetLogger(l)

	srv, err := newApp(ctx, cfg, content)
	if err != nil {
		return err
	}
	return srv.ListenAndServe(ctx)
}

// newApp wires the route table, views, assets and metrics into a server.
// fsys must hold the static, templates and views directories.
func newApp(ctx context.Context, cfg *config.Config, fsys fs.FS) (*server.Server, error) {
	reg, err := view.LoadRegistry(fsys, config.ViewsLocalDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load views: %w", err)
	}
	renderer, err := view.NewRenderer(reg, fsys, config.TemplatesLocalDir)
	if err != nil {
		return nil, err
	}

	src, err := assetSource(ctx, cfg, fsys)
	if err != nil {
		return nil, err
	}

	var opts []server.Option
	if cfg.Metrics.Enabled {
		opts = append(opts, server.WithMetrics(metrics.New(metrics.WithNamespace(cfg.Metrics.Namespace))))
	}

	table := routes.Storefront()
	return server.New(cfg, table, table, renderer, src, opts...), nil
}

func assetSource(ctx context.Context, cfg *config.Config, fsys fs.FS) (assets.Source, error) {
	if cfg.Assets.Source == config.AssetsS3 {
		return assets.NewS3Source(ctx, cfg.Assets)
	}

	static, err := fs.Sub(fsys, config.StaticLocalDir)
	if err != nil {
		return nil, err
	}
	if err := assets.HashStatic(static, config.StaticURLPath); err != nil {
		return nil, fmt.Errorf("failed to hash static assets: %w", err)
	}
	return assets.NewFSSource(static), nil
}
