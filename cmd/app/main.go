package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/vitaminx-2025/vitaminx-website/internal"
	"github.com/vitaminx-2025/vitaminx-website/internal/mcpserver"
	"github.com/vitaminx-2025/vitaminx-website/internal/service"
	pkgconfig "github.com/vitaminx-2025/vitaminx-website/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, string, error) {
	configPath := cmd.Root().String("config")

	cfg := internal.NewDefaultConfig()
	found, err := pkgconfig.LoadIfExists(configPath, cfg)
	if err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}
	if !found {
		slog.Warn("config file not found, using defaults", slog.String("path", configPath))
		return cfg, "", nil
	}
	return cfg, configPath, nil
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, configPath, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts := []internal.Option{
		internal.WithConfig(cfg),
	}
	if configPath != "" {
		opts = append(opts, internal.WithConfigFile(configPath))
	}

	if err := internal.Run(ctx, opts...); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}

	return nil
}

// withService opens the store behind a short-lived service for one-shot
// commands. Logs go to stderr so stdout stays clean for CSV and MCP traffic.
func withService(cmd *cli.Command, fn func(*internal.Config, *service.Service) error) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	_, _, logCloser := internal.NewLogger(cfg, os.Stderr)
	defer logCloser.Close()

	db, err := internal.OpenStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(cfg, service.NewService(db, nil))
}

func exportNotes(ctx context.Context, cmd *cli.Command) error {
	return withService(cmd, func(_ *internal.Config, svc *service.Service) error {
		return writeExport(ctx, svc, cmd.String("out"))
	})
}

// writeExport writes the CSV export to path, or to stdout for "" and "-".
// A failed close of the output file is reported like a failed write.
func writeExport(ctx context.Context, svc *service.Service, path string) (err error) {
	if path == "" || path == "-" {
		return svc.ExportNotes(ctx, os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return svc.ExportNotes(ctx, f)
}

func reindex(ctx context.Context, cmd *cli.Command) error {
	return withService(cmd, func(_ *internal.Config, svc *service.Service) error {
		n, err := svc.Reindex(ctx)
		if err != nil {
			return fmt.Errorf("reindex: %w", err)
		}
		slog.Info("search index rebuilt", slog.Int("rows_added", n))
		return nil
	})
}

func serveMCP(_ context.Context, cmd *cli.Command) error {
	return withService(cmd, func(cfg *internal.Config, svc *service.Service) error {
		return mcpserver.New(svc, cfg.App.Version).ServeStdio()
	})
}

func main() {
	cmd := &cli.Command{
		Name:   "vitaminx",
		Usage:  "Notes and graph backend with full-text search and CSV export",
		Action: run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP server (default)",
				Action: run,
			},
			{
				Name:  "export",
				Usage: "Write every note as CSV",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Output file, - for stdout",
						Value:   "-",
					},
				},
				Action: exportNotes,
			},
			{
				Name:   "reindex",
				Usage:  "Backfill missing full-text search rows",
				Action: reindex,
			},
			{
				Name:   "mcp",
				Usage:  "Serve MCP tools over stdio",
				Action: serveMCP,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
