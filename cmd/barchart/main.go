package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/midbel/barchart/document"
	"github.com/midbel/barchart/internal/config"
	"github.com/midbel/barchart/internal/logging"
	"github.com/midbel/barchart/internal/metrics"
	"github.com/midbel/barchart/internal/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"
	"golang.org/x/sync/errgroup"
)

var version = "0.0.0-dev"

const stdout = "-"

func main() {
	var configFile string

	root := &cobra.Command{
		Use:           "barchart",
		Short:         "draw bar charts on a grid as svg",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "config.json", "path to config file")
	config.DefineFlags(root)

	renderCmd := &cobra.Command{
		Use:   "render [documents...]",
		Short: "render chart documents to svg files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, closeFn, err := setup(cmd, configFile)
			if err != nil {
				return err
			}
			defer closeFn()
			return renderAll(cmd.Context(), cfg, args)
		},
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "render chart documents over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, closeFn, err := setup(cmd, configFile)
			if err != nil {
				return err
			}
			defer closeFn()
			return serve(cmd.Context(), cfg)
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}
	root.AddCommand(renderCmd, serveCmd, versionCmd)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, configFile string) (config.Config, func(), error) {
	dotEnvUsed := false
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return config.Config{}, nil, fmt.Errorf("error loading .env file: %w", err)
		}
		dotEnvUsed = true
	}
	cfg, meta, err := config.GetConfig(cmd, configFile)
	if err != nil {
		return cfg, nil, err
	}
	closeFn, err := logging.Setup(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return cfg, nil, err
	}
	if meta.FileNotFound {
		log.Debug().Msg("config file not found, continue using environment and flag options")
	} else if configFile != "" {
		absConfPath, _ := filepath.Abs(configFile)
		log.Info().Str("path", absConfPath).Msg("using config file")
	}
	if dotEnvUsed {
		log.Info().Msg("environment variables have been loaded from .env file")
	}
	return cfg, closeFn, nil
}

func serve(ctx context.Context, cfg config.Config) error {
	_, _ = maxprocs.Set(maxprocs.Logger(func(s string, i ...interface{}) {
		log.Info().Msgf(strings.ToLower(s), i...)
	}))
	reg, err := metrics.New(prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	handler := server.NewHandler(cfg, reg, prometheus.DefaultGatherer)
	return server.Run(ctx, cfg.HTTP, handler)
}

func renderAll(ctx context.Context, cfg config.Config, files []string) error {
	if cfg.Render.Output == stdout && len(files) > 1 {
		return fmt.Errorf("only one document can be written to stdout, got %d", len(files))
	}
	seen := make(map[string]string)
	for _, file := range files {
		id := getIdent(file)
		if other, ok := seen[id]; ok {
			return fmt.Errorf("%s and %s would both be written to %s.svg", other, file, id)
		}
		seen[id] = file
	}
	if cfg.Render.Output != stdout {
		if err := os.MkdirAll(cfg.Render.Output, 0o755); err != nil {
			return err
		}
	}
	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(cfg.Render.Jobs)
	for _, file := range files {
		file := file
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return renderFile(cfg, file)
		})
	}
	return grp.Wait()
}

func renderFile(cfg config.Config, file string) error {
	doc, err := document.Load(file, document.WithDimension(cfg.Render.Width, cfg.Render.Height))
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	var buf bytes.Buffer
	if _, err := document.Render(doc, &buf, log.With().Str("file", file).Logger()); err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	if cfg.Render.Output == stdout {
		_, err = io.Copy(os.Stdout, &buf)
		return err
	}
	out := filepath.Join(cfg.Render.Output, getIdent(file)+".svg")
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return err
	}
	log.Info().Str("file", file).Str("output", out).Msg("chart rendered")
	return nil
}

func getIdent(file string) string {
	file = filepath.Base(file)
	return strings.TrimSuffix(file, filepath.Ext(file))
}
