package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"jamaah/internal/config"
	"jamaah/internal/core"
)

// env is what every subcommand works with.
type env struct {
	cfg      config.Config
	logger   *slog.Logger
	svc      *core.Service
	registry *prometheus.Registry
}

func newRootCmd() (*cobra.Command, *env) {
	e := &env{}
	root := &cobra.Command{
		Use:           "jamaah",
		Short:         "Masjid back-office: admin API and data maintenance",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.open(cmd.Context(), cmd.ErrOrStderr())
		},
	}
	root.AddCommand(
		newServeCmd(e),
		newSeedCmd(e),
		newStatsCmd(e),
		newListCmd(e),
		newExportCmd(e),
		newImportCmd(e),
	)
	return root, e
}

// runRoot executes root and releases the store afterwards, also when the
// subcommand failed. Cobra skips post-run hooks on error.
func runRoot(root *cobra.Command, e *env) error {
	err := root.Execute()
	if cerr := e.close(); err == nil {
		err = cerr
	}
	return err
}

func (e *env) open(ctx context.Context, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	e.cfg = cfg
	e.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	e.registry = prometheus.NewRegistry()
	prom, err := core.NewPrometheusMetricsRecorder(e.registry)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	store, err := core.OpenStore(ctx, cfg.Storage, e.logger)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Storage.Driver, err)
	}
	opts := []core.Option{
		core.WithLogger(e.logger),
		core.WithMetricsRecorder(core.MultiMetricsRecorder{prom, core.NewExpvarRecorder("")}),
		core.WithSeeding(cfg.Seed),
	}
	if cfg.LogLevel <= slog.LevelDebug {
		opts = append(opts, core.WithTracer(core.NewSpanLog(stderr)))
	}
	e.svc = core.NewService(store, opts...)
	return nil
}

func (e *env) close() error {
	if e.svc == nil {
		return nil
	}
	err := e.svc.Close()
	e.svc = nil
	return err
}
