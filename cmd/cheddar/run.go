package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"cheddar-hq/adapter/pkg/cli"
	"cheddar-hq/adapter/pkg/config"
	"cheddar-hq/adapter/pkg/lifecycle"
	"cheddar-hq/adapter/pkg/server"
	"cheddar-hq/adapter/pkg/status"
	"cheddar-hq/adapter/pkg/telemetry/health"
	"cheddar-hq/adapter/pkg/telemetry/logging"
	"cheddar-hq/adapter/pkg/telemetry/metrics"
	"cheddar-hq/adapter/pkg/telemetry/reporter"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the Cheddar adapter",
	Long: `Start the Cheddar adapter with the specified configuration.

The adapter listens on the configured address, admits application requests
while the lifecycle status allows it and counts requests in progress. On
SIGINT or SIGTERM it halts low priority work, stops admitting requests,
waits for in-flight requests to drain and then stops.

Examples:
  # Start with defaults
  cheddar run

  # Start with custom config
  cheddar run --config /etc/cheddar/config.yaml

  # Override listen address
  cheddar run --listen 0.0.0.0:8080

  # Validate config without starting the adapter
  cheddar run --dry-run`,
	RunE: runAdapter,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting the adapter")
}

// adapter holds the wired components of a running adapter.
type adapter struct {
	holder    *lifecycle.Holder
	tracker   *status.Tracker
	collector *metrics.Collector
	checker   *health.Checker
	reporter  *reporter.Reporter
	server    *server.Server
}

func runAdapter(cmd *cobra.Command, args []string) error {
	if err := config.Initialize(cfgFile); err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	cfg := config.GetConfig()

	if err := applyRunOverrides(cfg); err != nil {
		return err
	}

	logger, levelVar, err := logging.New(logging.Config{
		Level:     cfg.Telemetry.Logging.Level,
		Format:    cfg.Telemetry.Logging.Format,
		AddSource: cfg.Telemetry.Logging.AddSource,
		Writer:    os.Stdout,
	})
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}
	slog.SetDefault(logger)

	if runFlags.dryRun {
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration valid")
		return nil
	}

	printBanner(cmd.OutOrStdout(), cfg)

	a, err := buildAdapter(cfg, logger)
	if err != nil {
		return cli.NewCommandError("run", err)
	}

	ctx, stop := cli.SetupSignalHandler(cmd.Context(), logger)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.server.Start(gctx)
	})

	if a.reporter != nil {
		if err := a.reporter.Start(gctx); err != nil {
			stop()
			_ = g.Wait()
			return cli.NewCommandError("run", err)
		}
		defer a.reporter.Stop()
	}

	if cfg.Watch && cfgFile != "" {
		watcher, err := config.NewWatcher(cfgFile, 0, logger)
		if err != nil {
			logger.Warn("config watcher disabled", "error", err)
		} else {
			g.Go(func() error {
				return watcher.Watch(gctx, func(next *config.Config) {
					applyLogLevel(logger, levelVar, next.Telemetry.Logging.Level)
				})
			})
		}
	}

	if err := g.Wait(); err != nil {
		return cli.NewCommandError("run", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "✓ Adapter stopped")
	return nil
}

// applyRunOverrides applies command-line overrides and revalidates.
func applyRunOverrides(cfg *config.Config) error {
	if runFlags.listenAddress != "" {
		cfg.Server.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	if err := config.Validate(cfg); err != nil {
		return cli.NewConfigError("flags", err.Error())
	}
	return nil
}

// buildAdapter wires the lifecycle holder, tracker, telemetry and server.
func buildAdapter(cfg *config.Config, logger *slog.Logger) (*adapter, error) {
	initial, err := lifecycle.ParseStatus(cfg.Lifecycle.InitialStatus)
	if err != nil {
		return nil, fmt.Errorf("lifecycle.initial_status: %w", err)
	}

	holder, err := lifecycle.NewHolder(initial, logger)
	if err != nil {
		return nil, err
	}
	tracker := status.NewTracker(holder)

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, prometheus.NewRegistry())
	collector.ObserveTracker(tracker)
	collector.ObserveLifecycle(holder)

	checker := health.New(cfg.Telemetry.Health.CheckTimeout)
	checker.RegisterCheck("adapter", health.AdapterCheck(tracker))

	var rep *reporter.Reporter
	if cfg.Telemetry.StatusReport.Enabled {
		rep = reporter.NewReporter(tracker, &cfg.Telemetry.StatusReport, logger)
	}

	srv, err := server.NewServer(cfg, server.Dependencies{
		Tracker:   tracker,
		Lifecycle: holder,
		Checker:   checker,
		Metrics:   collector,
		Build: server.BuildInfo{
			Version:   Version,
			Commit:    GitCommit,
			BuildTime: BuildDate,
		},
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}

	return &adapter{
		holder:    holder,
		tracker:   tracker,
		collector: collector,
		checker:   checker,
		reporter:  rep,
		server:    srv,
	}, nil
}

// applyLogLevel switches the running log level after a config reload.
func applyLogLevel(logger *slog.Logger, levelVar *slog.LevelVar, value string) {
	level, err := logging.ParseLevel(value)
	if err != nil {
		logger.Warn("ignoring invalid log level from reloaded config", "level", value, "error", err)
		return
	}
	if levelVar.Level() == level {
		return
	}

	levelVar.Set(level)
	logger.Info("log level changed", "level", level.String())
}

func printBanner(w io.Writer, cfg *config.Config) {
	fmt.Fprintf(w, "Cheddar v%s\n", Version)
	if cfgFile != "" {
		fmt.Fprintf(w, "Loading configuration from: %s\n", cfgFile)
	} else {
		fmt.Fprintln(w, "Using default configuration")
	}
	fmt.Fprintln(w, "✓ Configuration loaded")
	fmt.Fprintf(w, "✓ Listening on %s\n", cfg.Server.ListenAddress)
	fmt.Fprintf(w, "✓ Status endpoint: http://%s%s\n", cfg.Server.ListenAddress, cfg.Telemetry.Health.StatusPath)
	if cfg.Telemetry.Metrics.Enabled {
		fmt.Fprintf(w, "✓ Metrics endpoint: http://%s%s\n", cfg.Server.ListenAddress, cfg.Telemetry.Metrics.Path)
	}
	if cfg.Server.UpstreamURL != "" {
		fmt.Fprintf(w, "✓ Forwarding to %s\n", cfg.Server.UpstreamURL)
	}
	fmt.Fprintln(w, "\nPress Ctrl+C to stop")
}
