package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"mirrorbot-hq/tgmirror/pkg/cache"
	"mirrorbot-hq/tgmirror/pkg/cli"
	"mirrorbot-hq/tgmirror/pkg/config"
	"mirrorbot-hq/tgmirror/pkg/proxy/handlers"
	"mirrorbot-hq/tgmirror/pkg/recorder"
	"mirrorbot-hq/tgmirror/pkg/server"
	"mirrorbot-hq/tgmirror/pkg/telemetry/logging"
	"mirrorbot-hq/tgmirror/pkg/telemetry/metrics"
	"mirrorbot-hq/tgmirror/pkg/upload"
	"mirrorbot-hq/tgmirror/pkg/upstream"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
	watchConfig   bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the tgmirror proxy server",
	Long: `Start the tgmirror proxy server with the specified configuration.

The server accepts Bot API calls at /bot{token}/{method}, forwards them
upstream, mines responses into the local cache, and serves the cache-backed
read methods itself.

Examples:
  # Start with default config
  tgmirror run

  # Start with custom config
  tgmirror run --config /etc/tgmirror/config.yaml

  # Override listen address
  tgmirror run --listen 0.0.0.0:8080

  # Validate config without starting the server
  tgmirror run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting the server")
	runCmd.Flags().BoolVar(&runFlags.watchConfig, "watch-config", true, "reload log level on config file change")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}

	// Apply flag overrides
	if runFlags.listenAddress != "" {
		cfg.Server.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	logger, err := logging.Setup(logging.Config{
		Level:     cfg.Telemetry.Logging.Level,
		Format:    cfg.Telemetry.Logging.Format,
		AddSource: cfg.Telemetry.Logging.AddSource,
	})
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	fmt.Printf("tgmirror v%s\n", Version)
	fmt.Printf("Loading configuration from: %s\n", cfgFile)
	fmt.Println("✓ Configuration loaded")

	// Cache store
	store, err := cache.NewSQLiteStore(&cache.SQLiteConfig{
		Path:        cfg.Cache.Path,
		BusyTimeout: cfg.Cache.BusyTimeout,
		WALMode:     true,
	})
	if err != nil {
		return fmt.Errorf("failed to open cache store: %w", err)
	}
	defer store.Close()
	fmt.Printf("✓ Cache store opened (%s)\n", cfg.Cache.Path)

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()

	// Periodic cache maintenance
	if cfg.Cache.MaintenanceSchedule != "" {
		maintenance := cache.NewMaintenanceScheduler(store, cfg.Cache.MaintenanceSchedule)
		if err := maintenance.Start(ctx); err != nil {
			logger.Warn("failed to start cache maintenance", "error", err)
		} else {
			defer maintenance.Stop()
		}
	}

	// Metrics
	var collector *metrics.Collector
	if cfg.Telemetry.Metrics.Enabled {
		collector = metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
	}

	// Upstream client and recorder
	client := upstream.NewClient(upstream.Config{
		BaseURL:             cfg.Upstream.BaseURL,
		Timeout:             cfg.Upstream.Timeout,
		MaxIdleConns:        cfg.Upstream.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.Upstream.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.Upstream.IdleConnTimeout,
	})

	recorderCfg := recorder.DefaultConfig()
	recorderCfg.MaxDepth = cfg.Mining.MaxDepth
	rec := recorder.NewRecorder(store, collector, recorderCfg)
	defer rec.Close()

	// The big-upload path needs an external protocol client linked in; this
	// build ships only the interface, so configured credentials fall through
	// to plain HTTP forwarding.
	uploadCfg := upload.Config{APIID: cfg.Upload.APIID, APIHash: cfg.Upload.APIHash}
	if uploadCfg.Enabled() {
		logger.Warn("big-upload credentials configured but no upload client is linked in, " +
			"send calls with big_file=1 will be forwarded over plain HTTP")
	}

	handler := handlers.New(client, store, rec, nil, collector)
	srv := server.NewServer(&cfg.Server, &cfg.Telemetry.Metrics, handler, store, collector)

	// Configuration watcher: only the log level is applied live
	if runFlags.watchConfig {
		watcher, err := config.NewWatcher(cfgFile, logger)
		if err != nil {
			logger.Warn("failed to create config watcher", "error", err)
		} else {
			go func() {
				_ = watcher.Watch(ctx, func(next *config.Config) {
					if err := logging.SetLevel(next.Telemetry.Logging.Level); err != nil {
						logger.Error("failed to apply new log level", "error", err)
						return
					}
					logger.Info("log level updated", "level", next.Telemetry.Logging.Level)
				})
			}()
			defer watcher.Stop()
		}
	}

	fmt.Printf("✓ Server listening on %s\n", cfg.Server.ListenAddress)
	fmt.Printf("✓ Health endpoint: http://%s/health\n", cfg.Server.ListenAddress)
	if cfg.Telemetry.Metrics.Enabled {
		fmt.Printf("✓ Metrics endpoint: http://%s%s\n", cfg.Server.ListenAddress, cfg.Telemetry.Metrics.Path)
	}
	fmt.Println("\nPress Ctrl+C to stop")

	if err := srv.Start(ctx); err != nil {
		return cli.NewCommandError("run", err)
	}

	fmt.Println("✓ Server stopped")
	return nil
}
