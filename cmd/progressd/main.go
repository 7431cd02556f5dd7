package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"progressd/internal/config"
	"progressd/internal/httpapi"
	"progressd/internal/hub"
)

var version = "dev"

func main() {
	if err := buildRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "progressd",
		Short:         "Per-tenant task-progress notification hub",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(buildServeCmd(), buildVersionCmd())
	return root
}

func buildVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the progressd version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("progressd", version)
		},
	}
}

func buildServeCmd() *cobra.Command {
	// Flags with environment variable defaults
	defaultAddr := ":8080"
	if v := os.Getenv("PROGRESSD_ADDR"); v != "" {
		defaultAddr = v
	}
	defaultConfig := os.Getenv("PROGRESSD_CONFIG")
	defaultLevel := os.Getenv("PROGRESSD_LOG_LEVEL")
	if defaultLevel == "" {
		defaultLevel = "info"
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the notification hub HTTP server",
	}
	addr := cmd.Flags().String("addr", defaultAddr, "HTTP listen address, e.g. :8080")
	cfgPath := cmd.Flags().String("config", defaultConfig, "Optional config file (.yaml/.json/.toml)")
	logLevel := cmd.Flags().String("log-level", defaultLevel, "Log level: debug|info|warn|error")
	snapshotTTL := cmd.Flags().Duration("snapshot-ttl", 0, "Snapshot retention TTL (0=config/default, negative=unbounded)")
	snapshotCap := cmd.Flags().Int("snapshot-capacity", 0, "Max snapshots per tenant (0=config/default, negative=unbounded)")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		var cfg config.Config
		if *cfgPath != "" {
			var err error
			cfg, err = config.Load(*cfgPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
		}
		// Flags override file values when set.
		if cmd.Flags().Changed("addr") || cfg.Addr == "" {
			cfg.Addr = *addr
		}
		if cmd.Flags().Changed("log-level") || cfg.LogLevel == "" {
			cfg.LogLevel = *logLevel
		}
		if cmd.Flags().Changed("snapshot-capacity") {
			cfg.SnapshotCapacity = *snapshotCap
		}
		ttl, err := resolveTTL(cmd.Flags().Changed("snapshot-ttl"), *snapshotTTL, cfg.SnapshotTTL)
		if err != nil {
			return err
		}
		return runServe(cfg, ttl)
	}
	return cmd
}

// resolveTTL picks the snapshot TTL from the flag when set, else the config
// file string, else zero (hub default).
func resolveTTL(flagSet bool, flagVal time.Duration, fileVal string) (time.Duration, error) {
	if flagSet {
		return flagVal, nil
	}
	if fileVal == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(fileVal)
	if err != nil {
		return 0, fmt.Errorf("invalid snapshot_ttl %q: %w", fileVal, err)
	}
	return d, nil
}

func runServe(cfg config.Config, snapshotTTL time.Duration) error {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stderr).Level(level).With().
		Timestamp().Str("service", "progressd").Logger()

	h := hub.NewWithConfig(hub.Config{
		SnapshotTTL:      snapshotTTL,
		SnapshotCapacity: cfg.SnapshotCapacity,
		VendorAliases:    cfg.VendorAliases,
		Logger:           &logger,
	})

	httpapi.SetLogger(logger)
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetStreamBuffer(cfg.StreamBuffer)
	if cfg.Heartbeat != "" {
		d, err := time.ParseDuration(cfg.Heartbeat)
		if err != nil {
			return fmt.Errorf("invalid heartbeat %q: %w", cfg.Heartbeat, err)
		}
		httpapi.SetHeartbeatInterval(d)
	}
	httpapi.SetCORSOptions(cfg.CORSEnabled, cfg.CORSOrigins, cfg.CORSMethods, cfg.CORSHeaders)

	// Base context canceled on shutdown so live streams terminate.
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	httpapi.SetBaseContext(baseCtx)

	srv := &http.Server{Addr: cfg.Addr, Handler: httpapi.NewMux(h)}
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Addr).Msg("progressd listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}
	cancelBase()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn().Err(err).Msg("graceful shutdown error")
	}
	return nil
}
