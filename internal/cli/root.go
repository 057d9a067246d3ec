package cli

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/vietddude/stylelog"

	"github.com/vietddude/btcprobe/internal/control"
	"github.com/vietddude/btcprobe/internal/core/config"
)

var (
	cfgPath  string
	isDebug  bool
	keyCount int
)

var rootCmd = &cobra.Command{
	Use:   "btcprobe",
	Short: "Bitcoin key generator and balance probe",
	Long: `btcprobe generates random Bitcoin private keys, derives their legacy,
nested SegWit and native SegWit addresses and checks each one against an
Esplora-compatible block explorer.`,
	Run: runProbe,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (defaults are used when empty)")
	rootCmd.PersistentFlags().BoolVar(&isDebug, "debug", false, "enable debug logging")
	rootCmd.Flags().IntVar(&keyCount, "keys", 0, "number of keys to generate (overrides scan.keys)")
}

// loadConfig reads the config file and installs the logger.
func loadConfig() *config.AppConfig {
	_ = godotenv.Load()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		stylelog.InitDefault()
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	slogLevel := slog.LevelInfo
	switch {
	case isDebug || cfg.Logging.Level == "debug":
		slogLevel = slog.LevelDebug
	case cfg.Logging.Level == "warn":
		slogLevel = slog.LevelWarn
	case cfg.Logging.Level == "error":
		slogLevel = slog.LevelError
	}

	stylelog.InitDefault(&tint.Options{
		Level:      slogLevel,
		TimeFormat: time.RFC3339,
	})

	return cfg
}

func runProbe(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	if keyCount < 0 {
		slog.Error("Invalid --keys value", "keys", keyCount)
		os.Exit(1)
	}
	if cmd.Flags().Changed("keys") {
		cfg.Scan.Keys = keyCount
	}

	// Transform config
	controlCfg := control.Config{
		Keys:           cfg.Scan.Keys,
		SatoshisPerBTC: cfg.Scan.SatoshisPerBTC,
		RequestDelay:   cfg.Scan.RequestDelay,
		Bech32:         cfg.Scan.Bech32,
		Explorer:       cfg.Explorer,
		MetricsPort:    cfg.Metrics.Port,
		Output:         os.Stdout,
	}

	app, err := control.NewProber(controlCfg)
	if err != nil {
		slog.Error("Failed to initialize Prober", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("Received signal, stopping after current step...", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	if err := app.Start(ctx); err != nil {
		slog.Error("Failed to start Prober", "error", err)
		os.Exit(1)
	}

	slog.Debug("Prober started", "config", cfgPath, "run_id", app.RunID())
	_, runErr := app.Run(ctx)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := app.Stop(shutdownCtx); err != nil {
		slog.Error("Error during shutdown", "error", err)
	}

	switch {
	case runErr == nil:
	case errors.Is(runErr, context.Canceled):
		os.Exit(130)
	default:
		slog.Error("Probe failed", "error", runErr)
		os.Exit(1)
	}
}
