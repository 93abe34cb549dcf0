package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/luca-patrignani/hashledger/config"
	"github.com/luca-patrignani/hashledger/ledger"
	"github.com/luca-patrignani/hashledger/metrics"
)

var (
	cfg      config.Config
	prompter Prompter = ptermPrompter{}
)

var rootCmd = &cobra.Command{
	Use:   "hashledger",
	Short: "Tamper-evident append-only ledger",
	Long:  `hashledger builds a hash-chained ledger of blocks and transactions in memory and validates it for tampering.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(viper.GetViper())
		if err != nil {
			return err
		}
		setLogger(cfg.Level())
		slog.Debug("Application started", "version", Version, "config", cfg)
		return nil
	},
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pterm.DefaultBigText.WithLetters(
			putils.LettersFromStringWithStyle("Hash", pterm.FgRed.ToStyle()),
			putils.LettersFromStringWithStyle("Ledger", pterm.FgDarkGray.ToStyle()),
		).Render()
		return runMenu(cmd, args)
	},
}

var slogToPterm = map[slog.Level]pterm.LogLevel{
	slog.LevelDebug: pterm.LogLevelDebug,
	slog.LevelInfo:  pterm.LogLevelInfo,
	slog.LevelWarn:  pterm.LogLevelWarn,
	slog.LevelError: pterm.LogLevelError,
}

// setLogger routes slog through the pterm logger at the given level.
func setLogger(level slog.Level) {
	logger := pterm.DefaultLogger.WithLevel(slogToPterm[level])
	slog.SetDefault(slog.New(pterm.NewSlogHandler(logger)))
}

// newLedger builds an empty ledger from the loaded configuration and starts
// the metrics server when one is configured. The returned function tears the
// ledger down and stops the server.
func newLedger(ctx context.Context) (*ledger.Blockchain, func(), error) {
	opts, err := cfg.LedgerOptions()
	if err != nil {
		return nil, nil, err
	}
	opts = append(opts, ledger.WithLogger(slog.Default()))

	if cfg.MetricsAddr == "" {
		chain := ledger.New(opts...)
		return chain, chain.Teardown, nil
	}

	reg := prometheus.NewRegistry()
	collector, err := metrics.NewCollector(reg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to register metrics: %w", err)
	}
	srv, err := metrics.Listen(cfg.MetricsAddr, reg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start metrics server: %w", err)
	}
	chain := ledger.New(append(opts, ledger.WithObserver(collector))...)
	closeFn := func() {
		chain.Teardown()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := srv.Close(ctx); err != nil {
			slog.Error("Failed to stop metrics server", "error", err)
		}
	}
	return chain, closeFn, nil
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringP(config.KeyLogLevel, "l", "info", fmt.Sprintf("set log level (%s)", config.ValidLogLevels))
	flags.String(config.KeyFieldPolicy, "reject", "how to handle over-length text fields (reject|truncate)")
	flags.Int(config.KeyMaxTransactions, ledger.DefaultMaxTransactions, "maximum number of transactions per block")
	flags.Int(config.KeyVerifyWorkers, 0, "goroutines used to validate the chain (0 = sequential)")
	flags.String(config.KeyMetricsAddr, "", "address of the Prometheus metrics server (disabled when empty)")
	flags.String(config.KeyHashSuite, "Ed25519", "kyber suite providing the 256-bit hash")
	if err := viper.BindPFlags(flags); err != nil {
		slog.Error("Failed to bind rootCmd flags", "error", err)
	}

	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	config.Setup(viper.GetViper())

	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	setLogger(slog.LevelInfo)

	if err := viper.ReadInConfig(); err == nil {
		slog.Debug("Using config file", "file", viper.ConfigFileUsed())
	}

	if err := rootCmd.Execute(); err != nil {
		slog.Error("An error occurred", "error", err)
		os.Exit(1)
	}
}
