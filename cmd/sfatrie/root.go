package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/hupe1980/sfatrie"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "sfatrie",
	Short: "Exact similarity search over time series",
	Long: `sfatrie indexes z-normalized time series in a symbolic trie and answers
exact k-nearest-neighbor and epsilon-range queries.

Example usage:
  sfatrie bench --scenario whole          # 10,000 random walks, 1-NN
  sfatrie bench --scenario subsequence    # sliding windows of one long walk
  sfatrie bench --scenario range          # range counts at 1.001 x 1-NN
  sfatrie bench --config bench.yaml       # parameters from a YAML file`,
	SilenceUsage: true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML file overriding the flag values")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
}

func newLogger() (*sfatrie.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	return sfatrie.NewTextLogger(level), nil
}
