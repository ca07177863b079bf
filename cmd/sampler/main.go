package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	root := &cobra.Command{
		Use:          "sampler",
		Short:        "GammaSwap LP vs spot return sampler",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Sample weekly pool returns",
		RunE:  runSampler,
	}

	runCmd.Flags().String("pool", "", "pool id (subgraph entity id)")
	runCmd.Flags().String("start", "", "start timestamp (unix seconds or RFC3339)")
	runCmd.Flags().String("end", "", "end timestamp, defaults to today 00:00 UTC")
	runCmd.Flags().Duration("step", 7*24*time.Hour, "cursor step")
	runCmd.Flags().String("block-subgraph", "", "block subgraph URL")
	runCmd.Flags().String("pool-subgraph", "", "GammaSwap pool subgraph URL")
	runCmd.Flags().String("rpc", "", "chain RPC URL (block resolver fallback)")
	runCmd.Flags().String("out", "./data/weETH-USDC.csv", "output CSV path")
	runCmd.Flags().String("pg-dsn", "", "optional Postgres DSN for row persistence")
	runCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(runCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
