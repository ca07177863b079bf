package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/0xDeFiDevin/GammaLPvsSpot/internal/chain"
	"github.com/0xDeFiDevin/GammaLPvsSpot/internal/config"
	"github.com/0xDeFiDevin/GammaLPvsSpot/internal/sampler"
	"github.com/0xDeFiDevin/GammaLPvsSpot/internal/storage"
	"github.com/0xDeFiDevin/GammaLPvsSpot/internal/storage/postgres"
	"github.com/0xDeFiDevin/GammaLPvsSpot/internal/subgraph"
)

func runSampler(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.PoolSubgraphURL == "" {
		return fmt.Errorf("pool subgraph url is required")
	}
	if cfg.BlockSubgraphURL == "" && cfg.RPCURL == "" {
		return fmt.Errorf("block subgraph url or rpc url is required")
	}

	start, err := config.ParseTimestamp(cfg.Start)
	if err != nil {
		return fmt.Errorf("parse start: %w", err)
	}

	end := uint64(time.Now().UTC().Truncate(24 * time.Hour).Unix())
	if cfg.End != "" {
		end, err = config.ParseTimestamp(cfg.End)
		if err != nil {
			return fmt.Errorf("parse end: %w", err)
		}
	}

	if cfg.Step <= 0 {
		return fmt.Errorf("step must be positive")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var blocks sampler.BlockResolver
	if cfg.BlockSubgraphURL != "" {
		blocks = subgraph.NewClient(cfg.BlockSubgraphURL)
	} else {
		chainClient, err := chain.NewClient(ctx, cfg.RPCURL)
		if err != nil {
			return fmt.Errorf("connect rpc: %w", err)
		}
		defer chainClient.Close()
		blocks = chainClient
	}

	pools := subgraph.NewClient(cfg.PoolSubgraphURL)

	var sink storage.Sink = storage.NewCSVSink(cfg.Out)
	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN, cfg.PoolID)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()
		sink = storage.Multi(sink, store)
	}

	runner := sampler.NewRunner(sampler.RunConfig{
		PoolID:      cfg.PoolID,
		Start:       start,
		End:         end,
		StepSeconds: uint64(cfg.Step.Seconds()),
	}, blocks, pools, sink, logger)

	logger.Info("sampler start",
		zap.String("pool", cfg.PoolID),
		zap.Uint64("start", start),
		zap.Uint64("end", end),
		zap.Duration("step", cfg.Step),
		zap.String("out", cfg.Out),
		zap.Bool("postgres", cfg.PGDSN != ""),
	)

	return runner.Run(ctx)
}
