package sampler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/0xDeFiDevin/GammaLPvsSpot/internal/model"
	"github.com/0xDeFiDevin/GammaLPvsSpot/internal/storage"
)

// weekSeconds is the default cursor step.
const weekSeconds = 7 * 86400

// BlockResolver maps a timestamp to the earliest block at or after it.
type BlockResolver interface {
	BlockAtOrAfter(ctx context.Context, ts uint64) (uint64, error)
}

// PoolFetcher retrieves the raw state of a pool at a historical block.
type PoolFetcher interface {
	PoolAtBlock(ctx context.Context, poolID string, block uint64) (*model.RawPoolSnapshot, error)
}

// RunConfig holds runtime settings for the sampler.
type RunConfig struct {
	PoolID      string
	Start       uint64
	End         uint64
	StepSeconds uint64
}

// Runner walks the time axis in fixed steps, samples pool state at each
// resolved block, and emits one return row per successful step. The baseline
// is captured from the first successful step and never overwritten.
type Runner struct {
	cfg      RunConfig
	blocks   BlockResolver
	pools    PoolFetcher
	sink     storage.Sink
	logger   *zap.Logger
	baseline *model.Baseline
}

// NewRunner builds a Runner with its dependencies.
func NewRunner(cfg RunConfig, blocks BlockResolver, pools PoolFetcher, sink storage.Sink, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.StepSeconds == 0 {
		cfg.StepSeconds = weekSeconds
	}
	return &Runner{
		cfg:    cfg,
		blocks: blocks,
		pools:  pools,
		sink:   sink,
		logger: logger,
	}
}

// Baseline returns the captured baseline, or nil before the first successful
// step.
func (r *Runner) Baseline() *model.Baseline {
	return r.baseline
}

// Run executes the sampling loop. Each step advances the cursor by exactly
// one step regardless of outcome; failed steps are skipped, never retried.
// Only context cancellation or an unusable configuration stops the run early.
func (r *Runner) Run(ctx context.Context) error {
	if r.blocks == nil {
		return fmt.Errorf("block resolver is nil")
	}
	if r.pools == nil {
		return fmt.Errorf("pool fetcher is nil")
	}
	if r.sink == nil {
		return fmt.Errorf("sink is nil")
	}
	if r.cfg.PoolID == "" {
		return fmt.Errorf("pool id is required")
	}
	if r.cfg.End < r.cfg.Start {
		return fmt.Errorf("end %d is before start %d", r.cfg.End, r.cfg.Start)
	}

	var written, skipped int
	for cursor := r.cfg.Start; cursor <= r.cfg.End; cursor += r.cfg.StepSeconds {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		row, ok := r.step(ctx, cursor)
		if !ok {
			skipped++
			continue
		}

		if err := r.sink.Append(ctx, *row); err != nil {
			// A failed write loses one row, not the run.
			r.logger.Error("append row", zap.Error(err), zap.Uint64("cursor", cursor), zap.Uint64("block", row.BlockNumber))
			skipped++
			continue
		}
		written++

		r.logger.Info("row written",
			zap.String("utc_timestamp", row.UTCTimestamp),
			zap.Uint64("block", row.BlockNumber),
			zap.Float64("total_lp_return", row.TotalLPReturnPercent),
			zap.Float64("spot_return", row.SpotReturnPercent),
		)
	}

	r.logger.Info("sampling complete", zap.Int("written", written), zap.Int("skipped", skipped))
	return nil
}

// step performs one sampling iteration at the cursor timestamp. It returns
// the assembled row, or false when the step failed and must be skipped.
func (r *Runner) step(ctx context.Context, cursor uint64) (*model.ReturnRow, bool) {
	block, err := r.blocks.BlockAtOrAfter(ctx, cursor)
	if err != nil {
		r.logger.Warn("resolve block", zap.Error(err), zap.Uint64("cursor", cursor))
		return nil, false
	}

	raw, err := r.pools.PoolAtBlock(ctx, r.cfg.PoolID, block)
	if err != nil {
		r.logger.Warn("fetch pool", zap.Error(err), zap.Uint64("cursor", cursor), zap.Uint64("block", block))
		return nil, false
	}

	r.logger.Debug("pool token decimals",
		zap.Int("token0", raw.Token0Decimals),
		zap.Int("token1", raw.Token1Decimals),
	)

	sample, err := normalizeSnapshot(raw)
	if err != nil {
		r.logger.Warn("normalize snapshot", zap.Error(err), zap.Uint64("block", block))
		return nil, false
	}

	if r.baseline == nil {
		r.baseline = &model.Baseline{
			TotalInvariant: sample.TotalInvariant,
			TotalSupply:    sample.TotalSupply,
			LastPrice:      sample.LastPrice,
		}
		r.logger.Info("baseline captured",
			zap.Uint64("block", block),
			zap.Float64("total_invariant", sample.TotalInvariant),
			zap.Float64("total_supply", sample.TotalSupply),
			zap.Float64("last_price", sample.LastPrice),
		)
	}

	lpReturn, err := LPReturn(sample, *r.baseline)
	if err != nil {
		r.logger.Warn("lp return", zap.Error(err), zap.Uint64("block", block))
		return nil, false
	}
	spotReturn, err := SpotReturn(sample, *r.baseline)
	if err != nil {
		r.logger.Warn("spot return", zap.Error(err), zap.Uint64("block", block))
		return nil, false
	}

	return &model.ReturnRow{
		UTCTimestamp:         time.Unix(int64(cursor), 0).UTC().Format("2006-01-02 15:04:05"),
		BlockNumber:          block,
		TotalInvariant:       Round6(sample.TotalInvariant),
		TotalSupply:          Round6(sample.TotalSupply),
		LastPrice:            Round6(sample.LastPrice),
		TotalLPReturnPercent: Round6(lpReturn),
		SpotReturnPercent:    Round6(spotReturn),
	}, true
}

// normalizeSnapshot converts the raw fixed-point fields into decimal values.
// Any unparsable field fails the whole snapshot so that a missing value never
// reaches the return math.
func normalizeSnapshot(raw *model.RawPoolSnapshot) (model.NormalizedSample, error) {
	lpInvariant, err := Normalize(raw.LPInvariant, invariantDecimals)
	if err != nil {
		return model.NormalizedSample{}, fmt.Errorf("lpInvariant: %w", err)
	}
	lpBorrowed, err := Normalize(raw.LPBorrowedInvariant, invariantDecimals)
	if err != nil {
		return model.NormalizedSample{}, fmt.Errorf("lpBorrowedInvariant: %w", err)
	}
	lastPrice, err := Normalize(raw.LastPrice, priceDecimals)
	if err != nil {
		return model.NormalizedSample{}, fmt.Errorf("lastPrice: %w", err)
	}
	totalSupply, err := Normalize(raw.TotalSupply, supplyDecimals)
	if err != nil {
		return model.NormalizedSample{}, fmt.Errorf("totalSupply: %w", err)
	}

	return model.NormalizedSample{
		TotalInvariant: lpInvariant + lpBorrowed,
		TotalSupply:    totalSupply,
		LastPrice:      lastPrice,
	}, nil
}
