package chain

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoBlock is returned when no block at or after a timestamp exists yet.
var ErrNoBlock = errors.New("no block found")

// BlockAtOrAfter returns the number of the earliest block whose timestamp is
// greater than or equal to ts, by binary search over block headers. Returns
// ErrNoBlock when the chain head is still older than ts.
func (c *Client) BlockAtOrAfter(ctx context.Context, ts uint64) (uint64, error) {
	latest, err := c.LatestBlockNumber(ctx)
	if err != nil {
		return 0, fmt.Errorf("latest block: %w", err)
	}
	return searchBlock(ctx, latest, ts, c.BlockTimestamp)
}

// searchBlock finds the lowest block in [1, latest] whose timestamp is >= ts.
// at reports the timestamp of a block number.
func searchBlock(
	ctx context.Context,
	latest uint64,
	ts uint64,
	at func(ctx context.Context, number uint64) (uint64, error),
) (uint64, error) {
	if latest == 0 {
		return 0, ErrNoBlock
	}

	headTime, err := at(ctx, latest)
	if err != nil {
		return 0, fmt.Errorf("block %d timestamp: %w", latest, err)
	}
	if headTime < ts {
		return 0, fmt.Errorf("timestamp %d past chain head: %w", ts, ErrNoBlock)
	}

	lo, hi := uint64(1), latest
	for lo < hi {
		mid := lo + (hi-lo)/2
		midTime, err := at(ctx, mid)
		if err != nil {
			return 0, fmt.Errorf("block %d timestamp: %w", mid, err)
		}
		if midTime >= ts {
			hi = mid
		} else {
			lo = mid + 1
		}
	}

	return lo, nil
}
