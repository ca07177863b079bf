package subgraph

import (
	"context"
	"fmt"
	"strconv"

	"github.com/0xDeFiDevin/GammaLPvsSpot/internal/model"
)

type tokenRecord struct {
	Decimals string `json:"decimals"`
}

type poolRecord struct {
	ID                  string      `json:"id"`
	LPInvariant         string      `json:"lpInvariant"`
	LPBorrowedInvariant string      `json:"lpBorrowedInvariant"`
	LastPrice           string      `json:"lastPrice"`
	TotalSupply         string      `json:"totalSupply"`
	Token0              tokenRecord `json:"token0"`
	Token1              tokenRecord `json:"token1"`
}

type poolData struct {
	GammaPool *poolRecord `json:"gammaPool"`
}

// PoolAtBlock returns the raw state of a GammaSwap pool as it existed at the
// given block. An absent pool record surfaces as ErrNoPool.
func (c *Client) PoolAtBlock(ctx context.Context, poolID string, block uint64) (*model.RawPoolSnapshot, error) {
	document := fmt.Sprintf(`{
  gammaPool(id: "%s", block: {number: %d}) {
    id
    lpInvariant
    lpBorrowedInvariant
    lastPrice
    totalSupply
    token0 { decimals }
    token1 { decimals }
  }
}`, poolID, block)

	var data poolData
	if err := c.query(ctx, document, &data); err != nil {
		return nil, fmt.Errorf("query pool: %w", err)
	}
	if data.GammaPool == nil {
		return nil, fmt.Errorf("pool %s at block %d: %w", poolID, block, ErrNoPool)
	}

	record := data.GammaPool
	return &model.RawPoolSnapshot{
		ID:                  record.ID,
		LPInvariant:         record.LPInvariant,
		LPBorrowedInvariant: record.LPBorrowedInvariant,
		LastPrice:           record.LastPrice,
		TotalSupply:         record.TotalSupply,
		Token0Decimals:      parseDecimals(record.Token0.Decimals),
		Token1Decimals:      parseDecimals(record.Token1.Decimals),
	}, nil
}

func parseDecimals(value string) int {
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return parsed
}
