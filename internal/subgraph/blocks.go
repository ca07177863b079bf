package subgraph

import (
	"context"
	"fmt"
	"strconv"
)

type blockRecord struct {
	Number    string `json:"number"`
	Timestamp string `json:"timestamp"`
}

type blocksData struct {
	Blocks []blockRecord `json:"blocks"`
}

// BlockAtOrAfter returns the number of the earliest block whose timestamp is
// greater than or equal to ts. An empty result set (the timestamp is past the
// chain head) surfaces as ErrNoBlock; the caller is not expected to tell that
// apart from a transport failure.
func (c *Client) BlockAtOrAfter(ctx context.Context, ts uint64) (uint64, error) {
	document := fmt.Sprintf(`{
  blocks(first: 1, orderBy: timestamp, orderDirection: asc, where: {timestamp_gte: %d}) {
    number
    timestamp
  }
}`, ts)

	var data blocksData
	if err := c.query(ctx, document, &data); err != nil {
		return 0, fmt.Errorf("query blocks: %w", err)
	}
	if len(data.Blocks) == 0 {
		return 0, fmt.Errorf("timestamp %d: %w", ts, ErrNoBlock)
	}

	number, err := strconv.ParseUint(data.Blocks[0].Number, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse block number %q: %w", data.Blocks[0].Number, err)
	}
	return number, nil
}
