package sampler

import (
	"fmt"
	"math"
	"strconv"
)

// Fixed-point scales used by the GammaSwap subgraph fields. The per-token
// decimals reported alongside the pool are intentionally not applied here;
// the series has always been produced with these constants and changing them
// would rescale every historical row.
const (
	invariantDecimals = 12
	supplyDecimals    = 12
	priceDecimals     = 6
)

// Normalize converts a fixed-point decimal string to a float by dividing by
// 10^decimals. It fails on values that do not parse as numbers; it never
// panics.
func Normalize(raw string, decimals int) (float64, error) {
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("normalize %q: %w", raw, err)
	}
	return value / math.Pow10(decimals), nil
}
