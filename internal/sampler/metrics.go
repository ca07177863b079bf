package sampler

import (
	"fmt"
	"math"

	"github.com/0xDeFiDevin/GammaLPvsSpot/internal/model"
)

// LPReturn computes the total LP return of the position relative to the
// baseline: per-share invariant growth times the square root of the relative
// price move. The first ratio isolates fee and interest accrual net of supply
// dilution; the square-root term approximates a constant-product AMM's
// exposure to the price of the volatile asset.
func LPReturn(sample model.NormalizedSample, baseline model.Baseline) (float64, error) {
	if baseline.TotalInvariant == 0 || baseline.TotalSupply == 0 {
		return 0, fmt.Errorf("baseline invariant or supply is zero")
	}
	if baseline.LastPrice == 0 {
		return 0, fmt.Errorf("baseline price is zero")
	}

	priceRatio := sample.LastPrice / baseline.LastPrice
	if priceRatio < 0 {
		return 0, fmt.Errorf("negative price ratio %g", priceRatio)
	}

	invariantGrowth := sample.TotalInvariant / baseline.TotalInvariant
	supplyGrowth := sample.TotalSupply / baseline.TotalSupply
	value := (invariantGrowth/supplyGrowth)*math.Sqrt(priceRatio) - 1

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("lp return is not finite")
	}
	return value, nil
}

// SpotReturn computes the return of holding the two assets 50/50 instead of
// providing liquidity, tracking only the volatile asset's price; the
// reference asset is treated as stable.
func SpotReturn(sample model.NormalizedSample, baseline model.Baseline) (float64, error) {
	if baseline.LastPrice == 0 {
		return 0, fmt.Errorf("baseline price is zero")
	}

	value := (sample.LastPrice/baseline.LastPrice)*0.5 + 0.5 - 1

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("spot return is not finite")
	}
	return value, nil
}

// Round6 rounds to 6 decimal places, matching the precision of emitted rows.
func Round6(value float64) float64 {
	return math.Round(value*1e6) / 1e6
}
