package model

// ReturnRow is one emitted record of the weekly return series. The timestamp
// is the cursor timestamp of the sampling step, not the resolved block's own
// timestamp. Numeric fields are rounded to 6 decimal places before emission.
type ReturnRow struct {
	UTCTimestamp         string  `json:"utc_timestamp"`
	BlockNumber          uint64  `json:"block_number"`
	TotalInvariant       float64 `json:"total_invariant"`
	TotalSupply          float64 `json:"total_supply"`
	LastPrice            float64 `json:"last_price"`
	TotalLPReturnPercent float64 `json:"total_lp_return_percent"`
	SpotReturnPercent    float64 `json:"spot_return_percent"`
}
