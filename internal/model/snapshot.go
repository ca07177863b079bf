package model

// RawPoolSnapshot is the unnormalized pool state at one block, exactly as the
// subgraph returns it. Numeric fields are decimal strings with implied
// fixed-point scales.
type RawPoolSnapshot struct {
	ID                  string `json:"id"`
	LPInvariant         string `json:"lpInvariant"`
	LPBorrowedInvariant string `json:"lpBorrowedInvariant"`
	LastPrice           string `json:"lastPrice"`
	TotalSupply         string `json:"totalSupply"`
	Token0Decimals      int    `json:"token0Decimals"`
	Token1Decimals      int    `json:"token1Decimals"`
}

// NormalizedSample is the decimal-valued counterpart of RawPoolSnapshot.
type NormalizedSample struct {
	TotalInvariant float64
	TotalSupply    float64
	LastPrice      float64
}

// Baseline holds the normalized values of the first successfully sampled
// block in a run. It is set exactly once and used as the fixed denominator
// for every return computation afterwards.
type Baseline struct {
	TotalInvariant float64
	TotalSupply    float64
	LastPrice      float64
}
