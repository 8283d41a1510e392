package domain

import "time"

// Bar is a single daily OHLCV bar.
type Bar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// SectorRS carries the sector-level RS pair used for sector-relative momentum.
type SectorRS struct {
	Rating     float64 `json:"rating"`
	Rating5Ago float64 `json:"rating_5d_ago"`
}

// SignalCandidate is the full feature set for one (symbol, date) scoring pass.
// All fields are populated by upstream feature sources before scoring; the
// engine never mutates a candidate. Missing optional data uses the documented
// zero-value fallbacks (empty pattern, nil sector RS, short Bars history).
type SignalCandidate struct {
	Symbol string    `json:"symbol"`
	Date   time.Time `json:"date"`

	// Current bar plus trailing history, most recent last. Support/resistance
	// needs up to 30 bars; shorter histories degrade to fewer levels.
	Bar  Bar   `json:"bar"`
	Bars []Bar `json:"bars,omitempty"`

	PatternName string      `json:"pattern_name,omitempty"`
	PatternBias PatternBias `json:"pattern_bias,omitempty"`
	TrendClass  TrendClass  `json:"trend_class"`

	RSRating     float64   `json:"rs_rating"`
	RSRating5Ago float64   `json:"rs_rating_5d_ago"`
	Sector       *SectorRS `json:"sector_rs,omitempty"`

	TradingValue float64 `json:"trading_value"` // VND
	Volume       float64 `json:"volume"`
	AvgVolume5D  float64 `json:"avg_volume_5d"`
	AvgVolume20D float64 `json:"avg_volume_20d"`
	ATR14        float64 `json:"atr_14"`

	PriceVsSMA20 float64 `json:"price_vs_sma20"` // percent
	PriceVsSMA50 float64 `json:"price_vs_sma50"` // percent
}

// SupportResistanceLevel is one computed level near the current price.
type SupportResistanceLevel struct {
	Price       float64   `json:"price"`
	Label       string    `json:"label"`
	PctDistance float64   `json:"pct_distance"`
	Type        LevelType `json:"type"`
}

// LevelType distinguishes swing levels from Fibonacci retracements.
type LevelType string

const (
	LevelSwing LevelType = "swing"
	LevelFib   LevelType = "fib"
)
