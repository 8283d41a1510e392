package domain

import "fmt"

// TrendClass is the five-way trend classification derived from price vs SMA20/50.
type TrendClass string

const (
	TrendStrongUp   TrendClass = "STRONG_UP"
	TrendUp         TrendClass = "UPTREND"
	TrendSideways   TrendClass = "SIDEWAYS"
	TrendDown       TrendClass = "DOWNTREND"
	TrendStrongDown TrendClass = "STRONG_DOWN"
)

// Valid reports whether t is one of the five trend classes.
func (t TrendClass) Valid() bool {
	switch t {
	case TrendStrongUp, TrendUp, TrendSideways, TrendDown, TrendStrongDown:
		return true
	}
	return false
}

// IsUp reports whether t is in the uptrend family (STRONG_UP or UPTREND).
func (t TrendClass) IsUp() bool { return t == TrendStrongUp || t == TrendUp }

// IsDown reports whether t is in the downtrend family (STRONG_DOWN or DOWNTREND).
func (t TrendClass) IsDown() bool { return t == TrendStrongDown || t == TrendDown }

// ClassifyTrend maps price-vs-SMA percentages to a TrendClass.
// STRONG_UP if both above +5%, UPTREND if both above +2%, mirrored on the
// downside, SIDEWAYS otherwise.
func ClassifyTrend(pctVsSMA20, pctVsSMA50 float64) TrendClass {
	switch {
	case pctVsSMA20 > 5 && pctVsSMA50 > 5:
		return TrendStrongUp
	case pctVsSMA20 > 2 && pctVsSMA50 > 2:
		return TrendUp
	case pctVsSMA20 < -5 && pctVsSMA50 < -5:
		return TrendStrongDown
	case pctVsSMA20 < -2 && pctVsSMA50 < -2:
		return TrendDown
	}
	return TrendSideways
}

// PatternBias is the directional bias of a detected candlestick pattern.
// The empty string means no pattern (or no bias) was detected upstream.
type PatternBias string

const (
	BiasBullish PatternBias = "BULLISH"
	BiasBearish PatternBias = "BEARISH"
	BiasNone    PatternBias = ""
)

// Direction is the trade direction derived once per candidate and never
// mutated by any scorer.
type Direction string

const (
	DirectionBuy      Direction = "BUY"
	DirectionSell     Direction = "SELL"
	DirectionPullback Direction = "PULLBACK"
	DirectionBounce   Direction = "BOUNCE"
)

// Valid reports whether d is one of the four trade directions.
func (d Direction) Valid() bool {
	switch d {
	case DirectionBuy, DirectionSell, DirectionPullback, DirectionBounce:
		return true
	}
	return false
}

// Bullish reports whether d is long-side (BUY or BOUNCE). SELL and PULLBACK
// anticipate downside movement, so their implied bias is bearish.
func (d Direction) Bullish() bool { return d == DirectionBuy || d == DirectionBounce }

// QualityLabel is the discretized tier of the composite score.
type QualityLabel string

const (
	QualityExcellent QualityLabel = "EXCELLENT"
	QualityGood      QualityLabel = "GOOD"
	QualityModerate  QualityLabel = "MODERATE"
	QualityWeak      QualityLabel = "WEAK"
	QualityAvoid     QualityLabel = "AVOID"
)

// QualityForScore maps a composite total to its quality tier.
// Breakpoints: 80 / 65 / 50 / 35.
func QualityForScore(total int) QualityLabel {
	switch {
	case total >= 80:
		return QualityExcellent
	case total >= 65:
		return QualityGood
	case total >= 50:
		return QualityModerate
	case total >= 35:
		return QualityWeak
	}
	return QualityAvoid
}

// MustValidTrend panics when t is outside the closed trend set. An invalid
// trend class is a programmer error upstream, not a recoverable condition.
func MustValidTrend(t TrendClass) {
	if !t.Valid() {
		panic(fmt.Sprintf("domain: invalid trend class %q", t))
	}
}
