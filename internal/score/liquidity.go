package score

import (
	"math"

	"github.com/Buu205/Vietnam-stock-sub000/internal/domain"
)

// LiquidityScoreMax caps the liquidity factor.
const LiquidityScoreMax = 10

// LiquidityScore is the liquidity factor breakdown.
type LiquidityScore struct {
	TradingValueBn   float64 `json:"trading_value_bn"`
	TradingScore     int     `json:"trading_score"`
	VolumeTrendBonus int     `json:"volume_trend_bonus"`
	Value            int     `json:"value"`
}

// ScoreLiquidity grades daily trading value with a bonus for rising volume
// against both the 5d and 20d averages. Final value clamps to [0, 10].
func ScoreLiquidity(c domain.SignalCandidate) LiquidityScore {
	s := LiquidityScore{TradingValueBn: c.TradingValue / 1e9}
	s.TradingScore = tradingValueScore(s.TradingValueBn)
	s.VolumeTrendBonus = volumeTrendBonus(c.Volume, c.AvgVolume5D, c.AvgVolume20D)
	s.Value = clampInt(s.TradingScore+s.VolumeTrendBonus, 0, LiquidityScoreMax)
	return s
}

// tradingValueScore is an eight-bucket step of daily trading value in billions
// of VND.
func tradingValueScore(billions float64) int {
	switch {
	case billions >= 200:
		return 8
	case billions >= 100:
		return 7
	case billions >= 50:
		return 6
	case billions >= 20:
		return 5
	case billions >= 10:
		return 4
	case billions >= 5:
		return 3
	case billions >= 1:
		return 1
	}
	return 0
}

// volumeTrendBonus steps the weaker of the two volume ratios: a candidate only
// counts as expanding when today's volume beats both its short and long
// averages.
func volumeTrendBonus(volume, avg5d, avg20d float64) int {
	if avg5d <= 0 || avg20d <= 0 {
		return 0
	}
	m := math.Min(volume/avg5d, volume/avg20d)
	switch {
	case m >= 1.5:
		return 2
	case m >= 1.1:
		return 1
	case m >= 0.8:
		return 0
	case m >= 0.5:
		return -1
	}
	return -2
}
