package score

import (
	"fmt"
	"sort"

	"github.com/Buu205/Vietnam-stock-sub000/internal/domain"
)

// SRScoreMax caps the support/resistance factor.
const SRScoreMax = 15

// SR level calculation windows.
const (
	swingLookback  = 20
	fibLookback    = 30
	rangeLookback  = 14 // simplified ATR proxy window
	levelBufferPct = 0.5
)

var fibRatios = []float64{0.236, 0.382, 0.5, 0.618, 0.786}

// SRScore is the support/resistance factor breakdown.
type SRScore struct {
	Supports    []domain.SupportResistanceLevel `json:"supports,omitempty"`
	Resistances []domain.SupportResistanceLevel `json:"resistances,omitempty"`
	FibValid    bool                            `json:"fib_valid"`

	ProximityScore  int     `json:"proximity_score"`
	RiskReward      float64 `json:"risk_reward"`
	RiskRewardBonus int     `json:"risk_reward_bonus"`
	Value           int     `json:"value"`
}

// CalculateLevels derives support and resistance candidates from the trailing
// bar history: the 20-bar swing high/low always, plus five Fibonacci
// retracements of the 30-bar range when that range is meaningful (at least 5x
// the 14-bar mean bar height). Levels inside a 0.5% buffer of the current
// price are dropped. Supports come back sorted closest-below first,
// resistances closest-above first, at most three each.
func CalculateLevels(bars []domain.Bar, price float64) (supports, resistances []domain.SupportResistanceLevel) {
	if len(bars) == 0 || price <= 0 {
		return nil, nil
	}

	addLevel := func(level float64, label string, typ domain.LevelType) {
		buffer := price * levelBufferPct / 100
		switch {
		case level < price-buffer:
			supports = append(supports, domain.SupportResistanceLevel{
				Price:       level,
				Label:       label,
				PctDistance: (price - level) / price * 100,
				Type:        typ,
			})
		case level > price+buffer:
			resistances = append(resistances, domain.SupportResistanceLevel{
				Price:       level,
				Label:       label,
				PctDistance: (level - price) / price * 100,
				Type:        typ,
			})
		}
	}

	swingBars := lastBars(bars, swingLookback)
	swingHigh, swingLow := barsHighLow(swingBars)
	addLevel(swingHigh, "swing_high_20", domain.LevelSwing)
	addLevel(swingLow, "swing_low_20", domain.LevelSwing)

	if FibRangeValid(bars) {
		fibBars := lastBars(bars, fibLookback)
		fibHigh, fibLow := barsHighLow(fibBars)
		fibRange := fibHigh - fibLow
		for _, r := range fibRatios {
			level := fibHigh - fibRange*r
			addLevel(level, fmt.Sprintf("fib_%.1f", r*100), domain.LevelFib)
		}
	}

	sort.Slice(supports, func(i, j int) bool { return supports[i].Price > supports[j].Price })
	sort.Slice(resistances, func(i, j int) bool { return resistances[i].Price < resistances[j].Price })
	if len(supports) > 3 {
		supports = supports[:3]
	}
	if len(resistances) > 3 {
		resistances = resistances[:3]
	}
	return supports, resistances
}

// FibRangeValid requires the 30-bar retracement range to dwarf typical bar
// height (5x the 14-bar mean), otherwise the fib grid is noise around a flat
// tape and only swing levels are used.
func FibRangeValid(bars []domain.Bar) bool {
	if len(bars) == 0 {
		return false
	}
	fibHigh, fibLow := barsHighLow(lastBars(bars, fibLookback))
	recent := lastBars(bars, rangeLookback)
	var sum float64
	for _, b := range recent {
		sum += b.High - b.Low
	}
	meanRange := sum / float64(len(recent))
	return meanRange > 0 && fibHigh-fibLow >= 5*meanRange
}

// ScoreSupportResistance combines level proximity with a risk/reward bonus.
// Long-side directions (BUY, BOUNCE) anchor on the nearest support; short-side
// on the nearest resistance. Final value clamps to [0, 15].
func ScoreSupportResistance(bars []domain.Bar, price float64, dir domain.Direction) SRScore {
	supports, resistances := CalculateLevels(bars, price)
	s := SRScore{Supports: supports, Resistances: resistances, FibValid: FibRangeValid(bars)}

	near, opposite := supports, resistances
	if !dir.Bullish() {
		near, opposite = resistances, supports
	}

	s.ProximityScore = proximityScore(near)

	if len(near) > 0 && len(opposite) > 0 {
		risk := near[0].PctDistance
		reward := opposite[0].PctDistance
		if risk > 0 {
			s.RiskReward = reward / risk
			s.RiskRewardBonus = riskRewardBonus(s.RiskReward)
		}
	}

	s.Value = clampInt(s.ProximityScore+s.RiskRewardBonus, 0, SRScoreMax)
	return s
}

// proximityScore maps the distance to the nearest relevant level through a
// five-bucket step. No level at all scores a neutral 3.
func proximityScore(levels []domain.SupportResistanceLevel) int {
	if len(levels) == 0 {
		return 3
	}
	switch dist := levels[0].PctDistance; {
	case dist < 1.0:
		return 12
	case dist < 2.0:
		return 10
	case dist < 3.0:
		return 8
	case dist < 5.0:
		return 5
	}
	return 2
}

func riskRewardBonus(ratio float64) int {
	switch {
	case ratio >= 3.0:
		return 3
	case ratio >= 2.0:
		return 2
	case ratio >= 1.5:
		return 1
	case ratio >= 1.0:
		return 0
	case ratio >= 0.6:
		return -1
	case ratio >= 0.3:
		return -2
	}
	return -3
}

func lastBars(bars []domain.Bar, n int) []domain.Bar {
	if len(bars) <= n {
		return bars
	}
	return bars[len(bars)-n:]
}

func barsHighLow(bars []domain.Bar) (high, low float64) {
	for i, b := range bars {
		if i == 0 || b.High > high {
			high = b.High
		}
		if i == 0 || b.Low < low {
			low = b.Low
		}
	}
	return high, low
}
