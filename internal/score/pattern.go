package score

import (
	"math"
	"strings"

	"github.com/Buu205/Vietnam-stock-sub000/internal/domain"
)

// PatternScoreMax caps the pattern factor.
const PatternScoreMax = 15

// PatternScore is the candlestick-pattern factor breakdown.
type PatternScore struct {
	Pattern    string  `json:"pattern,omitempty"`
	Base       int     `json:"base"`
	Multiplier float64 `json:"multiplier"`
	Value      int     `json:"value"`
}

// patternBaseScores maps normalized pattern names to base reliability scores.
// Tiers reflect historical reliability: three-bar reversals strongest, single
// doji-type bars weakest.
var patternBaseScores = map[string]int{
	"morning_star":         15,
	"evening_star":         15,
	"three_white_soldiers": 15,
	"three_black_crows":    15,

	"bullish_engulfing": 13,
	"bearish_engulfing": 13,
	"piercing_line":     13,
	"dark_cloud_cover":  13,

	"hammer":          10,
	"hanging_man":     10,
	"inverted_hammer": 10,
	"shooting_star":   10,

	"bullish_harami": 8,
	"bearish_harami": 8,
	"tweezer_bottom": 8,
	"tweezer_top":    8,

	"doji":         5,
	"spinning_top": 5,

	"breakout":     7,
	"volume_spike": 5,
}

// bullishReversalPatterns and bearishReversalPatterns drive the trend-context
// multiplier. Continuation signals (breakout, volume_spike) are in neither set.
var bullishReversalPatterns = map[string]bool{
	"morning_star":         true,
	"three_white_soldiers": true,
	"bullish_engulfing":    true,
	"piercing_line":        true,
	"hammer":               true,
	"inverted_hammer":      true,
	"bullish_harami":       true,
	"tweezer_bottom":       true,
}

var bearishReversalPatterns = map[string]bool{
	"evening_star":      true,
	"three_black_crows": true,
	"bearish_engulfing": true,
	"dark_cloud_cover":  true,
	"hanging_man":       true,
	"shooting_star":     true,
	"bearish_harami":    true,
	"tweezer_top":       true,
}

const unknownPatternScore = 5

// NormalizePatternName lowercases and underscores a detector-supplied name so
// "Morning Star" and "morning_star" hit the same table entry.
func NormalizePatternName(name string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	return strings.ReplaceAll(name, " ", "_")
}

// ScorePattern scores pattern reliability with a trend-context multiplier.
// Reversal patterns firing against an extended trend get boosted 1.2x (that is
// where they matter most); any reversal in a sideways tape is discounted 0.9x.
// The result floors the product and hard-clamps to [0, 15].
func ScorePattern(patternName string, trend domain.TrendClass) PatternScore {
	name := NormalizePatternName(patternName)
	if name == "" {
		return PatternScore{Multiplier: 1.0}
	}

	base, ok := patternBaseScores[name]
	if !ok {
		base = unknownPatternScore
	}

	mult := 1.0
	switch {
	case bullishReversalPatterns[name] && trend.IsDown():
		mult = 1.2
	case bearishReversalPatterns[name] && trend.IsUp():
		mult = 1.2
	case (bullishReversalPatterns[name] || bearishReversalPatterns[name]) && trend == domain.TrendSideways:
		mult = 0.9
	}

	value := clampInt(int(math.Floor(float64(base)*mult)), 0, PatternScoreMax)
	return PatternScore{
		Pattern:    name,
		Base:       base,
		Multiplier: mult,
		Value:      value,
	}
}
