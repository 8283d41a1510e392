package score

import (
	"math"

	"github.com/Buu205/Vietnam-stock-sub000/internal/domain"
)

// VSAScoreMax caps the volume/spread analysis factor.
const VSAScoreMax = 25

// Classification thresholds for the VSA signal table.
const (
	volHighRatio   = 1.5
	volLowRatio    = 0.7
	spreadWide     = 1.3
	spreadNarrow   = 0.7
	closeHighLevel = 0.7
	closeLowLevel  = 0.3
)

// VSAScore is the volume/spread/close-position factor breakdown. Sub-scores
// may be negative; only Value is clamped.
type VSAScore struct {
	VolRatio      float64 `json:"vol_ratio"`
	SpreadRatio   float64 `json:"spread_ratio"`
	ClosePosition float64 `json:"close_position"`

	VolumeScore     int `json:"volume_score"`
	SpreadScore     int `json:"spread_score"`
	CloseAlignScore int `json:"close_align_score"`

	Signal      string             `json:"signal,omitempty"`
	SignalBias  domain.PatternBias `json:"signal_bias,omitempty"`
	Bonus       int                `json:"bonus"`
	RawTotal    int                `json:"raw_total"`
	Multiplier  float64            `json:"multiplier"`
	Value       int                `json:"value"`
}

// VSAInput holds the precomputed ratios the VSA scorer consumes.
type VSAInput struct {
	VolRatio      float64 // volume / avg_volume_20d
	SpreadRatio   float64 // (high - low) / atr_14
	ClosePosition float64 // (close - low) / (high - low), 0.5 on a flat bar
	// PriceChangePct is accepted for interface stability but no branch reads
	// it today.
	PriceChangePct float64
}

// VSAInputFor derives the VSA ratios from a candidate, applying the documented
// degenerate-geometry fallbacks (flat bar -> 0.5 close position, zero
// denominators -> zero ratios).
func VSAInputFor(c domain.SignalCandidate) VSAInput {
	in := VSAInput{ClosePosition: 0.5}
	if c.AvgVolume20D > 0 {
		in.VolRatio = c.Volume / c.AvgVolume20D
	}
	if c.ATR14 > 0 {
		in.SpreadRatio = (c.Bar.High - c.Bar.Low) / c.ATR14
	}
	if spread := c.Bar.High - c.Bar.Low; spread > 0 {
		in.ClosePosition = (c.Bar.Close - c.Bar.Low) / spread
	}
	if c.Bar.Open > 0 {
		in.PriceChangePct = (c.Bar.Close - c.Bar.Open) / c.Bar.Open * 100
	}
	return in
}

// vsaSignal is one row of the signal detection table.
type vsaSignal struct {
	name     string
	vol      string // "high", "low", "any"
	spread   string // "wide", "narrow", "any"
	closePos string // "high", "low", "mid", "any"
	trend    string // "up", "down", "any" (trend family)
	bias     domain.PatternBias
}

// vsaSignalTable is ordered; the first matching row wins. Trend-specific rows
// sit above their any-trend counterparts so a selling climax in a downtrend
// reads as stopping volume rather than generic demand.
var vsaSignalTable = []vsaSignal{
	{"stopping_volume", "high", "wide", "mid", "down", domain.BiasBullish},
	{"shakeout", "high", "wide", "high", "down", domain.BiasBullish},
	{"demand_coming_in", "high", "wide", "high", "any", domain.BiasBullish},
	{"upthrust", "high", "wide", "low", "up", domain.BiasBearish},
	{"supply_coming_in", "high", "wide", "low", "any", domain.BiasBearish},
	{"effort_no_result", "high", "narrow", "any", "any", domain.BiasNone},
	{"no_supply", "low", "narrow", "low", "up", domain.BiasBullish},
	{"no_demand", "low", "narrow", "high", "any", domain.BiasBearish},
}

// ScoreVSA runs volume-spread analysis: three sub-scores, signal detection
// against the trade direction, and a nonlinear conflict multiplier when the
// detected signal contradicts the direction. Final value clamps to [0, 25].
func ScoreVSA(in VSAInput, dir domain.Direction, trend domain.TrendClass) VSAScore {
	s := VSAScore{
		VolRatio:      in.VolRatio,
		SpreadRatio:   in.SpreadRatio,
		ClosePosition: in.ClosePosition,
	}

	s.VolumeScore = vsaVolumeScore(in.VolRatio)
	s.SpreadScore = vsaSpreadScore(in.SpreadRatio, in.ClosePosition, in.VolRatio)
	s.CloseAlignScore = vsaCloseAlignScore(in.ClosePosition, dir)

	if sig, ok := detectVSASignal(in, trend); ok {
		s.Signal = sig.name
		s.SignalBias = sig.bias
		s.Bonus = signalAlignmentBonus(sig.bias, dir)
	}

	s.RawTotal = s.VolumeScore + s.SpreadScore + s.CloseAlignScore + s.Bonus

	s.Multiplier = conflictMultiplier(s.Bonus)
	s.Value = clampInt(int(math.Floor(float64(s.RawTotal)*s.Multiplier)), 0, VSAScoreMax)
	return s
}

// conflictMultiplier suppresses the score nonlinearly when the detected
// signal argues against the trade direction. Flat subtraction would let a
// strong raw total shrug off a hard conflict.
func conflictMultiplier(bonus int) float64 {
	switch {
	case bonus <= -4:
		return 0.6
	case bonus < 0:
		return 0.8
	}
	return 1.0
}

// vsaVolumeScore is an eight-bucket step of the volume ratio.
func vsaVolumeScore(volRatio float64) int {
	switch {
	case volRatio >= 3.0:
		return 10
	case volRatio >= 2.5:
		return 9
	case volRatio >= 2.0:
		return 8
	case volRatio >= 1.5:
		return 6
	case volRatio >= 1.2:
		return 5
	case volRatio >= 1.0:
		return 4
	case volRatio >= 0.7:
		return 2
	}
	return 0
}

// vsaSpreadScore branches on spread width. A wide bar closing near its high is
// conviction (8). A narrow bar on heavy volume is absorption (6). Everything
// else grades between.
func vsaSpreadScore(spreadRatio, closePos, volRatio float64) int {
	switch {
	case spreadRatio >= spreadWide:
		switch {
		case closePos >= closeHighLevel:
			return 8
		case closePos <= closeLowLevel:
			return 7
		}
		return 4
	case spreadRatio <= spreadNarrow:
		switch {
		case volRatio >= volHighRatio:
			return 6
		case volRatio >= 1.0:
			return 3
		}
		return 1
	}
	switch {
	case closePos >= closeHighLevel:
		return 5
	case closePos <= closeLowLevel:
		return 4
	}
	return 3
}

// vsaCloseAlignScore rewards a close in the direction of the trade. Bearish
// directions mirror the bucket ladder through 1-closePos.
func vsaCloseAlignScore(closePos float64, dir domain.Direction) int {
	cp := closePos
	if !dir.Bullish() {
		cp = 1 - closePos
	}
	switch {
	case cp >= 0.8:
		return 7
	case cp >= 0.6:
		return 5
	case cp >= 0.4:
		return 2
	}
	return -2
}

func detectVSASignal(in VSAInput, trend domain.TrendClass) (vsaSignal, bool) {
	volClass := "normal"
	switch {
	case in.VolRatio >= volHighRatio:
		volClass = "high"
	case in.VolRatio <= volLowRatio:
		volClass = "low"
	}

	spreadClass := "normal"
	switch {
	case in.SpreadRatio >= spreadWide:
		spreadClass = "wide"
	case in.SpreadRatio <= spreadNarrow:
		spreadClass = "narrow"
	}

	closeClass := "mid"
	switch {
	case in.ClosePosition >= closeHighLevel:
		closeClass = "high"
	case in.ClosePosition <= closeLowLevel:
		closeClass = "low"
	}

	for _, sig := range vsaSignalTable {
		if sig.vol != "any" && sig.vol != volClass {
			continue
		}
		if sig.spread != "any" && sig.spread != spreadClass {
			continue
		}
		if sig.closePos != "any" && sig.closePos != closeClass {
			continue
		}
		switch sig.trend {
		case "up":
			if !trend.IsUp() {
				continue
			}
		case "down":
			if !trend.IsDown() {
				continue
			}
		}
		return sig, true
	}
	return vsaSignal{}, false
}

// signalAlignmentBonus pays +3 when the detected signal agrees with the trade
// direction and -5 when it argues against it. Neutral signals score zero.
func signalAlignmentBonus(bias domain.PatternBias, dir domain.Direction) int {
	if bias == domain.BiasNone {
		return 0
	}
	signalBullish := bias == domain.BiasBullish
	if signalBullish == dir.Bullish() {
		return 3
	}
	return -5
}
