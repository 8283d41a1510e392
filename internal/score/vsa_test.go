package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Buu205/Vietnam-stock-sub000/internal/domain"
)

func TestScoreVSA_DemandComingIn(t *testing.T) {
	// High volume, wide spread, close near the high, buying with the trend:
	// textbook demand coming in.
	in := VSAInput{VolRatio: 3.2, SpreadRatio: 1.5, ClosePosition: 0.85}
	s := ScoreVSA(in, domain.DirectionBuy, domain.TrendUp)

	assert.Equal(t, 10, s.VolumeScore)
	assert.Equal(t, 8, s.SpreadScore)
	assert.Equal(t, 7, s.CloseAlignScore)
	assert.Equal(t, "demand_coming_in", s.Signal)
	assert.Equal(t, domain.BiasBullish, s.SignalBias)
	assert.Equal(t, 3, s.Bonus)
	assert.Equal(t, 28, s.RawTotal)
	assert.Equal(t, 1.0, s.Multiplier)
	assert.Equal(t, VSAScoreMax, s.Value)
}

func TestScoreVSA_ConflictSuppression(t *testing.T) {
	// Same bar, but shorting into demand: the conflict multiplier bites.
	in := VSAInput{VolRatio: 3.2, SpreadRatio: 1.5, ClosePosition: 0.85}
	s := ScoreVSA(in, domain.DirectionSell, domain.TrendUp)

	assert.Equal(t, -5, s.Bonus)
	assert.Equal(t, 0.6, s.Multiplier)
	// close alignment mirrors for shorts: 1-0.85 lands in the bottom bucket
	assert.Equal(t, -2, s.CloseAlignScore)
	assert.Equal(t, 10+8-2-5, s.RawTotal)
	assert.Equal(t, 6, s.Value) // floor(11 * 0.6)
}

func TestConflictMultiplier_Steps(t *testing.T) {
	assert.Equal(t, 0.6, conflictMultiplier(-5))
	assert.Equal(t, 0.6, conflictMultiplier(-4))
	assert.Equal(t, 0.8, conflictMultiplier(-3))
	assert.Equal(t, 0.8, conflictMultiplier(-1))
	assert.Equal(t, 1.0, conflictMultiplier(0))
	assert.Equal(t, 1.0, conflictMultiplier(3))
}

func TestScoreVSA_SignalTable(t *testing.T) {
	tests := []struct {
		name   string
		in     VSAInput
		trend  domain.TrendClass
		signal string
		bias   domain.PatternBias
	}{
		{
			"stopping volume in downtrend",
			VSAInput{VolRatio: 2.0, SpreadRatio: 1.5, ClosePosition: 0.5},
			domain.TrendDown, "stopping_volume", domain.BiasBullish,
		},
		{
			"shakeout closes high in downtrend",
			VSAInput{VolRatio: 2.0, SpreadRatio: 1.5, ClosePosition: 0.9},
			domain.TrendStrongDown, "shakeout", domain.BiasBullish,
		},
		{
			"upthrust in uptrend",
			VSAInput{VolRatio: 1.8, SpreadRatio: 1.6, ClosePosition: 0.1},
			domain.TrendUp, "upthrust", domain.BiasBearish,
		},
		{
			"supply coming in sideways",
			VSAInput{VolRatio: 1.8, SpreadRatio: 1.6, ClosePosition: 0.1},
			domain.TrendSideways, "supply_coming_in", domain.BiasBearish,
		},
		{
			"effort without result",
			VSAInput{VolRatio: 2.2, SpreadRatio: 0.5, ClosePosition: 0.5},
			domain.TrendUp, "effort_no_result", domain.BiasNone,
		},
		{
			"no supply on quiet pullback bar",
			VSAInput{VolRatio: 0.4, SpreadRatio: 0.5, ClosePosition: 0.2},
			domain.TrendUp, "no_supply", domain.BiasBullish,
		},
		{
			"no demand on quiet up bar",
			VSAInput{VolRatio: 0.5, SpreadRatio: 0.6, ClosePosition: 0.8},
			domain.TrendDown, "no_demand", domain.BiasBearish,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ScoreVSA(tt.in, domain.DirectionBuy, tt.trend)
			assert.Equal(t, tt.signal, s.Signal)
			assert.Equal(t, tt.bias, s.SignalBias)
		})
	}
}

func TestScoreVSA_NoSignalOnOrdinaryBar(t *testing.T) {
	in := VSAInput{VolRatio: 1.0, SpreadRatio: 1.0, ClosePosition: 0.5}
	s := ScoreVSA(in, domain.DirectionBuy, domain.TrendUp)
	assert.Empty(t, s.Signal)
	assert.Equal(t, 0, s.Bonus)
	assert.Equal(t, 1.0, s.Multiplier)
}

func TestScoreVSA_BoundsAndNeutralSignal(t *testing.T) {
	// Neutral signals never pay or penalize.
	in := VSAInput{VolRatio: 2.2, SpreadRatio: 0.5, ClosePosition: 0.5}
	s := ScoreVSA(in, domain.DirectionSell, domain.TrendUp)
	assert.Equal(t, "effort_no_result", s.Signal)
	assert.Equal(t, 0, s.Bonus)

	// Value stays within [0,25] across adversarial inputs.
	worst := ScoreVSA(VSAInput{VolRatio: 0, SpreadRatio: 2.0, ClosePosition: 0.0}, domain.DirectionBuy, domain.TrendUp)
	assert.GreaterOrEqual(t, worst.Value, 0)
	assert.LessOrEqual(t, worst.Value, VSAScoreMax)
}

func TestVSAInputFor_DegenerateGeometry(t *testing.T) {
	c := domain.SignalCandidate{
		Bar:          domain.Bar{Open: 10, High: 10, Low: 10, Close: 10},
		Volume:       100,
		AvgVolume20D: 200,
		ATR14:        0.5,
	}
	in := VSAInputFor(c)
	assert.Equal(t, 0.5, in.ClosePosition, "flat bar falls back to mid close")
	assert.Equal(t, 0.5, in.VolRatio)
	assert.Equal(t, 0.0, in.SpreadRatio)
}
