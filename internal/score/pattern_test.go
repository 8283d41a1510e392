package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Buu205/Vietnam-stock-sub000/internal/domain"
)

func TestScorePattern_MorningStarInUptrend(t *testing.T) {
	// Bullish reversal with the trend gets no context bonus.
	s := ScorePattern("morning_star", domain.TrendUp)
	assert.Equal(t, 15, s.Base)
	assert.Equal(t, 1.0, s.Multiplier)
	assert.Equal(t, 15, s.Value)
}

func TestScorePattern_ContextMultiplier(t *testing.T) {
	// A bullish reversal is worth more against a downtrend than with an uptrend.
	inDown := ScorePattern("hammer", domain.TrendStrongDown)
	inUp := ScorePattern("hammer", domain.TrendUp)
	assert.Equal(t, 1.2, inDown.Multiplier)
	assert.Equal(t, 12, inDown.Value)
	assert.GreaterOrEqual(t, inDown.Value, inUp.Value)

	// Bearish reversal against an uptrend boosts too.
	s := ScorePattern("shooting_star", domain.TrendStrongUp)
	assert.Equal(t, 1.2, s.Multiplier)
	assert.Equal(t, 12, s.Value)

	// Any reversal in a sideways tape is discounted.
	s = ScorePattern("bullish_engulfing", domain.TrendSideways)
	assert.Equal(t, 0.9, s.Multiplier)
	assert.Equal(t, 11, s.Value) // floor(13 * 0.9)
}

func TestScorePattern_NeverExceedsMax(t *testing.T) {
	for name := range patternBaseScores {
		for _, trend := range []domain.TrendClass{
			domain.TrendStrongUp, domain.TrendUp, domain.TrendSideways,
			domain.TrendDown, domain.TrendStrongDown,
		} {
			s := ScorePattern(name, trend)
			assert.LessOrEqual(t, s.Value, PatternScoreMax, "%s in %s", name, trend)
			assert.GreaterOrEqual(t, s.Value, 0)
		}
	}

	// The 1.2x boost on a top-tier pattern clamps back to 15.
	s := ScorePattern("morning_star", domain.TrendStrongDown)
	assert.Equal(t, 15, s.Value)
}

func TestScorePattern_Fallbacks(t *testing.T) {
	assert.Equal(t, 0, ScorePattern("", domain.TrendUp).Value)
	assert.Equal(t, 5, ScorePattern("mystery_formation", domain.TrendUp).Value)
	assert.Equal(t, 7, ScorePattern("breakout", domain.TrendUp).Value)

	// Names normalize before lookup.
	assert.Equal(t, 15, ScorePattern("Morning Star", domain.TrendUp).Value)
}
