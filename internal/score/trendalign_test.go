package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Buu205/Vietnam-stock-sub000/internal/domain"
)

func TestScoreTrendAlignment_FullMatrix(t *testing.T) {
	cases := []struct {
		dir   domain.Direction
		trend domain.TrendClass
		want  int
	}{
		{domain.DirectionBuy, domain.TrendStrongUp, 20},
		{domain.DirectionBuy, domain.TrendUp, 17},
		{domain.DirectionBuy, domain.TrendSideways, 10},
		{domain.DirectionBuy, domain.TrendDown, 6},
		{domain.DirectionBuy, domain.TrendStrongDown, 4},

		{domain.DirectionSell, domain.TrendStrongDown, 20},
		{domain.DirectionSell, domain.TrendDown, 17},
		{domain.DirectionSell, domain.TrendSideways, 10},
		{domain.DirectionSell, domain.TrendUp, 6},
		{domain.DirectionSell, domain.TrendStrongUp, 4},

		{domain.DirectionPullback, domain.TrendStrongUp, 15},
		{domain.DirectionPullback, domain.TrendUp, 14},
		{domain.DirectionPullback, domain.TrendSideways, 8},
		{domain.DirectionPullback, domain.TrendDown, 5},
		{domain.DirectionPullback, domain.TrendStrongDown, 4},

		{domain.DirectionBounce, domain.TrendStrongDown, 15},
		{domain.DirectionBounce, domain.TrendDown, 14},
		{domain.DirectionBounce, domain.TrendSideways, 8},
		{domain.DirectionBounce, domain.TrendUp, 5},
		{domain.DirectionBounce, domain.TrendStrongUp, 4},
	}
	for _, tc := range cases {
		s := ScoreTrendAlignment(tc.dir, tc.trend)
		assert.Equal(t, tc.want, s.Value, "%s/%s", tc.dir, tc.trend)
		assert.Equal(t, tc.dir, s.Direction)
		assert.Equal(t, tc.trend, s.Trend)
	}
}

func TestScoreTrendAlignment_MirrorSymmetry(t *testing.T) {
	// SELL scores against the mirrored trend exactly as BUY does, BOUNCE as
	// PULLBACK.
	mirror := map[domain.TrendClass]domain.TrendClass{
		domain.TrendStrongUp:   domain.TrendStrongDown,
		domain.TrendUp:         domain.TrendDown,
		domain.TrendSideways:   domain.TrendSideways,
		domain.TrendDown:       domain.TrendUp,
		domain.TrendStrongDown: domain.TrendStrongUp,
	}
	for trend, opposite := range mirror {
		assert.Equal(t,
			ScoreTrendAlignment(domain.DirectionBuy, trend).Value,
			ScoreTrendAlignment(domain.DirectionSell, opposite).Value,
			"BUY/%s vs SELL/%s", trend, opposite)
		assert.Equal(t,
			ScoreTrendAlignment(domain.DirectionPullback, trend).Value,
			ScoreTrendAlignment(domain.DirectionBounce, opposite).Value,
			"PULLBACK/%s vs BOUNCE/%s", trend, opposite)
	}
}

func TestScoreTrendAlignment_UnmappedPairDefaults(t *testing.T) {
	// The lookup never errors: pairs outside the matrix fall back to the
	// neutral value.
	s := ScoreTrendAlignment(domain.Direction("HOLD"), domain.TrendUp)
	assert.Equal(t, trendAlignDefault, s.Value)

	s = ScoreTrendAlignment(domain.DirectionBuy, domain.TrendClass("FLAT"))
	assert.Equal(t, trendAlignDefault, s.Value)
}

func TestScoreTrendAlignment_WithinBounds(t *testing.T) {
	// Every mapped pair stays within [4,20].
	for key, v := range trendAlignMatrix {
		assert.GreaterOrEqual(t, v, 4, "%s/%s", key.dir, key.trend)
		assert.LessOrEqual(t, v, TrendAlignScoreMax, "%s/%s", key.dir, key.trend)
	}
}
