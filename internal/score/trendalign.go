package score

import (
	"github.com/Buu205/Vietnam-stock-sub000/internal/domain"
)

// TrendAlignScoreMax caps the trend-alignment factor.
const TrendAlignScoreMax = 20

// TrendAlignScore is the trend-alignment factor breakdown.
type TrendAlignScore struct {
	Direction domain.Direction  `json:"direction"`
	Trend     domain.TrendClass `json:"trend"`
	Value     int               `json:"value"`
}

type dirTrend struct {
	dir   domain.Direction
	trend domain.TrendClass
}

// trendAlignMatrix scores how well the trade direction fits the prevailing
// trend. With-trend entries score highest; countertrend setups (PULLBACK,
// BOUNCE) score best when the trend they fade is strongest.
var trendAlignMatrix = map[dirTrend]int{
	{domain.DirectionBuy, domain.TrendStrongUp}:   20,
	{domain.DirectionBuy, domain.TrendUp}:         17,
	{domain.DirectionBuy, domain.TrendSideways}:   10,
	{domain.DirectionBuy, domain.TrendDown}:       6,
	{domain.DirectionBuy, domain.TrendStrongDown}: 4,

	{domain.DirectionSell, domain.TrendStrongDown}: 20,
	{domain.DirectionSell, domain.TrendDown}:       17,
	{domain.DirectionSell, domain.TrendSideways}:   10,
	{domain.DirectionSell, domain.TrendUp}:         6,
	{domain.DirectionSell, domain.TrendStrongUp}:   4,

	{domain.DirectionPullback, domain.TrendStrongUp}:   15,
	{domain.DirectionPullback, domain.TrendUp}:         14,
	{domain.DirectionPullback, domain.TrendSideways}:   8,
	{domain.DirectionPullback, domain.TrendDown}:       5,
	{domain.DirectionPullback, domain.TrendStrongDown}: 4,

	{domain.DirectionBounce, domain.TrendStrongDown}: 15,
	{domain.DirectionBounce, domain.TrendDown}:       14,
	{domain.DirectionBounce, domain.TrendSideways}:   8,
	{domain.DirectionBounce, domain.TrendUp}:         5,
	{domain.DirectionBounce, domain.TrendStrongUp}:   4,
}

// trendAlignDefault covers (direction, trend) pairs outside the matrix. The
// classifier's domain never produces one, but the lookup must not fail.
const trendAlignDefault = 10

// ScoreTrendAlignment is a pure lookup of (direction, trend).
func ScoreTrendAlignment(dir domain.Direction, trend domain.TrendClass) TrendAlignScore {
	v, ok := trendAlignMatrix[dirTrend{dir, trend}]
	if !ok {
		v = trendAlignDefault
	}
	return TrendAlignScore{Direction: dir, Trend: trend, Value: v}
}
