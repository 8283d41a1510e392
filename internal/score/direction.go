package score

import (
	"github.com/Buu205/Vietnam-stock-sub000/internal/domain"
)

// ClassifyDirection derives the trade direction from pattern bias and trend
// class. It runs once per candidate; every direction-dependent scorer reads
// the result and none may change it.
//
// Priority order:
//   - uptrend family: BULLISH pattern confirms BUY, anything else waits for a
//     PULLBACK entry
//   - downtrend family: BEARISH pattern confirms SELL, anything else is a
//     countertrend BOUNCE
//   - sideways: BULLISH goes BUY, everything else (BEARISH or no bias) SELL
//
// An invalid trend class is a contract violation and panics.
func ClassifyDirection(bias domain.PatternBias, trend domain.TrendClass) domain.Direction {
	domain.MustValidTrend(trend)

	switch {
	case trend.IsUp():
		if bias == domain.BiasBullish {
			return domain.DirectionBuy
		}
		return domain.DirectionPullback
	case trend.IsDown():
		if bias == domain.BiasBearish {
			return domain.DirectionSell
		}
		return domain.DirectionBounce
	}

	// Sideways: no bias falls through with bearish handling. The asymmetry is
	// deliberate and mirrors the upstream detector's behavior.
	if bias == domain.BiasBullish {
		return domain.DirectionBuy
	}
	return domain.DirectionSell
}
