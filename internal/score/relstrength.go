package score

import (
	"github.com/Buu205/Vietnam-stock-sub000/internal/domain"
)

// RSScoreMax caps the relative-strength factor.
const RSScoreMax = 15

// RSScore is the relative-strength factor breakdown. Momentum and alignment
// may go negative; only Value is clamped.
type RSScore struct {
	Rating         float64 `json:"rating"`
	BaseScore      int     `json:"base_score"`
	MomentumDelta  float64 `json:"momentum_delta"`
	SectorRelative bool    `json:"sector_relative"`
	MomentumScore  int     `json:"momentum_score"`
	AlignmentScore int     `json:"alignment_score"`
	Value          int     `json:"value"`
}

// ScoreRelativeStrength grades the RS rating three ways: the absolute level,
// its 5-session momentum (sector-relative when a sector series is supplied),
// and its agreement with the trade direction. Final value clamps to [0, 15].
func ScoreRelativeStrength(c domain.SignalCandidate, dir domain.Direction) RSScore {
	s := RSScore{Rating: c.RSRating}
	s.BaseScore = rsBaseScore(c.RSRating)

	// A zero 5d-ago rating means no history; momentum contributes nothing.
	if c.RSRating5Ago > 0 {
		delta := c.RSRating - c.RSRating5Ago
		if c.Sector != nil {
			delta -= c.Sector.Rating - c.Sector.Rating5Ago
			s.SectorRelative = true
		}
		s.MomentumDelta = delta
		s.MomentumScore = rsMomentumScore(delta)
	}

	s.AlignmentScore = rsAlignmentScore(c.RSRating, dir)
	s.Value = clampInt(s.BaseScore+s.MomentumScore+s.AlignmentScore, 0, RSScoreMax)
	return s
}

// rsBaseScore is a nine-bucket step of the 1-99 rating, monotone
// non-decreasing over the whole range.
func rsBaseScore(rating float64) int {
	switch {
	case rating >= 95:
		return 10
	case rating >= 90:
		return 9
	case rating >= 85:
		return 8
	case rating >= 75:
		return 7
	case rating >= 65:
		return 6
	case rating >= 55:
		return 5
	case rating >= 45:
		return 4
	case rating >= 30:
		return 2
	}
	return 1
}

func rsMomentumScore(delta float64) int {
	switch {
	case delta >= 10:
		return 2
	case delta >= 5:
		return 1
	case delta >= -5:
		return 0
	}
	return -1
}

// rsAlignmentScore checks the rating against the trade direction. Buying a
// bottom-decile RS name is catching a falling knife (-2); shorting a leader
// is fighting the tape symmetrically.
func rsAlignmentScore(rating float64, dir domain.Direction) int {
	if dir.Bullish() {
		switch {
		case rating >= 80:
			return 2
		case rating >= 60:
			return 1
		case rating >= 30:
			return 0
		}
		return -2
	}
	switch {
	case rating <= 20:
		return 2
	case rating <= 40:
		return 1
	case rating <= 70:
		return 0
	}
	return -2
}
