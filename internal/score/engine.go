package score

import (
	"fmt"
	"time"

	"github.com/Buu205/Vietnam-stock-sub000/internal/domain"
)

// TotalScoreMax bounds the composite total.
const TotalScoreMax = 100

// FactorScore is the uniform (name, value, max) view of one factor, used by
// ranking output and breakdown rendering.
type FactorScore struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Max   int    `json:"max"`
}

// Result is the immutable composite output for one scored candidate.
type Result struct {
	Symbol string    `json:"symbol"`
	Date   time.Time `json:"date"`

	Direction   domain.Direction    `json:"direction"`
	TotalScore  int                 `json:"total_score"`
	Quality     domain.QualityLabel `json:"quality"`
	ActionLabel string              `json:"action_label"`

	Pattern           PatternScore    `json:"pattern"`
	VSA               VSAScore        `json:"vsa"`
	TrendAlignment    TrendAlignScore `json:"trend_alignment"`
	SupportResistance SRScore         `json:"support_resistance"`
	RelativeStrength  RSScore         `json:"relative_strength"`
	Liquidity         LiquidityScore  `json:"liquidity"`
}

// Factors returns the six factor scores in aggregation order.
func (r Result) Factors() []FactorScore {
	return []FactorScore{
		{Name: "pattern", Value: r.Pattern.Value, Max: PatternScoreMax},
		{Name: "vsa", Value: r.VSA.Value, Max: VSAScoreMax},
		{Name: "trend_alignment", Value: r.TrendAlignment.Value, Max: TrendAlignScoreMax},
		{Name: "support_resistance", Value: r.SupportResistance.Value, Max: SRScoreMax},
		{Name: "relative_strength", Value: r.RelativeStrength.Value, Max: RSScoreMax},
		{Name: "liquidity", Value: r.Liquidity.Value, Max: LiquidityScoreMax},
	}
}

// Engine scores candidates. It holds no mutable state: all lookup tables are
// package-level immutable data, so a single Engine is safe to share across
// worker goroutines without locking.
type Engine struct{}

// NewEngine creates a composite scoring engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Score runs the full pipeline for one candidate: direction classification
// once, then the six factor scorers, then aggregation. It is a pure function
// of the candidate; identical input yields a bit-identical result.
func (e *Engine) Score(c domain.SignalCandidate) Result {
	domain.MustValidTrend(c.TrendClass)

	dir := ClassifyDirection(c.PatternBias, c.TrendClass)

	r := Result{
		Symbol:    c.Symbol,
		Date:      c.Date,
		Direction: dir,

		Pattern:           ScorePattern(c.PatternName, c.TrendClass),
		VSA:               ScoreVSA(VSAInputFor(c), dir, c.TrendClass),
		TrendAlignment:    ScoreTrendAlignment(dir, c.TrendClass),
		SupportResistance: ScoreSupportResistance(c.Bars, c.Bar.Close, dir),
		RelativeStrength:  ScoreRelativeStrength(c, dir),
		Liquidity:         ScoreLiquidity(c),
	}

	total := r.Pattern.Value + r.VSA.Value + r.TrendAlignment.Value +
		r.SupportResistance.Value + r.RelativeStrength.Value + r.Liquidity.Value
	r.TotalScore = clampInt(total, 0, TotalScoreMax)
	r.Quality = domain.QualityForScore(r.TotalScore)
	r.ActionLabel = actionLabel(r.Quality, dir)
	return r
}

type qualityDirection struct {
	quality domain.QualityLabel
	dir     domain.Direction
}

// actionLabels is the fixed 16-entry (quality, direction) table. AVOID rows
// are intentionally absent and fall through to the generic label.
var actionLabels = map[qualityDirection]string{
	{domain.QualityExcellent, domain.DirectionBuy}: "STRONG BUY",
	{domain.QualityGood, domain.DirectionBuy}:      "BUY",
	{domain.QualityModerate, domain.DirectionBuy}:  "ACCUMULATE",
	{domain.QualityWeak, domain.DirectionBuy}:      "WATCH",

	{domain.QualityExcellent, domain.DirectionSell}: "STRONG SELL",
	{domain.QualityGood, domain.DirectionSell}:      "SELL",
	{domain.QualityModerate, domain.DirectionSell}:  "REDUCE",
	{domain.QualityWeak, domain.DirectionSell}:      "WATCH",

	{domain.QualityExcellent, domain.DirectionPullback}: "BUY THE DIP",
	{domain.QualityGood, domain.DirectionPullback}:      "WAIT FOR ENTRY",
	{domain.QualityModerate, domain.DirectionPullback}:  "WATCH PULLBACK",
	{domain.QualityWeak, domain.DirectionPullback}:      "HOLD OFF",

	{domain.QualityExcellent, domain.DirectionBounce}: "SELL THE RALLY",
	{domain.QualityGood, domain.DirectionBounce}:      "WAIT FOR EXIT",
	{domain.QualityModerate, domain.DirectionBounce}:  "WATCH BOUNCE",
	{domain.QualityWeak, domain.DirectionBounce}:      "HOLD OFF",
}

func actionLabel(quality domain.QualityLabel, dir domain.Direction) string {
	if label, ok := actionLabels[qualityDirection{quality, dir}]; ok {
		return label
	}
	return fmt.Sprintf("MONITOR (%s)", dir)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
