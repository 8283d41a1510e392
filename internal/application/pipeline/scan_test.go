package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Buu205/Vietnam-stock-sub000/internal/config"
	"github.com/Buu205/Vietnam-stock-sub000/internal/domain"
	"github.com/Buu205/Vietnam-stock-sub000/internal/metrics"
)

func candidate(symbol string, rs float64, tradingValue float64) domain.SignalCandidate {
	bars := make([]domain.Bar, 30)
	for i := range bars {
		mid := 80 + float64(i)
		bars[i] = domain.Bar{Open: mid, High: mid + 0.6, Low: mid - 0.6, Close: mid + 0.4}
	}
	last := bars[len(bars)-1]
	return domain.SignalCandidate{
		Symbol:       symbol,
		Date:         time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		Bar:          last,
		Bars:         bars,
		PatternName:  "bullish_engulfing",
		PatternBias:  domain.BiasBullish,
		TrendClass:   domain.TrendUp,
		RSRating:     rs,
		RSRating5Ago: rs - 5,
		TradingValue: tradingValue,
		Volume:       1_800_000,
		AvgVolume5D:  1_500_000,
		AvgVolume20D: 1_200_000,
		ATR14:        1.4,
	}
}

func TestScanner_RanksByScoreThenTradingValueThenSymbol(t *testing.T) {
	policy := config.Default().Scan
	policy.Workers = 4
	policy.TopN = 0
	s := NewScanner(policy, nil)

	cands := []domain.SignalCandidate{
		candidate("HPG", 55, 100e9),
		candidate("VNM", 90, 80e9),
		// feature-identical twin of HPG to exercise the symbol tie-break
		candidate("ACB", 55, 100e9),
	}

	report, err := s.Run(context.Background(), cands)
	require.NoError(t, err)
	require.Len(t, report.Ranked, 3)

	assert.Equal(t, "VNM", report.Ranked[0].Symbol, "higher RS should outrank")
	// ACB and HPG are feature-identical: alphabetical order decides
	assert.Equal(t, "ACB", report.Ranked[1].Symbol)
	assert.Equal(t, "HPG", report.Ranked[2].Symbol)
	assert.Equal(t, report.Ranked[1].TotalScore, report.Ranked[2].TotalScore)
}

func TestScanner_PolicyThresholds(t *testing.T) {
	policy := config.ScanPolicy{MinScore: 40, BuyThreshold: 95, SellThreshold: 70, Workers: 2}
	s := NewScanner(policy, nil)

	report, err := s.Run(context.Background(), []domain.SignalCandidate{candidate("FPT", 90, 200e9)})
	require.NoError(t, err)
	require.Len(t, report.Ranked, 1)
	assert.Equal(t, domain.DirectionBuy, report.Ranked[0].Direction)

	// Scores well but below the (artificially high) BUY floor.
	assert.Less(t, report.Ranked[0].TotalScore, 95)
	assert.Empty(t, report.Qualified)
}

func TestScanner_TopNTruncates(t *testing.T) {
	policy := config.Default().Scan
	policy.TopN = 2
	s := NewScanner(policy, metrics.NewRegistry())

	cands := []domain.SignalCandidate{
		candidate("AAA", 50, 10e9),
		candidate("BBB", 60, 10e9),
		candidate("CCC", 70, 10e9),
		candidate("DDD", 80, 10e9),
	}
	report, err := s.Run(context.Background(), cands)
	require.NoError(t, err)
	assert.Equal(t, 4, report.Total)
	assert.Len(t, report.Ranked, 2)
}

func TestScanner_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewScanner(config.Default().Scan, nil)
	cands := make([]domain.SignalCandidate, 100)
	for i := range cands {
		cands[i] = candidate("SYM", 50, 10e9)
	}
	_, err := s.Run(ctx, cands)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScanner_EmptyBatch(t *testing.T) {
	s := NewScanner(config.Default().Scan, nil)
	report, err := s.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, report.Total)
	assert.Empty(t, report.Ranked)
	assert.NotEmpty(t, report.RunID)
}

func TestScanner_MetricsRecorded(t *testing.T) {
	reg := metrics.NewRegistry()
	s := NewScanner(config.Default().Scan, reg)

	_, err := s.Run(context.Background(), []domain.SignalCandidate{candidate("FPT", 90, 200e9)})
	require.NoError(t, err)

	snap, err := reg.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 1.0, snap["vnscan_scans_total"])
	assert.Equal(t, 1.0, snap["vnscan_candidates_scored_total"])
}
