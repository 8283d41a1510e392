package pipeline

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Buu205/Vietnam-stock-sub000/internal/config"
	"github.com/Buu205/Vietnam-stock-sub000/internal/domain"
	"github.com/Buu205/Vietnam-stock-sub000/internal/metrics"
	"github.com/Buu205/Vietnam-stock-sub000/internal/score"
)

// Report is the output of one scan run: every scored candidate ranked, plus
// the subset that passed the scan policy.
type Report struct {
	RunID     string         `json:"run_id"`
	Timestamp time.Time      `json:"timestamp"`
	Duration  string         `json:"duration"`
	Total     int            `json:"total"`
	Ranked    []score.Result `json:"ranked"`
	Qualified []score.Result `json:"qualified"`
}

// Scanner scores candidate batches on a worker pool and applies the external
// ranking/filter policy. The engine itself is pure; the Scanner owns
// parallelism, ordering, and thresholds.
type Scanner struct {
	engine *score.Engine
	policy config.ScanPolicy
	mets   *metrics.Registry
}

// NewScanner creates a scanner with the given policy. A nil metrics registry
// disables instrumentation.
func NewScanner(policy config.ScanPolicy, mets *metrics.Registry) *Scanner {
	return &Scanner{
		engine: score.NewEngine(),
		policy: policy,
		mets:   mets,
	}
}

// Run scores all candidates and returns the ranked report. Scoring one
// candidate is O(1) arithmetic with no I/O, so the pool is purely a map over
// independent inputs; ctx cancels between candidates, never mid-score.
func (s *Scanner) Run(ctx context.Context, candidates []domain.SignalCandidate) (*Report, error) {
	start := time.Now()
	report := &Report{
		RunID:     uuid.NewString(),
		Timestamp: start.UTC(),
		Total:     len(candidates),
	}

	log.Info().
		Str("run_id", report.RunID).
		Int("candidates", len(candidates)).
		Int("workers", s.policy.Workers).
		Msg("starting scan run")

	results := make([]score.Result, len(candidates))
	jobs := make(chan int)

	var wg sync.WaitGroup
	workers := s.policy.Workers
	if workers < 1 {
		workers = 1
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = s.engine.Score(candidates[i])
			}
		}()
	}

feed:
	for i := range candidates {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rankResults(results, candidates)
	report.Ranked = results
	if s.policy.TopN > 0 && len(report.Ranked) > s.policy.TopN {
		report.Ranked = report.Ranked[:s.policy.TopN]
	}

	for _, r := range report.Ranked {
		if s.qualifies(r) {
			report.Qualified = append(report.Qualified, r)
		}
	}

	elapsed := time.Since(start)
	report.Duration = elapsed.String()
	s.observe(report, elapsed)

	log.Info().
		Str("run_id", report.RunID).
		Int("qualified", len(report.Qualified)).
		Dur("elapsed", elapsed).
		Msg("scan run complete")
	return report, nil
}

// rankResults orders by score descending with deterministic tie-breaks:
// higher trading value first, then symbol ascending.
func rankResults(results []score.Result, candidates []domain.SignalCandidate) {
	tv := make(map[string]float64, len(candidates))
	for _, c := range candidates {
		tv[c.Symbol] = c.TradingValue
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].TotalScore != results[j].TotalScore {
			return results[i].TotalScore > results[j].TotalScore
		}
		if tv[results[i].Symbol] != tv[results[j].Symbol] {
			return tv[results[i].Symbol] > tv[results[j].Symbol]
		}
		return results[i].Symbol < results[j].Symbol
	})
}

// qualifies applies the external scan policy: a global floor, plus stricter
// floors for outright BUY and SELL signals.
func (s *Scanner) qualifies(r score.Result) bool {
	if r.TotalScore < s.policy.MinScore {
		return false
	}
	switch r.Direction {
	case domain.DirectionBuy:
		return r.TotalScore >= s.policy.BuyThreshold
	case domain.DirectionSell:
		return r.TotalScore >= s.policy.SellThreshold
	}
	return true
}

func (s *Scanner) observe(report *Report, elapsed time.Duration) {
	if s.mets == nil {
		return
	}
	s.mets.ScansTotal.Inc()
	s.mets.ScanDuration.Observe(elapsed.Seconds())
	s.mets.CandidatesScored.Add(float64(report.Total))
	for _, r := range report.Ranked {
		s.mets.CompositeScore.Observe(float64(r.TotalScore))
		for _, f := range r.Factors() {
			s.mets.FactorValue.WithLabelValues(f.Name).Observe(float64(f.Value))
		}
	}
	for _, r := range report.Qualified {
		s.mets.QualifiedTotal.WithLabelValues(string(r.Direction)).Inc()
	}
}
