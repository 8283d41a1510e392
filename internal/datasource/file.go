package datasource

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/Buu205/Vietnam-stock-sub000/internal/domain"
)

// LoadCandidatesFile reads SignalCandidate rows from a JSONL file, one object
// per line. Malformed or invalid rows are skipped with a warning rather than
// failing the whole batch; the skipped count is returned for instrumentation.
func LoadCandidatesFile(path string) ([]domain.SignalCandidate, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open candidates file %s: %w", path, err)
	}
	defer f.Close()

	var (
		candidates []domain.SignalCandidate
		skipped    int
		lineNo     int
	)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var c domain.SignalCandidate
		if err := json.Unmarshal(line, &c); err != nil {
			skipped++
			log.Warn().Err(err).Int("line", lineNo).Msg("skipping malformed candidate row")
			continue
		}
		normalizeCandidate(&c)
		if err := validateCandidate(c); err != nil {
			skipped++
			log.Warn().Err(err).Int("line", lineNo).Str("symbol", c.Symbol).Msg("skipping invalid candidate row")
			continue
		}
		candidates = append(candidates, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, skipped, fmt.Errorf("read candidates file %s: %w", path, err)
	}
	return candidates, skipped, nil
}

// validateCandidate is the upstream input validation the engine relies on:
// anything reaching the scorer must have a symbol, a sane bar, and a valid
// trend class. An unset trend class is derived from the SMA distances.
func validateCandidate(c domain.SignalCandidate) error {
	if c.Symbol == "" {
		return fmt.Errorf("missing symbol")
	}
	if c.Bar.Close <= 0 {
		return fmt.Errorf("non-positive close %.2f", c.Bar.Close)
	}
	if c.Bar.High < c.Bar.Low {
		return fmt.Errorf("bar high %.2f below low %.2f", c.Bar.High, c.Bar.Low)
	}
	if c.TrendClass != "" && !c.TrendClass.Valid() {
		return fmt.Errorf("unknown trend class %q", c.TrendClass)
	}
	return nil
}

// NormalizeCandidates fills derivable fields on loaded rows: a missing trend
// class comes from the SMA distances, and a missing current bar falls back to
// the last history bar.
func NormalizeCandidates(candidates []domain.SignalCandidate) []domain.SignalCandidate {
	for i := range candidates {
		normalizeCandidate(&candidates[i])
	}
	return candidates
}

func normalizeCandidate(c *domain.SignalCandidate) {
	if c.Bar.Close == 0 && len(c.Bars) > 0 {
		c.Bar = c.Bars[len(c.Bars)-1]
	}
	if c.TrendClass == "" {
		c.TrendClass = domain.ClassifyTrend(c.PriceVsSMA20, c.PriceVsSMA50)
	}
}
