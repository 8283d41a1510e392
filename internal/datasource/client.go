package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/Buu205/Vietnam-stock-sub000/internal/config"
	"github.com/Buu205/Vietnam-stock-sub000/internal/domain"
)

// Client fetches candidate features from the feature API. Requests are rate
// limited and wrapped in a circuit breaker so a sick upstream degrades the
// scan instead of hammering it.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

// NewClient builds a feature API client from the source config.
func NewClient(cfg config.SourceConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	rps := cfg.RatePerSec
	if rps <= 0 {
		rps = 10
	}
	return &Client{
		baseURL: cfg.URL,
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(rps), int(rps)+1),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "feature-api",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Warn().Str("breaker", name).
					Str("from", from.String()).Str("to", to.String()).
					Msg("feature API circuit breaker state change")
			},
		}),
	}
}

// FetchCandidates retrieves the candidate batch for a trading date. The API
// returns JSON rows in the same shape as the JSONL file source; rows are
// normalized and validated identically.
func (c *Client) FetchCandidates(ctx context.Context, date time.Time) ([]domain.SignalCandidate, int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, fmt.Errorf("rate limit wait: %w", err)
	}

	endpoint := fmt.Sprintf("%s/api/v1/candidates?date=%s", c.baseURL, url.QueryEscape(date.Format("2006-01-02")))
	body, err := c.breaker.Execute(func() (interface{}, error) {
		return c.get(ctx, endpoint)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("fetch candidates: %w", err)
	}

	var rows []domain.SignalCandidate
	if err := json.Unmarshal(body.([]byte), &rows); err != nil {
		return nil, 0, fmt.Errorf("decode candidates: %w", err)
	}

	rows = NormalizeCandidates(rows)
	valid := rows[:0]
	skipped := 0
	for _, row := range rows {
		if err := validateCandidate(row); err != nil {
			skipped++
			log.Warn().Err(err).Str("symbol", row.Symbol).Msg("skipping invalid candidate from API")
			continue
		}
		valid = append(valid, row)
	}
	return valid, skipped, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feature API returned %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}
