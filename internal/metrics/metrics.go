package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// Registry holds the scanner's Prometheus collectors.
type Registry struct {
	reg *prometheus.Registry

	ScansTotal        prometheus.Counter
	CandidatesScored  prometheus.Counter
	CandidatesSkipped prometheus.Counter
	QualifiedTotal    *prometheus.CounterVec
	ScanDuration      prometheus.Histogram
	FactorValue       *prometheus.HistogramVec
	CompositeScore    prometheus.Histogram
}

// NewRegistry creates and registers all scanner metrics on a private
// Prometheus registry.
func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),

		ScansTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vnscan_scans_total",
			Help: "Total number of scan runs",
		}),
		CandidatesScored: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vnscan_candidates_scored_total",
			Help: "Total candidates scored across all runs",
		}),
		CandidatesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vnscan_candidates_skipped_total",
			Help: "Total candidate rows skipped by input validation",
		}),
		QualifiedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vnscan_qualified_total",
			Help: "Candidates passing the scan policy, by direction",
		}, []string{"direction"}),
		ScanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "vnscan_scan_duration_seconds",
			Help:    "Wall-clock duration of a full scan run",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		FactorValue: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vnscan_factor_value",
			Help:    "Distribution of per-factor scores",
			Buckets: prometheus.LinearBuckets(0, 2.5, 11),
		}, []string{"factor"}),
		CompositeScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "vnscan_composite_score",
			Help:    "Distribution of composite scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		}),
	}

	r.reg.MustRegister(
		r.ScansTotal,
		r.CandidatesScored,
		r.CandidatesSkipped,
		r.QualifiedTotal,
		r.ScanDuration,
		r.FactorValue,
		r.CompositeScore,
	)
	return r
}

// Gatherer exposes the underlying registry for the /metrics handler.
func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }

// Snapshot returns counter values by metric name, used for the post-run
// summary log without going through the HTTP scrape path.
func (r *Registry) Snapshot() (map[string]float64, error) {
	families, err := r.reg.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather metrics: %w", err)
	}
	out := make(map[string]float64, len(families))
	for _, mf := range families {
		if mf.GetType() != dto.MetricType_COUNTER {
			continue
		}
		var total float64
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
		out[mf.GetName()] = total
	}
	return out, nil
}
