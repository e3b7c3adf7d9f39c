// Package metrics exposes Prometheus instruments for indicator and advisory computations.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"MarketAdvisor/internal/calculator"
	"MarketAdvisor/internal/catalog"
	"MarketAdvisor/internal/model"
)

// Outcome labels for IndicatorRequests.
const (
	OutcomeOK           = "ok"
	OutcomeInsufficient = "insufficient_data"
	OutcomeUnsupported  = "unsupported_marker"
	OutcomeUnknown      = "unknown_symbol"
	OutcomeError        = "error"
)

// Metrics groups the instruments. A nil *Metrics is valid and records nothing.
type Metrics struct {
	IndicatorRequests *prometheus.CounterVec
	Advisories        *prometheus.CounterVec
	ComputeDuration   *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New registers the instruments on reg. When reg is also a Gatherer, Handler serves it.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		IndicatorRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "advisor_indicator_requests_total", Help: "Indicator computations by marker and outcome"},
			[]string{"marker", "outcome"},
		),
		Advisories: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "advisor_advisories_total", Help: "Composite advisories by suggestion"},
			[]string{"suggestion"},
		),
		ComputeDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "advisor_compute_duration_seconds",
				Help:    "Time spent serving an advisor operation, fetch included",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		gatherer: prometheus.DefaultGatherer,
	}
	reg.MustRegister(m.IndicatorRequests, m.Advisories, m.ComputeDuration)
	if g, ok := reg.(prometheus.Gatherer); ok {
		m.gatherer = g
	}
	return m
}

// Outcome classifies an operation error into a label value.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, calculator.ErrInsufficientData):
		return OutcomeInsufficient
	case errors.Is(err, calculator.ErrUnsupportedMarker):
		return OutcomeUnsupported
	case errors.Is(err, catalog.ErrUnknownSymbol):
		return OutcomeUnknown
	default:
		return OutcomeError
	}
}

// ObserveIndicator records one marker request.
func (m *Metrics) ObserveIndicator(marker string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.IndicatorRequests.WithLabelValues(marker, Outcome(err)).Inc()
	m.ComputeDuration.WithLabelValues("marker").Observe(elapsed.Seconds())
}

// ObserveAdvice records one composite advisory.
func (m *Metrics) ObserveAdvice(res *model.CompositeResult, elapsed time.Duration) {
	if m == nil {
		return
	}
	if res != nil {
		m.Advisories.WithLabelValues(string(res.FinalSuggestion)).Inc()
	}
	m.ComputeDuration.WithLabelValues("explain").Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
