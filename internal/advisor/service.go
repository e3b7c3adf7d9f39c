// Package advisor orchestrates store reads, indicator dispatch and scoring for one request.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"MarketAdvisor/internal/calculator"
	"MarketAdvisor/internal/catalog"
	"MarketAdvisor/internal/metrics"
	"MarketAdvisor/internal/model"
	"MarketAdvisor/internal/series"
	"MarketAdvisor/internal/strategy"
)

// ErrNoFundamentals is returned when a symbol has no stored snapshot.
var ErrNoFundamentals = errors.New("no fundamentals")

// Source reads raw records for one symbol. Rows may come back in any order.
type Source interface {
	Ticks(ctx context.Context, symbol string) ([]model.Tick, error)
	TicksBetween(ctx context.Context, symbol string, from, to time.Time) ([]model.Tick, error)
	Fundamentals(ctx context.Context, symbol string) ([]model.FundamentalsSnapshot, error)
	Articles(ctx context.Context, symbol string) ([]model.SentimentArticle, error)
}

// AdviceRecorder persists composite results.
type AdviceRecorder interface {
	RecordAdvice(res *model.CompositeResult, at time.Time) error
}

// Service answers marker and advisory requests.
type Service struct {
	symbols  catalog.Symbols
	source   Source
	recorder AdviceRecorder
	metrics  *metrics.Metrics
	log      zerolog.Logger
	now      func() time.Time
}

type Option func(*Service)

func WithRecorder(r AdviceRecorder) Option { return func(s *Service) { s.recorder = r } }

func WithMetrics(m *metrics.Metrics) Option { return func(s *Service) { s.metrics = m } }

func WithLogger(l zerolog.Logger) Option { return func(s *Service) { s.log = l } }

// WithClock overrides time.Now, used for article recency and tick windows.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

func New(symbols catalog.Symbols, source Source, opts ...Option) *Service {
	s := &Service{
		symbols: symbols,
		source:  source,
		log:     zerolog.Nop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stocks lists the tradable symbols.
func (s *Service) Stocks() []string {
	return s.symbols.List()
}

// Markers lists the supported markers.
func (s *Service) Markers() []model.MarkerDefinition {
	return catalog.Markers()
}

// Marker computes one technical marker for symbol over all stored ticks.
func (s *Service) Marker(ctx context.Context, symbol, markerID string) (res *calculator.Result, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveIndicator(markerID, err, time.Since(start)) }()

	if err := s.symbols.Check(symbol); err != nil {
		return nil, err
	}
	if _, ok := catalog.LookupMarker(markerID); !ok {
		return nil, fmt.Errorf("%w: %q", calculator.ErrUnsupportedMarker, markerID)
	}

	raw, err := s.source.Ticks(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("fetch ticks for %s: %w", symbol, err)
	}

	res, err = calculator.Compute(markerID, series.Normalize(raw))
	if err != nil {
		s.log.Debug().Str("symbol", symbol).Str("marker", markerID).Err(err).Msg("marker not computed")
		return nil, err
	}
	return res, nil
}

// Explain builds the composite advisory for symbol and records it.
func (s *Service) Explain(ctx context.Context, symbol string) (*model.CompositeResult, error) {
	start := time.Now()

	if err := s.symbols.Check(symbol); err != nil {
		return nil, err
	}

	raw, err := s.source.Ticks(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("fetch ticks for %s: %w", symbol, err)
	}
	snaps, err := s.source.Fundamentals(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("fetch fundamentals for %s: %w", symbol, err)
	}
	articles, err := s.source.Articles(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("fetch articles for %s: %w", symbol, err)
	}

	now := s.now()
	res := strategy.Evaluate(strategy.Inputs{
		Ticker:       symbol,
		Ticks:        series.Normalize(raw),
		Fundamentals: series.LatestFundamentals(snaps),
		Articles:     articles,
	}, now)

	if s.recorder != nil {
		if err := s.recorder.RecordAdvice(res, now); err != nil {
			s.log.Warn().Str("symbol", symbol).Err(err).Msg("record advice failed")
		}
	}
	s.metrics.ObserveAdvice(res, time.Since(start))
	s.log.Info().
		Str("symbol", symbol).
		Str("suggestion", string(res.FinalSuggestion)).
		Float64("total", res.TotalScore).
		Msg("advice computed")

	return res, nil
}

// Ticks returns the ticks of symbol inside the selected window, oldest first.
func (s *Service) Ticks(ctx context.Context, symbol, window, date string) ([]model.Tick, error) {
	if err := s.symbols.Check(symbol); err != nil {
		return nil, err
	}
	from, to, err := Window(window, date, s.now())
	if err != nil {
		return nil, err
	}
	raw, err := s.source.TicksBetween(ctx, symbol, from, to)
	if err != nil {
		return nil, fmt.Errorf("fetch ticks for %s: %w", symbol, err)
	}
	return series.Normalize(raw), nil
}

// Fundamentals returns the latest snapshot for symbol.
func (s *Service) Fundamentals(ctx context.Context, symbol string) (*model.FundamentalsSnapshot, error) {
	if err := s.symbols.Check(symbol); err != nil {
		return nil, err
	}
	snaps, err := s.source.Fundamentals(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("fetch fundamentals for %s: %w", symbol, err)
	}
	latest := series.LatestFundamentals(snaps)
	if latest == nil {
		return nil, fmt.Errorf("%w for %s", ErrNoFundamentals, symbol)
	}
	return latest, nil
}
