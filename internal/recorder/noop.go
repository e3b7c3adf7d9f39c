package recorder

import (
	"time"

	"MarketAdvisor/internal/model"
)

// NoopRecorder is a no-op implementation used when history is disabled.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordAdvice(_ *model.CompositeResult, _ time.Time) error { return nil }
func (n *NoopRecorder) Recent(_ string, _ int) ([]AdviceRecord, error)          { return nil, nil }
func (n *NoopRecorder) Close() error                                             { return nil }
