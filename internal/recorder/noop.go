package recorder

import "MarketBridge/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordPrices(_ string, _ []model.PricePoint) error { return nil }
func (n *NoopRecorder) RecordMetrics(_ *model.FinancialMetrics) error     { return nil }
func (n *NoopRecorder) RecordInsiderTrades(_ []model.InsiderTrade) error  { return nil }
func (n *NoopRecorder) Close() error                                      { return nil }
