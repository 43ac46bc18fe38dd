package recorder

import "MarketBridge/internal/model"

// Recorder archives fetched data for offline analysis. It is an output sink,
// not a cache: the in-memory cache is the only memoization layer, and nothing
// recorded here is ever read back by the fetch pipeline.
type Recorder interface {
	RecordPrices(ticker string, prices []model.PricePoint) error
	RecordMetrics(metrics *model.FinancialMetrics) error
	RecordInsiderTrades(trades []model.InsiderTrade) error
	Close() error
}
