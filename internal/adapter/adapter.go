// Package adapter translates provider responses into the internal domain
// model, memoizing results so repeated requests do not hit the provider.
package adapter

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"MarketBridge/internal/cache"
	"MarketBridge/internal/fieldmap"
	"MarketBridge/internal/model"
	"MarketBridge/internal/provider"
)

// ErrNoData reports that the provider answered but had nothing for the
// ticker. A wrapped provider error means the call itself failed; callers that
// care can tell the two apart with errors.Is.
var ErrNoData = errors.New("no data available")

// Adapter is the fetch-transform-cache pipeline over one data source.
// Like the cache it owns, an Adapter is meant for single-threaded use.
type Adapter struct {
	source provider.Source
	store  *cache.Store
	now    func() time.Time
}

// New creates an Adapter over source, memoizing into store.
func New(source provider.Source, store *cache.Store) *Adapter {
	return &Adapter{source: source, store: store, now: time.Now}
}

// FetchPrices returns daily price points for the inclusive date range, in the
// provider's ascending date order. It returns ErrNoData when the provider has
// no rows for the range, and a wrapped provider error when the call fails.
func (a *Adapter) FetchPrices(ctx context.Context, ticker, startDate, endDate string) ([]model.PricePoint, error) {
	key := fmt.Sprintf("%s_%s_%s", ticker, startDate, endDate)
	if v, ok := a.store.Get(cache.NamespacePrices, key); ok {
		log.Printf("[INFO] using cached price data for %s", ticker)
		return v.([]model.PricePoint), nil
	}

	log.Printf("[INFO] fetching price data for %s from %s to %s", ticker, startDate, endDate)
	rows, err := a.source.HistoricalPrices(ctx, ticker, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("fetch prices for %s: %w", ticker, err)
	}
	if len(rows) == 0 {
		return nil, ErrNoData
	}

	prices := make([]model.PricePoint, 0, len(rows))
	for _, row := range rows {
		prices = append(prices, model.PricePoint{
			Open:   row.Open,
			Close:  row.Close,
			High:   row.High,
			Low:    row.Low,
			Volume: row.Volume,
			Time:   row.Date,
		})
	}

	a.store.Set(cache.NamespacePrices, key, prices)
	return prices, nil
}

// FetchFinancialMetrics returns the current fundamentals snapshot as a
// one-element slice, for parity with a multi-period metrics API. endDate only
// labels the snapshot's report period (today when empty); period and limit
// are accepted but do not alter the query, so the cache key is the ticker
// alone.
func (a *Adapter) FetchFinancialMetrics(ctx context.Context, ticker, endDate, period string, limit int) ([]model.FinancialMetrics, error) {
	_ = limit // the provider serves exactly one snapshot

	if v, ok := a.store.Get(cache.NamespaceMetrics, ticker); ok {
		log.Printf("[INFO] using cached financial metrics for %s", ticker)
		return v.([]model.FinancialMetrics), nil
	}

	log.Printf("[INFO] fetching financial metrics for %s", ticker)
	funds, err := a.source.Fundamentals(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("fetch financial metrics for %s: %w", ticker, err)
	}
	if funds == nil {
		return nil, ErrNoData
	}

	reportPeriod := endDate
	if reportPeriod == "" {
		reportPeriod = a.now().Format("2006-01-02")
	}
	if period == "" {
		period = "ttm"
	}
	currency := funds.Currency
	if currency == "" {
		currency = "USD"
	}

	m := model.FinancialMetrics{
		Ticker:       ticker,
		ReportPeriod: reportPeriod,
		Period:       period,
		Currency:     currency,
	}
	fieldmap.Apply(funds, &m)

	metrics := []model.FinancialMetrics{m}
	a.store.Set(cache.NamespaceMetrics, ticker, metrics)
	return metrics, nil
}

// FetchInsiderTrades returns insider filings whose filing date falls within
// [startDate, endDate] (either bound may be empty), capped at limit when
// limit is positive.
func (a *Adapter) FetchInsiderTrades(ctx context.Context, ticker, endDate, startDate string, limit int) ([]model.InsiderTrade, error) {
	key := fmt.Sprintf("%s_%s_%s_%d", ticker, endDate, startDate, limit)
	if v, ok := a.store.Get(cache.NamespaceInsiderTrades, key); ok {
		log.Printf("[INFO] using cached insider trades for %s", ticker)
		return v.([]model.InsiderTrade), nil
	}

	log.Printf("[INFO] fetching insider trades for %s", ticker)
	rows, err := a.source.InsiderTransactions(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("fetch insider trades for %s: %w", ticker, err)
	}
	if len(rows) == 0 {
		return nil, ErrNoData
	}

	trades := make([]model.InsiderTrade, 0, len(rows))
	for _, row := range rows {
		// Boundary dates are included: only strictly-outside filings drop.
		if startDate != "" && row.FilingDate != "" && row.FilingDate < startDate {
			continue
		}
		if endDate != "" && row.FilingDate != "" && row.FilingDate > endDate {
			continue
		}

		var shares, pricePerShare, value float64
		if row.Shares != nil {
			shares = *row.Shares
		}
		if row.PricePerShare != nil {
			pricePerShare = *row.PricePerShare
		}
		if row.Shares != nil && row.PricePerShare != nil {
			value = shares * pricePerShare
		}

		trades = append(trades, model.InsiderTrade{
			Ticker:                   ticker,
			Issuer:                   ticker,
			Name:                     row.FilerName,
			Title:                    row.FilerRelation,
			IsBoardDirector:          strings.Contains(strings.ToLower(row.FilerRelation), "director"),
			TransactionDate:          row.TransactionDate,
			TransactionShares:        shares,
			TransactionPricePerShare: pricePerShare,
			TransactionValue:         value,
			FilingDate:               row.FilingDate,
		})
	}

	if limit > 0 && len(trades) > limit {
		trades = trades[:limit]
	}

	a.store.Set(cache.NamespaceInsiderTrades, key, trades)
	return trades, nil
}

// GetPrices is the degrading wrapper around FetchPrices: provider failures
// and empty responses both collapse to an empty slice after a log line, so
// nothing escapes the fetch boundary.
func (a *Adapter) GetPrices(ctx context.Context, ticker, startDate, endDate string) []model.PricePoint {
	prices, err := a.FetchPrices(ctx, ticker, startDate, endDate)
	if err != nil {
		logDegraded("price data", ticker, err)
		return []model.PricePoint{}
	}
	return prices
}

// GetFinancialMetrics is the degrading wrapper around FetchFinancialMetrics.
func (a *Adapter) GetFinancialMetrics(ctx context.Context, ticker, endDate, period string, limit int) []model.FinancialMetrics {
	metrics, err := a.FetchFinancialMetrics(ctx, ticker, endDate, period, limit)
	if err != nil {
		logDegraded("financial metrics", ticker, err)
		return []model.FinancialMetrics{}
	}
	return metrics
}

// GetInsiderTrades is the degrading wrapper around FetchInsiderTrades.
func (a *Adapter) GetInsiderTrades(ctx context.Context, ticker, endDate, startDate string, limit int) []model.InsiderTrade {
	trades, err := a.FetchInsiderTrades(ctx, ticker, endDate, startDate, limit)
	if err != nil {
		logDegraded("insider trades", ticker, err)
		return []model.InsiderTrade{}
	}
	return trades
}

// ClearCache drops every memoized result, forcing the next request of each
// kind to consult the provider again.
func (a *Adapter) ClearCache() {
	a.store.Clear()
	log.Printf("[INFO] cleared %s data cache", a.source.Name())
}

func logDegraded(operation, ticker string, err error) {
	if errors.Is(err, ErrNoData) {
		log.Printf("[WARN] no %s found for %s", operation, ticker)
		return
	}
	log.Printf("[ERROR] %s for %s: %v", operation, ticker, err)
}
