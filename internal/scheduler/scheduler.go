package scheduler

import (
	"context"
	"fmt"
	"log"

	"MarketBridge/internal/adapter"
	"MarketBridge/internal/recorder"

	"github.com/robfig/cron/v3"
)

// Scheduler re-runs the fetch cycle for a fixed set of tickers on a cron
// schedule, archiving each cycle's results through the Recorder.
type Scheduler struct {
	Cron     *cron.Cron
	Adapter  *adapter.Adapter
	Recorder recorder.Recorder
	Tickers  []string
	// DateRange yields the price date range for the next cycle, so a
	// long-running watch keeps a moving window instead of a stale one.
	DateRange    func() (startDate, endDate string)
	InsiderLimit int
	Ctx          context.Context
}

// NewScheduler creates a Scheduler.
func NewScheduler(ctx context.Context, a *adapter.Adapter, rec recorder.Recorder, tickers []string, dateRange func() (string, string), insiderLimit int) *Scheduler {
	return &Scheduler{
		Cron:         cron.New(cron.WithSeconds()),
		Adapter:      a,
		Recorder:     rec,
		Tickers:      tickers,
		DateRange:    dateRange,
		InsiderLimit: insiderLimit,
		Ctx:          ctx,
	}
}

// Register registers the refresh task.
func (s *Scheduler) Register(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.RefreshNow); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RefreshNow runs one full fetch cycle immediately. The cache is cleared
// first so every ticker is refetched rather than served from the memo.
func (s *Scheduler) RefreshNow() {
	log.Println("[INFO] running refresh cycle")
	s.Adapter.ClearCache()

	startDate, endDate := s.DateRange()
	for _, ticker := range s.Tickers {
		prices := s.Adapter.GetPrices(s.Ctx, ticker, startDate, endDate)
		if len(prices) > 0 {
			if err := s.Recorder.RecordPrices(ticker, prices); err != nil {
				log.Printf("[ERROR] record prices for %s: %v", ticker, err)
			}
		}

		metrics := s.Adapter.GetFinancialMetrics(s.Ctx, ticker, endDate, "ttm", 1)
		if len(metrics) > 0 {
			if err := s.Recorder.RecordMetrics(&metrics[0]); err != nil {
				log.Printf("[ERROR] record metrics for %s: %v", ticker, err)
			}
		}

		trades := s.Adapter.GetInsiderTrades(s.Ctx, ticker, endDate, startDate, s.InsiderLimit)
		if len(trades) > 0 {
			if err := s.Recorder.RecordInsiderTrades(trades); err != nil {
				log.Printf("[ERROR] record insider trades for %s: %v", ticker, err)
			}
		}

		log.Printf("[INFO] %s: %d price points, %d metrics snapshots, %d insider trades",
			ticker, len(prices), len(metrics), len(trades))
	}
}
