package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"MarketBridge/internal/adapter"
	"MarketBridge/internal/cache"
	"MarketBridge/internal/config"
	"MarketBridge/internal/provider"
	"MarketBridge/internal/provider/yahoo"
	"MarketBridge/internal/recorder"
	"MarketBridge/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] MarketBridge starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init data source
	var source provider.Source
	if cfg.DataSource.UseMock {
		source = &provider.Mock{}
	} else {
		opts := []yahoo.Option{
			yahoo.WithTimeout(time.Duration(cfg.DataSource.TimeoutSec) * time.Second),
			yahoo.WithProxy(cfg.Proxy),
		}
		if cfg.DataSource.BaseURL != "" {
			opts = append(opts, yahoo.WithBaseURL(cfg.DataSource.BaseURL))
		}
		source = yahoo.New(opts...)
	}
	log.Printf("[INFO] data source: %s", source.Name())

	// Init adapter with a fresh in-process cache
	bridge := adapter.New(source, cache.New())

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	dateRange := func() (string, string) {
		if cfg.Range.StartDate != "" {
			return cfg.Range.StartDate, cfg.Range.EndDate
		}
		now := time.Now()
		return now.AddDate(0, 0, -cfg.Range.Days).Format("2006-01-02"),
			now.Format("2006-01-02")
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, bridge, rec, cfg.Tickers, dateRange, cfg.Insider.Limit)

	// One fetch cycle up front, so a plain run is useful without waiting
	// for the cron schedule.
	sched.RefreshNow()

	if !cfg.Schedule.Watch {
		log.Println("[INFO] MarketBridge done")
		return
	}

	if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	log.Println("[INFO] MarketBridge is watching. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] MarketBridge stopped")
}
