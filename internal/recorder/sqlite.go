package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"MarketBridge/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists fetched data to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance (analysis tools read
	// while the fetcher writes).
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS price_history (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			fetched_at INTEGER NOT NULL,
			ticker     TEXT NOT NULL,
			date       TEXT NOT NULL,
			open       REAL,
			high       REAL,
			low        REAL,
			close      REAL,
			volume     INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_price_ticker_date ON price_history(ticker, date)`,

		`CREATE TABLE IF NOT EXISTS metrics_snapshots (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			fetched_at      INTEGER NOT NULL,
			ticker          TEXT NOT NULL,
			report_period   TEXT,
			period          TEXT,
			currency        TEXT,
			market_cap      REAL,
			pe_ratio        REAL,
			pb_ratio        REAL,
			ps_ratio        REAL,
			gross_margin    REAL,
			operating_margin REAL,
			net_margin      REAL,
			return_on_equity REAL,
			return_on_assets REAL,
			current_ratio   REAL,
			quick_ratio     REAL,
			debt_to_equity  REAL,
			revenue_growth  REAL,
			earnings_growth REAL,
			payout_ratio    REAL,
			eps             REAL,
			book_value_per_share REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_metrics_ticker ON metrics_snapshots(ticker)`,

		`CREATE TABLE IF NOT EXISTS insider_trades (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			fetched_at       INTEGER NOT NULL,
			ticker           TEXT NOT NULL,
			filer_name       TEXT,
			filer_title      TEXT,
			is_board_director INTEGER,
			transaction_date TEXT,
			filing_date      TEXT,
			shares           REAL,
			price_per_share  REAL,
			value            REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_insider_ticker_filed ON insider_trades(ticker, filing_date)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordPrices(ticker string, prices []model.PricePoint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO price_history
		(fetched_at, ticker, date, open, high, low, close, volume)
		VALUES (?,?,?,?,?,?,?,?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for _, p := range prices {
		if _, err := stmt.Exec(now, ticker, p.Time, p.Open, p.High, p.Low, p.Close, p.Volume); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert price row: %w", err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) RecordMetrics(m *model.FinancialMetrics) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO metrics_snapshots
		(fetched_at, ticker, report_period, period, currency,
		 market_cap, pe_ratio, pb_ratio, ps_ratio,
		 gross_margin, operating_margin, net_margin,
		 return_on_equity, return_on_assets,
		 current_ratio, quick_ratio, debt_to_equity,
		 revenue_growth, earnings_growth, payout_ratio,
		 eps, book_value_per_share)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), m.Ticker, m.ReportPeriod, m.Period, m.Currency,
		nullable(m.MarketCap), nullable(m.PriceToEarningsRatio),
		nullable(m.PriceToBookRatio), nullable(m.PriceToSalesRatio),
		nullable(m.GrossMargin), nullable(m.OperatingMargin), nullable(m.NetMargin),
		nullable(m.ReturnOnEquity), nullable(m.ReturnOnAssets),
		nullable(m.CurrentRatio), nullable(m.QuickRatio), nullable(m.DebtToEquity),
		nullable(m.RevenueGrowth), nullable(m.EarningsGrowth), nullable(m.PayoutRatio),
		nullable(m.EarningsPerShare), nullable(m.BookValuePerShare),
	)
	return err
}

func (r *SQLiteRecorder) RecordInsiderTrades(trades []model.InsiderTrade) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO insider_trades
		(fetched_at, ticker, filer_name, filer_title, is_board_director,
		 transaction_date, filing_date, shares, price_per_share, value)
		VALUES (?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for _, t := range trades {
		if _, err := stmt.Exec(now, t.Ticker, t.Name, t.Title, t.IsBoardDirector,
			t.TransactionDate, t.FilingDate, t.TransactionShares,
			t.TransactionPricePerShare, t.TransactionValue); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert insider row: %w", err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}

// nullable turns an optional metric into a driver-level NULL when unset.
func nullable(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
