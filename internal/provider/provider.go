package provider

import "context"

// PriceRow is one daily OHLCV row as returned by the provider, with the
// timestamp already normalized to a YYYY-MM-DD calendar date. Rows arrive in
// ascending date order.
type PriceRow struct {
	Date   string
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// Fundamentals is the provider's snapshot of named fundamentals fields for
// one ticker. Every numeric field is optional: nil means the provider did not
// report it. Margin, return, and growth fields are fractions (0.45 = 45%),
// exactly as the provider delivers them.
type Fundamentals struct {
	Currency string

	MarketCap       *float64
	EnterpriseValue *float64

	TrailingPE                   *float64
	PriceToBook                  *float64
	PriceToSalesTrailing12Months *float64
	EnterpriseToEbitda           *float64
	EnterpriseToRevenue          *float64
	PegRatio                     *float64

	GrossMargins     *float64
	OperatingMargins *float64
	ProfitMargins    *float64

	ReturnOnEquity *float64
	ReturnOnAssets *float64

	CurrentRatio *float64
	QuickRatio   *float64
	DebtToEquity *float64

	RevenueGrowth           *float64
	EarningsGrowth          *float64
	EarningsQuarterlyGrowth *float64
	PayoutRatio             *float64

	TrailingEps *float64
	BookValue   *float64
}

// InsiderRow is one insider-transaction filing as returned by the provider.
// Dates are YYYY-MM-DD strings, empty when the provider omitted them.
type InsiderRow struct {
	FilerName       string
	FilerRelation   string
	FilingDate      string
	TransactionDate string
	Shares          *float64
	PricePerShare   *float64
}

// Source is the external data capability: given a ticker, return raw price
// history, a fundamentals snapshot, or insider filings. Implementations make
// a single attempt per call; retry policy belongs to the caller, if anywhere.
type Source interface {
	Name() string
	HistoricalPrices(ctx context.Context, ticker, startDate, endDate string) ([]PriceRow, error)
	Fundamentals(ctx context.Context, ticker string) (*Fundamentals, error)
	InsiderTransactions(ctx context.Context, ticker string) ([]InsiderRow, error)
}
