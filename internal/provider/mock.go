package provider

import "context"

// Mock returns controllable fixed data for development and testing. Each
// field, when set, is returned as-is; Err, when set, is returned by every
// call. Call counters let tests assert how often the source was consulted.
type Mock struct {
	SourceName string
	Prices     []PriceRow
	Funds      *Fundamentals
	Insiders   []InsiderRow
	Err        error

	PriceCalls   int
	FundCalls    int
	InsiderCalls int
}

func (m *Mock) Name() string {
	if m.SourceName != "" {
		return m.SourceName
	}
	return "mock"
}

func (m *Mock) HistoricalPrices(_ context.Context, _, _, _ string) ([]PriceRow, error) {
	m.PriceCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Prices, nil
}

func (m *Mock) Fundamentals(_ context.Context, _ string) (*Fundamentals, error) {
	m.FundCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Funds, nil
}

func (m *Mock) InsiderTransactions(_ context.Context, _ string) ([]InsiderRow, error) {
	m.InsiderCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Insiders, nil
}
