package fieldmap

import (
	"testing"

	"MarketBridge/internal/model"
	"MarketBridge/internal/provider"
)

func f(v float64) *float64 { return &v }

func TestApply_FractionToPercent(t *testing.T) {
	funds := &provider.Fundamentals{
		GrossMargins:   f(0.45),
		ReturnOnEquity: f(0.147),
		PayoutRatio:    f(0.25),
	}
	var m model.FinancialMetrics
	Apply(funds, &m)

	if m.GrossMargin == nil || *m.GrossMargin != 45.0 {
		t.Errorf("gross margin: expected 45.0, got %v", m.GrossMargin)
	}
	if m.ReturnOnEquity == nil || *m.ReturnOnEquity != 14.7 {
		t.Errorf("return on equity: expected 14.7, got %v", m.ReturnOnEquity)
	}
	if m.PayoutRatio == nil || *m.PayoutRatio != 25.0 {
		t.Errorf("payout ratio: expected 25.0, got %v", m.PayoutRatio)
	}
}

func TestApply_AbsentFieldStaysNil(t *testing.T) {
	// Provider reported nothing: no canonical field may default to zero.
	var m model.FinancialMetrics
	Apply(&provider.Fundamentals{}, &m)

	if m.GrossMargin != nil {
		t.Errorf("absent margin must stay nil, got %v", *m.GrossMargin)
	}
	if m.MarketCap != nil {
		t.Errorf("absent market cap must stay nil, got %v", *m.MarketCap)
	}
	if m.PriceToEarningsRatio != nil {
		t.Errorf("absent P/E must stay nil, got %v", *m.PriceToEarningsRatio)
	}
}

func TestApply_Passthrough(t *testing.T) {
	funds := &provider.Fundamentals{
		MarketCap:    f(3.2e12),
		TrailingPE:   f(31.4),
		DebtToEquity: f(151.8),
		TrailingEps:  f(6.42),
	}
	var m model.FinancialMetrics
	Apply(funds, &m)

	if m.MarketCap == nil || *m.MarketCap != 3.2e12 {
		t.Errorf("market cap: expected 3.2e12, got %v", m.MarketCap)
	}
	if m.PriceToEarningsRatio == nil || *m.PriceToEarningsRatio != 31.4 {
		t.Errorf("P/E: expected 31.4 unchanged, got %v", m.PriceToEarningsRatio)
	}
	if m.DebtToEquity == nil || *m.DebtToEquity != 151.8 {
		t.Errorf("debt to equity: expected 151.8 unchanged, got %v", m.DebtToEquity)
	}
	if m.EarningsPerShare == nil || *m.EarningsPerShare != 6.42 {
		t.Errorf("EPS: expected 6.42 unchanged, got %v", m.EarningsPerShare)
	}
}

func TestApply_UnavailableSubsetStaysNil(t *testing.T) {
	// Even a fully populated provider record cannot fill the fields the
	// provider has no equivalent for.
	funds := &provider.Fundamentals{
		MarketCap: f(1e12), GrossMargins: f(0.5), TrailingPE: f(20),
		RevenueGrowth: f(0.1), CurrentRatio: f(1.2),
	}
	var m model.FinancialMetrics
	Apply(funds, &m)

	checks := map[string]*float64{
		"free_cash_flow_yield":       m.FreeCashFlowYield,
		"return_on_invested_capital": m.ReturnOnInvestedCapital,
		"asset_turnover":             m.AssetTurnover,
		"inventory_turnover":         m.InventoryTurnover,
		"receivables_turnover":       m.ReceivablesTurnover,
		"days_sales_outstanding":     m.DaysSalesOutstanding,
		"operating_cycle":            m.OperatingCycle,
		"working_capital_turnover":   m.WorkingCapitalTurnover,
		"cash_ratio":                 m.CashRatio,
		"operating_cash_flow_ratio":  m.OperatingCashFlowRatio,
		"debt_to_assets":             m.DebtToAssets,
		"interest_coverage":          m.InterestCoverage,
		"book_value_growth":          m.BookValueGrowth,
		"free_cash_flow_growth":      m.FreeCashFlowGrowth,
		"operating_income_growth":    m.OperatingIncomeGrowth,
		"ebitda_growth":              m.EbitdaGrowth,
		"free_cash_flow_per_share":   m.FreeCashFlowPerShare,
	}
	for name, v := range checks {
		if v != nil {
			t.Errorf("%s: expected nil, got %v", name, *v)
		}
	}
}

func TestRules_CanonicalNamesUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, r := range Rules() {
		if seen[r.Canonical] {
			t.Errorf("duplicate rule for %s", r.Canonical)
		}
		seen[r.Canonical] = true
	}
	if len(seen) < 38 {
		t.Errorf("expected the full metric field set in the table, got %d rules", len(seen))
	}
}

func TestRules_UnavailableHaveNoSource(t *testing.T) {
	for _, r := range Rules() {
		if r.Convert == Unavailable && r.source != nil {
			t.Errorf("%s: marked unavailable but has a source", r.Canonical)
		}
		if r.Convert != Unavailable && r.source == nil {
			t.Errorf("%s: has a conversion but no source", r.Canonical)
		}
	}
}
