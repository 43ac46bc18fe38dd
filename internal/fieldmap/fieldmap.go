// Package fieldmap declares the translation table from provider fundamentals
// fields to canonical metric fields, including unit conversions.
package fieldmap

import (
	"MarketBridge/internal/model"
	"MarketBridge/internal/provider"
)

// Conversion is how a provider value becomes a canonical metric value.
type Conversion int

const (
	// Passthrough copies the value unchanged (ratios, multiples,
	// per-share and absolute figures).
	Passthrough Conversion = iota
	// FractionToPercent multiplies by 100 (margins, returns, growth
	// rates, payout ratio: the provider reports fractions).
	FractionToPercent
	// Unavailable marks a canonical field the provider has no equivalent
	// for. The field is always left unset, never defaulted to zero.
	Unavailable
)

// Rule maps one canonical metric field to its provider source.
type Rule struct {
	Canonical string
	Convert   Conversion

	source func(f *provider.Fundamentals) *float64
	assign func(m *model.FinancialMetrics, v *float64)
}

// rules is the full mapping table. Keep the Unavailable entries explicit:
// they document which canonical fields the provider cannot populate.
var rules = []Rule{
	{Canonical: "market_cap", Convert: Passthrough,
		source: func(f *provider.Fundamentals) *float64 { return f.MarketCap },
		assign: func(m *model.FinancialMetrics, v *float64) { m.MarketCap = v }},
	{Canonical: "enterprise_value", Convert: Passthrough,
		source: func(f *provider.Fundamentals) *float64 { return f.EnterpriseValue },
		assign: func(m *model.FinancialMetrics, v *float64) { m.EnterpriseValue = v }},
	{Canonical: "price_to_earnings_ratio", Convert: Passthrough,
		source: func(f *provider.Fundamentals) *float64 { return f.TrailingPE },
		assign: func(m *model.FinancialMetrics, v *float64) { m.PriceToEarningsRatio = v }},
	{Canonical: "price_to_book_ratio", Convert: Passthrough,
		source: func(f *provider.Fundamentals) *float64 { return f.PriceToBook },
		assign: func(m *model.FinancialMetrics, v *float64) { m.PriceToBookRatio = v }},
	{Canonical: "price_to_sales_ratio", Convert: Passthrough,
		source: func(f *provider.Fundamentals) *float64 { return f.PriceToSalesTrailing12Months },
		assign: func(m *model.FinancialMetrics, v *float64) { m.PriceToSalesRatio = v }},
	{Canonical: "enterprise_value_to_ebitda_ratio", Convert: Passthrough,
		source: func(f *provider.Fundamentals) *float64 { return f.EnterpriseToEbitda },
		assign: func(m *model.FinancialMetrics, v *float64) { m.EnterpriseValueToEbitdaRatio = v }},
	{Canonical: "enterprise_value_to_revenue_ratio", Convert: Passthrough,
		source: func(f *provider.Fundamentals) *float64 { return f.EnterpriseToRevenue },
		assign: func(m *model.FinancialMetrics, v *float64) { m.EnterpriseValueToRevenueRatio = v }},
	{Canonical: "free_cash_flow_yield", Convert: Unavailable,
		assign: func(m *model.FinancialMetrics, v *float64) { m.FreeCashFlowYield = v }},
	{Canonical: "peg_ratio", Convert: Passthrough,
		source: func(f *provider.Fundamentals) *float64 { return f.PegRatio },
		assign: func(m *model.FinancialMetrics, v *float64) { m.PegRatio = v }},

	{Canonical: "gross_margin", Convert: FractionToPercent,
		source: func(f *provider.Fundamentals) *float64 { return f.GrossMargins },
		assign: func(m *model.FinancialMetrics, v *float64) { m.GrossMargin = v }},
	{Canonical: "operating_margin", Convert: FractionToPercent,
		source: func(f *provider.Fundamentals) *float64 { return f.OperatingMargins },
		assign: func(m *model.FinancialMetrics, v *float64) { m.OperatingMargin = v }},
	{Canonical: "net_margin", Convert: FractionToPercent,
		source: func(f *provider.Fundamentals) *float64 { return f.ProfitMargins },
		assign: func(m *model.FinancialMetrics, v *float64) { m.NetMargin = v }},

	{Canonical: "return_on_equity", Convert: FractionToPercent,
		source: func(f *provider.Fundamentals) *float64 { return f.ReturnOnEquity },
		assign: func(m *model.FinancialMetrics, v *float64) { m.ReturnOnEquity = v }},
	{Canonical: "return_on_assets", Convert: FractionToPercent,
		source: func(f *provider.Fundamentals) *float64 { return f.ReturnOnAssets },
		assign: func(m *model.FinancialMetrics, v *float64) { m.ReturnOnAssets = v }},
	{Canonical: "return_on_invested_capital", Convert: Unavailable,
		assign: func(m *model.FinancialMetrics, v *float64) { m.ReturnOnInvestedCapital = v }},

	{Canonical: "asset_turnover", Convert: Unavailable,
		assign: func(m *model.FinancialMetrics, v *float64) { m.AssetTurnover = v }},
	{Canonical: "inventory_turnover", Convert: Unavailable,
		assign: func(m *model.FinancialMetrics, v *float64) { m.InventoryTurnover = v }},
	{Canonical: "receivables_turnover", Convert: Unavailable,
		assign: func(m *model.FinancialMetrics, v *float64) { m.ReceivablesTurnover = v }},
	{Canonical: "days_sales_outstanding", Convert: Unavailable,
		assign: func(m *model.FinancialMetrics, v *float64) { m.DaysSalesOutstanding = v }},
	{Canonical: "operating_cycle", Convert: Unavailable,
		assign: func(m *model.FinancialMetrics, v *float64) { m.OperatingCycle = v }},
	{Canonical: "working_capital_turnover", Convert: Unavailable,
		assign: func(m *model.FinancialMetrics, v *float64) { m.WorkingCapitalTurnover = v }},

	{Canonical: "current_ratio", Convert: Passthrough,
		source: func(f *provider.Fundamentals) *float64 { return f.CurrentRatio },
		assign: func(m *model.FinancialMetrics, v *float64) { m.CurrentRatio = v }},
	{Canonical: "quick_ratio", Convert: Passthrough,
		source: func(f *provider.Fundamentals) *float64 { return f.QuickRatio },
		assign: func(m *model.FinancialMetrics, v *float64) { m.QuickRatio = v }},
	{Canonical: "cash_ratio", Convert: Unavailable,
		assign: func(m *model.FinancialMetrics, v *float64) { m.CashRatio = v }},
	{Canonical: "operating_cash_flow_ratio", Convert: Unavailable,
		assign: func(m *model.FinancialMetrics, v *float64) { m.OperatingCashFlowRatio = v }},

	{Canonical: "debt_to_equity", Convert: Passthrough,
		source: func(f *provider.Fundamentals) *float64 { return f.DebtToEquity },
		assign: func(m *model.FinancialMetrics, v *float64) { m.DebtToEquity = v }},
	{Canonical: "debt_to_assets", Convert: Unavailable,
		assign: func(m *model.FinancialMetrics, v *float64) { m.DebtToAssets = v }},
	{Canonical: "interest_coverage", Convert: Unavailable,
		assign: func(m *model.FinancialMetrics, v *float64) { m.InterestCoverage = v }},

	{Canonical: "revenue_growth", Convert: FractionToPercent,
		source: func(f *provider.Fundamentals) *float64 { return f.RevenueGrowth },
		assign: func(m *model.FinancialMetrics, v *float64) { m.RevenueGrowth = v }},
	{Canonical: "earnings_growth", Convert: FractionToPercent,
		source: func(f *provider.Fundamentals) *float64 { return f.EarningsGrowth },
		assign: func(m *model.FinancialMetrics, v *float64) { m.EarningsGrowth = v }},
	{Canonical: "book_value_growth", Convert: Unavailable,
		assign: func(m *model.FinancialMetrics, v *float64) { m.BookValueGrowth = v }},
	{Canonical: "earnings_per_share_growth", Convert: FractionToPercent,
		source: func(f *provider.Fundamentals) *float64 { return f.EarningsQuarterlyGrowth },
		assign: func(m *model.FinancialMetrics, v *float64) { m.EarningsPerShareGrowth = v }},
	{Canonical: "free_cash_flow_growth", Convert: Unavailable,
		assign: func(m *model.FinancialMetrics, v *float64) { m.FreeCashFlowGrowth = v }},
	{Canonical: "operating_income_growth", Convert: Unavailable,
		assign: func(m *model.FinancialMetrics, v *float64) { m.OperatingIncomeGrowth = v }},
	{Canonical: "ebitda_growth", Convert: Unavailable,
		assign: func(m *model.FinancialMetrics, v *float64) { m.EbitdaGrowth = v }},

	{Canonical: "payout_ratio", Convert: FractionToPercent,
		source: func(f *provider.Fundamentals) *float64 { return f.PayoutRatio },
		assign: func(m *model.FinancialMetrics, v *float64) { m.PayoutRatio = v }},
	{Canonical: "earnings_per_share", Convert: Passthrough,
		source: func(f *provider.Fundamentals) *float64 { return f.TrailingEps },
		assign: func(m *model.FinancialMetrics, v *float64) { m.EarningsPerShare = v }},
	{Canonical: "book_value_per_share", Convert: Passthrough,
		source: func(f *provider.Fundamentals) *float64 { return f.BookValue },
		assign: func(m *model.FinancialMetrics, v *float64) { m.BookValuePerShare = v }},
	{Canonical: "free_cash_flow_per_share", Convert: Unavailable,
		assign: func(m *model.FinancialMetrics, v *float64) { m.FreeCashFlowPerShare = v }},
}

// Rules returns the mapping table, for inspection and tests.
func Rules() []Rule { return rules }

// Apply fills the numeric fields of m from f according to the table. Fields
// whose source is missing, and fields marked Unavailable, stay nil.
func Apply(f *provider.Fundamentals, m *model.FinancialMetrics) {
	for _, r := range rules {
		if r.Convert == Unavailable || r.source == nil {
			r.assign(m, nil)
			continue
		}
		v := r.source(f)
		if v == nil {
			r.assign(m, nil)
			continue
		}
		x := *v
		if r.Convert == FractionToPercent {
			x *= 100
		}
		r.assign(m, &x)
	}
}
