package yahoo

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"MarketBridge/internal/provider"

	"github.com/go-resty/resty/v2"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// Source fetches market data from the Yahoo Finance public API.
type Source struct {
	client *resty.Client
}

// Option configures a Source.
type Option func(*Source)

// WithBaseURL points the client at a different endpoint (tests, mirrors).
func WithBaseURL(u string) Option {
	return func(s *Source) { s.client.SetBaseURL(u) }
}

// WithProxy routes requests through the given proxy URL.
func WithProxy(u string) Option {
	return func(s *Source) {
		if u != "" {
			s.client.SetProxy(u)
		}
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Source) {
		if d > 0 {
			s.client.SetTimeout(d)
		}
	}
}

// New creates a Yahoo Finance source.
func New(opts ...Option) *Source {
	client := resty.New().
		SetBaseURL(defaultBaseURL).
		SetTimeout(10 * time.Second).
		SetHeaders(map[string]string{
			"Accept": "application/json",
			// Yahoo rejects the default Go user agent.
			"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		})

	s := &Source{client: client}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Source) Name() string { return "yahoo" }

// chartResponse is the shape of /v8/finance/chart. OHLCV arrays are parallel
// to Timestamp and use pointers because Yahoo emits nulls for non-trading
// days.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *apiError `json:"error"`
	} `json:"chart"`
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// value is Yahoo's number envelope: {"raw": 0.45, "fmt": "45.00%"}. Fields
// the provider has no data for arrive as empty objects, leaving Raw nil.
type value struct {
	Raw *float64 `json:"raw"`
	Fmt string   `json:"fmt"`
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []quoteSummaryResult `json:"result"`
		Error  *apiError            `json:"error"`
	} `json:"quoteSummary"`
}

type quoteSummaryResult struct {
	Price *struct {
		Currency  string `json:"currency"`
		MarketCap value  `json:"marketCap"`
	} `json:"price"`
	SummaryDetail *struct {
		TrailingPE                   value `json:"trailingPE"`
		PriceToSalesTrailing12Months value `json:"priceToSalesTrailing12Months"`
		PayoutRatio                  value `json:"payoutRatio"`
	} `json:"summaryDetail"`
	DefaultKeyStatistics *struct {
		EnterpriseValue         value `json:"enterpriseValue"`
		PriceToBook             value `json:"priceToBook"`
		EnterpriseToEbitda      value `json:"enterpriseToEbitda"`
		EnterpriseToRevenue     value `json:"enterpriseToRevenue"`
		PegRatio                value `json:"pegRatio"`
		TrailingEps             value `json:"trailingEps"`
		BookValue               value `json:"bookValue"`
		EarningsQuarterlyGrowth value `json:"earningsQuarterlyGrowth"`
	} `json:"defaultKeyStatistics"`
	FinancialData *struct {
		GrossMargins     value `json:"grossMargins"`
		OperatingMargins value `json:"operatingMargins"`
		ProfitMargins    value `json:"profitMargins"`
		ReturnOnEquity   value `json:"returnOnEquity"`
		ReturnOnAssets   value `json:"returnOnAssets"`
		CurrentRatio     value `json:"currentRatio"`
		QuickRatio       value `json:"quickRatio"`
		DebtToEquity     value `json:"debtToEquity"`
		RevenueGrowth    value `json:"revenueGrowth"`
		EarningsGrowth   value `json:"earningsGrowth"`
	} `json:"financialData"`
	InsiderTransactions *struct {
		Transactions []struct {
			FilerName     string `json:"filerName"`
			FilerRelation string `json:"filerRelation"`
			StartDate     value  `json:"startDate"`
			Shares        value  `json:"shares"`
			Value         value  `json:"value"`
		} `json:"transactions"`
	} `json:"insiderTransactions"`
}

// HistoricalPrices returns daily OHLCV rows for the inclusive date range, in
// ascending date order. Null bars (holidays) are skipped.
func (s *Source) HistoricalPrices(ctx context.Context, ticker, startDate, endDate string) ([]provider.PriceRow, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, fmt.Errorf("parse start date %q: %w", startDate, err)
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, fmt.Errorf("parse end date %q: %w", endDate, err)
	}

	var chart chartResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"period1":  strconv.FormatInt(start.Unix(), 10),
			"period2":  strconv.FormatInt(end.AddDate(0, 0, 1).Unix(), 10), // end date inclusive
			"interval": "1d",
		}).
		SetResult(&chart).
		Get("/v8/finance/chart/" + ticker)
	if err != nil {
		return nil, fmt.Errorf("yahoo chart request: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("yahoo chart: status %s", resp.Status())
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo chart: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, nil
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	rows := make([]provider.PriceRow, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) ||
			i >= len(quote.Close) || i >= len(quote.Volume) {
			break
		}
		if quote.Open[i] == nil || quote.High[i] == nil || quote.Low[i] == nil || quote.Close[i] == nil {
			continue
		}
		var volume int64
		if quote.Volume[i] != nil {
			volume = *quote.Volume[i]
		}
		rows = append(rows, provider.PriceRow{
			Date:   time.Unix(ts, 0).UTC().Format("2006-01-02"),
			Open:   *quote.Open[i],
			High:   *quote.High[i],
			Low:    *quote.Low[i],
			Close:  *quote.Close[i],
			Volume: volume,
		})
	}
	return rows, nil
}

// Fundamentals returns the provider's current fundamentals snapshot, or nil
// when Yahoo has no data for the ticker.
func (s *Source) Fundamentals(ctx context.Context, ticker string) (*provider.Fundamentals, error) {
	result, err := s.quoteSummary(ctx, ticker, "summaryDetail,defaultKeyStatistics,financialData,price")
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}

	f := &provider.Fundamentals{Currency: "USD"}
	if p := result.Price; p != nil {
		if p.Currency != "" {
			f.Currency = p.Currency
		}
		f.MarketCap = p.MarketCap.Raw
	}
	if d := result.SummaryDetail; d != nil {
		f.TrailingPE = d.TrailingPE.Raw
		f.PriceToSalesTrailing12Months = d.PriceToSalesTrailing12Months.Raw
		f.PayoutRatio = d.PayoutRatio.Raw
	}
	if k := result.DefaultKeyStatistics; k != nil {
		f.EnterpriseValue = k.EnterpriseValue.Raw
		f.PriceToBook = k.PriceToBook.Raw
		f.EnterpriseToEbitda = k.EnterpriseToEbitda.Raw
		f.EnterpriseToRevenue = k.EnterpriseToRevenue.Raw
		f.PegRatio = k.PegRatio.Raw
		f.TrailingEps = k.TrailingEps.Raw
		f.BookValue = k.BookValue.Raw
		f.EarningsQuarterlyGrowth = k.EarningsQuarterlyGrowth.Raw
	}
	if fd := result.FinancialData; fd != nil {
		f.GrossMargins = fd.GrossMargins.Raw
		f.OperatingMargins = fd.OperatingMargins.Raw
		f.ProfitMargins = fd.ProfitMargins.Raw
		f.ReturnOnEquity = fd.ReturnOnEquity.Raw
		f.ReturnOnAssets = fd.ReturnOnAssets.Raw
		f.CurrentRatio = fd.CurrentRatio.Raw
		f.QuickRatio = fd.QuickRatio.Raw
		f.DebtToEquity = fd.DebtToEquity.Raw
		f.RevenueGrowth = fd.RevenueGrowth.Raw
		f.EarningsGrowth = fd.EarningsGrowth.Raw
	}
	return f, nil
}

// InsiderTransactions returns insider filings for the ticker. Yahoo reports
// an aggregate dollar value per filing, not a per-share price, so the
// per-share figure is derived as value/shares when both are present.
func (s *Source) InsiderTransactions(ctx context.Context, ticker string) ([]provider.InsiderRow, error) {
	result, err := s.quoteSummary(ctx, ticker, "insiderTransactions")
	if err != nil {
		return nil, err
	}
	if result == nil || result.InsiderTransactions == nil {
		return nil, nil
	}

	txns := result.InsiderTransactions.Transactions
	rows := make([]provider.InsiderRow, 0, len(txns))
	for _, t := range txns {
		date := ""
		if t.StartDate.Fmt != "" {
			date = t.StartDate.Fmt
		} else if t.StartDate.Raw != nil {
			date = time.Unix(int64(*t.StartDate.Raw), 0).UTC().Format("2006-01-02")
		}

		var pricePerShare *float64
		if t.Value.Raw != nil && t.Shares.Raw != nil && *t.Shares.Raw != 0 {
			pps := *t.Value.Raw / *t.Shares.Raw
			pricePerShare = &pps
		}

		rows = append(rows, provider.InsiderRow{
			FilerName:       t.FilerName,
			FilerRelation:   t.FilerRelation,
			FilingDate:      date,
			TransactionDate: date,
			Shares:          t.Shares.Raw,
			PricePerShare:   pricePerShare,
		})
	}
	return rows, nil
}

func (s *Source) quoteSummary(ctx context.Context, ticker, modules string) (*quoteSummaryResult, error) {
	var summary quoteSummaryResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("modules", modules).
		SetResult(&summary).
		Get("/v10/finance/quoteSummary/" + ticker)
	if err != nil {
		return nil, fmt.Errorf("yahoo quote summary request: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("yahoo quote summary: status %s", resp.Status())
	}
	if summary.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("yahoo quote summary: %s", summary.QuoteSummary.Error.Description)
	}
	if len(summary.QuoteSummary.Result) == 0 {
		return nil, nil
	}
	return &summary.QuoteSummary.Result[0], nil
}
