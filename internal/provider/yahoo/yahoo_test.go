package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const chartBody = `{
  "chart": {
    "result": [{
      "timestamp": [1704153600, 1704240000, 1704326400, 1704412800],
      "indicators": {
        "quote": [{
          "open":   [150.0, 151.0, 152.0, null],
          "high":   [155.0, 156.0, 157.0, null],
          "low":    [148.0, 149.0, 150.0, null],
          "close":  [153.0, 154.0, 155.0, null],
          "volume": [1000000, 1100000, 1200000, null]
        }]
      }
    }],
    "error": null
  }
}`

const fundamentalsBody = `{
  "quoteSummary": {
    "result": [{
      "price": {"currency": "USD", "marketCap": {"raw": 3200000000000, "fmt": "3.2T"}},
      "summaryDetail": {
        "trailingPE": {"raw": 31.4, "fmt": "31.40"},
        "priceToSalesTrailing12Months": {},
        "payoutRatio": {"raw": 0.25, "fmt": "25.00%"}
      },
      "defaultKeyStatistics": {
        "enterpriseValue": {"raw": 3300000000000, "fmt": "3.3T"},
        "priceToBook": {"raw": 48.1, "fmt": "48.10"},
        "trailingEps": {"raw": 6.42, "fmt": "6.42"}
      },
      "financialData": {
        "grossMargins": {"raw": 0.45, "fmt": "45.00%"},
        "profitMargins": {"raw": 0.253, "fmt": "25.30%"},
        "returnOnEquity": {"raw": 1.47, "fmt": "147.00%"},
        "currentRatio": {"raw": 0.99, "fmt": "0.99"}
      }
    }],
    "error": null
  }
}`

const insiderBody = `{
  "quoteSummary": {
    "result": [{
      "insiderTransactions": {
        "transactions": [
          {
            "filerName": "COOK TIMOTHY D",
            "filerRelation": "Chief Executive Officer",
            "startDate": {"raw": 1705276800, "fmt": "2024-01-15"},
            "shares": {"raw": 100},
            "value": {"raw": 250}
          },
          {
            "filerName": "LEVINSON ARTHUR D",
            "filerRelation": "Director",
            "startDate": {"raw": 1705363200, "fmt": "2024-01-16"},
            "shares": {"raw": 50}
          }
        ]
      }
    }],
    "error": null
  }
}`

const notFoundBody = `{
  "quoteSummary": {
    "result": [],
    "error": null
  }
}`

func newTestSource(t *testing.T, handler http.HandlerFunc) *Source {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(WithBaseURL(srv.URL))
}

func jsonHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}
}

func TestHistoricalPrices(t *testing.T) {
	var gotPath, gotQuery string
	s := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		jsonHandler(chartBody)(w, r)
	})

	rows, err := s.HistoricalPrices(context.Background(), "AAPL", "2024-01-02", "2024-01-04")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/v8/finance/chart/AAPL" {
		t.Errorf("path: got %q", gotPath)
	}
	if !strings.Contains(gotQuery, "interval=1d") {
		t.Errorf("query: expected daily interval, got %q", gotQuery)
	}

	// The fourth bar is all nulls (non-trading day) and must be skipped.
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	first := rows[0]
	if first.Date != "2024-01-02" {
		t.Errorf("date: expected 2024-01-02, got %q", first.Date)
	}
	if first.Open != 150.0 || first.High != 155.0 || first.Low != 148.0 || first.Close != 153.0 {
		t.Errorf("OHLC mismatch: %+v", first)
	}
	if first.Volume != 1000000 {
		t.Errorf("volume: expected 1000000, got %d", first.Volume)
	}
	if rows[2].Date != "2024-01-04" {
		t.Errorf("rows must stay in ascending order, last date %q", rows[2].Date)
	}
}

func TestHistoricalPrices_BadDate(t *testing.T) {
	s := New()
	if _, err := s.HistoricalPrices(context.Background(), "AAPL", "01/02/2024", "2024-01-04"); err == nil {
		t.Error("expected an error for a non-ISO start date")
	}
}

func TestHistoricalPrices_APIError(t *testing.T) {
	s := newTestSource(t, jsonHandler(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`))
	if _, err := s.HistoricalPrices(context.Background(), "NOPE", "2024-01-02", "2024-01-04"); err == nil {
		t.Error("expected the API error to surface")
	}
}

func TestFundamentals(t *testing.T) {
	s := newTestSource(t, jsonHandler(fundamentalsBody))

	f, err := s.Fundamentals(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f == nil {
		t.Fatal("expected a fundamentals record")
	}

	if f.Currency != "USD" {
		t.Errorf("currency: got %q", f.Currency)
	}
	if f.MarketCap == nil || *f.MarketCap != 3.2e12 {
		t.Errorf("market cap: got %v", f.MarketCap)
	}
	if f.TrailingPE == nil || *f.TrailingPE != 31.4 {
		t.Errorf("trailing P/E: got %v", f.TrailingPE)
	}
	if f.GrossMargins == nil || *f.GrossMargins != 0.45 {
		t.Errorf("gross margins must stay a fraction, got %v", f.GrossMargins)
	}
	// Empty envelope {} means no value.
	if f.PriceToSalesTrailing12Months != nil {
		t.Errorf("empty envelope must decode to nil, got %v", *f.PriceToSalesTrailing12Months)
	}
	// Module absent entirely.
	if f.PegRatio != nil {
		t.Errorf("missing field must decode to nil, got %v", *f.PegRatio)
	}
}

func TestFundamentals_NoResult(t *testing.T) {
	s := newTestSource(t, jsonHandler(notFoundBody))

	f, err := s.Fundamentals(context.Background(), "NOPE")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f != nil {
		t.Errorf("expected nil for an unknown ticker, got %+v", f)
	}
}

func TestInsiderTransactions(t *testing.T) {
	s := newTestSource(t, jsonHandler(insiderBody))

	rows, err := s.InsiderTransactions(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	cook := rows[0]
	if cook.FilerName != "COOK TIMOTHY D" {
		t.Errorf("filer name: got %q", cook.FilerName)
	}
	if cook.FilingDate != "2024-01-15" {
		t.Errorf("filing date: got %q", cook.FilingDate)
	}
	if cook.Shares == nil || *cook.Shares != 100 {
		t.Errorf("shares: got %v", cook.Shares)
	}
	// Yahoo reports aggregate value; per-share is derived as value/shares.
	if cook.PricePerShare == nil || *cook.PricePerShare != 2.5 {
		t.Errorf("price per share: expected 250/100 = 2.5, got %v", cook.PricePerShare)
	}

	// No value column: per-share price stays unknown.
	levinson := rows[1]
	if levinson.PricePerShare != nil {
		t.Errorf("expected nil price without a value column, got %v", *levinson.PricePerShare)
	}
	if levinson.Shares == nil || *levinson.Shares != 50 {
		t.Errorf("shares: got %v", levinson.Shares)
	}
}

func TestInsiderTransactions_NoModule(t *testing.T) {
	s := newTestSource(t, jsonHandler(`{"quoteSummary":{"result":[{}],"error":null}}`))

	rows, err := s.InsiderTransactions(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected no rows without the module, got %d", len(rows))
	}
}

func TestQuoteSummary_HTTPError(t *testing.T) {
	s := newTestSource(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	if _, err := s.Fundamentals(context.Background(), "AAPL"); err == nil {
		t.Error("expected an error for a non-2xx status")
	}
}
