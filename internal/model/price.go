package model

// PricePoint represents one trading day of OHLCV data.
// Time is a calendar date formatted YYYY-MM-DD.
type PricePoint struct {
	Open   float64 `json:"open"`
	Close  float64 `json:"close"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Volume int64   `json:"volume"`
	Time   string  `json:"time"`
}
