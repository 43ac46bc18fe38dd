package model

// InsiderTrade represents one insider transaction filing.
//
// TransactionValue is shares times price-per-share when both were reported,
// and 0 otherwise. The zero default is deliberate: unlike the metrics
// snapshot, a missing input here does not produce a nil field.
type InsiderTrade struct {
	Ticker          string `json:"ticker"`
	Issuer          string `json:"issuer"`
	Name            string `json:"name"`
	Title           string `json:"title"`
	IsBoardDirector bool   `json:"is_board_director"`

	TransactionDate          string  `json:"transaction_date"`
	TransactionShares        float64 `json:"transaction_shares"`
	TransactionPricePerShare float64 `json:"transaction_price_per_share"`
	TransactionValue         float64 `json:"transaction_value"`

	SharesOwnedBeforeTransaction *float64 `json:"shares_owned_before_transaction"`
	SharesOwnedAfterTransaction  *float64 `json:"shares_owned_after_transaction"`
	SecurityTitle                *string  `json:"security_title"`

	FilingDate string `json:"filing_date"`
}
