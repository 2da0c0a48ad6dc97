package models

import "time"

// RealizedProfitLoss is one closed-position event. Records originate from
// brokerage exports which carry the stock NAME but not always the isin, so
// joins back to holdings are by case-insensitive name (known data-quality
// risk).
type RealizedProfitLoss struct {
	ID        string    `json:"id,omitempty"`
	ClientID  string    `json:"client_id"`
	StockName string    `json:"stock_name"`
	ISIN      string    `json:"isin,omitempty"`
	Quantity  float64   `json:"quantity"`
	BuyDate   time.Time `json:"buy_date"`
	SellDate  time.Time `json:"sell_date"`
	BuyValue  float64   `json:"buy_value"`
	SellValue float64   `json:"sell_value"`
	Realized  float64   `json:"realized_pl"`
}
