package models

import "time"

// Holding is a client's current position in one instrument.
// Identity is (client_id, isin); uniqueness is enforced by upsert record IDs.
type Holding struct {
	ClientID     string    `json:"client_id"`
	ISIN         string    `json:"isin"`
	Symbol       string    `json:"symbol,omitempty"`
	Name         string    `json:"name"`
	Quantity     float64   `json:"quantity"`
	AvgCost      float64   `json:"avg_cost"`
	MarketPrice  float64   `json:"market_price"`
	MarketValue  float64   `json:"market_value"`
	Sector       string    `json:"sector,omitempty"`
	PortfolioPct float64   `json:"portfolio_pct"`
	LastUpdated  time.Time `json:"last_updated"`
}

// CostValue returns the total cost basis of the position.
func (h *Holding) CostValue() float64 {
	return h.Quantity * h.AvgCost
}

// ReturnPct returns the percentage return against average cost,
// or 0 when the cost basis is zero.
func (h *Holding) ReturnPct() float64 {
	cost := h.CostValue()
	if cost == 0 {
		return 0
	}
	return (h.MarketValue - cost) / cost * 100
}

// EnrichmentError records one failed item in an enrichment batch.
type EnrichmentError struct {
	ISIN   string `json:"isin"`
	Symbol string `json:"symbol,omitempty"`
	Reason string `json:"reason"`
}

// EnrichmentResult summarizes a holdings enrichment batch. The batch always
// completes; per-item failures are counted and sampled, never fatal.
type EnrichmentResult struct {
	Total     int                 `json:"total"`
	Processed int                 `json:"processed"`
	Failed    int                 `json:"failed"`
	Errors    []EnrichmentError   `json:"errors,omitempty"`  // truncated sample
	Updates   []StockMasterUpdate `json:"updates,omitempty"` // truncated sample
}
