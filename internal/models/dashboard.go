package models

import "time"

// DashboardSummary is the per-request aggregation over a client's holdings
// and realized P&L. Recomputed from raw rows on every request; there is no
// caching layer.
type DashboardSummary struct {
	ClientID         string             `json:"client_id"`
	GeneratedAt      time.Time          `json:"generated_at"`
	TotalInvested    float64            `json:"total_invested"`
	TotalValue       float64            `json:"total_value"`
	TotalRealized    float64            `json:"total_realized"`
	HoldingCount     int                `json:"holding_count"`
	TopPerformers    []Performer        `json:"top_performers"`
	WorstPerformers  []Performer        `json:"worst_performers"`
	Monthly          []MonthlyAggregate `json:"monthly"`
	SectorBreakdown  []SectorSlice      `json:"sector_breakdown"`
}

// Performer is one holding ranked by percentage return.
type Performer struct {
	ISIN      string  `json:"isin"`
	Symbol    string  `json:"symbol,omitempty"`
	Name      string  `json:"name"`
	ReturnPct float64 `json:"return_pct"`
	Value     float64 `json:"value"`
}

// MonthlyAggregate groups realized P&L by sell month (YYYY-MM).
type MonthlyAggregate struct {
	Month    string  `json:"month"`
	Invested float64 `json:"invested"`
	Realized float64 `json:"realized"`
	Trades   int     `json:"trades"`
}

// SectorSlice is one sector's share of current market value.
type SectorSlice struct {
	Sector string  `json:"sector"`
	Value  float64 `json:"value"`
	Pct    float64 `json:"pct"`
}
