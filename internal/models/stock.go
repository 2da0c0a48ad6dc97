// Package models defines data structures for nivesh
package models

import "time"

// StockMaster is the per-isin instrument record joining holdings to
// externally sourced data. Fields beyond symbol/exchange are populated
// opportunistically by the enrichment pipeline.
type StockMaster struct {
	ISIN            string    `json:"isin"`
	Symbol          string    `json:"symbol"`
	Exchange        string    `json:"exchange"`
	CompanyName     string    `json:"company_name"`
	Sector          string    `json:"sector,omitempty"`
	Industry        string    `json:"industry,omitempty"`
	PE              float64   `json:"pe,omitempty"`
	SectorPE        float64   `json:"sector_pe,omitempty"`
	SectorIndex     string    `json:"sector_index,omitempty"`
	FnOEligible     bool      `json:"fno_eligible"`
	LastUpdated     time.Time `json:"last_updated"`
	LastEnrichedAt  time.Time `json:"last_enriched_at,omitempty"`
}

// OHLCBar is one stored trading day for an isin. Absent numeric values are
// stored and served as zero, never null.
type OHLCBar struct {
	ISIN   string    `json:"isin"`
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
	PE     *float64  `json:"pe,omitempty"`
}

// DailyQuote is the normalized result of an NSE daily-data fetch for one
// symbol. Pointer fields distinguish "absent upstream" from zero so the
// enrichment merge only writes fields the provider actually returned.
type DailyQuote struct {
	Symbol      string   `json:"symbol"`
	Open        float64  `json:"open"`
	High        float64  `json:"high"`
	Low         float64  `json:"low"`
	Close       float64  `json:"close"`
	Volume      int64    `json:"volume"`
	PE          *float64 `json:"pe,omitempty"`
	SectorPE    *float64 `json:"sector_pe,omitempty"`
	SectorIndex *string  `json:"sector_index,omitempty"`
	Industry    *string  `json:"industry,omitempty"`
	FnOEligible *bool    `json:"fno_eligible,omitempty"`
}

// StockMasterUpdate holds the field-level changes applied to a StockMaster
// during enrichment. Only non-nil fields are merged into the stored record.
type StockMasterUpdate struct {
	PE          *float64 `json:"pe,omitempty"`
	SectorPE    *float64 `json:"sector_pe,omitempty"`
	SectorIndex *string  `json:"sector_index,omitempty"`
	Industry    *string  `json:"industry,omitempty"`
	FnOEligible *bool    `json:"fno_eligible,omitempty"`
}

// IsEmpty reports whether the update carries no fields at all.
func (u *StockMasterUpdate) IsEmpty() bool {
	return u.PE == nil && u.SectorPE == nil && u.SectorIndex == nil &&
		u.Industry == nil && u.FnOEligible == nil
}

// UpdateFromQuote builds the field-level update from a daily quote,
// copying only the fields the provider returned.
func UpdateFromQuote(q *DailyQuote) *StockMasterUpdate {
	return &StockMasterUpdate{
		PE:          q.PE,
		SectorPE:    q.SectorPE,
		SectorIndex: q.SectorIndex,
		Industry:    q.Industry,
		FnOEligible: q.FnOEligible,
	}
}
