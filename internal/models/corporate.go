package models

import (
	"time"

	"github.com/niveshlab/nivesh/internal/common"
)

// CorporateInfo aggregates corporate disclosures for one isin.
// Field names keep the camelCase shape of the legacy documents so records
// imported from the previous system remain readable without migration.
type CorporateInfo struct {
	ISIN                 string                `json:"isin"`
	Symbol               string                `json:"symbol,omitempty"`
	Announcements        []Announcement        `json:"announcements"`
	CorporateActions     []CorporateAction     `json:"corporateActions"`
	BoardMeetings        []BoardMeeting        `json:"boardMeetings"`
	FinancialResults     []FinancialResult     `json:"financialResults"`
	ShareholdingPatterns []ShareholdingPattern `json:"shareholdingPatterns"`
	LastUpdated          time.Time             `json:"lastUpdated"`
}

// Announcement is a company announcement published by the exchange.
type Announcement struct {
	Subject       string    `json:"subject"`
	Description   string    `json:"description,omitempty"`
	AttachmentURL string    `json:"attachmentUrl,omitempty"`
	Date          time.Time `json:"date"`
}

// CorporateAction is a dividend, split, bonus or similar event.
type CorporateAction struct {
	Subject    string    `json:"subject"`
	Series     string    `json:"series,omitempty"`
	ExDate     time.Time `json:"exDate"`
	RecordDate time.Time `json:"recordDate,omitempty"`
}

// BoardMeeting is a scheduled board meeting with its agenda.
type BoardMeeting struct {
	Purpose string    `json:"purpose"`
	Date    time.Time `json:"date"`
}

// FinancialResult is one reported period's headline figures.
type FinancialResult struct {
	Period     string    `json:"period"`
	Income     float64   `json:"income"`
	Expenses   float64   `json:"expenses"`
	ProfitLoss float64   `json:"profitLoss"`
	EPS        float64   `json:"eps"`
	AuditType  string    `json:"auditType,omitempty"`
	FiledAt    time.Time `json:"filedAt,omitempty"`
}

// ShareholdingPattern is one reporting period's ownership breakdown.
// Values are percentages; upstream sometimes delivers fractions instead
// (see Normalize).
type ShareholdingPattern struct {
	Period            string  `json:"period"`
	Promoter          float64 `json:"promoter"`
	Public            float64 `json:"public"`
	Institutional     float64 `json:"institutional"`
	EmployeeTrusts    float64 `json:"employeeTrusts"`
	Total             float64 `json:"total"`
}

// fractionCeiling is the heuristic boundary below which a pattern total is
// treated as a fraction rather than a percentage. Totals near the boundary
// are ambiguous; this is a best-effort unit correction, not a guarantee.
const fractionCeiling = 2.0

// Normalize scales fractional shareholding values to percentages.
// A pattern whose total is under the ceiling is assumed to be expressed as
// fractions (0.57 instead of 57) and every field is multiplied by 100.
func (p *ShareholdingPattern) Normalize() {
	if p.Total >= fractionCeiling {
		return
	}
	p.Promoter *= 100
	p.Public *= 100
	p.Institutional *= 100
	p.EmployeeTrusts *= 100
	p.Total *= 100
}

// NormalizeShareholding applies Normalize to every pattern in place.
func (c *CorporateInfo) NormalizeShareholding() {
	for i := range c.ShareholdingPatterns {
		c.ShareholdingPatterns[i].Normalize()
	}
}

// HasData reports whether any disclosure field set is non-empty.
func (c *CorporateInfo) HasData() bool {
	return len(c.Announcements) > 0 ||
		len(c.CorporateActions) > 0 ||
		len(c.BoardMeetings) > 0 ||
		len(c.FinancialResults) > 0 ||
		len(c.ShareholdingPatterns) > 0
}

// FilterUpcoming returns a copy with corporate actions and board meetings
// reduced to entries dated today or later (day granularity, local midnight).
// Past entries stay in storage; they are only hidden from reads.
func (c *CorporateInfo) FilterUpcoming(now time.Time) *CorporateInfo {
	midnight := common.StartOfDay(now)

	out := *c

	out.CorporateActions = make([]CorporateAction, 0, len(c.CorporateActions))
	for _, a := range c.CorporateActions {
		if !a.ExDate.Before(midnight) {
			out.CorporateActions = append(out.CorporateActions, a)
		}
	}

	out.BoardMeetings = make([]BoardMeeting, 0, len(c.BoardMeetings))
	for _, m := range c.BoardMeetings {
		if !m.Date.Before(midnight) {
			out.BoardMeetings = append(out.BoardMeetings, m)
		}
	}

	return &out
}
