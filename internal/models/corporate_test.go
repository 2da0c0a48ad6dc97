package models

import (
	"testing"
	"time"
)

func approxEqual(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}

func TestShareholdingNormalize_Fractions(t *testing.T) {
	p := ShareholdingPattern{
		Period:         "30-Jun-2026",
		Promoter:       0.4929,
		Public:         0.5041,
		EmployeeTrusts: 0.003,
		Total:          1.0,
	}
	p.Normalize()

	if !approxEqual(p.Promoter, 49.29) {
		t.Errorf("Promoter = %v, want 49.29", p.Promoter)
	}
	if !approxEqual(p.Total, 100.0) {
		t.Errorf("Total = %v, want 100", p.Total)
	}
}

func TestShareholdingNormalize_PercentagesUntouched(t *testing.T) {
	p := ShareholdingPattern{Promoter: 49.29, Public: 50.41, Total: 99.7}
	p.Normalize()

	if p.Promoter != 49.29 || p.Total != 99.7 {
		t.Errorf("percentage pattern was rescaled: %+v", p)
	}
}

func TestShareholdingNormalize_Boundary(t *testing.T) {
	// 0.57 total reads as a fraction
	frac := ShareholdingPattern{Total: 0.57, Promoter: 0.30, Public: 0.27}
	frac.Normalize()
	if !approxEqual(frac.Total, 57.0) {
		t.Errorf("Total = %v, want 57 for fractional input", frac.Total)
	}

	// 57 total reads as a (partial) percentage set
	pct := ShareholdingPattern{Total: 57, Promoter: 30, Public: 27}
	pct.Normalize()
	if pct.Total != 57.0 {
		t.Errorf("Total = %v, want unchanged 57 for percentage input", pct.Total)
	}

	// exactly at the ceiling stays unscaled
	edge := ShareholdingPattern{Total: 2.0, Promoter: 2.0}
	edge.Normalize()
	if edge.Total != 2.0 {
		t.Errorf("Total = %v, want unchanged at ceiling", edge.Total)
	}
}

func TestFilterUpcoming(t *testing.T) {
	now := time.Date(2026, 8, 28, 14, 30, 0, 0, time.Local)
	today := time.Date(2026, 8, 28, 0, 0, 0, 0, time.Local)

	info := &CorporateInfo{
		ISIN: "INE009A01021",
		CorporateActions: []CorporateAction{
			{Subject: "Past", ExDate: today.AddDate(0, 0, -1)},
			{Subject: "Today", ExDate: today},
			{Subject: "Future", ExDate: today.AddDate(0, 0, 7)},
		},
		BoardMeetings: []BoardMeeting{
			{Purpose: "Past", Date: today.AddDate(0, 0, -30)},
			{Purpose: "Future", Date: today.AddDate(0, 1, 0)},
		},
		Announcements: []Announcement{
			{Subject: "Old", Date: today.AddDate(0, 0, -30)},
		},
	}

	out := info.FilterUpcoming(now)

	if len(out.CorporateActions) != 2 {
		t.Fatalf("actions = %d, want 2 (today + future)", len(out.CorporateActions))
	}
	if out.CorporateActions[0].Subject != "Today" {
		t.Errorf("first action = %s, want Today", out.CorporateActions[0].Subject)
	}
	if len(out.BoardMeetings) != 1 {
		t.Errorf("meetings = %d, want 1", len(out.BoardMeetings))
	}
	// announcements are never filtered
	if len(out.Announcements) != 1 {
		t.Errorf("announcements = %d, want 1", len(out.Announcements))
	}
	// the original record is untouched
	if len(info.CorporateActions) != 3 {
		t.Errorf("original actions mutated: %d", len(info.CorporateActions))
	}
}

func TestHasData(t *testing.T) {
	empty := &CorporateInfo{ISIN: "X"}
	if empty.HasData() {
		t.Error("empty record should report no data")
	}

	withMeetings := &CorporateInfo{
		BoardMeetings: []BoardMeeting{{Purpose: "Results", Date: time.Now()}},
	}
	if !withMeetings.HasData() {
		t.Error("record with meetings should report data")
	}
}

func TestHoldingReturnPct(t *testing.T) {
	h := Holding{Quantity: 10, AvgCost: 100, MarketValue: 1500}
	if got := h.ReturnPct(); got != 50.0 {
		t.Errorf("ReturnPct = %v, want 50", got)
	}

	zero := Holding{Quantity: 0, AvgCost: 0, MarketValue: 100}
	if got := zero.ReturnPct(); got != 0 {
		t.Errorf("ReturnPct with zero cost = %v, want 0", got)
	}
}

func TestStockMasterUpdate_IsEmpty(t *testing.T) {
	var u StockMasterUpdate
	if !u.IsEmpty() {
		t.Error("zero update should be empty")
	}

	pe := 10.5
	u.PE = &pe
	if u.IsEmpty() {
		t.Error("update with PE should not be empty")
	}
}
