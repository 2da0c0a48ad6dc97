package nse

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/niveshlab/nivesh/internal/models"
)

// corpInfoResponse mirrors the /top-corp-info payload shape. The provider
// wraps each section in a data envelope; "borad_meeting" is the provider's
// own spelling.
type corpInfoResponse struct {
	LatestAnnouncements struct {
		Data []struct {
			Symbol     string `json:"symbol"`
			Subject    string `json:"subject"`
			Details    string `json:"details"`
			Attachment string `json:"attchmntFile"`
			Date       string `json:"an_dt"` // "28-Aug-2026 18:05:32"
		} `json:"data"`
	} `json:"latest_announcements"`
	CorporateActions struct {
		Data []struct {
			Symbol     string `json:"symbol"`
			Series     string `json:"series"`
			Subject    string `json:"subject"`
			ExDate     string `json:"exDate"`
			RecordDate string `json:"recDate"`
		} `json:"data"`
	} `json:"corporate_actions"`
	BoardMeetings struct {
		Data []struct {
			Symbol  string `json:"symbol"`
			Purpose string `json:"purpose"`
			Date    string `json:"meetingdate"`
		} `json:"data"`
	} `json:"borad_meeting"`
	FinancialResults struct {
		Data []struct {
			Period     string      `json:"to_date"`
			Income     flexFloat64 `json:"income"`
			Expenses   flexFloat64 `json:"expenditure"`
			ProfitLoss flexFloat64 `json:"proLossAftTax"`
			EPS        flexFloat64 `json:"reDilEPS"`
			AuditType  string      `json:"audited"`
			FiledAt    string      `json:"broadCastDate"`
		} `json:"data"`
	} `json:"financial_results"`
	ShareholdingPatterns struct {
		Data map[string][]map[string]flexFloat64 `json:"data"`
	} `json:"shareholdings_patterns"`
}

// GetCorporateInfo retrieves the full corporate disclosure bundle for a
// symbol: announcements, actions, board meetings, financial results and
// shareholding patterns.
func (c *Client) GetCorporateInfo(ctx context.Context, symbol string) (*models.CorporateInfo, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("market", "equities")

	var resp corpInfoResponse
	if err := c.get(ctx, "/top-corp-info", params, &resp); err != nil {
		return nil, err
	}

	info := &models.CorporateInfo{
		Symbol:      symbol,
		LastUpdated: time.Now().UTC(),
	}

	for _, a := range resp.LatestAnnouncements.Data {
		date, ok := parseNSEDateTime(a.Date)
		if !ok {
			continue
		}
		info.Announcements = append(info.Announcements, models.Announcement{
			Subject:       a.Subject,
			Description:   a.Details,
			AttachmentURL: a.Attachment,
			Date:          date,
		})
	}

	for _, a := range resp.CorporateActions.Data {
		exDate, ok := parseNSEDate(a.ExDate)
		if !ok {
			continue
		}
		action := models.CorporateAction{
			Subject: a.Subject,
			Series:  a.Series,
			ExDate:  exDate,
		}
		if recDate, ok := parseNSEDate(a.RecordDate); ok {
			action.RecordDate = recDate
		}
		info.CorporateActions = append(info.CorporateActions, action)
	}

	for _, m := range resp.BoardMeetings.Data {
		date, ok := parseNSEDate(m.Date)
		if !ok {
			continue
		}
		info.BoardMeetings = append(info.BoardMeetings, models.BoardMeeting{
			Purpose: m.Purpose,
			Date:    date,
		})
	}

	for _, r := range resp.FinancialResults.Data {
		result := models.FinancialResult{
			Period:     r.Period,
			Income:     float64(r.Income),
			Expenses:   float64(r.Expenses),
			ProfitLoss: float64(r.ProfitLoss),
			EPS:        float64(r.EPS),
			AuditType:  r.AuditType,
		}
		if filed, ok := parseNSEDateTime(r.FiledAt); ok {
			result.FiledAt = filed
		}
		info.FinancialResults = append(info.FinancialResults, result)
	}

	for period, rows := range resp.ShareholdingPatterns.Data {
		pattern := models.ShareholdingPattern{Period: period}
		for _, row := range rows {
			for category, value := range row {
				v := float64(value)
				switch classifyHolder(category) {
				case holderPromoter:
					pattern.Promoter += v
				case holderPublic:
					pattern.Public += v
				case holderInstitutional:
					pattern.Institutional += v
				case holderEmployeeTrust:
					pattern.EmployeeTrusts += v
				}
				if strings.EqualFold(strings.TrimSpace(category), "total") {
					pattern.Total = v
				}
			}
		}
		if pattern.Total == 0 {
			pattern.Total = pattern.Promoter + pattern.Public + pattern.Institutional + pattern.EmployeeTrusts
		}
		info.ShareholdingPatterns = append(info.ShareholdingPatterns, pattern)
	}

	if !info.HasData() {
		return nil, &APIError{
			StatusCode: http.StatusNotFound,
			Message:    "no corporate data for symbol " + symbol,
			Endpoint:   "/top-corp-info",
		}
	}

	return info, nil
}

type holderClass int

const (
	holderOther holderClass = iota
	holderPromoter
	holderPublic
	holderInstitutional
	holderEmployeeTrust
)

func classifyHolder(category string) holderClass {
	c := strings.ToLower(category)
	switch {
	case strings.Contains(c, "promoter"):
		return holderPromoter
	case strings.Contains(c, "employee trust"):
		return holderEmployeeTrust
	case strings.Contains(c, "institution"):
		return holderInstitutional
	case strings.Contains(c, "public"):
		return holderPublic
	default:
		return holderOther
	}
}

func parseNSEDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return time.Time{}, false
	}
	t, err := time.Parse(nseDateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func parseNSEDateTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return time.Time{}, false
	}
	for _, layout := range []string{"02-Jan-2006 15:04:05", nseDateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
