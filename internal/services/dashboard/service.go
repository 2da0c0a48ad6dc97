// Package dashboard computes per-request portfolio summaries
package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/niveshlab/nivesh/internal/common"
	"github.com/niveshlab/nivesh/internal/interfaces"
	"github.com/niveshlab/nivesh/internal/models"
)

// topPerformerCount bounds the best/worst lists in a summary.
const topPerformerCount = 5

// Service implements DashboardService. Every summary is computed from the
// raw holdings and realized rows at request time.
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
}

// NewService creates a new dashboard service
func NewService(storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// BuildSummary reads the client's full holdings and realized P&L sets and
// aggregates totals, performer rankings, monthly figures and the sector
// distribution.
func (s *Service) BuildSummary(ctx context.Context, clientID string) (*models.DashboardSummary, error) {
	holdings, err := s.storage.Holdings().GetHoldings(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load holdings: %w", err)
	}

	realized, err := s.storage.Realized().GetByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load realized records: %w", err)
	}

	summary := &models.DashboardSummary{
		ClientID:        clientID,
		GeneratedAt:     time.Now().UTC(),
		HoldingCount:    len(holdings),
		TopPerformers:   []models.Performer{},
		WorstPerformers: []models.Performer{},
		Monthly:         []models.MonthlyAggregate{},
		SectorBreakdown: []models.SectorSlice{},
	}

	// Money sums go through decimal so long portfolios don't accumulate
	// float drift; results are emitted as floats.
	invested := decimal.Zero
	value := decimal.Zero
	for _, h := range holdings {
		invested = invested.Add(decimal.NewFromFloat(h.CostValue()))
		value = value.Add(decimal.NewFromFloat(h.MarketValue))
	}
	summary.TotalInvested = invested.InexactFloat64()
	summary.TotalValue = value.InexactFloat64()

	totalRealized := decimal.Zero
	for _, r := range realized {
		totalRealized = totalRealized.Add(decimal.NewFromFloat(r.Realized))
	}
	summary.TotalRealized = totalRealized.InexactFloat64()

	summary.TopPerformers, summary.WorstPerformers = rankPerformers(holdings)
	summary.Monthly = monthlyAggregates(realized)
	summary.SectorBreakdown = sectorBreakdown(holdings, summary.TotalValue)

	return summary, nil
}

func rankPerformers(holdings []*models.Holding) (top, worst []models.Performer) {
	performers := make([]models.Performer, 0, len(holdings))
	for _, h := range holdings {
		performers = append(performers, models.Performer{
			ISIN:      h.ISIN,
			Symbol:    h.Symbol,
			Name:      h.Name,
			ReturnPct: h.ReturnPct(),
			Value:     h.MarketValue,
		})
	}

	sort.Slice(performers, func(i, j int) bool {
		return performers[i].ReturnPct > performers[j].ReturnPct
	})

	n := len(performers)
	topN := topPerformerCount
	if topN > n {
		topN = n
	}

	top = append([]models.Performer{}, performers[:topN]...)

	worst = make([]models.Performer, 0, topN)
	for i := n - 1; i >= n-topN; i-- {
		worst = append(worst, performers[i])
	}
	return top, worst
}

func monthlyAggregates(realized []*models.RealizedProfitLoss) []models.MonthlyAggregate {
	type bucket struct {
		invested decimal.Decimal
		realized decimal.Decimal
		trades   int
	}
	buckets := map[string]*bucket{}

	for _, r := range realized {
		if r.SellDate.IsZero() {
			continue
		}
		month := r.SellDate.Format("2006-01")
		b, ok := buckets[month]
		if !ok {
			b = &bucket{}
			buckets[month] = b
		}
		b.invested = b.invested.Add(decimal.NewFromFloat(r.BuyValue))
		b.realized = b.realized.Add(decimal.NewFromFloat(r.Realized))
		b.trades++
	}

	months := make([]string, 0, len(buckets))
	for m := range buckets {
		months = append(months, m)
	}
	sort.Strings(months)

	out := make([]models.MonthlyAggregate, 0, len(months))
	for _, m := range months {
		b := buckets[m]
		out = append(out, models.MonthlyAggregate{
			Month:    m,
			Invested: b.invested.InexactFloat64(),
			Realized: b.realized.InexactFloat64(),
			Trades:   b.trades,
		})
	}
	return out
}

func sectorBreakdown(holdings []*models.Holding, totalValue float64) []models.SectorSlice {
	values := map[string]decimal.Decimal{}
	for _, h := range holdings {
		sector := h.Sector
		if sector == "" {
			sector = "Unclassified"
		}
		values[sector] = values[sector].Add(decimal.NewFromFloat(h.MarketValue))
	}

	out := make([]models.SectorSlice, 0, len(values))
	for sector, v := range values {
		slice := models.SectorSlice{
			Sector: sector,
			Value:  v.InexactFloat64(),
		}
		if totalValue > 0 {
			slice.Pct = slice.Value / totalValue * 100
		}
		out = append(out, slice)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Value > out[j].Value
	})
	return out
}

var _ interfaces.DashboardService = (*Service)(nil)
