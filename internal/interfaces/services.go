package interfaces

import (
	"context"
	"time"

	"github.com/niveshlab/nivesh/internal/models"
)

// MarketService is the refresh/reconciliation pipeline over the NSE client
// and the document store.
type MarketService interface {
	// GetCorporateData returns corporate data for an isin or symbol,
	// refreshing from the provider when the cached record is absent or
	// older than the corporate freshness threshold. Fetch and quota
	// failures fall back to the cached record.
	GetCorporateData(ctx context.Context, isin, symbol string) (*models.CorporateInfo, error)

	// EnrichHoldings runs the PE/industry enrichment batch over a
	// client's current holdings. The batch always completes; the result
	// carries processed/failed counts and truncated samples.
	EnrichHoldings(ctx context.Context, clientID string) (*models.EnrichmentResult, error)

	// GetOHLC returns the stored series for an isin sorted ascending by
	// date. Zero rows is a valid empty result, not an error.
	GetOHLC(ctx context.Context, isin string, from, to time.Time) ([]models.OHLCBar, error)

	// LatestStockDate returns the most recent stored trading date across
	// all instruments.
	LatestStockDate(ctx context.Context) (time.Time, error)

	// CollectDailySeries fetches and upserts recent OHLCV bars for every
	// instrument held by the client.
	CollectDailySeries(ctx context.Context, clientID string) error

	// RenderPriceChart renders a PNG closing-price chart from the stored
	// series for an isin and optional date range.
	RenderPriceChart(ctx context.Context, isin string, from, to time.Time) ([]byte, error)
}

// DashboardService computes the per-request portfolio summary.
type DashboardService interface {
	BuildSummary(ctx context.Context, clientID string) (*models.DashboardSummary, error)
}
