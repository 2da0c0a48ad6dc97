// Package interfaces defines the contracts between nivesh components
package interfaces

import (
	"context"
	"time"

	"github.com/niveshlab/nivesh/internal/models"
)

// NSEClient fetches market and corporate data from the NSE provider.
type NSEClient interface {
	// GetDailyQuote returns the latest trade-day quote for a symbol,
	// including opportunistic PE/industry metadata when the provider
	// supplies it.
	GetDailyQuote(ctx context.Context, symbol string) (*models.DailyQuote, error)

	// GetCorporateInfo returns announcements, corporate actions, board
	// meetings, financial results and shareholding patterns for a symbol.
	GetCorporateInfo(ctx context.Context, symbol string) (*models.CorporateInfo, error)

	// GetHistorical returns daily OHLCV bars for a symbol in the given
	// date range, most recent first.
	GetHistorical(ctx context.Context, symbol string, from, to time.Time) ([]models.OHLCBar, error)
}
