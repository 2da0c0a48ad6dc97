package market

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/niveshlab/nivesh/internal/interfaces"
	"github.com/niveshlab/nivesh/internal/models"
)

// GetOHLC returns stored bars for an isin sorted ascending by date. Open
// date bounds default to the distant past / today. An empty series is a
// valid result.
func (s *Service) GetOHLC(ctx context.Context, isin string, from, to time.Time) ([]models.OHLCBar, error) {
	if isin == "" {
		return nil, errors.New("isin is required")
	}

	if from.IsZero() {
		from = time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	if to.IsZero() {
		to = time.Now()
	}

	bars, err := s.storage.StockData().GetRange(ctx, isin, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to read OHLC range: %w", err)
	}
	return bars, nil
}

// LatestStockDate returns the most recent stored trading date across all
// instruments.
func (s *Service) LatestStockDate(ctx context.Context) (time.Time, error) {
	latest, err := s.storage.StockData().LatestDate(ctx)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return time.Time{}, interfaces.ErrNotFound
		}
		return time.Time{}, fmt.Errorf("failed to read latest stock date: %w", err)
	}
	return latest, nil
}
