package surrealdb

import (
	"context"
	"fmt"
	"time"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/niveshlab/nivesh/internal/common"
	"github.com/niveshlab/nivesh/internal/interfaces"
	"github.com/niveshlab/nivesh/internal/models"
)

type StockDataStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewStockDataStore(db *surrealdb.DB, logger *common.Logger) *StockDataStore {
	return &StockDataStore{
		db:     db,
		logger: logger,
	}
}

// Bar ID format: stockdata:<isin>_<yyyymmdd>. One record per trading day
// makes re-collection idempotent.
func barID(isin string, date time.Time) string {
	return isin + "_" + date.Format("20060102")
}

func (s *StockDataStore) GetRange(ctx context.Context, isin string, from, to time.Time) ([]models.OHLCBar, error) {
	sql := "SELECT * FROM stockdata WHERE isin = $isin AND date >= $from AND date <= $to ORDER BY date ASC"
	vars := map[string]any{
		"isin": isin,
		"from": from,
		"to":   to,
	}

	results, err := surrealdb.Query[[]models.OHLCBar](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to get OHLC range: %w", err)
	}

	// An empty series is a valid result; callers receive [] not nil.
	bars := []models.OHLCBar{}
	if results != nil && len(*results) > 0 {
		bars = append(bars, (*results)[0].Result...)
	}
	return bars, nil
}

func (s *StockDataStore) SaveBars(ctx context.Context, bars []models.OHLCBar) error {
	sql := "UPSERT $rid CONTENT $data"

	for i := range bars {
		bar := &bars[i]
		vars := map[string]any{
			"rid":  surrealmodels.NewRecordID("stockdata", barID(bar.ISIN, bar.Date)),
			"data": bar,
		}

		if _, err := surrealdb.Query[[]models.OHLCBar](ctx, s.db, sql, vars); err != nil {
			return fmt.Errorf("failed to save bar %s %s: %w", bar.ISIN, bar.Date.Format("2006-01-02"), err)
		}
	}
	return nil
}

func (s *StockDataStore) LatestDate(ctx context.Context) (time.Time, error) {
	sql := "SELECT date FROM stockdata ORDER BY date DESC LIMIT 1"

	type dateResult struct {
		Date time.Time `json:"date"`
	}

	results, err := surrealdb.Query[[]dateResult](ctx, s.db, sql, nil)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get latest stock date: %w", err)
	}
	if results != nil && len(*results) > 0 && len((*results)[0].Result) > 0 {
		return (*results)[0].Result[0].Date, nil
	}
	return time.Time{}, interfaces.ErrNotFound
}

var _ interfaces.StockDataStore = (*StockDataStore)(nil)
