package interfaces

import (
	"context"
	"errors"
	"time"

	"github.com/niveshlab/nivesh/internal/models"
)

// ErrNotFound is returned by stores when a record does not exist.
var ErrNotFound = errors.New("record not found")

// HoldingStore persists client positions, one record per (client_id, isin).
type HoldingStore interface {
	GetHoldings(ctx context.Context, clientID string) ([]*models.Holding, error)
	GetHolding(ctx context.Context, clientID, isin string) (*models.Holding, error)
	SaveHolding(ctx context.Context, h *models.Holding) error
	DeleteHoldings(ctx context.Context, clientID string) (int, error)
}

// StockMasterStore persists per-isin instrument records.
type StockMasterStore interface {
	GetByISIN(ctx context.Context, isin string) (*models.StockMaster, error)
	GetBySymbol(ctx context.Context, symbol string) (*models.StockMaster, error)
	Save(ctx context.Context, m *models.StockMaster) error
	// MergeFields applies a field-level update to an existing record
	// without overwriting the whole document.
	MergeFields(ctx context.Context, isin string, update *models.StockMasterUpdate) error
}

// StockDataStore persists the OHLCV time series, one record per (isin, date).
type StockDataStore interface {
	GetRange(ctx context.Context, isin string, from, to time.Time) ([]models.OHLCBar, error)
	SaveBars(ctx context.Context, bars []models.OHLCBar) error
	LatestDate(ctx context.Context) (time.Time, error)
}

// CorporateStore persists corporate disclosure records, one per isin.
type CorporateStore interface {
	Get(ctx context.Context, isin string) (*models.CorporateInfo, error)
	GetBySymbol(ctx context.Context, symbol string) (*models.CorporateInfo, error)
	Save(ctx context.Context, info *models.CorporateInfo) error
}

// RealizedStore reads closed-position events for dashboard aggregation.
type RealizedStore interface {
	GetByClient(ctx context.Context, clientID string) ([]*models.RealizedProfitLoss, error)
	Save(ctx context.Context, r *models.RealizedProfitLoss) error
}

// SystemStore is a small KV area for schema version and runtime settings.
type SystemStore interface {
	GetSystemKV(ctx context.Context, key string) (string, error)
	SetSystemKV(ctx context.Context, key, value string) error
}

// StorageManager provides access to all stores over one shared connection.
type StorageManager interface {
	Holdings() HoldingStore
	StockMasters() StockMasterStore
	StockData() StockDataStore
	Corporate() CorporateStore
	Realized() RealizedStore
	System() SystemStore
	Close() error
}
