// Package surrealdb implements the storage interfaces over SurrealDB.
package surrealdb

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"

	"github.com/niveshlab/nivesh/internal/common"
	"github.com/niveshlab/nivesh/internal/interfaces"
)

// Manager implements interfaces.StorageManager using SurrealDB.
type Manager struct {
	db     *surrealdb.DB
	logger *common.Logger

	holdingStore     *HoldingStore
	stockMasterStore *StockMasterStore
	stockDataStore   *StockDataStore
	corporateStore   *CorporateStore
	realizedStore    *RealizedStore
	systemStore      *SystemStore
}

// NewManager creates a new StorageManager connected to SurrealDB.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	ctx := context.Background()

	db, err := surrealdb.New(config.Storage.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SurrealDB: %w", err)
	}

	if _, err := db.SignIn(ctx, map[string]interface{}{
		"user": config.Storage.Username,
		"pass": config.Storage.Password,
	}); err != nil {
		return nil, fmt.Errorf("failed to sign in to SurrealDB: %w", err)
	}

	if err := db.Use(ctx, config.Storage.Namespace, config.Storage.Database); err != nil {
		return nil, fmt.Errorf("failed to select namespace/database: %w", err)
	}

	// Define tables up front (SurrealDB v3 errors on querying non-existent tables)
	tables := []string{"holdings", "stockmasters", "stockdata", "corporateinfo", "realizedprofitloss", "system_kv"}
	for _, table := range tables {
		sql := fmt.Sprintf("DEFINE TABLE IF NOT EXISTS %s SCHEMALESS", table)
		if _, err := surrealdb.Query[any](ctx, db, sql, nil); err != nil {
			return nil, fmt.Errorf("failed to define table %s: %w", table, err)
		}
	}

	m := &Manager{
		db:     db,
		logger: logger,
	}

	m.holdingStore = NewHoldingStore(db, logger)
	m.stockMasterStore = NewStockMasterStore(db, logger)
	m.stockDataStore = NewStockDataStore(db, logger)
	m.corporateStore = NewCorporateStore(db, logger)
	m.realizedStore = NewRealizedStore(db, logger)
	m.systemStore = NewSystemStore(db, logger)

	if err := m.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info().
		Str("address", config.Storage.Address).
		Str("namespace", config.Storage.Namespace).
		Str("database", config.Storage.Database).
		Msg("SurrealDB storage manager initialized")

	return m, nil
}

func (m *Manager) Holdings() interfaces.HoldingStore {
	return m.holdingStore
}

func (m *Manager) StockMasters() interfaces.StockMasterStore {
	return m.stockMasterStore
}

func (m *Manager) StockData() interfaces.StockDataStore {
	return m.stockDataStore
}

func (m *Manager) Corporate() interfaces.CorporateStore {
	return m.corporateStore
}

func (m *Manager) Realized() interfaces.RealizedStore {
	return m.realizedStore
}

func (m *Manager) System() interfaces.SystemStore {
	return m.systemStore
}

func (m *Manager) Close() error {
	m.db.Close(context.Background())
	return nil
}

// Compile-time check
var _ interfaces.StorageManager = (*Manager)(nil)
