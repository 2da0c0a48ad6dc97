package surrealdb

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/niveshlab/nivesh/internal/common"
	"github.com/niveshlab/nivesh/internal/interfaces"
	"github.com/niveshlab/nivesh/internal/models"
)

type CorporateStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewCorporateStore(db *surrealdb.DB, logger *common.Logger) *CorporateStore {
	return &CorporateStore{
		db:     db,
		logger: logger,
	}
}

func (s *CorporateStore) Get(ctx context.Context, isin string) (*models.CorporateInfo, error) {
	info, err := surrealdb.Select[models.CorporateInfo](ctx, s.db, surrealmodels.NewRecordID("corporateinfo", isin))
	if err != nil {
		return nil, fmt.Errorf("failed to select corporate info: %w", err)
	}
	if info == nil || info.ISIN == "" {
		return nil, interfaces.ErrNotFound
	}
	return info, nil
}

func (s *CorporateStore) GetBySymbol(ctx context.Context, symbol string) (*models.CorporateInfo, error) {
	sql := "SELECT * FROM corporateinfo WHERE symbol = $symbol LIMIT 1"
	vars := map[string]any{"symbol": symbol}

	results, err := surrealdb.Query[[]models.CorporateInfo](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to query corporate info by symbol: %w", err)
	}
	if results != nil && len(*results) > 0 && len((*results)[0].Result) > 0 {
		return &(*results)[0].Result[0], nil
	}
	return nil, interfaces.ErrNotFound
}

func (s *CorporateStore) Save(ctx context.Context, info *models.CorporateInfo) error {
	sql := "UPSERT $rid CONTENT $data"
	vars := map[string]any{
		"rid":  surrealmodels.NewRecordID("corporateinfo", info.ISIN),
		"data": info,
	}

	if _, err := surrealdb.Query[[]models.CorporateInfo](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to save corporate info: %w", err)
	}
	return nil
}

var _ interfaces.CorporateStore = (*CorporateStore)(nil)
