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

type HoldingStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewHoldingStore(db *surrealdb.DB, logger *common.Logger) *HoldingStore {
	return &HoldingStore{
		db:     db,
		logger: logger,
	}
}

// Holding ID format: holdings:<clientID>_<isin>
func holdingID(clientID, isin string) string {
	return clientID + "_" + isin
}

func (s *HoldingStore) GetHoldings(ctx context.Context, clientID string) ([]*models.Holding, error) {
	sql := "SELECT * FROM holdings WHERE client_id = $client_id ORDER BY market_value DESC"
	vars := map[string]any{"client_id": clientID}

	results, err := surrealdb.Query[[]models.Holding](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to get holdings: %w", err)
	}

	var holdings []*models.Holding
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			holdings = append(holdings, &(*results)[0].Result[i])
		}
	}
	return holdings, nil
}

func (s *HoldingStore) GetHolding(ctx context.Context, clientID, isin string) (*models.Holding, error) {
	h, err := surrealdb.Select[models.Holding](ctx, s.db, surrealmodels.NewRecordID("holdings", holdingID(clientID, isin)))
	if err != nil {
		return nil, fmt.Errorf("failed to select holding: %w", err)
	}
	if h == nil || h.ISIN == "" {
		return nil, interfaces.ErrNotFound
	}
	return h, nil
}

func (s *HoldingStore) SaveHolding(ctx context.Context, h *models.Holding) error {
	sql := "UPSERT $rid CONTENT $data"
	vars := map[string]any{
		"rid":  surrealmodels.NewRecordID("holdings", holdingID(h.ClientID, h.ISIN)),
		"data": h,
	}

	if _, err := surrealdb.Query[[]models.Holding](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to save holding: %w", err)
	}
	return nil
}

func (s *HoldingStore) DeleteHoldings(ctx context.Context, clientID string) (int, error) {
	sql := "DELETE holdings WHERE client_id = $client_id RETURN BEFORE"
	vars := map[string]any{"client_id": clientID}

	results, err := surrealdb.Query[[]models.Holding](ctx, s.db, sql, vars)
	if err != nil {
		return 0, fmt.Errorf("failed to delete holdings: %w", err)
	}
	if results != nil && len(*results) > 0 {
		return len((*results)[0].Result), nil
	}
	return 0, nil
}

var _ interfaces.HoldingStore = (*HoldingStore)(nil)
