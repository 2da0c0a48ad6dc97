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

type StockMasterStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewStockMasterStore(db *surrealdb.DB, logger *common.Logger) *StockMasterStore {
	return &StockMasterStore{
		db:     db,
		logger: logger,
	}
}

func (s *StockMasterStore) GetByISIN(ctx context.Context, isin string) (*models.StockMaster, error) {
	m, err := surrealdb.Select[models.StockMaster](ctx, s.db, surrealmodels.NewRecordID("stockmasters", isin))
	if err != nil {
		return nil, fmt.Errorf("failed to select stock master: %w", err)
	}
	if m == nil || m.ISIN == "" {
		return nil, interfaces.ErrNotFound
	}
	return m, nil
}

func (s *StockMasterStore) GetBySymbol(ctx context.Context, symbol string) (*models.StockMaster, error) {
	sql := "SELECT * FROM stockmasters WHERE symbol = $symbol LIMIT 1"
	vars := map[string]any{"symbol": symbol}

	results, err := surrealdb.Query[[]models.StockMaster](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock master by symbol: %w", err)
	}
	if results != nil && len(*results) > 0 && len((*results)[0].Result) > 0 {
		return &(*results)[0].Result[0], nil
	}
	return nil, interfaces.ErrNotFound
}

func (s *StockMasterStore) Save(ctx context.Context, m *models.StockMaster) error {
	sql := "UPSERT $rid CONTENT $data"
	vars := map[string]any{
		"rid":  surrealmodels.NewRecordID("stockmasters", m.ISIN),
		"data": m,
	}

	if _, err := surrealdb.Query[[]models.StockMaster](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to save stock master: %w", err)
	}
	return nil
}

// MergeFields applies only the fields present in the update, leaving the
// rest of the document untouched. Used by enrichment so a partial provider
// response never blanks previously collected fields.
func (s *StockMasterStore) MergeFields(ctx context.Context, isin string, update *models.StockMasterUpdate) error {
	if update == nil || update.IsEmpty() {
		return nil
	}

	fields := map[string]any{
		"last_enriched_at": time.Now().UTC(),
	}
	if update.PE != nil {
		fields["pe"] = *update.PE
	}
	if update.SectorPE != nil {
		fields["sector_pe"] = *update.SectorPE
	}
	if update.SectorIndex != nil {
		fields["sector_index"] = *update.SectorIndex
	}
	if update.Industry != nil {
		fields["industry"] = *update.Industry
	}
	if update.FnOEligible != nil {
		fields["fno_eligible"] = *update.FnOEligible
	}

	sql := "UPDATE $rid MERGE $fields"
	vars := map[string]any{
		"rid":    surrealmodels.NewRecordID("stockmasters", isin),
		"fields": fields,
	}

	if _, err := surrealdb.Query[[]models.StockMaster](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to merge stock master fields: %w", err)
	}
	return nil
}

var _ interfaces.StockMasterStore = (*StockMasterStore)(nil)
