package surrealdb

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/niveshlab/nivesh/internal/common"
	"github.com/niveshlab/nivesh/internal/interfaces"
	"github.com/niveshlab/nivesh/internal/models"
)

type RealizedStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewRealizedStore(db *surrealdb.DB, logger *common.Logger) *RealizedStore {
	return &RealizedStore{
		db:     db,
		logger: logger,
	}
}

func (s *RealizedStore) GetByClient(ctx context.Context, clientID string) ([]*models.RealizedProfitLoss, error) {
	sql := "SELECT * FROM realizedprofitloss WHERE client_id = $client_id ORDER BY sell_date DESC"
	vars := map[string]any{"client_id": clientID}

	results, err := surrealdb.Query[[]models.RealizedProfitLoss](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to get realized records: %w", err)
	}

	var records []*models.RealizedProfitLoss
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			records = append(records, &(*results)[0].Result[i])
		}
	}
	return records, nil
}

func (s *RealizedStore) Save(ctx context.Context, r *models.RealizedProfitLoss) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}

	sql := "UPSERT $rid CONTENT $data"
	vars := map[string]any{
		"rid":  surrealmodels.NewRecordID("realizedprofitloss", r.ID),
		"data": r,
	}

	if _, err := surrealdb.Query[[]models.RealizedProfitLoss](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to save realized record: %w", err)
	}
	return nil
}

var _ interfaces.RealizedStore = (*RealizedStore)(nil)
