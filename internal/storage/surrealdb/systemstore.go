package surrealdb

import (
	"context"
	"fmt"
	"time"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/niveshlab/nivesh/internal/common"
	"github.com/niveshlab/nivesh/internal/interfaces"
)

// systemKV is the stored shape of one system setting.
type systemKV struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SystemStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewSystemStore(db *surrealdb.DB, logger *common.Logger) *SystemStore {
	return &SystemStore{
		db:     db,
		logger: logger,
	}
}

func (s *SystemStore) GetSystemKV(ctx context.Context, key string) (string, error) {
	kv, err := surrealdb.Select[systemKV](ctx, s.db, surrealmodels.NewRecordID("system_kv", key))
	if err != nil {
		return "", fmt.Errorf("failed to select system KV: %w", err)
	}
	if kv == nil || kv.Key == "" {
		return "", interfaces.ErrNotFound
	}
	return kv.Value, nil
}

func (s *SystemStore) SetSystemKV(ctx context.Context, key, value string) error {
	kv := systemKV{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}

	sql := "UPSERT $rid CONTENT $data"
	vars := map[string]any{
		"rid":  surrealmodels.NewRecordID("system_kv", key),
		"data": kv,
	}

	if _, err := surrealdb.Query[[]systemKV](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to set system KV: %w", err)
	}
	return nil
}

var _ interfaces.SystemStore = (*SystemStore)(nil)
