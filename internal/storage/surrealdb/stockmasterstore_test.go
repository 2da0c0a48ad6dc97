package surrealdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niveshlab/nivesh/internal/interfaces"
	"github.com/niveshlab/nivesh/internal/models"
)

func newTestStockMaster(isin, symbol string) *models.StockMaster {
	return &models.StockMaster{
		ISIN:        isin,
		Symbol:      symbol,
		Exchange:    "NSE",
		CompanyName: symbol + " Ltd",
		Sector:      "Information Technology",
		LastUpdated: time.Now().Truncate(time.Second),
	}
}

func TestSaveAndGetStockMaster(t *testing.T) {
	db := testDB(t)
	store := NewStockMasterStore(db, testLogger())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, newTestStockMaster("INE009A01021", "INFY")))

	got, err := store.GetByISIN(ctx, "INE009A01021")
	require.NoError(t, err)
	assert.Equal(t, "INFY", got.Symbol)
	assert.Equal(t, "NSE", got.Exchange)

	bySymbol, err := store.GetBySymbol(ctx, "INFY")
	require.NoError(t, err)
	assert.Equal(t, "INE009A01021", bySymbol.ISIN)
}

func TestGetStockMasterNotFound(t *testing.T) {
	db := testDB(t)
	store := NewStockMasterStore(db, testLogger())
	ctx := context.Background()

	_, err := store.GetByISIN(ctx, "INE000000000")
	assert.ErrorIs(t, err, interfaces.ErrNotFound)

	_, err = store.GetBySymbol(ctx, "NOSUCH")
	assert.ErrorIs(t, err, interfaces.ErrNotFound)
}

func TestMergeFieldsPartialUpdate(t *testing.T) {
	db := testDB(t)
	store := NewStockMasterStore(db, testLogger())
	ctx := context.Background()

	m := newTestStockMaster("INE009A01021", "INFY")
	m.Industry = "Computers - Software"
	m.SectorPE = 28.5
	require.NoError(t, store.Save(ctx, m))

	pe := 23.45
	require.NoError(t, store.MergeFields(ctx, "INE009A01021", &models.StockMasterUpdate{PE: &pe}))

	got, err := store.GetByISIN(ctx, "INE009A01021")
	require.NoError(t, err)
	assert.Equal(t, 23.45, got.PE)
	// fields not in the update stay intact
	assert.Equal(t, "Computers - Software", got.Industry)
	assert.Equal(t, 28.5, got.SectorPE)
	assert.False(t, got.LastEnrichedAt.IsZero())
}

func TestMergeFieldsEmptyUpdateIsNoop(t *testing.T) {
	db := testDB(t)
	store := NewStockMasterStore(db, testLogger())
	ctx := context.Background()

	m := newTestStockMaster("INE467B01029", "TCS")
	require.NoError(t, store.Save(ctx, m))

	require.NoError(t, store.MergeFields(ctx, "INE467B01029", &models.StockMasterUpdate{}))

	got, err := store.GetByISIN(ctx, "INE467B01029")
	require.NoError(t, err)
	assert.True(t, got.LastEnrichedAt.IsZero())
}
