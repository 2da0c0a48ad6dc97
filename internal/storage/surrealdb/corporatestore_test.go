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

func newTestCorporateInfo(isin, symbol string) *models.CorporateInfo {
	return &models.CorporateInfo{
		ISIN:   isin,
		Symbol: symbol,
		Announcements: []models.Announcement{
			{Subject: "Analyst Meet", Date: time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)},
		},
		CorporateActions: []models.CorporateAction{
			{Subject: "Interim Dividend", ExDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)},
		},
		ShareholdingPatterns: []models.ShareholdingPattern{
			{Period: "30-Jun-2026", Promoter: 14.61, Public: 85.27, EmployeeTrusts: 0.12, Total: 100.0},
		},
		LastUpdated: time.Now().Truncate(time.Second),
	}
}

func TestSaveAndGetCorporateInfo(t *testing.T) {
	db := testDB(t)
	store := NewCorporateStore(db, testLogger())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, newTestCorporateInfo("INE009A01021", "INFY")))

	got, err := store.Get(ctx, "INE009A01021")
	require.NoError(t, err)
	assert.Equal(t, "INFY", got.Symbol)
	require.Len(t, got.CorporateActions, 1)
	assert.Equal(t, "Interim Dividend", got.CorporateActions[0].Subject)
	require.Len(t, got.ShareholdingPatterns, 1)
	assert.Equal(t, 100.0, got.ShareholdingPatterns[0].Total)
}

func TestGetCorporateInfoBySymbol(t *testing.T) {
	db := testDB(t)
	store := NewCorporateStore(db, testLogger())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, newTestCorporateInfo("INE467B01029", "TCS")))

	got, err := store.GetBySymbol(ctx, "TCS")
	require.NoError(t, err)
	assert.Equal(t, "INE467B01029", got.ISIN)
}

func TestGetCorporateInfoNotFound(t *testing.T) {
	db := testDB(t)
	store := NewCorporateStore(db, testLogger())
	ctx := context.Background()

	_, err := store.Get(ctx, "INE000000000")
	assert.ErrorIs(t, err, interfaces.ErrNotFound)
}

func TestSaveCorporateInfoOverwrites(t *testing.T) {
	db := testDB(t)
	store := NewCorporateStore(db, testLogger())
	ctx := context.Background()

	info := newTestCorporateInfo("INE009A01021", "INFY")
	require.NoError(t, store.Save(ctx, info))

	info.Announcements = append(info.Announcements, models.Announcement{
		Subject: "Record Date Intimation",
		Date:    time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, store.Save(ctx, info))

	got, err := store.Get(ctx, "INE009A01021")
	require.NoError(t, err)
	assert.Len(t, got.Announcements, 2)
}
