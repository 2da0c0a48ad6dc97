package market

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niveshlab/nivesh/internal/models"
)

func holdingFor(isin, symbol string) *models.Holding {
	return &models.Holding{ClientID: "C123", ISIN: isin, Symbol: symbol, Name: symbol + " Ltd", Quantity: 10}
}

func floatPtr(f float64) *float64 { return &f }
func strPtr(s string) *string     { return &s }

func TestEnrichHoldings_MergesOnlyPresentFields(t *testing.T) {
	storage := newMockStorage()
	storage.holdings.holdings = []*models.Holding{holdingFor("INE009A01021", "INFY")}
	storage.stockMasters.masters["INE009A01021"] = &models.StockMaster{ISIN: "INE009A01021", Symbol: "INFY", Exchange: "NSE"}

	nse := &mockNSEClient{
		quotes: map[string]*models.DailyQuote{
			"INFY": {Symbol: "INFY", PE: floatPtr(23.45), Industry: strPtr("Computers - Software")},
		},
	}

	svc := newTestService(storage, nse)
	result, err := svc.EnrichHoldings(context.Background(), "C123")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Total)
	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 0, result.Failed)

	update := storage.stockMasters.merged["INE009A01021"]
	require.NotNil(t, update)
	assert.Equal(t, 23.45, *update.PE)
	assert.Equal(t, "Computers - Software", *update.Industry)
	assert.Nil(t, update.SectorPE)
	assert.Nil(t, update.FnOEligible)
}

func TestEnrichHoldings_SymbolLessCountedAsFailed(t *testing.T) {
	storage := newMockStorage()
	storage.holdings.holdings = []*models.Holding{
		holdingFor("INE009A01021", "INFY"),
		holdingFor("INE111111111", ""), // no stockmaster at all
		holdingFor("INE222222222", ""), // stockmaster without symbol
		holdingFor("INE333333333", "BSESTOCK"),
	}
	storage.stockMasters.masters["INE009A01021"] = &models.StockMaster{ISIN: "INE009A01021", Symbol: "INFY", Exchange: "NSE"}
	storage.stockMasters.masters["INE222222222"] = &models.StockMaster{ISIN: "INE222222222", Exchange: "NSE"}
	storage.stockMasters.masters["INE333333333"] = &models.StockMaster{ISIN: "INE333333333", Symbol: "BSESTOCK", Exchange: "BSE"}

	nse := &mockNSEClient{
		quotes: map[string]*models.DailyQuote{
			"INFY": {Symbol: "INFY", PE: floatPtr(23.45)},
		},
	}

	svc := newTestService(storage, nse)
	result, err := svc.EnrichHoldings(context.Background(), "C123")
	require.NoError(t, err)

	assert.Equal(t, 4, result.Total)
	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 3, result.Failed)
	// only the eligible NSE symbol reached the provider
	assert.Equal(t, 1, nse.quoteCalls)
	assert.GreaterOrEqual(t, result.Failed, 2) // at least the symbol-less ones
	assert.LessOrEqual(t, result.Processed+result.Failed, result.Total)
	assert.Len(t, result.Errors, 3)
}

func TestEnrichHoldings_FetchFailureDoesNotStopBatch(t *testing.T) {
	storage := newMockStorage()
	storage.holdings.holdings = []*models.Holding{
		holdingFor("INE009A01021", "INFY"),
		holdingFor("INE467B01029", "TCS"),
	}
	storage.stockMasters.masters["INE009A01021"] = &models.StockMaster{ISIN: "INE009A01021", Symbol: "INFY", Exchange: "NSE"}
	storage.stockMasters.masters["INE467B01029"] = &models.StockMaster{ISIN: "INE467B01029", Symbol: "TCS", Exchange: "NSE"}

	nse := &mockNSEClient{quoteErr: errors.New("upstream down")}

	svc := newTestService(storage, nse)
	result, err := svc.EnrichHoldings(context.Background(), "C123")
	require.NoError(t, err)

	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 0, result.Processed)
	assert.Equal(t, 2, result.Failed)
	assert.Equal(t, 2, nse.quoteCalls)
}

func TestEnrichHoldings_EmptyQuoteCountsProcessed(t *testing.T) {
	storage := newMockStorage()
	storage.holdings.holdings = []*models.Holding{holdingFor("INE009A01021", "INFY")}
	storage.stockMasters.masters["INE009A01021"] = &models.StockMaster{ISIN: "INE009A01021", Symbol: "INFY", Exchange: "NSE"}

	nse := &mockNSEClient{
		quotes: map[string]*models.DailyQuote{"INFY": {Symbol: "INFY"}},
	}

	svc := newTestService(storage, nse)
	result, err := svc.EnrichHoldings(context.Background(), "C123")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Processed)
	assert.Empty(t, storage.stockMasters.merged)
}

func TestEnrichHoldings_EmptyPortfolio(t *testing.T) {
	svc := newTestService(newMockStorage(), &mockNSEClient{})
	result, err := svc.EnrichHoldings(context.Background(), "C123")
	require.NoError(t, err)

	assert.Equal(t, 0, result.Total)
	assert.Equal(t, 0, result.Processed)
	assert.Equal(t, 0, result.Failed)
}

func TestEnrichHoldings_ErrorSamplesTruncated(t *testing.T) {
	storage := newMockStorage()
	for i := 0; i < 25; i++ {
		storage.holdings.holdings = append(storage.holdings.holdings, holdingFor("INE0000000"+string(rune('A'+i)), ""))
	}

	svc := newTestService(storage, &mockNSEClient{})
	result, err := svc.EnrichHoldings(context.Background(), "C123")
	require.NoError(t, err)

	assert.Equal(t, 25, result.Failed)
	assert.Len(t, result.Errors, maxEnrichSamples)
}
