package market

import (
	"context"
	"time"

	"github.com/niveshlab/nivesh/internal/common"
	"github.com/niveshlab/nivesh/internal/interfaces"
	"github.com/niveshlab/nivesh/internal/models"
)

// --- Mock NSE Client ---

type mockNSEClient struct {
	quotes        map[string]*models.DailyQuote
	quoteErr      error
	corporate     *models.CorporateInfo
	corporateErr  error
	historical    []models.OHLCBar
	historicalErr error

	quoteCalls     int
	corporateCalls int
}

func (m *mockNSEClient) GetDailyQuote(_ context.Context, symbol string) (*models.DailyQuote, error) {
	m.quoteCalls++
	if m.quoteErr != nil {
		return nil, m.quoteErr
	}
	if q, ok := m.quotes[symbol]; ok {
		return q, nil
	}
	return &models.DailyQuote{Symbol: symbol}, nil
}

func (m *mockNSEClient) GetCorporateInfo(_ context.Context, _ string) (*models.CorporateInfo, error) {
	m.corporateCalls++
	if m.corporateErr != nil {
		return nil, m.corporateErr
	}
	return m.corporate, nil
}

func (m *mockNSEClient) GetHistorical(_ context.Context, _ string, _, _ time.Time) ([]models.OHLCBar, error) {
	if m.historicalErr != nil {
		return nil, m.historicalErr
	}
	return m.historical, nil
}

// --- Mock Storage ---

type mockStorageManager struct {
	holdings     *mockHoldingStore
	stockMasters *mockStockMasterStore
	stockData    *mockStockDataStore
	corporate    *mockCorporateStore
	realized     *mockRealizedStore
}

func newMockStorage() *mockStorageManager {
	return &mockStorageManager{
		holdings:     &mockHoldingStore{},
		stockMasters: &mockStockMasterStore{masters: map[string]*models.StockMaster{}},
		stockData:    &mockStockDataStore{},
		corporate:    &mockCorporateStore{records: map[string]*models.CorporateInfo{}},
		realized:     &mockRealizedStore{},
	}
}

func (m *mockStorageManager) Holdings() interfaces.HoldingStore         { return m.holdings }
func (m *mockStorageManager) StockMasters() interfaces.StockMasterStore { return m.stockMasters }
func (m *mockStorageManager) StockData() interfaces.StockDataStore      { return m.stockData }
func (m *mockStorageManager) Corporate() interfaces.CorporateStore      { return m.corporate }
func (m *mockStorageManager) Realized() interfaces.RealizedStore        { return m.realized }
func (m *mockStorageManager) System() interfaces.SystemStore            { return nil }
func (m *mockStorageManager) Close() error                              { return nil }

type mockHoldingStore struct {
	holdings []*models.Holding
	err      error
}

func (m *mockHoldingStore) GetHoldings(_ context.Context, _ string) ([]*models.Holding, error) {
	return m.holdings, m.err
}

func (m *mockHoldingStore) GetHolding(_ context.Context, _, isin string) (*models.Holding, error) {
	for _, h := range m.holdings {
		if h.ISIN == isin {
			return h, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (m *mockHoldingStore) SaveHolding(_ context.Context, h *models.Holding) error {
	m.holdings = append(m.holdings, h)
	return nil
}

func (m *mockHoldingStore) DeleteHoldings(_ context.Context, _ string) (int, error) {
	n := len(m.holdings)
	m.holdings = nil
	return n, nil
}

type mockStockMasterStore struct {
	masters  map[string]*models.StockMaster
	merged   map[string]*models.StockMasterUpdate
	mergeErr error
}

func (m *mockStockMasterStore) GetByISIN(_ context.Context, isin string) (*models.StockMaster, error) {
	if sm, ok := m.masters[isin]; ok {
		return sm, nil
	}
	return nil, interfaces.ErrNotFound
}

func (m *mockStockMasterStore) GetBySymbol(_ context.Context, symbol string) (*models.StockMaster, error) {
	for _, sm := range m.masters {
		if sm.Symbol == symbol {
			return sm, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (m *mockStockMasterStore) Save(_ context.Context, sm *models.StockMaster) error {
	m.masters[sm.ISIN] = sm
	return nil
}

func (m *mockStockMasterStore) MergeFields(_ context.Context, isin string, update *models.StockMasterUpdate) error {
	if m.mergeErr != nil {
		return m.mergeErr
	}
	if m.merged == nil {
		m.merged = map[string]*models.StockMasterUpdate{}
	}
	m.merged[isin] = update
	return nil
}

type mockStockDataStore struct {
	bars      []models.OHLCBar
	rangeErr  error
	saveErr   error
	latest    time.Time
	latestErr error
	saved     []models.OHLCBar
}

func (m *mockStockDataStore) GetRange(_ context.Context, isin string, from, to time.Time) ([]models.OHLCBar, error) {
	if m.rangeErr != nil {
		return nil, m.rangeErr
	}
	out := []models.OHLCBar{}
	for _, b := range m.bars {
		if b.ISIN == isin && !b.Date.Before(from) && !b.Date.After(to) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *mockStockDataStore) SaveBars(_ context.Context, bars []models.OHLCBar) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, bars...)
	return nil
}

func (m *mockStockDataStore) LatestDate(_ context.Context) (time.Time, error) {
	if m.latestErr != nil {
		return time.Time{}, m.latestErr
	}
	return m.latest, nil
}

type mockCorporateStore struct {
	records map[string]*models.CorporateInfo
	saveErr error
	saved   []*models.CorporateInfo
}

func (m *mockCorporateStore) Get(_ context.Context, isin string) (*models.CorporateInfo, error) {
	if r, ok := m.records[isin]; ok {
		return r, nil
	}
	return nil, interfaces.ErrNotFound
}

func (m *mockCorporateStore) GetBySymbol(_ context.Context, symbol string) (*models.CorporateInfo, error) {
	for _, r := range m.records {
		if r.Symbol == symbol {
			return r, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (m *mockCorporateStore) Save(_ context.Context, info *models.CorporateInfo) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.records[info.ISIN] = info
	m.saved = append(m.saved, info)
	return nil
}

type mockRealizedStore struct {
	records []*models.RealizedProfitLoss
}

func (m *mockRealizedStore) GetByClient(_ context.Context, _ string) ([]*models.RealizedProfitLoss, error) {
	return m.records, nil
}

func (m *mockRealizedStore) Save(_ context.Context, r *models.RealizedProfitLoss) error {
	m.records = append(m.records, r)
	return nil
}

// newTestService wires a service over mocks with a near-zero batch delay.
func newTestService(storage *mockStorageManager, nse *mockNSEClient) *Service {
	s := NewService(storage, nse, common.NewSilentLogger())
	s.enrichDelay = time.Millisecond
	return s
}
