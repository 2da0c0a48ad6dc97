package market

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/niveshlab/nivesh/internal/common"
	"github.com/niveshlab/nivesh/internal/interfaces"
	"github.com/niveshlab/nivesh/internal/models"
)

// GetCorporateData returns the corporate record for an isin or symbol,
// refreshing from NSE when the cached record is missing or older than the
// corporate freshness threshold. One fetch attempt, no retries; on failure
// the cached record is served as-is. Corporate actions and board meetings
// are filtered to upcoming entries at read time only.
func (s *Service) GetCorporateData(ctx context.Context, isin, symbol string) (*models.CorporateInfo, error) {
	if isin == "" && symbol == "" {
		return nil, errors.New("isin or symbol is required")
	}

	cached, err := s.lookupCorporate(ctx, isin, symbol)
	if err != nil && !errors.Is(err, interfaces.ErrNotFound) {
		return nil, err
	}

	if cached != nil && common.IsFresh(cached.LastUpdated, common.FreshnessCorporate) {
		return cached.FilterUpcoming(time.Now()), nil
	}

	resolvedISIN, resolvedSymbol, rerr := s.resolveInstrument(ctx, isin, symbol)
	if rerr != nil {
		if cached != nil {
			s.logger.Warn().Err(rerr).Str("isin", isin).Str("symbol", symbol).
				Msg("Instrument resolution failed, serving cached corporate data")
			return cached.FilterUpcoming(time.Now()), nil
		}
		return nil, rerr
	}

	fresh, ferr := s.nse.GetCorporateInfo(ctx, resolvedSymbol)
	if ferr != nil || !fresh.HasData() {
		if cached != nil {
			s.logger.Warn().Err(ferr).Str("symbol", resolvedSymbol).
				Msg("Corporate fetch failed, serving stale cached data")
			return cached.FilterUpcoming(time.Now()), nil
		}
		if ferr != nil {
			return nil, fmt.Errorf("failed to fetch corporate data for %s: %w", resolvedSymbol, ferr)
		}
		return nil, interfaces.ErrNotFound
	}

	fresh.ISIN = resolvedISIN
	fresh.Symbol = resolvedSymbol
	fresh.NormalizeShareholding()
	fresh.LastUpdated = time.Now().UTC()

	if err := s.storage.Corporate().Save(ctx, fresh); err != nil {
		if isQuotaError(err) {
			// Free-tier storage plans reject writes when full. The fetched
			// data is still good, so serve it and move on.
			s.logger.Warn().Err(err).Str("isin", resolvedISIN).
				Msg("Storage quota exceeded saving corporate data, serving unsaved result")
		} else {
			return nil, fmt.Errorf("failed to save corporate data: %w", err)
		}
	}

	return fresh.FilterUpcoming(time.Now()), nil
}

// lookupCorporate reads the cached record by isin first, then symbol.
func (s *Service) lookupCorporate(ctx context.Context, isin, symbol string) (*models.CorporateInfo, error) {
	if isin != "" {
		return s.storage.Corporate().Get(ctx, isin)
	}
	return s.storage.Corporate().GetBySymbol(ctx, symbol)
}

// resolveInstrument fills in whichever of isin/symbol is missing using the
// stockmaster join.
func (s *Service) resolveInstrument(ctx context.Context, isin, symbol string) (string, string, error) {
	if isin != "" && symbol != "" {
		return isin, symbol, nil
	}
	if isin != "" {
		master, err := s.storage.StockMasters().GetByISIN(ctx, isin)
		if err != nil {
			return "", "", fmt.Errorf("unknown isin %s: %w", isin, err)
		}
		if master.Symbol == "" {
			return "", "", fmt.Errorf("isin %s has no trading symbol: %w", isin, interfaces.ErrNotFound)
		}
		return isin, master.Symbol, nil
	}
	master, err := s.storage.StockMasters().GetBySymbol(ctx, symbol)
	if err != nil {
		return "", "", fmt.Errorf("unknown symbol %s: %w", symbol, err)
	}
	return master.ISIN, symbol, nil
}

// isQuotaError recognizes storage quota/limit rejections by message. The
// driver surfaces these as plain query errors, so string matching is all
// there is.
func isQuotaError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "quota") || strings.Contains(msg, "storage limit")
}
