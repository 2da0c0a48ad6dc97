package market

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/niveshlab/nivesh/internal/models"
)

// maxEnrichSamples caps the error and update lists carried in an
// enrichment result. Counts stay exact; samples are for diagnostics.
const maxEnrichSamples = 10

// EnrichHoldings refreshes PE/industry data on the stockmaster for each of
// a client's holdings. The batch always runs to the end: per-item failures
// are counted, sampled and logged, never returned early. A fixed delay
// separates external calls.
func (s *Service) EnrichHoldings(ctx context.Context, clientID string) (*models.EnrichmentResult, error) {
	holdings, err := s.storage.Holdings().GetHoldings(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load holdings: %w", err)
	}

	result := &models.EnrichmentResult{Total: len(holdings)}

	for i, h := range holdings {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if i > 0 {
			time.Sleep(s.enrichDelay)
		}

		symbol, reason := s.resolveEnrichTarget(ctx, h)
		if reason != "" {
			result.Failed++
			s.addError(result, h, reason)
			continue
		}

		quote, qerr := s.nse.GetDailyQuote(ctx, symbol)
		if qerr != nil {
			result.Failed++
			s.addError(result, h, fmt.Sprintf("quote fetch failed: %v", qerr))
			s.logger.Warn().Err(qerr).Str("symbol", symbol).Msg("Enrichment quote fetch failed")
			continue
		}

		update := models.UpdateFromQuote(quote)
		if update.IsEmpty() {
			// provider returned a quote but no enrichable fields
			result.Processed++
			continue
		}

		if merr := s.storage.StockMasters().MergeFields(ctx, h.ISIN, update); merr != nil {
			result.Failed++
			s.addError(result, h, fmt.Sprintf("merge failed: %v", merr))
			s.logger.Warn().Err(merr).Str("isin", h.ISIN).Msg("Enrichment merge failed")
			continue
		}

		result.Processed++
		if len(result.Updates) < maxEnrichSamples {
			result.Updates = append(result.Updates, *update)
		}
	}

	s.logger.Info().
		Str("client_id", clientID).
		Int("total", result.Total).
		Int("processed", result.Processed).
		Int("failed", result.Failed).
		Msg("Holdings enrichment batch complete")

	return result, nil
}

// resolveEnrichTarget returns the NSE trading symbol for a holding, or a
// failure reason. Instruments not listed on NSE or without a symbol are
// skipped as failed items.
func (s *Service) resolveEnrichTarget(ctx context.Context, h *models.Holding) (string, string) {
	master, err := s.storage.StockMasters().GetByISIN(ctx, h.ISIN)
	if err != nil {
		return "", fmt.Sprintf("no stockmaster record: %v", err)
	}
	if !strings.EqualFold(master.Exchange, "NSE") {
		return "", fmt.Sprintf("not NSE-listed (exchange %s)", master.Exchange)
	}
	if master.Symbol == "" {
		return "", "no trading symbol"
	}
	return master.Symbol, ""
}

func (s *Service) addError(result *models.EnrichmentResult, h *models.Holding, reason string) {
	if len(result.Errors) >= maxEnrichSamples {
		return
	}
	result.Errors = append(result.Errors, models.EnrichmentError{
		ISIN:   h.ISIN,
		Symbol: h.Symbol,
		Reason: reason,
	})
}
