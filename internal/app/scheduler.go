package app

import (
	"context"
	"errors"
	"time"

	"github.com/niveshlab/nivesh/internal/common"
	"github.com/niveshlab/nivesh/internal/interfaces"
)

// startRefreshScheduler periodically refreshes data for the configured
// client's held instruments: daily series, PE/industry enrichment and
// corporate disclosures.
func startRefreshScheduler(ctx context.Context, marketService interfaces.MarketService, storage interfaces.StorageManager, logger *common.Logger, clientID string, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("Refresh scheduler: stopped")
			return
		case <-ticker.C:
			refreshHeldInstruments(ctx, marketService, storage, logger, clientID)
		}
	}
}

func refreshHeldInstruments(ctx context.Context, marketService interfaces.MarketService, storage interfaces.StorageManager, logger *common.Logger, clientID string) {
	start := time.Now()

	if err := marketService.CollectDailySeries(ctx, clientID); err != nil {
		logger.Warn().Err(err).Msg("Refresh: daily series collection failed")
	}

	result, err := marketService.EnrichHoldings(ctx, clientID)
	if err != nil {
		logger.Warn().Err(err).Msg("Refresh: enrichment failed")
	}

	// Corporate refresh piggybacks on the staleness gate: fresh records
	// are served from cache at no external cost.
	holdings, herr := storage.Holdings().GetHoldings(ctx, clientID)
	if herr != nil {
		logger.Warn().Err(herr).Msg("Refresh: could not list holdings for corporate refresh")
	} else {
		for _, h := range holdings {
			if ctx.Err() != nil {
				return
			}
			if _, cerr := marketService.GetCorporateData(ctx, h.ISIN, h.Symbol); cerr != nil && !errors.Is(cerr, interfaces.ErrNotFound) {
				logger.Debug().Err(cerr).Str("isin", h.ISIN).Msg("Refresh: corporate refresh skipped")
			}
		}
	}

	event := logger.Info().Dur("elapsed", time.Since(start)).Str("client_id", clientID)
	if result != nil {
		event = event.Int("enriched", result.Processed).Int("failed", result.Failed)
	}
	event.Msg("Refresh: complete")
}
