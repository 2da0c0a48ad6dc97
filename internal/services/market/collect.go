package market

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// collectLookback bounds how far back a daily collection reaches. Bars are
// upserted by (isin, date) so overlap with prior runs is harmless.
const collectLookback = 30 * 24 * time.Hour

// CollectDailySeries fetches recent OHLCV bars for every instrument a
// client holds and upserts them into the time series. Per-instrument
// failures are logged and skipped so one delisted symbol cannot stall the
// whole collection.
func (s *Service) CollectDailySeries(ctx context.Context, clientID string) error {
	holdings, err := s.storage.Holdings().GetHoldings(ctx, clientID)
	if err != nil {
		return fmt.Errorf("failed to load holdings: %w", err)
	}

	to := time.Now()
	from := to.Add(-collectLookback)

	collected := 0
	for i, h := range holdings {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if i > 0 {
			time.Sleep(s.enrichDelay)
		}

		master, merr := s.storage.StockMasters().GetByISIN(ctx, h.ISIN)
		if merr != nil || master.Symbol == "" || !strings.EqualFold(master.Exchange, "NSE") {
			s.logger.Debug().Str("isin", h.ISIN).Msg("Skipping series collection for unresolvable instrument")
			continue
		}

		bars, ferr := s.nse.GetHistorical(ctx, master.Symbol, from, to)
		if ferr != nil {
			s.logger.Warn().Err(ferr).Str("symbol", master.Symbol).Msg("Historical fetch failed")
			continue
		}
		if len(bars) == 0 {
			continue
		}

		for j := range bars {
			bars[j].ISIN = h.ISIN
		}

		if serr := s.storage.StockData().SaveBars(ctx, bars); serr != nil {
			s.logger.Warn().Err(serr).Str("isin", h.ISIN).Msg("Failed to save bars")
			continue
		}
		collected += len(bars)
	}

	s.logger.Info().
		Str("client_id", clientID).
		Int("holdings", len(holdings)).
		Int("bars", collected).
		Msg("Daily series collection complete")

	return nil
}
