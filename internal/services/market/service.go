// Package market provides the NSE data refresh and query services
package market

import (
	"time"

	"github.com/niveshlab/nivesh/internal/common"
	"github.com/niveshlab/nivesh/internal/interfaces"
)

// defaultEnrichDelay is the fixed pause between external calls in the
// enrichment batch. A flat delay, not a backoff: NSE tolerates a steady
// trickle but blocks bursts.
const defaultEnrichDelay = 200 * time.Millisecond

// Service implements MarketService
type Service struct {
	storage     interfaces.StorageManager
	nse         interfaces.NSEClient
	logger      *common.Logger
	enrichDelay time.Duration
}

// NewService creates a new market service
func NewService(
	storage interfaces.StorageManager,
	nse interfaces.NSEClient,
	logger *common.Logger,
) *Service {
	return &Service{
		storage:     storage,
		nse:         nse,
		logger:      logger,
		enrichDelay: defaultEnrichDelay,
	}
}

var _ interfaces.MarketService = (*Service)(nil)
