package server

import (
	"net/http"

	"github.com/niveshlab/nivesh/internal/common"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/config", s.handleConfig)

	// Auth
	mux.HandleFunc("/api/auth/login", s.handleAuthLogin)

	// Corporate data
	mux.HandleFunc("/api/corporate-data", s.handleCorporateData)

	// Stock time series
	mux.HandleFunc("/api/stock-ohlc", s.handleStockOHLC)
	mux.HandleFunc("/api/latest-stock-date", s.handleLatestStockDate)
	mux.HandleFunc("/api/stock-chart", s.handleStockChart)

	// Holdings & dashboard
	mux.HandleFunc("/api/holdings", s.handleHoldings)
	mux.HandleFunc("/api/holdings-enrich", s.handleHoldingsEnrich)
	mux.HandleFunc("/api/dashboard", s.handleDashboard)
}

// --- System handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"environment":       s.app.Config.Environment,
		"storage_address":   s.app.Config.Storage.Address,
		"storage_namespace": s.app.Config.Storage.Namespace,
		"storage_database":  s.app.Config.Storage.Database,
		"nse_base_url":      s.app.Config.Clients.NSE.BaseURL,
		"logging_level":     s.app.Config.Logging.Level,
		"refresh_enabled":   s.app.Config.Refresh.Enabled,
		"refresh_interval":  s.app.Config.Refresh.Interval,
	})
}
