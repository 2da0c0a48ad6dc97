package server

import (
	"fmt"
	"net/http"
)

// clientIDParam resolves the clientId query parameter, falling back to the
// configured refresh client for the single-user setup.
func (s *Server) clientIDParam(r *http.Request) string {
	if id := r.URL.Query().Get("clientId"); id != "" {
		return id
	}
	return s.app.Config.Refresh.ClientID
}

// handleDashboard handles GET /api/dashboard?clientId=. The summary is
// recomputed from raw rows on every request.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	clientID := s.clientIDParam(r)
	if clientID == "" {
		WriteError(w, http.StatusBadRequest, "clientId query parameter is required")
		return
	}

	summary, err := s.app.DashboardService.BuildSummary(r.Context(), clientID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error building dashboard: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    summary,
	})
}

// handleHoldings handles GET /api/holdings?clientId=.
func (s *Server) handleHoldings(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	clientID := s.clientIDParam(r)
	if clientID == "" {
		WriteError(w, http.StatusBadRequest, "clientId query parameter is required")
		return
	}

	holdings, err := s.app.Storage.Holdings().GetHoldings(r.Context(), clientID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error reading holdings: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"holdings": holdings,
		"count":    len(holdings),
	})
}

// handleHoldingsEnrich handles POST /api/holdings-enrich?clientId=. Runs
// the PE/industry enrichment batch; per-item failures are reported in the
// result, never as a request error.
func (s *Server) handleHoldingsEnrich(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	clientID := s.clientIDParam(r)
	if clientID == "" {
		WriteError(w, http.StatusBadRequest, "clientId query parameter is required")
		return
	}

	result, err := s.app.MarketService.EnrichHoldings(r.Context(), clientID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Enrichment failed: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"result":  result,
	})
}
