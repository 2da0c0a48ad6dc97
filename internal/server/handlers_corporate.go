package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/niveshlab/nivesh/internal/interfaces"
)

// handleCorporateData handles GET /api/corporate-data?isin=|symbol=.
// Serves the cached record when fresh; stale or missing records trigger one
// provider fetch with fallback to cache on failure.
func (s *Server) handleCorporateData(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	isin := r.URL.Query().Get("isin")
	symbol := r.URL.Query().Get("symbol")
	if isin == "" && symbol == "" {
		WriteError(w, http.StatusBadRequest, "isin or symbol query parameter is required")
		return
	}

	info, err := s.app.MarketService.GetCorporateData(r.Context(), isin, symbol)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			WriteError(w, http.StatusNotFound, fmt.Sprintf("No corporate data for %s%s", isin, symbol))
			return
		}
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error fetching corporate data: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    info,
	})
}
