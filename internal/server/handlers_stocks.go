package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/niveshlab/nivesh/internal/interfaces"
)

// queryDateLayout is the wire format for fromDate/toDate parameters.
const queryDateLayout = "2006-01-02"

func parseDateParam(r *http.Request, name string) (time.Time, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(queryDateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s, expected YYYY-MM-DD", name)
	}
	return t, nil
}

// handleStockOHLC handles GET /api/stock-ohlc?isin=&fromDate=&toDate=.
// The series comes back ascending by date, zero-defaulted; an empty series
// is a success with count 0.
func (s *Server) handleStockOHLC(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	isin := r.URL.Query().Get("isin")
	if isin == "" {
		WriteError(w, http.StatusBadRequest, "isin query parameter is required")
		return
	}

	from, err := parseDateParam(r, "fromDate")
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	to, err := parseDateParam(r, "toDate")
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	bars, err := s.app.MarketService.GetOHLC(r.Context(), isin, from, to)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error reading OHLC data: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"ohlcData": bars,
		"count":    len(bars),
	})
}

// handleLatestStockDate handles GET /api/latest-stock-date.
func (s *Server) handleLatestStockDate(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	latest, err := s.app.MarketService.LatestStockDate(r.Context())
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "No stock data stored yet")
			return
		}
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error reading latest stock date: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"latestDate":    latest.Format(queryDateLayout),
		"formattedDate": latest.Format("02/01/2006"),
	})
}

// handleStockChart handles GET /api/stock-chart?isin=&fromDate=&toDate=,
// rendering a PNG closing-price chart from the stored series.
func (s *Server) handleStockChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	isin := r.URL.Query().Get("isin")
	if isin == "" {
		WriteError(w, http.StatusBadRequest, "isin query parameter is required")
		return
	}

	from, err := parseDateParam(r, "fromDate")
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	to, err := parseDateParam(r, "toDate")
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	png, err := s.app.MarketService.RenderPriceChart(r.Context(), isin, from, to)
	if err != nil {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("Cannot render chart: %v", err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
