// Package nse provides a client for the NSE India public data API
package nse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/niveshlab/nivesh/internal/common"
	"github.com/niveshlab/nivesh/internal/interfaces"
	"github.com/niveshlab/nivesh/internal/models"
)

const (
	DefaultBaseURL   = "https://www.nseindia.com/api"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second

	// NSE rejects requests without a browser-like user agent.
	userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
)

// nseDateLayout is the day format used across NSE payloads ("12-Sep-2026").
const nseDateLayout = "02-Jan-2006"

// flexFloat64 handles JSON values that may be a number, a string, "-" or null.
type flexFloat64 float64

func (f *flexFloat64) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = flexFloat64(num)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" || s == "-" || s == "NA" {
			*f = 0
			return nil
		}
		num, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = flexFloat64(num)
		return nil
	}
	if string(data) == "null" {
		*f = 0
		return nil
	}
	return fmt.Errorf("cannot unmarshal %s into float64", string(data))
}

// Client implements the NSEClient interface
type Client struct {
	baseURL    string
	siteURL    string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter

	sessionMu sync.Mutex
	sessionAt time.Time
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the API base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
		c.siteURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new NSE client
func NewClient(opts ...ClientOption) *Client {
	jar, _ := cookiejar.New(nil)
	c := &Client{
		baseURL: DefaultBaseURL,
		siteURL: "https://www.nseindia.com",
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
			Jar:     jar,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an NSE API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("NSE API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// primeSession hits the site root so the provider sets its session cookies.
// NSE returns 401 on API paths without them. Sessions are re-primed after
// 10 minutes.
func (c *Client) primeSession(ctx context.Context) error {
	c.sessionMu.Lock()
	defer c.sessionMu.Unlock()

	if time.Since(c.sessionAt) < 10*time.Minute {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.siteURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create session request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to prime session: %w", err)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	c.sessionAt = time.Now()
	return nil
}

// get performs a rate-limited GET request against the API
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	if err := c.primeSession(ctx); err != nil {
		c.logger.Warn().Err(err).Msg("NSE session priming failed, proceeding without cookies")
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("url", c.baseURL+path).Msg("NSE API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// quoteResponse mirrors the /quote-equity payload shape.
type quoteResponse struct {
	Info struct {
		Symbol   string `json:"symbol"`
		Industry string `json:"industry"`
		IsFNOSec *bool  `json:"isFNOSec"`
	} `json:"info"`
	Metadata struct {
		PDSymbolPE  *flexFloat64 `json:"pdSymbolPe"`
		PDSectorPE  *flexFloat64 `json:"pdSectorPe"`
		PDSectorInd *string      `json:"pdSectorInd"`
	} `json:"metadata"`
	PriceInfo struct {
		Open           flexFloat64 `json:"open"`
		LastPrice      flexFloat64 `json:"lastPrice"`
		Close          flexFloat64 `json:"close"`
		IntraDayHighLow struct {
			Max flexFloat64 `json:"max"`
			Min flexFloat64 `json:"min"`
		} `json:"intraDayHighLow"`
	} `json:"priceInfo"`
	SecurityWiseDP struct {
		QuantityTraded int64 `json:"quantityTraded"`
	} `json:"securityWiseDP"`
}

// GetDailyQuote retrieves the latest daily quote and metadata for a symbol.
// Metadata pointer fields stay nil when the provider omits them, so callers
// can merge only what was actually returned.
func (c *Client) GetDailyQuote(ctx context.Context, symbol string) (*models.DailyQuote, error) {
	params := url.Values{}
	params.Set("symbol", symbol)

	var resp quoteResponse
	if err := c.get(ctx, "/quote-equity", params, &resp); err != nil {
		return nil, err
	}

	if resp.Info.Symbol == "" {
		return nil, &APIError{
			StatusCode: http.StatusNotFound,
			Message:    fmt.Sprintf("symbol %s not found", symbol),
			Endpoint:   "/quote-equity",
		}
	}

	close := float64(resp.PriceInfo.Close)
	if close == 0 {
		close = float64(resp.PriceInfo.LastPrice)
	}

	quote := &models.DailyQuote{
		Symbol:      resp.Info.Symbol,
		Open:        float64(resp.PriceInfo.Open),
		High:        float64(resp.PriceInfo.IntraDayHighLow.Max),
		Low:         float64(resp.PriceInfo.IntraDayHighLow.Min),
		Close:       close,
		Volume:      resp.SecurityWiseDP.QuantityTraded,
		FnOEligible: resp.Info.IsFNOSec,
	}

	if resp.Metadata.PDSymbolPE != nil {
		pe := float64(*resp.Metadata.PDSymbolPE)
		quote.PE = &pe
	}
	if resp.Metadata.PDSectorPE != nil {
		spe := float64(*resp.Metadata.PDSectorPE)
		quote.SectorPE = &spe
	}
	if resp.Metadata.PDSectorInd != nil && *resp.Metadata.PDSectorInd != "" {
		si := *resp.Metadata.PDSectorInd
		quote.SectorIndex = &si
	}
	if resp.Info.Industry != "" {
		ind := resp.Info.Industry
		quote.Industry = &ind
	}

	return quote, nil
}

// historicalResponse mirrors the /historical/cm/equity payload shape.
type historicalResponse struct {
	Data []struct {
		Symbol    string      `json:"CH_SYMBOL"`
		Timestamp string      `json:"CH_TIMESTAMP"` // "2026-08-28"
		Open      flexFloat64 `json:"CH_OPENING_PRICE"`
		High      flexFloat64 `json:"CH_TRADE_HIGH_PRICE"`
		Low       flexFloat64 `json:"CH_TRADE_LOW_PRICE"`
		Close     flexFloat64 `json:"CH_CLOSING_PRICE"`
		Volume    int64       `json:"CH_TOT_TRADED_QTY"`
	} `json:"data"`
}

// GetHistorical retrieves daily OHLCV bars for a symbol, most recent first.
func (c *Client) GetHistorical(ctx context.Context, symbol string, from, to time.Time) ([]models.OHLCBar, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	if !from.IsZero() {
		params.Set("from", from.Format("02-01-2006"))
	}
	if !to.IsZero() {
		params.Set("to", to.Format("02-01-2006"))
	}

	var resp historicalResponse
	if err := c.get(ctx, "/historical/cm/equity", params, &resp); err != nil {
		return nil, err
	}

	bars := make([]models.OHLCBar, 0, len(resp.Data))
	for _, row := range resp.Data {
		date, err := time.Parse("2006-01-02", row.Timestamp)
		if err != nil {
			c.logger.Warn().Str("symbol", symbol).Str("timestamp", row.Timestamp).Msg("Skipping bar with unparseable date")
			continue
		}
		bars = append(bars, models.OHLCBar{
			Date:   date,
			Open:   float64(row.Open),
			High:   float64(row.High),
			Low:    float64(row.Low),
			Close:  float64(row.Close),
			Volume: row.Volume,
		})
	}

	return bars, nil
}

// Ensure Client implements NSEClient
var _ interfaces.NSEClient = (*Client)(nil)
