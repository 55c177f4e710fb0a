// Package storefront implements the stock-aware ordering protocol used by
// every product listing: fetch a section, validate a desired quantity against
// the backend, place the order, and reconcile local state from the server's
// response.
package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Availability is the outcome of a non-mutating stock check.
type Availability struct {
	OutOfStock bool
	Stock      int
	CappedQty  int
}

// OrderError is a rejected or failed order submission. It is surfaced to the
// user as-is; the attempted order is abandoned and may be retried manually.
type OrderError struct {
	Reason     string
	Stock      int
	OutOfStock bool
}

func (e *OrderError) Error() string { return e.Reason }

// Client is a stateless wrapper over the section API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger attaches a logger. Default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a storefront API client against baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SectionData is a normalized section payload.
type SectionData struct {
	Title string
	Cards []Card
}

// FetchSection loads and normalizes one section. The ts query parameter
// defeats intermediary caches the same way the web storefront does. The
// request is cancellable through ctx so a torn-down view never patches state.
func (c *Client) FetchSection(ctx context.Context, section string) (*SectionData, error) {
	url := fmt.Sprintf("%s/api/%s?ts=%d", c.baseURL, section, time.Now().UnixMilli())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", section, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", section, resp.StatusCode)
	}

	var raw struct {
		Title string                   `json:"title"`
		Cards []map[string]interface{} `json:"cards"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", section, err)
	}

	title := raw.Title
	if title == "" {
		title = section
	}
	return &SectionData{Title: title, Cards: normalizeCards(raw.Cards)}, nil
}

// CheckAvailability asks whether qty units of a card can be fulfilled. The
// call FAILS OPEN: any transport failure or non-success response degrades to
// a permissive default so a flaky availability endpoint never blocks the UI —
// the order submission remains the final arbiter.
func (c *Client) CheckAvailability(ctx context.Context, section, id string, qty int) Availability {
	permissive := Availability{OutOfStock: false, Stock: 0, CappedQty: qty}

	body, _ := json.Marshal(map[string]interface{}{"id": id, "qty": qty})
	url := fmt.Sprintf("%s/api/%s/check-qty", c.baseURL, section)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return permissive
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("availability check failed open", zap.String("id", id), zap.Error(err))
		return permissive
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return permissive
	}

	var out struct {
		OutOfStock bool `json:"outOfStock"`
		Stock      int  `json:"stock"`
		CappedQty  int  `json:"cappedQty"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return permissive
	}
	capped := out.CappedQty
	if capped == 0 && !out.OutOfStock {
		capped = qty
	}
	return Availability{OutOfStock: out.OutOfStock, Stock: out.Stock, CappedQty: capped}
}

// PlaceOrder commits a purchase of qty units against the backend. On success
// the returned value is the authority's remaining stock — the only number the
// caller may use to patch its cached catalog. Failures come back as
// *OrderError and are never retried here.
func (c *Client) PlaceOrder(ctx context.Context, section, id string, qty int) (int, error) {
	body, _ := json.Marshal(map[string]interface{}{"id": id, "qty": qty})
	url := fmt.Sprintf("%s/api/%s/order", c.baseURL, section)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, &OrderError{Reason: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, &OrderError{Reason: fmt.Sprintf("order failed: %v", err)}
	}
	defer resp.Body.Close()

	var out struct {
		OK         bool   `json:"ok"`
		Qty        int    `json:"qty"`
		Error      string `json:"error"`
		OutOfStock bool   `json:"outOfStock"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil && resp.StatusCode == http.StatusOK {
		return 0, &OrderError{Reason: fmt.Sprintf("order failed: %v", err)}
	}
	if resp.StatusCode != http.StatusOK {
		reason := out.Error
		if reason == "" {
			reason = fmt.Sprintf("order failed %d", resp.StatusCode)
		}
		return 0, &OrderError{Reason: reason, Stock: out.Qty, OutOfStock: out.OutOfStock}
	}
	return out.Qty, nil
}

// OrderRecord is the full order snapshot appended to the generic ledger by
// the best-selling flow.
type OrderRecord struct {
	ID        string  `json:"id,omitempty"`
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	Brand     string  `json:"brand"`
	Unit      string  `json:"unit"`
	Price     float64 `json:"price"`
	Qty       int     `json:"qty"`
	Subtotal  float64 `json:"subtotal"`
	Category  string  `json:"category"`
	Discount  int     `json:"discount"`
	CreatedAt string  `json:"createdAt,omitempty"`
}

// RecordOrder appends rec to the order ledger. Best-effort from the caller's
// point of view: the stock decrement has already been confirmed.
func (c *Client) RecordOrder(ctx context.Context, rec OrderRecord) (*OrderRecord, error) {
	body, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("record order: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("record order: status %d", resp.StatusCode)
	}

	var out OrderRecord
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("record order: %w", err)
	}
	return &out, nil
}
