// Package inventree is a thin client for the InvenTree HTTP API: part
// and stock lookups, sales-order creation and CSV export. It keeps no
// state beyond the connection; the scheduler treats it purely as a
// producer of task data.
package inventree

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/inventree-tools/crewplan/infra/logger"
)

// Config holds the connection settings for an InvenTree server.
type Config struct {
	BaseURL         string `json:"base_url"`
	Token           string `json:"token"`
	CustomerID      int    `json:"customer_id"`
	DefaultLocation string `json:"default_location"`
	TimeoutSeconds  int    `json:"timeout_seconds"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = 30
	}
	if c.CustomerID == 0 {
		c.CustomerID = 1
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	return nil
}

// Client talks to one InvenTree server.
type Client struct {
	cfg    Config
	client *http.Client
	log    logger.Logger
}

// NewClient creates a client from configuration.
func NewClient(cfg Config) (*Client, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		log:    logger.New("inventree-client"),
	}, nil
}

// APIError carries the status code and error payload of a failed call.
type APIError struct {
	Op     string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s failed: %d - %s", e.Op, e.Status, e.Body)
}

func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out any) error {
	u := strings.TrimSuffix(c.cfg.BaseURL, "/") + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	var rd io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode body: %w", op, err)
		}
		rd = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Token "+c.cfg.Token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: read body: %w", op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Op: op, Status: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}
	if out == nil {
		return nil
	}
	if raw, ok := out.(*[]byte); ok {
		*raw = data
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

// SearchPart looks a part up by name: exact match first, then the first
// substring match. A nil part with nil error means no match.
func (c *Client) SearchPart(ctx context.Context, name string) (*Part, error) {
	var parts []Part
	q := url.Values{"search": []string{name}}
	if err := c.do(ctx, fmt.Sprintf("search part %q", name), http.MethodGet, "/api/part/", q, nil, &parts); err != nil {
		return nil, err
	}
	for i, p := range parts {
		if strings.EqualFold(p.Name, name) {
			return &parts[i], nil
		}
	}
	lower := strings.ToLower(name)
	for i, p := range parts {
		if strings.Contains(strings.ToLower(p.Name), lower) {
			return &parts[i], nil
		}
	}
	return nil, nil
}

// SearchParts returns every part matching the search term.
func (c *Client) SearchParts(ctx context.Context, term string) ([]Part, error) {
	var parts []Part
	q := url.Values{"search": []string{term}}
	if err := c.do(ctx, fmt.Sprintf("search parts %q", term), http.MethodGet, "/api/part/", q, nil, &parts); err != nil {
		return nil, err
	}
	return parts, nil
}

// StockForPart fetches the stock items of a part.
func (c *Client) StockForPart(ctx context.Context, partID int) ([]StockItem, error) {
	var stock []StockItem
	q := url.Values{"part": []string{strconv.Itoa(partID)}}
	if err := c.do(ctx, fmt.Sprintf("get stock for part %d", partID), http.MethodGet, "/api/stock/", q, nil, &stock); err != nil {
		return nil, err
	}
	return stock, nil
}

// PickCandidates filters parts down to those with positive stock at the
// given location (substring match, case-insensitive). An empty location
// skips the filter.
func (c *Client) PickCandidates(ctx context.Context, parts []Part, location string) ([]Candidate, error) {
	var cands []Candidate
	for _, p := range parts {
		stock, err := c.StockForPart(ctx, p.PK)
		if err != nil {
			return nil, err
		}
		if location != "" {
			var filtered []StockItem
			for _, s := range stock {
				if strings.Contains(strings.ToLower(s.Location()), strings.ToLower(location)) {
					filtered = append(filtered, s)
				}
			}
			stock = filtered
		}
		cand := Candidate{Part: p, Stock: stock, Price: p.PricingMin}
		if cand.Quantity() > 0 {
			cands = append(cands, cand)
		}
	}
	return cands, nil
}

// Cheapest picks the lowest-priced candidate, preferring larger stock on
// ties. It panics on an empty slice; callers check first.
func Cheapest(cands []Candidate) Candidate {
	best := cands[0]
	for _, c := range cands[1:] {
		if c.Price < best.Price || (c.Price == best.Price && c.Quantity() > best.Quantity()) {
			best = c
		}
	}
	return best
}

// CreateSalesOrder creates a sales order for the configured customer.
func (c *Client) CreateSalesOrder(ctx context.Context, description, targetDate string) (*SalesOrder, error) {
	payload := map[string]any{
		"customer":    c.cfg.CustomerID,
		"description": description,
	}
	if targetDate != "" {
		payload["target_date"] = targetDate
	}
	var so SalesOrder
	if err := c.do(ctx, "create sales order", http.MethodPost, "/api/order/so/", nil, payload, &so); err != nil {
		return nil, err
	}
	c.log.Infof("created sales order %d (%s)", so.PK, so.Reference)
	return &so, nil
}

// AddLineItem appends a part line to an existing sales order.
func (c *Client) AddLineItem(ctx context.Context, orderID, partID int, quantity float64) error {
	payload := map[string]any{
		"order":    orderID,
		"part":     partID,
		"quantity": quantity,
	}
	return c.do(ctx, fmt.Sprintf("add line item to order %d", orderID), http.MethodPost, "/api/order/so-line/", nil, payload, nil)
}

// OrderCSV downloads the CSV export of a sales order.
func (c *Client) OrderCSV(ctx context.Context, orderID int) ([]byte, error) {
	var raw []byte
	q := url.Values{"format": []string{"csv"}}
	path := fmt.Sprintf("/order/sales-order/%d/export/", orderID)
	if err := c.do(ctx, fmt.Sprintf("export order %d", orderID), http.MethodGet, path, q, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// CompanyEmail fetches the contact email of a company, empty when the
// record carries none.
func (c *Client) CompanyEmail(ctx context.Context, companyID int) (string, error) {
	var company Company
	path := fmt.Sprintf("/api/company/%d/", companyID)
	if err := c.do(ctx, fmt.Sprintf("get company %d", companyID), http.MethodGet, path, nil, nil, &company); err != nil {
		return "", err
	}
	return company.Email, nil
}
