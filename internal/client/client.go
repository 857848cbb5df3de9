// Package client talks to the PharmaStock REST API.
//
// Every call is a single round trip. The client keeps no copy of the data:
// callers re-query after a mutation to observe the new state.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pharmastock/internal/expiry"
	"pharmastock/internal/model"
	"pharmastock/pkg/validator"

	"github.com/google/uuid"
)

// Filter holds the optional list options. Empty fields do not filter.
type Filter struct {
	Query    string
	Category model.Category
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	timeout time.Duration
}

type Option func(*Client)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.HTTPClient = hc }
}

// WithTimeout sets the request timeout. It applies whatever the option
// order, and a client given to WithHTTPClient is copied rather than changed.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// New returns a client for the API rooted at baseURL, e.g.
// "http://127.0.0.1:4000/api".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.HTTPClient
		hc.Timeout = c.timeout
		c.HTTPClient = &hc
	}
	return c
}

func (c *Client) ListProducts(ctx context.Context, filter Filter) ([]model.Product, error) {
	qs := url.Values{}
	if q := strings.TrimSpace(filter.Query); q != "" {
		qs.Set("q", q)
	}
	if filter.Category != "" {
		qs.Set("category", string(filter.Category))
	}
	path := "/products"
	if len(qs) > 0 {
		path += "?" + qs.Encode()
	}

	var products []model.Product
	if err := c.do(ctx, http.MethodGet, path, nil, &products, false); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := c.do(ctx, http.MethodGet, "/products/"+id.String(), nil, &product, true); err != nil {
		return nil, err
	}
	return &product, nil
}

// ListExpiringProducts returns the products the server places in the alert
// window.
func (c *Client) ListExpiringProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := c.do(ctx, http.MethodGet, "/alerts/expiring", nil, &products, false); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct validates p locally, then posts it. The returned record
// carries the id assigned by the server.
func (c *Client) CreateProduct(ctx context.Context, p model.Product) (*model.Product, error) {
	if err := preflight(&p); err != nil {
		return nil, err
	}
	p.ID = uuid.Nil

	var created model.Product
	if err := c.do(ctx, http.MethodPost, "/products", &p, &created, false); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProduct replaces the record id with p.
func (c *Client) UpdateProduct(ctx context.Context, id uuid.UUID, p model.Product) (*model.Product, error) {
	if err := preflight(&p); err != nil {
		return nil, err
	}
	p.ID = id

	var updated model.Product
	if err := c.do(ctx, http.MethodPut, "/products/"+id.String(), &p, &updated, true); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProduct removes the record id. A missing id is a *NotFoundError.
func (c *Client) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/products/"+id.String(), nil, nil, true)
}

func (c *Client) DashboardStats(ctx context.Context) (*expiry.Summary, error) {
	var stats expiry.Summary
	if err := c.do(ctx, http.MethodGet, "/dashboard/stats", nil, &stats, false); err != nil {
		return nil, err
	}
	return &stats, nil
}

func preflight(p *model.Product) error {
	p.Normalize()
	if errs := validator.ValidateStruct(p); len(errs) > 0 {
		return &ValidationError{Violations: errs}
	}
	return nil
}

// do sends one request. byID marks id-addressed operations, where a 404
// becomes a *NotFoundError.
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}, byID bool) error {
	reqURL := c.BaseURL + path

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return &TransportError{Op: method, URL: reqURL, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: method, URL: reqURL, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reqErr := RequestError{
			Method:     method,
			URL:        reqURL,
			StatusCode: resp.StatusCode,
			Body:       string(data),
		}
		if byID && resp.StatusCode == http.StatusNotFound {
			return &NotFoundError{RequestError: reqErr}
		}
		return &reqErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &RequestError{
			Method:     method,
			URL:        reqURL,
			StatusCode: resp.StatusCode,
			Body:       string(data),
			Err:        fmt.Errorf("decode response: %w", err),
		}
	}
	return nil
}
