// Package gateway provides the HTTP client for the remote orders API.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Nikhila-inturi/cartify/internal/cache"
	"github.com/Nikhila-inturi/cartify/internal/order"
)

const ordersPath = "/api/v1/orders"

// Client issues paginated list, get, create, patch-status and cancel
// requests against the orders collection endpoint. It holds no state
// beyond an optional read cache for get-by-id.
type Client struct {
	baseURL   string
	authToken string
	client    *http.Client

	orders   cache.Store
	cacheTTL time.Duration
}

// Option customizes a Client.
type Option func(*Client)

// WithTimeout overrides the default 30s request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.client.Timeout = d }
}

// WithHTTPClient swaps the underlying http.Client (tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithCache enables a read-through cache on GetOrder, keyed by id.
// Status updates re-prime the entry and cancellation evicts it, so a
// cached read never serves a stale lifecycle state after a local
// mutation.
func WithCache(store cache.Store, ttl time.Duration) Option {
	return func(c *Client) {
		c.orders = store.Namespace("orders")
		c.cacheTTL = ttl
	}
}

// New creates a Client for the given base URL. The auth token, when
// non-empty, is forwarded as an opaque bearer credential.
func New(baseURL, authToken string, opts ...Option) *Client {
	c := &Client{
		baseURL:   baseURL,
		authToken: authToken,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// pageEnvelope is the Spring-style paging wrapper the service returns.
type pageEnvelope struct {
	Content       []order.Order `json:"content"`
	TotalPages    int           `json:"totalPages"`
	TotalElements int           `json:"totalElements"`
	Number        int           `json:"number"`
}

func (e pageEnvelope) toPage() *order.Page {
	return &order.Page{
		Orders:        e.Content,
		TotalPages:    e.TotalPages,
		TotalElements: e.TotalElements,
		PageNumber:    e.Number,
	}
}

// ListOrders returns one page of the order collection, newest first.
func (c *Client) ListOrders(ctx context.Context, page, size int) (*order.Page, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))

	var env pageEnvelope
	if err := c.get(ctx, ordersPath+"?"+q.Encode(), &env); err != nil {
		return nil, err
	}
	return env.toPage(), nil
}

// ListCustomerOrders returns one page of a single customer's orders.
func (c *Client) ListCustomerOrders(ctx context.Context, customerID string, page, size int) (*order.Page, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))

	var env pageEnvelope
	path := ordersPath + "/customer/" + url.PathEscape(customerID) + "?" + q.Encode()
	if err := c.get(ctx, path, &env); err != nil {
		return nil, err
	}
	return env.toPage(), nil
}

// GetOrder fetches a single order by id, serving from the read cache
// when one is configured.
func (c *Client) GetOrder(ctx context.Context, id string) (*order.Order, error) {
	if c.orders != nil {
		if raw, ok := c.orders.Get(id); ok {
			if cached, ok := raw.(*order.Order); ok {
				clone := *cached
				return &clone, nil
			}
		}
	}

	var o order.Order
	if err := c.get(ctx, ordersPath+"/"+url.PathEscape(id), &o); err != nil {
		return nil, err
	}
	c.prime(&o)
	return &o, nil
}

// GetOrderByNumber fetches a single order by its human-readable number.
func (c *Client) GetOrderByNumber(ctx context.Context, number string) (*order.Order, error) {
	var o order.Order
	if err := c.get(ctx, ordersPath+"/number/"+url.PathEscape(number), &o); err != nil {
		return nil, err
	}
	c.prime(&o)
	return &o, nil
}

// CreateOrder submits a draft. The server assigns id, order number,
// subtotals, total, PENDING status and creation time.
func (c *Client) CreateOrder(ctx context.Context, draft order.Draft) (*order.Order, error) {
	var o order.Order
	if err := c.send(ctx, http.MethodPost, ordersPath, draft, &o); err != nil {
		return nil, err
	}
	c.prime(&o)
	return &o, nil
}

// UpdateStatus requests a status transition. Illegal transitions come
// back as a ConflictError; the gateway does not pre-check legality.
func (c *Client) UpdateStatus(ctx context.Context, id string, status order.Status) (*order.Order, error) {
	body := map[string]string{"status": string(status)}
	var o order.Order
	if err := c.send(ctx, http.MethodPatch, ordersPath+"/"+url.PathEscape(id)+"/status", body, &o); err != nil {
		return nil, err
	}
	c.prime(&o)
	return &o, nil
}

// CancelOrder cancels an order. Orders already shipped, delivered or
// cancelled are refused by the server with a ConflictError.
func (c *Client) CancelOrder(ctx context.Context, id string) error {
	if err := c.send(ctx, http.MethodDelete, ordersPath+"/"+url.PathEscape(id), nil, nil); err != nil {
		return err
	}
	if c.orders != nil {
		c.orders.Delete(id)
	}
	return nil
}

// Health checks that the orders service is reachable.
func (c *Client) Health(ctx context.Context) error {
	return c.get(ctx, ordersPath+"/health", nil)
}

func (c *Client) prime(o *order.Order) {
	if c.orders == nil || o == nil {
		return
	}
	clone := *o
	c.orders.Set(o.ID, &clone, c.cacheTTL)
}

func (c *Client) setAuth(req *http.Request) {
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}
}

func (c *Client) get(ctx context.Context, path string, result any) error {
	return c.send(ctx, http.MethodGet, path, nil, result)
}

func (c *Client) send(ctx context.Context, method, path string, body, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &TransportError{Msg: "marshal request", Err: err}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return &TransportError{Msg: "create request", Err: err}
	}
	c.setAuth(req)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &TransportError{Msg: "orders service unreachable", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Msg: "read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return classify(resp.StatusCode, respBody, http.StatusText(resp.StatusCode))
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return &TransportError{Msg: "parse response", Err: err}
		}
	}

	return nil
}
