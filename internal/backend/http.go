package backend

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

	"kirana-kart/internal/model"

	"github.com/rs/zerolog"
)

// httpClient implements Client against a REST backend.
type httpClient struct {
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

// Options configures the HTTP backend client.
type Options struct {
	// BaseURL is the backend root, e.g. "https://api.example.com/api".
	BaseURL string

	// Token is the bearer token attached to every request. Empty means
	// unauthenticated.
	Token string

	// Timeout bounds each request. Zero means 30s.
	Timeout time.Duration

	// Transport overrides the underlying round-tripper (tests).
	Transport http.RoundTripper
}

// NewHTTPClient creates a REST backend client.
func NewHTTPClient(opts Options, logger zerolog.Logger) Client {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	logger = logger.With().Str("component", "backend").Logger()

	return &httpClient{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		client: &http.Client{
			Timeout:   timeout,
			Transport: newTransport(opts.Token, logger, opts.Transport),
		},
		logger: logger,
	}
}

func (c *httpClient) GetCustomer(ctx context.Context, mobile string) (*model.Customer, error) {
	var customer model.Customer
	err := c.do(ctx, http.MethodGet, "/customers/"+url.PathEscape(mobile), nil, &customer)
	if err != nil {
		if apiErr, ok := err.(*APIError); ok && apiErr.NotFound() {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch customer: %w", err)
	}
	// Some backends answer 200 with an empty body for unknown mobiles.
	if customer.ID == "" {
		return nil, nil
	}
	return &customer, nil
}

func (c *httpClient) CreateCustomer(ctx context.Context, customer *model.Customer) (*model.Customer, error) {
	var created model.Customer
	if err := c.do(ctx, http.MethodPost, "/customers", customer, &created); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	if created.ID == "" {
		return nil, fmt.Errorf("backend returned customer without id")
	}
	return &created, nil
}

// createOrderResponse tolerates both response shapes the backend has
// used: the bare order, and the order nested under an "order" key.
type createOrderResponse struct {
	model.Order
	Nested *model.Order `json:"order"`
}

func (c *httpClient) CreateOrder(ctx context.Context, order *model.Order) (*model.Order, error) {
	var resp createOrderResponse
	if err := c.do(ctx, http.MethodPost, "/orders", order, &resp); err != nil {
		return nil, err
	}

	created := &resp.Order
	if resp.Nested != nil {
		created = resp.Nested
	}
	if err := created.Validate(); err != nil {
		return nil, fmt.Errorf("backend returned malformed order: %w", err)
	}
	return created, nil
}

func (c *httpClient) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	err := c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(id), nil, &order)
	if err != nil {
		if apiErr, ok := err.(*APIError); ok && apiErr.NotFound() {
			return nil, model.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}
	if err := order.Validate(); err != nil {
		return nil, fmt.Errorf("backend returned malformed order: %w", err)
	}
	return &order, nil
}

func (c *httpClient) ListOrders(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	path := "/orders"
	if status != "" {
		path += "?status=" + url.QueryEscape(string(status))
	}

	var orders []model.Order
	if err := c.do(ctx, http.MethodGet, path, nil, &orders); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (c *httpClient) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) error {
	body := map[string]string{"status": string(status)}
	if err := c.do(ctx, http.MethodPut, "/orders/"+url.PathEscape(id)+"/status", body, nil); err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	return nil
}

func (c *httpClient) AssignDeliveryPartner(ctx context.Context, id, partnerID, partnerName string) error {
	body := map[string]string{
		"delivery_partner_id":   partnerID,
		"delivery_partner_name": partnerName,
	}
	if err := c.do(ctx, http.MethodPut, "/orders/"+url.PathEscape(id)+"/assign", body, nil); err != nil {
		return fmt.Errorf("failed to assign delivery partner: %w", err)
	}
	return nil
}

func (c *httpClient) VerifyDeliveryOTP(ctx context.Context, id, otp string) error {
	body := map[string]string{"otp": otp}
	return c.do(ctx, http.MethodPost, "/orders/"+url.PathEscape(id)+"/verify-delivery-otp", body, nil)
}

func (c *httpClient) GetProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &products); err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, nil
}

func (c *httpClient) SearchProducts(ctx context.Context, query string) ([]model.Product, error) {
	var products []model.Product
	path := "/search?q=" + url.QueryEscape(query)
	if err := c.do(ctx, http.MethodGet, path, nil, &products); err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	return products, nil
}

func (c *httpClient) GetCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &categories); err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return categories, nil
}

func (c *httpClient) GetSettings(ctx context.Context) (*model.StoreSettings, error) {
	var settings model.StoreSettings
	if err := c.do(ctx, http.MethodGet, "/settings", nil, &settings); err != nil {
		return nil, fmt.Errorf("failed to fetch settings: %w", err)
	}
	return &settings, nil
}

// do executes one JSON request. Non-2xx responses are decoded into an
// *APIError carrying the server's structured message when present.
func (c *httpClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		// Best effort: an undecodable error body still yields the
		// status-based message.
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
