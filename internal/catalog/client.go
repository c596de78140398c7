package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/Dharma23012432/Smart-Inventory-and-Billing-System/internal/models"
)

// Client talks to the inventory backend over its REST API. The backend owns
// all product and supplier state; every method returns point-in-time copies.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log.With().Str("component", "catalog").Logger(),
	}
}

// Query carries the optional filter/sort hints honored by the server.
// Zero values are omitted from the request.
type Query struct {
	Search        string
	StockLevel    string // "low" | "healthy" | "all"
	Size          string
	SortField     string
	SortDirection string // "asc" | "desc"
}

func (q Query) values() url.Values {
	params := url.Values{}
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if q.StockLevel != "" && q.StockLevel != "all" {
		params.Set("stockLevel", q.StockLevel)
	}
	if q.Size != "" && q.Size != "all" {
		params.Set("size", q.Size)
	}
	if q.SortField != "" {
		params.Set("sortField", q.SortField)
		params.Set("sortDirection", q.SortDirection)
	}
	return params
}

// View fetches the full product snapshot, optionally filtered and sorted
// server-side.
func (c *Client) View(ctx context.Context, q Query) ([]models.Product, error) {
	path := "/api/products/view"
	if params := q.values(); len(params) > 0 {
		path += "?" + params.Encode()
	}
	var products []models.Product
	if err := c.get(ctx, path, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) Get(ctx context.Context, id int64) (models.Product, error) {
	var p models.Product
	err := c.get(ctx, fmt.Sprintf("/api/products/%d", id), &p)
	return p, err
}

func (c *Client) Add(ctx context.Context, p models.Product) (models.Product, error) {
	var created models.Product
	err := c.send(ctx, http.MethodPost, "/api/products/add", p, &created)
	return created, err
}

func (c *Client) Update(ctx context.Context, id int64, p models.Product) (models.Product, error) {
	var updated models.Product
	err := c.send(ctx, http.MethodPut, fmt.Sprintf("/api/products/update/%d", id), p, &updated)
	return updated, err
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/api/products/delete/%d", id), nil, nil)
}

func (c *Client) DeleteAll(ctx context.Context) error {
	return c.send(ctx, http.MethodDelete, "/api/products/deleteAll", nil, nil)
}

// Sell decrements server-held stock for one product. This is the list-screen
// sale path; the sell-page cart never calls it (cart lines are local staging
// until an invoice is rendered).
func (c *Client) Sell(ctx context.Context, id int64, soldQuantity int) error {
	return c.send(ctx, http.MethodPut, fmt.Sprintf("/api/products/%d/sell/%d", id, soldQuantity), nil, nil)
}

func (c *Client) Restock(ctx context.Context, id int64, quantity int) error {
	return c.send(ctx, http.MethodPut, fmt.Sprintf("/api/products/restock/%d/%d", id, quantity), nil, nil)
}

func (c *Client) LowStock(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := c.get(ctx, "/api/products/low-stock", &products)
	return products, err
}

func (c *Client) HealthyStock(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := c.get(ctx, "/api/products/healthy-stock", &products)
	return products, err
}

func (c *Client) Suppliers(ctx context.Context) ([]models.Supplier, error) {
	var suppliers []models.Supplier
	err := c.get(ctx, "/supplier/view", &suppliers)
	return suppliers, err
}

func (c *Client) Supplier(ctx context.Context, id int64) (models.Supplier, error) {
	var s models.Supplier
	err := c.get(ctx, fmt.Sprintf("/supplier/id/%d", id), &s)
	return s, err
}

func (c *Client) CreateSupplier(ctx context.Context, s models.Supplier) (models.Supplier, error) {
	var created models.Supplier
	err := c.send(ctx, http.MethodPost, "/supplier/create", s, &created)
	return created, err
}

func (c *Client) UpdateSupplier(ctx context.Context, id int64, s models.Supplier) (models.Supplier, error) {
	var updated models.Supplier
	err := c.send(ctx, http.MethodPut, fmt.Sprintf("/supplier/update/%d", id), s, &updated)
	return updated, err
}

func (c *Client) DeleteSupplier(ctx context.Context, id int64) error {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/supplier/delete/%d", id), nil, nil)
}

func (c *Client) DeleteAllSuppliers(ctx context.Context) error {
	return c.send(ctx, http.MethodDelete, "/supplier/deleteAll", nil, nil)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) send(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return errors.Wrap(err, "encode request body")
		}
		body = bytes.NewReader(buf)
	}
	return c.do(ctx, method, path, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errors.Wrapf(err, "build %s %s", method, path)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()
	c.log.Debug().Str("method", method).Str("path", path).
		Int("status", resp.StatusCode).Dur("elapsed", time.Since(start)).Msg("backend call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return errors.Errorf("%s %s: backend returned %d: %s", method, path, resp.StatusCode, bytes.TrimSpace(snippet))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decode %s %s response", method, path)
	}
	return nil
}
