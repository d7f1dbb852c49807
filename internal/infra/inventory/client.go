package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	domproduct "example.com/cart-sync/internal/domain/product"
)

// Client talks to the inventory service over its JSON HTTP API:
// GET /stock/{id}, PUT /stock/{id} and GET /products/{id}.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) GetStock(ctx context.Context, productID int64) (domproduct.StockQuote, error) {
	var quote domproduct.StockQuote
	url := fmt.Sprintf("%s/stock/%d", c.baseURL, productID)
	if err := c.getJSON(ctx, url, &quote); err != nil {
		return domproduct.StockQuote{}, err
	}
	return quote, nil
}

func (c *Client) SetStock(ctx context.Context, productID, amount int64) error {
	body, err := json.Marshal(map[string]int64{"amount": amount})
	if err != nil {
		return fmt.Errorf("%w: encode stock update: %v", domproduct.ErrRemoteCall, err)
	}

	url := fmt.Sprintf("%s/stock/%d", c.baseURL, productID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", domproduct.ErrRemoteCall, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domproduct.ErrRemoteCall, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: PUT %s returned %d", domproduct.ErrRemoteCall, url, resp.StatusCode)
	}
	return nil
}

func (c *Client) GetProduct(ctx context.Context, productID int64) (*domproduct.Product, error) {
	var p domproduct.Product
	url := fmt.Sprintf("%s/products/%d", c.baseURL, productID)
	if err := c.getJSON(ctx, url, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) getJSON(ctx context.Context, url string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", domproduct.ErrRemoteCall, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domproduct.ErrRemoteCall, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: GET %s returned %d", domproduct.ErrRemoteCall, url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: decode %s: %v", domproduct.ErrRemoteCall, url, err)
	}
	return nil
}
