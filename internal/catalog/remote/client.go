// Package remote implements the catalog Source contracts over the HTTP
// API, so a thin front end can offload catalog storage and spreadsheet
// parsing to a backend. Any transport failure surfaces as an error for
// the caller to translate into "catalog unavailable".
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pedido-service/internal/catalog/model"
	"pedido-service/internal/catalog/service"
)

type Client struct {
	baseURL string
	hc      *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: 15 * time.Second},
	}
}

var _ service.Source = (*Client)(nil)

type envelope struct {
	OK           bool            `json:"ok"`
	Error        string          `json:"error"`
	Catalog      *service.Status `json:"catalog"`
	ProductCount int             `json:"productCount"`
	Products     []model.Product `json:"products"`
	Product      *model.Product  `json:"product"`
}

func (c *Client) do(req *http.Request, out *envelope) (int, error) {
	resp, err := c.hc.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("catalog api: decode %s: %w", req.URL.Path, err)
	}
	return resp.StatusCode, nil
}

func (c *Client) get(ctx context.Context, path string, out *envelope) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return 0, err
	}
	return c.do(req, out)
}

func (c *Client) Status(ctx context.Context) (service.Status, error) {
	var env envelope
	code, err := c.get(ctx, "/api/status", &env)
	if err != nil {
		return service.Status{}, err
	}
	if code != http.StatusOK || env.Catalog == nil {
		return service.Status{}, fmt.Errorf("catalog api: status %d", code)
	}
	return *env.Catalog, nil
}

func (c *Client) Upload(ctx context.Context, filename string, data io.Reader) (int, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("catalog", filename)
	if err != nil {
		return 0, err
	}
	if _, err := io.Copy(part, data); err != nil {
		return 0, err
	}
	if err := mw.Close(); err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/catalog/upload", &body)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var env envelope
	code, err := c.do(req, &env)
	if err != nil {
		return 0, err
	}
	if code != http.StatusOK || !env.OK {
		return 0, fmt.Errorf("catalog api: upload %d: %s", code, env.Error)
	}
	return env.ProductCount, nil
}

func (c *Client) Products(ctx context.Context) ([]model.Product, error) {
	var env envelope
	code, err := c.get(ctx, "/api/catalog/products", &env)
	if err != nil {
		return nil, err
	}
	if code != http.StatusOK {
		return nil, fmt.Errorf("catalog api: products %d", code)
	}
	return env.Products, nil
}

func (c *Client) Search(ctx context.Context, query string) ([]model.Product, error) {
	var env envelope
	code, err := c.get(ctx, "/api/catalog/search?q="+url.QueryEscape(query), &env)
	if err != nil {
		return nil, err
	}
	if code != http.StatusOK {
		return nil, fmt.Errorf("catalog api: search %d", code)
	}
	return env.Products, nil
}

func (c *Client) BySKU(ctx context.Context, sku string) (model.Product, bool, error) {
	var env envelope
	code, err := c.get(ctx, "/api/catalog/sku/"+url.PathEscape(sku), &env)
	if err != nil {
		return model.Product{}, false, err
	}
	switch code {
	case http.StatusOK:
		if env.Product == nil {
			return model.Product{}, false, fmt.Errorf("catalog api: sku lookup without product")
		}
		return *env.Product, true, nil
	case http.StatusNotFound:
		return model.Product{}, false, nil
	default:
		return model.Product{}, false, fmt.Errorf("catalog api: sku %d", code)
	}
}

func (c *Client) Clear(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/api/catalog", nil)
	if err != nil {
		return err
	}
	var env envelope
	code, err := c.do(req, &env)
	if err != nil {
		return err
	}
	if code != http.StatusOK || !env.OK {
		return fmt.Errorf("catalog api: clear %d: %s", code, env.Error)
	}
	return nil
}
