// Package woocommerce is a minimal client of the WooCommerce REST API (wc/v3)
// covering the category and product listings used by the spice catalog.
package woocommerce

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/flavorinthejar/smakosz/backend/internal/model"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Config holds the store address and REST API credentials.
type Config struct {
	StoreURL       string
	ConsumerKey    string
	ConsumerSecret string
	Timeout        time.Duration
}

// Client implements catalog.Fetcher against a WooCommerce store.
type Client struct {
	client *resty.Client
	log    *zap.Logger
}

type wcCategory struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type wcImage struct {
	Src string `json:"src"`
}

type wcProduct struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	ShortDescription string    `json:"short_description"`
	Price            string    `json:"price"`
	Images           []wcImage `json:"images"`
	Permalink        string    `json:"permalink"`
}

func NewClient(cfg Config, log *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.StoreURL, "/")+"/wp-json/wc/v3").
		SetBasicAuth(cfg.ConsumerKey, cfg.ConsumerSecret).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)

	return &Client{client: client, log: log}
}

// FetchCategories lists all product categories.
func (c *Client) FetchCategories(ctx context.Context) ([]model.Category, error) {
	var raw []wcCategory
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("per_page", "100").
		SetResult(&raw).
		Get("/products/categories")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("woocommerce returned %d for categories: %s", resp.StatusCode(), resp.String())
	}

	categories := make([]model.Category, 0, len(raw))
	for _, rc := range raw {
		categories = append(categories, model.Category{ID: rc.ID, Name: rc.Name})
	}
	c.log.Debug("fetched categories", zap.Int("count", len(categories)))
	return categories, nil
}

// FetchProducts lists products of a category. categoryID 0 lists all products.
func (c *Client) FetchProducts(ctx context.Context, categoryID int64, perPage int) ([]model.Product, error) {
	req := c.client.R().
		SetContext(ctx).
		SetQueryParam("per_page", strconv.Itoa(perPage))
	if categoryID != 0 {
		req.SetQueryParam("category", strconv.FormatInt(categoryID, 10))
	}

	var raw []wcProduct
	resp, err := req.SetResult(&raw).Get("/products")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("woocommerce returned %d for products: %s", resp.StatusCode(), resp.String())
	}

	products := make([]model.Product, 0, len(raw))
	for _, rp := range raw {
		p := model.Product{
			ID:               rp.ID,
			Name:             rp.Name,
			ShortDescription: rp.ShortDescription,
			Price:            rp.Price,
			Permalink:        rp.Permalink,
		}
		for _, img := range rp.Images {
			p.Images = append(p.Images, img.Src)
		}
		products = append(products, p)
	}
	c.log.Debug("fetched products", zap.Int64("category", categoryID), zap.Int("count", len(products)))
	return products, nil
}
