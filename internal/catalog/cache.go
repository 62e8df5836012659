// Package catalog caches category and product listings of the spice store.
package catalog

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/flavorinthejar/smakosz/backend/internal/apperr"
	"github.com/flavorinthejar/smakosz/backend/internal/model"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	DefaultTTL     = time.Hour
	DefaultPerPage = 100

	// fetchTimeout bounds a shared refresh, which no caller can cancel.
	fetchTimeout = time.Minute

	categoriesKey   = "catalog:categories"
	productsKeyBase = "catalog:products:"
)

// spiceCategoryKeywords identify the spice category among the store categories.
var spiceCategoryKeywords = []string{"przypraw", "spice", "seasoning", "blend"}

// Fetcher is the external catalog.
type Fetcher interface {
	FetchCategories(ctx context.Context) ([]model.Category, error)
	// FetchProducts lists products of a category; categoryID 0 lists all products.
	FetchProducts(ctx context.Context, categoryID int64, perPage int) ([]model.Product, error)
}

// Entry is a cached listing together with the time it was fetched.
type Entry struct {
	FetchedAt  time.Time        `json:"fetched_at"`
	Categories []model.Category `json:"categories,omitempty"`
	Products   []model.Product  `json:"products,omitempty"`
}

// Store holds cache entries. Implementations treat backend failures as a miss.
type Store interface {
	Get(ctx context.Context, key string) (*Entry, bool)
	Set(ctx context.Context, key string, entry *Entry)
}

// Config controls expiry and page size of product listings.
type Config struct {
	TTL     time.Duration
	PerPage int
}

// Cache serves catalog listings from a Store and refetches them from the
// Fetcher once they are older than the TTL. Stale entries are never served
// past expiry. Concurrent refreshes of the same key share one fetch; a
// refresh racing another key's write is last-writer-wins.
type Cache struct {
	fetcher Fetcher
	store   Store
	ttl     time.Duration
	perPage int
	now     func() time.Time
	group   singleflight.Group
	log     *zap.Logger
}

// New creates a Cache. Zero config values take the defaults.
func New(fetcher Fetcher, store Store, cfg Config, log *zap.Logger) *Cache {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.PerPage <= 0 {
		cfg.PerPage = DefaultPerPage
	}
	return &Cache{
		fetcher: fetcher,
		store:   store,
		ttl:     cfg.TTL,
		perPage: cfg.PerPage,
		now:     time.Now,
		log:     log,
	}
}

// Categories returns the store categories.
func (c *Cache) Categories(ctx context.Context) ([]model.Category, error) {
	entry, err := c.load(ctx, categoriesKey, func(ctx context.Context) (*Entry, error) {
		categories, err := c.fetcher.FetchCategories(ctx)
		if err != nil {
			return nil, err
		}
		return &Entry{Categories: categories}, nil
	})
	if err != nil {
		return nil, err
	}
	return entry.Categories, nil
}

// Products returns the products of a category, 0 meaning all products.
func (c *Cache) Products(ctx context.Context, categoryID int64) ([]model.Product, error) {
	key := productsKeyBase + strconv.FormatInt(categoryID, 10)
	entry, err := c.load(ctx, key, func(ctx context.Context) (*Entry, error) {
		products, err := c.fetcher.FetchProducts(ctx, categoryID, c.perPage)
		if err != nil {
			return nil, err
		}
		return &Entry{Products: products}, nil
	})
	if err != nil {
		return nil, err
	}
	return entry.Products, nil
}

// SpiceProducts returns the products of the first spice category, or every
// product when the store has no spice category.
func (c *Cache) SpiceProducts(ctx context.Context) ([]model.Product, error) {
	categories, err := c.Categories(ctx)
	if err != nil {
		return nil, err
	}
	return c.Products(ctx, spiceCategoryID(categories))
}

// SpiceProduct looks a product up by id among the spice products.
func (c *Cache) SpiceProduct(ctx context.Context, id int64) (*model.Product, error) {
	products, err := c.SpiceProducts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, apperr.NotFound("spice not found")
}

func (c *Cache) load(ctx context.Context, key string, fetch func(context.Context) (*Entry, error)) (*Entry, error) {
	if entry, ok := c.store.Get(ctx, key); ok && c.now().Sub(entry.FetchedAt) < c.ttl {
		return entry, nil
	}

	// The shared fetch outlives the caller that started it, so one
	// disconnected client cannot fail the others waiting on the same key.
	ch := c.group.DoChan(key, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fetchTimeout)
		defer cancel()
		entry, err := fetch(fetchCtx)
		if err != nil {
			return nil, err
		}
		entry.FetchedAt = c.now()
		c.store.Set(fetchCtx, key, entry)
		return entry, nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if res.Err != nil {
		c.log.Error("catalog fetch failed", zap.String("key", key), zap.Error(res.Err))
		return nil, apperr.CatalogUnavailable(res.Err)
	}
	c.log.Debug("catalog refreshed", zap.String("key", key), zap.Bool("shared", res.Shared))
	return res.Val.(*Entry), nil
}

func spiceCategoryID(categories []model.Category) int64 {
	lower := cases.Lower(language.Polish)
	for _, cat := range categories {
		name := lower.String(cat.Name)
		for _, kw := range spiceCategoryKeywords {
			if strings.Contains(name, kw) {
				return cat.ID
			}
		}
	}
	return 0
}
