package woocommerce

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/wp-json/wc/v3/products/categories", func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "ck_test" || pass != "cs_test" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"code":"woocommerce_rest_cannot_view"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":15,"name":"Przyprawy","slug":"przyprawy"},{"id":16,"name":"Herbaty"}]`))
	})
	mux.HandleFunc("/wp-json/wc/v3/products", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "15", r.URL.Query().Get("category"))
		assert.Equal(t, "50", r.URL.Query().Get("per_page"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{
			"id": 101,
			"name": "Przyprawa do mięs",
			"short_description": "<p>Aromatyczna</p>",
			"price": "14.99",
			"price_html": "<span>14,99 zł</span>",
			"images": [{"id": 1, "src": "https://sklep.example/a.jpg"}, {"id": 2, "src": "https://sklep.example/b.jpg"}],
			"permalink": "https://sklep.example/produkt/przyprawa-do-mies"
		}]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchCategories(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(Config{StoreURL: srv.URL + "/", ConsumerKey: "ck_test", ConsumerSecret: "cs_test"}, zap.NewNop())

	categories, err := c.FetchCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, int64(15), categories[0].ID)
	assert.Equal(t, "Przyprawy", categories[0].Name)
}

func TestFetchCategoriesUnauthorized(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(Config{StoreURL: srv.URL, ConsumerKey: "ck_test", ConsumerSecret: "wrong"}, zap.NewNop())

	_, err := c.FetchCategories(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestFetchProducts(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(Config{StoreURL: srv.URL, ConsumerKey: "ck_test", ConsumerSecret: "cs_test"}, zap.NewNop())

	products, err := c.FetchProducts(context.Background(), 15, 50)
	require.NoError(t, err)
	require.Len(t, products, 1)

	p := products[0]
	assert.Equal(t, int64(101), p.ID)
	assert.Equal(t, "Przyprawa do mięs", p.Name)
	assert.Equal(t, "<p>Aromatyczna</p>", p.ShortDescription)
	assert.Equal(t, "14.99", p.Price)
	assert.Equal(t, []string{"https://sklep.example/a.jpg", "https://sklep.example/b.jpg"}, p.Images)
	assert.Equal(t, "https://sklep.example/produkt/przyprawa-do-mies", p.Permalink)
}

func TestFetchProductsUnreachable(t *testing.T) {
	srv := newTestServer(t)
	url := srv.URL
	srv.Close()
	c := NewClient(Config{StoreURL: url}, zap.NewNop())

	_, err := c.FetchProducts(context.Background(), 0, 100)
	assert.Error(t, err)
}
