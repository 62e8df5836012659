package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/flavorinthejar/smakosz/backend/internal/apperr"
	"github.com/flavorinthejar/smakosz/backend/internal/model"
)

func TestListSpices(t *testing.T) {
	ts := newTestServer(t, false)
	ts.catalog.On("SpiceProducts", mock.Anything).Return(testSpices, nil)

	w := ts.do(t, http.MethodGet, "/api/v1/spices", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Spices []model.SpiceRecommendation `json:"spices"`
	}
	decode(t, w, &body)
	require.Len(t, body.Spices, 2)
	assert.Equal(t, "Klasyka", body.Spices[0].Description)
	assert.Equal(t, "https://sklep.example/?add-to-cart=21", body.Spices[0].AddToCartURL)
}

func TestListSpicesCatalogUnavailable(t *testing.T) {
	ts := newTestServer(t, false)
	ts.catalog.On("SpiceProducts", mock.Anything).Return(nil, apperr.CatalogUnavailable(errors.New("dial tcp")))

	w := ts.do(t, http.MethodGet, "/api/v1/spices", nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "CATALOG_UNAVAILABLE")
}

func TestGetSpice(t *testing.T) {
	ts := newTestServer(t, false)
	ts.catalog.On("SpiceProduct", mock.Anything, int64(22)).Return(&testSpices[1], nil)
	ts.catalog.On("SpiceProduct", mock.Anything, int64(99)).Return(nil, apperr.NotFound("spice not found"))

	w := ts.do(t, http.MethodGet, "/api/v1/spices/22", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var spice model.SpiceRecommendation
	decode(t, w, &spice)
	assert.Equal(t, "Przyprawa do zup", spice.Name)
	assert.Equal(t, "https://sklep.example/p/22", spice.ProductURL)

	w = ts.do(t, http.MethodGet, "/api/v1/spices/99", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(t, http.MethodGet, "/api/v1/spices/abc", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, false)

	w := ts.do(t, http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}
