package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/flavorinthejar/smakosz/backend/internal/data"
	"github.com/flavorinthejar/smakosz/backend/internal/extract"
	"github.com/flavorinthejar/smakosz/backend/internal/middleware"
	"github.com/flavorinthejar/smakosz/backend/internal/mocks"
	"github.com/flavorinthejar/smakosz/backend/internal/model"
	"github.com/flavorinthejar/smakosz/backend/internal/service"
	"github.com/flavorinthejar/smakosz/backend/internal/spice"
	"github.com/flavorinthejar/smakosz/backend/internal/testdb"
	"github.com/flavorinthejar/smakosz/backend/internal/vectorstore"
)

const adminSecret = "api-test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

// topicEmbedder gives texts about the same dish the same vector.
type topicEmbedder struct{}

func (topicEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	lower := strings.ToLower(text)
	topics := []string{"dyni", "makaron", "ciecierzyc"}
	vec := make([]float32, len(topics)+1)
	for i, k := range topics {
		if strings.Contains(lower, k) {
			vec[i] = 1
		}
	}
	vec[len(topics)] = 0.05
	return vec, nil
}

var testSpices = []model.Product{
	{ID: 21, Name: "Przyprawa do mięs", ShortDescription: "<b>Klasyka</b>", Price: "12.00", Permalink: "https://sklep.example/p/21"},
	{ID: 22, Name: "Przyprawa do zup", ShortDescription: "Na każdy wywar", Price: "8.50", Permalink: "https://sklep.example/p/22"},
}

type testServer struct {
	router      *gin.Engine
	generator   *mocks.MockGenerator
	catalog     *mocks.MockSpiceCatalog
	transcriber *mocks.MockTranscriber
	describer   *mocks.MockImageDescriber
}

func newTestServer(t *testing.T, seed bool) *testServer {
	t.Helper()
	log := zap.NewNop()

	db := testdb.SQLite(t)
	require.NoError(t, vectorstore.AutoMigrate(db))
	store := vectorstore.New(db, topicEmbedder{}, log)
	if seed {
		recipes := data.SampleRecipes()
		for i := range recipes {
			require.NoError(t, store.Add(context.Background(), &recipes[i]))
		}
	}

	ts := &testServer{
		generator:   new(mocks.MockGenerator),
		catalog:     new(mocks.MockSpiceCatalog),
		transcriber: new(mocks.MockTranscriber),
		describer:   new(mocks.MockImageDescriber),
	}
	matcher := spice.NewMatcher(ts.catalog, "https://sklep.example", log)
	recipes := service.NewRecipeService(store, ts.generator, extract.New(log), matcher, service.Options{MinSimilarity: 0.6, MaxUploadBytes: 1 << 10}, log)
	media := service.NewMediaService(recipes, ts.transcriber, ts.describer, nil, log)
	spices := service.NewSpiceService(ts.catalog, matcher)

	router := gin.New()
	router.Use(middleware.ErrorHandler(log))
	v1 := router.Group("/api/v1")
	NewAnalyzeHandler(recipes, media, log).RegisterRoutes(v1)
	NewRecipeHandler(recipes, adminSecret).RegisterRoutes(v1)
	NewSpiceHandler(spices).RegisterRoutes(v1)
	NewHealthHandler(recipes).RegisterRoutes(router)
	ts.router = router

	t.Cleanup(func() {
		ts.generator.AssertExpectations(t)
		ts.catalog.AssertExpectations(t)
		ts.transcriber.AssertExpectations(t)
		ts.describer.AssertExpectations(t)
	})
	return ts
}

func (ts *testServer) do(t *testing.T, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = strings.NewReader(b)
		default:
			jsonData, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(jsonData)
		}
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func (ts *testServer) upload(t *testing.T, path, filename, contentType string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func adminHeader(t *testing.T) map[string]string {
	t.Helper()
	token, err := middleware.NewAdminToken(adminSecret, "tests", time.Hour)
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + token}
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}
