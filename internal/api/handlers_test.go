package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orchestrarfp/gotender/internal/api"
	"github.com/orchestrarfp/gotender/internal/config"
	"github.com/orchestrarfp/gotender/internal/domain"
	"github.com/orchestrarfp/gotender/internal/logger"
)

type stubService struct {
	records    []domain.TenderRecord
	calls      int
	forceCalls int
}

func (s *stubService) GetTenders(_ context.Context, forceRefresh bool) []domain.TenderRecord {
	s.calls++
	if forceRefresh {
		s.forceCalls++
	}
	return s.records
}

func testCatalog() []string {
	return []string{
		"Premium emulsion paint for interior walls",
		"De-rusting primer for steel pipes",
		"Exterior weatherproof coating",
		"Industrial enamel for machinery",
	}
}

func newTestRouter(service *stubService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handlers := api.NewHandlers(service, testCatalog(), 100000, logger.NewNoOp())
	return api.NewRouter(handlers)
}

func TestGetTendersServesRecords(t *testing.T) {
	service := &stubService{
		records: []domain.TenderRecord{
			{Title: "Supply of Interior Paints", Number: "T-100", Score: 65, Source: "etenders.gov.in"},
		},
	}
	router := newTestRouter(service)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tenders", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Tenders []domain.TenderRecord `json:"tenders"`
		Count   int                   `json:"count"`
		Message string                `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "T-100", resp.Tenders[0].Number)
	assert.Empty(t, resp.Message)
	assert.Equal(t, 1, service.calls)
	assert.Zero(t, service.forceCalls)
}

func TestGetTendersRefreshQueryForcesDiscovery(t *testing.T) {
	service := &stubService{}
	router := newTestRouter(service)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tenders?refresh=true", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, service.forceCalls)
}

func TestGetTendersEmptyCarriesMessage(t *testing.T) {
	router := newTestRouter(&stubService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tenders", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count   int    `json:"count"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Zero(t, resp.Count)
	assert.Contains(t, resp.Message, "force refresh")
}

func TestRefreshAlwaysForces(t *testing.T) {
	service := &stubService{}
	router := newTestRouter(service)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/refresh", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, service.forceCalls)
}

func TestMatchJSONQuery(t *testing.T) {
	router := newTestRouter(&stubService{})

	body := `{"query": "need primer for de-rusting steel pipes"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/match", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Match struct {
			Best        string  `json:"best"`
			BestPercent float64 `json:"best_percent"`
		} `json:"match"`
		Suggestion struct {
			Price float64 `json:"price"`
		} `json:"suggestion"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "De-rusting primer for steel pipes", resp.Match.Best)
	assert.Greater(t, resp.Match.BestPercent, 0.0)
	assert.Greater(t, resp.Suggestion.Price, 0.0)
}

func TestMatchCustomBasePrice(t *testing.T) {
	router := newTestRouter(&stubService{})

	body := `{"query": "exterior weatherproof coating", "base_price": 50000}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/match", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Suggestion struct {
			Price float64 `json:"price"`
		} `json:"suggestion"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.LessOrEqual(t, resp.Suggestion.Price, 50000.0)
}

func TestMatchRejectsEmptyQuery(t *testing.T) {
	router := newTestRouter(&stubService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/match", strings.NewReader(`{"query": "   "}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMatchRejectsBadBody(t *testing.T) {
	router := newTestRouter(&stubService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/match", strings.NewReader("not json"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMatchDocumentUpload(t *testing.T) {
	router := newTestRouter(&stubService{})

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("document", "requirement.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("Looking for premium emulsion paint, interior walls"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/match", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Match struct {
			Best string `json:"best"`
		} `json:"match"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "Premium emulsion paint for interior walls", resp.Match.Best)
}

func TestMatchUploadMissingFile(t *testing.T) {
	router := newTestRouter(&stubService{})

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("other", "value"))
	require.NoError(t, writer.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/match", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(&stubService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func testServerConfig() config.Server {
	return config.Server{
		Address:      "127.0.0.1:0",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		IdleTimeout:  30 * time.Second,
	}
}

func TestServerShutdown(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handlers := api.NewHandlers(&stubService{}, testCatalog(), 100000, logger.NewNoOp())
	server := api.NewServer(testServerConfig(), handlers, logger.NewNoOp())

	done := make(chan error, 1)
	go func() { done <- server.Start() }()

	// Give the listener a moment to come up before stopping it.
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, server.Shutdown(ctx))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}
