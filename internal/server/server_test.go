package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/advisor/internal/config"
	"github.com/aristath/advisor/internal/database"
	"github.com/aristath/advisor/internal/modules/advisor"
	advisorhandlers "github.com/aristath/advisor/internal/modules/advisor/handlers"
	"github.com/aristath/advisor/internal/modules/charts"
	chartshandlers "github.com/aristath/advisor/internal/modules/charts/handlers"
	"github.com/aristath/advisor/internal/modules/universe"
	universehandlers "github.com/aristath/advisor/internal/modules/universe/handlers"
)

// newTestServer wires a full server against an in-memory database
func newTestServer(t *testing.T) *Server {
	t.Helper()

	log := zerolog.Nop()

	db, err := database.New(database.Config{Path: ":memory:", Name: "universe"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := universe.NewSecurityRepository(db.Conn(), log)
	require.NoError(t, repo.Migrate())
	require.NoError(t, universe.Seed(repo, log))

	searchIndex, err := universe.NewSearchIndex(universe.DefaultCatalog(), log)
	require.NoError(t, err)
	t.Cleanup(func() { searchIndex.Close() })

	engine := advisor.NewEngine(log)
	advisorService := advisor.NewService(repo, engine, log)
	chartsService := charts.NewService(repo, log)

	cfg := &config.Config{
		Port:                 8080,
		DevMode:              true,
		DefaultFunds:         10000,
		MaxAllocationPercent: 10,
	}

	return New(Config{
		Log:              log,
		Config:           cfg,
		UniverseDB:       db,
		UniverseHandlers: universehandlers.NewHandler(repo, searchIndex, log),
		AdvisorHandlers:  advisorhandlers.NewHandler(advisorService, cfg.DefaultFunds, cfg.MaxAllocationPercent, log),
		ChartsHandlers:   chartshandlers.NewHandler(chartsService, log),
	})
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestSecuritiesEndpoint(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/securities", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 10, body.Count)
}

func TestRecommendationsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/recommendations?funds=10000", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var batch advisor.Batch
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &batch))
	assert.Len(t, batch.Recommendations, 10)
	assert.Equal(t, "NVDA", batch.Recommendations[0].Symbol)
}

func TestRecommendationsEndpointRejectsBadFunds(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/recommendations?funds=-100", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChartHistoryEndpoint(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/charts/AAPL/history?days=10", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var history charts.History
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	assert.Len(t, history.Points, 11)
}

func TestSystemStatusEndpoint(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/system/status", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var status SystemStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, 10, status.SecurityCount)
}

func TestUnknownAPIPathReturns404(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDashboardServedAtRoot(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/", "/recommendations"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html", path)
	}
}
