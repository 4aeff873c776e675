package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"readiness/internal/domain"
	"readiness/internal/handler"
	"readiness/internal/router"
	"readiness/internal/schema"
	"readiness/mocks"
)

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

func newEngine(t *testing.T) (*gin.Engine, *mocks.MockUploadService, *mocks.MockReportService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s, err := schema.Default()
	require.NoError(t, err)

	uploadSvc := new(mocks.MockUploadService)
	reportSvc := new(mocks.MockReportService)
	analysisSvc := new(mocks.MockAnalysisService)

	r := router.Setup(router.Handlers{
		Upload:   handler.NewUploadHandler(uploadSvc),
		Analysis: handler.NewAnalysisHandler(analysisSvc),
		Report:   handler.NewReportHandler(reportSvc),
		Schema:   handler.NewSchemaHandler(s),
		Health:   handler.NewHealthHandler(okPinger{}),
	}, []string{"http://localhost:3000"})
	return r, uploadSvc, reportSvc
}

func TestSetup_Routes(t *testing.T) {
	r, _, _ := newEngine(t)

	routes := make(map[string]bool)
	for _, ri := range r.Routes() {
		routes[ri.Method+" "+ri.Path] = true
	}
	for _, want := range []string{
		"GET /healthz",
		"GET /readyz",
		"GET /metrics",
		"GET /api/v1/schema",
		"POST /api/v1/uploads",
		"GET /api/v1/uploads/:id",
		"POST /api/v1/analyze",
		"GET /api/v1/reports",
		"GET /api/v1/reports/:id",
		"GET /api/v1/reports/:id/export",
	} {
		assert.True(t, routes[want], "missing route %s", want)
	}
}

func TestSetup_ServesRequests(t *testing.T) {
	r, uploadSvc, reportSvc := newEngine(t)
	uploadSvc.On("GetByID", mock.Anything, "u_missing").Return(nil, domain.ErrUploadNotFound)
	reportSvc.On("ListRecent", mock.Anything, 0).Return([]domain.ReportSummary{}, 10, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/uploads/u_missing", http.NoBody)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/api/v1/reports", http.NoBody)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/metrics", http.NoBody)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "go_goroutines"))
}

func TestSetup_CORSPreflight(t *testing.T) {
	r, _, _ := newEngine(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodOptions, "/api/v1/analyze", http.NoBody)
	req.Header.Set("Origin", "http://localhost:3000")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
