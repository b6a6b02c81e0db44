package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/fashionforward/psp-router/internal/catalog"
	"github.com/fashionforward/psp-router/internal/engine"
	"github.com/fashionforward/psp-router/internal/middleware"
	"github.com/fashionforward/psp-router/internal/service"
	"github.com/fashionforward/psp-router/internal/simulator"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	cat := catalog.New()
	eng := engine.New(cat, simulator.New())
	routingSvc := service.NewRoutingService(eng)
	reportSvc := service.NewReportService(eng)

	authorizeHandler := NewAuthorizeHandler(routingSvc)
	reportHandler := NewReportHandler(reportSvc)
	healthHandler := NewHealthHandler(cat)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandler())

	router.GET("/health", healthHandler.Health)
	api := router.Group("/api/v1")
	api.POST("/authorize", authorizeHandler.Authorize)
	api.POST("/authorize/batch", authorizeHandler.AuthorizeBatch)
	api.POST("/reports/performance", reportHandler.GetReport)

	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	w := httptest.NewRecorder()
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}
