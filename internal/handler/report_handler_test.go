package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fashionforward/psp-router/internal/model"
)

func TestReportHandler_GetReport(t *testing.T) {
	router := setupRouter(t)

	t.Run("happy: explicit count and strategy", func(t *testing.T) {
		w := doJSON(t, router, "POST", "/api/v1/reports/performance", map[string]any{
			"transaction_count": 60,
			"routing_strategy":  "balanced",
		})
		assert.Equal(t, http.StatusOK, w.Code)

		var report model.PerformanceReport
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
		assert.Equal(t, 60, report.TotalTransactions)
		assert.Equal(t, model.StrategyBalanced, report.Strategy)
		assert.Equal(t, 60, report.SmartRetry.Approved+report.SmartRetry.Declined)
		assert.GreaterOrEqual(t, report.SmartRetry.Approved, report.NoRetry.Approved)
		assert.Len(t, report.ByCountry, 3)
	})

	t.Run("happy: empty body uses defaults", func(t *testing.T) {
		w := doJSON(t, router, "POST", "/api/v1/reports/performance", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var report model.PerformanceReport
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
		assert.Equal(t, 210, report.TotalTransactions)
		assert.Equal(t, model.DefaultStrategy, report.Strategy)
	})

	t.Run("bad: invalid strategy", func(t *testing.T) {
		w := doJSON(t, router, "POST", "/api/v1/reports/performance", map[string]any{
			"routing_strategy": "approval_rate",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bad: count above cap", func(t *testing.T) {
		w := doJSON(t, router, "POST", "/api/v1/reports/performance", map[string]any{
			"transaction_count": 100000,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHealthHandler_Health(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(t, router, "GET", "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
	assert.EqualValues(t, 9, resp["providers"])
}
