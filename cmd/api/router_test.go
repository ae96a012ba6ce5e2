package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func probeHealth(t *testing.T, probes []probe) (int, map[string]interface{}) {
	t.Helper()

	r := gin.New()
	r.GET("/health", healthHandler("1.2.3", probes))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestHealthHandler(t *testing.T) {
	ok := func(detail string) func(context.Context) (string, error) {
		return func(context.Context) (string, error) { return detail, nil }
	}

	t.Run("AllHealthy", func(t *testing.T) {
		code, body := probeHealth(t, []probe{
			{name: "database", check: ok("ok")},
			{name: "schema", check: ok("version 1")},
		})

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "ok", body["status"])
		assert.Equal(t, "1.2.3", body["version"])
		services := body["services"].(map[string]interface{})
		assert.Equal(t, "version 1", services["schema"])
	})

	t.Run("OneProbeFails", func(t *testing.T) {
		code, body := probeHealth(t, []probe{
			{name: "database", check: ok("ok")},
			{name: "cache", check: func(context.Context) (string, error) {
				return "", errors.New("connection refused")
			}},
		})

		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "degraded", body["status"])
		services := body["services"].(map[string]interface{})
		assert.Equal(t, "ok", services["database"])
		assert.Equal(t, "error: connection refused", services["cache"])
	})
}
