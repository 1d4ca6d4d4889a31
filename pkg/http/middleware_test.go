/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/acsgateway/pkg/logger"
	"github.com/carverauto/acsgateway/pkg/models"
)

func okHandler(t *testing.T) http.Handler {
	t.Helper()

	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			t.Errorf("Error writing response: %v", err)
		}
	})
}

func TestCommonMiddleware_CORS(t *testing.T) {
	log := logger.NewTestLogger()

	corsConfig := models.CORSConfig{
		AllowedOrigins:   []string{"http://localhost:1234"},
		AllowCredentials: true,
		MaxAge:           86400,
	}

	handler := CommonMiddleware(okHandler(t), corsConfig, log)

	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	req.Header.Set("Origin", "http://localhost:1234")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "http://localhost:1234", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "86400", rr.Header().Get("Access-Control-Max-Age"))

	// Test unallowed origin
	req = httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	req.Header.Set("Origin", "http://evil.com")

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestCommonMiddleware_Preflight(t *testing.T) {
	called := false

	handler := CommonMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}), models.CORSConfig{AllowedOrigins: []string{"*"}}, logger.NewTestLogger())

	req := httptest.NewRequest(http.MethodOptions, "/devices/x/reboot", http.NoBody)
	req.Header.Set("Origin", "http://anywhere.example")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.False(t, called)
	assert.Equal(t, "http://anywhere.example", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestAPIKeyMiddleware_Unauthorized(t *testing.T) {
	log := logger.NewTestLogger()

	opts := APIKeyOptions{
		APIKey:          "test-key",
		ExcludePaths:    []string{"/health"},
		LogUnauthorized: true,
		Logger:          log,
	}

	handler := APIKeyMiddlewareWithOptions(opts)(okHandler(t))

	req := httptest.NewRequest(http.MethodGet, "/api/test", http.NoBody)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusForbidden, rr.Code)

	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, http.StatusForbidden, body.Status)
}

func TestAPIKeyMiddleware_Credentials(t *testing.T) {
	handler := APIKeyMiddlewareWithOptions(APIKeyOptions{
		APIKey:          "s3cret",
		ExcludePaths:    []string{"/health"},
		QueryTokenPaths: []string{"/metrics/stream"},
	})(okHandler(t))

	tests := []struct {
		name   string
		method string
		target string
		header map[string]string
		want   int
	}{
		{name: "x-api-key", method: http.MethodGet, target: "/devices/list", header: map[string]string{"X-API-Key": "s3cret"}, want: http.StatusOK},
		{name: "bearer", method: http.MethodPost, target: "/devices/a/reboot", header: map[string]string{"Authorization": "Bearer s3cret"}, want: http.StatusOK},
		{name: "bearer lowercase scheme", method: http.MethodGet, target: "/devices/list", header: map[string]string{"Authorization": "bearer s3cret"}, want: http.StatusOK},
		{name: "bearer uppercase scheme", method: http.MethodGet, target: "/devices/list", header: map[string]string{"Authorization": "BEARER s3cret"}, want: http.StatusOK},
		{name: "bearer without token", method: http.MethodGet, target: "/devices/list", header: map[string]string{"Authorization": "Bearer "}, want: http.StatusForbidden},
		{name: "wrong key", method: http.MethodGet, target: "/devices/list", header: map[string]string{"X-API-Key": "s3cret2"}, want: http.StatusForbidden},
		{name: "prefix of key", method: http.MethodGet, target: "/devices/list", header: map[string]string{"X-API-Key": "s3c"}, want: http.StatusForbidden},
		{name: "basic auth ignored", method: http.MethodGet, target: "/devices/list", header: map[string]string{"Authorization": "Basic s3cret"}, want: http.StatusForbidden},
		{name: "excluded path", method: http.MethodGet, target: "/health", want: http.StatusOK},
		{name: "preflight", method: http.MethodOptions, target: "/devices/a/reboot", want: http.StatusOK},
		{name: "stream token", method: http.MethodGet, target: "/metrics/stream?token=s3cret", want: http.StatusOK},
		{name: "stream bad token", method: http.MethodGet, target: "/metrics/stream?token=nope", want: http.StatusForbidden},
		{name: "token ignored elsewhere", method: http.MethodGet, target: "/devices/list?token=s3cret", want: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, http.NoBody)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.want, rr.Code)
		})
	}
}

func TestAPIKeyMiddleware_EmptyKeyRejectsAll(t *testing.T) {
	handler := APIKeyMiddleware("", logger.NewTestLogger())(okHandler(t))

	req := httptest.NewRequest(http.MethodGet, "/devices/list", http.NoBody)
	req.Header.Set("X-API-Key", "")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestRequestLoggerKeepsFlusher(t *testing.T) {
	var flushed bool

	handler := RequestLogger(logger.NewTestLogger())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)

		f, ok := w.(http.Flusher)
		require.True(t, ok)
		f.Flush()

		flushed = true
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics/stream", http.NoBody))

	assert.True(t, flushed)
	assert.True(t, rr.Flushed)
	assert.Equal(t, http.StatusAccepted, rr.Code)
}
