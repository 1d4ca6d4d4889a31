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

// Package api provides the HTTP API server for the ACS gateway
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	srHttp "github.com/carverauto/acsgateway/pkg/http"
	"github.com/carverauto/acsgateway/pkg/logger"
	"github.com/carverauto/acsgateway/pkg/models"
	"github.com/carverauto/acsgateway/pkg/overview"
	"github.com/carverauto/acsgateway/pkg/version"
)

const (
	metricsStreamPath = "/metrics/stream"
	metricsWSPath     = "/metrics/ws"
	healthPath        = "/health"
)

// NewAPIServer creates a new API server instance with the given configuration
func NewAPIServer(config models.CORSConfig, options ...func(server *APIServer)) *APIServer {
	s := &APIServer{
		router:     mux.NewRouter(),
		corsConfig: config,
		version:    version.GetVersion(),
		logger:     logger.NewTestLogger(),
		now:        time.Now,
	}

	for _, o := range options {
		o(s)
	}

	s.setupRoutes()

	return s
}

// WithLogger sets the server logger
func WithLogger(log logger.Logger) func(server *APIServer) {
	return func(server *APIServer) {
		server.logger = log
	}
}

// WithAPIKey sets the secret every protected request must present
func WithAPIKey(key string) func(server *APIServer) {
	return func(server *APIServer) {
		server.apiKey = key
	}
}

// WithNBIURL sets the NBI address reported by /health
func WithNBIURL(u string) func(server *APIServer) {
	return func(server *APIServer) {
		server.nbiURL = u
	}
}

// WithDispatcher adds the task dispatcher
func WithDispatcher(d TaskDispatcher) func(server *APIServer) {
	return func(server *APIServer) {
		server.dispatcher = d
	}
}

// WithInventory adds the device inventory
func WithInventory(inv Inventory) func(server *APIServer) {
	return func(server *APIServer) {
		server.inventory = inv
	}
}

// WithOverview adds the overview source and its default windows
func WithOverview(c overview.Computer, cfg models.OverviewConfig) func(server *APIServer) {
	return func(server *APIServer) {
		server.overview = c
		server.overviewCfg = cfg
	}
}

// WithClock overrides the time source
func WithClock(now func() time.Time) func(server *APIServer) {
	return func(server *APIServer) {
		server.now = now
	}
}

// setupRoutes configures the HTTP routes for the API server.
func (s *APIServer) setupRoutes() {
	s.router.UseEncodedPath()

	s.router.HandleFunc(healthPath, s.getHealth).Methods(http.MethodGet)

	s.setupDeviceRoutes()
	s.setupMetricsRoutes()
	s.setupMiddleware()
}

func (s *APIServer) setupDeviceRoutes() {
	r := s.router.PathPrefix("/devices").Subrouter()

	r.HandleFunc("/list", s.listDevices).Methods(http.MethodGet)
	r.HandleFunc("/detail/{id}", s.getDeviceDetail).Methods(http.MethodGet)

	r.HandleFunc("/{id}/wifi", s.changeWiFi).Methods(http.MethodPost)
	r.HandleFunc("/{id}/pppoe", s.changePPPoE).Methods(http.MethodPost)
	r.HandleFunc("/{id}/reboot", s.rebootDevice).Methods(http.MethodPost)
	r.HandleFunc("/{id}/factory_reset", s.factoryReset).Methods(http.MethodPost)
	r.HandleFunc("/{id}/parameters", s.getParameters).Methods(http.MethodPost)
	r.HandleFunc("/{id}/wifi_and_reboot", s.wifiAndReboot).Methods(http.MethodPost)
	r.HandleFunc("/{id}/connreq", s.connectionRequest).Methods(http.MethodPost)

	r.HandleFunc("/{id}/ssid", s.readSSID).Methods(http.MethodGet)
	r.HandleFunc("/{id}/read_value", s.readValue).Methods(http.MethodGet)
}

func (s *APIServer) setupMetricsRoutes() {
	r := s.router.PathPrefix("/metrics").Subrouter()

	r.HandleFunc("/overview", s.getOverview).Methods(http.MethodGet)
	r.HandleFunc("/distribution", s.getDistribution).Methods(http.MethodGet)
	r.HandleFunc("/last-informs", s.getLastInforms).Methods(http.MethodGet)
	r.HandleFunc("/stream", s.streamOverview).Methods(http.MethodGet)
	r.HandleFunc("/ws", s.handleOverviewWebSocket).Methods(http.MethodGet)
}

// setupMiddleware wraps the whole router so preflights and auth failures
// are answered before route matching.
func (s *APIServer) setupMiddleware() {
	auth := srHttp.APIKeyMiddlewareWithOptions(srHttp.APIKeyOptions{
		APIKey:          s.apiKey,
		ExcludePaths:    []string{healthPath},
		QueryTokenPaths: []string{metricsStreamPath, metricsWSPath},
		LogUnauthorized: true,
		Logger:          s.logger,
	})

	var h http.Handler = s.router
	h = auth(h)
	h = srHttp.RequestLogger(s.logger)(h)
	h = srHttp.CommonMiddleware(h, s.corsConfig, s.logger)

	s.handler = h
}

// Handler returns the fully wrapped HTTP handler.
func (s *APIServer) Handler() http.Handler {
	return s.handler
}

const (
	defaultReadHeaderTimeout = 10 * time.Second
	defaultIdleTimeout       = 60 * time.Second
	shutdownTimeout          = 10 * time.Second
)

// Start serves on addr until ctx is done, then shuts down gracefully.
// There is no read or write timeout: the stream endpoints hold requests
// open and a read deadline would cancel their contexts.
func (s *APIServer) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
		IdleTimeout:       defaultIdleTimeout,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)

	go func() {
		s.logger.Info().Str("addr", addr).Msg("Starting HTTP API")

		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// @Summary Health check
// @Router /health [get]
func (s *APIServer) getHealth(w http.ResponseWriter, _ *http.Request) {
	s.encodeJSONResponse(w, models.HealthResponse{
		OK:      true,
		NBI:     s.nbiURL,
		Version: s.version,
		Now:     models.ISOTime(s.now()),
	})
}

// encodeJSONResponse encodes a response as JSON
func (s *APIServer) encodeJSONResponse(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode response")
	}
}
