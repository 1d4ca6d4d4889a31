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

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/carverauto/acsgateway/pkg/models"
	"github.com/carverauto/acsgateway/pkg/overview"
)

const (
	overviewEvent   = "overview"
	errorEvent      = "error"
	wsWriteTimeout  = 10 * time.Second
	defaultInterval = 5 * time.Second
)

// subscribe validates the stream parameters and starts a per-request
// publisher loop bound to ctx.
func (s *APIServer) subscribe(ctx context.Context, r *http.Request) (<-chan overview.Update, error) {
	if s.overview == nil {
		return nil, errServiceUnavailable
	}

	fallback := time.Duration(s.overviewCfg.StreamInterval)
	if fallback <= 0 {
		fallback = defaultInterval
	}

	interval, err := secondsParam(r.URL.Query(), "interval", fallback)
	if err != nil {
		return nil, err
	}

	online, active, err := s.windows(r)
	if err != nil {
		return nil, err
	}

	pub := overview.NewPublisher(s.overview, online, active, s.logger)

	return pub.Subscribe(ctx, interval), nil
}

// @Summary Server-sent overview events
// @Router /metrics/stream [get]
func (s *APIServer) streamOverview(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, errStreamUnsupported.Error(), http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	updates, err := s.subscribe(ctx, r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for u := range updates {
		event, payload := overviewEvent, interface{}(u.Snapshot)

		if u.Err != nil {
			event = errorEvent
			payload = models.ErrorResponse{Message: u.Err.Error(), Status: http.StatusInternalServerError}
		}

		if err := writeSSE(w, event, payload); err != nil {
			s.logger.Debug().Err(err).Str("remote_addr", r.RemoteAddr).Msg("SSE client gone")
			return
		}

		flusher.Flush()
	}
}

func writeSSE(w http.ResponseWriter, event string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)

	return err
}

// handleOverviewWebSocket pushes the same payloads as the SSE stream over
// a WebSocket.
func (s *APIServer) handleOverviewWebSocket(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkWebSocketOrigin,
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("remote_addr", r.RemoteAddr).
			Str("origin", r.Header.Get("Origin")).
			Msg("Failed to upgrade to WebSocket")

		return
	}

	defer func() { _ = conn.Close() }()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	go s.handleClientMessages(conn, cancel)

	updates, err := s.subscribe(ctx, r)
	if err != nil {
		_ = sendStreamMessage(conn, StreamMessage{Type: errorEvent, Error: err.Error(), Timestamp: s.now()})
		return
	}

	for u := range updates {
		msg := StreamMessage{Type: overviewEvent, Data: u.Snapshot, Timestamp: s.now()}
		if u.Err != nil {
			msg = StreamMessage{Type: errorEvent, Error: u.Err.Error(), Timestamp: s.now()}
		}

		if err := sendStreamMessage(conn, msg); err != nil {
			s.logger.Debug().Err(err).Str("remote_addr", r.RemoteAddr).Msg("WebSocket client gone")
			return
		}
	}
}

// handleClientMessages reads until the client goes away and then cancels
// the stream.
func (s *APIServer) handleClientMessages(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn().Err(err).Msg("Unexpected WebSocket close")
			}

			return
		}
	}
}

func sendStreamMessage(conn *websocket.Conn, msg StreamMessage) error {
	if err := conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout)); err != nil {
		return err
	}

	if err := conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("failed to write JSON message: %w", err)
	}

	return nil
}

// checkWebSocketOrigin validates WebSocket origin against CORS configuration
func (s *APIServer) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	for _, allowed := range s.corsConfig.AllowedOrigins {
		if allowed == origin || allowed == "*" {
			return true
		}
	}

	s.logger.Warn().
		Str("origin", origin).
		Strs("allowed_origins", s.corsConfig.AllowedOrigins).
		Msg("WebSocket CORS: Origin not allowed")

	return false
}
