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
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/carverauto/acsgateway/pkg/logger"
	"github.com/carverauto/acsgateway/pkg/models"
	"github.com/carverauto/acsgateway/pkg/overview"
)

// APIServer serves the dashboard API.
type APIServer struct {
	router      *mux.Router
	handler     http.Handler
	corsConfig  models.CORSConfig
	apiKey      string
	nbiURL      string
	version     string
	dispatcher  TaskDispatcher
	inventory   Inventory
	overview    overview.Computer
	overviewCfg models.OverviewConfig
	logger      logger.Logger
	now         func() time.Time
}

// StreamMessage represents a message sent over the WebSocket
type StreamMessage struct {
	Type      string             `json:"type"` // "overview", "error"
	Data      *overview.Snapshot `json:"data,omitempty"`
	Error     string             `json:"error,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
}

