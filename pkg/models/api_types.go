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

// Package models pkg/models/api_types.go
package models

import "time"

// ErrorResponse represents an API error response.
// @Description Error information returned from the API.
type ErrorResponse struct {
	// Error message
	Message string `json:"message" example:"Device not found"`
	// HTTP status code
	Status int `json:"status" example:"404"`
}

// HealthResponse is returned by the unauthenticated health check.
type HealthResponse struct {
	OK      bool   `json:"ok"`
	NBI     string `json:"nbi"`
	Version string `json:"version"`
	Now     string `json:"now"`
}

// WiFiCredentials is the body of the Wi-Fi change endpoints.
type WiFiCredentials struct {
	SSID     string `json:"ssid"`
	Password string `json:"password"`
}

// PPPoECredentials is the body of the PPPoE change endpoint.
type PPPoECredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ParameterRequest is the body of the parameter read endpoint.
type ParameterRequest struct {
	ParameterNames []string `json:"parameter_names"`
}

// ParameterValue is the response of single-value reads.
type ParameterValue struct {
	Device    string      `json:"device"`
	Parameter string      `json:"parameter"`
	Value     interface{} `json:"value"`
}

// ISOTime renders t in UTC with a trailing Z, the form the NBI stores
// _lastInform in, so that string comparisons against it are ordered.
func ISOTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
