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
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/carverauto/acsgateway/pkg/acs"
	"github.com/carverauto/acsgateway/pkg/models"
)

var (
	errBadRequest         = errors.New("bad request")
	errStreamUnsupported  = errors.New("streaming unsupported")
	errServiceUnavailable = errors.New("service not configured")
)

func badRequest(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, args...))
}

func writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")

	w.WriteHeader(statusCode)

	errResponse := models.ErrorResponse{
		Message: message,
		Status:  statusCode,
	}

	if err := json.NewEncoder(w).Encode(errResponse); err != nil {
		// Fallback in case encoding fails
		http.Error(w, "Failed to encode error response", http.StatusInternalServerError)
	}
}

// writeServiceError maps an error from the ACS layers onto a response. NBI
// rejections are passed through with their own status and body.
func (s *APIServer) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var rejection *acs.RejectionError
	if errors.As(err, &rejection) {
		s.logger.Warn().
			Int("status", rejection.StatusCode).
			Str("path", r.URL.Path).
			Msg("NBI rejected request")

		contentType := "text/plain; charset=utf-8"
		if json.Valid([]byte(rejection.Body)) {
			contentType = "application/json"
		}

		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(rejection.StatusCode)
		_, _ = w.Write([]byte(rejection.Body))

		return
	}

	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, acs.ErrDeviceNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errBadRequest), errors.Is(err, acs.ErrInvalidTask):
		status = http.StatusBadRequest
	case errors.Is(err, errServiceUnavailable):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
	}

	writeError(w, err.Error(), status)
}
