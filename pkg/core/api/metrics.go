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

	"github.com/carverauto/acsgateway/pkg/inventory"
)

func (s *APIServer) listFilter(r *http.Request) (inventory.ListFilter, error) {
	q := r.URL.Query()

	page, err := intParam(q, "page", 1)
	if err != nil {
		return inventory.ListFilter{}, err
	}

	size, err := intParam(q, "page_size", inventory.DefaultPageSize)
	if err != nil {
		return inventory.ListFilter{}, err
	}

	window, err := secondsParam(q, "online_within_sec", s.onlineWindow())
	if err != nil {
		return inventory.ListFilter{}, err
	}

	onlyOnline, err := boolParam(q, "only_online", false)
	if err != nil {
		return inventory.ListFilter{}, err
	}

	return inventory.ListFilter{
		Search:       q.Get("search"),
		Tag:          q.Get("tag"),
		ProductClass: q.Get("product_class"),
		OnlyOnline:   onlyOnline,
		OnlineWindow: window,
		SortBy:       q.Get("sort_by"),
		Order:        q.Get("order"),
		Page:         page,
		PageSize:     size,
	}, nil
}

func (s *APIServer) onlineWindow() time.Duration {
	return time.Duration(s.overviewCfg.OnlineWindow)
}

func (s *APIServer) activeWindow() time.Duration {
	return time.Duration(s.overviewCfg.ActiveWindow)
}

// windows reads window_online_sec and window_24h_sec.
func (s *APIServer) windows(r *http.Request) (online, active time.Duration, err error) {
	q := r.URL.Query()

	online, err = secondsParam(q, "window_online_sec", s.onlineWindow())
	if err != nil {
		return 0, 0, err
	}

	active, err = secondsParam(q, "window_24h_sec", s.activeWindow())
	if err != nil {
		return 0, 0, err
	}

	return online, active, nil
}

// @Summary Fleet overview counters
// @Router /metrics/overview [get]
// @Security ApiKeyAuth
func (s *APIServer) getOverview(w http.ResponseWriter, r *http.Request) {
	if s.overview == nil {
		s.writeServiceError(w, r, errServiceUnavailable)
		return
	}

	online, active, err := s.windows(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	snap, err := s.overview.Compute(r.Context(), online, active)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.encodeJSONResponse(w, snap)
}

// @Summary Product class and firmware histograms
// @Router /metrics/distribution [get]
// @Security ApiKeyAuth
func (s *APIServer) getDistribution(w http.ResponseWriter, r *http.Request) {
	sample, err := intParam(r.URL.Query(), "sample_limit", inventory.DefaultDistributionSample)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	dist, err := s.inventory.Distribution(r.Context(), sample)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.encodeJSONResponse(w, dist)
}

// @Summary Most recent informs
// @Router /metrics/last-informs [get]
// @Security ApiKeyAuth
func (s *APIServer) getLastInforms(w http.ResponseWriter, r *http.Request) {
	n, err := intParam(r.URL.Query(), "n", inventory.DefaultLastInforms)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	out, err := s.inventory.LastInforms(r.Context(), n)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.encodeJSONResponse(w, out)
}
