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
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/carverauto/acsgateway/pkg/acs"
)

const (
	defaultWakeTimeout = 10 * time.Second
	maxBodyBytes       = 1 << 20
)

func deviceID(r *http.Request) (string, error) {
	raw := mux.Vars(r)["id"]

	id, err := url.PathUnescape(raw)
	if err != nil || id == "" {
		return "", badRequest("invalid device id %q", raw)
	}

	return id, nil
}

func boolParam(q url.Values, name string, def bool) (bool, error) {
	v := q.Get(name)
	if v == "" {
		// a bare flag such as ?only_online means true
		if _, present := q[name]; present {
			return true, nil
		}

		return def, nil
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, badRequest("%s must be a boolean", name)
	}

	return b, nil
}

func intParam(q url.Values, name string, def int) (int, error) {
	v := q.Get(name)
	if v == "" {
		return def, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, badRequest("%s must be an integer", name)
	}

	return n, nil
}

// secondsParam reads a whole number of seconds. Absent or non-positive
// values select def.
func secondsParam(q url.Values, name string, def time.Duration) (time.Duration, error) {
	n, err := intParam(q, name, 0)
	if err != nil {
		return 0, err
	}

	if n <= 0 {
		return def, nil
	}

	return time.Duration(n) * time.Second, nil
}

// dispatchOptions reads connection_request (default true) and cr_timeout
// (default 10 seconds).
func dispatchOptions(q url.Values) (acs.DispatchOptions, error) {
	wake, err := boolParam(q, "connection_request", true)
	if err != nil {
		return acs.DispatchOptions{}, err
	}

	timeout, err := secondsParam(q, "cr_timeout", defaultWakeTimeout)
	if err != nil {
		return acs.DispatchOptions{}, err
	}

	return acs.DispatchOptions{Wake: wake, WakeTimeout: timeout}, nil
}

func decodeBody(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))

	if err := dec.Decode(dst); err != nil {
		return badRequest("invalid request body: %v", err)
	}

	return nil
}
