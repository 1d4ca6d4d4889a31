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

package acs

import (
	"errors"
	"fmt"
)

var (
	// ErrDeviceNotFound is returned when no document matches a device id.
	ErrDeviceNotFound = errors.New("device not found")
	// ErrInvalidTask is returned for tasks that cannot be submitted as built.
	ErrInvalidTask = errors.New("invalid task")

	errEmptyDeviceID = errors.New("device id is required")
	errInvalidURL    = errors.New("invalid NBI url")
)

// TransportError reports that the NBI could not be reached or its answer
// could not be read.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RejectionError reports a non-success answer from the NBI. StatusCode and
// Body are the NBI's own.
type RejectionError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("%s: %d, response: %s", e.Op, e.StatusCode, e.Body)
}
