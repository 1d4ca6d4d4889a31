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

// Package provision builds and runs the bootstrap task sequence for TR-181
// devices: discovery refreshes, reads, and optional inform and STUN writes.
package provision

import (
	"errors"
	"fmt"
)

const (
	DefaultSTUNServer    = "stun.cloudflare.com"
	DefaultSTUNPort      = 3478
	DefaultSTUNKeepalive = 30
)

var (
	errNegativeInterval = errors.New("periodic inform interval must be positive")
	errInvalidSTUNPort  = errors.New("stun port out of range")
	errInvalidKeepalive = errors.New("stun keepalive must be positive")
)

// Options selects the optional parts of a bootstrap.
type Options struct {
	// Interval, when set, enables periodic inform with that many seconds.
	Interval *int `json:"interval,omitempty"`
	// SetPeriodicTime also anchors PeriodicInformTime to now. Needs Interval.
	SetPeriodicTime bool   `json:"set_periodic_time"`
	WithSTUN        bool   `json:"with_stun"`
	STUNServer      string `json:"stun_server"`
	STUNPort        int    `json:"stun_port"`
	STUNKeepalive   int    `json:"stun_keepalive"`
	Wake            bool   `json:"wake"`
}

// Validate fills defaults and rejects out-of-range values.
func (o *Options) Validate() error {
	if o.Interval != nil && *o.Interval <= 0 {
		return fmt.Errorf("%w: %d", errNegativeInterval, *o.Interval)
	}

	if o.STUNServer == "" {
		o.STUNServer = DefaultSTUNServer
	}

	if o.STUNPort == 0 {
		o.STUNPort = DefaultSTUNPort
	}

	if o.STUNKeepalive == 0 {
		o.STUNKeepalive = DefaultSTUNKeepalive
	}

	if o.STUNPort < 0 || o.STUNPort > 65535 {
		return fmt.Errorf("%w: %d", errInvalidSTUNPort, o.STUNPort)
	}

	if o.STUNKeepalive < 0 {
		return fmt.Errorf("%w: %d", errInvalidKeepalive, o.STUNKeepalive)
	}

	return nil
}
