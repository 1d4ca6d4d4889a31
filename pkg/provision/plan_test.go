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

package provision

import (
	"testing"
	"time"

	"github.com/carverauto/acsgateway/pkg/acs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestValidateDefaults(t *testing.T) {
	t.Parallel()

	opts := Options{}
	require.NoError(t, opts.Validate())

	assert.Equal(t, "stun.cloudflare.com", opts.STUNServer)
	assert.Equal(t, 3478, opts.STUNPort)
	assert.Equal(t, 30, opts.STUNKeepalive)
}

func TestValidateRejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts Options
		want error
	}{
		{name: "zero interval", opts: Options{Interval: intPtr(0)}, want: errNegativeInterval},
		{name: "port too high", opts: Options{STUNPort: 70000}, want: errInvalidSTUNPort},
		{name: "negative keepalive", opts: Options{STUNKeepalive: -1}, want: errInvalidKeepalive},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := tt.opts
			require.ErrorIs(t, opts.Validate(), tt.want)
		})
	}
}

func TestPlanDiscoveryOnly(t *testing.T) {
	t.Parallel()

	steps := Plan(Options{}, time.Now())
	require.Len(t, steps, 7)

	for i, root := range []string{"Device.", "Device.WiFi.", "Device.IP.", "Device.DHCPv6."} {
		assert.Equal(t, acs.TaskRefreshObject, steps[i].Task.Name)
		assert.Equal(t, root, steps[i].Task.ObjectName)
	}

	for _, s := range steps[4:] {
		assert.Equal(t, acs.TaskGetParameterValues, s.Task.Name)
		assert.NotEmpty(t, s.Task.ParameterNames)
		assert.False(t, s.Tolerant)
	}

	assert.Contains(t, steps[4].Task.ParameterNames, "Device.ManagementServer.STUNServerAddress")
	assert.Contains(t, steps[5].Task.ParameterNames, "Device.WiFi.SSID.2.SSID")
	assert.Contains(t, steps[6].Task.ParameterNames, "Device.DHCPv6.Client.1.RequestPrefixes")
}

func TestPlanWithInformAndSTUN(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 9, 30, 15, 500, time.FixedZone("BRT", -3*3600))
	opts := Options{Interval: intPtr(60), SetPeriodicTime: true, WithSTUN: true}
	require.NoError(t, opts.Validate())

	steps := Plan(opts, now)
	require.Len(t, steps, 10)

	inform := steps[7].Task
	assert.Equal(t, acs.TaskSetParameterValues, inform.Name)
	assert.Equal(t, []acs.ParameterValue{
		{Path: "Device.ManagementServer.PeriodicInformEnable", Value: true, Type: acs.XSDBoolean},
		{Path: "Device.ManagementServer.PeriodicInformInterval", Value: 60, Type: acs.XSDUnsignedInt},
	}, inform.ParameterValues)

	anchor := steps[8].Task.ParameterValues
	require.Len(t, anchor, 1)
	assert.Equal(t, "2025-06-01T12:30:15Z", anchor[0].Value)
	assert.Equal(t, acs.XSDDateTime, anchor[0].Type)

	stun := steps[9]
	assert.True(t, stun.Tolerant)
	require.Len(t, stun.Task.ParameterValues, 4)
	assert.Equal(t, "stun.cloudflare.com", stun.Task.ParameterValues[1].Value)
	assert.Equal(t, 3478, stun.Task.ParameterValues[2].Value)
	assert.Equal(t, 30, stun.Task.ParameterValues[3].Value)

	for _, s := range steps {
		assert.NoError(t, s.Task.Validate(), s.Label)
	}
}

func TestPlanPeriodicTimeNeedsInterval(t *testing.T) {
	t.Parallel()

	steps := Plan(Options{SetPeriodicTime: true}, time.Now())
	assert.Len(t, steps, 7)
}
