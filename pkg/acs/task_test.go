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
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		task Task
		want string
	}{
		{name: "reboot", task: Reboot(), want: `{"name":"reboot"}`},
		{name: "factory reset", task: FactoryReset(), want: `{"name":"factoryReset"}`},
		{name: "refresh", task: RefreshObject("Device.WiFi."), want: `{"name":"refreshObject","objectName":"Device.WiFi."}`},
		{
			name: "get",
			task: GetParameterValues("Device.DeviceInfo.SoftwareVersion"),
			want: `{"name":"getParameterValues","parameterNames":["Device.DeviceInfo.SoftwareVersion"]}`,
		},
		{
			name: "set",
			task: SetParameterValues(
				ParameterValue{Path: "Device.ManagementServer.PeriodicInformEnable", Value: true, Type: XSDBoolean},
				ParameterValue{Path: "Device.ManagementServer.PeriodicInformInterval", Value: 60, Type: XSDUnsignedInt},
			),
			want: `{"name":"setParameterValues","parameterValues":[
				["Device.ManagementServer.PeriodicInformEnable",true,"xsd:boolean"],
				["Device.ManagementServer.PeriodicInformInterval",60,"xsd:unsignedInt"]]}`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.NoError(t, tt.task.Validate())

			got, err := json.Marshal(tt.task)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestTaskHandleBody(t *testing.T) {
	t.Parallel()

	h := newTaskHandle(200, []byte(`{"_id":"abc","name":"reboot","timestamp":"2025-01-01T00:00:00.000Z"}`))
	assert.Equal(t, "abc", h.ID)
	assert.Equal(t, "reboot", h.Name)

	empty := newTaskHandle(202, nil)
	out, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(out))
}
