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

package tr069

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDoc(t *testing.T, raw string) Document {
	t.Helper()

	var doc Document
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	return doc
}

func TestExtract(t *testing.T) {
	t.Parallel()

	doc := mustDoc(t, `{
		"_id": "202BC1-BM632w-000102",
		"InternetGatewayDevice": {
			"DeviceInfo": {
				"SoftwareVersion": {"_value": "1.0.3", "_type": "xsd:string"},
				"UpTime": {"_value": 3600},
				"Enabled": {"_value": true},
				"Nothing": {"_value": null},
				"Nested": {"_value": {"a": 1}},
				"List": {"_value": [1, 2]},
				"Raw": "plain"
			},
			"LANDevice": {"1": {"WLANConfiguration": {}}},
			"Array": [1, 2, 3]
		}
	}`)

	tests := []struct {
		name   string
		path   string
		want   interface{}
		wantOK bool
	}{
		{name: "string holder", path: "InternetGatewayDevice.DeviceInfo.SoftwareVersion", want: "1.0.3", wantOK: true},
		{name: "number holder", path: "InternetGatewayDevice.DeviceInfo.UpTime", want: float64(3600), wantOK: true},
		{name: "bool holder", path: "InternetGatewayDevice.DeviceInfo.Enabled", want: true, wantOK: true},
		{name: "raw scalar", path: "InternetGatewayDevice.DeviceInfo.Raw", want: "plain", wantOK: true},
		{name: "top-level id", path: "_id", want: "202BC1-BM632w-000102", wantOK: true},
		{name: "null holder", path: "InternetGatewayDevice.DeviceInfo.Nothing"},
		{name: "object holder", path: "InternetGatewayDevice.DeviceInfo.Nested"},
		{name: "array holder", path: "InternetGatewayDevice.DeviceInfo.List"},
		{name: "object terminal", path: "InternetGatewayDevice.DeviceInfo"},
		{name: "empty object terminal", path: "InternetGatewayDevice.LANDevice.1.WLANConfiguration"},
		{name: "array terminal", path: "InternetGatewayDevice.Array"},
		{name: "missing leaf", path: "InternetGatewayDevice.DeviceInfo.Manufacturer"},
		{name: "missing intermediate", path: "Device.DeviceInfo.SoftwareVersion"},
		{name: "descend through scalar", path: "InternetGatewayDevice.DeviceInfo.Raw.x"},
		{name: "descend through array", path: "InternetGatewayDevice.Array.0"},
		{name: "empty path", path: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := Extract(doc, tt.path)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractPreservesType(t *testing.T) {
	t.Parallel()

	dec := json.NewDecoder(strings.NewReader(`{"A":{"B":{"_value":42}}}`))
	dec.UseNumber()

	var doc Document
	require.NoError(t, dec.Decode(&doc))

	got, ok := Extract(doc, "A.B")
	require.True(t, ok)
	assert.Equal(t, json.Number("42"), got)
}

func TestExtractNilDocument(t *testing.T) {
	t.Parallel()

	_, ok := Extract(nil, "Device.DeviceInfo")
	assert.False(t, ok)
}

func TestIndices(t *testing.T) {
	t.Parallel()

	doc := mustDoc(t, `{"Device":{"WiFi":{"SSID":{"10":{},"2":{},"1":{},"_object":true,"x":{}}}}}`)

	assert.Equal(t, []string{"1", "2", "10"}, Indices(Node(doc, "Device.WiFi.SSID")))
	assert.Empty(t, Indices(Node(doc, "Device.WiFi.Radio")))
}

func TestDocumentAccessors(t *testing.T) {
	t.Parallel()

	doc := mustDoc(t, `{"_id":"dev-1","_lastInform":"2025-01-01T00:00:00.000Z","_lastBoot":"2024-12-31T23:58:00.000Z","_tags":["sub:42",7,"vip"]}`)

	assert.Equal(t, "dev-1", doc.ID())
	assert.Equal(t, "2025-01-01T00:00:00.000Z", doc.LastInform())
	assert.Equal(t, "2024-12-31T23:58:00.000Z", doc.LastBoot())
	assert.Empty(t, Document{}.LastBoot())
	assert.Equal(t, []string{"sub:42", "vip"}, doc.Tags())
	assert.Equal(t, []string{}, Document{}.Tags())
}
