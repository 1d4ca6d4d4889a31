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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeTR098(t *testing.T) {
	t.Parallel()

	doc := mustDoc(t, `{
		"_id": "202BC1-BM632w-000102",
		"_lastInform": "2025-06-01T10:00:00.000Z",
		"_tags": ["vip", "sub:88123"],
		"InternetGatewayDevice": {
			"DeviceInfo": {
				"Manufacturer": {"_value": "TP-Link"},
				"ProductClass": {"_value": "EX141"},
				"SoftwareVersion": {"_value": "1.1.0"}
			},
			"ManagementServer": {
				"ConnectionRequestURL": {"_value": "http://100.64.1.9:7547/cr"},
				"STUNEnable": {"_value": "1"},
				"PeriodicInformInterval": {"_value": 300}
			},
			"LANDevice": {"1": {
				"LANHostConfigManagement": {"IPInterface": {"1": {"IPInterfaceIPAddress": {"_value": "192.168.0.1"}}}},
				"WLANConfiguration": {"1": {"SSID": {"_value": "Casa"}}}
			}}
		}
	}`)

	s := Summarize(doc)

	assert.Equal(t, "202BC1-BM632w-000102", s.DeviceID)
	assert.Equal(t, "202BC1-BM632w-000102", s.SerialNumber)
	assert.Equal(t, "TP-Link", s.Vendor)
	assert.Equal(t, "EX141", s.ProductClass)
	assert.Equal(t, "1.1.0", s.SoftwareVersion)
	assert.Equal(t, "88123", s.Subscriber)
	assert.Equal(t, "100.64.1.9", s.WANIPv4)
	assert.Equal(t, "192.168.0.1", s.LANIPv4)
	assert.Equal(t, "Casa", s.SSID24)
	assert.Equal(t, "", s.SSID5)
	assert.True(t, s.STUNEnable)
	assert.Equal(t, float64(300), s.PeriodicInformInterval)
	assert.Equal(t, []string{"vip", "sub:88123"}, s.Tags)
}

func TestSummarizeDefaults(t *testing.T) {
	t.Parallel()

	s := Summarize(mustDoc(t, `{"_id":"dev-1"}`))

	assert.Equal(t, "dev-1", s.SerialNumber)
	assert.Equal(t, UnknownProductClass, s.ProductClass)
	assert.Empty(t, s.WANIPv4)
	assert.False(t, s.STUNEnable)
	assert.Nil(t, s.PeriodicInformInterval)
	assert.Equal(t, []string{}, s.Tags)
}

func TestWANIPv4PrefersUpInterface(t *testing.T) {
	t.Parallel()

	doc := mustDoc(t, `{"Device":{"IP":{"Interface":{
		"1":{"Status":{"_value":"Down"},"IPv4Address":{"1":{"IPAddress":{"_value":"10.0.0.1"}}}},
		"2":{"Status":{"_value":"Up"},"IPv4Address":{"1":{"IPAddress":{"_value":"177.10.2.3"}}}}
	}}}}`)

	assert.Equal(t, "177.10.2.3", WANIPv4(doc))
	assert.Equal(t, "10.0.0.1", LANIPv4(doc))
}

func TestSubscriber(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", Subscriber(nil))
	assert.Equal(t, "", Subscriber([]string{"sub:"}))
	assert.Equal(t, "7", Subscriber([]string{"x", "sub:7", "sub:8"}))
}

func TestScalarString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", ScalarString(nil))
	assert.Equal(t, "300", ScalarString(float64(300)))
	assert.Equal(t, "1.5", ScalarString(1.5))
	assert.Equal(t, "true", ScalarString(true))
	assert.Equal(t, "abc", ScalarString("abc"))
}
