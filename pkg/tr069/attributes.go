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
	"fmt"
	"strings"
)

// Attribute names a logical device setting independent of data model.
type Attribute int

const (
	AttrSSID Attribute = iota
	AttrPassphrase
	AttrPPPoEUsername
	AttrPPPoEPassword
	AttrPPPoEEnable
	AttrProductClass
	AttrSoftwareVersion
	AttrManufacturer
	AttrSerialNumber
	AttrPeriodicInformEnable
	AttrPeriodicInformInterval
	AttrPeriodicInformTime
	AttrConnectionRequestURL
	AttrSTUNEnable
	AttrSTUNServerAddress
	AttrSTUNServerPort
	AttrSTUNKeepAlive
)

const (
	hierarchicalRoot = "Device."
	legacyRoot       = "InternetGatewayDevice."

	legacyWLAN = "InternetGatewayDevice.LANDevice.1.WLANConfiguration.%d"
	legacyPPP  = "InternetGatewayDevice.WANDevice.1.WANConnectionDevice.1.WANPPPConnection.1"
)

// candidateSet lists the paths of one attribute in read order. writeTarget
// indexes the path returned when no candidate holds a value.
type candidateSet struct {
	name        string
	paths       []string
	writeTarget int
}

// Wi-Fi and PPPoE writes default to the TR-098 paths: the legacy model is
// what the fleet ships with when nothing has been discovered yet.
var attributes = map[Attribute]candidateSet{
	AttrSSID: {
		name: "ssid",
		paths: []string{
			"Device.WiFi.SSID.%d.SSID",
			legacyWLAN + ".SSID",
		},
		writeTarget: 1,
	},
	AttrPassphrase: {
		name: "passphrase",
		paths: []string{
			"Device.WiFi.AccessPoint.%d.Security.KeyPassphrase",
			"Device.WiFi.AccessPoint.%d.Security.PreSharedKey",
			legacyWLAN + ".PreSharedKey.1.KeyPassphrase",
			legacyWLAN + ".PreSharedKey.1.PreSharedKey",
		},
		writeTarget: 2,
	},
	AttrPPPoEUsername: {
		name: "pppoe_username",
		paths: []string{
			"Device.PPP.Interface.%d.Username",
			legacyPPP + ".Username",
		},
		writeTarget: 1,
	},
	AttrPPPoEPassword: {
		name: "pppoe_password",
		paths: []string{
			"Device.PPP.Interface.%d.Password",
			legacyPPP + ".Password",
		},
		writeTarget: 1,
	},
	AttrPPPoEEnable: {
		name: "pppoe_enable",
		paths: []string{
			"Device.PPP.Interface.%d.Enable",
			legacyPPP + ".Enable",
		},
		writeTarget: 1,
	},
	AttrProductClass: {
		name: "product_class",
		paths: []string{
			"Device.DeviceInfo.ProductClass",
			"InternetGatewayDevice.DeviceInfo.ProductClass",
			"Device.DeviceInfo.ModelName",
			"InternetGatewayDevice.DeviceInfo.ModelName",
		},
	},
	AttrSoftwareVersion: {
		name: "software_version",
		paths: []string{
			"Device.DeviceInfo.SoftwareVersion",
			"InternetGatewayDevice.DeviceInfo.SoftwareVersion",
		},
	},
	AttrManufacturer: {
		name: "manufacturer",
		paths: []string{
			"Device.DeviceInfo.Manufacturer",
			"InternetGatewayDevice.DeviceInfo.Manufacturer",
		},
	},
	AttrSerialNumber: {
		name: "serial_number",
		paths: []string{
			"Device.DeviceInfo.SerialNumber",
			"InternetGatewayDevice.DeviceInfo.SerialNumber",
		},
	},
	AttrPeriodicInformEnable:   managementServer("periodic_inform_enable", "PeriodicInformEnable"),
	AttrPeriodicInformInterval: managementServer("periodic_inform_interval", "PeriodicInformInterval"),
	AttrPeriodicInformTime:     managementServer("periodic_inform_time", "PeriodicInformTime"),
	AttrConnectionRequestURL:   managementServer("connection_request_url", "ConnectionRequestURL"),
	AttrSTUNEnable:             managementServer("stun_enable", "STUNEnable"),
	AttrSTUNServerAddress:      managementServer("stun_server_address", "STUNServerAddress"),
	AttrSTUNServerPort:         managementServer("stun_server_port", "STUNServerPort"),
	AttrSTUNKeepAlive:          managementServer("stun_keepalive", "STUNMinimumKeepAlivePeriod"),
}

func managementServer(name, leaf string) candidateSet {
	return candidateSet{
		name: name,
		paths: []string{
			"Device.ManagementServer." + leaf,
			"InternetGatewayDevice.ManagementServer." + leaf,
		},
	}
}

// String returns the attribute's snake_case name.
func (a Attribute) String() string {
	if set, ok := attributes[a]; ok {
		return set.name
	}

	return fmt.Sprintf("Attribute(%d)", int(a))
}

// Candidates returns the attribute's paths in read order with index
// substituted. Indexes below 1 are treated as 1.
func Candidates(attr Attribute, index int) []string {
	set, ok := attributes[attr]
	if !ok {
		return nil
	}

	out := make([]string, len(set.paths))
	for i, p := range set.paths {
		out[i] = expand(p, index)
	}

	return out
}

// WriteTarget returns the path written when a document holds no value for
// attr. It is empty for unknown attributes.
func WriteTarget(attr Attribute, index int) string {
	set, ok := attributes[attr]
	if !ok {
		return ""
	}

	return expand(set.paths[set.writeTarget], index)
}

// IsLegacyPath reports whether path belongs to the TR-098 data model.
func IsLegacyPath(path string) bool {
	return strings.HasPrefix(path, legacyRoot)
}

func expand(pattern string, index int) string {
	if !strings.Contains(pattern, "%d") {
		return pattern
	}

	if index < 1 {
		index = 1
	}

	return strings.ReplaceAll(pattern, "%d", fmt.Sprint(index))
}
