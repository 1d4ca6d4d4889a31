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
	"net/url"
	"strconv"
	"strings"
)

// Summary is the normalized view of a device used by list and detail pages.
type Summary struct {
	DeviceID               string
	SerialNumber           string
	Vendor                 string
	ProductClass           string
	SoftwareVersion        string
	LastInform             string
	Tags                   []string
	Subscriber             string
	WANIPv4                string
	LANIPv4                string
	SSID24                 string
	SSID5                  string
	ConnectionRequestURL   string
	STUNEnable             bool
	PeriodicInformInterval interface{}
}

// Unknown is the bucket for devices that do not report a value.
const Unknown = "UNKNOWN"

// UnknownProductClass is reported for devices without a product class.
const UnknownProductClass = Unknown

// UnknownSoftwareVersion is reported for devices without a software version.
const UnknownSoftwareVersion = Unknown

const subscriberTagPrefix = "sub:"

var wanIPv4Paths = []string{
	"InternetGatewayDevice.WANDevice.1.WANConnectionDevice.1.WANIPConnection.1.ExternalIPAddress",
	"InternetGatewayDevice.WANDevice.1.WANConnectionDevice.2.WANIPConnection.1.ExternalIPAddress",
	"InternetGatewayDevice.WANDevice.1.WANConnectionDevice.1.WANPPPConnection.1.ExternalIPAddress",
}

var lanIPv4Paths = []string{
	"InternetGatewayDevice.LANDevice.1.LANHostConfigManagement.IPInterface.1.IPInterfaceIPAddress",
	"InternetGatewayDevice.LANDevice.1.LANHostConfigManagement.IPInterface.1.IPAddress",
	"Device.LAN.IPAddress",
	"Device.IP.Interface.1.IPv4Address.1.IPAddress",
}

// Summarize normalizes doc. Missing values are left empty except
// SerialNumber, which defaults to the device id, and ProductClass, which
// defaults to UnknownProductClass.
func Summarize(doc Document) Summary {
	s := Summary{
		DeviceID:             doc.ID(),
		SerialNumber:         ResolveString(doc, AttrSerialNumber, 1),
		Vendor:               ResolveString(doc, AttrManufacturer, 1),
		ProductClass:         ResolveString(doc, AttrProductClass, 1),
		SoftwareVersion:      ResolveString(doc, AttrSoftwareVersion, 1),
		LastInform:           doc.LastInform(),
		Tags:                 doc.Tags(),
		WANIPv4:              WANIPv4(doc),
		LANIPv4:              LANIPv4(doc),
		ConnectionRequestURL: ResolveString(doc, AttrConnectionRequestURL, 1),
	}

	s.Subscriber = Subscriber(s.Tags)
	s.SSID24, s.SSID5 = BandSSIDs(doc)

	if s.SerialNumber == "" {
		s.SerialNumber = s.DeviceID
	}

	if s.ProductClass == "" {
		s.ProductClass = UnknownProductClass
	}

	if r := Resolve(doc, AttrSTUNEnable, 1); r.HasValue {
		s.STUNEnable = truthy(r.Value)
	}

	if r := Resolve(doc, AttrPeriodicInformInterval, 1); r.HasValue {
		s.PeriodicInformInterval = r.Value
	}

	return s
}

// WANIPv4 returns the best WAN address: an Up TR-181 IP interface, then
// the TR-098 WAN connections, then the host of the connection-request URL.
func WANIPv4(doc Document) string {
	for _, i := range Indices(Node(doc, "Device.IP.Interface")) {
		status, _ := Extract(doc, "Device.IP.Interface."+i+".Status")
		addr, _ := ExtractString(doc, "Device.IP.Interface."+i+".IPv4Address.1.IPAddress")

		if addr != "" && interfaceUp(status) {
			return addr
		}
	}

	for _, p := range wanIPv4Paths {
		if v, _ := ExtractString(doc, p); v != "" {
			return v
		}
	}

	cr := ResolveString(doc, AttrConnectionRequestURL, 1)
	if cr == "" {
		return ""
	}

	u, err := url.Parse(cr)
	if err != nil {
		return ""
	}

	return u.Hostname()
}

// LANIPv4 returns the first populated LAN address.
func LANIPv4(doc Document) string {
	for _, p := range lanIPv4Paths {
		if v, _ := ExtractString(doc, p); v != "" {
			return v
		}
	}

	return ""
}

// Subscriber returns the id carried by the first "sub:<id>" tag.
func Subscriber(tags []string) string {
	for _, t := range tags {
		if strings.HasPrefix(t, subscriberTagPrefix) {
			return strings.TrimPrefix(t, subscriberTagPrefix)
		}
	}

	return ""
}

// ScalarString formats an extracted scalar.
func ScalarString(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case json.Number:
		return x.String()
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return ""
		}

		return string(b)
	}
}

func interfaceUp(status interface{}) bool {
	switch s := status.(type) {
	case bool:
		return s
	case string:
		return s == "Up" || s == "UP" || s == "Enabled"
	default:
		return false
	}
}

func truthy(v interface{}) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(x))
		return err == nil && b
	case float64:
		return x != 0
	case json.Number:
		f, err := x.Float64()
		return err == nil && f != 0
	default:
		return false
	}
}
