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
	"regexp"
	"strings"
)

// Band is a Wi-Fi frequency band as reported by OperatingFrequencyBand.
type Band string

const (
	Band24GHz Band = "2.4GHz"
	Band5GHz  Band = "5GHz"
)

// BandForIndex maps the dashboard's wlan_index to a band: 1 is 2.4GHz and
// anything else 5GHz.
func BandForIndex(wlanIndex int) Band {
	if wlanIndex == 1 {
		return Band24GHz
	}

	return Band5GHz
}

// WiFiTargets are the parameter paths to write for one band.
type WiFiTargets struct {
	SSIDPath       string `json:"ssid_path"`
	PassphrasePath string `json:"passphrase_path"`
	Legacy         bool   `json:"legacy"`
}

const legacyWLANBase = "InternetGatewayDevice.LANDevice.1.WLANConfiguration"

var (
	radioRef = regexp.MustCompile(`Device\.WiFi\.Radio\.(\d+)`)
	ssidRef  = regexp.MustCompile(`Device\.WiFi\.SSID\.(\d+)`)
	std24GHz = regexp.MustCompile(`\b11(b|g|n)\b`)
	std5GHz  = regexp.MustCompile(`\b11(a|ac|ax)\b`)
)

type tr181Slot struct {
	ssid  string
	ap    string
	radio string
}

// ResolveWiFi picks the SSID and passphrase paths for band. TR-181 devices
// are mapped through Radio, SSID.LowerLayers and AccessPoint.SSIDReference;
// otherwise the TR-098 WLANConfiguration instance is chosen heuristically.
func ResolveWiFi(doc Document, band Band) WiFiTargets {
	if slot, ok := mapTR181Bands(doc)[band]; ok {
		ssid := fmt.Sprintf("Device.WiFi.SSID.%s.SSID", slot.ssid)
		kp := fmt.Sprintf("Device.WiFi.AccessPoint.%s.Security.KeyPassphrase", slot.ap)
		psk := fmt.Sprintf("Device.WiFi.AccessPoint.%s.Security.PreSharedKey", slot.ap)

		return WiFiTargets{SSIDPath: ssid, PassphrasePath: pickPassphrase(doc, kp, psk)}
	}

	base := legacyWLANBase + "." + legacyWLANIndex(doc, band)
	pass := pickPassphrase(doc, base+".PreSharedKey.1.KeyPassphrase", base+".PreSharedKey.1.PreSharedKey")

	return WiFiTargets{SSIDPath: base + ".SSID", PassphrasePath: pass, Legacy: true}
}

// BandSSIDs returns the current SSIDs of both bands.
func BandSSIDs(doc Document) (ssid24, ssid5 string) {
	bands := mapTR181Bands(doc)

	if slot, ok := bands[Band24GHz]; ok {
		ssid24, _ = ExtractString(doc, fmt.Sprintf("Device.WiFi.SSID.%s.SSID", slot.ssid))
	}

	if slot, ok := bands[Band5GHz]; ok {
		ssid5, _ = ExtractString(doc, fmt.Sprintf("Device.WiFi.SSID.%s.SSID", slot.ssid))
	}

	if ssid24 == "" {
		ssid24, _ = ExtractString(doc, legacyWLANBase+".1.SSID")
	}

	if ssid5 == "" {
		if ssid5, _ = ExtractString(doc, legacyWLANBase+".3.SSID"); ssid5 == "" {
			ssid5, _ = ExtractString(doc, legacyWLANBase+".2.SSID")
		}
	}

	return ssid24, ssid5
}

// pickPassphrase prefers the KeyPassphrase path unless only the
// PreSharedKey path is populated.
func pickPassphrase(doc Document, keyPassphrase, preSharedKey string) string {
	if hasValue(doc, keyPassphrase) || !hasValue(doc, preSharedKey) {
		return keyPassphrase
	}

	return preSharedKey
}

func hasValue(doc Document, path string) bool {
	_, ok := Extract(doc, path)
	return ok
}

// mapTR181Bands links each band to its SSID, AccessPoint and Radio
// instances. When several access points serve a band the lowest AP index
// wins.
func mapTR181Bands(doc Document) map[Band]tr181Slot {
	out := make(map[Band]tr181Slot)

	radios := Node(doc, "Device.WiFi.Radio")
	ssids := Node(doc, "Device.WiFi.SSID")
	aps := Node(doc, "Device.WiFi.AccessPoint")

	if radios == nil || ssids == nil || aps == nil {
		return out
	}

	radioBand := make(map[string]Band)

	for _, r := range Indices(radios) {
		if b, ok := ExtractString(doc, "Device.WiFi.Radio."+r+".OperatingFrequencyBand"); ok {
			radioBand[r] = Band(b)
		}
	}

	ssidRadio := make(map[string]string)

	for _, i := range Indices(ssids) {
		ll, ok := ExtractString(doc, "Device.WiFi.SSID."+i+".LowerLayers")
		if !ok {
			continue
		}

		if m := radioRef.FindStringSubmatch(ll); m != nil {
			ssidRadio[i] = m[1]
		}
	}

	for _, k := range Indices(aps) {
		ref, ok := ExtractString(doc, "Device.WiFi.AccessPoint."+k+".SSIDReference")
		if !ok {
			continue
		}

		m := ssidRef.FindStringSubmatch(ref)
		if m == nil {
			continue
		}

		radio := ssidRadio[m[1]]
		band := radioBand[radio]

		if band != Band24GHz && band != Band5GHz {
			continue
		}

		if _, taken := out[band]; !taken {
			out[band] = tr181Slot{ssid: m[1], ap: k, radio: radio}
		}
	}

	return out
}

// legacyWLANIndex picks the WLANConfiguration instance for band: an
// X_TP_Band match first, then a Standard match, then 1 for 2.4GHz and 3
// (if populated) or 2 for 5GHz.
func legacyWLANIndex(doc Document, band Band) string {
	idxs := Indices(Node(doc, legacyWLANBase))

	for _, i := range idxs {
		b, ok := ExtractString(doc, legacyWLANBase+"."+i+".X_TP_Band")
		if !ok {
			continue
		}

		b = strings.ToLower(b)

		if band == Band24GHz && (strings.Contains(b, "2.4") || strings.Contains(b, "24")) {
			return i
		}

		if band == Band5GHz && (strings.Contains(b, "5g") || strings.TrimSpace(b) == "5" || strings.Contains(b, " 5")) {
			return i
		}
	}

	for _, i := range idxs {
		std, ok := ExtractString(doc, legacyWLANBase+"."+i+".Standard")
		if !ok {
			continue
		}

		std = strings.ToLower(std)

		if band == Band24GHz && std24GHz.MatchString(std) {
			return i
		}

		if band == Band5GHz && std5GHz.MatchString(std) {
			return i
		}
	}

	if band == Band24GHz {
		return "1"
	}

	if hasValue(doc, legacyWLANBase+".3.SSID") {
		return "3"
	}

	return "2"
}
