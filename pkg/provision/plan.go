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
	"time"

	"github.com/carverauto/acsgateway/pkg/acs"
)

const mgmt = "Device.ManagementServer."

// Step is one task of a bootstrap. A Tolerant step may fail without
// aborting the run.
type Step struct {
	Label    string
	Task     acs.Task
	Tolerant bool
}

var refreshRoots = []string{"Device.", "Device.WiFi.", "Device.IP.", "Device.DHCPv6."}

var managementParams = []string{
	mgmt + "PeriodicInformEnable",
	mgmt + "PeriodicInformInterval",
	mgmt + "PeriodicInformTime",
	mgmt + "ConnectionRequestURL",
	mgmt + "UDPConnectionRequestAddress",
	mgmt + "STUNEnable",
	mgmt + "STUNServerAddress",
	mgmt + "STUNServerPort",
	mgmt + "STUNMinimumKeepAlivePeriod",
}

var wifiIPv4Params = []string{
	"Device.WiFi.SSID.1.SSID",
	"Device.WiFi.SSID.2.SSID",
	"Device.IP.Interface.1.IPv4Address.1.IPAddress",
	"Device.IP.Interface.2.IPv4Address.1.IPAddress",
	"Device.IP.Interface.3.IPv4Address.1.IPAddress",
	"Device.IP.Interface.4.IPv4Address.1.IPAddress",
	"Device.IP.Interface.5.IPv4Address.1.IPAddress",
}

var ipv6Params = []string{
	"Device.IP.IPv6Capable",
	"Device.IP.IPv6Enable",
	"Device.DHCPv6.Client.1.Enable",
	"Device.DHCPv6.Client.1.Status",
	"Device.DHCPv6.Client.1.RequestAddresses",
	"Device.DHCPv6.Client.1.RequestPrefixes",
	"Device.IP.Interface.1.IPv6Address.1.IPAddress",
	"Device.IP.Interface.2.IPv6Address.1.IPAddress",
	"Device.IP.Interface.3.IPv6Address.1.IPAddress",
	"Device.IP.Interface.4.IPv6Address.1.IPAddress",
	"Device.IP.Interface.5.IPv6Address.1.IPAddress",
	"Device.IP.Interface.1.IPv6Prefix.1.Prefix",
	"Device.IP.Interface.2.IPv6Prefix.1.Prefix",
}

// Plan lists the bootstrap steps for opts. opts must have been validated.
func Plan(opts Options, now time.Time) []Step {
	steps := make([]Step, 0, len(refreshRoots)+6)

	for _, root := range refreshRoots {
		steps = append(steps, Step{Label: "refresh " + root, Task: acs.RefreshObject(root)})
	}

	steps = append(steps,
		Step{Label: "read management server", Task: acs.GetParameterValues(managementParams...)},
		Step{Label: "read wifi and ipv4", Task: acs.GetParameterValues(wifiIPv4Params...)},
		Step{Label: "read ipv6", Task: acs.GetParameterValues(ipv6Params...)},
	)

	if opts.Interval != nil {
		steps = append(steps, Step{
			Label: "enable periodic inform",
			Task: acs.SetParameterValues(
				acs.ParameterValue{Path: mgmt + "PeriodicInformEnable", Value: true, Type: acs.XSDBoolean},
				acs.ParameterValue{Path: mgmt + "PeriodicInformInterval", Value: *opts.Interval, Type: acs.XSDUnsignedInt},
			),
		})

		if opts.SetPeriodicTime {
			ts := now.UTC().Truncate(time.Second).Format("2006-01-02T15:04:05Z")

			steps = append(steps, Step{
				Label: "anchor periodic inform time",
				Task: acs.SetParameterValues(
					acs.ParameterValue{Path: mgmt + "PeriodicInformTime", Value: ts, Type: acs.XSDDateTime},
				),
			})
		}
	}

	// Some firmwares refuse STUN writes with fault 9007.
	if opts.WithSTUN {
		steps = append(steps, Step{
			Label:    "configure stun",
			Tolerant: true,
			Task: acs.SetParameterValues(
				acs.ParameterValue{Path: mgmt + "STUNEnable", Value: true, Type: acs.XSDBoolean},
				acs.ParameterValue{Path: mgmt + "STUNServerAddress", Value: opts.STUNServer, Type: acs.XSDString},
				acs.ParameterValue{Path: mgmt + "STUNServerPort", Value: opts.STUNPort, Type: acs.XSDUnsignedInt},
				acs.ParameterValue{Path: mgmt + "STUNMinimumKeepAlivePeriod", Value: opts.STUNKeepalive, Type: acs.XSDUnsignedInt},
			),
		})
	}

	return steps
}
