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

package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carverauto/acsgateway/pkg/acs"
	"github.com/carverauto/acsgateway/pkg/tr069"
)

var errSSIDRequired = errors.New("--ssid is required")

func parseBand(v string) (tr069.Band, error) {
	switch v {
	case "2.4", "2.4GHz", "2g":
		return tr069.Band24GHz, nil
	case "5", "5GHz", "5g":
		return tr069.Band5GHz, nil
	default:
		return "", fmt.Errorf("unknown band %q (want 2.4 or 5)", v)
	}
}

func newWiFiCmd() *cobra.Command {
	var (
		device   string
		ssid     string
		password string
		band     string
		reboot   bool
		wake     bool
	)

	cmd := &cobra.Command{
		Use:   "wifi",
		Short: "Change the SSID and passphrase of one band",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if device == "" {
				return errDeviceRequired
			}

			if ssid == "" {
				return errSSIDRequired
			}

			b, err := parseBand(band)
			if err != nil {
				return err
			}

			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			targets, err := s.inventory.WiFiTargets(cmd.Context(), device, b)
			if err != nil {
				return err
			}

			task := acs.SetParameterValues(
				acs.ParameterValue{Path: targets.SSIDPath, Value: ssid, Type: acs.XSDString},
				acs.ParameterValue{Path: targets.PassphrasePath, Value: password, Type: acs.XSDString},
			)
			opts := acs.DispatchOptions{Wake: wake}

			if reboot {
				res, err := s.dispatcher.ApplyWiFiAndReboot(cmd.Context(), device, task, opts)
				if err != nil {
					return err
				}

				return printJSON(cmd, res)
			}

			handle, err := s.dispatcher.Dispatch(cmd.Context(), device, task, opts)
			if err != nil {
				return err
			}

			return printJSON(cmd, handle)
		},
	}

	f := cmd.Flags()
	f.StringVar(&device, "device", "", "Device id")
	f.StringVar(&ssid, "ssid", "", "New SSID")
	f.StringVar(&password, "password", "", "New passphrase")
	f.StringVar(&band, "band", "2.4", "Band to change: 2.4 or 5")
	f.BoolVar(&reboot, "reboot", false, "Queue a reboot once the change is accepted")
	f.BoolVar(&wake, "wake", true, "Send a connection request with the Wi-Fi task")

	return cmd
}
