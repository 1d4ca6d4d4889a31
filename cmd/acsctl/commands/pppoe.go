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

	"github.com/spf13/cobra"

	"github.com/carverauto/acsgateway/pkg/acs"
	"github.com/carverauto/acsgateway/pkg/tr069"
)

var errUsernameRequired = errors.New("--username is required")

// pppoeTask writes the credentials to the default PPP connection.
func pppoeTask(username, password string, enable bool) acs.Task {
	return acs.SetParameterValues(
		acs.ParameterValue{Path: tr069.WriteTarget(tr069.AttrPPPoEUsername, 1), Value: username, Type: acs.XSDString},
		acs.ParameterValue{Path: tr069.WriteTarget(tr069.AttrPPPoEPassword, 1), Value: password, Type: acs.XSDString},
		acs.ParameterValue{Path: tr069.WriteTarget(tr069.AttrPPPoEEnable, 1), Value: enable, Type: acs.XSDBoolean},
	)
}

func newPPPoECmd() *cobra.Command {
	var (
		devices  []string
		username string
		password string
		enable   bool
		wake     bool
	)

	cmd := &cobra.Command{
		Use:   "pppoe",
		Short: "Change the PPPoE credentials of several CPEs",
		Long: `Queue the same PPPoE username and password on every --device. The
credentials go to the default WANPPPConnection paths and the interface is
enabled unless --enable=false.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(devices) == 0 {
				return errDeviceRequired
			}

			if username == "" {
				return errUsernameRequired
			}

			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			task := pppoeTask(username, password, enable)
			results := make([]taskResult, 0, len(devices))

			for _, id := range devices {
				res := taskResult{Device: id}

				handle, err := s.dispatcher.Dispatch(cmd.Context(), id, task, acs.DispatchOptions{Wake: wake})
				if err != nil {
					res.Error = err.Error()
				} else {
					res.Task = handle
				}

				results = append(results, res)
			}

			return printJSON(cmd, results)
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&devices, "device", nil, "Device id, repeat or comma-separate for several")
	f.StringVar(&username, "username", "", "PPPoE username")
	f.StringVar(&password, "password", "", "PPPoE password")
	f.BoolVar(&enable, "enable", true, "Enable the PPP interface")
	f.BoolVar(&wake, "wake", false, "Send a connection request with each task")

	return cmd
}
