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
	"time"

	"github.com/spf13/cobra"

	"github.com/carverauto/acsgateway/pkg/provision"
)

var errDeviceRequired = errors.New("--device is required")

type bootstrapResult struct {
	Device   string              `json:"device"`
	Outcomes []provision.Outcome `json:"outcomes"`
}

func newBootstrapCmd() *cobra.Command {
	var (
		device string
		opts   provision.Options
		period int
	)

	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Discover a CPE and optionally set periodic inform and STUN",
		Long: `Queue the discovery sequence on one CPE: refresh the Device. subtrees,
read the management server, Wi-Fi and IP parameters and, when asked, enable
periodic inform and STUN.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if device == "" {
				return errDeviceRequired
			}

			if cmd.Flags().Changed("interval") {
				opts.Interval = &period
			}

			if err := opts.Validate(); err != nil {
				return err
			}

			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			runner := provision.NewRunner(s.dispatcher, opts.Wake, s.logger)

			outcomes, err := runner.Run(cmd.Context(), device, provision.Plan(opts, time.Now()))
			if printErr := printJSON(cmd, bootstrapResult{Device: device, Outcomes: outcomes}); printErr != nil {
				return printErr
			}

			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&device, "device", "", "Device id")
	f.IntVar(&period, "interval", 0, "PeriodicInformInterval in seconds")
	f.BoolVar(&opts.SetPeriodicTime, "set-periodic-time", false, "Also set PeriodicInformTime to now (needs --interval)")
	f.BoolVar(&opts.WithSTUN, "with-stun", false, "Enable STUN")
	f.StringVar(&opts.STUNServer, "stun-server", provision.DefaultSTUNServer, "STUN server address")
	f.IntVar(&opts.STUNPort, "stun-port", provision.DefaultSTUNPort, "STUN server port")
	f.IntVar(&opts.STUNKeepalive, "stun-keepalive", provision.DefaultSTUNKeepalive, "STUN minimum keepalive in seconds")
	f.BoolVar(&opts.Wake, "use-connection-request", false, "Ask the ACS to wake the CPE for every task")

	return cmd
}
