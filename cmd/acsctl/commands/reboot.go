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
	"github.com/spf13/cobra"

	"github.com/carverauto/acsgateway/pkg/acs"
)

// taskResult is one device of a batch. A failed device carries Error.
type taskResult struct {
	Device string          `json:"device"`
	Task   *acs.TaskHandle `json:"task,omitempty"`
	Error  string          `json:"error,omitempty"`
}

func newRebootAllCmd() *cobra.Command {
	var wake bool

	cmd := &cobra.Command{
		Use:   "reboot-all",
		Short: "Queue a reboot on every device known to the ACS",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			ids, err := s.inventory.DeviceIDs(cmd.Context())
			if err != nil {
				return err
			}

			s.logger.Info().Int("devices", len(ids)).Msg("Queueing reboots")

			results := make([]taskResult, 0, len(ids))

			// One failing CPE does not stop the batch.
			for _, id := range ids {
				res := taskResult{Device: id}

				handle, err := s.dispatcher.Dispatch(cmd.Context(), id, acs.Reboot(), acs.DispatchOptions{Wake: wake})
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

	cmd.Flags().BoolVar(&wake, "wake", false, "Send a connection request with each reboot")

	return cmd
}
