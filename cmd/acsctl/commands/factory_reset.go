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
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/carverauto/acsgateway/pkg/acs"
	"github.com/carverauto/acsgateway/pkg/tr069"
)

var (
	errResetNotObserved = errors.New("device did not come back before --wait-timeout")
	errInvalidPoll      = errors.New("--poll and --wait-timeout must be positive")
)

// resetWatchFields are the only fields read while waiting for the reboot.
var resetWatchFields = []string{"_lastBoot", "_lastInform"}

type factoryResetResult struct {
	Device     string            `json:"device"`
	Task       *acs.TaskHandle   `json:"task"`
	Rebooted   bool              `json:"rebooted"`
	DetectedBy string            `json:"detected_by,omitempty"`
	Ping       *acs.TaskHandle   `json:"ping,omitempty"`
	Refresh    *acs.TaskHandle   `json:"refresh,omitempty"`
	Values     map[string]string `json:"values,omitempty"`
	Warnings   []string          `json:"warnings,omitempty"`
}

type resetWaitOptions struct {
	poll      time.Duration
	timeout   time.Duration
	pingAfter time.Duration
	settle    time.Duration
}

func newFactoryResetCmd() *cobra.Command {
	var (
		device string
		wait   bool
		opts   resetWaitOptions
	)

	cmd := &cobra.Command{
		Use:   "factory-reset",
		Short: "Factory reset a CPE and refresh its Wi-Fi and PPPoE values",
		Long: `Queue a factoryReset with a connection request. With --wait, poll
_lastBoot and _lastInform until the CPE comes back, then queue one read of
the SSID and PPPoE parameters so the ACS shows the factory values. A
read-only getParameterValues is sent once if nothing changed after
--ping-after.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if device == "" {
				return errDeviceRequired
			}

			if wait && (opts.poll <= 0 || opts.timeout <= 0) {
				return errInvalidPoll
			}

			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			res, err := s.factoryReset(cmd.Context(), device, wait, opts)
			if res != nil {
				if perr := printJSON(cmd, res); perr != nil {
					return perr
				}
			}

			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&device, "device", "", "Device id")
	f.BoolVar(&wait, "wait", true, "Wait for the CPE to come back and refresh its values")
	f.DurationVar(&opts.poll, "poll", 5*time.Second, "Interval between NBI checks while waiting")
	f.DurationVar(&opts.timeout, "wait-timeout", 10*time.Minute, "Give up waiting after this long")
	f.DurationVar(&opts.pingAfter, "ping-after", 45*time.Second, "Send a read-only request if nothing changed after this long (0 disables)")
	f.DurationVar(&opts.settle, "settle", 15*time.Second, "Pause after the reboot is seen before reading values")

	return cmd
}

func (s *session) factoryReset(
	ctx context.Context, device string, wait bool, opts resetWaitOptions) (*factoryResetResult, error) {
	before, err := s.client.GetDevice(ctx, device)
	if err != nil {
		return nil, err
	}

	wake := acs.DispatchOptions{Wake: true}

	handle, err := s.dispatcher.Dispatch(ctx, device, acs.FactoryReset(), wake)
	if err != nil {
		return nil, err
	}

	res := &factoryResetResult{Device: device, Task: handle}
	if !wait {
		return res, nil
	}

	detectedBy, err := s.waitForReboot(ctx, device, before, opts, res)
	if err != nil {
		return res, err
	}

	res.Rebooted = true
	res.DetectedBy = detectedBy

	if err := sleepContext(ctx, opts.settle); err != nil {
		return res, err
	}

	paths := refreshPaths(before)

	res.Refresh, err = s.dispatcher.Dispatch(ctx, device, acs.GetParameterValues(paths...), wake)
	if err != nil {
		res.Warnings = append(res.Warnings, "refresh: "+err.Error())
	}

	after, err := s.client.GetDevice(ctx, device)
	if err != nil {
		res.Warnings = append(res.Warnings, "read back: "+err.Error())
		return res, nil
	}

	res.Values = make(map[string]string, len(paths))

	for _, p := range paths {
		v, _ := tr069.Extract(after, p)
		res.Values[p] = tr069.ScalarString(v)
	}

	return res, nil
}

// waitForReboot polls the device until _lastBoot or _lastInform differs from
// before. _lastBoot is checked first. NBI errors while polling are logged and
// the poll continues.
func (s *session) waitForReboot(
	ctx context.Context, device string, before tr069.Document, opts resetWaitOptions,
	res *factoryResetResult) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	ticker := time.NewTicker(opts.poll)
	defer ticker.Stop()

	var pingC <-chan time.Time

	if opts.pingAfter > 0 {
		ping := time.NewTimer(opts.pingAfter)
		defer ping.Stop()

		pingC = ping.C
	}

	query := acs.DeviceQuery{
		Filter:     map[string]interface{}{"_id": device},
		Projection: resetWatchFields,
		Limit:      1,
	}

	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return "", errResetNotObserved
			}

			return "", ctx.Err()
		case <-pingC:
			pingC = nil

			path := tr069.Resolve(before, tr069.AttrSerialNumber, 1).Path

			h, err := s.dispatcher.Dispatch(ctx, device, acs.GetParameterValues(path), acs.DispatchOptions{Wake: true})
			if err != nil {
				res.Warnings = append(res.Warnings, "ping: "+err.Error())
				continue
			}

			res.Ping = h
		case <-ticker.C:
			docs, err := s.client.FindDevices(ctx, query)
			if err != nil || len(docs) == 0 {
				s.logger.Debug().Err(err).Str("device", device).Msg("Reboot check failed")
				continue
			}

			if lb := docs[0].LastBoot(); lb != "" && lb != before.LastBoot() {
				return "_lastBoot", nil
			}

			if li := docs[0].LastInform(); li != "" && li != before.LastInform() {
				return "_lastInform", nil
			}
		}
	}
}

// refreshPaths lists the SSIDs of both bands and the PPPoE credentials on
// the data model the device reported before the reset.
func refreshPaths(doc tr069.Document) []string {
	return []string{
		tr069.Resolve(doc, tr069.AttrSSID, 1).Path,
		tr069.Resolve(doc, tr069.AttrSSID, 2).Path,
		tr069.Resolve(doc, tr069.AttrPPPoEUsername, 1).Path,
		tr069.Resolve(doc, tr069.AttrPPPoEPassword, 1).Path,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
