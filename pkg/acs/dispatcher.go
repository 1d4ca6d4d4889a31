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

package acs

import (
	"context"
	"sync"
	"time"

	"github.com/carverauto/acsgateway/pkg/logger"
	"github.com/carverauto/acsgateway/pkg/models"
)

const eventPublishTimeout = 5 * time.Second

// DispatchOptions controls the connection request sent with a task.
type DispatchOptions struct {
	Wake        bool
	WakeTimeout time.Duration
}

// Dispatcher validates tasks, submits them and reports accepted ones.
// It never retries.
type Dispatcher struct {
	submitter TaskSubmitter
	events    TaskEventPublisher
	logger    logger.Logger
	now       func() time.Time
	pending   sync.WaitGroup
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithEventPublisher reports accepted tasks to p.
func WithEventPublisher(p TaskEventPublisher) DispatcherOption {
	return func(d *Dispatcher) {
		d.events = p
	}
}

// WithClock overrides the time source used for event timestamps.
func WithClock(now func() time.Time) DispatcherOption {
	return func(d *Dispatcher) {
		d.now = now
	}
}

func NewDispatcher(submitter TaskSubmitter, log logger.Logger, opts ...DispatcherOption) *Dispatcher {
	if log == nil {
		log = logger.NewTestLogger()
	}

	d := &Dispatcher{
		submitter: submitter,
		logger:    log,
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Dispatch submits task to deviceID. Transport failures come back as
// *TransportError and NBI refusals as *RejectionError.
func (d *Dispatcher) Dispatch(ctx context.Context, deviceID string, task Task, opts DispatchOptions) (*TaskHandle, error) {
	if deviceID == "" {
		return nil, errEmptyDeviceID
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	handle, err := d.submitter.PostTask(ctx, deviceID, task, opts.Wake, opts.WakeTimeout)
	if err != nil {
		return nil, err
	}

	d.report(ctx, deviceID, task, opts, handle)

	return handle, nil
}

// WiFiAndRebootResult holds both acknowledgements of ApplyWiFiAndReboot.
type WiFiAndRebootResult struct {
	WiFiTask   *TaskHandle `json:"wifi_task"`
	RebootTask *TaskHandle `json:"reboot_task"`
	Note       string      `json:"note"`
}

// ApplyWiFiAndReboot sends the Wi-Fi task with opts and, only once the ACS
// has accepted it, a reboot without a connection request.
func (d *Dispatcher) ApplyWiFiAndReboot(
	ctx context.Context, deviceID string, wifi Task, opts DispatchOptions) (*WiFiAndRebootResult, error) {
	wifiHandle, err := d.Dispatch(ctx, deviceID, wifi, opts)
	if err != nil {
		return nil, err
	}

	rebootHandle, err := d.Dispatch(ctx, deviceID, Reboot(), DispatchOptions{})
	if err != nil {
		return nil, err
	}

	return &WiFiAndRebootResult{
		WiFiTask:   wifiHandle,
		RebootTask: rebootHandle,
		Note:       "Wi-Fi applied and reboot queued.",
	}, nil
}

// Wait blocks until in-flight task events have been published.
func (d *Dispatcher) Wait() {
	d.pending.Wait()
}

func (d *Dispatcher) report(ctx context.Context, deviceID string, task Task, opts DispatchOptions, handle *TaskHandle) {
	if d.events == nil {
		return
	}

	data := &models.TaskEventData{
		DeviceID:  deviceID,
		TaskID:    handle.ID,
		TaskName:  task.Name,
		Wake:      opts.Wake,
		Timestamp: d.now().UTC(),
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), eventPublishTimeout)

	d.pending.Add(1)

	go func() {
		defer d.pending.Done()
		defer cancel()

		if err := d.events.PublishTaskEvent(pubCtx, data); err != nil {
			d.logger.Warn().
				Err(err).
				Str("device_id", deviceID).
				Str("task", task.Name).
				Msg("Failed to publish task event")
		}
	}()
}
