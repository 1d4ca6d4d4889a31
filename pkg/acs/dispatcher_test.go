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
	"errors"
	"testing"
	"time"

	"github.com/carverauto/acsgateway/pkg/logger"
	"github.com/carverauto/acsgateway/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var wifiTask = SetParameterValues(
	ParameterValue{Path: "InternetGatewayDevice.LANDevice.1.WLANConfiguration.1.SSID", Value: "Casa", Type: XSDString},
	ParameterValue{Path: "InternetGatewayDevice.LANDevice.1.WLANConfiguration.1.PreSharedKey.1.KeyPassphrase", Value: "s3cret!", Type: XSDString},
)

// recordingSubmitter counts submissions per task name.
type recordingSubmitter struct {
	calls map[string]int
	fail  map[string]error
}

func (r *recordingSubmitter) PostTask(_ context.Context, _ string, task Task, _ bool, _ time.Duration) (*TaskHandle, error) {
	if r.calls == nil {
		r.calls = map[string]int{}
	}

	r.calls[task.Name]++

	if err := r.fail[task.Name]; err != nil {
		return nil, err
	}

	return &TaskHandle{ID: task.Name + "-1", Body: []byte(`{"_id":"` + task.Name + `-1"}`)}, nil
}

func TestDispatchPassesWakeOptions(t *testing.T) {
	ctrl := gomock.NewController(t)
	submitter := NewMockTaskSubmitter(ctrl)

	submitter.EXPECT().
		PostTask(gomock.Any(), "dev-1", Reboot(), true, 10*time.Second).
		Return(&TaskHandle{ID: "t1"}, nil)

	d := NewDispatcher(submitter, logger.NewTestLogger())

	h, err := d.Dispatch(context.Background(), "dev-1", Reboot(), DispatchOptions{Wake: true, WakeTimeout: 10 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, "t1", h.ID)
}

func TestDispatchRejectsInvalidTasks(t *testing.T) {
	ctrl := gomock.NewController(t)
	d := NewDispatcher(NewMockTaskSubmitter(ctrl), nil)

	tests := []struct {
		name string
		task Task
	}{
		{name: "unknown", task: Task{Name: "download"}},
		{name: "empty set", task: SetParameterValues()},
		{name: "untyped value", task: SetParameterValues(ParameterValue{Path: "Device.X", Value: 1})},
		{name: "empty get", task: GetParameterValues()},
		{name: "refresh without object", task: RefreshObject("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.Dispatch(context.Background(), "dev-1", tt.task, DispatchOptions{})
			require.ErrorIs(t, err, ErrInvalidTask)
		})
	}

	_, err := d.Dispatch(context.Background(), "", Reboot(), DispatchOptions{})
	require.ErrorIs(t, err, errEmptyDeviceID)
}

func TestDispatchSurfacesErrorsUnchanged(t *testing.T) {
	ctrl := gomock.NewController(t)
	submitter := NewMockTaskSubmitter(ctrl)

	rej := &RejectionError{Op: "POST /devices/dev-1/tasks", StatusCode: 404, Body: "No such device"}
	submitter.EXPECT().PostTask(gomock.Any(), "dev-1", FactoryReset(), false, time.Duration(0)).Return(nil, rej)

	d := NewDispatcher(submitter, nil)

	_, err := d.Dispatch(context.Background(), "dev-1", FactoryReset(), DispatchOptions{})
	assert.Same(t, rej, err)
}

func TestApplyWiFiAndReboot(t *testing.T) {
	ctrl := gomock.NewController(t)
	submitter := NewMockTaskSubmitter(ctrl)

	gomock.InOrder(
		submitter.EXPECT().
			PostTask(gomock.Any(), "dev-1", wifiTask, true, 10*time.Second).
			Return(&TaskHandle{ID: "w1"}, nil),
		submitter.EXPECT().
			PostTask(gomock.Any(), "dev-1", Reboot(), false, time.Duration(0)).
			Return(&TaskHandle{ID: "r1"}, nil),
	)

	d := NewDispatcher(submitter, nil)

	res, err := d.ApplyWiFiAndReboot(context.Background(), "dev-1", wifiTask, DispatchOptions{Wake: true, WakeTimeout: 10 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, "w1", res.WiFiTask.ID)
	assert.Equal(t, "r1", res.RebootTask.ID)
}

func TestApplyWiFiAndRebootNeverRebootsAfterWiFiFailure(t *testing.T) {
	failures := []error{
		&TransportError{Op: "POST /devices/dev-1/tasks", Err: errors.New("timeout")},
		&RejectionError{Op: "POST /devices/dev-1/tasks", StatusCode: 500, Body: "boom"},
	}

	for _, failure := range failures {
		submitter := &recordingSubmitter{fail: map[string]error{TaskSetParameterValues: failure}}
		d := NewDispatcher(submitter, nil)

		res, err := d.ApplyWiFiAndReboot(context.Background(), "dev-1", wifiTask, DispatchOptions{Wake: true})
		require.ErrorIs(t, err, failure)
		assert.Nil(t, res)
		assert.Equal(t, 1, submitter.calls[TaskSetParameterValues])
		assert.Equal(t, 0, submitter.calls[TaskReboot])
	}
}

func TestDispatchPublishesTaskEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	submitter := NewMockTaskSubmitter(ctrl)
	events := NewMockTaskEventPublisher(ctrl)

	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	submitter.EXPECT().PostTask(gomock.Any(), "dev-1", Reboot(), true, 5*time.Second).Return(&TaskHandle{ID: "t9"}, nil)
	events.EXPECT().PublishTaskEvent(gomock.Any(), &models.TaskEventData{
		DeviceID:  "dev-1",
		TaskID:    "t9",
		TaskName:  TaskReboot,
		Wake:      true,
		Timestamp: fixed,
	}).Return(nil)

	d := NewDispatcher(submitter, nil, WithEventPublisher(events), WithClock(func() time.Time { return fixed }))

	_, err := d.Dispatch(context.Background(), "dev-1", Reboot(), DispatchOptions{Wake: true, WakeTimeout: 5 * time.Second})
	require.NoError(t, err)

	d.Wait()
}

func TestDispatchIgnoresPublishFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	submitter := NewMockTaskSubmitter(ctrl)
	events := NewMockTaskEventPublisher(ctrl)

	submitter.EXPECT().PostTask(gomock.Any(), "dev-1", Reboot(), false, time.Duration(0)).Return(&TaskHandle{ID: "t1"}, nil)
	events.EXPECT().PublishTaskEvent(gomock.Any(), gomock.Any()).Return(errors.New("nats: no responders"))

	d := NewDispatcher(submitter, nil, WithEventPublisher(events))

	h, err := d.Dispatch(context.Background(), "dev-1", Reboot(), DispatchOptions{})
	require.NoError(t, err)
	assert.Equal(t, "t1", h.ID)

	d.Wait()
}

func TestDispatchDoesNotPublishRejectedTasks(t *testing.T) {
	submitter := &recordingSubmitter{fail: map[string]error{TaskReboot: &RejectionError{StatusCode: 404}}}

	ctrl := gomock.NewController(t)
	d := NewDispatcher(submitter, nil, WithEventPublisher(NewMockTaskEventPublisher(ctrl)))

	_, err := d.Dispatch(context.Background(), "dev-1", Reboot(), DispatchOptions{})
	require.Error(t, err)

	d.Wait()
}
