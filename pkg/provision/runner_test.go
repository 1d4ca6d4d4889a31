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
	"context"
	"errors"
	"testing"
	"time"

	"github.com/carverauto/acsgateway/pkg/acs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testDevice = "40ED00-EX141-22353Q1007438"

func TestRunDispatchesInOrderWithWake(t *testing.T) {
	ctrl := gomock.NewController(t)
	submitter := acs.NewMockTaskSubmitter(ctrl)

	plan := Plan(Options{}, time.Now())

	calls := make([]any, 0, len(plan))
	for i, step := range plan {
		calls = append(calls, submitter.EXPECT().
			PostTask(gomock.Any(), testDevice, step.Task, true, time.Duration(0)).
			Return(&acs.TaskHandle{ID: string(rune('a' + i))}, nil))
	}

	gomock.InOrder(calls...)

	runner := NewRunner(acs.NewDispatcher(submitter, nil), true, nil)

	out, err := runner.Run(context.Background(), testDevice, plan)
	require.NoError(t, err)
	require.Len(t, out, len(plan))
	assert.Equal(t, "a", out[0].Task.ID)
	assert.Equal(t, "refresh Device.", out[0].Step)
}

func TestRunToleratesSTUNFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	submitter := acs.NewMockTaskSubmitter(ctrl)

	opts := Options{WithSTUN: true}
	require.NoError(t, opts.Validate())

	plan := Plan(opts, time.Now())
	fault := &acs.RejectionError{Op: "POST /devices/x/tasks", StatusCode: 400, Body: "9007"}

	submitter.EXPECT().PostTask(gomock.Any(), testDevice, gomock.Any(), false, gomock.Any()).
		Return(&acs.TaskHandle{ID: "ok"}, nil).Times(len(plan) - 1)
	submitter.EXPECT().PostTask(gomock.Any(), testDevice, plan[len(plan)-1].Task, false, gomock.Any()).
		Return(nil, fault)

	out, err := NewRunner(acs.NewDispatcher(submitter, nil), false, nil).Run(context.Background(), testDevice, plan)
	require.NoError(t, err)
	require.Len(t, out, len(plan))

	last := out[len(out)-1]
	assert.Nil(t, last.Task)
	assert.Contains(t, last.Error, "9007")
}

func TestRunStopsOnFirstHardFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	submitter := acs.NewMockTaskSubmitter(ctrl)
	boom := &acs.TransportError{Op: "POST /devices/x/tasks", Err: errors.New("connection refused")}

	plan := Plan(Options{}, time.Now())

	submitter.EXPECT().PostTask(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&acs.TaskHandle{ID: "ok"}, nil)
	submitter.EXPECT().PostTask(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, boom)

	out, err := NewRunner(acs.NewDispatcher(submitter, nil), false, nil).Run(context.Background(), testDevice, plan)

	var te *acs.TransportError
	require.ErrorAs(t, err, &te)
	assert.Contains(t, err.Error(), "refresh Device.WiFi.")
	assert.Len(t, out, 1)
}
