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
	"fmt"

	"github.com/carverauto/acsgateway/pkg/acs"
	"github.com/carverauto/acsgateway/pkg/logger"
)

// TaskDispatcher is satisfied by *acs.Dispatcher.
type TaskDispatcher interface {
	Dispatch(ctx context.Context, deviceID string, task acs.Task, opts acs.DispatchOptions) (*acs.TaskHandle, error)
}

// Outcome records the result of one step.
type Outcome struct {
	Step  string          `json:"step"`
	Task  *acs.TaskHandle `json:"task,omitempty"`
	Error string          `json:"error,omitempty"`
}

// Runner dispatches a plan step by step.
type Runner struct {
	dispatcher TaskDispatcher
	wake       bool
	logger     logger.Logger
}

func NewRunner(d TaskDispatcher, wake bool, log logger.Logger) *Runner {
	if log == nil {
		log = logger.NewTestLogger()
	}

	return &Runner{dispatcher: d, wake: wake, logger: log}
}

// Run dispatches plan in order. It stops at the first failing step unless
// that step is Tolerant; the outcomes gathered so far are returned either way.
func (r *Runner) Run(ctx context.Context, deviceID string, plan []Step) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(plan))
	opts := acs.DispatchOptions{Wake: r.wake}

	for _, step := range plan {
		r.logger.Info().
			Str("device_id", deviceID).
			Str("step", step.Label).
			Msg("Dispatching bootstrap step")

		handle, err := r.dispatcher.Dispatch(ctx, deviceID, step.Task, opts)
		if err == nil {
			outcomes = append(outcomes, Outcome{Step: step.Label, Task: handle})

			continue
		}

		if !step.Tolerant {
			return outcomes, fmt.Errorf("%s: %w", step.Label, err)
		}

		r.logger.Warn().
			Err(err).
			Str("device_id", deviceID).
			Str("step", step.Label).
			Msg("Bootstrap step failed, continuing")

		outcomes = append(outcomes, Outcome{Step: step.Label, Error: err.Error()})
	}

	return outcomes, nil
}
