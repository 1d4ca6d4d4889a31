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
	"net/http"
	"time"

	"github.com/carverauto/acsgateway/pkg/models"
)

//go:generate mockgen -destination=mock_acs.go -package=acs github.com/carverauto/acsgateway/pkg/acs HTTPClient,TaskSubmitter,TaskEventPublisher

// HTTPClient defines the interface for making HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// TaskSubmitter posts a single task to the ACS.
type TaskSubmitter interface {
	PostTask(ctx context.Context, deviceID string, task Task, wake bool, timeout time.Duration) (*TaskHandle, error)
}

// TaskEventPublisher receives a record of every task the ACS accepted.
type TaskEventPublisher interface {
	PublishTaskEvent(ctx context.Context, data *models.TaskEventData) error
}
