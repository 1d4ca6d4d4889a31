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

// Package api pkg/core/api/interfaces.go
package api

import (
	"context"

	"github.com/carverauto/acsgateway/pkg/acs"
	"github.com/carverauto/acsgateway/pkg/inventory"
	"github.com/carverauto/acsgateway/pkg/models"
	"github.com/carverauto/acsgateway/pkg/tr069"
)

//go:generate mockgen -destination=mock_api_server.go -package=api github.com/carverauto/acsgateway/pkg/core/api TaskDispatcher,Inventory

// TaskDispatcher submits tasks to the ACS.
type TaskDispatcher interface {
	Dispatch(ctx context.Context, deviceID string, task acs.Task, opts acs.DispatchOptions) (*acs.TaskHandle, error)
	ApplyWiFiAndReboot(ctx context.Context, deviceID string, wifi acs.Task, opts acs.DispatchOptions) (*acs.WiFiAndRebootResult, error)
}

// Inventory answers device reads.
type Inventory interface {
	List(ctx context.Context, f inventory.ListFilter) (*inventory.ListPage, error)
	Detail(ctx context.Context, deviceID string) (*inventory.Detail, error)
	Distribution(ctx context.Context, sample int) (*inventory.Distribution, error)
	LastInforms(ctx context.Context, n int) ([]inventory.RecentInform, error)
	ReadSSID(ctx context.Context, deviceID string, wlanIndex int) (*models.ParameterValue, error)
	ReadValue(ctx context.Context, deviceID, name string) (*models.ParameterValue, error)
	WiFiTargets(ctx context.Context, deviceID string, band tr069.Band) (tr069.WiFiTargets, error)
}
