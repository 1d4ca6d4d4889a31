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

// Package overview computes fleet-wide health counters and streams them
// to live subscribers.
package overview

import "context"

//go:generate mockgen -destination=mock_overview.go -package=overview github.com/carverauto/acsgateway/pkg/overview Counter

// Counter counts devices matching an NBI filter.
type Counter interface {
	Count(ctx context.Context, filter map[string]interface{}) (int, error)
}
