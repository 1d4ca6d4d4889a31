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

package overview

import (
	"context"
	"fmt"
	"time"

	"github.com/carverauto/acsgateway/pkg/inventory"
	"github.com/carverauto/acsgateway/pkg/models"
)

const (
	DefaultOnlineWindow = 600 * time.Second
	DefaultActiveWindow = 24 * time.Hour
)

// Windows echoes the windows a Snapshot was computed with, in seconds.
type Windows struct {
	OnlineSec    int64 `json:"online_sec"`
	Active24hSec int64 `json:"active_24h_sec"`
}

// Snapshot is one computation of the fleet counters.
type Snapshot struct {
	GeneratedAt  string  `json:"generated_at"`
	TotalDevices int     `json:"total_devices"`
	OnlineNow    int     `json:"online_now"`
	Active24h    int     `json:"active_24h"`
	Offline24h   int     `json:"offline_24h"`
	Windows      Windows `json:"windows"`
}

// Aggregator derives a Snapshot from three count queries.
type Aggregator struct {
	counter Counter
	now     func() time.Time
}

// NewAggregator returns an Aggregator reading through counter. A nil now
// selects time.Now.
func NewAggregator(counter Counter, now func() time.Time) *Aggregator {
	if now == nil {
		now = time.Now
	}

	return &Aggregator{counter: counter, now: now}
}

// Compute issues the total, online and active counts. The counts are not
// taken atomically, so Offline24h is clamped at zero.
func (a *Aggregator) Compute(ctx context.Context, onlineWindow, activeWindow time.Duration) (*Snapshot, error) {
	if onlineWindow <= 0 {
		onlineWindow = DefaultOnlineWindow
	}

	if activeWindow <= 0 {
		activeWindow = DefaultActiveWindow
	}

	now := a.now().UTC()

	total, err := a.counter.Count(ctx, map[string]interface{}{})
	if err != nil {
		return nil, fmt.Errorf("count total devices: %w", err)
	}

	online, err := a.counter.Count(ctx, inventory.SinceFilter(now.Add(-onlineWindow)))
	if err != nil {
		return nil, fmt.Errorf("count online devices: %w", err)
	}

	active, err := a.counter.Count(ctx, inventory.SinceFilter(now.Add(-activeWindow)))
	if err != nil {
		return nil, fmt.Errorf("count active devices: %w", err)
	}

	return &Snapshot{
		GeneratedAt:  models.ISOTime(now),
		TotalDevices: total,
		OnlineNow:    online,
		Active24h:    active,
		Offline24h:   max(total-active, 0),
		Windows: Windows{
			OnlineSec:    int64(onlineWindow / time.Second),
			Active24hSec: int64(activeWindow / time.Second),
		},
	}, nil
}
