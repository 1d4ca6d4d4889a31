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
	"time"

	"github.com/carverauto/acsgateway/pkg/logger"
)

// MinInterval is the shortest interval between two emits.
const MinInterval = time.Second

// Computer produces snapshots for the Publisher.
type Computer interface {
	Compute(ctx context.Context, onlineWindow, activeWindow time.Duration) (*Snapshot, error)
}

// Publisher runs one emit loop per subscriber. Nothing is shared between
// subscribers.
type Publisher struct {
	source       Computer
	onlineWindow time.Duration
	activeWindow time.Duration
	logger       logger.Logger
}

// NewPublisher returns a Publisher computing snapshots with the given windows.
func NewPublisher(source Computer, onlineWindow, activeWindow time.Duration, log logger.Logger) *Publisher {
	if log == nil {
		log = logger.NewTestLogger()
	}

	return &Publisher{
		source:       source,
		onlineWindow: onlineWindow,
		activeWindow: activeWindow,
		logger:       log,
	}
}

// Run emits a snapshot immediately and then once per interval until ctx is
// done. A compute or emit error ends the loop and is returned; cancellation
// returns nil.
func (p *Publisher) Run(ctx context.Context, interval time.Duration, emit func(*Snapshot) error) error {
	interval = max(interval, MinInterval)

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Debug().Msg("Overview subscriber gone")

			return nil
		case <-timer.C:
		}

		snap, err := p.source.Compute(ctx, p.onlineWindow, p.activeWindow)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}

			return err
		}

		if err := emit(snap); err != nil {
			return err
		}

		timer.Reset(interval)
	}
}

// Update carries either a snapshot or the error that ended the stream.
type Update struct {
	Snapshot *Snapshot
	Err      error
}

// Subscribe runs the loop in a goroutine. The channel is closed when the
// loop exits; a terminal error is delivered as the last Update.
func (p *Publisher) Subscribe(ctx context.Context, interval time.Duration) <-chan Update {
	ch := make(chan Update)

	go func() {
		defer close(ch)

		err := p.Run(ctx, interval, func(s *Snapshot) error {
			select {
			case ch <- Update{Snapshot: s}:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		if err == nil {
			return
		}

		select {
		case ch <- Update{Err: err}:
		case <-ctx.Done():
		}
	}()

	return ch
}
