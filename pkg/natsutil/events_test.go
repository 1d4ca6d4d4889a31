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

package natsutil

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/acsgateway/pkg/models"
)

var errTestFixture = errors.New("fixture error")

type capturedPublish struct {
	subject string
	payload []byte
}

type fakeStream struct {
	published []capturedPublish
	err       error
}

func (f *fakeStream) Publish(_ context.Context, subject string, payload []byte, _ ...jetstream.PublishOpt) (*jetstream.PubAck, error) {
	if f.err != nil {
		return nil, f.err
	}

	f.published = append(f.published, capturedPublish{subject: subject, payload: payload})

	return &jetstream.PubAck{Stream: "events", Sequence: uint64(len(f.published))}, nil
}

func TestPublishTaskEvent(t *testing.T) {
	t.Parallel()

	js := &fakeStream{}
	pub := NewEventPublisher(js, "events", "", nil)
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	err := pub.PublishTaskEvent(context.Background(), &models.TaskEventData{
		DeviceID:  "dev-1",
		TaskID:    "task-9",
		TaskName:  "reboot",
		Wake:      true,
		Timestamp: ts,
	})
	require.NoError(t, err)
	require.Len(t, js.published, 1)
	assert.Equal(t, models.TaskEventSubject, js.published[0].subject)

	var event struct {
		SpecVersion string               `json:"specversion"`
		ID          string               `json:"id"`
		Type        string               `json:"type"`
		Source      string               `json:"source"`
		Time        time.Time            `json:"time"`
		Data        models.TaskEventData `json:"data"`
	}

	require.NoError(t, json.Unmarshal(js.published[0].payload, &event))
	assert.Equal(t, "1.0", event.SpecVersion)
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, models.TaskAcceptedEventType, event.Type)
	assert.Equal(t, eventSource, event.Source)
	assert.True(t, ts.Equal(event.Time))
	assert.Equal(t, "task-9", event.Data.TaskID)
	assert.True(t, event.Data.Wake)
}

func TestPublishTaskEventWrapsFailure(t *testing.T) {
	t.Parallel()

	pub := NewEventPublisher(&fakeStream{err: nats.ErrConnectionClosed}, "events", "custom.subject", nil)

	err := pub.PublishTaskEvent(context.Background(), &models.TaskEventData{DeviceID: "dev-1"})
	require.ErrorIs(t, err, nats.ErrConnectionClosed)
}

func TestEnsureSubjectList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		subjects []string
		subject  string
		want     []string
	}{
		{
			name:     "adds subject when list empty",
			subjects: nil,
			subject:  "events.acs.task",
			want:     []string{"events.acs.task"},
		},
		{
			name:     "keeps list when wildcard matches",
			subjects: []string{"events.acs.*"},
			subject:  "events.acs.task",
			want:     []string{"events.acs.*"},
		},
		{
			name:     "keeps list when greater wildcard matches",
			subjects: []string{"events.>"},
			subject:  "events.acs.task",
			want:     []string{"events.>"},
		},
		{
			name:     "appends when unmatched",
			subjects: []string{"logs.syslog.*"},
			subject:  "events.acs.task",
			want:     []string{"logs.syslog.*", "events.acs.task"},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			result := ensureSubjectList(append([]string(nil), tc.subjects...), tc.subject)
			assert.Equal(t, tc.want, result)
		})
	}
}

func TestMatchesSubject(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		pattern  string
		subject  string
		expected bool
	}{
		{"exact match", "events.acs.task", "events.acs.task", true},
		{"single wildcard", "events.*.task", "events.acs.task", true},
		{"greater wildcard", "events.>", "events.acs.task", true},
		{"greater needs a token", "events.acs.task.>", "events.acs.task", false},
		{"no match length", "events.*", "events.acs.task", false},
		{"no match tokens", "logs.syslog.*", "events.acs.task", false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := matchesSubject(tc.pattern, tc.subject); got != tc.expected {
				t.Fatalf("matchesSubject(%q, %q) = %t, want %t", tc.pattern, tc.subject, got, tc.expected)
			}
		})
	}
}

func TestIsStreamMissingErr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"jetstream no stream response", jetstream.ErrNoStreamResponse, true},
		{"jetstream stream not found", jetstream.ErrStreamNotFound, true},
		{"nats no stream response", nats.ErrNoStreamResponse, true},
		{"nats stream not found", nats.ErrStreamNotFound, true},
		{"nats no responders", nats.ErrNoResponders, true},
		{"other error", errTestFixture, false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := isStreamMissingErr(tc.err); got != tc.expected {
				t.Fatalf("isStreamMissingErr(%v) = %t, want %t", tc.err, got, tc.expected)
			}
		})
	}
}

func TestTLSConfigRequiresCertificate(t *testing.T) {
	t.Parallel()

	_, err := TLSConfig(nil)
	require.ErrorIs(t, err, ErrMTLSRequired)

	_, err = TLSConfig(&models.TLSConfig{CAFile: "/ca.pem"})
	require.ErrorIs(t, err, ErrMTLSRequired)
}

func TestTLSConfigMissingFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := TLSConfig(&models.TLSConfig{
		CertFile: filepath.Join(dir, "client.pem"),
		KeyFile:  filepath.Join(dir, "client-key.pem"),
		CAFile:   filepath.Join(dir, "ca.pem"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
