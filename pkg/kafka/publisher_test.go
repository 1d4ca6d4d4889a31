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

package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/carverauto/acsgateway/pkg/models"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}

	f.msgs = append(f.msgs, msgs...)

	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestNewWriterDefaults(t *testing.T) {
	t.Parallel()

	w := NewWriter(&models.KafkaConfig{Brokers: []string{"k1:9092", "k2:9092"}, Topic: "acs.tasks"})

	assert.Equal(t, "acs.tasks", w.Topic)
	assert.Contains(t, w.Addr.String(), "k2:9092")
	assert.Equal(t, defaultBatchSize, w.BatchSize)
	assert.Equal(t, defaultBatchTimeout, w.BatchTimeout)
	assert.Equal(t, kafka.RequireAll, w.RequiredAcks)
	assert.IsType(t, &kafka.Hash{}, w.Balancer)
}

func TestNewWriterHonoursBatching(t *testing.T) {
	t.Parallel()

	w := NewWriter(&models.KafkaConfig{
		Brokers:      []string{"k1:9092"},
		BatchSize:    7,
		BatchTimeout: models.Duration(time.Second),
	})

	assert.Equal(t, 7, w.BatchSize)
	assert.Equal(t, time.Second, w.BatchTimeout)
}

func TestPublishTaskEvent(t *testing.T) {
	t.Parallel()

	w := &fakeWriter{}
	p := NewPublisher(w, "", nil)
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, p.PublishTaskEvent(context.Background(), &models.TaskEventData{
		DeviceID:  "dev-1",
		TaskID:    "t-1",
		TaskName:  "factoryReset",
		Timestamp: ts,
	}))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "dev-1", string(msg.Key))
	assert.Equal(t, ts, msg.Time)

	headers := map[string]string{}
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}

	assert.Equal(t, models.TaskAcceptedEventType, headers["ce_type"])
	assert.Equal(t, "application/json", headers["content-type"])

	var event models.CloudEvent
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, headers["ce_id"], event.ID)
	assert.Equal(t, models.TaskEventSubject, event.Subject)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestPublishTaskEventWrapsWriteError(t *testing.T) {
	t.Parallel()

	boom := errors.New("leader not available")
	p := NewPublisher(&fakeWriter{err: boom}, "acs.tasks", nil)

	err := p.PublishTaskEvent(context.Background(), &models.TaskEventData{DeviceID: "dev-1"})
	require.ErrorIs(t, err, boom)
}
