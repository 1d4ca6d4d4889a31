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

// Package kafka publishes task events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/carverauto/acsgateway/pkg/logger"
	"github.com/carverauto/acsgateway/pkg/models"
	"github.com/segmentio/kafka-go"
)

const (
	eventSource         = "acsgateway/api"
	defaultBatchSize    = 100
	defaultBatchTimeout = 50 * time.Millisecond
)

// MessageWriter is the part of *kafka.Writer the publisher uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewWriter builds a writer for cfg. Messages are keyed by device so one
// device's events stay on one partition.
func NewWriter(cfg *models.KafkaConfig) *kafka.Writer {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	batchTimeout := time.Duration(cfg.BatchTimeout)
	if batchTimeout <= 0 {
		batchTimeout = defaultBatchTimeout
	}

	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		BatchSize:              batchSize,
		BatchTimeout:           batchTimeout,
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
}

// Publisher writes task CloudEvents to Kafka.
type Publisher struct {
	writer  MessageWriter
	subject string
	logger  logger.Logger
}

func NewPublisher(w MessageWriter, subject string, log logger.Logger) *Publisher {
	if log == nil {
		log = logger.NewTestLogger()
	}

	if subject == "" {
		subject = models.TaskEventSubject
	}

	return &Publisher{writer: w, subject: subject, logger: log}
}

// PublishTaskEvent writes one event keyed by device id.
func (p *Publisher) PublishTaskEvent(ctx context.Context, data *models.TaskEventData) error {
	event := models.NewTaskCloudEvent(eventSource, p.subject, data)

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal task event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(data.DeviceID),
		Value: value,
		Time:  data.Timestamp,
		Headers: []kafka.Header{
			{Key: "ce_id", Value: []byte(event.ID)},
			{Key: "ce_type", Value: []byte(event.Type)},
			{Key: "content-type", Value: []byte(event.DataContentType)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write task event: %w", err)
	}

	p.logger.Debug().
		Str("event_id", event.ID).
		Str("device_id", data.DeviceID).
		Msg("Wrote task event")

	return nil
}

// Close flushes pending messages and closes the writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
