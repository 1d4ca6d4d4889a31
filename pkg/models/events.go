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

package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	EventSinkNone  = ""
	EventSinkNATS  = "nats"
	EventSinkKafka = "kafka"

	// TaskAcceptedEventType is the CloudEvent type of an accepted ACS task.
	TaskAcceptedEventType = "com.carverauto.acsgateway.task.accepted"
	// TaskEventSubject is the default subject and topic for task events.
	TaskEventSubject = "events.acs.task"
)

// NATSConfig configures NATS connectivity
type NATSConfig struct {
	URL    string     `json:"url"`
	Stream string     `json:"stream"`
	TLS    *TLSConfig `json:"tls,omitempty"`
}

// TLSConfig holds client certificate paths for mTLS connections.
type TLSConfig struct {
	CertFile   string `json:"cert_file"`
	KeyFile    string `json:"key_file"`
	CAFile     string `json:"ca_file"`
	ServerName string `json:"server_name"`
}

// KafkaConfig configures the Kafka writer used for task events.
type KafkaConfig struct {
	Brokers      []string `json:"brokers"`
	Topic        string   `json:"topic"`
	BatchSize    int      `json:"batch_size"`
	BatchTimeout Duration `json:"batch_timeout"`
}

// EventsConfig configures where accepted tasks are reported.
type EventsConfig struct {
	Sink    string       `json:"sink"`
	Subject string       `json:"subject"`
	NATS    *NATSConfig  `json:"nats,omitempty"`
	Kafka   *KafkaConfig `json:"kafka,omitempty"`
}

// Validate ensures the events configuration is valid
func (c *EventsConfig) Validate() error {
	if c.Subject == "" {
		c.Subject = TaskEventSubject
	}

	switch c.Sink {
	case EventSinkNone:
		return nil
	case EventSinkNATS:
		if c.NATS == nil || c.NATS.URL == "" {
			return fmt.Errorf("nats url is required for sink %q", c.Sink)
		}

		if c.NATS.Stream == "" {
			c.NATS.Stream = "events"
		}

		if t := c.NATS.TLS; t != nil && (t.CertFile == "" || t.KeyFile == "" || t.CAFile == "") {
			return errIncompleteTLS
		}

		return nil
	case EventSinkKafka:
		if c.Kafka == nil || len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("kafka brokers are required for sink %q", c.Sink)
		}

		if c.Kafka.Topic == "" {
			c.Kafka.Topic = c.Subject
		}

		return nil
	default:
		return fmt.Errorf("%w: %q", errInvalidSink, c.Sink)
	}
}

// CloudEvent represents a CloudEvents v1.0 compliant event.
type CloudEvent struct {
	SpecVersion     string      `json:"specversion"`
	ID              string      `json:"id"`
	Source          string      `json:"source"`
	Type            string      `json:"type"`
	DataContentType string      `json:"datacontenttype"`
	Subject         string      `json:"subject,omitempty"`
	Time            *time.Time  `json:"time,omitempty"`
	Data            interface{} `json:"data,omitempty"`
}

// TaskEventData is the payload of a task accepted event.
type TaskEventData struct {
	DeviceID  string    `json:"device_id"`
	TaskID    string    `json:"task_id,omitempty"`
	TaskName  string    `json:"task_name"`
	Wake      bool      `json:"wake"`
	Timestamp time.Time `json:"timestamp"`
}

// NewTaskCloudEvent wraps data in a CloudEvent addressed to subject.
func NewTaskCloudEvent(source, subject string, data *TaskEventData) CloudEvent {
	ts := data.Timestamp

	return CloudEvent{
		SpecVersion:     "1.0",
		ID:              uuid.New().String(),
		Source:          source,
		Type:            TaskAcceptedEventType,
		DataContentType: "application/json",
		Subject:         subject,
		Time:            &ts,
		Data:            data,
	}
}
