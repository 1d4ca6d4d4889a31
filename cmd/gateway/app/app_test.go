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

package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/acsgateway/pkg/logger"
	"github.com/carverauto/acsgateway/pkg/models"
)

func TestNewEventPublisherDisabled(t *testing.T) {
	pub, closeFn, err := newEventPublisher(context.Background(), &models.EventsConfig{}, logger.NewTestLogger())
	require.NoError(t, err)

	assert.Nil(t, pub)
	closeFn()
}

func TestNewEventPublisherKafka(t *testing.T) {
	cfg := &models.EventsConfig{
		Sink:    models.EventSinkKafka,
		Subject: models.TaskEventSubject,
		Kafka:   &models.KafkaConfig{Brokers: []string{"127.0.0.1:9092"}, Topic: "acs.tasks"},
	}

	pub, closeFn, err := newEventPublisher(context.Background(), cfg, logger.NewTestLogger())
	require.NoError(t, err)

	assert.NotNil(t, pub)
	closeFn()
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	t.Setenv("GENIEACS_NBI_URL", "")
	t.Setenv("ACS_API_KEY", "k")

	path := filepath.Join(t.TempDir(), "gateway.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"nbi":{"url":"ftp://acs"}}`), 0o600))

	err := Run(context.Background(), Options{ConfigPath: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestRunMissingFile(t *testing.T) {
	err := Run(context.Background(), Options{ConfigPath: filepath.Join(t.TempDir(), "missing.json")})
	require.Error(t, err)
}

func TestRunInitializesProcessLogger(t *testing.T) {
	t.Setenv("GENIEACS_NBI_URL", "")
	t.Setenv("ACS_API_KEY", "k")

	path := filepath.Join(t.TempDir(), "gateway.json")
	body := `{"nbi":{"url":"http://acs:7557"},"logging":{"level":"loud"}}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	err := Run(context.Background(), Options{ConfigPath: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialize logger")
}
