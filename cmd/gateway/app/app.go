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

// Package app wires the gateway together from its configuration.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/carverauto/acsgateway/pkg/acs"
	"github.com/carverauto/acsgateway/pkg/config"
	"github.com/carverauto/acsgateway/pkg/core/api"
	"github.com/carverauto/acsgateway/pkg/inventory"
	"github.com/carverauto/acsgateway/pkg/kafka"
	"github.com/carverauto/acsgateway/pkg/lifecycle"
	"github.com/carverauto/acsgateway/pkg/logger"
	"github.com/carverauto/acsgateway/pkg/models"
	"github.com/carverauto/acsgateway/pkg/natsutil"
	"github.com/carverauto/acsgateway/pkg/overview"
)

// Options contains runtime configuration derived from CLI flags.
type Options struct {
	ConfigPath string
}

// Run boots the gateway and blocks until ctx is done.
func Run(ctx context.Context, opts Options) error {
	var cfg models.GatewayConfig

	if err := config.NewConfig(nil).LoadAndValidate(ctx, opts.ConfigPath, &cfg); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := lifecycle.InitializeLogger(cfg.Logging); err != nil {
		return err
	}

	mainLogger, err := lifecycle.CreateComponentLogger("acs-gateway", cfg.Logging)
	if err != nil {
		return err
	}

	client, err := acs.NewClient(
		acs.Config{BaseURL: cfg.NBI.URL},
		acs.NewHTTPClient(time.Duration(cfg.NBI.Timeout), cfg.NBI.MaxIdleConns),
		mainLogger,
	)
	if err != nil {
		return err
	}
	defer client.Close()

	publisher, closeEvents, err := newEventPublisher(ctx, &cfg.Events, mainLogger)
	if err != nil {
		return err
	}
	defer closeEvents()

	var dispatcherOpts []acs.DispatcherOption
	if publisher != nil {
		dispatcherOpts = append(dispatcherOpts, acs.WithEventPublisher(publisher))
	}

	dispatcher := acs.NewDispatcher(client, mainLogger, dispatcherOpts...)
	defer dispatcher.Wait()

	apiServer := api.NewAPIServer(cfg.CORS,
		api.WithLogger(mainLogger),
		api.WithAPIKey(cfg.APIKey),
		api.WithNBIURL(client.BaseURL()),
		api.WithDispatcher(dispatcher),
		api.WithInventory(inventory.NewService(client, mainLogger)),
		api.WithOverview(overview.NewAggregator(client, nil), cfg.Overview),
	)

	mainLogger.Info().
		Str("listen_addr", cfg.ListenAddr).
		Str("nbi", client.BaseURL()).
		Str("events", cfg.Events.Sink).
		Msg("ACS gateway configured")

	return apiServer.Start(ctx, cfg.ListenAddr)
}

// newEventPublisher connects the configured task event sink. The returned
// close function is always safe to call.
func newEventPublisher(
	ctx context.Context, cfg *models.EventsConfig, log logger.Logger) (acs.TaskEventPublisher, func(), error) {
	switch cfg.Sink {
	case models.EventSinkNATS:
		pub, nc, err := natsutil.ConnectWithEventPublisher(ctx, cfg.NATS, cfg.Subject, log)
		if err != nil {
			return nil, func() {}, fmt.Errorf("failed to connect task events to NATS: %w", err)
		}

		return pub, func() {
			if err := nc.Drain(); err != nil {
				log.Warn().Err(err).Msg("Failed to drain NATS connection")
			}
		}, nil
	case models.EventSinkKafka:
		pub := kafka.NewPublisher(kafka.NewWriter(cfg.Kafka), cfg.Subject, log)

		return pub, func() {
			if err := pub.Close(); err != nil {
				log.Warn().Err(err).Msg("Failed to close Kafka writer")
			}
		}, nil
	default:
		return nil, func() {}, nil
	}
}
