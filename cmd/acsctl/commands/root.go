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

// Package commands implements acsctl, the operator CLI that talks to the
// ACS northbound interface directly.
package commands

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/carverauto/acsgateway/pkg/acs"
	"github.com/carverauto/acsgateway/pkg/inventory"
	"github.com/carverauto/acsgateway/pkg/lifecycle"
	"github.com/carverauto/acsgateway/pkg/logger"
	"github.com/carverauto/acsgateway/pkg/version"
)

const defaultNBI = "http://127.0.0.1:7557"

// Execute runs the root command.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand builds the acsctl command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "acsctl",
		Short: "acsctl - batch operations against the ACS",
		Long: `acsctl queues tasks on CPEs through the ACS northbound interface.

Use "acsctl [command] --help" for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	nbi := os.Getenv("ACS_NBI")
	if nbi == "" {
		nbi = defaultNBI
	}

	root.PersistentFlags().String("nbi", nbi, "NBI base URL (env ACS_NBI)")
	root.PersistentFlags().Duration("timeout", 30*time.Second, "HTTP timeout for NBI calls")
	root.PersistentFlags().BoolP("verbose", "v", false, "Log NBI calls to stderr")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newBootstrapCmd())
	root.AddCommand(newRebootAllCmd())
	root.AddCommand(newWiFiCmd())
	root.AddCommand(newPPPoECmd())
	root.AddCommand(newFactoryResetCmd())

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("acsctl %s\n", version.GetFullVersion())
		},
	}
}

// session bundles the clients a command needs.
type session struct {
	client     *acs.Client
	dispatcher *acs.Dispatcher
	inventory  *inventory.Service
	logger     logger.Logger
}

func newSession(cmd *cobra.Command) (*session, error) {
	nbi, _ := cmd.Flags().GetString("nbi")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	verbose, _ := cmd.Flags().GetBool("verbose")

	level := "warn"
	if verbose {
		level = "debug"
	}

	log, err := lifecycle.CreateComponentLogger("acsctl", &logger.Config{Level: level, Output: "stderr"})
	if err != nil {
		return nil, err
	}

	client, err := acs.NewClient(acs.Config{BaseURL: nbi}, acs.NewHTTPClient(timeout, 0), log)
	if err != nil {
		return nil, err
	}

	return &session{
		client:     client,
		dispatcher: acs.NewDispatcher(client, log),
		inventory:  inventory.NewService(client, log),
		logger:     log,
	}, nil
}

func (s *session) close() {
	s.dispatcher.Wait()
	s.client.Close()
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
