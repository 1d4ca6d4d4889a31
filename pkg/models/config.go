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
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/carverauto/acsgateway/pkg/logger"
)

// Duration is a time.Duration that unmarshals from a Go duration string
// ("30s") or a number of nanoseconds.
type Duration time.Duration

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		// parse numeric as nanoseconds
		*d = Duration(time.Duration(value))
		return nil
	case string:
		dur, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration: %w", err)
		}

		*d = Duration(dur)

		return nil
	default:
		return errInvalidDuration
	}
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

var (
	errInvalidDuration = errors.New("invalid duration")
	errMissingAPIKey   = errors.New("missing API key: set api_key, api_key_file, ACS_API_KEY or ACS_API_KEY_FILE")
	errMissingNBIURL   = errors.New("nbi url is required")
	errInvalidNBIURL   = errors.New("nbi url must be an absolute http(s) url")
	errInvalidSink     = errors.New("events sink must be one of \"\", \"nats\" or \"kafka\"")
	errIncompleteTLS   = errors.New("nats tls requires cert_file, key_file and ca_file")
)

const (
	defaultListenAddr     = ":8000"
	defaultNBIURL         = "http://localhost:7557"
	defaultNBITimeout     = 30 * time.Second
	defaultOnlineWindow   = 600 * time.Second
	defaultActiveWindow   = 24 * time.Hour
	defaultStreamInterval = 5 * time.Second
)

// DefaultFrontendOrigins are allowed when neither the config nor
// FRONTEND_ORIGINS names any.
var DefaultFrontendOrigins = []string{"http://localhost:1234", "http://127.0.0.1:1234"}

// CORSConfig controls the cross-origin policy of the HTTP API.
type CORSConfig struct {
	AllowedOrigins   []string `json:"allowed_origins"`
	AllowCredentials bool     `json:"allow_credentials"`
	MaxAge           int      `json:"max_age"`
}

// NBIConfig locates the ACS northbound interface.
type NBIConfig struct {
	URL          string   `json:"url"`
	Timeout      Duration `json:"timeout"`
	MaxIdleConns int      `json:"max_idle_conns"`
}

// OverviewConfig holds the default windows of the fleet overview.
type OverviewConfig struct {
	OnlineWindow   Duration `json:"online_window"`
	ActiveWindow   Duration `json:"active_window"`
	StreamInterval Duration `json:"stream_interval"`
}

// GatewayConfig is the configuration of the acs-gateway process.
type GatewayConfig struct {
	ListenAddr string         `json:"listen_addr"`
	NBI        NBIConfig      `json:"nbi"`
	APIKey     string         `json:"api_key"`
	APIKeyFile string         `json:"api_key_file"`
	CORS       CORSConfig     `json:"cors"`
	Overview   OverviewConfig `json:"overview"`
	Events     EventsConfig   `json:"events"`
	Logging    *logger.Config `json:"logging"`
}

// Validate applies environment overrides and defaults, resolves the API key
// and checks the result. It is called once at startup.
func (c *GatewayConfig) Validate() error {
	c.applyEnvOverrides()
	c.applyDefaults()

	if err := c.resolveAPIKey(); err != nil {
		return err
	}

	if c.NBI.URL == "" {
		return errMissingNBIURL
	}

	u, err := url.Parse(c.NBI.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", errInvalidNBIURL, c.NBI.URL)
	}

	return c.Events.Validate()
}

func (c *GatewayConfig) applyEnvOverrides() {
	if v := os.Getenv("GENIEACS_NBI_URL"); v != "" {
		c.NBI.URL = v
	}

	if v := os.Getenv("FRONTEND_ORIGINS"); v != "" {
		origins := make([]string, 0)

		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}

		c.CORS.AllowedOrigins = origins
	}
}

func (c *GatewayConfig) applyDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = defaultListenAddr
	}

	if c.NBI.URL == "" {
		c.NBI.URL = defaultNBIURL
	}

	if c.NBI.Timeout <= 0 {
		c.NBI.Timeout = Duration(defaultNBITimeout)
	}

	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = DefaultFrontendOrigins
		c.CORS.AllowCredentials = true
	}

	if c.CORS.MaxAge == 0 {
		c.CORS.MaxAge = 86400
	}

	if c.Overview.OnlineWindow <= 0 {
		c.Overview.OnlineWindow = Duration(defaultOnlineWindow)
	}

	if c.Overview.ActiveWindow <= 0 {
		c.Overview.ActiveWindow = Duration(defaultActiveWindow)
	}

	if c.Overview.StreamInterval <= 0 {
		c.Overview.StreamInterval = Duration(defaultStreamInterval)
	}
}

// resolveAPIKey picks the shared secret. Environment variables win over the
// file, in the order ACS_API_KEY, ACS_API_KEY_FILE, GENIEACS_API_KEY,
// GENIEACS_API_KEY_FILE, then api_key and api_key_file.
func (c *GatewayConfig) resolveAPIKey() error {
	for _, pair := range [][2]string{
		{"ACS_API_KEY", "ACS_API_KEY_FILE"},
		{"GENIEACS_API_KEY", "GENIEACS_API_KEY_FILE"},
	} {
		if v := os.Getenv(pair[0]); v != "" {
			c.APIKey = v
			return nil
		}

		if p := os.Getenv(pair[1]); p != "" {
			if v := readSecretFile(p); v != "" {
				c.APIKey = v
				return nil
			}
		}
	}

	if c.APIKey != "" {
		return nil
	}

	if c.APIKeyFile != "" {
		if v := readSecretFile(c.APIKeyFile); v != "" {
			c.APIKey = v
			return nil
		}
	}

	return errMissingAPIKey
}

func readSecretFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}

	return strings.TrimSpace(string(data))
}
