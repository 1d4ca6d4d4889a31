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

// Package acs talks to the northbound interface (NBI) of a GenieACS-style
// TR-069 ACS and dispatches device tasks through it.
package acs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/carverauto/acsgateway/pkg/logger"
	"github.com/carverauto/acsgateway/pkg/tr069"
)

const (
	defaultTimeout      = 30 * time.Second
	defaultMaxIdleConns = 32
	countFallbackLimit  = 10000
	totalCountHeader    = "X-Total-Count"
	maxErrorBody        = 64 << 10
)

// Config locates the NBI.
type Config struct {
	BaseURL string
}

// DeviceQuery is a single GET /devices request.
type DeviceQuery struct {
	Filter     map[string]interface{}
	Projection []string
	Limit      int
	Skip       int
	// Sort maps one field to 1 (ascending) or -1 (descending).
	Sort map[string]int
}

// Client is an NBI client sharing one connection pool between all callers.
type Client struct {
	baseURL *url.URL
	http    HTTPClient
	logger  logger.Logger
}

// NewHTTPClient builds the pooled client shared by every NBI call.
func NewHTTPClient(timeout time.Duration, maxIdleConns int) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	if maxIdleConns <= 0 {
		maxIdleConns = defaultMaxIdleConns
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          maxIdleConns,
		MaxIdleConnsPerHost:   maxIdleConns,
		IdleConnTimeout:       90 * time.Second,
		ResponseHeaderTimeout: timeout,
	}

	return &http.Client{Transport: transport, Timeout: timeout}
}

// NewClient creates a client for the NBI at cfg.BaseURL.
func NewClient(cfg Config, httpClient HTTPClient, log logger.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", errInvalidURL, cfg.BaseURL)
	}

	if httpClient == nil {
		httpClient = NewHTTPClient(0, 0)
	}

	if log == nil {
		log = logger.NewTestLogger()
	}

	return &Client{baseURL: u, http: httpClient, logger: log}, nil
}

// BaseURL returns the NBI address.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Close releases idle pooled connections.
func (c *Client) Close() {
	if ic, ok := c.http.(interface{ CloseIdleConnections() }); ok {
		ic.CloseIdleConnections()
	}
}

// FindDevices runs GET /devices and decodes the matching documents.
func (c *Client) FindDevices(ctx context.Context, q DeviceQuery) ([]tr069.Document, error) {
	params, err := q.values()
	if err != nil {
		return nil, err
	}

	resp, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, rejection("GET /devices", resp)
	}

	var docs []tr069.Document
	if err := json.NewDecoder(resp.Body).Decode(&docs); err != nil {
		return nil, &TransportError{Op: "GET /devices", Err: fmt.Errorf("decode response: %w", err)}
	}

	return docs, nil
}

// Count returns the number of documents matching filter. It reads
// X-Total-Count and, when the NBI does not send it, counts a projected
// listing of at most 10000 ids.
func (c *Client) Count(ctx context.Context, filter map[string]interface{}) (int, error) {
	countQuery := DeviceQuery{Filter: filter, Projection: []string{"_id"}, Limit: 1}

	params, err := countQuery.values()
	if err != nil {
		return 0, err
	}

	resp, err := c.get(ctx, params)
	if err != nil {
		return 0, err
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return 0, rejection("GET /devices", resp)
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	if total := resp.Header.Get(totalCountHeader); total != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(total)); err == nil {
			return n, nil
		}
	}

	c.logger.Debug().Msg("NBI sent no X-Total-Count, counting a projected listing")

	countQuery.Limit = countFallbackLimit

	docs, err := c.FindDevices(ctx, countQuery)
	if err != nil {
		return 0, err
	}

	return len(docs), nil
}

// GetDevice fetches the full document of one device.
func (c *Client) GetDevice(ctx context.Context, deviceID string) (tr069.Document, error) {
	if deviceID == "" {
		return nil, errEmptyDeviceID
	}

	docs, err := c.FindDevices(ctx, DeviceQuery{Filter: map[string]interface{}{"_id": deviceID}})
	if err != nil {
		return nil, err
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrDeviceNotFound, deviceID)
	}

	return docs[0], nil
}

// PostTask submits task to the device's queue. With wake set the NBI is
// asked to send a connection request and wait up to timeout for it.
func (c *Client) PostTask(
	ctx context.Context, deviceID string, task Task, wake bool, timeout time.Duration) (*TaskHandle, error) {
	if deviceID == "" {
		return nil, errEmptyDeviceID
	}

	op := fmt.Sprintf("POST /devices/%s/tasks", deviceID)

	body, err := json.Marshal(task)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTask, err)
	}

	u := *c.baseURL
	u.Path = c.baseURL.Path + "/devices/" + deviceID + "/tasks"
	u.RawPath = c.baseURL.EscapedPath() + "/devices/" + url.PathEscape(deviceID) + "/tasks"
	u.RawQuery = wakeQuery(wake, timeout)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return nil, rejection(op, resp)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}

	c.logger.Debug().
		Str("device_id", deviceID).
		Str("task", task.Name).
		Bool("wake", wake).
		Int("status", resp.StatusCode).
		Msg("Task accepted by NBI")

	return newTaskHandle(resp.StatusCode, respBody), nil
}

func (c *Client) get(ctx context.Context, params url.Values) (*http.Response, error) {
	u := *c.baseURL
	u.Path = c.baseURL.Path + "/devices"
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, &TransportError{Op: "GET /devices", Err: err}
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "GET /devices", Err: err}
	}

	return resp, nil
}

func (q DeviceQuery) values() (url.Values, error) {
	filter := q.Filter
	if filter == nil {
		filter = map[string]interface{}{}
	}

	query, err := json.Marshal(filter)
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}

	params := url.Values{}
	params.Set("query", string(query))

	if len(q.Projection) > 0 {
		params.Set("projection", strings.Join(q.Projection, ","))
	}

	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	if q.Skip > 0 {
		params.Set("skip", strconv.Itoa(q.Skip))
	}

	if len(q.Sort) > 0 {
		sort, err := json.Marshal(q.Sort)
		if err != nil {
			return nil, fmt.Errorf("encode sort: %w", err)
		}

		params.Set("sort", string(sort))
	}

	return params, nil
}

// wakeQuery renders the connection_request flag. The flag carries no
// value; timeout is sent in whole seconds, rounded up.
func wakeQuery(wake bool, timeout time.Duration) string {
	if !wake {
		return ""
	}

	q := "connection_request"

	if timeout > 0 {
		secs := int(math.Ceil(timeout.Seconds()))
		q += "&timeout=" + strconv.Itoa(secs)
	}

	return q
}

func rejection(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	return &RejectionError{Op: op, StatusCode: resp.StatusCode, Body: string(body)}
}
