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

package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/carverauto/acsgateway/pkg/acs"
	"github.com/carverauto/acsgateway/pkg/models"
	"github.com/carverauto/acsgateway/pkg/tr069"
)

const connReqParam = "Device.DeviceInfo.SoftwareVersion"

// taskRequest is the common prelude of the task endpoints.
type taskRequest struct {
	deviceID string
	opts     acs.DispatchOptions
}

func (s *APIServer) parseTaskRequest(r *http.Request) (*taskRequest, error) {
	if s.dispatcher == nil {
		return nil, errServiceUnavailable
	}

	id, err := deviceID(r)
	if err != nil {
		return nil, err
	}

	opts, err := dispatchOptions(r.URL.Query())
	if err != nil {
		return nil, err
	}

	return &taskRequest{deviceID: id, opts: opts}, nil
}

func (s *APIServer) dispatch(w http.ResponseWriter, r *http.Request, req *taskRequest, task acs.Task) {
	handle, err := s.dispatcher.Dispatch(r.Context(), req.deviceID, task, req.opts)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.logger.Info().
		Str("device_id", req.deviceID).
		Str("task", task.Name).
		Str("task_id", handle.ID).
		Bool("wake", req.opts.Wake).
		Msg("Task accepted")

	s.encodeJSONResponse(w, handle)
}

// wifiTask builds the setParameterValues task for a Wi-Fi change. Explicit
// parameter_ssid and parameter_password overrides skip discovery; both must
// be given.
func (s *APIServer) wifiTask(ctx context.Context, r *http.Request, id string) (acs.Task, error) {
	var creds models.WiFiCredentials
	if err := decodeBody(r, &creds); err != nil {
		return acs.Task{}, err
	}

	if creds.SSID == "" {
		return acs.Task{}, badRequest("ssid is required")
	}

	q := r.URL.Query()

	idx, err := intParam(q, "wlan_index", 1)
	if err != nil {
		return acs.Task{}, err
	}

	ssidPath := strings.TrimSpace(q.Get("parameter_ssid"))
	passPath := strings.TrimSpace(q.Get("parameter_password"))

	if ssidPath == "" || passPath == "" {
		targets, err := s.inventory.WiFiTargets(ctx, id, tr069.BandForIndex(idx))
		if err != nil {
			return acs.Task{}, err
		}

		ssidPath, passPath = targets.SSIDPath, targets.PassphrasePath
	}

	return acs.SetParameterValues(
		acs.ParameterValue{Path: ssidPath, Value: creds.SSID, Type: acs.XSDString},
		acs.ParameterValue{Path: passPath, Value: creds.Password, Type: acs.XSDString},
	), nil
}

// @Summary Change Wi-Fi credentials
// @Router /devices/{id}/wifi [post]
// @Security ApiKeyAuth
func (s *APIServer) changeWiFi(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseTaskRequest(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	task, err := s.wifiTask(r.Context(), r, req.deviceID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.dispatch(w, r, req, task)
}

// @Summary Change PPPoE credentials
// @Router /devices/{id}/pppoe [post]
// @Security ApiKeyAuth
func (s *APIServer) changePPPoE(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseTaskRequest(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	var creds models.PPPoECredentials
	if err := decodeBody(r, &creds); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	q := r.URL.Query()

	enable, err := boolParam(q, "enable", true)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	param := func(name string, attr tr069.Attribute) string {
		if v := strings.TrimSpace(q.Get(name)); v != "" {
			return v
		}

		return tr069.WriteTarget(attr, 1)
	}

	task := acs.SetParameterValues(
		acs.ParameterValue{Path: param("parameter_username", tr069.AttrPPPoEUsername), Value: creds.Username, Type: acs.XSDString},
		acs.ParameterValue{Path: param("parameter_password", tr069.AttrPPPoEPassword), Value: creds.Password, Type: acs.XSDString},
		acs.ParameterValue{Path: param("parameter_enable", tr069.AttrPPPoEEnable), Value: enable, Type: acs.XSDBoolean},
	)

	s.dispatch(w, r, req, task)
}

// @Summary Reboot a device
// @Router /devices/{id}/reboot [post]
// @Security ApiKeyAuth
func (s *APIServer) rebootDevice(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseTaskRequest(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.dispatch(w, r, req, acs.Reboot())
}

// @Summary Factory reset a device
// @Router /devices/{id}/factory_reset [post]
// @Security ApiKeyAuth
func (s *APIServer) factoryReset(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseTaskRequest(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.dispatch(w, r, req, acs.FactoryReset())
}

// @Summary Ask a device to report parameters
// @Router /devices/{id}/parameters [post]
// @Security ApiKeyAuth
func (s *APIServer) getParameters(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseTaskRequest(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	var body models.ParameterRequest
	if err := decodeBody(r, &body); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.dispatch(w, r, req, acs.GetParameterValues(body.ParameterNames...))
}

// @Summary Change Wi-Fi and reboot
// @Router /devices/{id}/wifi_and_reboot [post]
// @Security ApiKeyAuth
func (s *APIServer) wifiAndReboot(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseTaskRequest(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	task, err := s.wifiTask(r.Context(), r, req.deviceID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	result, err := s.dispatcher.ApplyWiFiAndReboot(r.Context(), req.deviceID, task, req.opts)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.encodeJSONResponse(w, result)
}

// @Summary Wake a device with a connection request
// @Router /devices/{id}/connreq [post]
// @Security ApiKeyAuth
func (s *APIServer) connectionRequest(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseTaskRequest(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	req.opts.Wake = true

	s.dispatch(w, r, req, acs.GetParameterValues(connReqParam))
}

// @Summary Read the SSID of a WLAN
// @Router /devices/{id}/ssid [get]
// @Security ApiKeyAuth
func (s *APIServer) readSSID(w http.ResponseWriter, r *http.Request) {
	id, err := deviceID(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	idx, err := intParam(r.URL.Query(), "wlan_index", 1)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	v, err := s.inventory.ReadSSID(r.Context(), id, idx)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.encodeJSONResponse(w, v)
}

// @Summary Read one parameter from the stored document
// @Router /devices/{id}/read_value [get]
// @Security ApiKeyAuth
func (s *APIServer) readValue(w http.ResponseWriter, r *http.Request) {
	id, err := deviceID(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		s.writeServiceError(w, r, badRequest("name is required"))
		return
	}

	v, err := s.inventory.ReadValue(r.Context(), id, name)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.encodeJSONResponse(w, v)
}

// @Summary Page through devices
// @Router /devices/list [get]
// @Security ApiKeyAuth
func (s *APIServer) listDevices(w http.ResponseWriter, r *http.Request) {
	f, err := s.listFilter(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	page, err := s.inventory.List(r.Context(), f)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.encodeJSONResponse(w, page)
}

// @Summary Normalized device detail
// @Router /devices/detail/{id} [get]
// @Security ApiKeyAuth
func (s *APIServer) getDeviceDetail(w http.ResponseWriter, r *http.Request) {
	id, err := deviceID(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	d, err := s.inventory.Detail(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.encodeJSONResponse(w, d)
}
