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

package acs

import (
	"encoding/json"
	"fmt"
)

// Task names understood by the NBI.
const (
	TaskSetParameterValues = "setParameterValues"
	TaskGetParameterValues = "getParameterValues"
	TaskReboot             = "reboot"
	TaskFactoryReset       = "factoryReset"
	TaskRefreshObject      = "refreshObject"
)

// XSD type tags for parameter values.
const (
	XSDString      = "xsd:string"
	XSDBoolean     = "xsd:boolean"
	XSDUnsignedInt = "xsd:unsignedInt"
	XSDDateTime    = "xsd:dateTime"
)

// ParameterValue is one [path, value, type] triple of a setParameterValues task.
type ParameterValue struct {
	Path  string
	Value interface{}
	Type  string
}

// MarshalJSON encodes the value as the NBI's three-element array.
func (p ParameterValue) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{p.Path, p.Value, p.Type})
}

// Task is the body posted to /devices/{id}/tasks.
type Task struct {
	Name            string           `json:"name"`
	ParameterValues []ParameterValue `json:"parameterValues,omitempty"`
	ParameterNames  []string         `json:"parameterNames,omitempty"`
	ObjectName      string           `json:"objectName,omitempty"`
}

func SetParameterValues(values ...ParameterValue) Task {
	return Task{Name: TaskSetParameterValues, ParameterValues: values}
}

func GetParameterValues(names ...string) Task {
	return Task{Name: TaskGetParameterValues, ParameterNames: names}
}

func Reboot() Task {
	return Task{Name: TaskReboot}
}

func FactoryReset() Task {
	return Task{Name: TaskFactoryReset}
}

func RefreshObject(objectName string) Task {
	return Task{Name: TaskRefreshObject, ObjectName: objectName}
}

// Validate checks that the task carries the fields its name requires.
func (t Task) Validate() error {
	switch t.Name {
	case TaskSetParameterValues:
		if len(t.ParameterValues) == 0 {
			return fmt.Errorf("%w: %s needs at least one parameter value", ErrInvalidTask, t.Name)
		}

		for _, pv := range t.ParameterValues {
			if pv.Path == "" || pv.Type == "" {
				return fmt.Errorf("%w: parameter value needs a path and a type", ErrInvalidTask)
			}
		}
	case TaskGetParameterValues:
		if len(t.ParameterNames) == 0 {
			return fmt.Errorf("%w: %s needs at least one parameter name", ErrInvalidTask, t.Name)
		}
	case TaskRefreshObject:
		if t.ObjectName == "" {
			return fmt.Errorf("%w: %s needs an object name", ErrInvalidTask, t.Name)
		}
	case TaskReboot, TaskFactoryReset:
	default:
		return fmt.Errorf("%w: unknown task %q", ErrInvalidTask, t.Name)
	}

	return nil
}

// TaskHandle is the NBI's acceptance of a task.
type TaskHandle struct {
	ID         string
	Name       string
	StatusCode int
	// Body is the NBI response, returned to API callers unchanged.
	Body json.RawMessage
}

// MarshalJSON returns the NBI body verbatim.
func (h *TaskHandle) MarshalJSON() ([]byte, error) {
	if len(h.Body) == 0 {
		return []byte("{}"), nil
	}

	return h.Body, nil
}

func newTaskHandle(statusCode int, body []byte) *TaskHandle {
	h := &TaskHandle{StatusCode: statusCode, Body: json.RawMessage(body)}

	var head struct {
		ID   string `json:"_id"`
		Name string `json:"name"`
	}

	if json.Unmarshal(body, &head) == nil {
		h.ID = head.ID
		h.Name = head.Name
	} else if !json.Valid(body) {
		h.Body = nil
	}

	return h
}
