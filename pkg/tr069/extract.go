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

// Package tr069 reads device documents stored by a TR-069 ACS. It knows both
// data model generations (TR-098 "InternetGatewayDevice." and TR-181
// "Device.") and resolves logical attributes to the parameter path that a
// given device actually populates.
package tr069

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// Document is a device document as returned by the NBI, decoded into
// generic JSON values.
type Document map[string]interface{}

// ID returns the document _id.
func (d Document) ID() string {
	id, _ := d["_id"].(string)
	return id
}

// LastInform returns the raw _lastInform timestamp, or "" when absent.
func (d Document) LastInform() string {
	li, _ := d["_lastInform"].(string)
	return li
}

// LastBoot returns the raw _lastBoot timestamp, or "" when absent.
func (d Document) LastBoot() string {
	lb, _ := d["_lastBoot"].(string)
	return lb
}

// Tags returns the _tags list, skipping non-string entries.
func (d Document) Tags() []string {
	raw, ok := d["_tags"].([]interface{})
	if !ok {
		return []string{}
	}

	tags := make([]string, 0, len(raw))

	for _, t := range raw {
		if s, ok := t.(string); ok {
			tags = append(tags, s)
		}
	}

	return tags
}

const valueKey = "_value"

// Extract walks a dotted parameter path and returns the scalar stored there.
// Value holders ({"_value": x}) yield x when x is a string, number or bool.
// Missing segments, null holders and compound terminals yield ok=false.
func Extract(doc Document, path string) (interface{}, bool) {
	node, ok := walk(doc, path)
	if !ok {
		return nil, false
	}

	if obj, isObj := node.(map[string]interface{}); isObj {
		inner, holder := obj[valueKey]
		if !holder {
			return nil, false
		}

		return scalar(inner)
	}

	return scalar(node)
}

// ExtractString is Extract restricted to string values.
func ExtractString(doc Document, path string) (string, bool) {
	v, ok := Extract(doc, path)
	if !ok {
		return "", false
	}

	s, ok := v.(string)

	return s, ok
}

// Node returns the object found at path, or nil.
func Node(doc Document, path string) map[string]interface{} {
	node, ok := walk(doc, path)
	if !ok {
		return nil
	}

	obj, _ := node.(map[string]interface{})

	return obj
}

// Indices returns the numeric instance keys of node in ascending order.
func Indices(node map[string]interface{}) []string {
	idx := make([]string, 0, len(node))

	for k := range node {
		if k == "" {
			continue
		}

		if _, err := strconv.ParseUint(k, 10, 32); err == nil {
			idx = append(idx, k)
		}
	}

	sort.Slice(idx, func(i, j int) bool {
		a, _ := strconv.Atoi(idx[i])
		b, _ := strconv.Atoi(idx[j])

		return a < b
	})

	return idx
}

func walk(doc Document, path string) (interface{}, bool) {
	if doc == nil || path == "" {
		return nil, false
	}

	var cur interface{} = map[string]interface{}(doc)

	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}

		next, ok := obj[part]
		if !ok {
			return nil, false
		}

		cur = next
	}

	return cur, true
}

func scalar(v interface{}) (interface{}, bool) {
	switch v.(type) {
	case string, bool, float64, float32, json.Number,
		int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return v, true
	default:
		return nil, false
	}
}
