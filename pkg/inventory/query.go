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

// Package inventory lists and inspects devices through the ACS document
// store and derives their online status.
package inventory

import (
	"regexp"
	"strings"
	"time"

	"github.com/carverauto/acsgateway/pkg/models"
)

const (
	DefaultPageSize     = 25
	MaxPageSize         = 500
	DefaultOnlineWindow = 600 * time.Second

	fieldLastInform = "_lastInform"
	fieldTags       = "_tags"
	fieldID         = "_id"

	legacyProductClass    = "InternetGatewayDevice.DeviceInfo.ProductClass._value"
	legacySoftwareVersion = "InternetGatewayDevice.DeviceInfo.SoftwareVersion._value"
	productClass          = "Device.DeviceInfo.ProductClass._value"
	softwareVersion       = "Device.DeviceInfo.SoftwareVersion._value"
)

// sortFields maps the public sort keys to document fields.
var sortFields = map[string]string{
	"_lastInform":      fieldLastInform,
	"product_class":    legacyProductClass,
	"software_version": legacySoftwareVersion,
}

// ListFilter holds the dashboard's list parameters.
type ListFilter struct {
	Search       string
	Tag          string
	ProductClass string
	OnlyOnline   bool
	// OnlineWindow is the freshness window; zero means DefaultOnlineWindow.
	OnlineWindow time.Duration
	SortBy       string
	Order        string
	Page         int
	PageSize     int
}

// ListQuery is a ListFilter translated into the NBI query grammar.
type ListQuery struct {
	Filter    map[string]interface{}
	Sort      map[string]int
	Page      int
	Limit     int
	Skip      int
	OnlineCut time.Time
}

// BuildListQuery translates f. It is pure: now is the only clock.
func BuildListQuery(f ListFilter, now time.Time) ListQuery {
	window := f.OnlineWindow
	if window <= 0 {
		window = DefaultOnlineWindow
	}

	q := ListQuery{
		OnlineCut: OnlineCut(now, window),
		Page:      max(f.Page, 1),
		Limit:     ClampPageSize(f.PageSize),
	}

	q.Skip = (q.Page - 1) * q.Limit

	var clauses []map[string]interface{}

	if s := strings.TrimSpace(f.Search); s != "" {
		clauses = append(clauses, searchClause(s))
	}

	if f.Tag != "" {
		clauses = append(clauses, map[string]interface{}{fieldTags: f.Tag})
	}

	if f.ProductClass != "" {
		clauses = append(clauses, map[string]interface{}{"$or": []map[string]interface{}{
			{legacyProductClass: f.ProductClass},
			{productClass: f.ProductClass},
		}})
	}

	if f.OnlyOnline {
		clauses = append(clauses, SinceFilter(q.OnlineCut))
	}

	q.Filter = combine(clauses)

	field, ok := sortFields[f.SortBy]
	if !ok {
		field = fieldLastInform
	}

	dir := -1
	if strings.EqualFold(f.Order, "asc") {
		dir = 1
	}

	q.Sort = map[string]int{field: dir}

	return q
}

// ClampPageSize bounds a requested page size to [1, MaxPageSize]; zero
// selects DefaultPageSize.
func ClampPageSize(size int) int {
	if size == 0 {
		return DefaultPageSize
	}

	return min(max(size, 1), MaxPageSize)
}

// OnlineCut is the oldest last-inform time still counted as online. It is
// truncated to milliseconds, the precision of the NBI query timestamps, so
// IsOnline and SinceFilter agree on devices near the boundary.
func OnlineCut(now time.Time, window time.Duration) time.Time {
	return now.Add(-window).UTC().Truncate(time.Millisecond)
}

// SinceFilter matches devices whose last inform is at or after cut.
func SinceFilter(cut time.Time) map[string]interface{} {
	return map[string]interface{}{
		fieldLastInform: map[string]interface{}{"$gte": models.ISOTime(cut)},
	}
}

// IsOnline reports whether lastInform is at or after now-window. Absent or
// unparseable timestamps are offline.
func IsOnline(lastInform string, now time.Time, window time.Duration) bool {
	return onlineAt(lastInform, OnlineCut(now, window))
}

func onlineAt(lastInform string, cut time.Time) bool {
	if lastInform == "" {
		return false
	}

	t, err := time.Parse(time.RFC3339Nano, lastInform)
	if err != nil {
		return false
	}

	return !t.Before(cut)
}

func searchClause(search string) map[string]interface{} {
	re := map[string]interface{}{"$regex": regexp.QuoteMeta(search), "$options": "i"}

	return map[string]interface{}{"$or": []map[string]interface{}{
		{fieldID: re},
		{legacyProductClass: re},
		{legacySoftwareVersion: re},
		{productClass: re},
		{softwareVersion: re},
	}}
}

// combine merges clauses into one filter. Clauses with distinct keys are
// merged flat; a repeated key (two $or clauses) falls back to $and.
func combine(clauses []map[string]interface{}) map[string]interface{} {
	out := map[string]interface{}{}

	for _, c := range clauses {
		for k := range c {
			if _, dup := out[k]; dup {
				return map[string]interface{}{"$and": clauses}
			}
		}

		for k, v := range c {
			out[k] = v
		}
	}

	return out
}
