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

package inventory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestBuildListQueryDefaults(t *testing.T) {
	t.Parallel()

	q := BuildListQuery(ListFilter{}, testNow)

	assert.Empty(t, q.Filter)
	assert.Equal(t, map[string]int{"_lastInform": -1}, q.Sort)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, DefaultPageSize, q.Limit)
	assert.Equal(t, 0, q.Skip)
	assert.Equal(t, testNow.Add(-600*time.Second), q.OnlineCut)
}

func TestBuildListQueryPagination(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		page      int
		size      int
		wantPage  int
		wantLimit int
		wantSkip  int
	}{
		{name: "third page", page: 3, size: 20, wantPage: 3, wantLimit: 20, wantSkip: 40},
		{name: "page below one", page: -4, size: 10, wantPage: 1, wantLimit: 10, wantSkip: 0},
		{name: "oversized page", page: 2, size: 5000, wantPage: 2, wantLimit: MaxPageSize, wantSkip: MaxPageSize},
		{name: "negative size", page: 1, size: -1, wantPage: 1, wantLimit: 1, wantSkip: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			q := BuildListQuery(ListFilter{Page: tt.page, PageSize: tt.size}, testNow)
			assert.Equal(t, tt.wantPage, q.Page)
			assert.Equal(t, tt.wantLimit, q.Limit)
			assert.Equal(t, tt.wantSkip, q.Skip)
		})
	}
}

func TestBuildListQueryFilters(t *testing.T) {
	t.Parallel()

	q := BuildListQuery(ListFilter{
		Tag:          "vip",
		OnlyOnline:   true,
		OnlineWindow: 300 * time.Second,
		SortBy:       "product_class",
		Order:        "ASC",
	}, testNow)

	assert.Equal(t, map[string]interface{}{
		"_tags":       "vip",
		"_lastInform": map[string]interface{}{"$gte": "2025-06-01T11:55:00.000Z"},
	}, q.Filter)
	assert.Equal(t, map[string]int{"InternetGatewayDevice.DeviceInfo.ProductClass._value": 1}, q.Sort)
}

func TestBuildListQuerySearchIsQuoted(t *testing.T) {
	t.Parallel()

	q := BuildListQuery(ListFilter{Search: " EX141 (v2)+ "}, testNow)

	or, ok := q.Filter["$or"].([]map[string]interface{})
	if assert.True(t, ok) {
		assert.Len(t, or, 5)
		assert.Equal(t, map[string]interface{}{"$regex": `EX141 \(v2\)\+`, "$options": "i"}, or[0]["_id"])
	}
}

func TestBuildListQuerySearchAndProductClassUseAnd(t *testing.T) {
	t.Parallel()

	q := BuildListQuery(ListFilter{Search: "tp", ProductClass: "EX141"}, testNow)

	and, ok := q.Filter["$and"].([]map[string]interface{})
	if assert.True(t, ok) {
		assert.Len(t, and, 2)
	}

	assert.NotContains(t, q.Filter, "$or")
}

func TestBuildListQueryUnknownSortFallsBack(t *testing.T) {
	t.Parallel()

	q := BuildListQuery(ListFilter{SortBy: "password", Order: "sideways"}, testNow)
	assert.Equal(t, map[string]int{"_lastInform": -1}, q.Sort)
}

func TestIsOnlineBoundary(t *testing.T) {
	t.Parallel()

	window := 600 * time.Second

	assert.True(t, IsOnline("2025-06-01T11:50:00.000Z", testNow, window), "exactly at the cut is online")
	assert.False(t, IsOnline("2025-06-01T11:49:59.000Z", testNow, window), "one second older is offline")
	assert.True(t, IsOnline("2025-06-01T11:59:59Z", testNow, window))
	assert.False(t, IsOnline("", testNow, window))
	assert.False(t, IsOnline("yesterday", testNow, window))
}

func TestOnlineCutMillisecondPrecision(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 700400000, time.UTC)
	window := 600 * time.Second
	cut := OnlineCut(now, window)

	assert.Equal(t, time.Date(2025, 6, 1, 11, 50, 0, 700000000, time.UTC), cut)
	assert.Equal(t, map[string]interface{}{
		"_lastInform": map[string]interface{}{"$gte": "2025-06-01T11:50:00.700Z"},
	}, SinceFilter(cut))

	// Matched by the NBI filter, so it must also count as online locally.
	assert.True(t, IsOnline("2025-06-01T11:50:00.700Z", now, window))
	assert.False(t, IsOnline("2025-06-01T11:50:00.699Z", now, window))

	q := BuildListQuery(ListFilter{OnlyOnline: true, OnlineWindow: window}, now)
	assert.Equal(t, cut, q.OnlineCut)
}

func TestClampPageSize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultPageSize, ClampPageSize(0))
	assert.Equal(t, 1, ClampPageSize(-10))
	assert.Equal(t, 500, ClampPageSize(501))
	assert.Equal(t, 42, ClampPageSize(42))
}
