/* Copyright (c) 2025 Jira API Extractor contributors
 * SPDX-License-Identifier: BSD-3-Clause */
package jira

import (
	"context"
	"fmt"
)

// PageFunc issues one page request at the given offset and returns the raw
// decoded response.
type PageFunc func(ctx context.Context, startAt, max int) (any, error)

// Paginate drives fetch until the server reports no more results, flattening
// every page into one ordered slice. Three envelope shapes are tolerated:
// an object with "issues", an object with "values", and a bare array. Other
// objects count as a single-element page.
//
// Termination: when the response carries a "total", pagination stops as soon
// as offset+returned reaches it, so a final exactly-full page does not
// trigger one extra empty request. Without a total, a short page is the stop
// signal. A request failure aborts the sequence and is returned as an error;
// callers must not treat a failed fetch as an empty result.
func Paginate(ctx context.Context, pageSize int, fetch PageFunc) ([]any, error) {
	if pageSize <= 0 { pageSize = 100 }
	var all []any
	startAt := 0
	for {
		res, err := fetch(ctx, startAt, pageSize)
		if err != nil { return nil, fmt.Errorf("page at offset %d: %w", startAt, err) }
		items, total, hasTotal := envelope(res)
		all = append(all, items...)
		if len(items) == 0 { break }
		if len(items) < pageSize { break }
		if hasTotal && startAt+len(items) >= total { break }
		if !hasTotal {
			// No total reported and the page came back full: some endpoints
			// (worklog/updated) flag the end explicitly instead.
			if last, ok := lastPage(res); ok && last { break }
		}
		startAt += len(items)
	}
	return all, nil
}

func envelope(res any) (items []any, total int, hasTotal bool) {
	switch m := res.(type) {
	case map[string]any:
		if arr, ok := m["issues"].([]any); ok {
			t, has := intField(m, "total")
			return arr, t, has
		}
		if arr, ok := m["values"].([]any); ok {
			t, has := intField(m, "total")
			return arr, t, has
		}
		return []any{m}, 1, true
	case []any:
		return m, len(m), true
	case nil:
		return nil, 0, true
	default:
		return []any{res}, 1, true
	}
}

func intField(m map[string]any, key string) (int, bool) {
	if f, ok := m[key].(float64); ok { return int(f), true }
	return 0, false
}

func lastPage(res any) (bool, bool) {
	if m, ok := res.(map[string]any); ok {
		if b, ok := m["lastPage"].(bool); ok { return b, true }
	}
	return false, false
}
