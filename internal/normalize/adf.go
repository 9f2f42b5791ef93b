/* Copyright (c) 2025 Jira API Extractor contributors
 * SPDX-License-Identifier: BSD-3-Clause */

// Package normalize flattens the inconsistently shaped fields the Jira API
// returns into stable values: ADF rich-text trees, sprint membership that may
// arrive as a list, an object, or a legacy serialized string, story-point
// estimates split across two custom fields, and timestamps with malformed
// UTC offsets.
package normalize

import (
	"fmt"
	"strings"
)

// DocText flattens an Atlassian Document Format tree into plain text by
// concatenating the text leaves of paragraph blocks, joined by spaces.
// Headings, lists, mentions and other node types are dropped. Non-document
// input is stringified as-is, covering legacy plain-string comment bodies.
func DocText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case map[string]any:
		content, ok := t["content"].([]any)
		if !ok { return "" }
		var parts []string
		for _, b0 := range content {
			block, _ := b0.(map[string]any)
			if block == nil || block["type"] != "paragraph" { continue }
			inner, _ := block["content"].([]any)
			for _, i0 := range inner {
				item, _ := i0.(map[string]any)
				if item == nil || item["type"] != "text" { continue }
				if txt, ok := item["text"].(string); ok { parts = append(parts, txt) }
			}
		}
		return strings.Join(parts, " ")
	default:
		return fmt.Sprint(v)
	}
}
