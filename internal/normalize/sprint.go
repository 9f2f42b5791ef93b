/* Copyright (c) 2025 Jira API Extractor contributors
 * SPDX-License-Identifier: BSD-3-Clause */
package normalize

import (
	"regexp"
	"strings"

	"github.com/felipe-stanham/Jira-API-Extractor/internal/domain"
)

// The legacy serialization of the sprint custom field embeds key=value pairs
// inside a toString dump, e.g.
// "com.atlassian.greenhopper.service.sprint.Sprint@...[id=12,name=Sprint 3,state=active,...]".
var (
	sprintIDRe    = regexp.MustCompile(`\bid=([^,\]]+)`)
	sprintNameRe  = regexp.MustCompile(`\bname=([^,\]]+)`)
	sprintStateRe = regexp.MustCompile(`\bstate=([^,\]]+)`)
)

// SprintRefs extracts sprint membership from whichever shape the field
// arrived in: a list of objects, a single object, a legacy string, or a list
// of legacy strings. Unrecognized shapes yield nil rather than an error.
func SprintRefs(v any) []domain.SprintRef {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		var out []domain.SprintRef
		for _, e := range t {
			switch el := e.(type) {
			case map[string]any:
				out = append(out, sprintFromMap(el))
			case string:
				out = append(out, sprintFromString(el))
			}
		}
		return out
	case map[string]any:
		return []domain.SprintRef{sprintFromMap(t)}
	case string:
		return []domain.SprintRef{sprintFromString(t)}
	default:
		return nil
	}
}

func sprintFromMap(m map[string]any) domain.SprintRef {
	ref := domain.SprintRef{ID: "Unknown", Name: "Unknown", State: "Unknown"}
	switch id := m["id"].(type) {
	case float64:
		ref.ID = trimFloat(id)
	case string:
		if id != "" { ref.ID = id }
	}
	if name, ok := m["name"].(string); ok && name != "" { ref.Name = name }
	if state, ok := m["state"].(string); ok && state != "" { ref.State = state }
	return ref
}

func sprintFromString(s string) domain.SprintRef {
	pick := func(re *regexp.Regexp) string {
		if m := re.FindStringSubmatch(s); m != nil {
			if v := strings.TrimSpace(m[1]); v != "" && v != "<null>" { return v }
		}
		return "Unknown"
	}
	return domain.SprintRef{ID: pick(sprintIDRe), Name: pick(sprintNameRe), State: pick(sprintStateRe)}
}

// SprintLabel renders sprint membership for display contexts. Every sprint
// the issue belongs to is retained, joined with "; ". No membership renders
// as N/A.
func SprintLabel(refs []domain.SprintRef) string {
	if len(refs) == 0 { return "N/A" }
	parts := make([]string, 0, len(refs))
	for _, r := range refs {
		parts = append(parts, r.Name+" (ID: "+r.ID+")")
	}
	return strings.Join(parts, "; ")
}
