/* Copyright (c) 2025 Jira API Extractor contributors
 * SPDX-License-Identifier: BSD-3-Clause */
package extract

import (
	"context"
	"fmt"

	"github.com/felipe-stanham/Jira-API-Extractor/internal/domain"
	"github.com/felipe-stanham/Jira-API-Extractor/internal/jira"
	"github.com/felipe-stanham/Jira-API-Extractor/internal/normalize"
)

// CommentsInRange fetches comments created inside the window. The upstream
// query can only filter on issue-level update time, so the issue listing
// over-fetches and each comment is re-checked client-side against its own
// creation instant, normalized to UTC.
func (s *Session) CommentsInRange(ctx context.Context, project string, w Window) ([]domain.Comment, error) {
	jql := "project = " + quoteJQL(project) +
		" AND updated >= " + quoteJQL(w.Start) +
		" AND updated <= " + quoteJQL(w.End)
	raw, err := jira.Paginate(ctx, s.cfg.PageSize, func(ctx context.Context, startAt, max int) (any, error) {
		return s.jira.Search(ctx, jql, "summary,status,parent,issuetype,comment", "", startAt, max)
	})
	if err != nil { return nil, fmt.Errorf("comment search: %w", err) }

	var out []domain.Comment
	for _, r := range raw {
		issue, _ := r.(map[string]any)
		if issue == nil { continue }
		fields, _ := issue["fields"].(map[string]any)
		if fields == nil { continue }

		summary := toStr(fields["summary"])
		status := "N/A"
		if st, ok := fields["status"].(map[string]any); ok { status = toStr(st["name"]) }
		issueType := "N/A"
		if it, ok := fields["issuetype"].(map[string]any); ok { issueType = toStr(it["name"]) }
		parentSummary := "N/A"
		if parent, ok := fields["parent"].(map[string]any); ok {
			if pf, ok := parent["fields"].(map[string]any); ok {
				if ps := toStr(pf["summary"]); ps != "" { parentSummary = ps }
			}
		}

		container, _ := fields["comment"].(map[string]any)
		comments, _ := container["comments"].([]any)
		for _, e := range comments {
			cm, _ := e.(map[string]any)
			if cm == nil { continue }
			createdStr := toStr(cm["created"])
			if createdStr == "" { continue }
			created, err := normalize.ParseTimestamp(createdStr)
			if err != nil {
				s.log.Warn().Str("created", createdStr).Msg("skipping comment with unparseable timestamp")
				continue
			}
			createdUTC := created.UTC()
			if !w.ContainsInstant(createdUTC) { continue }
			author := "Unknown"
			if a, ok := cm["author"].(map[string]any); ok {
				if name := toStr(a["displayName"]); name != "" { author = name }
			}
			out = append(out, domain.Comment{
				IssueKey:      toStr(issue["key"]),
				Summary:       summary,
				Status:        status,
				ParentSummary: parentSummary,
				IssueType:     issueType,
				Created:       createdUTC,
				Author:        author,
				Body:          normalize.DocText(cm["body"]),
			})
		}
	}
	return out, nil
}
