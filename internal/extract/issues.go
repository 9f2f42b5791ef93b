/* Copyright (c) 2025 Jira API Extractor contributors
 * SPDX-License-Identifier: BSD-3-Clause */
package extract

import (
	"context"
	"fmt"

	"github.com/felipe-stanham/Jira-API-Extractor/internal/domain"
	"github.com/felipe-stanham/Jira-API-Extractor/internal/jira"
)

// IssuesInSprints fetches every issue of each sprint, stamping the sprint id
// and name onto the returned issues. Sprints are processed independently; a
// failure on any sprint aborts the whole listing so callers never mistake a
// partial result for a complete one.
func (s *Session) IssuesInSprints(ctx context.Context, project string, sprintIDs []string, extraJQL string) ([]domain.SprintIssues, error) {
	jql := withExtra("project = "+quoteJQL(project), extraJQL)
	var out []domain.SprintIssues
	for _, id := range sprintIDs {
		name := s.sprintName(ctx, id)
		s.report("Fetching issues for sprint %s in project %s...", id, project)
		raw, err := jira.Paginate(ctx, s.cfg.PageSize, func(ctx context.Context, startAt, max int) (any, error) {
			return s.jira.SprintIssues(ctx, id, startAt, max, jql, s.issueFields())
		})
		if err != nil { return nil, fmt.Errorf("sprint %s issues: %w", id, err) }
		batch := domain.SprintIssues{SprintID: id, SprintName: name}
		for _, r := range raw {
			m, _ := r.(map[string]any)
			if m == nil { continue }
			iss := s.issueFromRaw(m)
			iss.SprintID = id
			iss.SprintName = name
			batch.Issues = append(batch.Issues, iss)
		}
		s.report("Found %d issues in sprint %s", len(batch.Issues), id)
		out = append(out, batch)
	}
	return out, nil
}

// sprintName resolves the sprint's display name. A failure here only costs
// the label, so it is reported as a warning rather than an error.
func (s *Session) sprintName(ctx context.Context, sprintID string) string {
	res, err := s.jira.Sprint(ctx, sprintID)
	if err != nil {
		s.log.Warn().Err(err).Str("sprint", sprintID).Msg("could not fetch sprint details")
		return ""
	}
	if m, ok := res.(map[string]any); ok { return toStr(m["name"]) }
	return ""
}

// IssuesInEpic lists the children of one epic via a parent-scoped search.
func (s *Session) IssuesInEpic(ctx context.Context, epicKey, extraJQL string) ([]domain.Issue, error) {
	jql := withExtra("parent = "+quoteJQL(epicKey), extraJQL)
	raw, err := jira.Paginate(ctx, s.cfg.PageSize, func(ctx context.Context, startAt, max int) (any, error) {
		return s.jira.Search(ctx, jql, s.issueFields(), "", startAt, max)
	})
	if err != nil { return nil, fmt.Errorf("epic %s issues: %w", epicKey, err) }
	return s.issuesFromRaw(raw), nil
}

// EpicsByLabel finds epic-type issues carrying the given label. The status
// name comes back with the search result and is kept for denormalization
// into the report.
func (s *Session) EpicsByLabel(ctx context.Context, project, label, extraJQL string) ([]domain.Issue, error) {
	jql := withExtra("project = "+quoteJQL(project)+" AND issuetype = Epic AND labels = "+quoteJQL(label), extraJQL)
	raw, err := jira.Paginate(ctx, s.cfg.PageSize, func(ctx context.Context, startAt, max int) (any, error) {
		return s.jira.Search(ctx, jql, s.issueFields(), "", startAt, max)
	})
	if err != nil { return nil, fmt.Errorf("epics by label %s: %w", label, err) }
	return s.issuesFromRaw(raw), nil
}

// OpenEpics finds the project's epics whose status category is not Done.
func (s *Session) OpenEpics(ctx context.Context, project, extraJQL string) ([]domain.Issue, error) {
	jql := withExtra("project = "+quoteJQL(project)+" AND issuetype = Epic AND statusCategory != Done", extraJQL)
	raw, err := jira.Paginate(ctx, s.cfg.PageSize, func(ctx context.Context, startAt, max int) (any, error) {
		return s.jira.Search(ctx, jql, s.issueFields(), "", startAt, max)
	})
	if err != nil { return nil, fmt.Errorf("open epics: %w", err) }
	return s.issuesFromRaw(raw), nil
}

// IssuesInEpics merges the children of several epics into one group,
// carrying each epic's summary onto children that lack a parent summary.
func (s *Session) IssuesInEpics(ctx context.Context, epics []domain.Issue, extraJQL string) ([]domain.Issue, error) {
	var out []domain.Issue
	for _, epic := range epics {
		children, err := s.IssuesInEpic(ctx, epic.Key, extraJQL)
		if err != nil { return nil, err }
		for i := range children {
			if children[i].ParentSummary == "" { children[i].ParentSummary = epic.Summary }
		}
		out = append(out, children...)
	}
	return out, nil
}

func (s *Session) issuesFromRaw(raw []any) []domain.Issue {
	issues := make([]domain.Issue, 0, len(raw))
	for _, r := range raw {
		m, _ := r.(map[string]any)
		if m == nil { continue }
		issues = append(issues, s.issueFromRaw(m))
	}
	return issues
}
