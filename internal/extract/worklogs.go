/* Copyright (c) 2025 Jira API Extractor contributors
 * SPDX-License-Identifier: BSD-3-Clause */
package extract

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/felipe-stanham/Jira-API-Extractor/internal/domain"
	"github.com/felipe-stanham/Jira-API-Extractor/internal/jira"
	"github.com/felipe-stanham/Jira-API-Extractor/internal/normalize"
)

// WorklogsInRange fetches every worklog of the project whose start date
// falls inside the window.
//
// Primary strategy: the updated-worklogs index gives candidate ids cheaply,
// full bodies come in capped batches, and each surviving worklog's issue is
// resolved once through the session cache to apply the project filter and
// attach sprint membership. The index endpoint is a convenience feature not
// every server exposes, so any failure in this phase downgrades to the
// slower JQL search rather than failing the run.
func (s *Session) WorklogsInRange(ctx context.Context, project string, w Window) ([]domain.Worklog, error) {
	raw, err := s.worklogsViaIndex(ctx, w)
	if err != nil {
		s.log.Warn().Err(err).Msg("worklog index unavailable, using search fallback")
		s.report("Worklog index unavailable, falling back to issue search...")
		return s.worklogsFallback(ctx, project, w)
	}

	// Date filter first: it needs no lookups and discards most candidates.
	inWindow := make([]map[string]any, 0, len(raw))
	for _, wl := range raw {
		date, ok := s.worklogDate(wl)
		if !ok { continue }
		if !w.ContainsDate(date) { continue }
		inWindow = append(inWindow, wl)
	}

	var issueIDs []string
	seen := map[string]bool{}
	for _, wl := range inWindow {
		id := toStr(wl["issueId"])
		if id != "" && !seen[id] { seen[id] = true; issueIDs = append(issueIDs, id) }
	}
	s.resolveIssues(ctx, issueIDs)

	var out []domain.Worklog
	for _, wl := range inWindow {
		issueID := toStr(wl["issueId"])
		if issueID == "" { continue }
		issue, err := s.issueDetail(ctx, issueID)
		if err != nil { continue } // already warned during resolve
		fields, _ := issue["fields"].(map[string]any)
		if fields == nil { continue }
		if pj, ok := fields["project"].(map[string]any); !ok || !strings.EqualFold(toStr(pj["key"]), project) {
			// Outside the target project: filtered, not an error.
			continue
		}
		date, _ := s.worklogDate(wl)
		out = append(out, s.worklogRecord(wl, toStr(issue["key"]), fields, date))
	}
	return out, nil
}

// worklogsViaIndex runs the two cheap phases: paginate candidate ids updated
// since the window start, then batch-fetch the full bodies.
func (s *Session) worklogsViaIndex(ctx context.Context, w Window) ([]map[string]any, error) {
	since := w.StartUTC.UnixMilli()
	entries, err := jira.Paginate(ctx, s.cfg.PageSize, func(ctx context.Context, startAt, max int) (any, error) {
		return s.jira.UpdatedWorklogs(ctx, since, startAt, max)
	})
	if err != nil { return nil, fmt.Errorf("updated worklog ids: %w", err) }

	var ids []int64
	for _, e := range entries {
		m, _ := e.(map[string]any)
		if m == nil { continue }
		if id, ok := m["worklogId"].(float64); ok { ids = append(ids, int64(id)) }
	}
	if len(ids) == 0 { return nil, nil }

	batch := s.cfg.WorklogBatchSize
	if batch <= 0 || batch > 1000 { batch = 1000 } // upstream ceiling
	var out []map[string]any
	for i := 0; i < len(ids); i += batch {
		j := i + batch
		if j > len(ids) { j = len(ids) }
		res, err := s.jira.WorklogList(ctx, ids[i:j])
		if err != nil { return nil, fmt.Errorf("worklog batch at %d: %w", i, err) }
		arr, _ := res.([]any)
		for _, e := range arr {
			if m, _ := e.(map[string]any); m != nil { out = append(out, m) }
		}
	}
	return out, nil
}

// worklogsFallback searches issues with worklogs in the window and flattens
// their embedded worklog lists. Slower (full issues travel over the wire)
// but works on every server version.
func (s *Session) worklogsFallback(ctx context.Context, project string, w Window) ([]domain.Worklog, error) {
	jql := "project = " + quoteJQL(project) +
		" AND worklogDate >= " + quoteJQL(w.Start) +
		" AND worklogDate <= " + quoteJQL(w.End)
	fields := "worklog,summary,issuetype,status," + s.cfg.SprintField + ",sprint"
	raw, err := jira.Paginate(ctx, s.cfg.PageSize, func(ctx context.Context, startAt, max int) (any, error) {
		return s.jira.Search(ctx, jql, fields, "", startAt, max)
	})
	if err != nil { return nil, fmt.Errorf("worklog search: %w", err) }

	var out []domain.Worklog
	for _, r := range raw {
		issue, _ := r.(map[string]any)
		if issue == nil { continue }
		issueFields, _ := issue["fields"].(map[string]any)
		if issueFields == nil { continue }
		wlContainer, _ := issueFields["worklog"].(map[string]any)
		wls, _ := wlContainer["worklogs"].([]any)
		for _, e := range wls {
			wl, _ := e.(map[string]any)
			if wl == nil { continue }
			date, ok := s.worklogDate(wl)
			if !ok || !w.ContainsDate(date) { continue }
			out = append(out, s.worklogRecord(wl, toStr(issue["key"]), issueFields, date))
		}
	}
	return out, nil
}

// worklogDate extracts the start date in the worklog's own offset. A
// timestamp the offset fix cannot repair skips the record with a warning
// instead of aborting the batch.
func (s *Session) worklogDate(wl map[string]any) (string, bool) {
	started := toStr(wl["started"])
	if started == "" { return "", false }
	date, err := normalize.LocalDate(started)
	if err != nil {
		s.log.Warn().Str("started", started).Msg("skipping worklog with unparseable start time")
		return "", false
	}
	return date, true
}

func (s *Session) worklogRecord(wl map[string]any, issueKey string, issueFields map[string]any, date string) domain.Worklog {
	rec := domain.Worklog{
		IssueKey:  issueKey,
		Summary:   toStr(issueFields["summary"]),
		IssueType: "N/A",
		Status:    "N/A",
		Author:    "Unknown",
		TimeSpent: "0m",
		Started:   date,
		Comment:   normalize.DocText(wl["comment"]),
	}
	if it, ok := issueFields["issuetype"].(map[string]any); ok { rec.IssueType = toStr(it["name"]) }
	if st, ok := issueFields["status"].(map[string]any); ok { rec.Status = toStr(st["name"]) }
	if a, ok := wl["author"].(map[string]any); ok {
		if name := toStr(a["displayName"]); name != "" { rec.Author = name }
	}
	if ts := toStr(wl["timeSpent"]); ts != "" { rec.TimeSpent = ts }
	if secs, ok := wl["timeSpentSeconds"].(float64); ok {
		rec.Hours = math.Round(secs/3600*100) / 100
	}
	sprintField := issueFields[s.cfg.SprintField]
	if sprintField == nil { sprintField = issueFields["sprint"] }
	rec.Sprint = normalize.SprintLabel(normalize.SprintRefs(sprintField))
	return rec
}
