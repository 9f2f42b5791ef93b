/* Copyright (c) 2025 Jira API Extractor contributors
 * SPDX-License-Identifier: BSD-3-Clause */

// Package extract orchestrates the paged Jira queries one export run needs
// and flattens the raw responses into domain records. A Session owns the
// per-run caches; nothing survives between runs.
package extract

import (
	"context"
	"fmt"
	"sync"

	"github.com/felipe-stanham/Jira-API-Extractor/internal/config"
	"github.com/felipe-stanham/Jira-API-Extractor/internal/domain"
	"github.com/felipe-stanham/Jira-API-Extractor/internal/normalize"
	"github.com/rs/zerolog"
)

// Client is the slice of the Jira API a Session drives.
type Client interface {
	SprintIssues(ctx context.Context, sprintID string, startAt, max int, jql, fields string) (any, error)
	Sprint(ctx context.Context, sprintID string) (any, error)
	Search(ctx context.Context, jql, fields, expand string, startAt, max int) (any, error)
	UpdatedWorklogs(ctx context.Context, since int64, startAt, max int) (any, error)
	WorklogList(ctx context.Context, ids []int64) (any, error)
	Issue(ctx context.Context, idOrKey, fields string) (any, error)
}

// Progress receives human-readable status lines. The extraction logic never
// prints directly so it stays testable without capturing stdout.
type Progress func(format string, args ...any)

type Session struct {
	cfg    config.Config
	log    zerolog.Logger
	jira   Client
	report Progress

	mu           sync.Mutex
	issueDetails map[string]map[string]any // raw issue by id, one fetch per unique issue per run
}

func NewSession(cfg config.Config, log zerolog.Logger, client Client, report Progress) *Session {
	if report == nil { report = func(string, ...any) {} }
	return &Session{
		cfg:          cfg,
		log:          log,
		jira:         client,
		report:       report,
		issueDetails: map[string]map[string]any{},
	}
}

func (s *Session) issueFields() string {
	return "summary,status,parent,issuetype," + s.cfg.StoryPointsField + "," + s.cfg.StoryPointsFieldAlt + "," + s.cfg.SprintField
}

// issueFromRaw flattens one raw search/agile result element.
func (s *Session) issueFromRaw(m map[string]any) domain.Issue {
	fields, _ := m["fields"].(map[string]any)
	if fields == nil { fields = map[string]any{} }
	iss := domain.Issue{
		Key:     toStr(m["key"]),
		Summary: toStr(fields["summary"]),
		Points:  normalize.StoryPoints(fields, s.cfg.StoryPointsField, s.cfg.StoryPointsFieldAlt),
	}
	if it, ok := fields["issuetype"].(map[string]any); ok { iss.Type = toStr(it["name"]) }
	if st, ok := fields["status"].(map[string]any); ok {
		iss.Status = toStr(st["name"])
		if sc, ok := st["statusCategory"].(map[string]any); ok { iss.StatusCategory = toStr(sc["name"]) }
	}
	if parent, ok := fields["parent"].(map[string]any); ok {
		iss.ParentKey = toStr(parent["key"])
		if pf, ok := parent["fields"].(map[string]any); ok { iss.ParentSummary = toStr(pf["summary"]) }
	}
	sprintField := fields[s.cfg.SprintField]
	if sprintField == nil { sprintField = fields["sprint"] }
	iss.Sprints = normalize.SprintRefs(sprintField)
	return iss
}

// issueDetail fetches a raw issue by id, memoized for the lifetime of the
// run. Worklogs cluster heavily on the same issues, so this collapses the
// dominant cost of the worklog path.
func (s *Session) issueDetail(ctx context.Context, issueID string) (map[string]any, error) {
	s.mu.Lock()
	if cached, ok := s.issueDetails[issueID]; ok {
		s.mu.Unlock()
		return cached, nil
	}
	s.mu.Unlock()
	res, err := s.jira.Issue(ctx, issueID, "project,summary,issuetype,status,"+s.cfg.SprintField+",sprint")
	if err != nil { return nil, err }
	m, _ := res.(map[string]any)
	if m == nil { return nil, fmt.Errorf("issue %s: unexpected response shape", issueID) }
	s.mu.Lock()
	s.issueDetails[issueID] = m
	s.mu.Unlock()
	return m, nil
}

// resolveIssues warms the detail cache for the given ids, optionally on a
// bounded worker pool. Errors are logged and leave the id unresolved; the
// caller treats missing details as out-of-scope records, not failures.
func (s *Session) resolveIssues(ctx context.Context, ids []string) {
	workers := s.cfg.Workers
	if workers <= 1 || len(ids) < 2 {
		for _, id := range ids {
			if _, err := s.issueDetail(ctx, id); err != nil {
				s.log.Warn().Err(err).Str("issue_id", id).Msg("issue lookup failed")
			}
		}
		return
	}
	jobs := make(chan string)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				if _, err := s.issueDetail(ctx, id); err != nil {
					s.log.Warn().Err(err).Str("issue_id", id).Msg("issue lookup failed")
				}
			}
		}()
	}
	for _, id := range ids { jobs <- id }
	close(jobs)
	wg.Wait()
}

func toStr(v any) string {
	if v == nil { return "" }
	if s, ok := v.(string); ok { return s }
	return fmt.Sprintf("%v", v)
}

func quoteJQL(s string) string {
	return `"` + s + `"`
}

func withExtra(jql, extra string) string {
	if extra == "" { return jql }
	return jql + " AND (" + extra + ")"
}
