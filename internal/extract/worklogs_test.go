package extract

import (
	"context"
	"strings"
	"testing"
)

func worklogIndex(ids ...float64) map[string]any {
	values := make([]any, 0, len(ids))
	for _, id := range ids { values = append(values, map[string]any{"worklogId": id}) }
	return map[string]any{"values": values, "lastPage": true}
}

func ngIssueDetail() map[string]any {
	return map[string]any{
		"key": "NG-5",
		"fields": map[string]any{
			"project":   map[string]any{"key": "NG"},
			"summary":   "Checkout bug",
			"issuetype": map[string]any{"name": "Bug"},
			"status":    map[string]any{"name": "Done"},
			"customfield_10020": []any{
				map[string]any{"id": float64(7), "name": "Sprint 7", "state": "active"},
			},
		},
	}
}

func TestWorklogsInRange_IndexPath(t *testing.T) {
	fake := &fakeJira{
		updatedWorklogs: func(since int64, startAt, max int) (any, error) {
			return worklogIndex(1, 2, 3), nil
		},
		worklogList: func(ids []int64) (any, error) {
			if len(ids) != 3 { t.Fatalf("expected 3 ids, got %v", ids) }
			return []any{
				// 23:59 local on Mar 31 is Apr 1 in UTC; local date governs,
				// so this one stays outside the April window.
				map[string]any{"issueId": "100", "started": "2024-03-31T23:59:59.000-0800"},
				map[string]any{
					"issueId": "100", "started": "2024-04-02T10:00:00.000+0300",
					"timeSpent": "1h 30m", "timeSpentSeconds": float64(5400),
					"author": map[string]any{"displayName": "Dana"},
					"comment": map[string]any{"content": []any{
						map[string]any{"type": "paragraph", "content": []any{
							map[string]any{"type": "text", "text": "deployed fix"},
						}},
					}},
				},
				map[string]any{"issueId": "100", "started": "2024-04-03T09:00:00.000Z"},
			}, nil
		},
		issue: func(idOrKey, fields string) (any, error) { return ngIssueDetail(), nil },
	}

	w, err := ParseWindow("2024-04-01", "2024-04-30")
	if err != nil { t.Fatalf("window: %v", err) }
	worklogs, err := testSession(t, fake).WorklogsInRange(context.Background(), "NG", w)
	if err != nil { t.Fatalf("WorklogsInRange: %v", err) }

	if len(worklogs) != 2 { t.Fatalf("expected 2 worklogs, got %d: %+v", len(worklogs), worklogs) }
	if fake.issueCalls != 1 {
		t.Fatalf("expected one issue lookup for one unique issue, got %d", fake.issueCalls)
	}

	wl := worklogs[0]
	if wl.IssueKey != "NG-5" || wl.Started != "2024-04-02" { t.Fatalf("got %+v", wl) }
	if wl.Author != "Dana" || wl.TimeSpent != "1h 30m" || wl.Hours != 1.5 {
		t.Fatalf("got %+v", wl)
	}
	if wl.Sprint != "Sprint 7 (ID: 7)" { t.Fatalf("sprint label: %q", wl.Sprint) }
	if wl.Comment != "deployed fix" { t.Fatalf("comment: %q", wl.Comment) }

	// Absent author and time fields take defaults, not empty strings.
	if worklogs[1].Author != "Unknown" || worklogs[1].TimeSpent != "0m" {
		t.Fatalf("defaults not applied: %+v", worklogs[1])
	}
}

func TestWorklogsInRange_OtherProjectsSilentlyExcluded(t *testing.T) {
	detail := ngIssueDetail()
	detail["fields"].(map[string]any)["project"] = map[string]any{"key": "OTHER"}
	fake := &fakeJira{
		updatedWorklogs: func(since int64, startAt, max int) (any, error) { return worklogIndex(1), nil },
		worklogList: func(ids []int64) (any, error) {
			return []any{map[string]any{"issueId": "100", "started": "2024-04-02T10:00:00.000Z"}}, nil
		},
		issue: func(idOrKey, fields string) (any, error) { return detail, nil },
	}
	w, _ := ParseWindow("2024-04-01", "2024-04-30")
	worklogs, err := testSession(t, fake).WorklogsInRange(context.Background(), "NG", w)
	if err != nil { t.Fatalf("WorklogsInRange: %v", err) }
	if len(worklogs) != 0 { t.Fatalf("expected other-project worklog excluded, got %+v", worklogs) }
}

func TestWorklogsInRange_FallbackOnIndexFailure(t *testing.T) {
	fake := &fakeJira{
		updatedWorklogs: func(since int64, startAt, max int) (any, error) { return nil, errTest },
		search: func(jql, fields string, startAt, max int) (any, error) {
			if !strings.Contains(jql, `worklogDate >= "2024-04-01"`) {
				t.Fatalf("fallback jql %q", jql)
			}
			issue := rawIssue("NG-8", "Billing task", map[string]any{
				"worklog": map[string]any{"worklogs": []any{
					map[string]any{"started": "2024-04-10T12:00:00.000Z", "timeSpentSeconds": float64(3600), "timeSpent": "1h"},
					map[string]any{"started": "2024-05-02T12:00:00.000Z"}, // outside, listed because the issue matched
				}},
			})
			return searchEnvelope(issue), nil
		},
	}
	w, _ := ParseWindow("2024-04-01", "2024-04-30")
	worklogs, err := testSession(t, fake).WorklogsInRange(context.Background(), "NG", w)
	if err != nil { t.Fatalf("fallback must recover: %v", err) }
	if len(worklogs) != 1 { t.Fatalf("expected 1 worklog, got %+v", worklogs) }
	if worklogs[0].IssueKey != "NG-8" || worklogs[0].Hours != 1 {
		t.Fatalf("got %+v", worklogs[0])
	}
}

func TestWorklogsInRange_MalformedTimestampSkipped(t *testing.T) {
	fake := &fakeJira{
		updatedWorklogs: func(since int64, startAt, max int) (any, error) { return worklogIndex(1, 2), nil },
		worklogList: func(ids []int64) (any, error) {
			return []any{
				map[string]any{"issueId": "100", "started": "not a timestamp"},
				map[string]any{"issueId": "100", "started": "2024-04-02T10:00:00.000Z"},
			}, nil
		},
		issue: func(idOrKey, fields string) (any, error) { return ngIssueDetail(), nil },
	}
	w, _ := ParseWindow("2024-04-01", "2024-04-30")
	worklogs, err := testSession(t, fake).WorklogsInRange(context.Background(), "NG", w)
	if err != nil { t.Fatalf("WorklogsInRange: %v", err) }
	if len(worklogs) != 1 { t.Fatalf("expected malformed record skipped, got %+v", worklogs) }
}
