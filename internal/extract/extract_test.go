package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/felipe-stanham/Jira-API-Extractor/internal/config"
	"github.com/rs/zerolog"
)

// fakeJira scripts the API surface per test. Unset methods fail loudly so a
// test only exercises the endpoints it declared.
type fakeJira struct {
	sprintIssues    func(sprintID string, startAt, max int, jql, fields string) (any, error)
	sprint          func(sprintID string) (any, error)
	search          func(jql, fields string, startAt, max int) (any, error)
	updatedWorklogs func(since int64, startAt, max int) (any, error)
	worklogList     func(ids []int64) (any, error)
	issue           func(idOrKey, fields string) (any, error)

	issueCalls int
}

func (f *fakeJira) SprintIssues(_ context.Context, sprintID string, startAt, max int, jql, fields string) (any, error) {
	if f.sprintIssues == nil { return nil, errors.New("unexpected SprintIssues call") }
	return f.sprintIssues(sprintID, startAt, max, jql, fields)
}

func (f *fakeJira) Sprint(_ context.Context, sprintID string) (any, error) {
	if f.sprint == nil { return nil, errors.New("unexpected Sprint call") }
	return f.sprint(sprintID)
}

func (f *fakeJira) Search(_ context.Context, jql, fields, _ string, startAt, max int) (any, error) {
	if f.search == nil { return nil, errors.New("unexpected Search call") }
	return f.search(jql, fields, startAt, max)
}

func (f *fakeJira) UpdatedWorklogs(_ context.Context, since int64, startAt, max int) (any, error) {
	if f.updatedWorklogs == nil { return nil, errors.New("unexpected UpdatedWorklogs call") }
	return f.updatedWorklogs(since, startAt, max)
}

func (f *fakeJira) WorklogList(_ context.Context, ids []int64) (any, error) {
	if f.worklogList == nil { return nil, errors.New("unexpected WorklogList call") }
	return f.worklogList(ids)
}

func (f *fakeJira) Issue(_ context.Context, idOrKey, fields string) (any, error) {
	f.issueCalls++
	if f.issue == nil { return nil, errors.New("unexpected Issue call") }
	return f.issue(idOrKey, fields)
}

func testConfig() config.Config {
	return config.Config{
		StoryPointsField:    "customfield_10016",
		StoryPointsFieldAlt: "customfield_10026",
		SprintField:         "customfield_10020",
		PageSize:            50,
		WorklogBatchSize:    1000,
		Workers:             1,
	}
}

func testSession(t *testing.T, fake *fakeJira) *Session {
	t.Helper()
	return NewSession(testConfig(), zerolog.Nop(), fake, nil)
}

func searchEnvelope(issues ...any) map[string]any {
	return map[string]any{"issues": issues, "total": float64(len(issues))}
}
