package app

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/felipe-stanham/Jira-API-Extractor/internal/config"
	"github.com/rs/zerolog"
)

func TestOptionsValidate(t *testing.T) {
	base := Options{Project: "NG", SprintIDs: []string{"1"}}
	if err := base.Validate(); err != nil { t.Fatalf("valid options rejected: %v", err) }

	cases := []struct {
		name string
		o    Options
	}{
		{"missing project", Options{SprintIDs: []string{"1"}}},
		{"blank project", Options{Project: "  ", SprintIDs: []string{"1"}}},
		{"start without end", Options{Project: "NG", StartDate: "2024-04-01"}},
		{"end without start", Options{Project: "NG", EndDate: "2024-04-30"}},
		{"no categories", Options{Project: "NG"}},
	}
	for _, c := range cases {
		if err := c.o.Validate(); err == nil {
			t.Fatalf("%s: expected error", c.name)
		}
	}
}

func TestRun_BadWindowFailsBeforeAnyFetch(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"issues":[],"total":0}`)
	}))
	defer srv.Close()
	cfg := config.Config{
		JiraBaseURL: srv.URL, JiraEmail: "a@b.com", JiraAPIToken: "t",
		StoryPointsField: "customfield_10016", StoryPointsFieldAlt: "customfield_10026",
		SprintField: "customfield_10020", PageSize: 50, WorklogBatchSize: 1000, Workers: 1,
	}

	cases := []struct {
		name       string
		start, end string
		want       string
	}{
		{"malformed start", "04/01/2024", "2024-04-30", "YYYY-MM-DD"},
		{"reversed", "2024-04-30", "2024-04-01", "before or equal"},
	}
	for _, c := range cases {
		// Sprint ids are listed first in the run; a bad window must still
		// fail before that category issues a single request.
		opts := Options{Project: "NG", SprintIDs: []string{"1"}, StartDate: c.start, EndDate: c.end}
		_, err := Run(context.Background(), cfg, zerolog.Nop(), nil, opts)
		if err == nil || !strings.Contains(err.Error(), c.want) {
			t.Fatalf("%s: err = %v", c.name, err)
		}
		if n := atomic.LoadInt32(&calls); n != 0 {
			t.Fatalf("%s: %d API requests issued before validation failed", c.name, n)
		}
	}
}

func TestOptionsValidate_EachCategoryAlone(t *testing.T) {
	cases := []Options{
		{Project: "NG", SprintIDs: []string{"1"}},
		{Project: "NG", StartDate: "2024-04-01", EndDate: "2024-04-30"},
		{Project: "NG", EpicLabel: "Q3"},
		{Project: "NG", OpenEpics: true},
	}
	for i, o := range cases {
		if err := o.Validate(); err != nil {
			t.Fatalf("case %d: %v", i, err)
		}
	}
}
