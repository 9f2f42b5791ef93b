/* Copyright (c) 2025 Jira API Extractor contributors
 * SPDX-License-Identifier: BSD-3-Clause */

// Package app runs one complete export: it maps run options onto the
// extraction session, collects every requested category, and writes the
// workbook. The CLI and the web form both call into here so their behavior
// cannot drift apart.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/felipe-stanham/Jira-API-Extractor/internal/config"
	"github.com/felipe-stanham/Jira-API-Extractor/internal/extract"
	"github.com/felipe-stanham/Jira-API-Extractor/internal/jira"
	"github.com/felipe-stanham/Jira-API-Extractor/internal/report"
	"github.com/rs/zerolog"
)

// Options select what one run extracts. Project is mandatory; everything
// else is opt-in and the categories are independent.
type Options struct {
	Project   string
	SprintIDs []string
	StartDate string
	EndDate   string
	EpicLabel string
	OpenEpics bool
	ExtraJQL  string
	Output    string
}

type Result struct {
	Path     string
	Sheets   []string
	Issues   int
	Worklogs int
	Comments int
}

// Validate rejects option combinations before any network call.
func (o Options) Validate() error {
	if strings.TrimSpace(o.Project) == "" {
		return errors.New("a project key is required")
	}
	if (o.StartDate == "") != (o.EndDate == "") {
		return errors.New("start and end dates must be provided together")
	}
	if len(o.SprintIDs) == 0 && o.StartDate == "" && o.EpicLabel == "" && !o.OpenEpics {
		return errors.New("nothing to extract: provide sprint ids, a date range, an epic label, or the open-epics flag")
	}
	return nil
}

// Run executes the export. Categories fail independently: an error in one is
// reported and the others still run, and the workbook is written from
// whatever succeeded. Run returns an error only when options are invalid or
// no category produced data.
func Run(ctx context.Context, cfg config.Config, log zerolog.Logger, progress extract.Progress, o Options) (Result, error) {
	if progress == nil { progress = func(string, ...any) {} }
	if err := o.Validate(); err != nil { return Result{}, err }
	if err := cfg.Validate(); err != nil { return Result{}, err }

	// Window validation is eager: a malformed date must fail the run before
	// any category has burned API calls.
	var window extract.Window
	if o.StartDate != "" {
		w, err := extract.ParseWindow(o.StartDate, o.EndDate)
		if err != nil { return Result{}, err }
		window = w
	}

	project := strings.ToUpper(strings.TrimSpace(o.Project))
	session := extract.NewSession(cfg, log, jira.NewClient(cfg, log), progress)

	var data report.Data
	var failures []string
	fail := func(what string, err error) {
		log.Error().Err(err).Str("category", what).Msg("extraction failed")
		progress("Error fetching %s: %v", what, err)
		failures = append(failures, what)
	}

	if len(o.SprintIDs) > 0 {
		groups, err := session.IssuesInSprints(ctx, project, o.SprintIDs, o.ExtraJQL)
		if err != nil { fail("sprint issues", err) } else { data.SprintGroups = groups }
	}

	if o.StartDate != "" {
		w := window
		progress("Fetching work logs for project %s from %s to %s...", project, w.Start, w.End)
		worklogs, err := session.WorklogsInRange(ctx, project, w)
		if err != nil { fail("work logs", err) } else {
			data.Worklogs = worklogs
			progress("Found %d work log entries", len(worklogs))
		}
		progress("Fetching comments for project %s from %s to %s...", project, w.Start, w.End)
		comments, err := session.CommentsInRange(ctx, project, w)
		if err != nil { fail("comments", err) } else {
			data.Comments = comments
			progress("Found %d comments", len(comments))
		}
	}

	if o.EpicLabel != "" {
		progress("Fetching epics with label %q in project %s...", o.EpicLabel, project)
		epics, err := session.EpicsByLabel(ctx, project, o.EpicLabel, o.ExtraJQL)
		if err != nil { fail("epic issues", err) } else {
			issues, err := session.IssuesInEpics(ctx, epics, o.ExtraJQL)
			if err != nil { fail("epic issues", err) } else {
				data.EpicLabelIssues = issues
				progress("Found %d issues across %d epics", len(issues), len(epics))
			}
		}
	}

	if o.OpenEpics {
		progress("Fetching open epics in project %s...", project)
		epics, err := session.OpenEpics(ctx, project, o.ExtraJQL)
		if err != nil { fail("open epic issues", err) } else {
			issues, err := session.IssuesInEpics(ctx, epics, o.ExtraJQL)
			if err != nil { fail("open epic issues", err) } else {
				data.OpenEpicIssues = issues
				progress("Found %d issues across %d open epics", len(issues), len(epics))
			}
		}
	}

	out := o.Output
	if out == "" { out = cfg.OutputPath }
	sheets, err := report.NewExporter(log).Save(data, out)
	if err != nil {
		if len(failures) > 0 {
			return Result{}, fmt.Errorf("%w (failed: %s)", err, strings.Join(failures, ", "))
		}
		return Result{}, err
	}
	progress("Data exported to %s (sheets: %s)", out, strings.Join(sheets, ", "))

	return Result{
		Path:     out,
		Sheets:   sheets,
		Issues:   len(data.SprintIssues()) + len(data.EpicLabelIssues) + len(data.OpenEpicIssues),
		Worklogs: len(data.Worklogs),
		Comments: len(data.Comments),
	}, nil
}
