/* Copyright (c) 2025 Jira API Extractor contributors
 * SPDX-License-Identifier: BSD-3-Clause */

// Package report renders extraction results into a multi-sheet xlsx
// workbook: flat data sheets plus chart sheets fed by the aggregate tables.
// It consumes finished domain records and never talks to the API.
package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/felipe-stanham/Jira-API-Extractor/internal/domain"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// Data carries everything one export run produced.
type Data struct {
	SprintGroups    []domain.SprintIssues
	EpicLabelIssues []domain.Issue
	OpenEpicIssues  []domain.Issue
	Worklogs        []domain.Worklog
	Comments        []domain.Comment
}

// SprintIssues flattens the per-sprint batches in fetch order.
func (d Data) SprintIssues() []domain.Issue {
	var out []domain.Issue
	for _, g := range d.SprintGroups { out = append(out, g.Issues...) }
	return out
}

func (d Data) empty() bool {
	return len(d.SprintGroups) == 0 && len(d.EpicLabelIssues) == 0 &&
		len(d.OpenEpicIssues) == 0 && len(d.Worklogs) == 0 && len(d.Comments) == 0
}

type Exporter struct {
	log zerolog.Logger
}

func NewExporter(log zerolog.Logger) *Exporter {
	return &Exporter{log: log}
}

// Save writes the workbook and returns the list of sheets created. The
// caller only learns the path it already chose and whether saving worked;
// the workbook layout is this package's business.
func (e *Exporter) Save(data Data, path string) ([]string, error) {
	if data.empty() { return nil, errors.New("no data was fetched to save") }

	f := excelize.NewFile()
	defer f.Close()

	var sheets []string
	add := func(name string) (string, error) {
		if _, err := f.NewSheet(name); err != nil { return "", err }
		sheets = append(sheets, name)
		return name, nil
	}

	sprintIssues := data.SprintIssues()
	if len(sprintIssues) > 0 {
		name, err := add("Sprint Issues")
		if err != nil { return nil, err }
		if err := e.writeIssueSheet(f, name, sprintIssues, true); err != nil { return nil, err }
	}
	if len(data.EpicLabelIssues) > 0 {
		name, err := add("Epic Issues")
		if err != nil { return nil, err }
		if err := e.writeIssueSheet(f, name, data.EpicLabelIssues, false); err != nil { return nil, err }
	}
	if len(data.OpenEpicIssues) > 0 {
		name, err := add("Open Epic Issues")
		if err != nil { return nil, err }
		if err := e.writeIssueSheet(f, name, data.OpenEpicIssues, false); err != nil { return nil, err }
	}
	if len(data.Worklogs) > 0 {
		name, err := add("Work Logs")
		if err != nil { return nil, err }
		if err := e.writeWorklogSheet(f, name, data.Worklogs); err != nil { return nil, err }
	}
	if len(data.Comments) > 0 {
		name, err := add("Comments")
		if err != nil { return nil, err }
		if err := e.writeCommentSheet(f, name, data.Comments); err != nil { return nil, err }
	}
	if len(sprintIssues) > 0 {
		name, err := add("Charts")
		if err != nil { return nil, err }
		if err := e.writeChartsSheet(f, name, sprintIssues, data.Worklogs); err != nil { return nil, err }
	}
	if groups := progressGroups(data); len(groups) > 0 {
		name, err := add("Progress")
		if err != nil { return nil, err }
		if err := e.writeProgressSheet(f, name, groups); err != nil { return nil, err }
	}

	if len(sheets) == 0 { return nil, errors.New("no data was fetched to save") }
	if err := f.DeleteSheet("Sheet1"); err != nil { return nil, err }
	if err := f.SaveAs(path); err != nil { return nil, fmt.Errorf("save workbook: %w", err) }
	return sheets, nil
}

func (e *Exporter) writeIssueSheet(f *excelize.File, sheet string, issues []domain.Issue, withSprint bool) error {
	header := []any{"Issue Key", "Issue Type", "Summary", "Status", "Parent Summary", "Story Points"}
	if withSprint { header = append(header, "Sprint") }
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil { return err }
	for i, iss := range issues {
		parent := iss.ParentSummary
		if parent == "" { parent = "N/A" }
		row := []any{iss.Key, orNA(iss.Type), iss.Summary, orNA(iss.Status), parent, iss.PointsDisplay()}
		if withSprint { row = append(row, iss.SprintName) }
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil { return err }
		if err := f.SetSheetRow(sheet, cell, &row); err != nil { return err }
	}
	return nil
}

func (e *Exporter) writeWorklogSheet(f *excelize.File, sheet string, worklogs []domain.Worklog) error {
	header := []any{"Issue Key", "Issue Type", "Summary", "Status", "Author", "Time Spent", "Time Spent (Hours)", "Date", "Sprint", "Comment"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil { return err }
	for i, wl := range worklogs {
		row := []any{wl.IssueKey, wl.IssueType, wl.Summary, wl.Status, wl.Author, wl.TimeSpent, wl.Hours, wl.Started, wl.Sprint, wl.Comment}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil { return err }
		if err := f.SetSheetRow(sheet, cell, &row); err != nil { return err }
	}
	return nil
}

func (e *Exporter) writeCommentSheet(f *excelize.File, sheet string, comments []domain.Comment) error {
	header := []any{"Issue Key", "Summary", "Status", "Parent Summary", "Issue Type", "Comment Date", "Comment Author", "Comment"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil { return err }
	for i, cm := range comments {
		row := []any{cm.IssueKey, cm.Summary, cm.Status, cm.ParentSummary, cm.IssueType, cm.Created.Format("2006-01-02 15:04:05"), cm.Author, cm.Body}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil { return err }
		if err := f.SetSheetRow(sheet, cell, &row); err != nil { return err }
	}
	return nil
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" { return "N/A" }
	return s
}
