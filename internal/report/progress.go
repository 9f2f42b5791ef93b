/* Copyright (c) 2025 Jira API Extractor contributors
 * SPDX-License-Identifier: BSD-3-Clause */
package report

import (
	"fmt"

	"github.com/felipe-stanham/Jira-API-Extractor/internal/aggregate"
	"github.com/felipe-stanham/Jira-API-Extractor/internal/domain"
	"github.com/xuri/excelize/v2"
)

// Progress state colors, matching the status-category palette used across
// the report: Done green, In Progress yellow, To Do blue.
var progressFills = []excelize.Fill{
	{Type: "pattern", Pattern: 1, Color: []string{"4CAF50"}},
	{Type: "pattern", Pattern: 1, Color: []string{"FFC107"}},
	{Type: "pattern", Pattern: 1, Color: []string{"2196F3"}},
}

type progressGroup struct {
	Name   string
	Issues []domain.Issue
}

func progressGroups(data Data) []progressGroup {
	var groups []progressGroup
	for _, g := range data.SprintGroups {
		name := g.SprintName
		if name == "" { name = "Sprint " + g.SprintID }
		groups = append(groups, progressGroup{Name: name, Issues: g.Issues})
	}
	if len(data.EpicLabelIssues) > 0 {
		groups = append(groups, progressGroup{Name: "Epic Label", Issues: data.EpicLabelIssues})
	}
	if len(data.OpenEpicIssues) > 0 {
		groups = append(groups, progressGroup{Name: "Open Epics", Issues: data.OpenEpicIssues})
	}
	return groups
}

// writeProgressSheet renders one section per issue group: a completion bar
// chart, a stacked story-point bar chart, and a composition pie, all fed by
// the aggregate rollups.
func (e *Exporter) writeProgressSheet(f *excelize.File, sheet string, groups []progressGroup) error {
	row := 1
	for _, g := range groups {
		progress := aggregate.CalculateEpicProgress(g.Issues)
		composition := aggregate.CalculateSprintComposition(g.Issues)
		if len(progress) == 0 && len(composition) == 0 { continue }

		if err := f.SetSheetRow(sheet, cellA(row), &[]any{g.Name + " Progress"}); err != nil { return err }
		row += 2

		var err error
		row, err = e.writePercentageChart(f, sheet, row, g.Name, progress)
		if err != nil { return err }
		row, err = e.writeStackedChart(f, sheet, row, g.Name, progress)
		if err != nil { return err }
		row, err = e.writeCompositionChart(f, sheet, row, g.Name, composition)
		if err != nil { return err }
		row += 2
	}
	return nil
}

func (e *Exporter) writePercentageChart(f *excelize.File, sheet string, startRow int, group string, progress []domain.EpicProgress) (int, error) {
	if len(progress) == 0 { return startRow, nil }
	if err := f.SetSheetRow(sheet, cellA(startRow), &[]any{"Epic", "Completion %"}); err != nil { return 0, err }
	for i, p := range progress {
		if err := f.SetSheetRow(sheet, cellA(startRow+1+i), &[]any{p.EpicName, round1(p.Percentage)}); err != nil { return 0, err }
	}
	dataEnd := startRow + len(progress)

	chart := &excelize.Chart{
		Type: excelize.Bar, // horizontal bars
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("'%s'!$B$%d", sheet, startRow),
			Categories: fmt.Sprintf("'%s'!$A$%d:$A$%d", sheet, startRow+1, dataEnd),
			Values:     fmt.Sprintf("'%s'!$B$%d:$B$%d", sheet, startRow+1, dataEnd),
		}},
		Title:     []excelize.RichTextRun{{Text: group + ": Completion % by Epic"}},
		Legend:    excelize.ChartLegend{Position: "none"},
		PlotArea:  excelize.ChartPlotArea{ShowVal: true},
		Dimension: excelize.ChartDimension{Width: 560, Height: chartHeight(len(progress))},
	}
	if err := f.AddChart(sheet, "F"+fmt.Sprint(startRow), chart); err != nil { return 0, err }
	return sectionEnd(startRow, dataEnd), nil
}

func (e *Exporter) writeStackedChart(f *excelize.File, sheet string, startRow int, group string, progress []domain.EpicProgress) (int, error) {
	if len(progress) == 0 { return startRow, nil }
	if err := f.SetSheetRow(sheet, cellA(startRow), &[]any{"Epic", "Done", "In Progress", "To Do"}); err != nil { return 0, err }
	for i, p := range progress {
		if err := f.SetSheetRow(sheet, cellA(startRow+1+i), &[]any{p.EpicName, p.DonePoints, p.InProgressPoints, p.ToDoPoints}); err != nil { return 0, err }
	}
	dataEnd := startRow + len(progress)

	series := make([]excelize.ChartSeries, 0, 3)
	for i, col := range []string{"B", "C", "D"} {
		series = append(series, excelize.ChartSeries{
			Name:       fmt.Sprintf("'%s'!$%s$%d", sheet, col, startRow),
			Categories: fmt.Sprintf("'%s'!$A$%d:$A$%d", sheet, startRow+1, dataEnd),
			Values:     fmt.Sprintf("'%s'!$%s$%d:$%s$%d", sheet, col, startRow+1, col, dataEnd),
			Fill:       progressFills[i],
		})
	}
	chart := &excelize.Chart{
		Type:      excelize.BarStacked,
		Series:    series,
		Title:     []excelize.RichTextRun{{Text: group + ": Story Points by Epic"}},
		Legend:    excelize.ChartLegend{Position: "bottom"},
		PlotArea:  excelize.ChartPlotArea{ShowVal: true},
		Dimension: excelize.ChartDimension{Width: 560, Height: chartHeight(len(progress))},
	}
	if err := f.AddChart(sheet, "F"+fmt.Sprint(startRow), chart); err != nil { return 0, err }
	return sectionEnd(startRow, dataEnd), nil
}

func (e *Exporter) writeCompositionChart(f *excelize.File, sheet string, startRow int, group string, composition []domain.SprintComposition) (int, error) {
	if len(composition) == 0 { return startRow, nil }
	if err := f.SetSheetRow(sheet, cellA(startRow), &[]any{"Epic", "Story Points"}); err != nil { return 0, err }
	for i, c := range composition {
		if err := f.SetSheetRow(sheet, cellA(startRow+1+i), &[]any{c.EpicName, c.TotalPoints}); err != nil { return 0, err }
	}
	dataEnd := startRow + len(composition)

	chart := &excelize.Chart{
		Type: excelize.Pie,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("'%s'!$B$%d", sheet, startRow),
			Categories: fmt.Sprintf("'%s'!$A$%d:$A$%d", sheet, startRow+1, dataEnd),
			Values:     fmt.Sprintf("'%s'!$B$%d:$B$%d", sheet, startRow+1, dataEnd),
		}},
		Title:     []excelize.RichTextRun{{Text: group + ": Sprint Composition"}},
		PlotArea:  excelize.ChartPlotArea{ShowCatName: true, ShowPercent: true},
		Dimension: excelize.ChartDimension{Width: 480, Height: 300},
	}
	if err := f.AddChart(sheet, "F"+fmt.Sprint(startRow), chart); err != nil { return 0, err }
	return sectionEnd(startRow, dataEnd), nil
}

func sectionEnd(startRow, dataEnd int) int {
	next := dataEnd + 3
	if chartRows := startRow + 16; chartRows > next { next = chartRows }
	return next
}

func chartHeight(rows int) uint {
	h := rows * 40
	if h < 300 { h = 300 }
	return uint(h)
}

func round1(f float64) float64 {
	return float64(int(f*10+0.5)) / 10
}
