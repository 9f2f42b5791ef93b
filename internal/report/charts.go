/* Copyright (c) 2025 Jira API Extractor contributors
 * SPDX-License-Identifier: BSD-3-Clause */
package report

import (
	"fmt"
	"sort"

	"github.com/felipe-stanham/Jira-API-Extractor/internal/domain"
	"github.com/xuri/excelize/v2"
)

// writeChartsSheet renders the overview pies: issues by status, issues by
// type, and logged hours by author when worklogs were fetched. Counts are
// computed here and written as static cells so the workbook carries no
// formulas.
func (e *Exporter) writeChartsSheet(f *excelize.File, sheet string, issues []domain.Issue, worklogs []domain.Worklog) error {
	statusCounts := map[string]float64{}
	typeCounts := map[string]float64{}
	for _, iss := range issues {
		statusCounts[orNA(iss.Status)]++
		typeCounts[orNA(iss.Type)]++
	}

	row := 1
	var err error
	row, err = e.writePieSection(f, sheet, row, "Issues by Status Analysis", "Status", "Count", statusCounts)
	if err != nil { return err }
	row, err = e.writePieSection(f, sheet, row, "Issues by Type Analysis", "Issue Type", "Count", typeCounts)
	if err != nil { return err }

	if len(worklogs) > 0 {
		hoursByAuthor := map[string]float64{}
		for _, wl := range worklogs { hoursByAuthor[wl.Author] += wl.Hours }
		if _, err = e.writePieSection(f, sheet, row, "Time Spent by Author", "Author", "Hours", hoursByAuthor); err != nil { return err }
	}
	return nil
}

// writePieSection writes one "label, value" table sorted by label and a pie
// chart beside it, returning the row where the next section starts.
func (e *Exporter) writePieSection(f *excelize.File, sheet string, startRow int, title, labelHeader, valueHeader string, counts map[string]float64) (int, error) {
	keys := make([]string, 0, len(counts))
	for k := range counts { keys = append(keys, k) }
	sort.Strings(keys)

	if err := f.SetSheetRow(sheet, cellA(startRow), &[]any{title}); err != nil { return 0, err }
	if err := f.SetSheetRow(sheet, cellA(startRow+1), &[]any{labelHeader, valueHeader}); err != nil { return 0, err }
	dataStart := startRow + 2
	for i, k := range keys {
		if err := f.SetSheetRow(sheet, cellA(dataStart+i), &[]any{k, counts[k]}); err != nil { return 0, err }
	}
	dataEnd := dataStart + len(keys) - 1

	chart := &excelize.Chart{
		Type: excelize.Pie,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("'%s'!$B$%d", sheet, startRow+1),
			Categories: fmt.Sprintf("'%s'!$A$%d:$A$%d", sheet, dataStart, dataEnd),
			Values:     fmt.Sprintf("'%s'!$B$%d:$B$%d", sheet, dataStart, dataEnd),
		}},
		Title:     []excelize.RichTextRun{{Text: title}},
		PlotArea:  excelize.ChartPlotArea{ShowCatName: true, ShowVal: true, ShowPercent: true},
		Dimension: excelize.ChartDimension{Width: 480, Height: 300},
	}
	if err := f.AddChart(sheet, "D"+fmt.Sprint(startRow), chart); err != nil { return 0, err }

	next := dataEnd + 3
	if chartRows := startRow + 16; chartRows > next { next = chartRows }
	return next, nil
}

func cellA(row int) string {
	return "A" + fmt.Sprint(row)
}
