/* Copyright (c) 2025 Jira API Extractor contributors
 * SPDX-License-Identifier: BSD-3-Clause */

// Package aggregate turns flat issue lists into the chart-ready rollups the
// report sheets consume.
package aggregate

import (
	"sort"

	"github.com/felipe-stanham/Jira-API-Extractor/internal/domain"
)

// NoEpicKey groups issues that have no parent epic.
const NoEpicKey = "No Epic"

const maxEpicNameLen = 40

// TruncateEpicName caps a display name, marking the cut with an ellipsis.
// Counts runes, not bytes, so a multibyte name is never cut mid-character.
func TruncateEpicName(name string) string {
	r := []rune(name)
	if len(r) <= maxEpicNameLen { return name }
	return string(r[:maxEpicNameLen]) + "..."
}

func epicOf(iss domain.Issue) (key, name string) {
	if iss.ParentKey == "" { return NoEpicKey, NoEpicKey }
	name = iss.ParentSummary
	if name == "" { name = iss.ParentKey }
	return iss.ParentKey, name
}

// CalculateEpicProgress groups issues by parent epic and buckets their story
// points by status category. Absent estimates count as zero; epics whose
// total stays at zero are dropped entirely, not rendered as empty bars. The
// result is sorted by completion percentage, highest first.
func CalculateEpicProgress(issues []domain.Issue) []domain.EpicProgress {
	byEpic := map[string]*domain.EpicProgress{}
	var order []string
	for _, iss := range issues {
		key, name := epicOf(iss)
		rec := byEpic[key]
		if rec == nil {
			rec = &domain.EpicProgress{EpicKey: key, EpicName: TruncateEpicName(name)}
			byEpic[key] = rec
			order = append(order, key)
		}
		points := iss.PointsOrZero()
		switch iss.StatusCategory {
		case domain.CategoryDone:
			rec.DonePoints += points
		case domain.CategoryInProgress:
			rec.InProgressPoints += points
		default: // To Do or anything unrecognized
			rec.ToDoPoints += points
		}
		rec.TotalPoints += points
	}

	result := make([]domain.EpicProgress, 0, len(order))
	for _, key := range order {
		rec := byEpic[key]
		if rec.TotalPoints <= 0 { continue }
		rec.Percentage = rec.DonePoints / rec.TotalPoints * 100
		result = append(result, *rec)
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Percentage > result[j].Percentage })
	return result
}

// CalculateSprintComposition totals story points per epic across one issue
// set and expresses each epic's share of the overall total. Zero-point
// epics are dropped. Sorted by total points, largest first.
func CalculateSprintComposition(issues []domain.Issue) []domain.SprintComposition {
	byEpic := map[string]*domain.SprintComposition{}
	var order []string
	var sprintTotal float64
	for _, iss := range issues {
		key, name := epicOf(iss)
		rec := byEpic[key]
		if rec == nil {
			rec = &domain.SprintComposition{EpicKey: key, EpicName: TruncateEpicName(name)}
			byEpic[key] = rec
			order = append(order, key)
		}
		points := iss.PointsOrZero()
		rec.TotalPoints += points
		sprintTotal += points
	}

	result := make([]domain.SprintComposition, 0, len(order))
	for _, key := range order {
		rec := byEpic[key]
		if rec.TotalPoints <= 0 { continue }
		rec.Percentage = rec.TotalPoints / sprintTotal * 100
		result = append(result, *rec)
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].TotalPoints > result[j].TotalPoints })
	return result
}
