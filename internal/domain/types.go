package domain

import (
	"strconv"
	"time"
)

// Status categories as the Jira API reports them.
const (
	CategoryToDo       = "To Do"
	CategoryInProgress = "In Progress"
	CategoryDone       = "Done"
)

// SprintRef is one sprint membership of an issue, regardless of which of the
// three field shapes it arrived in.
type SprintRef struct {
	ID    string
	Name  string
	State string
}

type Issue struct {
	Key            string
	Type           string
	Summary        string
	Status         string
	StatusCategory string
	ParentKey      string
	ParentSummary  string
	Points         *float64 // nil when neither story-point field is set
	Sprints        []SprintRef

	// Stamped when the issue was fetched through a sprint scope.
	SprintID   string
	SprintName string
}

type Worklog struct {
	IssueKey  string
	IssueType string
	Summary   string
	Status    string
	Author    string
	TimeSpent string
	Hours     float64
	Started   string // calendar date in the worklog's own offset, YYYY-MM-DD
	Sprint    string
	Comment   string
}

type Comment struct {
	IssueKey      string
	Summary       string
	Status        string
	ParentSummary string
	IssueType     string
	Created       time.Time // UTC
	Author        string
	Body          string
}

type EpicProgress struct {
	EpicKey          string
	EpicName         string
	DonePoints       float64
	InProgressPoints float64
	ToDoPoints       float64
	TotalPoints      float64
	Percentage       float64
}

type SprintComposition struct {
	EpicKey     string
	EpicName    string
	TotalPoints float64
	Percentage  float64
}

// SprintIssues is one sprint's issue batch with the sprint identity it was
// fetched under.
type SprintIssues struct {
	SprintID   string
	SprintName string
	Issues     []Issue
}

// PointsOrZero applies the aggregation policy: an absent estimate counts as 0.
func (i Issue) PointsOrZero() float64 {
	if i.Points == nil { return 0 }
	return *i.Points
}

// PointsDisplay applies the display policy: an absent estimate renders as N/A.
func (i Issue) PointsDisplay() string {
	if i.Points == nil { return "N/A" }
	return trimFloat(*i.Points)
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
