package domain

import (
	"slices"
	"strings"
	"time"
)

// Stage represents the workflow state of a task.
type Stage string

const (
	StageTodo       Stage = "todo"
	StageInProgress Stage = "in progress"
	StageCompleted  Stage = "completed"
)

// ParseStage lower-cases s and checks it against the allowed stages.
func ParseStage(s string) (Stage, error) {
	stage := Stage(strings.ToLower(strings.TrimSpace(s)))
	if !stage.IsValid() {
		return "", ErrInvalidStage
	}
	return stage, nil
}

// IsValid checks if the stage is one of the allowed values.
func (s Stage) IsValid() bool {
	switch s {
	case StageTodo, StageInProgress, StageCompleted:
		return true
	default:
		return false
	}
}

// Priority represents the priority level of a task.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityNormal Priority = "normal"
	PriorityLow    Priority = "low"
)

// ParsePriority lower-cases s and checks it against the allowed priorities.
func ParsePriority(s string) (Priority, error) {
	priority := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !priority.IsValid() {
		return "", ErrInvalidPriority
	}
	return priority, nil
}

// IsValid checks if the priority is one of the allowed values.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityNormal, PriorityLow:
		return true
	default:
		return false
	}
}

// TrashFilter selects tasks by their trash flag.
type TrashFilter string

const (
	TrashActive  TrashFilter = "active"
	TrashTrashed TrashFilter = "trashed"
	TrashAll     TrashFilter = "all"
)

// DuplicateSuffix is appended to the title of a duplicated task.
const DuplicateSuffix = " - Duplicate"

// SubTask is a checklist item embedded in a task.
type SubTask struct {
	Title string `json:"title" bson:"title"`
	Tag   string `json:"tag" bson:"tag"`
	Date  string `json:"date" bson:"date"`
}

// Task represents a unit of work tracked for a team.
type Task struct {
	ID         string
	Title      string
	Team       []string
	Stage      Stage
	Priority   Priority
	Date       time.Time
	Assets     []Asset
	SubTasks   []SubTask
	Activities []Activity
	IsTrashed  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HasMember reports whether userID is on the task's team.
func (t *Task) HasMember(userID string) bool {
	return slices.Contains(t.Team, userID)
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	c.Team = slices.Clone(t.Team)
	c.Assets = slices.Clone(t.Assets)
	c.SubTasks = slices.Clone(t.SubTasks)
	c.Activities = slices.Clone(t.Activities)
	return &c
}

// TaskFilter selects tasks for listing. Results are always ordered newest first.
type TaskFilter struct {
	Trash  TrashFilter
	Stage  Stage  // empty means any stage
	Member string // empty means any team
	Limit  int    // zero means no limit
}
