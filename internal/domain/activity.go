package domain

import "time"

// ActivityType tags an activity log entry. Clients may post any value;
// the constants below are the ones the system and the UI know about.
type ActivityType string

const (
	ActivityAssigned   ActivityType = "assigned"
	ActivityStarted    ActivityType = "started"
	ActivityInProgress ActivityType = "in progress"
	ActivityBug        ActivityType = "bug"
	ActivityCompleted  ActivityType = "completed"
	ActivityCommented  ActivityType = "commented"
)

// ActivityTypes lists the well-known activity types in display order.
var ActivityTypes = []ActivityType{
	ActivityAssigned,
	ActivityStarted,
	ActivityInProgress,
	ActivityBug,
	ActivityCompleted,
	ActivityCommented,
}

// Activity is an append-only log entry owned by a task.
type Activity struct {
	Type     ActivityType `json:"type" bson:"type"`
	Activity string       `json:"activity" bson:"activity"`
	By       string       `json:"by" bson:"by"`
	Date     time.Time    `json:"date" bson:"date"`
}
