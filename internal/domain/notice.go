package domain

import "time"

// Notice is a notification shown to a task's team. Notices are written once
// per create or duplicate event and never mutated.
type Notice struct {
	ID        string
	Team      []string
	Text      string
	TaskID    string
	CreatedAt time.Time
}
