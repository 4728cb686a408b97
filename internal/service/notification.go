package service

import (
	"fmt"
	"strings"
	"time"
)

// noticeDateLayout renders dates like "Mon Jan 01 2024".
const noticeDateLayout = "Mon Jan 02 2006"

// ComposeAssignmentText builds the notice sent to a task's team when the task
// is assigned. The wording is shown verbatim to users.
func ComposeAssignmentText(teamSize int, priority string, date time.Time) string {
	var b strings.Builder
	b.WriteString("New task has been assigned to you")
	if teamSize > 1 {
		fmt.Fprintf(&b, " and %d others.", teamSize-1)
	}
	fmt.Fprintf(&b,
		" The task priority is set a %s priority, so check and act accordingly. The task date is %s. Thank you!!!",
		priority, date.UTC().Format(noticeDateLayout),
	)
	return b.String()
}
