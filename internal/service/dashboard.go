package service

import "github.com/mtlprog/taskboard/internal/domain"

// RecentWindow is the number of tasks and users shown in dashboard previews.
const RecentWindow = 10

// PriorityCount is the number of tasks with a given priority.
type PriorityCount struct {
	Name  domain.Priority
	Total int
}

// Summary aggregates a task collection for the dashboard.
type Summary struct {
	TotalTasks int
	Recent     []*domain.Task
	ByStage    map[domain.Stage]int
	ByPriority []PriorityCount
}

// Summarize groups tasks by stage and priority and keeps the first recent
// tasks of the given order. Priority groups appear in first-seen order.
func Summarize(tasks []*domain.Task, recent int) Summary {
	summary := Summary{
		TotalTasks: len(tasks),
		ByStage:    make(map[domain.Stage]int),
		ByPriority: []PriorityCount{},
	}

	index := make(map[domain.Priority]int)
	for _, task := range tasks {
		summary.ByStage[task.Stage]++

		i, ok := index[task.Priority]
		if !ok {
			i = len(summary.ByPriority)
			index[task.Priority] = i
			summary.ByPriority = append(summary.ByPriority, PriorityCount{Name: task.Priority})
		}
		summary.ByPriority[i].Total++
	}

	if recent > len(tasks) {
		recent = len(tasks)
	}
	if recent < 0 {
		recent = 0
	}
	summary.Recent = tasks[:recent]

	return summary
}
