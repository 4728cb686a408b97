package service_test

import (
	"testing"

	"github.com/mtlprog/taskboard/internal/domain"
	"github.com/mtlprog/taskboard/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func task(id string, stage domain.Stage, priority domain.Priority) *domain.Task {
	return &domain.Task{ID: id, Stage: stage, Priority: priority}
}

func TestSummarize(t *testing.T) {
	tasks := []*domain.Task{
		task("5", domain.StageTodo, domain.PriorityLow),
		task("4", domain.StageCompleted, domain.PriorityHigh),
		task("3", domain.StageTodo, domain.PriorityLow),
		task("2", domain.StageInProgress, domain.PriorityNormal),
		task("1", domain.StageTodo, domain.PriorityHigh),
	}

	summary := service.Summarize(tasks, 3)

	assert.Equal(t, 5, summary.TotalTasks)
	assert.Equal(t, map[domain.Stage]int{
		domain.StageTodo:       3,
		domain.StageCompleted:  1,
		domain.StageInProgress: 1,
	}, summary.ByStage)
	assert.Equal(t, []service.PriorityCount{
		{Name: domain.PriorityLow, Total: 2},
		{Name: domain.PriorityHigh, Total: 2},
		{Name: domain.PriorityNormal, Total: 1},
	}, summary.ByPriority)

	require.Len(t, summary.Recent, 3)
	assert.Equal(t, "5", summary.Recent[0].ID)
	assert.Equal(t, "3", summary.Recent[2].ID)
}

func TestSummarize_Empty(t *testing.T) {
	summary := service.Summarize(nil, service.RecentWindow)

	assert.Zero(t, summary.TotalTasks)
	assert.Empty(t, summary.ByStage)
	assert.NotNil(t, summary.ByPriority)
	assert.Empty(t, summary.ByPriority)
	assert.Empty(t, summary.Recent)
}

func TestSummarize_RecentWindowLargerThanTasks(t *testing.T) {
	tasks := []*domain.Task{task("1", domain.StageTodo, domain.PriorityLow)}

	summary := service.Summarize(tasks, service.RecentWindow)
	assert.Len(t, summary.Recent, 1)
}
