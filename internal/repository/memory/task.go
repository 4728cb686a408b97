// Package memory provides in-process stores. They back the "memory" store
// mode and the service and handler tests.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/mtlprog/taskboard/internal/domain"
)

// TaskStore keeps tasks in a map guarded by a RWMutex.
// Tasks are copied on the way in and out so callers never share state with the store.
type TaskStore struct {
	mtx   sync.RWMutex
	tasks map[string]*domain.Task
}

// NewTaskStore creates an empty TaskStore.
func NewTaskStore() *TaskStore {
	return &TaskStore{tasks: make(map[string]*domain.Task)}
}

// Ping always succeeds.
func (s *TaskStore) Ping(ctx context.Context) error {
	return nil
}

// Create stores a new task.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.tasks[task.ID]; ok {
		return domain.ErrTaskExists
	}

	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now
	s.tasks[task.ID] = task.Clone()

	return nil
}

// GetByID retrieves a task by ID.
func (s *TaskStore) GetByID(ctx context.Context, taskID string) (*domain.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	task, ok := s.tasks[taskID]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return task.Clone(), nil
}

// List returns the tasks matching filter, newest first.
func (s *TaskStore) List(ctx context.Context, filter domain.TaskFilter) ([]*domain.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	tasks := make([]*domain.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		if !matches(task, filter) {
			continue
		}
		tasks = append(tasks, task.Clone())
	}

	slices.SortFunc(tasks, func(a, b *domain.Task) int {
		return strings.Compare(b.ID, a.ID)
	})

	if filter.Limit > 0 && len(tasks) > filter.Limit {
		tasks = tasks[:filter.Limit]
	}

	return tasks, nil
}

func matches(task *domain.Task, filter domain.TaskFilter) bool {
	switch filter.Trash {
	case domain.TrashActive:
		if task.IsTrashed {
			return false
		}
	case domain.TrashTrashed:
		if !task.IsTrashed {
			return false
		}
	}
	if filter.Stage != "" && task.Stage != filter.Stage {
		return false
	}
	if filter.Member != "" && !task.HasMember(filter.Member) {
		return false
	}
	return true
}

// Update overwrites the editable fields of a task.
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	return s.modify(task.ID, func(stored *domain.Task) {
		stored.Title = task.Title
		stored.Team = slices.Clone(task.Team)
		stored.Stage = task.Stage
		stored.Priority = task.Priority
		stored.Date = task.Date
		stored.Assets = slices.Clone(task.Assets)
	})
}

// AppendActivity appends an entry to a task's activity log.
func (s *TaskStore) AppendActivity(ctx context.Context, taskID string, activity domain.Activity) error {
	return s.modify(taskID, func(stored *domain.Task) {
		stored.Activities = append(stored.Activities, activity)
	})
}

// AppendSubTask appends a sub-task to a task.
func (s *TaskStore) AppendSubTask(ctx context.Context, taskID string, subTask domain.SubTask) error {
	return s.modify(taskID, func(stored *domain.Task) {
		stored.SubTasks = append(stored.SubTasks, subTask)
	})
}

// SetTrashed sets the trash flag of a task.
func (s *TaskStore) SetTrashed(ctx context.Context, taskID string, trashed bool) error {
	return s.modify(taskID, func(stored *domain.Task) {
		stored.IsTrashed = trashed
	})
}

// Delete permanently removes a task.
func (s *TaskStore) Delete(ctx context.Context, taskID string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.tasks[taskID]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(s.tasks, taskID)

	return nil
}

// DeleteTrashed permanently removes every trashed task.
func (s *TaskStore) DeleteTrashed(ctx context.Context) (int64, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	var count int64
	for id, task := range s.tasks {
		if task.IsTrashed {
			delete(s.tasks, id)
			count++
		}
	}

	return count, nil
}

// RestoreTrashed clears the trash flag of every trashed task.
func (s *TaskStore) RestoreTrashed(ctx context.Context) (int64, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	var count int64
	now := time.Now()
	for _, task := range s.tasks {
		if task.IsTrashed {
			task.IsTrashed = false
			task.UpdatedAt = now
			count++
		}
	}

	return count, nil
}

func (s *TaskStore) modify(taskID string, fn func(stored *domain.Task)) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	stored, ok := s.tasks[taskID]
	if !ok {
		return domain.ErrTaskNotFound
	}
	fn(stored)
	stored.UpdatedAt = time.Now()

	return nil
}
