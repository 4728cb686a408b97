package service

import (
	"context"

	"github.com/mtlprog/taskboard/internal/domain"
)

// TaskStore persists tasks together with their embedded sub-lists.
// Appends must be atomic per call so concurrent appends never lose entries.
type TaskStore interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, taskID string) (*domain.Task, error)
	List(ctx context.Context, filter domain.TaskFilter) ([]*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	AppendActivity(ctx context.Context, taskID string, activity domain.Activity) error
	AppendSubTask(ctx context.Context, taskID string, subTask domain.SubTask) error
	SetTrashed(ctx context.Context, taskID string, trashed bool) error
	Delete(ctx context.Context, taskID string) error
	DeleteTrashed(ctx context.Context) (int64, error)
	RestoreTrashed(ctx context.Context) (int64, error)
}

// NoticeStore persists notices.
type NoticeStore interface {
	Create(ctx context.Context, notice *domain.Notice) error
	ListByTask(ctx context.Context, taskID string) ([]*domain.Notice, error)
}

// UserStore gives read access to users.
type UserStore interface {
	GetByID(ctx context.Context, userID string) (*domain.User, error)
	GetByIDs(ctx context.Context, userIDs []string) ([]*domain.User, error)
	ListRecentActive(ctx context.Context, limit int) ([]*domain.User, error)
}
