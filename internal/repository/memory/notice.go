package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/mtlprog/taskboard/internal/domain"
)

// NoticeStore keeps notices in insertion order.
type NoticeStore struct {
	mtx     sync.RWMutex
	notices []domain.Notice
}

// NewNoticeStore creates an empty NoticeStore.
func NewNoticeStore() *NoticeStore {
	return &NoticeStore{}
}

// Create stores a notice.
func (s *NoticeStore) Create(ctx context.Context, notice *domain.Notice) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	notice.CreatedAt = time.Now()
	stored := *notice
	stored.Team = slices.Clone(notice.Team)
	s.notices = append(s.notices, stored)

	return nil
}

// ListByTask returns the notices of a task in creation order.
func (s *NoticeStore) ListByTask(ctx context.Context, taskID string) ([]*domain.Notice, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	var notices []*domain.Notice
	for _, notice := range s.notices {
		if notice.TaskID == taskID {
			n := notice
			n.Team = slices.Clone(notice.Team)
			notices = append(notices, &n)
		}
	}

	return notices, nil
}
