package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/mtlprog/taskboard/internal/domain"
)

// UserStore keeps users in memory. Users are added with Add; the service only reads them.
type UserStore struct {
	mtx   sync.RWMutex
	users map[string]domain.User
}

// NewUserStore creates a UserStore holding the given users.
func NewUserStore(users ...domain.User) *UserStore {
	s := &UserStore{users: make(map[string]domain.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

// Add stores or replaces a user.
func (s *UserStore) Add(user domain.User) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.users[user.ID] = user
}

// GetByID retrieves a user by ID.
func (s *UserStore) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

// GetByIDs retrieves the users with the given IDs. Unknown IDs are skipped.
func (s *UserStore) GetByIDs(ctx context.Context, userIDs []string) ([]*domain.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	users := make([]*domain.User, 0, len(userIDs))
	for _, id := range userIDs {
		if user, ok := s.users[id]; ok {
			users = append(users, &user)
		}
	}
	return users, nil
}

// ListRecentActive returns up to limit active users, most recently created first.
func (s *UserStore) ListRecentActive(ctx context.Context, limit int) ([]*domain.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	users := make([]*domain.User, 0, len(s.users))
	for _, user := range s.users {
		if user.IsActive {
			users = append(users, &user)
		}
	}

	slices.SortFunc(users, func(a, b *domain.User) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})

	if limit > 0 && len(users) > limit {
		users = users[:limit]
	}
	return users, nil
}
