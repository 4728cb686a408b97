package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mtlprog/taskboard/internal/domain"
)

var userColumns = []string{
	"id", "name", "title", "role", "email", "is_admin", "is_active", "created_at",
}

// UserRepository gives read access to users.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Title,
		&user.Role,
		&user.Email,
		&user.IsAdmin,
		&user.IsActive,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) queryUsers(ctx context.Context, qb sq.SelectBuilder) ([]*domain.User, error) {
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := []*domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return users, nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	query, args, err := psql.
		Select(userColumns...).
		From("users").
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	return scanUser(r.pool.QueryRow(ctx, query, args...))
}

// GetByIDs retrieves the users with the given IDs. Unknown IDs are skipped.
func (r *UserRepository) GetByIDs(ctx context.Context, userIDs []string) ([]*domain.User, error) {
	if len(userIDs) == 0 {
		return []*domain.User{}, nil
	}

	return r.queryUsers(ctx, psql.
		Select(userColumns...).
		From("users").
		Where(sq.Eq{"id": userIDs}))
}

// ListRecentActive returns up to limit active users, most recently created first.
func (r *UserRepository) ListRecentActive(ctx context.Context, limit int) ([]*domain.User, error) {
	qb := psql.
		Select(userColumns...).
		From("users").
		Where(sq.Eq{"is_active": true}).
		OrderBy("created_at DESC", "id DESC")
	if limit > 0 {
		qb = qb.Limit(uint64(limit))
	}

	return r.queryUsers(ctx, qb)
}

// Upsert creates or replaces a user. User management lives elsewhere; this is
// used to seed local databases and tests.
func (r *UserRepository) Upsert(ctx context.Context, user *domain.User) error {
	query, args, err := psql.
		Insert("users").
		Columns("id", "name", "title", "role", "email", "is_admin", "is_active").
		Values(user.ID, user.Name, user.Title, user.Role, user.Email, user.IsAdmin, user.IsActive).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, title = EXCLUDED.title, role = EXCLUDED.role,
			email = EXCLUDED.email, is_admin = EXCLUDED.is_admin, is_active = EXCLUDED.is_active
			RETURNING created_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&user.CreatedAt); err != nil {
		return fmt.Errorf("upsert user %s: %w", user.ID, err)
	}

	return nil
}
