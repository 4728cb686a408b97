package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mtlprog/taskboard/internal/domain"
)

// NoticeRepository handles database operations for notices.
type NoticeRepository struct {
	pool *pgxpool.Pool
}

// NewNoticeRepository creates a new NoticeRepository.
func NewNoticeRepository(pool *pgxpool.Pool) *NoticeRepository {
	return &NoticeRepository{pool: pool}
}

// Create creates a new notice.
func (r *NoticeRepository) Create(ctx context.Context, notice *domain.Notice) error {
	team := notice.Team
	if team == nil {
		team = []string{}
	}

	query, args, err := psql.
		Insert("notices").
		Columns("id", "team", "text", "task_id").
		Values(notice.ID, team, notice.Text, notice.TaskID).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&notice.CreatedAt)
	if err != nil {
		return fmt.Errorf("create notice: %w", err)
	}

	return nil
}

// ListByTask retrieves all notices for a task in creation order.
func (r *NoticeRepository) ListByTask(ctx context.Context, taskID string) ([]*domain.Notice, error) {
	query, args, err := psql.
		Select("id", "team", "text", "task_id", "created_at").
		From("notices").
		Where(sq.Eq{"task_id": taskID}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query notices: %w", err)
	}
	defer rows.Close()

	var notices []*domain.Notice
	for rows.Next() {
		var notice domain.Notice
		if err := rows.Scan(
			&notice.ID,
			&notice.Team,
			&notice.Text,
			&notice.TaskID,
			&notice.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan notice: %w", err)
		}
		notices = append(notices, &notice)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notices: %w", err)
	}

	return notices, nil
}
