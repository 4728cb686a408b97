package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mtlprog/taskboard/internal/asset"
	"github.com/mtlprog/taskboard/internal/domain"
)

// taskColumns is the shared list of columns for task queries.
var taskColumns = []string{
	"id", "title", "team", "stage", "priority", "date",
	"assets", "sub_tasks", "activities", "is_trashed",
	"created_at", "updated_at",
}

// TaskRepository handles database operations for tasks.
// Assets, sub-tasks and activities are stored as JSONB arrays on the task row.
type TaskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

// scanTask scans a single row into a Task struct.
// Stored assets go through normalization so rows written by older clients read back canonical.
func scanTask(row pgx.Row) (*domain.Task, error) {
	var task domain.Task
	var assets, subTasks, activities []byte
	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Team,
		&task.Stage,
		&task.Priority,
		&task.Date,
		&assets,
		&subTasks,
		&activities,
		&task.IsTrashed,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}

	var rawAssets []domain.RawAsset
	if err := unmarshalList(assets, &rawAssets); err != nil {
		return nil, fmt.Errorf("decode assets of task %s: %w", task.ID, err)
	}
	task.Assets = asset.Normalize(rawAssets, task.UpdatedAt)

	if err := unmarshalList(subTasks, &task.SubTasks); err != nil {
		return nil, fmt.Errorf("decode sub-tasks of task %s: %w", task.ID, err)
	}
	if err := unmarshalList(activities, &task.Activities); err != nil {
		return nil, fmt.Errorf("decode activities of task %s: %w", task.ID, err)
	}
	if task.Team == nil {
		task.Team = []string{}
	}

	return &task, nil
}

// scanTasks scans multiple rows into a slice of Task structs.
func scanTasks(rows pgx.Rows) ([]*domain.Task, error) {
	defer rows.Close()

	tasks := []*domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return tasks, nil
}

// Ping checks the connection to the database.
func (r *TaskRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Create inserts a new task. CreatedAt and UpdatedAt are populated from the database.
func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	team := task.Team
	if team == nil {
		team = []string{}
	}

	assets, err := jsonb(nonNil(task.Assets))
	if err != nil {
		return fmt.Errorf("encode assets: %w", err)
	}
	subTasks, err := jsonb(nonNil(task.SubTasks))
	if err != nil {
		return fmt.Errorf("encode sub-tasks: %w", err)
	}
	activities, err := jsonb(nonNil(task.Activities))
	if err != nil {
		return fmt.Errorf("encode activities: %w", err)
	}

	query, args, err := psql.
		Insert("tasks").
		Columns(
			"id", "title", "team", "stage", "priority", "date",
			"assets", "sub_tasks", "activities", "is_trashed",
		).
		Values(
			task.ID,
			task.Title,
			team,
			task.Stage,
			task.Priority,
			task.Date,
			assets,
			subTasks,
			activities,
			task.IsTrashed,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build Create query for task: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrTaskExists
		}
		return fmt.Errorf("create task: %w", err)
	}

	return nil
}

// GetByID retrieves a task by ID.
func (r *TaskRepository) GetByID(ctx context.Context, taskID string) (*domain.Task, error) {
	query, args, err := psql.
		Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"id": taskID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByID query for task %s: %w", taskID, err)
	}

	return scanTask(r.pool.QueryRow(ctx, query, args...))
}

// List retrieves the tasks matching filter, newest first.
func (r *TaskRepository) List(ctx context.Context, filter domain.TaskFilter) ([]*domain.Task, error) {
	qb := psql.Select(taskColumns...).From("tasks")

	switch filter.Trash {
	case domain.TrashActive:
		qb = qb.Where(sq.Eq{"is_trashed": false})
	case domain.TrashTrashed:
		qb = qb.Where(sq.Eq{"is_trashed": true})
	}

	if filter.Stage != "" {
		qb = qb.Where(sq.Eq{"stage": filter.Stage})
	}

	if filter.Member != "" {
		qb = qb.Where("? = ANY(team)", filter.Member)
	}

	qb = qb.OrderBy("id DESC")

	if filter.Limit > 0 {
		qb = qb.Limit(uint64(filter.Limit))
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build List query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}

	return scanTasks(rows)
}

// Update overwrites the editable fields of a task.
func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) error {
	team := task.Team
	if team == nil {
		team = []string{}
	}

	assets, err := jsonb(nonNil(task.Assets))
	if err != nil {
		return fmt.Errorf("encode assets: %w", err)
	}

	return r.update(ctx, task.ID, "Update", map[string]any{
		"title":    task.Title,
		"team":     team,
		"stage":    task.Stage,
		"priority": task.Priority,
		"date":     task.Date,
		"assets":   assets,
	})
}

// AppendActivity appends an entry to a task's activity log in a single statement.
func (r *TaskRepository) AppendActivity(ctx context.Context, taskID string, activity domain.Activity) error {
	return r.appendItem(ctx, taskID, "activities", activity)
}

// AppendSubTask appends a sub-task in a single statement.
func (r *TaskRepository) AppendSubTask(ctx context.Context, taskID string, subTask domain.SubTask) error {
	return r.appendItem(ctx, taskID, "sub_tasks", subTask)
}

func (r *TaskRepository) appendItem(ctx context.Context, taskID, column string, item any) error {
	expr, err := jsonbAppend(column, item)
	if err != nil {
		return fmt.Errorf("encode %s entry: %w", column, err)
	}

	return r.update(ctx, taskID, "append "+column, map[string]any{column: expr})
}

// SetTrashed sets the trash flag of a task.
func (r *TaskRepository) SetTrashed(ctx context.Context, taskID string, trashed bool) error {
	return r.update(ctx, taskID, "SetTrashed", map[string]any{"is_trashed": trashed})
}

func (r *TaskRepository) update(ctx context.Context, taskID, op string, set map[string]any) error {
	query, args, err := psql.
		Update("tasks").
		SetMap(set).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": taskID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build %s query for task %s: %w", op, taskID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s task %s: %w", op, taskID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}

	return nil
}

// Delete permanently removes a task.
func (r *TaskRepository) Delete(ctx context.Context, taskID string) error {
	query, args, err := psql.
		Delete("tasks").
		Where(sq.Eq{"id": taskID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build Delete query for task %s: %w", taskID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete task %s: %w", taskID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}

	return nil
}

// DeleteTrashed permanently removes every trashed task.
func (r *TaskRepository) DeleteTrashed(ctx context.Context) (int64, error) {
	query, args, err := psql.
		Delete("tasks").
		Where(sq.Eq{"is_trashed": true}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build DeleteTrashed query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete trashed tasks: %w", err)
	}

	return tag.RowsAffected(), nil
}

// RestoreTrashed clears the trash flag of every trashed task.
func (r *TaskRepository) RestoreTrashed(ctx context.Context) (int64, error) {
	query, args, err := psql.
		Update("tasks").
		Set("is_trashed", false).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"is_trashed": true}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build RestoreTrashed query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("restore trashed tasks: %w", err)
	}

	return tag.RowsAffected(), nil
}
