package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mtlprog/taskboard/internal/asset"
	"github.com/mtlprog/taskboard/internal/domain"
)

// DeleteRestoreAction selects what DeleteRestoreTask does.
type DeleteRestoreAction string

const (
	ActionDelete     DeleteRestoreAction = "delete"
	ActionDeleteAll  DeleteRestoreAction = "deleteAll"
	ActionRestore    DeleteRestoreAction = "restore"
	ActionRestoreAll DeleteRestoreAction = "restoreAll"
)

// CreateTaskParams holds the input for CreateTask.
// Stage and Priority are accepted in any letter case.
type CreateTaskParams struct {
	Title    string
	Team     []string
	Stage    string
	Priority string
	Date     time.Time
	Assets   []domain.RawAsset
}

// UpdateTaskParams holds the input for UpdateTask. Every field overwrites the stored value.
type UpdateTaskParams struct {
	Title    string
	Team     []string
	Stage    string
	Priority string
	Date     time.Time
	Assets   []domain.RawAsset
}

// PostActivityParams holds the input for PostActivity.
type PostActivityParams struct {
	Type     string
	Activity string
}

// CreateSubTaskParams holds the input for CreateSubTask.
type CreateSubTaskParams struct {
	Title string
	Tag   string
	Date  string
}

// ListTasksParams holds the input for ListTasks.
// IsTrashed is "" for active tasks, "true" for trashed tasks and "all" for both.
type ListTasksParams struct {
	IsTrashed string
	Stage     string
}

// TaskDetails is a task with the users it references.
type TaskDetails struct {
	Task  *domain.Task
	Users map[string]*domain.User
}

// TaskList is a list of tasks with the users they reference.
type TaskList struct {
	Tasks []*domain.Task
	Users map[string]*domain.User
}

// Dashboard is the summary shown on the caller's dashboard.
type Dashboard struct {
	Summary
	RecentUsers []*domain.User
	Users       map[string]*domain.User
}

// TaskService coordinates task operations, notices and dashboard queries.
type TaskService struct {
	taskStore   TaskStore
	noticeStore NoticeStore
	userStore   UserStore
	now         func() time.Time
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskStore TaskStore, noticeStore NoticeStore, userStore UserStore) *TaskService {
	return &TaskService{
		taskStore:   taskStore,
		noticeStore: noticeStore,
		userStore:   userStore,
		now:         time.Now,
	}
}

// newID returns a time-ordered id, so ordering by id is ordering by creation.
func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return id.String(), nil
}

// assignedActivity is the first log entry of every new task.
func (s *TaskService) assignedActivity(caller *domain.Caller, text string) domain.Activity {
	return domain.Activity{
		Type:     domain.ActivityAssigned,
		Activity: text,
		By:       caller.ActorID(),
		Date:     s.now(),
	}
}

// createNotice persists a notice for the team of a task.
func (s *TaskService) createNotice(ctx context.Context, team []string, text, taskID string) error {
	noticeID, err := newID()
	if err != nil {
		return err
	}

	notice := &domain.Notice{
		ID:     noticeID,
		Team:   slices.Clone(team),
		Text:   text,
		TaskID: taskID,
	}
	if err := s.noticeStore.Create(ctx, notice); err != nil {
		return fmt.Errorf("create notice for task %s: %w", taskID, err)
	}
	return nil
}

// CreateTask creates a task, logs its assignment and notifies the team when
// the caller is identified.
func (s *TaskService) CreateTask(
	ctx context.Context,
	caller *domain.Caller,
	params CreateTaskParams,
) (*domain.Task, error) {
	if strings.TrimSpace(params.Title) == "" || params.Stage == "" ||
		params.Priority == "" || params.Date.IsZero() {
		return nil, domain.ErrMissingFields
	}

	stage, err := domain.ParseStage(params.Stage)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, params.Stage)
	}
	priority, err := domain.ParsePriority(params.Priority)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, params.Priority)
	}

	taskID, err := newID()
	if err != nil {
		return nil, err
	}

	team := params.Team
	if team == nil {
		team = []string{}
	}

	text := ComposeAssignmentText(len(team), params.Priority, params.Date)

	task := &domain.Task{
		ID:         taskID,
		Title:      params.Title,
		Team:       team,
		Stage:      stage,
		Priority:   priority,
		Date:       params.Date,
		Assets:     asset.Normalize(params.Assets, s.now()),
		SubTasks:   []domain.SubTask{},
		Activities: []domain.Activity{s.assignedActivity(caller, text)},
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	slog.Info("task created",
		"task_id", task.ID,
		"actor_id", caller.ActorID(),
		"team_size", len(team),
	)

	if caller == nil {
		return task, nil
	}

	if err := s.createNotice(ctx, team, text, task.ID); err != nil {
		slog.Error("task created without notice", "task_id", task.ID, "error", err)
		return nil, err
	}

	return task, nil
}

// DuplicateTask copies a task under a new id and notifies the source task's team.
func (s *TaskService) DuplicateTask(
	ctx context.Context,
	caller *domain.Caller,
	taskID string,
) (*domain.Task, error) {
	if taskID == "" {
		return nil, domain.ErrMissingTaskID
	}

	source, err := s.taskStore.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	duplicateID, err := newID()
	if err != nil {
		return nil, err
	}

	text := ComposeAssignmentText(len(source.Team), string(source.Priority), source.Date)

	duplicate := source.Clone()
	duplicate.ID = duplicateID
	duplicate.Title = source.Title + domain.DuplicateSuffix
	duplicate.IsTrashed = false
	duplicate.Activities = []domain.Activity{s.assignedActivity(caller, text)}
	if duplicate.Team == nil {
		duplicate.Team = []string{}
	}
	if duplicate.SubTasks == nil {
		duplicate.SubTasks = []domain.SubTask{}
	}
	if duplicate.Assets == nil {
		duplicate.Assets = []domain.Asset{}
	}

	if err := s.taskStore.Create(ctx, duplicate); err != nil {
		return nil, fmt.Errorf("create duplicate of task %s: %w", taskID, err)
	}

	slog.Info("task duplicated",
		"task_id", duplicate.ID,
		"source_task_id", source.ID,
		"actor_id", caller.ActorID(),
	)

	if err := s.createNotice(ctx, source.Team, text, duplicate.ID); err != nil {
		slog.Error("task duplicated without notice", "task_id", duplicate.ID, "error", err)
		return nil, err
	}

	return duplicate, nil
}

// PostActivity appends a caller-authored entry to a task's activity log.
func (s *TaskService) PostActivity(
	ctx context.Context,
	caller *domain.Caller,
	taskID string,
	params PostActivityParams,
) error {
	if caller == nil {
		return domain.ErrUnauthenticated
	}
	if taskID == "" {
		return domain.ErrMissingTaskID
	}

	activity := domain.Activity{
		Type:     domain.ActivityType(params.Type),
		Activity: params.Activity,
		By:       caller.UserID,
		Date:     s.now(),
	}

	if err := s.taskStore.AppendActivity(ctx, taskID, activity); err != nil {
		return err
	}

	slog.Info("task activity posted",
		"task_id", taskID,
		"actor_id", caller.UserID,
		"type", params.Type,
	)

	return nil
}

// DashboardStatistics summarizes the tasks visible to the caller. Admins see
// every task and the most recently created active users; other users see
// only tasks they are on the team of.
func (s *TaskService) DashboardStatistics(ctx context.Context, caller *domain.Caller) (*Dashboard, error) {
	if caller == nil {
		return nil, domain.ErrUnauthenticated
	}

	filter := domain.TaskFilter{Trash: domain.TrashActive}
	if !caller.IsAdmin {
		filter.Member = caller.UserID
	}

	tasks, err := s.taskStore.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list dashboard tasks: %w", err)
	}

	dashboard := &Dashboard{
		Summary:     Summarize(tasks, RecentWindow),
		RecentUsers: []*domain.User{},
	}

	if caller.IsAdmin {
		dashboard.RecentUsers, err = s.userStore.ListRecentActive(ctx, RecentWindow)
		if err != nil {
			return nil, fmt.Errorf("list recent users: %w", err)
		}
	}

	dashboard.Users, err = s.resolveUsers(ctx, teamIDs(dashboard.Recent))
	if err != nil {
		return nil, err
	}

	return dashboard, nil
}

// ListTasks lists tasks newest first, filtered by trash flag and stage.
func (s *TaskService) ListTasks(
	ctx context.Context,
	caller *domain.Caller,
	params ListTasksParams,
) (*TaskList, error) {
	filter := domain.TaskFilter{}

	switch params.IsTrashed {
	case "":
		filter.Trash = domain.TrashActive
	case "true":
		filter.Trash = domain.TrashTrashed
	case "all":
		filter.Trash = domain.TrashAll
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidTrashFilter, params.IsTrashed)
	}

	if params.Stage != "" {
		stage, err := domain.ParseStage(params.Stage)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", err, params.Stage)
		}
		filter.Stage = stage
	}

	tasks, err := s.taskStore.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	users, err := s.resolveUsers(ctx, teamIDs(tasks))
	if err != nil {
		return nil, err
	}

	slog.Debug("tasks listed",
		"actor_id", caller.ActorID(),
		"trash", filter.Trash,
		"stage", filter.Stage,
		"count", len(tasks),
	)

	return &TaskList{Tasks: tasks, Users: users}, nil
}

// GetTask returns a task with its team and activity authors resolved.
func (s *TaskService) GetTask(ctx context.Context, caller *domain.Caller, taskID string) (*TaskDetails, error) {
	if taskID == "" {
		return nil, domain.ErrMissingTaskID
	}

	task, err := s.taskStore.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	ids := slices.Clone(task.Team)
	for _, activity := range task.Activities {
		ids = append(ids, activity.By)
	}

	users, err := s.resolveUsers(ctx, ids)
	if err != nil {
		return nil, err
	}

	return &TaskDetails{Task: task, Users: users}, nil
}

// CreateSubTask appends a sub-task to a task.
func (s *TaskService) CreateSubTask(
	ctx context.Context,
	caller *domain.Caller,
	taskID string,
	params CreateSubTaskParams,
) error {
	if taskID == "" {
		return domain.ErrMissingTaskID
	}

	subTask := domain.SubTask{
		Title: params.Title,
		Tag:   params.Tag,
		Date:  params.Date,
	}

	if err := s.taskStore.AppendSubTask(ctx, taskID, subTask); err != nil {
		return err
	}

	slog.Info("sub-task added", "task_id", taskID, "actor_id", caller.ActorID())

	return nil
}

// UpdateTask overwrites a task's title, date, priority, assets, stage and team.
// It does not log an activity and sends no notice.
func (s *TaskService) UpdateTask(
	ctx context.Context,
	caller *domain.Caller,
	taskID string,
	params UpdateTaskParams,
) (*domain.Task, error) {
	if taskID == "" {
		return nil, domain.ErrMissingTaskID
	}
	if strings.TrimSpace(params.Title) == "" || params.Stage == "" ||
		params.Priority == "" || params.Date.IsZero() {
		return nil, domain.ErrMissingFields
	}

	stage, err := domain.ParseStage(params.Stage)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, params.Stage)
	}
	priority, err := domain.ParsePriority(params.Priority)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, params.Priority)
	}

	task, err := s.taskStore.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	task.Title = params.Title
	task.Date = params.Date
	task.Priority = priority
	task.Stage = stage
	task.Assets = asset.Normalize(params.Assets, s.now())
	task.Team = params.Team
	if task.Team == nil {
		task.Team = []string{}
	}

	if err := s.taskStore.Update(ctx, task); err != nil {
		return nil, err
	}

	slog.Info("task updated", "task_id", taskID, "actor_id", caller.ActorID())

	return task, nil
}

// TrashTask moves a task to the trash. Trashing a trashed task is a no-op.
func (s *TaskService) TrashTask(ctx context.Context, caller *domain.Caller, taskID string) error {
	if taskID == "" {
		return domain.ErrMissingTaskID
	}

	if err := s.taskStore.SetTrashed(ctx, taskID, true); err != nil {
		return err
	}

	slog.Info("task trashed", "task_id", taskID, "actor_id", caller.ActorID())

	return nil
}

// DeleteRestoreTask permanently deletes or restores one task or every trashed task.
// It returns the number of tasks affected.
func (s *TaskService) DeleteRestoreTask(
	ctx context.Context,
	caller *domain.Caller,
	taskID string,
	action DeleteRestoreAction,
) (int64, error) {
	var (
		affected int64 = 1
		err      error
	)

	switch action {
	case ActionDelete:
		if taskID == "" {
			return 0, domain.ErrMissingTaskID
		}
		err = s.taskStore.Delete(ctx, taskID)
	case ActionDeleteAll:
		affected, err = s.taskStore.DeleteTrashed(ctx)
	case ActionRestore:
		if taskID == "" {
			return 0, domain.ErrMissingTaskID
		}
		err = s.taskStore.SetTrashed(ctx, taskID, false)
	case ActionRestoreAll:
		affected, err = s.taskStore.RestoreTrashed(ctx)
	default:
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidAction, action)
	}
	if err != nil {
		return 0, err
	}

	slog.Info("delete-restore performed",
		"action", action,
		"task_id", taskID,
		"actor_id", caller.ActorID(),
		"affected", affected,
	)

	return affected, nil
}

// resolveUsers loads the users with the given ids, skipping duplicates and
// ids that do not resolve.
func (s *TaskService) resolveUsers(ctx context.Context, ids []string) (map[string]*domain.User, error) {
	unique := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" || id == domain.AnonymousUserID || seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}

	users := make(map[string]*domain.User, len(unique))
	if len(unique) == 0 {
		return users, nil
	}

	found, err := s.userStore.GetByIDs(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("resolve users: %w", err)
	}
	for _, user := range found {
		users[user.ID] = user
	}

	return users, nil
}

// teamIDs collects the team member ids of the given tasks.
func teamIDs(tasks []*domain.Task) []string {
	var ids []string
	for _, task := range tasks {
		ids = append(ids, task.Team...)
	}
	return ids
}
