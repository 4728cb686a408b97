package handler

import (
	"net/http"

	"github.com/mtlprog/taskboard/internal/handler/dto"
	"github.com/mtlprog/taskboard/internal/middleware"
	"github.com/mtlprog/taskboard/internal/service"
)

// handleCreateTask creates a new task.
// @Summary Create a new task
// @Description Creates a task, logs its assignment and, for identified callers, notifies the team.
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body dto.CreateTaskRequest true "Task creation request"
// @Success 200 {object} dto.TaskEnvelope
// @Failure 400 {object} dto.ErrorResponse
// @Security CookieAuth
// @Router /task/create [post]
func (h *Handler) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.CreateTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	date, err := dto.ParseDate(req.Date)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	task, err := h.taskService.CreateTask(ctx, middleware.CallerFromContext(ctx), service.CreateTaskParams{
		Title:    req.Title,
		Team:     req.Team,
		Stage:    req.Stage,
		Priority: req.Priority,
		Date:     date,
		Assets:   req.Assets,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.TaskEnvelope{
		Status:  true,
		Message: "Task created successfully.",
		Task:    dto.ToTaskResponse(task, nil),
	})
}

// handleDuplicateTask copies a task.
// @Summary Duplicate a task
// @Description Copies a task under a new id with a fresh activity log and notifies the team.
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} dto.TaskEnvelope
// @Failure 404 {object} dto.ErrorResponse
// @Security CookieAuth
// @Router /task/duplicate/{id} [post]
func (h *Handler) handleDuplicateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	taskID, ok := extractTaskID(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.DuplicateTask(ctx, middleware.CallerFromContext(ctx), taskID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.TaskEnvelope{
		Status:  true,
		Message: "Task duplicated successfully.",
		Task:    dto.ToTaskResponse(task, nil),
	})
}

// handlePostActivity appends an activity entry.
// @Summary Post task activity
// @Description Appends an entry authored by the caller to the task's activity log.
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.PostActivityRequest true "Activity"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security CookieAuth
// @Router /task/activity/{id} [post]
func (h *Handler) handlePostActivity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	taskID, ok := extractTaskID(w, r)
	if !ok {
		return
	}

	var req dto.PostActivityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.taskService.PostActivity(ctx, middleware.CallerFromContext(ctx), taskID, service.PostActivityParams{
		Type:     req.Type,
		Activity: req.Activity,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewMessageResponse("Activity posted successfully."))
}

// handleListTasks lists tasks.
// @Summary List tasks
// @Description Lists tasks newest first. isTrashed selects active (default), trashed ("true") or all ("all") tasks.
// @Tags tasks
// @Produce json
// @Param stage query string false "Stage filter" Enums(todo, in progress, completed)
// @Param isTrashed query string false "Trash filter" Enums(true, all)
// @Success 200 {object} dto.TasksResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /task [get]
func (h *Handler) handleListTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	list, err := h.taskService.ListTasks(ctx, middleware.CallerFromContext(ctx), service.ListTasksParams{
		IsTrashed: query.Get("isTrashed"),
		Stage:     query.Get("stage"),
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.TasksResponse{
		Status: true,
		Tasks:  dto.ToTaskResponses(list.Tasks, list.Users),
	})
}

// handleGetTask retrieves a task.
// @Summary Get task details
// @Description Returns a task with its team and activity authors resolved.
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} dto.TaskEnvelope
// @Failure 404 {object} dto.ErrorResponse
// @Security CookieAuth
// @Router /task/{id} [get]
func (h *Handler) handleGetTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	taskID, ok := extractTaskID(w, r)
	if !ok {
		return
	}

	details, err := h.taskService.GetTask(ctx, middleware.CallerFromContext(ctx), taskID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.TaskEnvelope{
		Status: true,
		Task:   dto.ToTaskResponse(details.Task, details.Users),
	})
}

// handleCreateSubTask appends a sub-task.
// @Summary Add a sub-task
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.CreateSubTaskRequest true "Sub-task"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /task/create-subtask/{id} [put]
func (h *Handler) handleCreateSubTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	taskID, ok := extractTaskID(w, r)
	if !ok {
		return
	}

	var req dto.CreateSubTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.taskService.CreateSubTask(ctx, middleware.CallerFromContext(ctx), taskID, service.CreateSubTaskParams{
		Title: req.Title,
		Tag:   req.Tag,
		Date:  req.Date,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewMessageResponse("SubTask added successfully."))
}

// handleUpdateTask overwrites a task.
// @Summary Update a task
// @Description Overwrites title, date, priority, assets, stage and team.
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.UpdateTaskRequest true "Task fields"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /task/update/{id} [put]
func (h *Handler) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	taskID, ok := extractTaskID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	date, err := dto.ParseDate(req.Date)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	_, err = h.taskService.UpdateTask(ctx, middleware.CallerFromContext(ctx), taskID, service.UpdateTaskParams{
		Title:    req.Title,
		Team:     req.Team,
		Stage:    req.Stage,
		Priority: req.Priority,
		Date:     date,
		Assets:   req.Assets,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewMessageResponse("Task updated successfully."))
}

// handleTrashTask moves a task to the trash.
// @Summary Trash a task
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /task/{id} [put]
func (h *Handler) handleTrashTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	taskID, ok := extractTaskID(w, r)
	if !ok {
		return
	}

	if err := h.taskService.TrashTask(ctx, middleware.CallerFromContext(ctx), taskID); err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewMessageResponse("Task trashed successfully."))
}

// handleDeleteRestoreTask deletes or restores tasks.
// @Summary Delete or restore tasks
// @Description Permanently deletes or restores one task, or every trashed task. The id is ignored for bulk actions.
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Param actionType query string true "Action" Enums(delete, deleteAll, restore, restoreAll)
// @Success 200 {object} dto.DeleteRestoreResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /task/delete-restore/{id} [delete]
func (h *Handler) handleDeleteRestoreTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	action := service.DeleteRestoreAction(r.URL.Query().Get("actionType"))

	affected, err := h.taskService.DeleteRestoreTask(ctx, middleware.CallerFromContext(ctx), r.PathValue("id"), action)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.DeleteRestoreResponse{
		Status:   true,
		Message:  "Operation performed successfully.",
		Affected: affected,
	})
}
