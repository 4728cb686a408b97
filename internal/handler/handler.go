package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	_ "github.com/mtlprog/taskboard/docs" // Import generated docs
	"github.com/mtlprog/taskboard/internal/domain"
	"github.com/mtlprog/taskboard/internal/handler/dto"
	"github.com/mtlprog/taskboard/internal/middleware"
	"github.com/mtlprog/taskboard/internal/service"
	"github.com/mtlprog/taskboard/internal/static"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	taskService    *service.TaskService
	authMiddleware *middleware.AuthMiddleware
	store          Pinger
}

// New creates a new Handler instance with all dependencies.
func New(taskService *service.TaskService, authMiddleware *middleware.AuthMiddleware, store Pinger) *Handler {
	return &Handler{
		taskService:    taskService,
		authMiddleware: authMiddleware,
		store:          store,
	}
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("GET /healthz", h.handleHealthz)

	// Landing page
	mux.HandleFunc("GET /{$}", h.handleIndex)

	// Swagger UI
	mux.HandleFunc("GET /swagger/", httpSwagger.Handler())

	required := h.authMiddleware.Authenticate
	optional := h.authMiddleware.Identify

	mux.Handle("POST /api/task/create", optional(http.HandlerFunc(h.handleCreateTask)))
	mux.Handle("POST /api/task/duplicate/{id}", optional(http.HandlerFunc(h.handleDuplicateTask)))
	mux.Handle("POST /api/task/activity/{id}", required(http.HandlerFunc(h.handlePostActivity)))

	mux.Handle("GET /api/task/dashboard", required(http.HandlerFunc(h.handleDashboard)))
	mux.Handle("GET /api/task", optional(http.HandlerFunc(h.handleListTasks)))
	mux.Handle("GET /api/task/{id}", required(http.HandlerFunc(h.handleGetTask)))

	mux.Handle("PUT /api/task/create-subtask/{id}", optional(http.HandlerFunc(h.handleCreateSubTask)))
	mux.Handle("PUT /api/task/update/{id}", optional(http.HandlerFunc(h.handleUpdateTask)))
	mux.Handle("PUT /api/task/{id}", optional(http.HandlerFunc(h.handleTrashTask)))

	mux.Handle("DELETE /api/task/delete-restore/{$}", optional(http.HandlerFunc(h.handleDeleteRestoreTask)))
	mux.Handle("DELETE /api/task/delete-restore/{id}", optional(http.HandlerFunc(h.handleDeleteRestoreTask)))
}

// handleHealthz returns 200 OK if the store is reachable.
func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.store.Ping(ctx); err != nil {
		slog.Error("store health check failed", "error", err)
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// handleIndex serves the embedded landing page.
func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(static.IndexHTML))
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// respondError writes a standard error response.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, dto.NewErrorResponse(code, message))
}

// respondDomainError resolves err to a status and writes it.
func respondDomainError(w http.ResponseWriter, err error) {
	status, code, message := dto.MapDomainError(err)
	respondError(w, status, code, message)
}

// decodeJSON decodes the request body into dst.
// Returns false if the body is malformed (error already sent to client).
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondDomainError(w, domain.ErrInvalidJSON)
		return false
	}
	return true
}

// extractTaskID extracts the task ID from path parameter.
// Returns (taskID, true) if present, ("", false) if missing (error already sent to client).
func extractTaskID(w http.ResponseWriter, r *http.Request) (string, bool) {
	taskID := r.PathValue("id")
	if taskID == "" {
		respondDomainError(w, domain.ErrMissingTaskID)
		return "", false
	}
	return taskID, true
}
