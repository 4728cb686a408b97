package handler

import (
	"net/http"

	"github.com/mtlprog/taskboard/internal/handler/dto"
	"github.com/mtlprog/taskboard/internal/middleware"
)

// handleDashboard returns the caller's dashboard.
// @Summary Dashboard statistics
// @Description Admins see every active task and the newest active users; other users see tasks they are on the team of.
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.DashboardResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security CookieAuth
// @Router /task/dashboard [get]
func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dashboard, err := h.taskService.DashboardStatistics(ctx, middleware.CallerFromContext(ctx))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToDashboardResponse(dashboard))
}
