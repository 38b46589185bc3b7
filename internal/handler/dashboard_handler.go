package handler

import (
	"net/http"

	"streamhub-server/internal/middleware"
	"streamhub-server/internal/service"
	"streamhub-server/pkg/response"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	stats, err := h.dashboardService.Stats(user.ID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, "channel stats fetched", stats)
}

func (h *DashboardHandler) Videos(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	result, err := h.dashboardService.Videos(user.ID, listParams(r))
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, "channel videos fetched", result)
}
