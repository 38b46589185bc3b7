package handler

import (
	"context"
	"net/http"
	"time"

	"streamhub-server/pkg/response"

	"github.com/go-kivik/kivik/v4"
)

type HealthHandler struct {
	client *kivik.Client
}

func NewHealthHandler(client *kivik.Client) *HealthHandler {
	return &HealthHandler{client: client}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "up"
	if _, err := h.client.Ping(ctx); err != nil {
		dbStatus = "down"
	}

	status := http.StatusOK
	if dbStatus == "down" {
		status = http.StatusServiceUnavailable
	}

	response.JSON(w, status, "health check", map[string]string{
		"database": dbStatus,
	})
}
