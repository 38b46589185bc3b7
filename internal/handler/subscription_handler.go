package handler

import (
	"net/http"

	"streamhub-server/internal/domain"
	"streamhub-server/internal/middleware"
	"streamhub-server/internal/service"
	"streamhub-server/pkg/response"

	"github.com/gorilla/mux"
)

type SubscriptionHandler struct {
	subService *service.SubscriptionService
}

func NewSubscriptionHandler(subService *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subService: subService}
}

// Toggle answers 201 when this call created the subscription and 200 when it
// removed one.
func (h *SubscriptionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	channelID := mux.Vars(r)["channelId"]

	active, err := h.subService.Toggle(channelID, user)
	if err != nil {
		response.Error(w, err)
		return
	}

	result := &domain.ToggleResult{Active: active}
	if active {
		response.Created(w, "subscribed", result)
		return
	}
	response.Success(w, "unsubscribed", result)
}

func (h *SubscriptionHandler) Subscribers(w http.ResponseWriter, r *http.Request) {
	channelID := mux.Vars(r)["channelId"]

	result, err := h.subService.Subscribers(channelID, listParams(r))
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, "subscribers fetched", result)
}

func (h *SubscriptionHandler) SubscribedChannels(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	result, err := h.subService.SubscribedChannels(user.ID, listParams(r))
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, "subscribed channels fetched", result)
}
