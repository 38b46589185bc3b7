package handler

import (
	"net/http"

	"streamhub-server/internal/domain"
	"streamhub-server/internal/middleware"
	"streamhub-server/internal/service"
	"streamhub-server/pkg/response"

	"github.com/gorilla/mux"
)

type LikeHandler struct {
	likeService *service.LikeService
}

func NewLikeHandler(likeService *service.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

func (h *LikeHandler) ToggleVideo(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, "videoId", h.likeService.ToggleVideo)
}

func (h *LikeHandler) ToggleComment(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, "commentId", h.likeService.ToggleComment)
}

func (h *LikeHandler) ToggleTweet(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, "tweetId", h.likeService.ToggleTweet)
}

// toggle answers 201 when this call created the like and 200 when it removed
// one.
func (h *LikeHandler) toggle(w http.ResponseWriter, r *http.Request, pathVar string, fn func(string, *domain.User) (bool, error)) {
	user := middleware.GetUser(r)
	targetID := mux.Vars(r)[pathVar]

	active, err := fn(targetID, user)
	if err != nil {
		response.Error(w, err)
		return
	}

	result := &domain.ToggleResult{Active: active}
	if active {
		response.Created(w, "like added", result)
		return
	}
	response.Success(w, "like removed", result)
}

func (h *LikeHandler) LikedVideos(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	result, err := h.likeService.LikedVideos(user.ID, listParams(r))
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, "liked videos fetched", result)
}
