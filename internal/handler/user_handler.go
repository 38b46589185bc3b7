package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"streamhub-server/internal/domain"
	"streamhub-server/internal/middleware"
	"streamhub-server/internal/service"
	"streamhub-server/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

type UserHandler struct {
	userService *service.UserService
	validator   *validator.Validate
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator.New(),
	}
}

func (h *UserHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	response.Success(w, "current user fetched", middleware.GetUser(r))
}

func (h *UserHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	var req domain.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	updated, err := h.userService.UpdateAccount(user.ID, &req)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, "account updated successfully", updated)
}

func (h *UserHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	h.updateImage(w, r, "avatar", h.userService.UpdateAvatar)
}

func (h *UserHandler) UpdateCoverImage(w http.ResponseWriter, r *http.Request) {
	h.updateImage(w, r, "coverImage", h.userService.UpdateCoverImage)
}

func (h *UserHandler) updateImage(w http.ResponseWriter, r *http.Request, field string, update func(context.Context, string, *service.UploadFile) (*domain.User, error)) {
	user := middleware.GetUser(r)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.BadRequest(w, "invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	up, err := formUpload(r, field)
	if err != nil {
		response.BadRequest(w, field+" file is required")
		return
	}
	defer up.close()

	updated, err := update(r.Context(), user.ID, up.file())
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, field+" updated successfully", updated)
}

// ChannelProfile resolves a channel by username and reports whether the
// caller is subscribed to it.
func (h *UserHandler) ChannelProfile(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	profile, err := h.userService.ChannelProfile(username, middleware.GetUserID(r))
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, "channel profile fetched", profile)
}

func (h *UserHandler) WatchHistory(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	result, err := h.userService.WatchHistory(user.ID, listParams(r))
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, "watch history fetched", result)
}
