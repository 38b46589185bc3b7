package handler

import (
	"encoding/json"
	"net/http"

	"streamhub-server/internal/domain"
	"streamhub-server/internal/middleware"
	"streamhub-server/internal/service"
	"streamhub-server/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

type PlaylistHandler struct {
	playlistService *service.PlaylistService
	validator       *validator.Validate
}

func NewPlaylistHandler(playlistService *service.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{
		playlistService: playlistService,
		validator:       validator.New(),
	}
}

func (h *PlaylistHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	var req domain.PlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	playlist, err := h.playlistService.Create(user.ID, &req)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Created(w, "playlist created successfully", playlist)
}

func (h *PlaylistHandler) Get(w http.ResponseWriter, r *http.Request) {
	playlistID := mux.Vars(r)["playlistId"]

	playlist, err := h.playlistService.Get(playlistID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, "playlist fetched", playlist)
}

func (h *PlaylistHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	result, err := h.playlistService.ListByUser(userID, listParams(r))
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, "playlists fetched", result)
}

func (h *PlaylistHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	playlistID := mux.Vars(r)["playlistId"]

	var req domain.UpdatePlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	playlist, err := h.playlistService.Update(playlistID, user.ID, &req)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, "playlist updated successfully", playlist)
}

func (h *PlaylistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	playlistID := mux.Vars(r)["playlistId"]

	if err := h.playlistService.Delete(playlistID, user.ID); err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, "playlist deleted successfully", nil)
}

func (h *PlaylistHandler) AddVideo(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	vars := mux.Vars(r)

	playlist, err := h.playlistService.AddVideo(vars["playlistId"], vars["videoId"], user.ID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, "video added to playlist", playlist)
}

func (h *PlaylistHandler) RemoveVideo(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	vars := mux.Vars(r)

	playlist, err := h.playlistService.RemoveVideo(vars["playlistId"], vars["videoId"], user.ID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, "video removed from playlist", playlist)
}
