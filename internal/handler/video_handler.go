package handler

import (
	"encoding/json"
	"net/http"

	"streamhub-server/internal/domain"
	"streamhub-server/internal/middleware"
	"streamhub-server/internal/service"
	"streamhub-server/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type VideoHandler struct {
	videoService *service.VideoService
	validator    *validator.Validate
}

func NewVideoHandler(videoService *service.VideoService) *VideoHandler {
	return &VideoHandler{
		videoService: videoService,
		validator:    validator.New(),
	}
}

// List is public. The optional userId filter narrows to one channel; drafts
// show up only when that channel is the caller.
func (h *VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID := r.URL.Query().Get("userId")

	result, err := h.videoService.List(listParams(r), ownerID, middleware.GetUserID(r))
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, "videos fetched", result)
}

// Publish accepts a multipart form: title and description fields plus a
// videoFile and a thumbnail upload.
func (h *VideoHandler) Publish(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.BadRequest(w, "invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	req := domain.PublishVideoRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	}
	if err := h.validator.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	videoPath, cleanupVideo, err := saveTempFile(r, "videoFile")
	if err != nil {
		response.BadRequest(w, "videoFile is required")
		return
	}
	defer cleanupVideo()

	thumbnailPath, cleanupThumbnail, err := saveTempFile(r, "thumbnail")
	if err != nil {
		response.BadRequest(w, "thumbnail is required")
		return
	}
	defer cleanupThumbnail()

	video, err := h.videoService.Publish(r.Context(), user.ID, &req, videoPath, thumbnailPath)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Created(w, "video published successfully", video)
}

func (h *VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	videoID := mux.Vars(r)["videoId"]
	if uuid.Validate(videoID) != nil {
		response.BadRequest(w, "invalid video id")
		return
	}

	video, err := h.videoService.Get(videoID, middleware.GetUserID(r))
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, "video fetched", video)
}

func (h *VideoHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	videoID := mux.Vars(r)["videoId"]

	var req domain.UpdateVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	video, err := h.videoService.Update(videoID, user.ID, &req)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, "video updated successfully", video)
}

func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	videoID := mux.Vars(r)["videoId"]

	if err := h.videoService.Delete(videoID, user.ID); err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, "video deleted successfully", nil)
}

func (h *VideoHandler) TogglePublishStatus(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	videoID := mux.Vars(r)["videoId"]

	video, err := h.videoService.TogglePublishStatus(videoID, user.ID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, "publish status toggled", video)
}
