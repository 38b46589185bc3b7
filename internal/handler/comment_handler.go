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

type CommentHandler struct {
	commentService *service.CommentService
	validator      *validator.Validate
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		validator:      validator.New(),
	}
}

func (h *CommentHandler) ListByVideo(w http.ResponseWriter, r *http.Request) {
	videoID := mux.Vars(r)["videoId"]

	result, err := h.commentService.ListByVideo(videoID, listParams(r))
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, "comments fetched", result)
}

func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	videoID := mux.Vars(r)["videoId"]

	var req domain.CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	comment, err := h.commentService.Add(videoID, user, req.Content)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Created(w, "comment added successfully", comment)
}

func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	commentID := mux.Vars(r)["commentId"]

	var req domain.CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	comment, err := h.commentService.Update(commentID, req.Content)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, "comment updated successfully", comment)
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	commentID := mux.Vars(r)["commentId"]

	if err := h.commentService.Delete(commentID); err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, "comment deleted successfully", nil)
}
