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

type TweetHandler struct {
	tweetService *service.TweetService
	validator    *validator.Validate
}

func NewTweetHandler(tweetService *service.TweetService) *TweetHandler {
	return &TweetHandler{
		tweetService: tweetService,
		validator:    validator.New(),
	}
}

func (h *TweetHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	var req domain.TweetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	tweet, err := h.tweetService.Create(user.ID, req.Content)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Created(w, "tweet created successfully", tweet)
}

func (h *TweetHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	result, err := h.tweetService.ListByUser(userID, listParams(r))
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, "tweets fetched", result)
}

func (h *TweetHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	tweetID := mux.Vars(r)["tweetId"]

	var req domain.TweetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	tweet, err := h.tweetService.Update(tweetID, user.ID, req.Content)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, "tweet updated successfully", tweet)
}

func (h *TweetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	tweetID := mux.Vars(r)["tweetId"]

	if err := h.tweetService.Delete(tweetID, user.ID); err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, "tweet deleted successfully", nil)
}
