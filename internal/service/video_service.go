package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"streamhub-server/internal/apperr"
	"streamhub-server/internal/domain"
	"streamhub-server/internal/media"
	"streamhub-server/internal/query"
	"streamhub-server/internal/repository"
	"streamhub-server/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type VideoService struct {
	videoRepo repository.VideoRepository
	userRepo  repository.UserRepository
	store     storage.MediaStore
	prober    media.DurationProber
}

func NewVideoService(videoRepo repository.VideoRepository, userRepo repository.UserRepository, store storage.MediaStore, prober media.DurationProber) *VideoService {
	return &VideoService{
		videoRepo: videoRepo,
		userRepo:  userRepo,
		store:     store,
		prober:    prober,
	}
}

// List returns a page of videos. Drafts are visible only when the caller is
// listing their own channel; a caller-supplied owner id is honored solely as
// a public read filter.
func (s *VideoService) List(p query.Params, ownerID, viewerID string) (query.Result[*domain.Video], error) {
	filter := repository.VideoFilter{
		Owner:         ownerID,
		Search:        p.Search,
		PublishedOnly: true,
	}
	if ownerID != "" && ownerID == viewerID {
		filter.PublishedOnly = false
	}

	videos, err := s.videoRepo.List(filter, p)
	if err != nil {
		return query.Result[*domain.Video]{}, err
	}

	return query.Paginate(videos, p), nil
}

// Publish probes the uploaded file's duration, pushes both assets to the
// media store, and creates the video document.
func (s *VideoService) Publish(ctx context.Context, ownerID string, req *domain.PublishVideoRequest, videoPath, thumbnailPath string) (*domain.Video, error) {
	duration, err := s.prober.Duration(ctx, videoPath)
	if err != nil {
		return nil, apperr.Wrap(apperr.Upload, "failed to read video duration", err)
	}

	videoURL, err := s.saveLocalFile(ctx, "videos", videoPath)
	if err != nil {
		return nil, apperr.Wrap(apperr.Upload, "failed to upload video file", err)
	}

	thumbnailURL, err := s.saveLocalFile(ctx, "thumbnails", thumbnailPath)
	if err != nil {
		return nil, apperr.Wrap(apperr.Upload, "failed to upload thumbnail", err)
	}

	video := &domain.Video{
		ID:          uuid.New().String(),
		Owner:       ownerID,
		Title:       req.Title,
		Description: req.Description,
		VideoFile:   videoURL,
		Thumbnail:   thumbnailURL,
		Duration:    duration,
		IsPublished: true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.videoRepo.Create(video); err != nil {
		return nil, err
	}

	return video, nil
}

// Get resolves one video. An authenticated view bumps the counter and is
// recorded in the viewer's watch history; failures of either write do not
// fail the read.
func (s *VideoService) Get(id, viewerID string) (*domain.Video, error) {
	video, err := s.videoRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if !video.IsPublished && video.Owner != viewerID {
		return nil, apperr.New(apperr.NotFound, "video not found")
	}

	if viewerID != "" {
		if err := s.videoRepo.IncrementViews(id); err != nil {
			log.Warn().Err(err).Str("video", id).Msg("failed to bump view count")
		} else {
			video.Views++
		}
		if err := s.userRepo.AppendWatchHistory(viewerID, id); err != nil {
			log.Warn().Err(err).Str("user", viewerID).Msg("failed to record watch history")
		}
	}

	return video, nil
}

func (s *VideoService) Update(videoID, ownerID string, req *domain.UpdateVideoRequest) (*domain.Video, error) {
	video, err := s.ownedVideo(videoID, ownerID)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		video.Title = req.Title
	}
	if req.Description != "" {
		video.Description = req.Description
	}
	if req.Thumbnail != "" {
		video.Thumbnail = req.Thumbnail
	}

	if err := s.videoRepo.Update(video); err != nil {
		return nil, err
	}

	return video, nil
}

func (s *VideoService) Delete(videoID, ownerID string) error {
	if _, err := s.ownedVideo(videoID, ownerID); err != nil {
		return err
	}
	return s.videoRepo.Delete(videoID)
}

func (s *VideoService) TogglePublishStatus(videoID, ownerID string) (*domain.Video, error) {
	video, err := s.ownedVideo(videoID, ownerID)
	if err != nil {
		return nil, err
	}

	video.IsPublished = !video.IsPublished
	if err := s.videoRepo.Update(video); err != nil {
		return nil, err
	}

	return video, nil
}

func (s *VideoService) ownedVideo(videoID, ownerID string) (*domain.Video, error) {
	video, err := s.videoRepo.FindByID(videoID)
	if err != nil {
		return nil, err
	}
	if video.Owner != ownerID {
		return nil, apperr.New(apperr.NotFound, "video not found or you do not have permission to modify it")
	}
	return video, nil
}

func (s *VideoService) saveLocalFile(ctx context.Context, prefix, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	name := fmt.Sprintf("%s/%s-%s", prefix, uuid.New().String(), filepath.Base(path))
	return s.store.Save(ctx, name, f)
}
