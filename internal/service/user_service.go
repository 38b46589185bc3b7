package service

import (
	"context"
	"fmt"
	"strings"

	"streamhub-server/internal/apperr"
	"streamhub-server/internal/domain"
	"streamhub-server/internal/query"
	"streamhub-server/internal/repository"
	"streamhub-server/internal/storage"

	"github.com/google/uuid"
)

type UserService struct {
	userRepo  repository.UserRepository
	subRepo   repository.SubscriptionRepository
	videoRepo repository.VideoRepository
	media     storage.MediaStore
}

func NewUserService(userRepo repository.UserRepository, subRepo repository.SubscriptionRepository, videoRepo repository.VideoRepository, media storage.MediaStore) *UserService {
	return &UserService{
		userRepo:  userRepo,
		subRepo:   subRepo,
		videoRepo: videoRepo,
		media:     media,
	}
}

func (s *UserService) GetByID(id string) (*domain.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	return user.Sanitized(), nil
}

func (s *UserService) UpdateAccount(userID string, req *domain.UpdateAccountRequest) (*domain.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if email := strings.ToLower(req.Email); email != "" && email != user.Email {
		taken, err := s.userRepo.EmailExists(email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.New(apperr.Conflict, "email already in use")
		}
		user.Email = email
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	return user.Sanitized(), nil
}

func (s *UserService) UpdateAvatar(ctx context.Context, userID string, file *UploadFile) (*domain.User, error) {
	return s.updateImage(ctx, userID, file, "avatars", func(u *domain.User, url string) {
		u.Avatar = url
	})
}

func (s *UserService) UpdateCoverImage(ctx context.Context, userID string, file *UploadFile) (*domain.User, error) {
	return s.updateImage(ctx, userID, file, "covers", func(u *domain.User, url string) {
		u.CoverImage = url
	})
}

func (s *UserService) updateImage(ctx context.Context, userID string, file *UploadFile, prefix string, assign func(*domain.User, string)) (*domain.User, error) {
	if file == nil {
		return nil, apperr.New(apperr.Validation, "image file is required")
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	url, err := s.media.Save(ctx, fmt.Sprintf("%s/%s-%s", prefix, uuid.New().String(), file.Name), file.Reader)
	if err != nil {
		return nil, apperr.Wrap(apperr.Upload, "failed to upload image", err)
	}

	assign(user, url)
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	return user.Sanitized(), nil
}

// ChannelProfile resolves a channel's public face with relationship counts
// derived at query time from the subscription collection.
func (s *UserService) ChannelProfile(username, viewerID string) (*domain.ChannelProfile, error) {
	channel, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, apperr.New(apperr.NotFound, "channel not found")
	}

	subscriberCount, err := s.subRepo.CountByChannel(channel.ID)
	if err != nil {
		return nil, err
	}

	subscribedTo, err := s.subRepo.CountBySubscriber(channel.ID)
	if err != nil {
		return nil, err
	}

	isSubscribed := false
	if viewerID != "" && viewerID != channel.ID {
		if _, err := s.subRepo.FindByPair(viewerID, channel.ID); err == nil {
			isSubscribed = true
		} else if apperr.KindOf(err) != apperr.NotFound {
			return nil, err
		}
	}

	return &domain.ChannelProfile{
		ID:              channel.ID,
		Username:        channel.Username,
		FullName:        channel.FullName,
		Avatar:          channel.Avatar,
		CoverImage:      channel.CoverImage,
		SubscriberCount: subscriberCount,
		SubscribedTo:    subscribedTo,
		IsSubscribed:    isSubscribed,
		CreatedAt:       channel.CreatedAt,
	}, nil
}

// WatchHistory pages through the caller's viewing sequence, most recent
// first. History may reference content that was deleted since; those entries
// vanish from the listing.
func (s *UserService) WatchHistory(userID string, p query.Params) (query.Result[*domain.Video], error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return query.Result[*domain.Video]{}, err
	}

	// Stored most-recent-last; presented most-recent-first.
	ordered := make([]string, 0, len(user.WatchHistory))
	for i := len(user.WatchHistory) - 1; i >= 0; i-- {
		ordered = append(ordered, user.WatchHistory[i])
	}

	videos, err := s.videoRepo.FindByIDs(ordered)
	if err != nil {
		return query.Result[*domain.Video]{}, err
	}

	return query.Paginate(videos, p), nil
}
