package service

import (
	"time"

	"streamhub-server/internal/domain"
	"streamhub-server/internal/query"
	"streamhub-server/internal/realtime"
	"streamhub-server/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	videoRepo   repository.VideoRepository
	notifier    ActivityNotifier
}

func NewCommentService(commentRepo repository.CommentRepository, videoRepo repository.VideoRepository, notifier ActivityNotifier) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		videoRepo:   videoRepo,
		notifier:    notifier,
	}
}

func (s *CommentService) ListByVideo(videoID string, p query.Params) (query.Result[*domain.Comment], error) {
	comments, err := s.commentRepo.ListByVideo(videoID, p)
	if err != nil {
		return query.Result[*domain.Comment]{}, err
	}

	return query.Paginate(comments, p), nil
}

func (s *CommentService) Add(videoID string, author *domain.User, content string) (*domain.Comment, error) {
	video, err := s.videoRepo.FindByID(videoID)
	if err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		ID:        uuid.New().String(),
		Video:     videoID,
		Owner:     author.ID,
		Content:   content,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	s.notifyOwner(video.Owner, author, realtime.EventCommentAdded, "video", videoID)

	return comment, nil
}

func (s *CommentService) Update(commentID, content string) (*domain.Comment, error) {
	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		return nil, err
	}

	comment.Content = content
	if err := s.commentRepo.Update(comment); err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *CommentService) Delete(commentID string) error {
	if _, err := s.commentRepo.FindByID(commentID); err != nil {
		return err
	}
	return s.commentRepo.Delete(commentID)
}

func (s *CommentService) notifyOwner(ownerID string, actor *domain.User, event realtime.EventType, targetKind, targetID string) {
	if s.notifier == nil || ownerID == actor.ID {
		return
	}

	msg, err := realtime.NewActivity(event, actor.ID, actor.Username, targetKind, targetID)
	if err != nil {
		return
	}
	if err := s.notifier.BroadcastToUser(ownerID, msg); err != nil {
		log.Warn().Err(err).Str("owner", ownerID).Msg("failed to push activity event")
	}
}
