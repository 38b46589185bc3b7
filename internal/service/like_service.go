package service

import (
	"sort"
	"time"

	"streamhub-server/internal/apperr"
	"streamhub-server/internal/domain"
	"streamhub-server/internal/query"
	"streamhub-server/internal/realtime"
	"streamhub-server/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type LikeService struct {
	likeRepo    repository.LikeRepository
	videoRepo   repository.VideoRepository
	commentRepo repository.CommentRepository
	tweetRepo   repository.TweetRepository
	notifier    ActivityNotifier
}

func NewLikeService(likeRepo repository.LikeRepository, videoRepo repository.VideoRepository, commentRepo repository.CommentRepository, tweetRepo repository.TweetRepository, notifier ActivityNotifier) *LikeService {
	return &LikeService{
		likeRepo:    likeRepo,
		videoRepo:   videoRepo,
		commentRepo: commentRepo,
		tweetRepo:   tweetRepo,
		notifier:    notifier,
	}
}

// ToggleVideo flips the actor's like on a video. It reports true when the
// like now exists and false when this call removed it.
func (s *LikeService) ToggleVideo(videoID string, actor *domain.User) (bool, error) {
	video, err := s.videoRepo.FindByID(videoID)
	if err != nil {
		return false, err
	}
	return s.toggle(domain.LikeTargetVideo, videoID, video.Owner, actor)
}

func (s *LikeService) ToggleComment(commentID string, actor *domain.User) (bool, error) {
	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		return false, err
	}
	return s.toggle(domain.LikeTargetComment, commentID, comment.Owner, actor)
}

func (s *LikeService) ToggleTweet(tweetID string, actor *domain.User) (bool, error) {
	tweet, err := s.tweetRepo.FindByID(tweetID)
	if err != nil {
		return false, err
	}
	return s.toggle(domain.LikeTargetTweet, tweetID, tweet.Owner, actor)
}

func (s *LikeService) toggle(kind domain.LikeTarget, targetID, ownerID string, actor *domain.User) (bool, error) {
	existing, err := s.likeRepo.FindByTarget(kind, targetID, actor.ID)
	if err != nil && apperr.KindOf(err) != apperr.NotFound {
		return false, err
	}

	if existing != nil {
		if err := s.likeRepo.Delete(existing.ID); err != nil {
			return false, err
		}
		return false, nil
	}

	like := &domain.Like{
		ID:        uuid.New().String(),
		LikedBy:   actor.ID,
		CreatedAt: time.Now(),
	}
	switch kind {
	case domain.LikeTargetVideo:
		like.Video = targetID
	case domain.LikeTargetComment:
		like.Comment = targetID
	case domain.LikeTargetTweet:
		like.Tweet = targetID
	}

	if err := s.likeRepo.Create(like); err != nil {
		return false, err
	}

	s.notifyOwner(ownerID, actor, string(kind), targetID)

	return true, nil
}

// LikedVideos lists the videos the user has liked, most recent like first.
func (s *LikeService) LikedVideos(userID string, p query.Params) (query.Result[*domain.Video], error) {
	likes, err := s.likeRepo.ListByUser(domain.LikeTargetVideo, userID)
	if err != nil {
		return query.Result[*domain.Video]{}, err
	}

	sortLikesByNewest(likes)

	ids := make([]string, 0, len(likes))
	for _, like := range likes {
		ids = append(ids, like.Video)
	}

	videos, err := s.videoRepo.FindByIDs(ids)
	if err != nil {
		return query.Result[*domain.Video]{}, err
	}

	return query.Paginate(videos, p), nil
}

func sortLikesByNewest(likes []*domain.Like) {
	sort.Slice(likes, func(i, j int) bool {
		return likes[i].CreatedAt.After(likes[j].CreatedAt)
	})
}

func (s *LikeService) notifyOwner(ownerID string, actor *domain.User, targetKind, targetID string) {
	if s.notifier == nil || ownerID == actor.ID {
		return
	}

	msg, err := realtime.NewActivity(realtime.EventLikeAdded, actor.ID, actor.Username, targetKind, targetID)
	if err != nil {
		return
	}
	if err := s.notifier.BroadcastToUser(ownerID, msg); err != nil {
		log.Warn().Err(err).Str("owner", ownerID).Msg("failed to push activity event")
	}
}
