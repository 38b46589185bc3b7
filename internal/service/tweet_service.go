package service

import (
	"time"

	"streamhub-server/internal/apperr"
	"streamhub-server/internal/domain"
	"streamhub-server/internal/query"
	"streamhub-server/internal/repository"

	"github.com/google/uuid"
)

type TweetService struct {
	tweetRepo repository.TweetRepository
}

func NewTweetService(tweetRepo repository.TweetRepository) *TweetService {
	return &TweetService{tweetRepo: tweetRepo}
}

func (s *TweetService) Create(ownerID, content string) (*domain.Tweet, error) {
	tweet := &domain.Tweet{
		ID:        uuid.New().String(),
		Owner:     ownerID,
		Content:   content,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.tweetRepo.Create(tweet); err != nil {
		return nil, err
	}

	return tweet, nil
}

func (s *TweetService) ListByUser(userID string, p query.Params) (query.Result[*domain.Tweet], error) {
	tweets, err := s.tweetRepo.ListByOwner(userID, p)
	if err != nil {
		return query.Result[*domain.Tweet]{}, err
	}
	return query.Paginate(tweets, p), nil
}

func (s *TweetService) Update(tweetID, ownerID, content string) (*domain.Tweet, error) {
	tweet, err := s.ownedTweet(tweetID, ownerID)
	if err != nil {
		return nil, err
	}

	tweet.Content = content
	tweet.UpdatedAt = time.Now()

	if err := s.tweetRepo.Update(tweet); err != nil {
		return nil, err
	}

	return tweet, nil
}

func (s *TweetService) Delete(tweetID, ownerID string) error {
	if _, err := s.ownedTweet(tweetID, ownerID); err != nil {
		return err
	}
	return s.tweetRepo.Delete(tweetID)
}

func (s *TweetService) ownedTweet(tweetID, ownerID string) (*domain.Tweet, error) {
	tweet, err := s.tweetRepo.FindByID(tweetID)
	if err != nil {
		return nil, err
	}
	if tweet.Owner != ownerID {
		return nil, apperr.New(apperr.NotFound, "tweet not found or you do not have permission to modify it")
	}
	return tweet, nil
}
