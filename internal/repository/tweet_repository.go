package repository

import (
	"context"
	"fmt"
	"time"

	"streamhub-server/internal/apperr"
	"streamhub-server/internal/domain"
	"streamhub-server/internal/query"

	"github.com/go-kivik/kivik/v4"
)

type TweetRepository interface {
	Create(tweet *domain.Tweet) error
	FindByID(id string) (*domain.Tweet, error)
	ListByOwner(ownerID string, p query.Params) ([]*domain.Tweet, error)
	Update(tweet *domain.Tweet) error
	Delete(id string) error
}

type tweetRepository struct {
	client *kivik.Client
	dbName string
}

func NewTweetRepository(client *kivik.Client, dbName string) TweetRepository {
	return &tweetRepository{
		client: client,
		dbName: dbName,
	}
}

func (r *tweetRepository) Create(tweet *domain.Tweet) error {
	db := r.client.DB(r.dbName)

	docID := fmt.Sprintf("tweet:%s", tweet.ID)
	_, err := db.Put(context.Background(), docID, tweet)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to create tweet", err)
	}

	return nil
}

func (r *tweetRepository) FindByID(id string) (*domain.Tweet, error) {
	db := r.client.DB(r.dbName)

	docID := fmt.Sprintf("tweet:%s", id)
	row := db.Get(context.Background(), docID)

	var tweet domain.Tweet
	if err := row.ScanDoc(&tweet); err != nil {
		if kivik.HTTPStatus(err) == 404 {
			return nil, apperr.New(apperr.NotFound, "tweet not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "failed to find tweet", err)
	}

	return &tweet, nil
}

func (r *tweetRepository) ListByOwner(ownerID string, p query.Params) ([]*domain.Tweet, error) {
	db := r.client.DB(r.dbName)

	q := map[string]interface{}{
		"selector": map[string]interface{}{
			"owner": ownerID,
		},
		"sort":  p.SortSpec(),
		"limit": fetchAllLimit,
	}

	rows := db.Find(context.Background(), q)
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to list tweets", err)
	}
	defer rows.Close()

	var tweets []*domain.Tweet
	for rows.Next() {
		var tweet domain.Tweet
		if err := rows.ScanDoc(&tweet); err != nil {
			continue
		}
		tweets = append(tweets, &tweet)
	}

	return tweets, nil
}

func (r *tweetRepository) Update(tweet *domain.Tweet) error {
	db := r.client.DB(r.dbName)
	docID := fmt.Sprintf("tweet:%s", tweet.ID)

	row := db.Get(context.Background(), docID)
	var existing map[string]interface{}
	if err := row.ScanDoc(&existing); err != nil {
		if kivik.HTTPStatus(err) == 404 {
			return apperr.New(apperr.NotFound, "tweet not found")
		}
		return apperr.Wrap(apperr.Internal, "failed to fetch tweet for update", err)
	}

	existing["content"] = tweet.Content
	existing["updated_at"] = time.Now()

	if _, err := db.Put(context.Background(), docID, existing); err != nil {
		return apperr.Wrap(apperr.Internal, "failed to update tweet", err)
	}

	return nil
}

func (r *tweetRepository) Delete(id string) error {
	return deleteDoc(r.client, r.dbName, fmt.Sprintf("tweet:%s", id), "tweet")
}
