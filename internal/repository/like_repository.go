package repository

import (
	"context"
	"fmt"

	"streamhub-server/internal/apperr"
	"streamhub-server/internal/domain"

	"github.com/go-kivik/kivik/v4"
)

type LikeRepository interface {
	Create(like *domain.Like) error
	Delete(id string) error
	FindByTarget(kind domain.LikeTarget, targetID, userID string) (*domain.Like, error)
	ListByUser(kind domain.LikeTarget, userID string) ([]*domain.Like, error)
	CountByTarget(kind domain.LikeTarget, targetID string) (int, error)
	CountByTargets(kind domain.LikeTarget, targetIDs []string) (int, error)
}

type likeRepository struct {
	client *kivik.Client
	dbName string
}

func NewLikeRepository(client *kivik.Client, dbName string) LikeRepository {
	return &likeRepository{
		client: client,
		dbName: dbName,
	}
}

func (r *likeRepository) Create(like *domain.Like) error {
	db := r.client.DB(r.dbName)

	docID := fmt.Sprintf("like:%s", like.ID)
	_, err := db.Put(context.Background(), docID, like)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to create like", err)
	}

	return nil
}

func (r *likeRepository) Delete(id string) error {
	return deleteDoc(r.client, r.dbName, fmt.Sprintf("like:%s", id), "like")
}

// FindByTarget looks up the single (actor, target) relationship row.
func (r *likeRepository) FindByTarget(kind domain.LikeTarget, targetID, userID string) (*domain.Like, error) {
	db := r.client.DB(r.dbName)

	q := map[string]interface{}{
		"selector": map[string]interface{}{
			string(kind): targetID,
			"liked_by":   userID,
		},
		"limit": 1,
	}

	rows := db.Find(context.Background(), q)
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to query like", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, apperr.New(apperr.NotFound, "like not found")
	}

	var like domain.Like
	if err := rows.ScanDoc(&like); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to scan like", err)
	}

	return &like, nil
}

func (r *likeRepository) ListByUser(kind domain.LikeTarget, userID string) ([]*domain.Like, error) {
	db := r.client.DB(r.dbName)

	q := map[string]interface{}{
		"selector": map[string]interface{}{
			"liked_by":   userID,
			string(kind): map[string]interface{}{"$exists": true},
		},
		"limit": fetchAllLimit,
	}

	rows := db.Find(context.Background(), q)
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to list likes", err)
	}
	defer rows.Close()

	var likes []*domain.Like
	for rows.Next() {
		var like domain.Like
		if err := rows.ScanDoc(&like); err != nil {
			continue
		}
		likes = append(likes, &like)
	}

	return likes, nil
}

func (r *likeRepository) CountByTarget(kind domain.LikeTarget, targetID string) (int, error) {
	return countDocs(r.client, r.dbName, map[string]interface{}{
		string(kind): targetID,
	})
}

func (r *likeRepository) CountByTargets(kind domain.LikeTarget, targetIDs []string) (int, error) {
	if len(targetIDs) == 0 {
		return 0, nil
	}
	return countDocs(r.client, r.dbName, map[string]interface{}{
		string(kind): map[string]interface{}{"$in": targetIDs},
	})
}
