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

type CommentRepository interface {
	Create(comment *domain.Comment) error
	FindByID(id string) (*domain.Comment, error)
	ListByVideo(videoID string, p query.Params) ([]*domain.Comment, error)
	Update(comment *domain.Comment) error
	Delete(id string) error
}

type commentRepository struct {
	client *kivik.Client
	dbName string
}

func NewCommentRepository(client *kivik.Client, dbName string) CommentRepository {
	return &commentRepository{
		client: client,
		dbName: dbName,
	}
}

func (r *commentRepository) Create(comment *domain.Comment) error {
	db := r.client.DB(r.dbName)

	docID := fmt.Sprintf("comment:%s", comment.ID)
	_, err := db.Put(context.Background(), docID, comment)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to create comment", err)
	}

	return nil
}

func (r *commentRepository) FindByID(id string) (*domain.Comment, error) {
	db := r.client.DB(r.dbName)

	docID := fmt.Sprintf("comment:%s", id)
	row := db.Get(context.Background(), docID)

	var comment domain.Comment
	if err := row.ScanDoc(&comment); err != nil {
		if kivik.HTTPStatus(err) == 404 {
			return nil, apperr.New(apperr.NotFound, "comment not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "failed to find comment", err)
	}

	return &comment, nil
}

func (r *commentRepository) ListByVideo(videoID string, p query.Params) ([]*domain.Comment, error) {
	db := r.client.DB(r.dbName)

	q := map[string]interface{}{
		"selector": map[string]interface{}{
			"video": videoID,
		},
		"sort":  p.SortSpec(),
		"limit": fetchAllLimit,
	}

	rows := db.Find(context.Background(), q)
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to list comments", err)
	}
	defer rows.Close()

	var comments []*domain.Comment
	for rows.Next() {
		var comment domain.Comment
		if err := rows.ScanDoc(&comment); err != nil {
			continue
		}
		comments = append(comments, &comment)
	}

	return comments, nil
}

func (r *commentRepository) Update(comment *domain.Comment) error {
	db := r.client.DB(r.dbName)
	docID := fmt.Sprintf("comment:%s", comment.ID)

	row := db.Get(context.Background(), docID)
	var existing map[string]interface{}
	if err := row.ScanDoc(&existing); err != nil {
		if kivik.HTTPStatus(err) == 404 {
			return apperr.New(apperr.NotFound, "comment not found")
		}
		return apperr.Wrap(apperr.Internal, "failed to fetch comment for update", err)
	}

	existing["content"] = comment.Content
	existing["updated_at"] = time.Now()

	if _, err := db.Put(context.Background(), docID, existing); err != nil {
		return apperr.Wrap(apperr.Internal, "failed to update comment", err)
	}

	return nil
}

func (r *commentRepository) Delete(id string) error {
	return deleteDoc(r.client, r.dbName, fmt.Sprintf("comment:%s", id), "comment")
}
