package repository

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"streamhub-server/internal/apperr"
	"streamhub-server/internal/domain"
	"streamhub-server/internal/query"

	"github.com/go-kivik/kivik/v4"
)

// VideoFilter narrows a listing. Owner is only honored for public read
// listings; PublishedOnly hides drafts from everyone but their owner.
type VideoFilter struct {
	Owner         string
	Search        string
	PublishedOnly bool
}

type VideoRepository interface {
	Create(video *domain.Video) error
	FindByID(id string) (*domain.Video, error)
	FindByIDs(ids []string) ([]*domain.Video, error)
	List(filter VideoFilter, p query.Params) ([]*domain.Video, error)
	Update(video *domain.Video) error
	IncrementViews(id string) error
	Delete(id string) error
}

type videoRepository struct {
	client *kivik.Client
	dbName string
}

func NewVideoRepository(client *kivik.Client, dbName string) VideoRepository {
	return &videoRepository{
		client: client,
		dbName: dbName,
	}
}

func (r *videoRepository) Create(video *domain.Video) error {
	db := r.client.DB(r.dbName)

	docID := fmt.Sprintf("video:%s", video.ID)
	_, err := db.Put(context.Background(), docID, video)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to create video", err)
	}

	return nil
}

func (r *videoRepository) FindByID(id string) (*domain.Video, error) {
	db := r.client.DB(r.dbName)

	docID := fmt.Sprintf("video:%s", id)
	row := db.Get(context.Background(), docID)

	var video domain.Video
	if err := row.ScanDoc(&video); err != nil {
		if kivik.HTTPStatus(err) == 404 {
			return nil, apperr.New(apperr.NotFound, "video not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "failed to find video", err)
	}

	return &video, nil
}

// FindByIDs resolves videos preserving the order of ids. Missing videos are
// skipped, not errors; watch history may reference deleted content.
func (r *videoRepository) FindByIDs(ids []string) ([]*domain.Video, error) {
	videos := make([]*domain.Video, 0, len(ids))
	for _, id := range ids {
		video, err := r.FindByID(id)
		if err != nil {
			if apperr.KindOf(err) == apperr.NotFound {
				continue
			}
			return nil, err
		}
		videos = append(videos, video)
	}

	return videos, nil
}

func (r *videoRepository) List(filter VideoFilter, p query.Params) ([]*domain.Video, error) {
	db := r.client.DB(r.dbName)

	selector := map[string]interface{}{}
	if filter.Owner != "" {
		selector["owner"] = filter.Owner
	}
	if filter.PublishedOnly {
		selector["is_published"] = true
	}
	if filter.Search != "" {
		selector["title"] = map[string]interface{}{
			"$regex": "(?i)" + regexp.QuoteMeta(filter.Search),
		}
	}

	q := map[string]interface{}{
		"selector": selector,
		"sort":     p.SortSpec(),
		"limit":    fetchAllLimit,
	}

	rows := db.Find(context.Background(), q)
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to list videos", err)
	}
	defer rows.Close()

	var videos []*domain.Video
	for rows.Next() {
		var video domain.Video
		if err := rows.ScanDoc(&video); err != nil {
			continue
		}
		videos = append(videos, &video)
	}

	return videos, nil
}

func (r *videoRepository) Update(video *domain.Video) error {
	db := r.client.DB(r.dbName)
	docID := fmt.Sprintf("video:%s", video.ID)

	existing, err := r.fetchDoc(docID)
	if err != nil {
		return err
	}

	existing["title"] = video.Title
	existing["description"] = video.Description
	existing["thumbnail"] = video.Thumbnail
	existing["is_published"] = video.IsPublished
	existing["updated_at"] = time.Now()

	if _, err := db.Put(context.Background(), docID, existing); err != nil {
		return apperr.Wrap(apperr.Internal, "failed to update video", err)
	}

	return nil
}

func (r *videoRepository) IncrementViews(id string) error {
	db := r.client.DB(r.dbName)
	docID := fmt.Sprintf("video:%s", id)

	existing, err := r.fetchDoc(docID)
	if err != nil {
		return err
	}

	views := int64(0)
	if v, ok := existing["views"].(float64); ok {
		views = int64(v)
	}
	existing["views"] = views + 1

	if _, err := db.Put(context.Background(), docID, existing); err != nil {
		return apperr.Wrap(apperr.Internal, "failed to increment views", err)
	}

	return nil
}

func (r *videoRepository) Delete(id string) error {
	return deleteDoc(r.client, r.dbName, fmt.Sprintf("video:%s", id), "video")
}

func (r *videoRepository) fetchDoc(docID string) (map[string]interface{}, error) {
	db := r.client.DB(r.dbName)

	row := db.Get(context.Background(), docID)
	var doc map[string]interface{}
	if err := row.ScanDoc(&doc); err != nil {
		if kivik.HTTPStatus(err) == 404 {
			return nil, apperr.New(apperr.NotFound, "video not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "failed to fetch video document", err)
	}

	return doc, nil
}
