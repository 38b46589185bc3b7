package repository

import (
	"context"
	"fmt"
	"time"

	"streamhub-server/internal/apperr"
	"streamhub-server/internal/domain"

	"github.com/go-kivik/kivik/v4"
)

type PlaylistRepository interface {
	Create(playlist *domain.Playlist) error
	FindByID(id string) (*domain.Playlist, error)
	ListByOwner(ownerID string) ([]*domain.Playlist, error)
	Update(playlist *domain.Playlist) error
	Delete(id string) error
}

type playlistRepository struct {
	client *kivik.Client
	dbName string
}

func NewPlaylistRepository(client *kivik.Client, dbName string) PlaylistRepository {
	return &playlistRepository{
		client: client,
		dbName: dbName,
	}
}

func (r *playlistRepository) Create(playlist *domain.Playlist) error {
	db := r.client.DB(r.dbName)

	docID := fmt.Sprintf("playlist:%s", playlist.ID)
	_, err := db.Put(context.Background(), docID, playlist)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to create playlist", err)
	}

	return nil
}

func (r *playlistRepository) FindByID(id string) (*domain.Playlist, error) {
	db := r.client.DB(r.dbName)

	docID := fmt.Sprintf("playlist:%s", id)
	row := db.Get(context.Background(), docID)

	var playlist domain.Playlist
	if err := row.ScanDoc(&playlist); err != nil {
		if kivik.HTTPStatus(err) == 404 {
			return nil, apperr.New(apperr.NotFound, "playlist not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "failed to find playlist", err)
	}

	return &playlist, nil
}

func (r *playlistRepository) ListByOwner(ownerID string) ([]*domain.Playlist, error) {
	db := r.client.DB(r.dbName)

	q := map[string]interface{}{
		"selector": map[string]interface{}{
			"owner": ownerID,
		},
		"limit": fetchAllLimit,
	}

	rows := db.Find(context.Background(), q)
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to list playlists", err)
	}
	defer rows.Close()

	var playlists []*domain.Playlist
	for rows.Next() {
		var playlist domain.Playlist
		if err := rows.ScanDoc(&playlist); err != nil {
			continue
		}
		playlists = append(playlists, &playlist)
	}

	return playlists, nil
}

func (r *playlistRepository) Update(playlist *domain.Playlist) error {
	db := r.client.DB(r.dbName)
	docID := fmt.Sprintf("playlist:%s", playlist.ID)

	row := db.Get(context.Background(), docID)
	var existing map[string]interface{}
	if err := row.ScanDoc(&existing); err != nil {
		if kivik.HTTPStatus(err) == 404 {
			return apperr.New(apperr.NotFound, "playlist not found")
		}
		return apperr.Wrap(apperr.Internal, "failed to fetch playlist for update", err)
	}

	existing["name"] = playlist.Name
	existing["description"] = playlist.Description
	existing["videos"] = playlist.Videos
	existing["updated_at"] = time.Now()

	if _, err := db.Put(context.Background(), docID, existing); err != nil {
		return apperr.Wrap(apperr.Internal, "failed to update playlist", err)
	}

	return nil
}

func (r *playlistRepository) Delete(id string) error {
	return deleteDoc(r.client, r.dbName, fmt.Sprintf("playlist:%s", id), "playlist")
}
