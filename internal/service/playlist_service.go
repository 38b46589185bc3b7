package service

import (
	"time"

	"streamhub-server/internal/apperr"
	"streamhub-server/internal/domain"
	"streamhub-server/internal/query"
	"streamhub-server/internal/repository"

	"github.com/google/uuid"
)

type PlaylistService struct {
	playlistRepo repository.PlaylistRepository
	videoRepo    repository.VideoRepository
}

func NewPlaylistService(playlistRepo repository.PlaylistRepository, videoRepo repository.VideoRepository) *PlaylistService {
	return &PlaylistService{
		playlistRepo: playlistRepo,
		videoRepo:    videoRepo,
	}
}

func (s *PlaylistService) Create(ownerID string, req *domain.PlaylistRequest) (*domain.Playlist, error) {
	playlist := &domain.Playlist{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		Owner:       ownerID,
		Videos:      []string{},
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.playlistRepo.Create(playlist); err != nil {
		return nil, err
	}

	return playlist, nil
}

func (s *PlaylistService) Get(id string) (*domain.Playlist, error) {
	return s.playlistRepo.FindByID(id)
}

func (s *PlaylistService) ListByUser(userID string, p query.Params) (query.Result[*domain.Playlist], error) {
	playlists, err := s.playlistRepo.ListByOwner(userID)
	if err != nil {
		return query.Result[*domain.Playlist]{}, err
	}
	return query.Paginate(playlists, p), nil
}

func (s *PlaylistService) Update(playlistID, ownerID string, req *domain.UpdatePlaylistRequest) (*domain.Playlist, error) {
	playlist, err := s.ownedPlaylist(playlistID, ownerID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		playlist.Name = req.Name
	}
	if req.Description != "" {
		playlist.Description = req.Description
	}
	playlist.UpdatedAt = time.Now()

	if err := s.playlistRepo.Update(playlist); err != nil {
		return nil, err
	}

	return playlist, nil
}

func (s *PlaylistService) Delete(playlistID, ownerID string) error {
	if _, err := s.ownedPlaylist(playlistID, ownerID); err != nil {
		return err
	}
	return s.playlistRepo.Delete(playlistID)
}

// AddVideo appends a video to the playlist. Adding a video that is already
// present is a no-op, not an error.
func (s *PlaylistService) AddVideo(playlistID, videoID, ownerID string) (*domain.Playlist, error) {
	playlist, err := s.ownedPlaylist(playlistID, ownerID)
	if err != nil {
		return nil, err
	}

	if _, err := s.videoRepo.FindByID(videoID); err != nil {
		return nil, err
	}

	for _, id := range playlist.Videos {
		if id == videoID {
			return playlist, nil
		}
	}

	playlist.Videos = append(playlist.Videos, videoID)
	playlist.UpdatedAt = time.Now()

	if err := s.playlistRepo.Update(playlist); err != nil {
		return nil, err
	}

	return playlist, nil
}

// RemoveVideo drops a video from the playlist. Removing a video that is not
// in the playlist is a no-op.
func (s *PlaylistService) RemoveVideo(playlistID, videoID, ownerID string) (*domain.Playlist, error) {
	playlist, err := s.ownedPlaylist(playlistID, ownerID)
	if err != nil {
		return nil, err
	}

	kept := playlist.Videos[:0]
	for _, id := range playlist.Videos {
		if id != videoID {
			kept = append(kept, id)
		}
	}
	playlist.Videos = kept
	playlist.UpdatedAt = time.Now()

	if err := s.playlistRepo.Update(playlist); err != nil {
		return nil, err
	}

	return playlist, nil
}

func (s *PlaylistService) ownedPlaylist(playlistID, ownerID string) (*domain.Playlist, error) {
	playlist, err := s.playlistRepo.FindByID(playlistID)
	if err != nil {
		return nil, err
	}
	if playlist.Owner != ownerID {
		return nil, apperr.New(apperr.NotFound, "playlist not found or you do not have permission to modify it")
	}
	return playlist, nil
}
