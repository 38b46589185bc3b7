package service

import (
	"streamhub-server/internal/domain"
	"streamhub-server/internal/query"
	"streamhub-server/internal/repository"
)

type DashboardService struct {
	videoRepo repository.VideoRepository
	subRepo   repository.SubscriptionRepository
	likeRepo  repository.LikeRepository
}

func NewDashboardService(videoRepo repository.VideoRepository, subRepo repository.SubscriptionRepository, likeRepo repository.LikeRepository) *DashboardService {
	return &DashboardService{
		videoRepo: videoRepo,
		subRepo:   subRepo,
		likeRepo:  likeRepo,
	}
}

// Stats aggregates the channel's numbers at request time. Nothing here is
// cached or stored.
func (s *DashboardService) Stats(channelID string) (*domain.ChannelStats, error) {
	subscribers, err := s.subRepo.CountByChannel(channelID)
	if err != nil {
		return nil, err
	}

	videos, err := s.videoRepo.List(repository.VideoFilter{Owner: channelID}, query.Defaults())
	if err != nil {
		return nil, err
	}

	var totalViews int64
	ids := make([]string, 0, len(videos))
	for _, video := range videos {
		totalViews += video.Views
		ids = append(ids, video.ID)
	}

	likes, err := s.likeRepo.CountByTargets(domain.LikeTargetVideo, ids)
	if err != nil {
		return nil, err
	}

	return &domain.ChannelStats{
		TotalSubscribers: subscribers,
		TotalVideos:      len(videos),
		TotalViews:       totalViews,
		TotalLikes:       likes,
	}, nil
}

// Videos lists every video the channel owns, drafts included.
func (s *DashboardService) Videos(channelID string, p query.Params) (query.Result[*domain.Video], error) {
	videos, err := s.videoRepo.List(repository.VideoFilter{Owner: channelID}, p)
	if err != nil {
		return query.Result[*domain.Video]{}, err
	}
	return query.Paginate(videos, p), nil
}
