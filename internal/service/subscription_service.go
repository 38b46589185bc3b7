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

type SubscriptionService struct {
	subRepo  repository.SubscriptionRepository
	userRepo repository.UserRepository
	notifier ActivityNotifier
}

func NewSubscriptionService(subRepo repository.SubscriptionRepository, userRepo repository.UserRepository, notifier ActivityNotifier) *SubscriptionService {
	return &SubscriptionService{
		subRepo:  subRepo,
		userRepo: userRepo,
		notifier: notifier,
	}
}

// Toggle flips the actor's subscription to a channel. It reports true when
// the subscription now exists and false when this call removed it.
func (s *SubscriptionService) Toggle(channelID string, actor *domain.User) (bool, error) {
	if channelID == actor.ID {
		return false, apperr.New(apperr.Validation, "cannot subscribe to your own channel")
	}

	if _, err := s.userRepo.FindByID(channelID); err != nil {
		return false, err
	}

	existing, err := s.subRepo.FindByPair(actor.ID, channelID)
	if err != nil && apperr.KindOf(err) != apperr.NotFound {
		return false, err
	}

	if existing != nil {
		if err := s.subRepo.Delete(existing.ID); err != nil {
			return false, err
		}
		return false, nil
	}

	sub := &domain.Subscription{
		ID:         uuid.New().String(),
		Subscriber: actor.ID,
		Channel:    channelID,
		CreatedAt:  time.Now(),
	}
	if err := s.subRepo.Create(sub); err != nil {
		return false, err
	}

	s.notifyChannel(channelID, actor)

	return true, nil
}

// Subscribers lists the users subscribed to a channel, newest first. Rows
// whose subscriber no longer resolves are skipped.
func (s *SubscriptionService) Subscribers(channelID string, p query.Params) (query.Result[*domain.UserSummary], error) {
	subs, err := s.subRepo.ListByChannel(channelID)
	if err != nil {
		return query.Result[*domain.UserSummary]{}, err
	}
	return s.resolvePage(subs, p, func(sub *domain.Subscription) string { return sub.Subscriber })
}

// SubscribedChannels lists the channels a user is subscribed to, newest first.
func (s *SubscriptionService) SubscribedChannels(subscriberID string, p query.Params) (query.Result[*domain.UserSummary], error) {
	subs, err := s.subRepo.ListBySubscriber(subscriberID)
	if err != nil {
		return query.Result[*domain.UserSummary]{}, err
	}
	return s.resolvePage(subs, p, func(sub *domain.Subscription) string { return sub.Channel })
}

func (s *SubscriptionService) resolvePage(subs []*domain.Subscription, p query.Params, userID func(*domain.Subscription) string) (query.Result[*domain.UserSummary], error) {
	sort.Slice(subs, func(i, j int) bool {
		return subs[i].CreatedAt.After(subs[j].CreatedAt)
	})

	page := query.Paginate(subs, p)

	summaries := make([]*domain.UserSummary, 0, len(page.Items))
	for _, sub := range page.Items {
		user, err := s.userRepo.FindByID(userID(sub))
		if err != nil {
			if apperr.KindOf(err) == apperr.NotFound {
				continue
			}
			return query.Result[*domain.UserSummary]{}, err
		}
		summaries = append(summaries, user.Summary())
	}

	return query.Result[*domain.UserSummary]{
		Items:      summaries,
		Page:       page.Page,
		Limit:      page.Limit,
		Total:      page.Total,
		TotalPages: page.TotalPages,
	}, nil
}

func (s *SubscriptionService) notifyChannel(channelID string, actor *domain.User) {
	if s.notifier == nil {
		return
	}

	msg, err := realtime.NewActivity(realtime.EventSubscriptionCreated, actor.ID, actor.Username, "channel", channelID)
	if err != nil {
		return
	}
	if err := s.notifier.BroadcastToUser(channelID, msg); err != nil {
		log.Warn().Err(err).Str("channel", channelID).Msg("failed to push activity event")
	}
}
