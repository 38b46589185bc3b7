package service

import (
	"testing"

	"streamhub-server/internal/apperr"
	"streamhub-server/internal/domain"
	"streamhub-server/internal/query"
)

func TestUserService_ChannelProfile(t *testing.T) {
	userRepo := newMockUserRepository()
	subRepo := newMockSubscriptionRepository()
	service := NewUserService(userRepo, subRepo, newMockVideoRepository(), &mockMediaStore{})

	userRepo.Create(&domain.User{ID: "channel-id", Username: "channel", FullName: "The Channel"})
	subRepo.Create(&domain.Subscription{ID: "s1", Subscriber: "viewer-id", Channel: "channel-id"})
	subRepo.Create(&domain.Subscription{ID: "s2", Subscriber: "other-id", Channel: "channel-id"})
	subRepo.Create(&domain.Subscription{ID: "s3", Subscriber: "channel-id", Channel: "third-id"})

	t.Run("subscribed viewer", func(t *testing.T) {
		profile, err := service.ChannelProfile("channel", "viewer-id")
		if err != nil {
			t.Fatalf("ChannelProfile() unexpected error = %v", err)
		}
		if profile.SubscriberCount != 2 {
			t.Errorf("ChannelProfile() subscribers = %d, want 2", profile.SubscriberCount)
		}
		if profile.SubscribedTo != 1 {
			t.Errorf("ChannelProfile() subscribedTo = %d, want 1", profile.SubscribedTo)
		}
		if !profile.IsSubscribed {
			t.Error("ChannelProfile() isSubscribed = false, want true")
		}
	})

	t.Run("anonymous viewer", func(t *testing.T) {
		profile, err := service.ChannelProfile("channel", "")
		if err != nil {
			t.Fatalf("ChannelProfile() unexpected error = %v", err)
		}
		if profile.IsSubscribed {
			t.Error("ChannelProfile() isSubscribed = true for anonymous viewer")
		}
	})

	t.Run("unknown channel", func(t *testing.T) {
		if _, err := service.ChannelProfile("nobody", ""); apperr.KindOf(err) != apperr.NotFound {
			t.Errorf("ChannelProfile() error kind = %v, want NotFound", apperr.KindOf(err))
		}
	})
}

func TestUserService_WatchHistory(t *testing.T) {
	userRepo := newMockUserRepository()
	videoRepo := newMockVideoRepository()
	service := NewUserService(userRepo, newMockSubscriptionRepository(), videoRepo, &mockMediaStore{})

	videoRepo.Create(&domain.Video{ID: "v1", Owner: "owner-id", IsPublished: true})
	videoRepo.Create(&domain.Video{ID: "v2", Owner: "owner-id", IsPublished: true})
	videoRepo.Create(&domain.Video{ID: "v3", Owner: "owner-id", IsPublished: true})

	userRepo.Create(&domain.User{
		ID:           "viewer-id",
		Username:     "viewer",
		WatchHistory: []string{"v1", "v2", "deleted-video", "v3"},
	})

	result, err := service.WatchHistory("viewer-id", query.Defaults())
	if err != nil {
		t.Fatalf("WatchHistory() unexpected error = %v", err)
	}

	// Most recently watched first; entries for deleted videos drop out.
	want := []string{"v3", "v2", "v1"}
	if len(result.Items) != len(want) {
		t.Fatalf("WatchHistory() items = %d, want %d", len(result.Items), len(want))
	}
	for i, id := range want {
		if result.Items[i].ID != id {
			t.Errorf("WatchHistory() item %d = %q, want %q", i, result.Items[i].ID, id)
		}
	}
}

func TestUserService_UpdateAccount(t *testing.T) {
	userRepo := newMockUserRepository()
	service := NewUserService(userRepo, newMockSubscriptionRepository(), newMockVideoRepository(), &mockMediaStore{})

	userRepo.Create(&domain.User{ID: "u1", Username: "userone", Email: "one@example.com", FullName: "User One"})
	userRepo.Create(&domain.User{ID: "u2", Username: "usertwo", Email: "two@example.com", FullName: "User Two"})

	updated, err := service.UpdateAccount("u1", &domain.UpdateAccountRequest{FullName: "Renamed One"})
	if err != nil {
		t.Fatalf("UpdateAccount() unexpected error = %v", err)
	}
	if updated.FullName != "Renamed One" {
		t.Errorf("UpdateAccount() fullName = %q, want %q", updated.FullName, "Renamed One")
	}
	if updated.Email != "one@example.com" {
		t.Errorf("UpdateAccount() email = %q, want untouched", updated.Email)
	}

	if _, err := service.UpdateAccount("u1", &domain.UpdateAccountRequest{Email: "two@example.com"}); apperr.KindOf(err) != apperr.Conflict {
		t.Errorf("UpdateAccount() with taken email error kind = %v, want Conflict", apperr.KindOf(err))
	}
}
