package service

import (
	"testing"
	"time"

	"streamhub-server/internal/apperr"
	"streamhub-server/internal/domain"
	"streamhub-server/internal/query"
)

func TestVideoService_List(t *testing.T) {
	videoRepo := newMockVideoRepository()
	service := NewVideoService(videoRepo, newMockUserRepository(), &mockMediaStore{}, &mockProber{duration: 10})

	base := time.Now()
	videoRepo.Create(&domain.Video{ID: "v1", Owner: "alice", Title: "Go Concurrency", IsPublished: true, CreatedAt: base})
	videoRepo.Create(&domain.Video{ID: "v2", Owner: "alice", Title: "Go Generics Draft", IsPublished: false, CreatedAt: base.Add(time.Minute)})
	videoRepo.Create(&domain.Video{ID: "v3", Owner: "bob", Title: "Cooking Pasta", IsPublished: true, CreatedAt: base.Add(2 * time.Minute)})

	tests := []struct {
		name    string
		p       query.Params
		ownerID string
		viewer  string
		wantIDs []string
	}{
		{
			name:    "anonymous listing hides drafts",
			p:       query.Params{Page: 1, Limit: 10},
			wantIDs: []string{"v1", "v3"},
		},
		{
			name:    "owner filter still hides drafts from others",
			p:       query.Params{Page: 1, Limit: 10},
			ownerID: "alice",
			viewer:  "bob",
			wantIDs: []string{"v1"},
		},
		{
			name:    "owners see their own drafts",
			p:       query.Params{Page: 1, Limit: 10},
			ownerID: "alice",
			viewer:  "alice",
			wantIDs: []string{"v1", "v2"},
		},
		{
			name:    "title search",
			p:       query.Params{Page: 1, Limit: 10, Search: "go"},
			wantIDs: []string{"v1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := service.List(tt.p, tt.ownerID, tt.viewer)
			if err != nil {
				t.Fatalf("List() unexpected error = %v", err)
			}

			if len(result.Items) != len(tt.wantIDs) {
				t.Fatalf("List() returned %d items, want %d", len(result.Items), len(tt.wantIDs))
			}
			got := make(map[string]bool, len(result.Items))
			for _, video := range result.Items {
				got[video.ID] = true
			}
			for _, id := range tt.wantIDs {
				if !got[id] {
					t.Errorf("List() missing video %q", id)
				}
			}
		})
	}
}

func TestVideoService_Get(t *testing.T) {
	videoRepo := newMockVideoRepository()
	userRepo := newMockUserRepository()
	userRepo.Create(&domain.User{ID: "viewer-id", Username: "viewer"})
	service := NewVideoService(videoRepo, userRepo, &mockMediaStore{}, &mockProber{duration: 10})

	videoRepo.Create(&domain.Video{ID: "pub", Owner: "owner-id", IsPublished: true, Views: 5})
	videoRepo.Create(&domain.Video{ID: "draft", Owner: "owner-id", IsPublished: false})

	t.Run("authenticated view bumps the counter and records history", func(t *testing.T) {
		video, err := service.Get("pub", "viewer-id")
		if err != nil {
			t.Fatalf("Get() unexpected error = %v", err)
		}
		if video.Views != 6 {
			t.Errorf("Get() views = %d, want 6", video.Views)
		}

		viewer, _ := userRepo.FindByID("viewer-id")
		if len(viewer.WatchHistory) != 1 || viewer.WatchHistory[0] != "pub" {
			t.Errorf("Get() watch history = %v, want [pub]", viewer.WatchHistory)
		}
	})

	t.Run("anonymous view does not count", func(t *testing.T) {
		before, _ := videoRepo.FindByID("pub")
		views := before.Views

		video, err := service.Get("pub", "")
		if err != nil {
			t.Fatalf("Get() unexpected error = %v", err)
		}
		if video.Views != views {
			t.Errorf("Get() views = %d, want unchanged %d", video.Views, views)
		}
	})

	t.Run("rewatching moves the entry instead of duplicating it", func(t *testing.T) {
		videoRepo.Create(&domain.Video{ID: "second", Owner: "owner-id", IsPublished: true})
		if _, err := service.Get("second", "viewer-id"); err != nil {
			t.Fatalf("Get() unexpected error = %v", err)
		}
		if _, err := service.Get("pub", "viewer-id"); err != nil {
			t.Fatalf("Get() unexpected error = %v", err)
		}

		viewer, _ := userRepo.FindByID("viewer-id")
		want := []string{"second", "pub"}
		if len(viewer.WatchHistory) != len(want) {
			t.Fatalf("Get() watch history = %v, want %v", viewer.WatchHistory, want)
		}
		for i, id := range want {
			if viewer.WatchHistory[i] != id {
				t.Fatalf("Get() watch history = %v, want %v", viewer.WatchHistory, want)
			}
		}
	})

	t.Run("drafts are invisible to non-owners", func(t *testing.T) {
		if _, err := service.Get("draft", "viewer-id"); apperr.KindOf(err) != apperr.NotFound {
			t.Errorf("Get() draft error kind = %v, want NotFound", apperr.KindOf(err))
		}
		if _, err := service.Get("draft", "owner-id"); err != nil {
			t.Errorf("Get() draft by owner unexpected error = %v", err)
		}
	})
}

func TestVideoService_ViewCountSingleIncrement(t *testing.T) {
	videoRepo := newMockVideoRepository()
	userRepo := newMockUserRepository()
	userRepo.Create(&domain.User{ID: "viewer-id", Username: "viewer"})
	service := NewVideoService(videoRepo, userRepo, &mockMediaStore{}, &mockProber{duration: 10})

	videoRepo.Create(&domain.Video{ID: "v1", Owner: "owner-id", IsPublished: true})

	// Each authenticated read counts exactly once, in both the returned
	// document and the stored one.
	for want := int64(1); want <= 3; want++ {
		video, err := service.Get("v1", "viewer-id")
		if err != nil {
			t.Fatalf("Get() unexpected error = %v", err)
		}
		if video.Views != want {
			t.Fatalf("Get() views = %d, want %d", video.Views, want)
		}

		stored, _ := videoRepo.FindByID("v1")
		if stored.Views != want {
			t.Fatalf("Get() stored views = %d, want %d", stored.Views, want)
		}
	}
}

func TestVideoService_OwnershipGuard(t *testing.T) {
	videoRepo := newMockVideoRepository()
	service := NewVideoService(videoRepo, newMockUserRepository(), &mockMediaStore{}, &mockProber{duration: 10})

	videoRepo.Create(&domain.Video{ID: "v1", Owner: "owner-id", Title: "Original", IsPublished: true})

	if _, err := service.Update("v1", "intruder-id", &domain.UpdateVideoRequest{Title: "Hijacked"}); apperr.KindOf(err) != apperr.NotFound {
		t.Errorf("Update() by non-owner error kind = %v, want NotFound", apperr.KindOf(err))
	}
	if err := service.Delete("v1", "intruder-id"); apperr.KindOf(err) != apperr.NotFound {
		t.Errorf("Delete() by non-owner error kind = %v, want NotFound", apperr.KindOf(err))
	}

	video, err := service.TogglePublishStatus("v1", "owner-id")
	if err != nil {
		t.Fatalf("TogglePublishStatus() unexpected error = %v", err)
	}
	if video.IsPublished {
		t.Error("TogglePublishStatus() should have unpublished the video")
	}

	if err := service.Delete("v1", "owner-id"); err != nil {
		t.Fatalf("Delete() by owner unexpected error = %v", err)
	}
	if _, err := videoRepo.FindByID("v1"); err == nil {
		t.Error("Delete() left the video in the repository")
	}
}
