package service

import (
	"testing"

	"streamhub-server/internal/apperr"
	"streamhub-server/internal/domain"
	"streamhub-server/internal/query"
)

func TestCommentService_Add(t *testing.T) {
	videoRepo := newMockVideoRepository()
	videoRepo.Create(&domain.Video{ID: "video-1", Owner: "owner-id", IsPublished: true})

	notifier := newMockNotifier()
	service := NewCommentService(newMockCommentRepository(), videoRepo, notifier)

	comment, err := service.Add("video-1", &domain.User{ID: "viewer-id", Username: "viewer"}, "nice one")
	if err != nil {
		t.Fatalf("Add() unexpected error = %v", err)
	}
	if comment.Owner != "viewer-id" || comment.Video != "video-1" {
		t.Errorf("Add() comment = %+v, wrong ownership", comment)
	}
	if notifier.sent("owner-id") != 1 {
		t.Errorf("Add() owner notifications = %d, want 1", notifier.sent("owner-id"))
	}

	// Commenting on your own video stays quiet.
	if _, err := service.Add("video-1", &domain.User{ID: "owner-id", Username: "owner"}, "thanks all"); err != nil {
		t.Fatalf("Add() unexpected error = %v", err)
	}
	if notifier.sent("owner-id") != 1 {
		t.Error("Add() should not notify owners about their own comments")
	}

	if _, err := service.Add("no-such-video", &domain.User{ID: "viewer-id"}, "hello"); apperr.KindOf(err) != apperr.NotFound {
		t.Errorf("Add() on missing video error kind = %v, want NotFound", apperr.KindOf(err))
	}
}

func TestCommentService_ListByVideo(t *testing.T) {
	videoRepo := newMockVideoRepository()
	videoRepo.Create(&domain.Video{ID: "video-1", Owner: "owner-id", IsPublished: true})

	service := NewCommentService(newMockCommentRepository(), videoRepo, nil)
	author := &domain.User{ID: "viewer-id", Username: "viewer"}

	for i := 0; i < 12; i++ {
		if _, err := service.Add("video-1", author, "comment"); err != nil {
			t.Fatalf("Add() unexpected error = %v", err)
		}
	}

	result, err := service.ListByVideo("video-1", query.Defaults())
	if err != nil {
		t.Fatalf("ListByVideo() unexpected error = %v", err)
	}
	if result.Total != 12 {
		t.Errorf("ListByVideo() total = %d, want 12", result.Total)
	}
	if len(result.Items) != 10 {
		t.Errorf("ListByVideo() items = %d, want default page size 10", len(result.Items))
	}
	if result.TotalPages != 2 {
		t.Errorf("ListByVideo() totalPages = %d, want 2", result.TotalPages)
	}
}

func TestCommentService_UpdateDelete(t *testing.T) {
	videoRepo := newMockVideoRepository()
	videoRepo.Create(&domain.Video{ID: "video-1", Owner: "owner-id", IsPublished: true})

	service := NewCommentService(newMockCommentRepository(), videoRepo, nil)

	comment, err := service.Add("video-1", &domain.User{ID: "viewer-id", Username: "viewer"}, "first take")
	if err != nil {
		t.Fatalf("Add() unexpected error = %v", err)
	}

	updated, err := service.Update(comment.ID, "second take")
	if err != nil {
		t.Fatalf("Update() unexpected error = %v", err)
	}
	if updated.Content != "second take" {
		t.Errorf("Update() content = %q, want %q", updated.Content, "second take")
	}

	if err := service.Delete(comment.ID); err != nil {
		t.Fatalf("Delete() unexpected error = %v", err)
	}
	if err := service.Delete(comment.ID); apperr.KindOf(err) != apperr.NotFound {
		t.Errorf("Delete() twice error kind = %v, want NotFound", apperr.KindOf(err))
	}
}
