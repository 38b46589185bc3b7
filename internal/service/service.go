// Package service holds the business rules. Handlers stay thin; stores and
// collaborators are reached only through interfaces so every rule is testable
// against in-memory fakes.
package service

import (
	"io"

	"streamhub-server/internal/realtime"
)

// UploadFile is one inbound media file handed down from the multipart layer.
type UploadFile struct {
	Name   string
	Reader io.Reader
}

// ActivityNotifier pushes channel activity to the owner's live dashboard
// connections. *realtime.Manager satisfies it. Services tolerate nil.
type ActivityNotifier interface {
	BroadcastToUser(userID string, message *realtime.Message) error
}
