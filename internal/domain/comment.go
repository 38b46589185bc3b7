package domain

import "time"

type Comment struct {
	ID        string    `json:"id"`
	Video     string    `json:"video"`
	Owner     string    `json:"owner"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}
