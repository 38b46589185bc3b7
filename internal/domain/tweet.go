package domain

import "time"

type Tweet struct {
	ID        string    `json:"id"`
	Owner     string    `json:"owner"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TweetRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}
