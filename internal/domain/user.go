package domain

import "time"

// User is the principal record. Password and RefreshToken are persisted but
// must be stripped before a user ever leaves the service layer.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	Avatar       string    `json:"avatar"`
	CoverImage   string    `json:"cover_image,omitempty"`
	Password     string    `json:"password,omitempty"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	WatchHistory []string  `json:"watch_history,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Sanitized returns a copy safe for responses: no credential material.
func (u *User) Sanitized() *User {
	clean := *u
	clean.Password = ""
	clean.RefreshToken = ""
	return &clean
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required,min=1,max=100"`
}

// LoginRequest accepts either username or email as identifier.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type LoginResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type UpdateAccountRequest struct {
	FullName string `json:"full_name" validate:"omitempty,min=1,max=100"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// ChannelProfile is a user's public face plus query-time relationship counts.
type ChannelProfile struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	FullName        string    `json:"full_name"`
	Avatar          string    `json:"avatar"`
	CoverImage      string    `json:"cover_image,omitempty"`
	SubscriberCount int       `json:"subscriber_count"`
	SubscribedTo    int       `json:"subscribed_to_count"`
	IsSubscribed    bool      `json:"is_subscribed"`
	CreatedAt       time.Time `json:"created_at"`
}

// UserSummary is the compact projection used in subscriber listings.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Avatar   string `json:"avatar"`
}

func (u *User) Summary() *UserSummary {
	return &UserSummary{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Avatar:   u.Avatar,
	}
}
