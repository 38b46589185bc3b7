package domain

import "time"

// Subscription links a subscriber to a channel (both user ids). Existence of
// the row is the subscription state.
type Subscription struct {
	ID         string    `json:"id"`
	Subscriber string    `json:"subscriber"`
	Channel    string    `json:"channel"`
	CreatedAt  time.Time `json:"created_at"`
}
