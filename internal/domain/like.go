package domain

import "time"

// LikeTarget names the kind of entity a like row points at. Exactly one of
// the target fields on Like is set, matching the kind.
type LikeTarget string

const (
	LikeTargetVideo   LikeTarget = "video"
	LikeTargetComment LikeTarget = "comment"
	LikeTargetTweet   LikeTarget = "tweet"
)

// Like is a togglable (actor, target) relationship row. Its existence is the
// whole state; no counters are stored anywhere.
type Like struct {
	ID        string    `json:"id"`
	Video     string    `json:"video,omitempty"`
	Comment   string    `json:"comment,omitempty"`
	Tweet     string    `json:"tweet,omitempty"`
	LikedBy   string    `json:"liked_by"`
	CreatedAt time.Time `json:"created_at"`
}

func (l *Like) TargetID(kind LikeTarget) string {
	switch kind {
	case LikeTargetVideo:
		return l.Video
	case LikeTargetComment:
		return l.Comment
	case LikeTargetTweet:
		return l.Tweet
	}
	return ""
}

// ToggleResult reports which side of the toggle this request landed on.
type ToggleResult struct {
	Active bool `json:"active"`
}
