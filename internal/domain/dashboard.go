package domain

// ChannelStats are derived at query time from the video and relationship
// collections; none of these numbers are stored.
type ChannelStats struct {
	TotalSubscribers int   `json:"total_subscribers"`
	TotalVideos      int   `json:"total_videos"`
	TotalViews       int64 `json:"total_views"`
	TotalLikes       int   `json:"total_likes"`
}
