package service

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"

	"streamhub-server/internal/apperr"
	"streamhub-server/internal/domain"
	"streamhub-server/internal/query"
	"streamhub-server/internal/realtime"
	"streamhub-server/internal/repository"
)

type mockUserRepository struct {
	users map[string]*domain.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*domain.User)}
}

func (m *mockUserRepository) Create(user *domain.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) FindByID(id string) (*domain.User, error) {
	if user, ok := m.users[id]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, apperr.New(apperr.NotFound, "user not found")
}

func (m *mockUserRepository) FindByUsername(username string) (*domain.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, apperr.New(apperr.NotFound, "user not found")
}

func (m *mockUserRepository) FindByEmail(email string) (*domain.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperr.New(apperr.NotFound, "user not found")
}

func (m *mockUserRepository) FindByIdentifier(identifier string) (*domain.User, error) {
	for _, user := range m.users {
		if user.Username == identifier || user.Email == identifier {
			return user, nil
		}
	}
	return nil, apperr.New(apperr.NotFound, "user not found")
}

func (m *mockUserRepository) Update(user *domain.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) SetRefreshToken(id, token string) error {
	user, ok := m.users[id]
	if !ok {
		return apperr.New(apperr.NotFound, "user not found")
	}
	user.RefreshToken = token
	return nil
}

func (m *mockUserRepository) AppendWatchHistory(id, videoID string) error {
	user, ok := m.users[id]
	if !ok {
		return apperr.New(apperr.NotFound, "user not found")
	}
	kept := user.WatchHistory[:0]
	for _, v := range user.WatchHistory {
		if v != videoID {
			kept = append(kept, v)
		}
	}
	user.WatchHistory = append(kept, videoID)
	return nil
}

func (m *mockUserRepository) EmailExists(email string) (bool, error) {
	_, err := m.FindByEmail(email)
	return err == nil, nil
}

func (m *mockUserRepository) UsernameExists(username string) (bool, error) {
	_, err := m.FindByUsername(username)
	return err == nil, nil
}

type mockVideoRepository struct {
	videos map[string]*domain.Video
}

func newMockVideoRepository() *mockVideoRepository {
	return &mockVideoRepository{videos: make(map[string]*domain.Video)}
}

func (m *mockVideoRepository) Create(video *domain.Video) error {
	m.videos[video.ID] = video
	return nil
}

// FindByID returns a copy, like the real store decoding a fresh document;
// callers mutating the result must not see their writes aliased back.
func (m *mockVideoRepository) FindByID(id string) (*domain.Video, error) {
	if video, ok := m.videos[id]; ok {
		clone := *video
		return &clone, nil
	}
	return nil, apperr.New(apperr.NotFound, "video not found")
}

func (m *mockVideoRepository) FindByIDs(ids []string) ([]*domain.Video, error) {
	videos := make([]*domain.Video, 0, len(ids))
	for _, id := range ids {
		if video, ok := m.videos[id]; ok {
			clone := *video
			videos = append(videos, &clone)
		}
	}
	return videos, nil
}

func (m *mockVideoRepository) List(filter repository.VideoFilter, p query.Params) ([]*domain.Video, error) {
	var videos []*domain.Video
	for _, video := range m.videos {
		if filter.Owner != "" && video.Owner != filter.Owner {
			continue
		}
		if filter.PublishedOnly && !video.IsPublished {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(video.Title), strings.ToLower(filter.Search)) {
			continue
		}
		videos = append(videos, video)
	}
	sort.Slice(videos, func(i, j int) bool {
		if p.Descending {
			return videos[i].CreatedAt.After(videos[j].CreatedAt)
		}
		return videos[i].CreatedAt.Before(videos[j].CreatedAt)
	})
	return videos, nil
}

func (m *mockVideoRepository) Update(video *domain.Video) error {
	if _, ok := m.videos[video.ID]; !ok {
		return apperr.New(apperr.NotFound, "video not found")
	}
	m.videos[video.ID] = video
	return nil
}

func (m *mockVideoRepository) IncrementViews(id string) error {
	video, ok := m.videos[id]
	if !ok {
		return apperr.New(apperr.NotFound, "video not found")
	}
	video.Views++
	return nil
}

func (m *mockVideoRepository) Delete(id string) error {
	if _, ok := m.videos[id]; !ok {
		return apperr.New(apperr.NotFound, "video not found")
	}
	delete(m.videos, id)
	return nil
}

type mockCommentRepository struct {
	comments map[string]*domain.Comment
}

func newMockCommentRepository() *mockCommentRepository {
	return &mockCommentRepository{comments: make(map[string]*domain.Comment)}
}

func (m *mockCommentRepository) Create(comment *domain.Comment) error {
	m.comments[comment.ID] = comment
	return nil
}

func (m *mockCommentRepository) FindByID(id string) (*domain.Comment, error) {
	if comment, ok := m.comments[id]; ok {
		return comment, nil
	}
	return nil, apperr.New(apperr.NotFound, "comment not found")
}

func (m *mockCommentRepository) ListByVideo(videoID string, p query.Params) ([]*domain.Comment, error) {
	var comments []*domain.Comment
	for _, comment := range m.comments {
		if comment.Video == videoID {
			comments = append(comments, comment)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		if p.Descending {
			return comments[i].CreatedAt.After(comments[j].CreatedAt)
		}
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	return comments, nil
}

func (m *mockCommentRepository) Update(comment *domain.Comment) error {
	if _, ok := m.comments[comment.ID]; !ok {
		return apperr.New(apperr.NotFound, "comment not found")
	}
	m.comments[comment.ID] = comment
	return nil
}

func (m *mockCommentRepository) Delete(id string) error {
	if _, ok := m.comments[id]; !ok {
		return apperr.New(apperr.NotFound, "comment not found")
	}
	delete(m.comments, id)
	return nil
}

type mockLikeRepository struct {
	likes map[string]*domain.Like
}

func newMockLikeRepository() *mockLikeRepository {
	return &mockLikeRepository{likes: make(map[string]*domain.Like)}
}

func (m *mockLikeRepository) Create(like *domain.Like) error {
	m.likes[like.ID] = like
	return nil
}

func (m *mockLikeRepository) Delete(id string) error {
	if _, ok := m.likes[id]; !ok {
		return apperr.New(apperr.NotFound, "like not found")
	}
	delete(m.likes, id)
	return nil
}

func (m *mockLikeRepository) FindByTarget(kind domain.LikeTarget, targetID, userID string) (*domain.Like, error) {
	for _, like := range m.likes {
		if like.TargetID(kind) == targetID && like.LikedBy == userID {
			return like, nil
		}
	}
	return nil, apperr.New(apperr.NotFound, "like not found")
}

func (m *mockLikeRepository) ListByUser(kind domain.LikeTarget, userID string) ([]*domain.Like, error) {
	var likes []*domain.Like
	for _, like := range m.likes {
		if like.LikedBy == userID && like.TargetID(kind) != "" {
			likes = append(likes, like)
		}
	}
	return likes, nil
}

func (m *mockLikeRepository) CountByTarget(kind domain.LikeTarget, targetID string) (int, error) {
	count := 0
	for _, like := range m.likes {
		if like.TargetID(kind) == targetID {
			count++
		}
	}
	return count, nil
}

func (m *mockLikeRepository) CountByTargets(kind domain.LikeTarget, targetIDs []string) (int, error) {
	count := 0
	for _, id := range targetIDs {
		n, _ := m.CountByTarget(kind, id)
		count += n
	}
	return count, nil
}

type mockSubscriptionRepository struct {
	subs map[string]*domain.Subscription
}

func newMockSubscriptionRepository() *mockSubscriptionRepository {
	return &mockSubscriptionRepository{subs: make(map[string]*domain.Subscription)}
}

func (m *mockSubscriptionRepository) Create(sub *domain.Subscription) error {
	m.subs[sub.ID] = sub
	return nil
}

func (m *mockSubscriptionRepository) Delete(id string) error {
	if _, ok := m.subs[id]; !ok {
		return apperr.New(apperr.NotFound, "subscription not found")
	}
	delete(m.subs, id)
	return nil
}

func (m *mockSubscriptionRepository) FindByPair(subscriberID, channelID string) (*domain.Subscription, error) {
	for _, sub := range m.subs {
		if sub.Subscriber == subscriberID && sub.Channel == channelID {
			return sub, nil
		}
	}
	return nil, apperr.New(apperr.NotFound, "subscription not found")
}

func (m *mockSubscriptionRepository) ListByChannel(channelID string) ([]*domain.Subscription, error) {
	var subs []*domain.Subscription
	for _, sub := range m.subs {
		if sub.Channel == channelID {
			subs = append(subs, sub)
		}
	}
	return subs, nil
}

func (m *mockSubscriptionRepository) ListBySubscriber(subscriberID string) ([]*domain.Subscription, error) {
	var subs []*domain.Subscription
	for _, sub := range m.subs {
		if sub.Subscriber == subscriberID {
			subs = append(subs, sub)
		}
	}
	return subs, nil
}

func (m *mockSubscriptionRepository) CountByChannel(channelID string) (int, error) {
	subs, _ := m.ListByChannel(channelID)
	return len(subs), nil
}

func (m *mockSubscriptionRepository) CountBySubscriber(subscriberID string) (int, error) {
	subs, _ := m.ListBySubscriber(subscriberID)
	return len(subs), nil
}

type mockPlaylistRepository struct {
	playlists map[string]*domain.Playlist
}

func newMockPlaylistRepository() *mockPlaylistRepository {
	return &mockPlaylistRepository{playlists: make(map[string]*domain.Playlist)}
}

func (m *mockPlaylistRepository) Create(playlist *domain.Playlist) error {
	m.playlists[playlist.ID] = playlist
	return nil
}

func (m *mockPlaylistRepository) FindByID(id string) (*domain.Playlist, error) {
	if playlist, ok := m.playlists[id]; ok {
		return playlist, nil
	}
	return nil, apperr.New(apperr.NotFound, "playlist not found")
}

func (m *mockPlaylistRepository) ListByOwner(ownerID string) ([]*domain.Playlist, error) {
	var playlists []*domain.Playlist
	for _, playlist := range m.playlists {
		if playlist.Owner == ownerID {
			playlists = append(playlists, playlist)
		}
	}
	return playlists, nil
}

func (m *mockPlaylistRepository) Update(playlist *domain.Playlist) error {
	if _, ok := m.playlists[playlist.ID]; !ok {
		return apperr.New(apperr.NotFound, "playlist not found")
	}
	m.playlists[playlist.ID] = playlist
	return nil
}

func (m *mockPlaylistRepository) Delete(id string) error {
	if _, ok := m.playlists[id]; !ok {
		return apperr.New(apperr.NotFound, "playlist not found")
	}
	delete(m.playlists, id)
	return nil
}

type mockTweetRepository struct {
	tweets map[string]*domain.Tweet
}

func newMockTweetRepository() *mockTweetRepository {
	return &mockTweetRepository{tweets: make(map[string]*domain.Tweet)}
}

func (m *mockTweetRepository) Create(tweet *domain.Tweet) error {
	m.tweets[tweet.ID] = tweet
	return nil
}

func (m *mockTweetRepository) FindByID(id string) (*domain.Tweet, error) {
	if tweet, ok := m.tweets[id]; ok {
		return tweet, nil
	}
	return nil, apperr.New(apperr.NotFound, "tweet not found")
}

func (m *mockTweetRepository) ListByOwner(ownerID string, p query.Params) ([]*domain.Tweet, error) {
	var tweets []*domain.Tweet
	for _, tweet := range m.tweets {
		if tweet.Owner == ownerID {
			tweets = append(tweets, tweet)
		}
	}
	sort.Slice(tweets, func(i, j int) bool {
		if p.Descending {
			return tweets[i].CreatedAt.After(tweets[j].CreatedAt)
		}
		return tweets[i].CreatedAt.Before(tweets[j].CreatedAt)
	})
	return tweets, nil
}

func (m *mockTweetRepository) Update(tweet *domain.Tweet) error {
	if _, ok := m.tweets[tweet.ID]; !ok {
		return apperr.New(apperr.NotFound, "tweet not found")
	}
	m.tweets[tweet.ID] = tweet
	return nil
}

func (m *mockTweetRepository) Delete(id string) error {
	if _, ok := m.tweets[id]; !ok {
		return apperr.New(apperr.NotFound, "tweet not found")
	}
	delete(m.tweets, id)
	return nil
}

type mockMediaStore struct {
	saved []string
	err   error
}

func (m *mockMediaStore) Save(_ context.Context, name string, _ io.Reader) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.saved = append(m.saved, name)
	return "https://cdn.test/" + name, nil
}

type mockProber struct {
	duration float64
	err      error
}

func (m *mockProber) Duration(context.Context, string) (float64, error) {
	return m.duration, m.err
}

type mockNotifier struct {
	mu       sync.Mutex
	messages map[string][]*realtime.Message
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{messages: make(map[string][]*realtime.Message)}
}

func (m *mockNotifier) BroadcastToUser(userID string, message *realtime.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages[userID] = append(m.messages[userID], message)
	return nil
}

func (m *mockNotifier) sent(userID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages[userID])
}
