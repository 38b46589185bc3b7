package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"streamhub-server/internal/config"
	"streamhub-server/internal/handler"
	"streamhub-server/internal/media"
	"streamhub-server/internal/middleware"
	"streamhub-server/internal/realtime"
	"streamhub-server/internal/repository"
	"streamhub-server/internal/service"
	"streamhub-server/internal/storage"
	"streamhub-server/pkg/logger"

	_ "github.com/go-kivik/kivik/v4/couchdb"

	"github.com/go-kivik/kivik/v4"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// Each collection lives in its own database so documents never need a type
// discriminator.
var collections = []string{
	"users",
	"videos",
	"comments",
	"likes",
	"subscriptions",
	"playlists",
	"tweets",
}

// sortableFields get a mango index per collection at startup so sorted finds
// do not fall back to full scans.
var sortableFields = []string{"created_at", "updated_at", "views", "duration", "title"}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Server.Env, cfg.Logging.Level)
	zlog.Logger = log

	couchURL := fmt.Sprintf("http://%s:%s@%s:%s",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
	)

	client, err := kivik.New("couch", couchURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to couchdb")
	}

	dbNames, err := ensureDatabases(context.Background(), client, cfg.Database.Name, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to prepare databases")
	}

	userRepo := repository.NewUserRepository(client, dbNames["users"])
	videoRepo := repository.NewVideoRepository(client, dbNames["videos"])
	commentRepo := repository.NewCommentRepository(client, dbNames["comments"])
	likeRepo := repository.NewLikeRepository(client, dbNames["likes"])
	subRepo := repository.NewSubscriptionRepository(client, dbNames["subscriptions"])
	playlistRepo := repository.NewPlaylistRepository(client, dbNames["playlists"])
	tweetRepo := repository.NewTweetRepository(client, dbNames["tweets"])

	mediaStore, err := storage.NewS3MediaStore(context.Background(), cfg.ObjectStore)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize media store")
	}

	prober := media.NewFFProbe("ffprobe", 30*time.Second)

	wsManager := realtime.NewManager(
		cfg.WebSocket.MaxConnPerUser,
		cfg.WebSocket.WriteWait,
		cfg.WebSocket.PongWait,
		cfg.WebSocket.PingPeriod,
	)
	go wsManager.Run()

	authService := service.NewAuthService(userRepo, mediaStore, cfg.JWT)
	userService := service.NewUserService(userRepo, subRepo, videoRepo, mediaStore)
	videoService := service.NewVideoService(videoRepo, userRepo, mediaStore, prober)
	commentService := service.NewCommentService(commentRepo, videoRepo, wsManager)
	likeService := service.NewLikeService(likeRepo, videoRepo, commentRepo, tweetRepo, wsManager)
	subService := service.NewSubscriptionService(subRepo, userRepo, wsManager)
	playlistService := service.NewPlaylistService(playlistRepo, videoRepo)
	tweetService := service.NewTweetService(tweetRepo)
	dashboardService := service.NewDashboardService(videoRepo, subRepo, likeRepo)

	secureCookies := cfg.Server.Env == "production"

	authHandler := handler.NewAuthHandler(authService, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration, secureCookies)
	userHandler := handler.NewUserHandler(userService)
	videoHandler := handler.NewVideoHandler(videoService)
	commentHandler := handler.NewCommentHandler(commentService)
	likeHandler := handler.NewLikeHandler(likeService)
	subHandler := handler.NewSubscriptionHandler(subService)
	playlistHandler := handler.NewPlaylistHandler(playlistService)
	tweetHandler := handler.NewTweetHandler(tweetService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	wsHandler := handler.NewWebSocketHandler(wsManager, cfg.JWT.AccessSecret)
	healthHandler := handler.NewHealthHandler(client)

	r := mux.NewRouter()

	r.Use(middleware.LoggerMiddleware(log))
	r.Use(middleware.CORSMiddleware(
		cfg.CORS.AllowedOrigins,
		cfg.CORS.AllowedMethods,
		cfg.CORS.AllowedHeaders,
	))

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST", "OPTIONS")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	api.HandleFunc("/auth/refresh", authHandler.Refresh).Methods("POST", "OPTIONS")

	// Public reads that personalize for signed-in viewers.
	public := api.PathPrefix("").Subrouter()
	public.Use(middleware.OptionalAuthMiddleware(cfg.JWT.AccessSecret, userRepo))

	public.HandleFunc("/videos", videoHandler.List).Methods("GET", "OPTIONS")
	public.HandleFunc("/videos/{videoId}", videoHandler.Get).Methods("GET", "OPTIONS")
	public.HandleFunc("/videos/{videoId}/comments", commentHandler.ListByVideo).Methods("GET", "OPTIONS")
	public.HandleFunc("/users/{userId}/playlists", playlistHandler.ListByUser).Methods("GET", "OPTIONS")
	public.HandleFunc("/users/{userId}/tweets", tweetHandler.ListByUser).Methods("GET", "OPTIONS")
	public.HandleFunc("/playlists/{playlistId}", playlistHandler.Get).Methods("GET", "OPTIONS")
	public.HandleFunc("/subscriptions/c/{channelId}/subscribers", subHandler.Subscribers).Methods("GET", "OPTIONS")

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware(cfg.JWT.AccessSecret, userRepo))

	protected.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST", "OPTIONS")
	protected.HandleFunc("/auth/change-password", authHandler.ChangePassword).Methods("POST", "OPTIONS")

	protected.HandleFunc("/users/me", userHandler.CurrentUser).Methods("GET", "OPTIONS")
	protected.HandleFunc("/users/me", userHandler.UpdateAccount).Methods("PATCH", "OPTIONS")
	protected.HandleFunc("/users/me/avatar", userHandler.UpdateAvatar).Methods("PATCH", "OPTIONS")
	protected.HandleFunc("/users/me/cover-image", userHandler.UpdateCoverImage).Methods("PATCH", "OPTIONS")
	protected.HandleFunc("/users/me/watch-history", userHandler.WatchHistory).Methods("GET", "OPTIONS")
	protected.HandleFunc("/users/c/{username}", userHandler.ChannelProfile).Methods("GET", "OPTIONS")

	protected.HandleFunc("/videos", videoHandler.Publish).Methods("POST", "OPTIONS")
	protected.HandleFunc("/videos/{videoId}", videoHandler.Update).Methods("PATCH", "OPTIONS")
	protected.HandleFunc("/videos/{videoId}", videoHandler.Delete).Methods("DELETE", "OPTIONS")
	protected.HandleFunc("/videos/{videoId}/toggle-publish", videoHandler.TogglePublishStatus).Methods("PATCH", "OPTIONS")

	protected.HandleFunc("/videos/{videoId}/comments", commentHandler.Add).Methods("POST", "OPTIONS")
	protected.HandleFunc("/comments/{commentId}", commentHandler.Update).Methods("PATCH", "OPTIONS")
	protected.HandleFunc("/comments/{commentId}", commentHandler.Delete).Methods("DELETE", "OPTIONS")

	protected.HandleFunc("/likes/toggle/video/{videoId}", likeHandler.ToggleVideo).Methods("POST", "OPTIONS")
	protected.HandleFunc("/likes/toggle/comment/{commentId}", likeHandler.ToggleComment).Methods("POST", "OPTIONS")
	protected.HandleFunc("/likes/toggle/tweet/{tweetId}", likeHandler.ToggleTweet).Methods("POST", "OPTIONS")
	protected.HandleFunc("/likes/videos", likeHandler.LikedVideos).Methods("GET", "OPTIONS")

	protected.HandleFunc("/subscriptions/c/{channelId}", subHandler.Toggle).Methods("POST", "OPTIONS")
	protected.HandleFunc("/subscriptions/me", subHandler.SubscribedChannels).Methods("GET", "OPTIONS")

	protected.HandleFunc("/playlists", playlistHandler.Create).Methods("POST", "OPTIONS")
	protected.HandleFunc("/playlists/{playlistId}", playlistHandler.Update).Methods("PATCH", "OPTIONS")
	protected.HandleFunc("/playlists/{playlistId}", playlistHandler.Delete).Methods("DELETE", "OPTIONS")
	protected.HandleFunc("/playlists/{playlistId}/videos/{videoId}", playlistHandler.AddVideo).Methods("PATCH", "OPTIONS")
	protected.HandleFunc("/playlists/{playlistId}/videos/{videoId}", playlistHandler.RemoveVideo).Methods("DELETE", "OPTIONS")

	protected.HandleFunc("/tweets", tweetHandler.Create).Methods("POST", "OPTIONS")
	protected.HandleFunc("/tweets/{tweetId}", tweetHandler.Update).Methods("PATCH", "OPTIONS")
	protected.HandleFunc("/tweets/{tweetId}", tweetHandler.Delete).Methods("DELETE", "OPTIONS")

	protected.HandleFunc("/dashboard/stats", dashboardHandler.Stats).Methods("GET", "OPTIONS")
	protected.HandleFunc("/dashboard/videos", dashboardHandler.Videos).Methods("GET", "OPTIONS")

	r.HandleFunc("/ws", wsHandler.HandleConnection)
	r.HandleFunc("/health", healthHandler.Health).Methods("GET")

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Str("env", cfg.Server.Env).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}

	log.Info().Msg("server stopped")
}

// ensureDatabases creates one database per collection plus the mango indexes
// the sorted finds rely on. Returns collection name -> database name.
func ensureDatabases(ctx context.Context, client *kivik.Client, prefix string, log zerolog.Logger) (map[string]string, error) {
	dbNames := make(map[string]string, len(collections))

	for _, collection := range collections {
		name := fmt.Sprintf("%s_%s", prefix, collection)
		dbNames[collection] = name

		exists, err := client.DBExists(ctx, name)
		if err != nil {
			return nil, err
		}
		if !exists {
			if err := client.CreateDB(ctx, name); err != nil {
				return nil, err
			}
			log.Info().Str("database", name).Msg("created database")
		}

		db := client.DB(name)
		for _, field := range sortableFields {
			index := map[string]interface{}{
				"fields": []string{field},
			}
			if err := db.CreateIndex(ctx, "", "", index); err != nil {
				return nil, fmt.Errorf("create index %s on %s: %w", field, name, err)
			}
		}
	}

	return dbNames, nil
}
