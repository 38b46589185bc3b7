package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"streamhub-server/internal/apperr"
	"streamhub-server/internal/config"
	"streamhub-server/internal/domain"
	"streamhub-server/internal/repository"
	"streamhub-server/internal/storage"
	"streamhub-server/pkg/hash"
	"streamhub-server/pkg/jwt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type AuthService struct {
	userRepo repository.UserRepository
	media    storage.MediaStore
	jwtCfg   config.JWTConfig
}

func NewAuthService(userRepo repository.UserRepository, media storage.MediaStore, jwtCfg config.JWTConfig) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		media:    media,
		jwtCfg:   jwtCfg,
	}
}

// Register creates the principal, uploading avatar (required) and cover
// image (optional) through the media collaborator first.
func (s *AuthService) Register(ctx context.Context, req *domain.RegisterRequest, avatar, coverImage *UploadFile) (*domain.User, error) {
	username := strings.ToLower(req.Username)
	email := strings.ToLower(req.Email)

	emailExists, err := s.userRepo.EmailExists(email)
	if err != nil {
		return nil, err
	}
	if emailExists {
		return nil, apperr.New(apperr.Conflict, "user with email or username already exists")
	}

	usernameExists, err := s.userRepo.UsernameExists(username)
	if err != nil {
		return nil, err
	}
	if usernameExists {
		return nil, apperr.New(apperr.Conflict, "user with email or username already exists")
	}

	if avatar == nil {
		return nil, apperr.New(apperr.Validation, "avatar file is required")
	}

	avatarURL, err := s.media.Save(ctx, fmt.Sprintf("avatars/%s-%s", uuid.New().String(), avatar.Name), avatar.Reader)
	if err != nil {
		return nil, apperr.Wrap(apperr.Upload, "failed to upload avatar", err)
	}

	coverURL := ""
	if coverImage != nil {
		coverURL, err = s.media.Save(ctx, fmt.Sprintf("covers/%s-%s", uuid.New().String(), coverImage.Name), coverImage.Reader)
		if err != nil {
			return nil, apperr.Wrap(apperr.Upload, "failed to upload cover image", err)
		}
	}

	hashedPassword, err := hash.Password(req.Password)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to hash password", err)
	}

	user := &domain.User{
		ID:         uuid.New().String(),
		Username:   username,
		Email:      email,
		FullName:   req.FullName,
		Avatar:     avatarURL,
		CoverImage: coverURL,
		Password:   hashedPassword,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return user.Sanitized(), nil
}

func (s *AuthService) Login(req *domain.LoginRequest) (*domain.LoginResponse, error) {
	user, err := s.userRepo.FindByIdentifier(strings.ToLower(req.Identifier))
	if err != nil {
		return nil, err
	}

	if err := hash.Compare(user.Password, req.Password); err != nil {
		return nil, apperr.New(apperr.Unauthenticated, "invalid credentials")
	}

	accessToken, refreshToken, err := s.issueTokenPair(user)
	if err != nil {
		return nil, err
	}

	return &domain.LoginResponse{
		User:         user.Sanitized(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.jwtCfg.AccessExpiration.Seconds()),
	}, nil
}

// Refresh rotates the token pair. Validity of the presented token requires
// signature, expiry, and equality with the value currently stored on the
// principal; a stale-but-well-signed token is treated as reuse.
func (s *AuthService) Refresh(presented string) (*domain.TokenPairResponse, error) {
	claims, err := jwt.ValidateToken(presented, s.jwtCfg.RefreshSecret)
	if err != nil {
		return nil, apperr.New(apperr.Unauthenticated, "invalid refresh token")
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, apperr.New(apperr.Unauthenticated, "invalid refresh token")
	}

	if user.RefreshToken == "" || user.RefreshToken != presented {
		log.Warn().Str("user", user.ID).Msg("refresh token reuse detected")
		return nil, apperr.New(apperr.Unauthenticated, "invalid refresh token")
	}

	accessToken, refreshToken, err := s.issueTokenPair(user)
	if err != nil {
		return nil, err
	}

	return &domain.TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.jwtCfg.AccessExpiration.Seconds()),
	}, nil
}

// Logout invalidates the stored refresh token. The access token simply ages
// out; it was never persisted.
func (s *AuthService) Logout(userID string) error {
	return s.userRepo.SetRefreshToken(userID, "")
}

func (s *AuthService) ChangePassword(userID string, req *domain.ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return err
	}

	if err := hash.Compare(user.Password, req.OldPassword); err != nil {
		return apperr.New(apperr.Unauthenticated, "old password is incorrect")
	}

	hashedPassword, err := hash.Password(req.NewPassword)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to hash password", err)
	}

	user.Password = hashedPassword
	return s.userRepo.Update(user)
}

// issueTokenPair generates both tokens and persists the refresh token on the
// principal in a single write, invalidating any prior session.
func (s *AuthService) issueTokenPair(user *domain.User) (string, string, error) {
	accessToken, err := jwt.GenerateAccessToken(
		user.ID, user.Username, user.Email, user.FullName,
		s.jwtCfg.AccessExpiration, s.jwtCfg.AccessSecret,
	)
	if err != nil {
		return "", "", apperr.Wrap(apperr.Internal, "failed to generate access token", err)
	}

	refreshToken, err := jwt.GenerateRefreshToken(user.ID, s.jwtCfg.RefreshExpiration, s.jwtCfg.RefreshSecret)
	if err != nil {
		return "", "", apperr.Wrap(apperr.Internal, "failed to generate refresh token", err)
	}

	if err := s.userRepo.SetRefreshToken(user.ID, refreshToken); err != nil {
		return "", "", err
	}
	user.RefreshToken = refreshToken

	return accessToken, refreshToken, nil
}
