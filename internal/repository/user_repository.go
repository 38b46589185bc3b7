package repository

import (
	"context"
	"fmt"
	"time"

	"streamhub-server/internal/apperr"
	"streamhub-server/internal/domain"

	"github.com/go-kivik/kivik/v4"
)

type UserRepository interface {
	Create(user *domain.User) error
	FindByID(id string) (*domain.User, error)
	FindByUsername(username string) (*domain.User, error)
	FindByEmail(email string) (*domain.User, error)
	FindByIdentifier(identifier string) (*domain.User, error)
	Update(user *domain.User) error
	SetRefreshToken(id, token string) error
	AppendWatchHistory(id, videoID string) error
	EmailExists(email string) (bool, error)
	UsernameExists(username string) (bool, error)
}

type userRepository struct {
	client *kivik.Client
	dbName string
}

func NewUserRepository(client *kivik.Client, dbName string) UserRepository {
	return &userRepository{
		client: client,
		dbName: dbName,
	}
}

func (r *userRepository) Create(user *domain.User) error {
	db := r.client.DB(r.dbName)

	docID := fmt.Sprintf("user:%s", user.ID)
	_, err := db.Put(context.Background(), docID, user)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to create user", err)
	}

	return nil
}

func (r *userRepository) FindByID(id string) (*domain.User, error) {
	db := r.client.DB(r.dbName)

	docID := fmt.Sprintf("user:%s", id)
	row := db.Get(context.Background(), docID)

	var user domain.User
	if err := row.ScanDoc(&user); err != nil {
		if kivik.HTTPStatus(err) == 404 {
			return nil, apperr.New(apperr.NotFound, "user not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "failed to find user by ID", err)
	}

	return &user, nil
}

func (r *userRepository) FindByUsername(username string) (*domain.User, error) {
	return r.findOne(map[string]interface{}{"username": username})
}

func (r *userRepository) FindByEmail(email string) (*domain.User, error) {
	return r.findOne(map[string]interface{}{"email": email})
}

// FindByIdentifier matches either username or email.
func (r *userRepository) FindByIdentifier(identifier string) (*domain.User, error) {
	return r.findOne(map[string]interface{}{
		"$or": []map[string]interface{}{
			{"username": identifier},
			{"email": identifier},
		},
	})
}

func (r *userRepository) findOne(selector map[string]interface{}) (*domain.User, error) {
	db := r.client.DB(r.dbName)

	query := map[string]interface{}{
		"selector": selector,
		"limit":    1,
	}

	rows := db.Find(context.Background(), query)
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to query user", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, apperr.New(apperr.NotFound, "user not found")
	}

	var user domain.User
	if err := rows.ScanDoc(&user); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to scan user", err)
	}

	return &user, nil
}

func (r *userRepository) Update(user *domain.User) error {
	db := r.client.DB(r.dbName)
	docID := fmt.Sprintf("user:%s", user.ID)

	existing, err := r.fetchDoc(docID)
	if err != nil {
		return err
	}

	existing["username"] = user.Username
	existing["email"] = user.Email
	existing["full_name"] = user.FullName
	existing["avatar"] = user.Avatar
	existing["cover_image"] = user.CoverImage
	existing["password"] = user.Password
	existing["updated_at"] = time.Now()

	if _, err := db.Put(context.Background(), docID, existing); err != nil {
		return apperr.Wrap(apperr.Internal, "failed to update user", err)
	}

	return nil
}

// SetRefreshToken overwrites the single stored refresh token. An empty token
// clears the session.
func (r *userRepository) SetRefreshToken(id, token string) error {
	db := r.client.DB(r.dbName)
	docID := fmt.Sprintf("user:%s", id)

	existing, err := r.fetchDoc(docID)
	if err != nil {
		return err
	}

	if token == "" {
		delete(existing, "refresh_token")
	} else {
		existing["refresh_token"] = token
	}
	existing["updated_at"] = time.Now()

	if _, err := db.Put(context.Background(), docID, existing); err != nil {
		return apperr.Wrap(apperr.Internal, "failed to persist refresh token", err)
	}

	return nil
}

// AppendWatchHistory records a view, keeping the sequence deduplicated with
// the most recent entry last.
func (r *userRepository) AppendWatchHistory(id, videoID string) error {
	db := r.client.DB(r.dbName)
	docID := fmt.Sprintf("user:%s", id)

	existing, err := r.fetchDoc(docID)
	if err != nil {
		return err
	}

	var history []string
	if raw, ok := existing["watch_history"].([]interface{}); ok {
		for _, entry := range raw {
			if s, ok := entry.(string); ok && s != videoID {
				history = append(history, s)
			}
		}
	}
	history = append(history, videoID)
	existing["watch_history"] = history

	if _, err := db.Put(context.Background(), docID, existing); err != nil {
		return apperr.Wrap(apperr.Internal, "failed to update watch history", err)
	}

	return nil
}

func (r *userRepository) EmailExists(email string) (bool, error) {
	return exists(r.FindByEmail(email))
}

func (r *userRepository) UsernameExists(username string) (bool, error) {
	return exists(r.FindByUsername(username))
}

func (r *userRepository) fetchDoc(docID string) (map[string]interface{}, error) {
	db := r.client.DB(r.dbName)

	row := db.Get(context.Background(), docID)
	var doc map[string]interface{}
	if err := row.ScanDoc(&doc); err != nil {
		if kivik.HTTPStatus(err) == 404 {
			return nil, apperr.New(apperr.NotFound, "user not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "failed to fetch user document", err)
	}

	return doc, nil
}
