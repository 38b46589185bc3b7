package repository

import (
	"context"
	"fmt"

	"streamhub-server/internal/apperr"
	"streamhub-server/internal/domain"

	"github.com/go-kivik/kivik/v4"
)

type SubscriptionRepository interface {
	Create(sub *domain.Subscription) error
	Delete(id string) error
	FindByPair(subscriberID, channelID string) (*domain.Subscription, error)
	ListByChannel(channelID string) ([]*domain.Subscription, error)
	ListBySubscriber(subscriberID string) ([]*domain.Subscription, error)
	CountByChannel(channelID string) (int, error)
	CountBySubscriber(subscriberID string) (int, error)
}

type subscriptionRepository struct {
	client *kivik.Client
	dbName string
}

func NewSubscriptionRepository(client *kivik.Client, dbName string) SubscriptionRepository {
	return &subscriptionRepository{
		client: client,
		dbName: dbName,
	}
}

func (r *subscriptionRepository) Create(sub *domain.Subscription) error {
	db := r.client.DB(r.dbName)

	docID := fmt.Sprintf("subscription:%s", sub.ID)
	_, err := db.Put(context.Background(), docID, sub)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to create subscription", err)
	}

	return nil
}

func (r *subscriptionRepository) Delete(id string) error {
	return deleteDoc(r.client, r.dbName, fmt.Sprintf("subscription:%s", id), "subscription")
}

func (r *subscriptionRepository) FindByPair(subscriberID, channelID string) (*domain.Subscription, error) {
	db := r.client.DB(r.dbName)

	q := map[string]interface{}{
		"selector": map[string]interface{}{
			"subscriber": subscriberID,
			"channel":    channelID,
		},
		"limit": 1,
	}

	rows := db.Find(context.Background(), q)
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to query subscription", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, apperr.New(apperr.NotFound, "subscription not found")
	}

	var sub domain.Subscription
	if err := rows.ScanDoc(&sub); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to scan subscription", err)
	}

	return &sub, nil
}

func (r *subscriptionRepository) ListByChannel(channelID string) ([]*domain.Subscription, error) {
	return r.list(map[string]interface{}{"channel": channelID})
}

func (r *subscriptionRepository) ListBySubscriber(subscriberID string) ([]*domain.Subscription, error) {
	return r.list(map[string]interface{}{"subscriber": subscriberID})
}

func (r *subscriptionRepository) list(selector map[string]interface{}) ([]*domain.Subscription, error) {
	db := r.client.DB(r.dbName)

	q := map[string]interface{}{
		"selector": selector,
		"limit":    fetchAllLimit,
	}

	rows := db.Find(context.Background(), q)
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to list subscriptions", err)
	}
	defer rows.Close()

	var subs []*domain.Subscription
	for rows.Next() {
		var sub domain.Subscription
		if err := rows.ScanDoc(&sub); err != nil {
			continue
		}
		subs = append(subs, &sub)
	}

	return subs, nil
}

func (r *subscriptionRepository) CountByChannel(channelID string) (int, error) {
	return countDocs(r.client, r.dbName, map[string]interface{}{"channel": channelID})
}

func (r *subscriptionRepository) CountBySubscriber(subscriberID string) (int, error) {
	return countDocs(r.client, r.dbName, map[string]interface{}{"subscriber": subscriberID})
}
