package realtime

import (
	"encoding/json"
	"time"
)

type EventType string

const (
	EventSubscriptionCreated EventType = "subscription_created"
	EventCommentAdded        EventType = "comment_added"
	EventLikeAdded           EventType = "like_added"
	TypePing                 EventType = "ping"
	TypePong                 EventType = "pong"
)

type Message struct {
	Type      EventType       `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// ActivityPayload describes one piece of channel activity pushed to the
// channel owner's dashboard connections.
type ActivityPayload struct {
	ActorID       string `json:"actor_id"`
	ActorUsername string `json:"actor_username,omitempty"`
	TargetKind    string `json:"target_kind"`
	TargetID      string `json:"target_id"`
}

func NewMessage(msgType EventType, payload interface{}) (*Message, error) {
	var payloadBytes json.RawMessage
	if payload != nil {
		bytes, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		payloadBytes = bytes
	}

	return &Message{
		Type:      msgType,
		Timestamp: time.Now(),
		Payload:   payloadBytes,
	}, nil
}

func NewActivity(msgType EventType, actorID, actorUsername, targetKind, targetID string) (*Message, error) {
	return NewMessage(msgType, &ActivityPayload{
		ActorID:       actorID,
		ActorUsername: actorUsername,
		TargetKind:    targetKind,
		TargetID:      targetID,
	})
}

func (m *Message) UnmarshalPayload(v interface{}) error {
	if m.Payload == nil {
		return nil
	}
	return json.Unmarshal(m.Payload, v)
}
