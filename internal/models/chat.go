package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Conversation is a two-party chat thread, optionally anchored to a listing.
// Participants are stored in canonical (sorted) order so the same pair never
// produces two threads.
type Conversation struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ConversationID string             `bson:"conversation_id" json:"conversation_id"` // uuid v4
	Participants   []string           `bson:"participants" json:"participants"`       // exactly two user uuids, sorted
	ListingID      string             `bson:"listing_id,omitempty" json:"listing_id,omitempty"`

	LastMessage   string    `bson:"last_message,omitempty" json:"last_message,omitempty"`
	LastMessageAt time.Time `bson:"last_message_at" json:"last_message_at"`

	// unread message count per participant, keyed by user id
	Unread map[string]int64 `bson:"unread,omitempty" json:"unread,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

type ChatMessage struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MessageID      string             `bson:"message_id" json:"message_id"` // uuid v4
	ConversationID string             `bson:"conversation_id" json:"conversation_id"`
	SenderID       string             `bson:"sender_id" json:"sender_id"`

	Text     string `bson:"text,omitempty" json:"text,omitempty"`
	ImageURL string `bson:"image_url,omitempty" json:"image_url,omitempty"`

	Read      bool      `bson:"read" json:"read"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
