package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationType string

const (
	NotifyChatMessage  NotificationType = "chat_message"
	NotifyVerification NotificationType = "verification"
	NotifyModeration   NotificationType = "moderation"
)

type Notification struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	NotificationID string             `bson:"notification_id" json:"notification_id"` // uuid v4
	UserID         string             `bson:"user_id" json:"user_id"`

	Type  NotificationType `bson:"type" json:"type"`
	Title string           `bson:"title" json:"title"`
	Body  string           `bson:"body,omitempty" json:"body,omitempty"`

	// free-form payload (conversation id, verification id, ...)
	Payload map[string]string `bson:"payload,omitempty" json:"payload,omitempty"`

	Read      bool      `bson:"read" json:"read"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
