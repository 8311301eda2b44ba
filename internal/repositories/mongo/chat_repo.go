package mongo

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/roomsathi/roomsathi/internal/models"
	"github.com/roomsathi/roomsathi/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ChatRepository interface {
	OpenConversation(ctx context.Context, userA, userB, listingID string) (*models.Conversation, error)
	GetConversation(ctx context.Context, conversationID string) (*models.Conversation, error)
	ListConversations(ctx context.Context, userID string, limit int) ([]models.Conversation, error)
	InsertMessage(ctx context.Context, m *models.ChatMessage) error
	ListMessages(ctx context.Context, conversationID string, limit int) ([]models.ChatMessage, error)
	BumpConversation(ctx context.Context, conversationID, preview, recipientID string, at time.Time) error
	MarkRead(ctx context.Context, conversationID, readerID string) error
}

type chatRepo struct {
	conversations *mongo.Collection
	messages      *mongo.Collection
}

func NewChatRepo(db *mongo.Database) ChatRepository {
	return &chatRepo{
		conversations: db.Collection("conversations"),
		messages:      db.Collection("chat_messages"),
	}
}

// participantKey returns the two ids in canonical order so one pair maps to
// one thread.
func participantKey(userA, userB string) []string {
	p := []string{userA, userB}
	sort.Strings(p)
	return p
}

func (r *chatRepo) OpenConversation(ctx context.Context, userA, userB, listingID string) (*models.Conversation, error) {
	participants := participantKey(userA, userB)
	now := time.Now().UTC()

	filter := bson.M{"participants": participants}
	if listingID != "" {
		filter["listing_id"] = listingID
	}

	update := bson.M{
		"$setOnInsert": bson.M{
			"conversation_id": uuid.NewString(),
			"participants":    participants,
			"listing_id":      listingID,
			"last_message_at": now,
			"created_at":      now,
			"unread":          map[string]int64{},
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var conv models.Conversation
	if err := r.conversations.FindOneAndUpdate(ctx, filter, update, opts).Decode(&conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *chatRepo) GetConversation(ctx context.Context, conversationID string) (*models.Conversation, error) {
	var conv models.Conversation
	err := r.conversations.FindOne(ctx, bson.M{"conversation_id": conversationID}).Decode(&conv)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	return &conv, err
}

func (r *chatRepo) ListConversations(ctx context.Context, userID string, limit int) ([]models.Conversation, error) {
	if limit <= 0 {
		limit = 50
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "last_message_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.conversations.Find(ctx, bson.M{"participants": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []models.Conversation
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *chatRepo) InsertMessage(ctx context.Context, m *models.ChatMessage) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	_, err := r.messages.InsertOne(ctx, m)
	return err
}

func (r *chatRepo) ListMessages(ctx context.Context, conversationID string, limit int) ([]models.ChatMessage, error) {
	if limit <= 0 {
		limit = 100
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.messages.Find(ctx, bson.M{"conversation_id": conversationID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []models.ChatMessage
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// BumpConversation records the latest message preview and increments the
// recipient's unread counter.
func (r *chatRepo) BumpConversation(ctx context.Context, conversationID, preview, recipientID string, at time.Time) error {
	_, err := r.conversations.UpdateOne(ctx,
		bson.M{"conversation_id": conversationID},
		bson.M{
			"$set": bson.M{
				"last_message":    preview,
				"last_message_at": at.UTC(),
			},
			"$inc": bson.M{"unread." + recipientID: 1},
		},
	)
	return err
}

func (r *chatRepo) MarkRead(ctx context.Context, conversationID, readerID string) error {
	if _, err := r.messages.UpdateMany(ctx,
		bson.M{"conversation_id": conversationID, "sender_id": bson.M{"$ne": readerID}, "read": false},
		bson.M{"$set": bson.M{"read": true}},
	); err != nil {
		return err
	}

	_, err := r.conversations.UpdateOne(ctx,
		bson.M{"conversation_id": conversationID},
		bson.M{"$set": bson.M{"unread." + readerID: 0}},
	)
	return err
}
