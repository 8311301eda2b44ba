package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/roomsathi/roomsathi/internal/models"
	mongorepo "github.com/roomsathi/roomsathi/internal/repositories/mongo"
	"github.com/roomsathi/roomsathi/internal/utils"
)

type ChatService interface {
	Open(ctx context.Context, userID, peerID, listingID string) (*models.Conversation, error)
	Get(ctx context.Context, userID, conversationID string) (*models.Conversation, error)
	ListConversations(ctx context.Context, userID string) ([]models.Conversation, error)
	Send(ctx context.Context, userID, conversationID, text, imageURL string) (*models.ChatMessage, error)
	ListMessages(ctx context.Context, userID, conversationID string, limit int) ([]models.ChatMessage, error)
	MarkRead(ctx context.Context, userID, conversationID string) error
}

type chatService struct {
	chats  mongorepo.ChatRepository
	notify NotificationService
}

func NewChatService(chats mongorepo.ChatRepository, notify NotificationService) ChatService {
	return &chatService{chats: chats, notify: notify}
}

func (s *chatService) Open(ctx context.Context, userID, peerID, listingID string) (*models.Conversation, error) {
	const op = "ChatService.Open"

	if userID == "" || peerID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "both participants are required", nil)
	}
	if userID == peerID {
		return nil, utils.E(utils.CodeInvalidArgument, op, "cannot chat with yourself", nil)
	}

	conv, err := s.chats.OpenConversation(ctx, userID, peerID, listingID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to open conversation", err)
	}
	return conv, nil
}

func (s *chatService) Get(ctx context.Context, userID, conversationID string) (*models.Conversation, error) {
	const op = "ChatService.Get"

	if conversationID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "conversation_id is required", nil)
	}

	conv, err := s.chats.GetConversation(ctx, conversationID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "conversation not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get conversation", err)
	}
	if !participates(conv, userID) {
		return nil, utils.E(utils.CodeForbidden, op, "not a participant", nil)
	}
	return conv, nil
}

func (s *chatService) ListConversations(ctx context.Context, userID string) ([]models.Conversation, error) {
	const op = "ChatService.ListConversations"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	rows, err := s.chats.ListConversations(ctx, userID, 0)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list conversations", err)
	}
	return rows, nil
}

func (s *chatService) Send(ctx context.Context, userID, conversationID, text, imageURL string) (*models.ChatMessage, error) {
	const op = "ChatService.Send"

	if text == "" && imageURL == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "message text or image is required", nil)
	}

	conv, err := s.Get(ctx, userID, conversationID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	msg := &models.ChatMessage{
		MessageID:      uuid.NewString(),
		ConversationID: conversationID,
		SenderID:       userID,
		Text:           text,
		ImageURL:       imageURL,
		CreatedAt:      now,
	}

	if err := s.chats.InsertMessage(ctx, msg); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to store message", err)
	}

	recipient := Peer(conv, userID)
	preview := text
	if preview == "" {
		preview = "[photo]"
	}
	if err := s.chats.BumpConversation(ctx, conversationID, preview, recipient, now); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update conversation", err)
	}

	if s.notify != nil && recipient != "" {
		s.notify.Push(ctx, recipient, models.NotifyChatMessage, "New message", preview,
			map[string]string{"conversation_id": conversationID})
	}
	return msg, nil
}

func (s *chatService) ListMessages(ctx context.Context, userID, conversationID string, limit int) ([]models.ChatMessage, error) {
	const op = "ChatService.ListMessages"

	if _, err := s.Get(ctx, userID, conversationID); err != nil {
		return nil, err
	}

	rows, err := s.chats.ListMessages(ctx, conversationID, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list messages", err)
	}
	return rows, nil
}

func (s *chatService) MarkRead(ctx context.Context, userID, conversationID string) error {
	const op = "ChatService.MarkRead"

	if _, err := s.Get(ctx, userID, conversationID); err != nil {
		return err
	}
	if err := s.chats.MarkRead(ctx, conversationID, userID); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to mark read", err)
	}
	return nil
}

func participates(conv *models.Conversation, userID string) bool {
	for _, p := range conv.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// Peer returns the other participant of a two-party conversation.
func Peer(conv *models.Conversation, userID string) string {
	for _, p := range conv.Participants {
		if p != userID {
			return p
		}
	}
	return ""
}
