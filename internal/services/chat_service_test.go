package services

import (
	"context"
	"testing"
	"time"

	"github.com/roomsathi/roomsathi/internal/models"
	"github.com/roomsathi/roomsathi/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChatRepo struct {
	conversations map[string]*models.Conversation
	messages      []models.ChatMessage

	bumpedRecipient string
	readBy          string
}

func newFakeChatRepo(convs ...*models.Conversation) *fakeChatRepo {
	f := &fakeChatRepo{conversations: map[string]*models.Conversation{}}
	for _, c := range convs {
		f.conversations[c.ConversationID] = c
	}
	return f
}

func (f *fakeChatRepo) OpenConversation(_ context.Context, userA, userB, listingID string) (*models.Conversation, error) {
	conv := &models.Conversation{
		ConversationID: "conv-" + userA + "-" + userB,
		Participants:   []string{userA, userB},
		ListingID:      listingID,
	}
	f.conversations[conv.ConversationID] = conv
	return conv, nil
}

func (f *fakeChatRepo) GetConversation(_ context.Context, conversationID string) (*models.Conversation, error) {
	conv, ok := f.conversations[conversationID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return conv, nil
}

func (f *fakeChatRepo) ListConversations(_ context.Context, userID string, _ int) ([]models.Conversation, error) {
	var out []models.Conversation
	for _, c := range f.conversations {
		for _, p := range c.Participants {
			if p == userID {
				out = append(out, *c)
			}
		}
	}
	return out, nil
}

func (f *fakeChatRepo) InsertMessage(_ context.Context, m *models.ChatMessage) error {
	f.messages = append(f.messages, *m)
	return nil
}

func (f *fakeChatRepo) ListMessages(_ context.Context, conversationID string, _ int) ([]models.ChatMessage, error) {
	var out []models.ChatMessage
	for _, m := range f.messages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeChatRepo) BumpConversation(_ context.Context, _, _, recipientID string, _ time.Time) error {
	f.bumpedRecipient = recipientID
	return nil
}

func (f *fakeChatRepo) MarkRead(_ context.Context, _, readerID string) error {
	f.readBy = readerID
	return nil
}

type capturedNotification struct {
	userID string
	typ    models.NotificationType
}

type fakeNotifier struct {
	pushed []capturedNotification
}

func (f *fakeNotifier) Push(_ context.Context, userID string, typ models.NotificationType, _, _ string, _ map[string]string) {
	f.pushed = append(f.pushed, capturedNotification{userID: userID, typ: typ})
}

func (f *fakeNotifier) List(context.Context, string, int) ([]models.Notification, error) {
	return nil, nil
}
func (f *fakeNotifier) UnreadCount(context.Context, string) (int64, error) { return 0, nil }
func (f *fakeNotifier) MarkRead(context.Context, string, string) error     { return nil }
func (f *fakeNotifier) MarkAllRead(context.Context, string) error          { return nil }

func TestChatOpenRejectsSelf(t *testing.T) {
	svc := NewChatService(newFakeChatRepo(), nil)

	_, err := svc.Open(context.Background(), "alice", "alice", "")
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestChatSendNotifiesPeer(t *testing.T) {
	repo := newFakeChatRepo(&models.Conversation{
		ConversationID: "c1",
		Participants:   []string{"alice", "bob"},
	})
	notifier := &fakeNotifier{}
	svc := NewChatService(repo, notifier)

	msg, err := svc.Send(context.Background(), "alice", "c1", "hello", "")
	require.NoError(t, err)
	assert.Equal(t, "alice", msg.SenderID)
	assert.NotEmpty(t, msg.MessageID)

	// unread counter and notification both target the peer, not the sender
	assert.Equal(t, "bob", repo.bumpedRecipient)
	require.Len(t, notifier.pushed, 1)
	assert.Equal(t, "bob", notifier.pushed[0].userID)
	assert.Equal(t, models.NotifyChatMessage, notifier.pushed[0].typ)
}

func TestChatSendRequiresContent(t *testing.T) {
	svc := NewChatService(newFakeChatRepo(), nil)

	_, err := svc.Send(context.Background(), "alice", "c1", "", "")
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestChatNonParticipantIsForbidden(t *testing.T) {
	repo := newFakeChatRepo(&models.Conversation{
		ConversationID: "c1",
		Participants:   []string{"alice", "bob"},
	})
	svc := NewChatService(repo, nil)

	_, err := svc.Get(context.Background(), "mallory", "c1")
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeForbidden))

	_, err = svc.ListMessages(context.Background(), "mallory", "c1", 0)
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeForbidden))
}

func TestChatMarkReadClearsForReader(t *testing.T) {
	repo := newFakeChatRepo(&models.Conversation{
		ConversationID: "c1",
		Participants:   []string{"alice", "bob"},
	})
	svc := NewChatService(repo, nil)

	require.NoError(t, svc.MarkRead(context.Background(), "bob", "c1"))
	assert.Equal(t, "bob", repo.readBy)
}

func TestPeer(t *testing.T) {
	conv := &models.Conversation{Participants: []string{"alice", "bob"}}

	assert.Equal(t, "bob", Peer(conv, "alice"))
	assert.Equal(t, "alice", Peer(conv, "bob"))
	assert.NotEmpty(t, Peer(conv, "someone-else"))
}
