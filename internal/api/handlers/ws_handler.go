package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/roomsathi/roomsathi/internal/models"
	"github.com/roomsathi/roomsathi/internal/services"
)

// chatChannel is the per-user Redis Pub/Sub channel the websocket pumps.
func chatChannel(userID string) string { return "chat:user:" + userID }

type WSHandler struct {
	chats    services.ChatService
	redis    *redis.Client
	upgrader websocket.Upgrader
}

func NewWSHandler(chats services.ChatService, rdb *redis.Client) *WSHandler {
	return &WSHandler{
		chats: chats,
		redis: rdb,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origin in prod
		},
	}
}

type wsClientMsg struct {
	Type           string `json:"type"` // send|mark_read
	ConversationID string `json:"conversation_id"`
	Text           string `json:"text,omitempty"`
	ImageURL       string `json:"image_url,omitempty"`
}

type wsServerMsg struct {
	Type    string              `json:"type"` // message|error
	Message *models.ChatMessage `json:"message,omitempty"`
	Code    string              `json:"code,omitempty"`
	Detail  string              `json:"detail,omitempty"`
}

type wsConn struct {
	c  *websocket.Conn
	mu sync.Mutex
}

func (w *wsConn) writeJSON(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.c.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return w.c.WriteJSON(v)
}

// ChatWS is the realtime chat socket: inbound messages are persisted and
// fanned out to the peer's channel; the write side pumps this user's channel
// so every open socket of theirs sees new messages.
func (h *WSHandler) ChatWS(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// upgrade already wrote response in most cases
		return
	}
	defer conn.Close()

	wc := &wsConn{c: conn}
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	pubsub := h.redis.Subscribe(ctx, chatChannel(userID))
	defer pubsub.Close()

	// reader: WS -> chat service -> peer channel
	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		conn.SetPongHandler(func(string) error {
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			return nil
		})

		for {
			_, data, rerr := conn.ReadMessage()
			if rerr != nil {
				return
			}

			var msg wsClientMsg
			if err := json.Unmarshal(data, &msg); err != nil {
				_ = wc.writeJSON(wsServerMsg{Type: "error", Code: "INVALID_ARGUMENT", Detail: "invalid json"})
				continue
			}

			switch msg.Type {
			case "send":
				sent, serr := h.chats.Send(ctx, userID, msg.ConversationID, msg.Text, msg.ImageURL)
				if serr != nil {
					_ = wc.writeJSON(wsServerMsg{Type: "error", Code: "INTERNAL", Detail: "failed to send"})
					continue
				}

				payload, _ := json.Marshal(wsServerMsg{Type: "message", Message: sent})

				// echo to sender, publish to the peer
				_ = wc.writeJSON(wsServerMsg{Type: "message", Message: sent})
				if conv, gerr := h.chats.Get(ctx, userID, msg.ConversationID); gerr == nil {
					if peer := services.Peer(conv, userID); peer != "" {
						_ = h.redis.Publish(ctx, chatChannel(peer), payload).Err()
					}
				}

			case "mark_read":
				if err := h.chats.MarkRead(ctx, userID, msg.ConversationID); err != nil {
					_ = wc.writeJSON(wsServerMsg{Type: "error", Code: "INTERNAL", Detail: "failed to mark read"})
				}

			default:
				_ = wc.writeJSON(wsServerMsg{Type: "error", Code: "INVALID_ARGUMENT", Detail: "unknown message type"})
			}
		}
	}()

	// writer: Redis Pub/Sub -> WS
	ch := pubsub.Channel()
	pingTicker := time.NewTicker(30 * time.Second)
	defer pingTicker.Stop()

	for {
		select {
		case <-readDone:
			return
		case <-ctx.Done():
			return
		case m, okCh := <-ch:
			if !okCh {
				return
			}
			wc.mu.Lock()
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			werr := conn.WriteMessage(websocket.TextMessage, []byte(m.Payload))
			wc.mu.Unlock()
			if werr != nil {
				return
			}
		case <-pingTicker.C:
			wc.mu.Lock()
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			werr := conn.WriteMessage(websocket.PingMessage, nil)
			wc.mu.Unlock()
			if werr != nil {
				return
			}
		}
	}
}
