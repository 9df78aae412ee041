package hub

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"rentora/internal/metrics"
	"rentora/internal/middleware"
	"rentora/internal/services"
	rentora_errors "rentora/pkg/errors"
	"rentora/pkg/logger"
)

// ChatDirectory resolves a user's live presence connections so that
// messages reach them outside the open thread.
type ChatDirectory interface {
	GetConnectionIDs(ctx context.Context, userID int) ([]string, error)
}

// MessageStore is the slice of the message service the chat channel needs.
type MessageStore interface {
	GetThread(ctx context.Context, userID, otherID int) ([]services.MessageView, error)
	Send(ctx context.Context, senderID, receiverID int, content string) (services.MessageView, error)
	ReadThread(ctx context.Context, readerID, otherID int) error
}

// ChatChannel serves /hubs/chat. Each connection is scoped to one
// conversation partner via the otherId query parameter.
type ChatChannel struct {
	hub      *Hub
	presence *Hub
	users    ChatDirectory
	messages MessageStore
	notifier Notifier
	log      *logger.Logger
	upgrader websocket.Upgrader
}

func NewChatChannel(h, presence *Hub, users ChatDirectory, messages MessageStore, notifier Notifier, log *logger.Logger) *ChatChannel {
	return &ChatChannel{
		hub:      h,
		presence: presence,
		users:    users,
		messages: messages,
		notifier: notifier,
		log:      log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

func (ch *ChatChannel) Handle(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	otherID, err := strconv.Atoi(c.Query("otherId"))
	if err != nil || otherID <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "otherId is required"})
		return
	}

	conn, err := ch.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		ch.log.Errorf("chat: upgrade failed: %v", err)
		return
	}

	ctx := c.Request.Context()
	client := NewClient(conn, userID)
	ch.hub.Register(client)
	ch.hub.JoinGroup(GroupName(userID, otherID), client)
	metrics.IncWSConnection("chat")

	defer func() {
		ch.hub.Unregister(client)
		metrics.DecWSConnection("chat")
	}()

	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go client.WriteLoop(loopCtx)

	thread, err := ch.messages.GetThread(ctx, userID, otherID)
	if err != nil {
		ch.log.Errorf("chat: load thread %d/%d: %v", userID, otherID, err)
	} else {
		client.Send(Envelope{Event: EventReceiveMessageThread, Data: thread})
		metrics.IncWSEvent("chat", EventReceiveMessageThread)
	}

	// Opening a thread reads it.
	ch.readMessages(ctx, client, otherID)

	armReadDeadline(conn)

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var inv Invocation
		if err := json.Unmarshal(raw, &inv); err != nil {
			client.Send(errorEnvelope("malformed invocation"))
			continue
		}
		ch.dispatch(ctx, client, inv)
	}
}

func (ch *ChatChannel) dispatch(ctx context.Context, client *Client, inv Invocation) {
	switch inv.Event {
	case InvokeSendMessage:
		var payload SendMessagePayload
		if err := json.Unmarshal(inv.Data, &payload); err != nil {
			client.Send(errorEnvelope("malformed SendMessage payload"))
			return
		}
		ch.sendMessage(ctx, client, payload)
	case InvokeReadMessage:
		var payload ReadMessagePayload
		if err := json.Unmarshal(inv.Data, &payload); err != nil {
			client.Send(errorEnvelope("malformed ReadMessage payload"))
			return
		}
		ch.readMessages(ctx, client, payload.OtherID)
	default:
		client.Send(errorEnvelope("unknown invocation %s", inv.Event))
	}
}

func (ch *ChatChannel) sendMessage(ctx context.Context, client *Client, payload SendMessagePayload) {
	if payload.ReceiverID == client.UserID {
		client.Send(errorEnvelope("%s", rentora_errors.ErrSelfMessage))
		return
	}

	// Snapshot the receiver's live connections before the insert so the
	// unread count they see matches what was just persisted.
	receiverConns, err := ch.users.GetConnectionIDs(ctx, payload.ReceiverID)
	if err != nil {
		ch.log.Errorf("chat: resolve connections of user %d: %v", payload.ReceiverID, err)
		receiverConns = nil
	}

	msg, err := ch.messages.Send(ctx, client.UserID, payload.ReceiverID, payload.Content)
	if err != nil {
		if errors.Is(err, rentora_errors.ErrInvalidInput) || errors.Is(err, rentora_errors.ErrSelfMessage) || errors.Is(err, rentora_errors.ErrNotFound) {
			client.Send(errorEnvelope("%s", err))
			return
		}
		ch.log.Errorf("chat: persist message from %d to %d: %v", client.UserID, payload.ReceiverID, err)
		client.Send(errorEnvelope("message could not be delivered"))
		return
	}
	metrics.IncWSEvent("chat", InvokeSendMessage)

	ch.notifier.FriendUpdated(ctx, client.UserID, payload.ReceiverID)
	if len(receiverConns) > 0 {
		ch.presence.SendToConnections(receiverConns, Envelope{Event: EventNewMessageReceived, Data: msg})
		metrics.IncWSEvent("presence", EventNewMessageReceived)
	}
	ch.hub.SendToGroup(GroupName(client.UserID, payload.ReceiverID), Envelope{Event: EventNewMessage, Data: msg})
	metrics.IncWSEvent("chat", EventNewMessage)
}

// readMessages marks everything the other user sent to the caller as read
// and tells both sides about it.
func (ch *ChatChannel) readMessages(ctx context.Context, client *Client, otherID int) {
	if err := ch.messages.ReadThread(ctx, client.UserID, otherID); err != nil {
		ch.log.Errorf("chat: mark thread %d/%d read: %v", otherID, client.UserID, err)
		return
	}
	if otherID != client.UserID {
		ch.notifier.FriendUpdated(ctx, client.UserID, otherID)
	}
	ch.hub.SendToGroup(GroupName(client.UserID, otherID), Envelope{Event: EventReadedMessage, Data: client.UserID})
	metrics.IncWSEvent("chat", EventReadedMessage)
}
