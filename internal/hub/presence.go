package hub

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"rentora/internal/metrics"
	"rentora/internal/middleware"
	"rentora/internal/services"
	"rentora/pkg/logger"
)

// PresenceDirectory is the slice of the user service the presence channel
// needs.
type PresenceDirectory interface {
	AddConnection(ctx context.Context, userID int, connectionID string) error
	DeleteConnection(ctx context.Context, connectionID string) error
	GetFriendIDs(ctx context.Context, userID int) ([]int, error)
	GetFriends(ctx context.Context, viewerID int) ([]services.FriendView, error)
}

// PresenceChannel serves /hubs/presence. Connecting marks the user online
// and notifies their friends; disconnecting reverses both.
type PresenceChannel struct {
	hub      *Hub
	users    PresenceDirectory
	notifier Notifier
	log      *logger.Logger
	upgrader websocket.Upgrader
}

func NewPresenceChannel(h *Hub, users PresenceDirectory, notifier Notifier, log *logger.Logger) *PresenceChannel {
	return &PresenceChannel{
		hub:      h,
		users:    users,
		notifier: notifier,
		log:      log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

func (p *PresenceChannel) Handle(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	conn, err := p.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		p.log.Errorf("presence: upgrade failed: %v", err)
		return
	}

	ctx := c.Request.Context()
	client := NewClient(conn, userID)
	p.hub.Register(client)
	metrics.IncWSConnection("presence")

	if err := p.users.AddConnection(ctx, userID, client.ID); err != nil {
		p.log.Errorf("presence: register connection %s: %v", client.ID, err)
		p.hub.Unregister(client)
		metrics.DecWSConnection("presence")
		_ = conn.Close()
		return
	}

	defer p.teardown(client)

	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go client.WriteLoop(loopCtx)

	friends, err := p.users.GetFriends(ctx, userID)
	if err != nil {
		p.log.Errorf("presence: load friends for user %d: %v", userID, err)
	} else {
		client.Send(Envelope{Event: EventGetFriends, Data: friends})
		metrics.IncWSEvent("presence", EventGetFriends)
	}

	p.fanOut(ctx, userID)

	// A peer that stops answering pings is dead; the read deadline bounds
	// how long its registry row can outlive the session.
	armReadDeadline(conn)

	// The presence channel carries no client invocations. Read until the
	// socket drops so the deferred teardown runs.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// teardown runs on every exit path. It uses a fresh context because the
// request context is already cancelled when the socket closes.
func (p *PresenceChannel) teardown(client *Client) {
	ctx := context.Background()
	p.hub.Unregister(client)
	metrics.DecWSConnection("presence")
	if err := p.users.DeleteConnection(ctx, client.ID); err != nil {
		p.log.Errorf("presence: remove connection %s: %v", client.ID, err)
	}
	p.fanOut(ctx, client.UserID)
}

// fanOut pushes the user's current aggregate to each of their friends.
func (p *PresenceChannel) fanOut(ctx context.Context, userID int) {
	friendIDs, err := p.users.GetFriendIDs(ctx, userID)
	if err != nil {
		p.log.Errorf("presence: resolve friends of user %d: %v", userID, err)
		return
	}
	for _, friendID := range friendIDs {
		p.notifier.FriendUpdated(ctx, userID, friendID)
		metrics.IncWSEvent("presence", EventUpdateFriend)
	}
}
