package hub

import (
	"context"

	"rentora/internal/services"
	"rentora/pkg/logger"
)

// FriendSource resolves a user's friend aggregate and live connections.
// Satisfied by *services.UserService.
type FriendSource interface {
	GetFriend(ctx context.Context, subjectID, viewerID int) (services.FriendView, error)
	GetConnectionIDs(ctx context.Context, userID int) ([]string, error)
}

// Notifier pushes friend-state changes to interested users. Both the
// presence and chat channels depend on it rather than on each other.
type Notifier interface {
	// FriendUpdated recomputes subject as seen by target and delivers an
	// UpdateFriend frame to every live connection of target. A target with
	// no connections is a silent no-op.
	FriendUpdated(ctx context.Context, subjectID, targetID int)
}

// FriendNotifier fans friend updates out over the presence hub.
type FriendNotifier struct {
	hub     *Hub
	friends FriendSource
	log     *logger.Logger
}

func NewFriendNotifier(h *Hub, friends FriendSource, log *logger.Logger) *FriendNotifier {
	return &FriendNotifier{hub: h, friends: friends, log: log}
}

func (n *FriendNotifier) FriendUpdated(ctx context.Context, subjectID, targetID int) {
	connIDs, err := n.friends.GetConnectionIDs(ctx, targetID)
	if err != nil {
		n.log.Errorf("notifier: resolve connections for user %d: %v", targetID, err)
		return
	}
	if len(connIDs) == 0 {
		return
	}
	friend, err := n.friends.GetFriend(ctx, subjectID, targetID)
	if err != nil {
		n.log.Errorf("notifier: load friend %d for user %d: %v", subjectID, targetID, err)
		return
	}
	n.hub.SendToConnections(connIDs, Envelope{Event: EventUpdateFriend, Data: friend})
}
