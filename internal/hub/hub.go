package hub

import (
	"sync"

	"rentora/pkg/logger"
)

// Hub tracks live clients and their group memberships for one channel.
// All routing is in-memory; the persisted connection registry is the
// cross-request source of truth for presence lookups.
type Hub struct {
	log *logger.Logger

	mu      sync.RWMutex
	clients map[string]*Client
	groups  map[string]map[*Client]struct{}
}

func New(log *logger.Logger) *Hub {
	return &Hub{
		log:     log,
		clients: make(map[string]*Client),
		groups:  make(map[string]map[*Client]struct{}),
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c.ID] = c
	h.mu.Unlock()
}

// Unregister removes the client from the hub and every group it joined,
// then closes its outbound queue.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c.ID]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c.ID)
	for _, g := range c.Groups() {
		if members, ok := h.groups[g]; ok {
			delete(members, c)
			if len(members) == 0 {
				delete(h.groups, g)
			}
		}
	}
	h.mu.Unlock()
	c.closeQueue()
}

func (h *Hub) JoinGroup(group string, c *Client) {
	h.mu.Lock()
	members, ok := h.groups[group]
	if !ok {
		members = make(map[*Client]struct{})
		h.groups[group] = members
	}
	members[c] = struct{}{}
	h.mu.Unlock()
	c.joinGroup(group)
}

// SendToGroup delivers the envelope to every member of the group. A member
// that cannot receive does not block delivery to the rest.
func (h *Hub) SendToGroup(group string, e Envelope) {
	h.mu.RLock()
	members := make([]*Client, 0, len(h.groups[group]))
	for c := range h.groups[group] {
		members = append(members, c)
	}
	h.mu.RUnlock()

	for _, c := range members {
		c.Send(e)
	}
}

// SendToConnections delivers the envelope to each connection ID that is
// registered with this hub. Unknown IDs are skipped.
func (h *Hub) SendToConnections(connectionIDs []string, e Envelope) {
	h.mu.RLock()
	targets := make([]*Client, 0, len(connectionIDs))
	for _, id := range connectionIDs {
		if c, ok := h.clients[id]; ok {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range targets {
		c.Send(e)
	}
}

// Client returns the registered client for a connection ID, if any.
func (h *Hub) Client(connectionID string) (*Client, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.clients[connectionID]
	return c, ok
}

// Len reports the number of registered clients.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
