package session

import (
	"sync"

	"go.uber.org/zap"

	"codepair/internal/metrics"
)

// Registry maps room ids to the set of currently attached clients. It is
// the single source of truth for who is in a room right now. The registry
// mutex guards the room map; each set carries its own RWMutex so fan-out
// in one room never contends with attach/detach in another.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*sessionSet
	log   *zap.Logger
}

type sessionSet struct {
	mu    sync.RWMutex
	conns map[*Client]struct{}
}

func NewRegistry(log *zap.Logger) *Registry {
	return &Registry{rooms: make(map[string]*sessionSet), log: log}
}

// Attach adds a client to a room's session set, creating the set on first
// attach. Adding an already attached client is a no-op. The registry lock
// is held across the add so a concurrent Detach cannot prune the set out
// from under it.
func (r *Registry) Attach(roomID string, c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.rooms[roomID]
	if !ok {
		set = &sessionSet{conns: make(map[*Client]struct{})}
		r.rooms[roomID] = set
	}
	set.mu.Lock()
	set.conns[c] = struct{}{}
	set.mu.Unlock()
}

// Detach removes a client from a room's session set and prunes the set
// once it empties, so idle rooms cost nothing.
func (r *Registry) Detach(roomID string, c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.rooms[roomID]
	if !ok {
		return
	}
	set.mu.Lock()
	delete(set.conns, c)
	empty := len(set.conns) == 0
	set.mu.Unlock()
	if empty {
		delete(r.rooms, roomID)
	}
}

// Snapshot returns a point-in-time copy of a room's clients, safe to
// iterate while concurrent attach/detach proceeds.
func (r *Registry) Snapshot(roomID string) []*Client {
	r.mu.RLock()
	set, ok := r.rooms[roomID]
	r.mu.RUnlock()
	if !ok {
		return nil
	}

	set.mu.RLock()
	defer set.mu.RUnlock()
	out := make([]*Client, 0, len(set.conns))
	for c := range set.conns {
		out = append(out, c)
	}
	return out
}

// Count reports how many clients are attached to a room.
func (r *Registry) Count(roomID string) int {
	return len(r.Snapshot(roomID))
}

// Broadcast delivers a frame to every client in the room except the
// sender. Delivery is best effort: a dead recipient is logged and skipped,
// never allowed to abort the rest of the fan-out. All transport I/O
// happens outside the registry locks.
func (r *Registry) Broadcast(roomID string, sender *Client, f Frame) {
	for _, c := range r.Snapshot(roomID) {
		if c == sender {
			continue
		}
		if err := c.Send(f); err != nil {
			metrics.BroadcastFailed()
			r.log.Warn("broadcast delivery failed",
				zap.String("room", roomID),
				zap.String("frame", f.Type),
				zap.Error(err))
			continue
		}
		metrics.BroadcastDelivered()
	}
}
