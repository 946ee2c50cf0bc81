package session

// Notifier announces join/leave events to a room's remaining clients.
// Anonymous connections generate no presence events.
type Notifier struct {
	registry *Registry
}

func NewNotifier(registry *Registry) *Notifier {
	return &Notifier{registry: registry}
}

func (n *Notifier) Joined(roomID string, identity *Identity, exclude *Client) {
	if identity == nil {
		return
	}
	n.registry.Broadcast(roomID, exclude, Frame{Type: FrameUserJoined, User: identity.Username})
}

func (n *Notifier) Left(roomID string, identity *Identity, exclude *Client) {
	if identity == nil {
		return
	}
	n.registry.Broadcast(roomID, exclude, Frame{Type: FrameUserLeft, User: identity.Username})
}
