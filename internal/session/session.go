package session

import (
	"context"

	"go.uber.org/zap"

	"codepair/internal/metrics"
)

// RoomSource resolves room metadata at admission time.
type RoomSource interface {
	RoomMeta(ctx context.Context, roomID string) (RoomInfo, error)
}

// MembershipStore is the durable (room, user) join relation. AddMember is
// idempotent.
type MembershipStore interface {
	IsMember(ctx context.Context, roomID, userID string) (bool, error)
	AddMember(ctx context.Context, roomID, userID string) error
}

// DocumentStore holds the current document text per room. Write replaces
// the prior value wholesale.
type DocumentStore interface {
	Read(ctx context.Context, roomID string) (string, error)
	Write(ctx context.Context, roomID, text string) error
}

// Manager runs one broadcast session per incoming connection: admission,
// registration, initial document replay, then the receive/persist/fan-out
// loop until the transport goes away.
type Manager struct {
	rooms    RoomSource
	members  MembershipStore
	docs     DocumentStore
	registry *Registry
	notifier *Notifier
	log      *zap.Logger
}

func NewManager(rooms RoomSource, members MembershipStore, docs DocumentStore, log *zap.Logger) *Manager {
	registry := NewRegistry(log)
	return &Manager{
		rooms:    rooms,
		members:  members,
		docs:     docs,
		registry: registry,
		notifier: NewNotifier(registry),
		log:      log,
	}
}

// Registry exposes the connection registry, mainly for room occupancy
// queries.
func (m *Manager) Registry() *Registry { return m.registry }

// Serve drives a single connection through its whole lifecycle. It returns
// once the transport closes or the connection is rejected; a rejection is
// surfaced to the client as an error frame before any registry attachment
// happens, so no partial admission state is ever observable.
func (m *Manager) Serve(ctx context.Context, t Transport, roomID string, p Principal) error {
	room, err := m.rooms.RoomMeta(ctx, roomID)
	if err != nil {
		_ = t.WriteFrame(errorFrame(rejectionReason(err)))
		return err
	}

	isMember := false
	if p.Identity != nil {
		isMember, err = m.members.IsMember(ctx, roomID, p.Identity.UserID)
		if err != nil {
			// Treat an unreadable membership relation as "not a member";
			// private rooms then reject rather than admit blindly.
			m.log.Warn("membership lookup failed", zap.String("room", roomID), zap.Error(err))
		}
	}

	provision, err := Admit(room, p, isMember)
	if err != nil {
		_ = t.WriteFrame(errorFrame(rejectionReason(err)))
		return err
	}

	client := NewClient(t, p.Identity)
	m.registry.Attach(roomID, client)
	metrics.ConnectionOpened()
	defer func() {
		m.registry.Detach(roomID, client)
		metrics.ConnectionClosed()
		m.notifier.Left(roomID, p.Identity, client)
	}()

	if provision {
		// Advisory: a failed provisioning write never blocks admission.
		if err := m.members.AddMember(ctx, roomID, p.Identity.UserID); err != nil {
			m.log.Warn("lazy membership provisioning failed",
				zap.String("room", roomID),
				zap.String("user", p.Identity.UserID),
				zap.Error(err))
		}
	}

	if text, err := m.docs.Read(ctx, roomID); err != nil {
		m.log.Warn("initial document read failed", zap.String("room", roomID), zap.Error(err))
	} else if text != "" {
		if err := client.Send(codeFrame(text)); err != nil {
			return nil
		}
	}

	m.notifier.Joined(roomID, p.Identity, client)

	for {
		data, err := t.ReadMessage()
		if err != nil {
			// Transport errors are implicit disconnects; cleanup runs in
			// the deferred detach/notify path.
			return nil
		}
		text := decodeUpdate(data)
		if err := m.docs.Write(ctx, roomID, text); err != nil {
			// Deliberate policy: drop the write, keep the session alive,
			// still fan out. The next update supersedes this one anyway.
			metrics.DocumentWriteFailed()
			m.log.Error("document write dropped", zap.String("room", roomID), zap.Error(err))
		}
		m.registry.Broadcast(roomID, client, codeFrame(text))
	}
}
