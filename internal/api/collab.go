package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"codepair/internal/session"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// wsTransport adapts a gorilla connection to the session transport.
type wsTransport struct {
	conn *websocket.Conn
}

func (t *wsTransport) ReadMessage() ([]byte, error) {
	_, data, err := t.conn.ReadMessage()
	return data, err
}

func (t *wsTransport) WriteFrame(f session.Frame) error {
	return t.conn.WriteJSON(f)
}

func (t *wsTransport) Close() error {
	return t.conn.Close()
}

// CollabWS attaches a websocket connection to a room's live session and
// blocks until the session ends.
func (h *Handlers) CollabWS(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")
	p := h.principal(r)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	transport := &wsTransport{conn: conn}
	defer transport.Close()

	if err := h.manager.Serve(r.Context(), transport, roomID, p); err != nil {
		if errors.Is(err, session.ErrMustJoinFirst) ||
			errors.Is(err, session.ErrInvalidCredential) ||
			errors.Is(err, session.ErrRoomNotFound) {
			h.log.Info("connection rejected",
				zap.String("room", roomID),
				zap.Error(err))
			return
		}
		h.log.Error("session ended with error", zap.String("room", roomID), zap.Error(err))
	}
}
