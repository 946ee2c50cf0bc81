package session

import "sync"

// Identity is the authenticated principal behind a connection. A nil
// *Identity means the connection is anonymous.
type Identity struct {
	UserID   string
	Username string
}

// Transport is one client's bidirectional, ordered message channel.
// ReadMessage blocks until the next inbound frame arrives and must
// unblock with an error once Close is called.
type Transport interface {
	ReadMessage() ([]byte, error)
	WriteFrame(Frame) error
	Close() error
}

// Client is one live attachment to a room. The transport is owned by the
// session that created the client; siblings only reach it through Send.
type Client struct {
	transport Transport
	identity  *Identity

	mu sync.Mutex
}

func NewClient(t Transport, identity *Identity) *Client {
	return &Client{transport: t, identity: identity}
}

func (c *Client) Identity() *Identity { return c.identity }

// Send writes a frame to the client's transport. Writes are serialized;
// websocket connections do not tolerate concurrent writers.
func (c *Client) Send(f Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transport.WriteFrame(f)
}
