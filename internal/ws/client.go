package ws

import (
	"time"

	"log/slog"

	"github.com/gorilla/websocket"
)

// sendTimeout bounds a single event write. A peer that cannot drain an
// entry event within it is treated as gone.
const sendTimeout = 10 * time.Second

// Client is one websocket session subscribed to a user's entry change
// stream.
type Client struct {
	conn *websocket.Conn
	log  *slog.Logger
}

// NewClient wraps an upgraded connection.
func NewClient(conn *websocket.Conn, logger *slog.Logger) *Client {
	return &Client{conn: conn, log: logger}
}

// Send pushes one event frame to the session. On failure the connection
// is closed and the error returned, so the hub drops the subscriber.
func (c *Client) Send(payload []byte) error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(sendTimeout))
	if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		c.log.Warn("entry event send failed", "error", err)
		_ = c.conn.Close()
		return err
	}
	return nil
}

// Close terminates the session.
func (c *Client) Close() {
	_ = c.conn.Close()
}
