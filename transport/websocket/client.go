package websocket

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 2 * 1024 * 1024
)

var (
	ErrConnectionClosed = errors.New("connection is closed")
	ErrSendBufferFull   = errors.New("send buffer is full")
)

// client is one WebSocket connection. Outbound messages are queued and written by writePump,
// roomID is only touched by the read loop.
type client struct {
	id     string
	conn   *websocket.Conn
	logger *slog.Logger

	mu        sync.Mutex
	send      chan any
	closed    bool
	closeCode int

	roomID string
}

func newClient(id string, conn *websocket.Conn, logger *slog.Logger, sendBuffer int) *client {
	return &client{
		id:     id,
		conn:   conn,
		logger: logger,
		send:   make(chan any, sendBuffer),
	}
}

// Send queues message for delivery without blocking. A full queue closes the client.
func (that *client) Send(message any) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closed {
		return ErrConnectionClosed
	}

	select {
	case that.send <- message:
		return nil
	default:
		that.closeLocked(websocket.CloseTryAgainLater)
		return ErrSendBufferFull
	}
}

// Close flushes the queued messages and then closes the connection.
func (that *client) Close() error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.closeLocked(websocket.CloseNormalClosure)

	return nil
}

func (that *client) closeLocked(code int) {
	if that.closed {
		return
	}

	that.closed = true
	that.closeCode = code
	close(that.send)
}

func (that *client) writePump() {
	log := that.logger.With("method", "writePump")

	defer that.conn.Close()

	for message := range that.send {
		_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := that.conn.WriteJSON(message); err != nil {
			log.Error("failed to write message", "error", err)
			return
		}
	}

	that.mu.Lock()
	code := that.closeCode
	that.mu.Unlock()

	_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
	closeFrame := websocket.FormatCloseMessage(code, "")
	if err := that.conn.WriteMessage(websocket.CloseMessage, closeFrame); err != nil {
		log.Debug("failed to write close frame", "error", err)
	}
}
