package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/infinity-tictactoe/internal/entity"
)

type roomManager interface {
	Join(ctx context.Context, roomID string, player *entity.Player) (string, error)
	Move(ctx context.Context, roomID string, cell int, mark string) error
	Reset(ctx context.Context, roomID string) error
	Chat(ctx context.Context, roomID, message, mark string) error
	Leave(ctx context.Context, roomID string, conn entity.Connection)
}

type Server struct {
	logger     *slog.Logger
	rooms      roomManager
	upgrader   websocket.Upgrader
	sendBuffer int

	handlers map[string]func(ctx context.Context, client *client, message *Message) error
}

func New(logger *slog.Logger, rooms roomManager, sendBuffer int) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		rooms:  rooms,
		upgrader: websocket.Upgrader{
			// any origin may connect
			CheckOrigin: func(*http.Request) bool { return true },
		},
		sendBuffer: sendBuffer,

		handlers: make(map[string]func(context.Context, *client, *Message) error),
	}

	server.handlers[typeJoin] = server.handleJoin
	server.handlers[typeMove] = server.handleMove
	server.handlers[typeReset] = server.handleReset
	server.handlers[typeChat] = server.handleChat

	return server
}

// ServeHTTP - upgrades the connection to WebSocket and serves it until it closes.
func (that *Server) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Warn("failed to upgrade connection", "error", err)
		return
	}

	conn.SetReadLimit(maxMessageSize)

	connID := uuid.NewString()
	client := newClient(connID, conn, that.logger.With("connID", connID), that.sendBuffer)

	go client.writePump()

	log.Info("WebSocket connection established", "connID", connID, "remote", req.RemoteAddr)

	ctx := req.Context()

	defer func() {
		that.handleDisconnect(ctx, client)
		_ = client.Close()
	}()

	that.handleMessages(ctx, client)
}

// handleMessages - processes messages from the client until the connection fails or closes.
func (that *Server) handleMessages(ctx context.Context, client *client) {
	log := that.logger.With("method", "handleMessages", "connID", client.id)

	for {
		_, data, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("connection closed unexpectedly", "error", err)
			}
			return
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Debug("failed to unmarshal message", "error", err)
			continue
		}

		handler, ok := that.handlers[message.Type]
		if !ok {
			log.Debug("unknown message type", "type", message.Type)
			continue
		}

		if err = handler(ctx, client, &message); err != nil {
			log.Debug("message dropped", "type", message.Type, "error", err)
		}
	}
}
