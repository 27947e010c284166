package websocket

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/infinity-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/infinity-tictactoe/internal/entity"
)

var (
	ErrMissingRoomID = errors.New("roomId is required")
	ErrMissingIndex  = errors.New("index is required")
	ErrNotInRoom     = errors.New("connection has not joined a room")
)

func (that *Server) handleJoin(ctx context.Context, client *client, msg *Message) error {
	log := that.logger.With("method", "handleJoin", "connID", client.id)

	if client.roomID != "" {
		return apperror.ErrAlreadyJoined
	}

	if msg.RoomID == "" {
		return ErrMissingRoomID
	}

	_, err := that.rooms.Join(ctx, msg.RoomID, &entity.Player{ID: client.id, Conn: client})
	if errors.Is(err, apperror.ErrRoomFull) {
		log.Info("room is full, closing connection", "roomID", msg.RoomID)

		if err = client.Send(entity.NewErrorMessage(entity.MessageRoomFull)); err != nil {
			log.Error("failed to send error response", "error", err)
		}

		return client.Close()
	}

	if err != nil {
		return fmt.Errorf("failed to join room %s: %w", msg.RoomID, err)
	}

	client.roomID = msg.RoomID

	return nil
}

func (that *Server) handleMove(ctx context.Context, client *client, msg *Message) error {
	if client.roomID == "" {
		return ErrNotInRoom
	}

	if msg.Index == nil {
		return ErrMissingIndex
	}

	if err := that.rooms.Move(ctx, client.roomID, *msg.Index, msg.Player); err != nil {
		return fmt.Errorf("failed to move in room %s: %w", client.roomID, err)
	}

	return nil
}

func (that *Server) handleReset(ctx context.Context, client *client, _ *Message) error {
	if client.roomID == "" {
		return ErrNotInRoom
	}

	if err := that.rooms.Reset(ctx, client.roomID); err != nil {
		return fmt.Errorf("failed to reset room %s: %w", client.roomID, err)
	}

	return nil
}

func (that *Server) handleChat(ctx context.Context, client *client, msg *Message) error {
	if client.roomID == "" {
		return ErrNotInRoom
	}

	if err := that.rooms.Chat(ctx, client.roomID, msg.Message, msg.Player); err != nil {
		return fmt.Errorf("failed to chat in room %s: %w", client.roomID, err)
	}

	return nil
}

func (that *Server) handleDisconnect(ctx context.Context, client *client) {
	log := that.logger.With("method", "handleDisconnect", "connID", client.id)

	if client.roomID == "" {
		log.Info("connection closed")
		return
	}

	that.rooms.Leave(ctx, client.roomID, client)

	log.Info("player disconnected", "roomID", client.roomID)
}
