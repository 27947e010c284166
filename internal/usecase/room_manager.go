package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/infinity-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/infinity-tictactoe/internal/entity"
)

const recordTimeout = 2 * time.Second

type roundRecorder interface {
	Record(ctx context.Context, round *entity.Round) error
}

type Options struct {
	ResetDelay  time.Duration
	EnforceTurn bool
}

// RoomManager owns every live room. Lock order is registry mu, then Room.mu.
type RoomManager struct {
	logger   *slog.Logger
	recorder roundRecorder
	options  Options

	mu    sync.Mutex
	rooms map[string]*Room
}

func NewRoomManager(logger *slog.Logger, recorder roundRecorder, options Options) *RoomManager {
	return &RoomManager{
		logger:   logger.With("component", "roomManager"),
		recorder: recorder,
		options:  options,
		rooms:    make(map[string]*Room),
	}
}

// Join attaches player to the room, creating it on first use, and sends init with the assigned mark.
func (that *RoomManager) Join(_ context.Context, roomID string, player *entity.Player) (string, error) {
	log := that.logger.With("method", "Join", "roomID", roomID, "playerID", player.ID)

	that.mu.Lock()
	defer that.mu.Unlock()

	room, ok := that.rooms[roomID]
	if !ok {
		room = newRoom(roomID)
		that.rooms[roomID] = room
		log.Info("room created")
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if room.hasConnection(player.Conn) {
		return "", apperror.ErrAlreadyJoined
	}

	if room.isFull() {
		return "", fmt.Errorf("%w: room %s", apperror.ErrRoomFull, roomID)
	}

	player.Mark = room.freeMark()
	room.players = append(room.players, player)

	if err := player.Conn.Send(entity.NewInitMessage(player.Mark)); err != nil {
		log.Error("failed to send init", "error", err)
	}

	log.Info("player joined", "mark", player.Mark)

	return player.Mark, nil
}

// Move applies a move and broadcasts the outcome. Rejected moves return an error and change nothing.
func (that *RoomManager) Move(ctx context.Context, roomID string, cell int, mark string) error {
	log := that.logger.With("method", "Move", "roomID", roomID)

	room, err := that.lockRoom(roomID)
	if err != nil {
		return err
	}

	result, err := room.match.MakeTurn(mark, cell, that.options.EnforceTurn)
	if err != nil {
		room.mu.Unlock()
		return fmt.Errorf("failed to make turn: %w", err)
	}

	room.broadcast(log, entity.NewMoveMessage(result, room.match))

	var round *entity.Round
	if result.Winner != "" {
		room.match.RecordWin(result.Winner)
		that.scheduleReset(room)

		round = &entity.Round{
			RoomID:     roomID,
			Winner:     result.Winner,
			WinCombo:   result.WinCombo,
			Score:      room.match.Score,
			Shots:      room.match.Shots,
			FinishedAt: time.Now().UTC(),
		}
	}
	room.mu.Unlock()

	if round != nil {
		log.Info("round won", "winner", round.Winner, "combo", round.WinCombo)
		that.recordRound(ctx, round)
	}

	return nil
}

// Reset clears the board on request, cancelling any pending deferred reset.
func (that *RoomManager) Reset(_ context.Context, roomID string) error {
	room, err := that.lockRoom(roomID)
	if err != nil {
		return err
	}
	defer room.mu.Unlock()

	room.cancelReset()
	room.match.Reset()
	room.broadcast(that.logger.With("method", "Reset", "roomID", roomID), entity.NewResetMessage(room.match.Score))

	return nil
}

// Chat relays a message verbatim to both occupants.
func (that *RoomManager) Chat(_ context.Context, roomID, message, mark string) error {
	room, err := that.lockRoom(roomID)
	if err != nil {
		return err
	}
	defer room.mu.Unlock()

	room.broadcast(that.logger.With("method", "Chat", "roomID", roomID), entity.NewChatMessage(message, mark))

	return nil
}

// Leave detaches conn from the room, notifies the opponent and drops the room once empty.
func (that *RoomManager) Leave(_ context.Context, roomID string, conn entity.Connection) {
	log := that.logger.With("method", "Leave", "roomID", roomID)

	that.mu.Lock()
	defer that.mu.Unlock()

	room, ok := that.rooms[roomID]
	if !ok {
		return
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	player := room.removeConnection(conn)
	if player == nil {
		return
	}

	log.Info("player left", "playerID", player.ID, "mark", player.Mark)

	room.broadcast(log, entity.NewInfoMessage(entity.MessageOpponentDisconnected))

	if len(room.players) == 0 {
		room.closed = true
		room.cancelReset()
		delete(that.rooms, roomID)
		log.Info("room deleted")
	}
}

// Close stops every pending reset and forgets all rooms.
func (that *RoomManager) Close() {
	that.mu.Lock()
	defer that.mu.Unlock()

	for id, room := range that.rooms {
		room.mu.Lock()
		room.closed = true
		room.cancelReset()
		room.mu.Unlock()

		delete(that.rooms, id)
	}
}

// lockRoom returns the live room with its mutex held.
func (that *RoomManager) lockRoom(roomID string) (*Room, error) {
	that.mu.Lock()
	room, ok := that.rooms[roomID]
	that.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrRoomNotFound, roomID)
	}

	room.mu.Lock()
	if room.closed {
		room.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", apperror.ErrRoomNotFound, roomID)
	}

	return room, nil
}

// scheduleReset arms the deferred end-of-round reset. The caller holds room.mu.
func (that *RoomManager) scheduleReset(room *Room) {
	room.cancelReset()
	seq := room.resetSeq

	room.resetTimer = time.AfterFunc(that.options.ResetDelay, func() {
		that.finishRound(room, seq)
	})
}

func (that *RoomManager) finishRound(room *Room, seq uint64) {
	room.mu.Lock()
	defer room.mu.Unlock()

	if room.closed || room.resetSeq != seq {
		return
	}

	room.resetTimer = nil
	room.match.Reset()
	room.broadcast(that.logger.With("method", "finishRound", "roomID", room.ID), entity.NewResetMessage(room.match.Score))
}

func (that *RoomManager) recordRound(ctx context.Context, round *entity.Round) {
	log := that.logger.With("method", "recordRound", "roomID", round.RoomID)

	ctx, cancel := context.WithTimeout(ctx, recordTimeout)
	defer cancel()

	if err := that.recorder.Record(ctx, round); err != nil {
		log.Error("failed to record round", "error", err)
	}
}
