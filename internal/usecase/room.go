package usecase

import (
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/infinity-tictactoe/internal/entity"
)

const maxPlayers = 2

// Room is a match between at most two players. All fields are guarded by mu.
type Room struct {
	ID string

	mu      sync.Mutex
	players []*entity.Player
	match   *entity.Match

	resetTimer *time.Timer
	resetSeq   uint64
	closed     bool
}

func newRoom(id string) *Room {
	return &Room{
		ID:    id,
		match: entity.NewMatch(),
	}
}

func (that *Room) isFull() bool {
	return len(that.players) >= maxPlayers
}

// freeMark returns the mark no current occupant holds, X first.
func (that *Room) freeMark() string {
	taken := make(map[string]bool, len(that.players))
	for _, player := range that.players {
		taken[player.Mark] = true
	}

	if !taken[entity.PlayerX] {
		return entity.PlayerX
	}
	return entity.PlayerO
}

func (that *Room) hasConnection(conn entity.Connection) bool {
	for _, player := range that.players {
		if player.Conn == conn {
			return true
		}
	}
	return false
}

func (that *Room) removeConnection(conn entity.Connection) *entity.Player {
	for i, player := range that.players {
		if player.Conn == conn {
			that.players = append(that.players[:i], that.players[i+1:]...)
			return player
		}
	}
	return nil
}

// broadcast sends message to every occupant. The caller holds mu.
func (that *Room) broadcast(log *slog.Logger, message any) {
	for _, player := range that.players {
		if err := player.Conn.Send(message); err != nil {
			log.Error("failed to send message", "playerID", player.ID, "error", err)
		}
	}
}

// cancelReset stops a pending deferred reset. A callback already running sees a new sequence and does nothing.
func (that *Room) cancelReset() {
	if that.resetTimer != nil {
		that.resetTimer.Stop()
		that.resetTimer = nil
	}
	that.resetSeq++
}
