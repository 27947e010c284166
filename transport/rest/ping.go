package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/infinity-tictactoe/internal/entity"
)

type roundLister interface {
	ListByRoom(ctx context.Context, roomID string) ([]*entity.Round, error)
}

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)
	RoundsHandler(w http.ResponseWriter, r *http.Request)
}

type handlers struct {
	logger *slog.Logger
	rounds roundLister
}

func NewHandlers(logger *slog.Logger, rounds roundLister) Handlers {
	return &handlers{
		logger: logger.With("component", "rest"),
		rounds: rounds,
	}
}

func (that *handlers) PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

// RoundsHandler lists the archived rounds of the room named by the roomId query parameter.
func (that *handlers) RoundsHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "RoundsHandler")

	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	roomID := r.URL.Query().Get("roomId")
	if roomID == "" {
		http.Error(w, "roomId is required", http.StatusBadRequest)
		return
	}

	rounds, err := that.rounds.ListByRoom(r.Context(), roomID)
	if err != nil {
		log.Error("failed to list rounds", "roomID", roomID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(rounds); err != nil {
		log.Error("failed to encode rounds", "error", err)
	}
}
