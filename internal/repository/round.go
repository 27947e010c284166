package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/infinity-tictactoe/internal/entity"
)

type RoundRepository interface {
	Record(ctx context.Context, round *entity.Round) error
	ListByRoom(ctx context.Context, roomID string) ([]*entity.Round, error)
}

type dbRound struct {
	client    *redis.Client
	ttl       time.Duration
	maxRounds int64
}

// NewRoundRepository keeps the newest maxRounds rounds per room, expiring ttl after the last write.
func NewRoundRepository(client *redis.Client, ttl time.Duration, maxRounds int64) RoundRepository {
	return &dbRound{
		client:    client,
		ttl:       ttl,
		maxRounds: maxRounds,
	}
}

func (that *dbRound) Record(ctx context.Context, round *entity.Round) error {
	roundJSON, err := json.Marshal(round)
	if err != nil {
		return fmt.Errorf("failed to marshal round: %w", err)
	}

	roundsKey := roundsKey(round.RoomID)

	pipe := that.client.TxPipeline()
	pipe.LPush(ctx, roundsKey, roundJSON)
	if that.maxRounds > 0 {
		pipe.LTrim(ctx, roundsKey, 0, that.maxRounds-1)
	}
	if that.ttl > 0 {
		pipe.Expire(ctx, roundsKey, that.ttl)
	}

	if _, err = pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record round: %w", err)
	}

	return nil
}

// ListByRoom returns the archived rounds of a room, newest first.
func (that *dbRound) ListByRoom(ctx context.Context, roomID string) ([]*entity.Round, error) {
	response, err := that.client.LRange(ctx, roundsKey(roomID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list rounds: %w", err)
	}

	rounds := make([]*entity.Round, 0, len(response))
	for _, raw := range response {
		var round entity.Round
		if err = json.Unmarshal([]byte(raw), &round); err != nil {
			return nil, fmt.Errorf("failed to unmarshal round: %w", err)
		}
		rounds = append(rounds, &round)
	}

	return rounds, nil
}

func roundsKey(roomID string) string {
	return "rounds:" + roomID
}

type noopRound struct{}

// NewNoopRoundRepository is used when the Redis archive is disabled.
func NewNoopRoundRepository() RoundRepository {
	return noopRound{}
}

func (noopRound) Record(context.Context, *entity.Round) error {
	return nil
}

func (noopRound) ListByRoom(context.Context, string) ([]*entity.Round, error) {
	return []*entity.Round{}, nil
}
