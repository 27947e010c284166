package application

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/infinity-tictactoe/internal/config"
	"github.com/rocketscienceinc/infinity-tictactoe/internal/repository"
	"github.com/rocketscienceinc/infinity-tictactoe/internal/repository/storage"
	"github.com/rocketscienceinc/infinity-tictactoe/internal/usecase"
	"github.com/rocketscienceinc/infinity-tictactoe/transport/rest"
	"github.com/rocketscienceinc/infinity-tictactoe/transport/websocket"
)

// RunApp - runs the application until SIGINT or SIGTERM.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	roundRepo, closeRounds, err := initRoundRepository(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeRounds()

	roomManager := usecase.NewRoomManager(logger, roundRepo, usecase.Options{
		ResetDelay:  conf.ResetDelay,
		EnforceTurn: conf.EnforceTurn,
	})
	defer roomManager.Close()

	wsServer := websocket.New(logger, roomManager, conf.SendBuffer)
	router := rest.NewRouter(rest.NewHandlers(logger, roundRepo), conf.SocketPath, wsServer)

	log.Info("Infinity Tic Tac Toe server running with fade + win highlight",
		"port", conf.SocketPort, "path", conf.SocketPath, "enforceTurn", conf.EnforceTurn)

	if err = rest.Start(ctx, conf.SocketPort, router); err != nil {
		return fmt.Errorf("WebSocket server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

// initRoundRepository - connects the Redis round archive, or falls back to a no-op one when disabled.
func initRoundRepository(ctx context.Context, log *slog.Logger, conf *config.Config) (repository.RoundRepository, func(), error) {
	if !conf.Redis.Enabled {
		log.Info("Redis round archive disabled")
		return repository.NewNoopRoundRepository(), func() {}, nil
	}

	redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	closeFn := func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	log.Info("Redis round archive enabled", "addr", conf.Redis.GetRedisAddr())

	return repository.NewRoundRepository(redisStorage.Connection, conf.Redis.RoundTTL, conf.Redis.MaxRounds), closeFn, nil
}
