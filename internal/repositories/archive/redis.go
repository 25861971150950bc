package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/grimoire/internal/models"
)

const (
	// Key prefixes for Redis
	gameKeyPrefix = "archive:game:"
	gamesIndexKey = "archive:games"
)

// ErrGameNotFound is returned when an archived game is not found
var ErrGameNotFound = errors.New("archived game not found")

// Config holds configuration for the Redis archive repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed archive repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

func gameKey(id string) string {
	return gameKeyPrefix + id
}

// SaveGame writes the game and indexes it by finish time
func (r *redisRepository) SaveGame(ctx context.Context, input *SaveGameInput) error {
	if input == nil || input.Game == nil {
		return errors.New("input and game cannot be nil")
	}
	if input.Game.ID == "" {
		return errors.New("game ID cannot be empty")
	}

	gameJSON, err := json.Marshal(input.Game)
	if err != nil {
		return fmt.Errorf("failed to marshal game: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, gameKey(input.Game.ID), gameJSON, 0)
	pipe.ZAdd(ctx, gamesIndexKey, redis.Z{
		Score:  float64(input.Game.FinishedAt.UnixNano()),
		Member: input.Game.ID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}

	return nil
}

// GetGame retrieves an archived game by ID
func (r *redisRepository) GetGame(ctx context.Context, input *GetGameInput) (*models.ArchivedGame, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("input and game ID cannot be empty")
	}

	gameJSON, err := r.client.Get(ctx, gameKey(input.GameID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	var game models.ArchivedGame
	if err := json.Unmarshal([]byte(gameJSON), &game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &game, nil
}

// ListGames returns archived games, most recently finished first
func (r *redisRepository) ListGames(ctx context.Context, input *ListGamesInput) (*ListGamesOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	stop := int64(-1)
	if input.Limit > 0 {
		stop = int64(input.Limit) - 1
	}

	ids, err := r.client.ZRevRange(ctx, gamesIndexKey, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	games := make([]*models.ArchivedGame, 0, len(ids))
	for _, id := range ids {
		game, err := r.GetGame(ctx, &GetGameInput{GameID: id})
		if err != nil {
			// The index can outlive a game deleted out of band
			if errors.Is(err, ErrGameNotFound) {
				continue
			}
			return nil, err
		}
		games = append(games, game)
	}

	return &ListGamesOutput{Games: games}, nil
}

// DeleteGame removes an archived game and its index entry
func (r *redisRepository) DeleteGame(ctx context.Context, input *DeleteGameInput) error {
	if input == nil || input.GameID == "" {
		return errors.New("input and game ID cannot be empty")
	}

	if _, err := r.GetGame(ctx, &GetGameInput{GameID: input.GameID}); err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, gameKey(input.GameID))
	pipe.ZRem(ctx, gamesIndexKey, input.GameID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return nil
}
