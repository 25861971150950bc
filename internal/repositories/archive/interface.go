package archive

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/grimoire/internal/repositories/archive Repository

import (
	"context"

	"github.com/KirkDiggler/grimoire/internal/models"
)

// Repository stores finished games
type Repository interface {
	// SaveGame persists a finished game
	SaveGame(ctx context.Context, input *SaveGameInput) error

	// GetGame retrieves an archived game by ID
	GetGame(ctx context.Context, input *GetGameInput) (*models.ArchivedGame, error)

	// ListGames returns archived games, most recently finished first
	ListGames(ctx context.Context, input *ListGamesInput) (*ListGamesOutput, error)

	// DeleteGame removes an archived game
	DeleteGame(ctx context.Context, input *DeleteGameInput) error
}
