package archive

import "github.com/KirkDiggler/grimoire/internal/models"

type SaveGameInput struct {
	Game *models.ArchivedGame
}

type GetGameInput struct {
	GameID string
}

type ListGamesInput struct {
	// Limit caps the number of games returned; zero returns all of them
	Limit int
}

type ListGamesOutput struct {
	Games []*models.ArchivedGame
}

type DeleteGameInput struct {
	GameID string
}
