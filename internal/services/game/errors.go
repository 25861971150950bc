package game

// GameError is a custom error type for game-related errors
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrGameNotFound     GameError = "game not found"
	ErrTooManyGames     GameError = "too many games in progress"
	ErrGameNotOver      GameError = "game is not over"
	ErrNoPlayers        GameError = "a game needs at least one player"
	ErrNilConfig        GameError = "config cannot be nil"
	ErrNilRegistry      GameError = "role registry cannot be nil"
	ErrNilArchiveRepo   GameError = "archive repository cannot be nil"
	ErrNilDiceRoller    GameError = "dice roller cannot be nil"
	ErrNilClock         GameError = "clock cannot be nil"
	ErrNilUUIDGenerator GameError = "UUID generator cannot be nil"
)
