package moderator

// ModeratorError is a custom error type for moderator errors
type ModeratorError string

// Error implements the error interface
func (e ModeratorError) Error() string {
	return string(e)
}

const (
	ErrNilConfig        ModeratorError = "config cannot be nil"
	ErrNilGameService   ModeratorError = "game service cannot be nil"
	ErrNilMessaging     ModeratorError = "messaging service cannot be nil"
	ErrNilModerator     ModeratorError = "moderator cannot be nil"
	ErrUnknownDayAction ModeratorError = "unknown day action"
	ErrUnhandledRequest ModeratorError = "change request kind cannot be answered by a moderator"
	ErrNoInput          ModeratorError = "no more input"
)
