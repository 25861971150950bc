package script

// ScriptError is returned for scripts and player counts that cannot seat a game.
type ScriptError string

func (e ScriptError) Error() string {
	return string(e)
}

const (
	ErrUnsupportedPlayerCount ScriptError = "player count must be between 5 and 15"
	ErrInvalidEntry           ScriptError = "script entry is neither metadata nor a role id"
	ErrNoRoles                ScriptError = "script lists no roles"
	ErrNotEnoughRoles         ScriptError = "script has too few roles of a character type"
)
