package engine

import (
	"errors"
	"fmt"
)

// EngineError is an integration error: a correct caller never sees one.
type EngineError string

// Error implements the error interface
func (e EngineError) Error() string {
	return string(e)
}

const (
	ErrNilConfig             EngineError = "config cannot be nil"
	ErrNilRegistry           EngineError = "role registry cannot be nil"
	ErrRoleCountMismatch     EngineError = "role count does not match player count"
	ErrMultipleWinConditions EngineError = "more than one win condition player"
	ErrNoWinCondition        EngineError = "no win condition player is tracked"
	ErrRoleNotImplemented    EngineError = "role not implemented"
	ErrWrongAnswerKind       EngineError = "answer does not match request kind"
	ErrStatusNotFound        EngineError = "status effect not found"
	ErrInvalidPlayer         EngineError = "player index out of range"
	ErrUnknownRequest        EngineError = "unknown change request"
	ErrRequestsPending       EngineError = "change requests are still pending"
	ErrPhaseNotExhausted     EngineError = "players are still waiting to act this phase"
	ErrWrongStep             EngineError = "operation not allowed in current step"
	ErrGameOver              EngineError = "game is over"
)

// ChangeErrorCode classifies a rejected answer.
type ChangeErrorCode string

const (
	InvalidSelectedPlayer        ChangeErrorCode = "invalid_selected_player"
	InvalidSelectedRole          ChangeErrorCode = "invalid_selected_role"
	WrongNumberOfSelectedPlayers ChangeErrorCode = "wrong_number_of_selected_players"
	WrongNumberOfSelectedRoles   ChangeErrorCode = "wrong_number_of_selected_roles"
)

// ChangeError is a rejected answer. The request stays pending and may be
// answered again.
type ChangeError struct {
	Code   ChangeErrorCode
	Reason string
	Wanted int
	Got    int
}

func (e *ChangeError) Error() string {
	switch e.Code {
	case WrongNumberOfSelectedPlayers:
		return fmt.Sprintf("wrong number of selected players: wanted %d, got %d", e.Wanted, e.Got)
	case WrongNumberOfSelectedRoles:
		return fmt.Sprintf("wrong number of selected roles: wanted %d, got %d", e.Wanted, e.Got)
	case InvalidSelectedRole:
		return "invalid selected role: " + e.Reason
	default:
		return "invalid selected player: " + e.Reason
	}
}

// InvalidPlayer rejects a selected player with a reason for the moderator.
func InvalidPlayer(reason string) error {
	return &ChangeError{Code: InvalidSelectedPlayer, Reason: reason}
}

// InvalidRole rejects a selected role with a reason for the moderator.
func InvalidRole(reason string) error {
	return &ChangeError{Code: InvalidSelectedRole, Reason: reason}
}

// WrongPlayerCount rejects an answer with the wrong number of players.
func WrongPlayerCount(wanted, got int) error {
	return &ChangeError{Code: WrongNumberOfSelectedPlayers, Wanted: wanted, Got: got}
}

// WrongRoleCount rejects an answer with the wrong number of roles.
func WrongRoleCount(wanted, got int) error {
	return &ChangeError{Code: WrongNumberOfSelectedRoles, Wanted: wanted, Got: got}
}

// IsRecoverable reports whether err is a rejected answer rather than an
// integration error.
func IsRecoverable(err error) bool {
	var ce *ChangeError
	return errors.As(err, &ce)
}
