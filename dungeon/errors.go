package dungeon

import (
	"errors"
	"fmt"

	"dungeonmania/server/models"
)

var (
	ErrBlocked         = errors.New("cell is blocked")
	ErrOutOfBounds     = errors.New("position is outside the dungeon")
	ErrEntityNotFound  = errors.New("entity not found")
	ErrDuplicateEntity = errors.New("entity id already registered")
	ErrNotInteractable = errors.New("entity is not interactable")
	ErrOutOfRange      = errors.New("entity is out of range")
	ErrMissingItem     = errors.New("required item not in inventory")
	ErrNotUsable       = errors.New("item cannot be used")
	ErrInvalidRewind   = errors.New("cannot rewind that far")
	ErrGameOver        = errors.New("game is over")
)

// MoveError reports a rejected move. It unwraps to ErrBlocked or ErrOutOfBounds.
type MoveError struct {
	EntityID string
	From     models.Position
	To       models.Position
	Reason   error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("move %s from %s to %s: %v", e.EntityID, e.From, e.To, e.Reason)
}

func (e *MoveError) Unwrap() error {
	return e.Reason
}
