package persistence

import (
	"errors"

	"dungeonmania/server/models"
)

// ErrNotFound is returned when no game is saved under the requested id
var ErrNotFound = errors.New("game not found")

// Storage defines the interface for game persistence
type Storage interface {
	SaveGame(snapshot *models.GameSnapshot) error
	LoadGame(gameID string) (*models.GameSnapshot, error)
	ListGames() ([]string, error)
	DeleteGame(gameID string) error
	Close() error
}
