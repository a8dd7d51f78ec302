package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"dungeonmania/server/models"
)

// JSONStore keeps every saved game in a single local JSON file
type JSONStore struct {
	filePath string
	mutex    sync.RWMutex
	data     *JSONData
}

// JSONData represents the structure of the JSON database
type JSONData struct {
	Games map[string]*models.GameSnapshot `json:"games"`
}

// NewJSONStore opens filePath, creating it when missing
func NewJSONStore(filePath string) (*JSONStore, error) {
	store := &JSONStore{
		filePath: filePath,
		data: &JSONData{
			Games: make(map[string]*models.GameSnapshot),
		},
	}

	if _, err := os.Stat(filePath); err == nil {
		if err := store.loadFromFile(); err != nil {
			return nil, fmt.Errorf("failed to load JSON store: %w", err)
		}
	} else {
		store.mutex.Lock()
		err := store.saveToFile()
		store.mutex.Unlock()
		if err != nil {
			return nil, fmt.Errorf("failed to create JSON store file: %w", err)
		}
	}

	return store, nil
}

func (js *JSONStore) loadFromFile() error {
	js.mutex.Lock()
	defer js.mutex.Unlock()

	file, err := os.ReadFile(js.filePath)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(file, js.data); err != nil {
		return err
	}
	if js.data.Games == nil {
		js.data.Games = make(map[string]*models.GameSnapshot)
	}
	return nil
}

// saveToFile writes the whole database. Callers hold the write lock.
func (js *JSONStore) saveToFile() error {
	data, err := json.MarshalIndent(js.data, "", "  ")
	if err != nil {
		return err
	}
	tmp := js.filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, js.filePath)
}

// SaveGame stores or replaces a snapshot
func (js *JSONStore) SaveGame(snapshot *models.GameSnapshot) error {
	js.mutex.Lock()
	defer js.mutex.Unlock()

	js.data.Games[snapshot.ID] = snapshot
	return js.saveToFile()
}

// LoadGame returns the snapshot saved under gameID
func (js *JSONStore) LoadGame(gameID string) (*models.GameSnapshot, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	snapshot, exists := js.data.Games[gameID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, gameID)
	}
	// Hand out a copy so callers cannot mutate the cached data
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return nil, err
	}
	var out models.GameSnapshot
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListGames returns the saved game ids in sorted order
func (js *JSONStore) ListGames() ([]string, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	ids := make([]string, 0, len(js.data.Games))
	for id := range js.data.Games {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// DeleteGame removes a saved game
func (js *JSONStore) DeleteGame(gameID string) error {
	js.mutex.Lock()
	defer js.mutex.Unlock()

	if _, exists := js.data.Games[gameID]; !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, gameID)
	}
	delete(js.data.Games, gameID)
	return js.saveToFile()
}

// Close closes the store (no-op for JSON store)
func (js *JSONStore) Close() error {
	return nil
}
