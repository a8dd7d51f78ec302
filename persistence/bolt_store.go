package persistence

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"dungeonmania/server/models"
)

var gamesBucket = []byte("games")

// BoltStore keeps saved games in an embedded bbolt database
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore opens (or creates) the database file at path
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(gamesBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create games bucket: %w", err)
	}
	return &BoltStore{db: db}, nil
}

func (bs *BoltStore) SaveGame(snapshot *models.GameSnapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal game %s: %w", snapshot.ID, err)
	}
	return bs.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(gamesBucket).Put([]byte(snapshot.ID), raw)
	})
}

func (bs *BoltStore) LoadGame(gameID string) (*models.GameSnapshot, error) {
	var snapshot models.GameSnapshot
	err := bs.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(gamesBucket).Get([]byte(gameID))
		if raw == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, gameID)
		}
		return json.Unmarshal(raw, &snapshot)
	})
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// ListGames returns ids in key order
func (bs *BoltStore) ListGames() ([]string, error) {
	var ids []string
	err := bs.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(gamesBucket).ForEach(func(k, _ []byte) error {
			ids = append(ids, string(k))
			return nil
		})
	})
	return ids, err
}

func (bs *BoltStore) DeleteGame(gameID string) error {
	return bs.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(gamesBucket)
		if b.Get([]byte(gameID)) == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, gameID)
		}
		return b.Delete([]byte(gameID))
	})
}

func (bs *BoltStore) Close() error {
	return bs.db.Close()
}
