package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
	"go.uber.org/zap"

	"dungeonmania/server/models"
)

// PostgresStore handles game persistence using PostgreSQL
type PostgresStore struct {
	db  *sql.DB
	log *zap.Logger
}

// NewPostgresStore connects and makes sure the schema exists
func NewPostgresStore(connectionString string, log *zap.Logger) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db, log: log}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (ps *PostgresStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS games (
		id TEXT PRIMARY KEY,
		mode TEXT NOT NULL,
		tick INTEGER NOT NULL,
		over BOOLEAN NOT NULL DEFAULT FALSE,
		player_health INTEGER NOT NULL,
		state JSONB NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	`

	_, err := ps.db.Exec(schema)
	return err
}

// SaveGame upserts a snapshot
func (ps *PostgresStore) SaveGame(snapshot *models.GameSnapshot) error {
	state, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal game %s: %w", snapshot.ID, err)
	}

	query := `
	INSERT INTO games (id, mode, tick, over, player_health, state)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (id)
	DO UPDATE SET
		tick = $3, over = $4, player_health = $5, state = $6,
		updated_at = NOW()
	`

	_, err = ps.db.Exec(query,
		snapshot.ID, snapshot.Mode, snapshot.Tick, snapshot.Over,
		snapshot.Player.Health, string(state))
	if err != nil {
		return fmt.Errorf("failed to save game %s: %w", snapshot.ID, err)
	}

	return nil
}

// LoadGame loads a snapshot by game id
func (ps *PostgresStore) LoadGame(gameID string) (*models.GameSnapshot, error) {
	var state string
	err := ps.db.QueryRow(`SELECT state FROM games WHERE id = $1`, gameID).Scan(&state)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, gameID)
		}
		return nil, fmt.Errorf("failed to load game %s: %w", gameID, err)
	}

	var snapshot models.GameSnapshot
	if err := json.Unmarshal([]byte(state), &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game %s: %w", gameID, err)
	}
	return &snapshot, nil
}

// ListGames returns saved game ids, most recently updated first
func (ps *PostgresStore) ListGames() ([]string, error) {
	rows, err := ps.db.Query(`SELECT id FROM games ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// DeleteGame removes a saved game
func (ps *PostgresStore) DeleteGame(gameID string) error {
	res, err := ps.db.Exec(`DELETE FROM games WHERE id = $1`, gameID)
	if err != nil {
		return fmt.Errorf("failed to delete game %s: %w", gameID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, gameID)
	}
	return nil
}

// Close closes the database connection
func (ps *PostgresStore) Close() error {
	ps.log.Info("closing database connection")
	return ps.db.Close()
}
