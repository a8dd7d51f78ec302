package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dungeonmania/server/dungeon"
	"dungeonmania/server/messages"
	"dungeonmania/server/models"
	"dungeonmania/server/persistence"
)

var ErrGameNotFound = errors.New("game not found")

// UpdateListener receives the state of a game after every scheduled tick
type UpdateListener func(update *messages.UpdateMessage)

// session serialises all access to one game. A game only ever runs one
// tick at a time.
type session struct {
	mu   sync.Mutex
	game *dungeon.Game
	stop chan struct{}
}

// GameService owns the running games
type GameService struct {
	sessions map[string]*session
	db       persistence.Storage
	log      *zap.Logger
	autoTick bool
	listener UpdateListener
	mutex    sync.RWMutex
}

// ServiceOption configures a GameService
type ServiceOption func(*GameService)

// WithAutoTick makes every game advance on its own at the mode's tick
// rate. Each scheduled tick is reported to listener.
func WithAutoTick(listener UpdateListener) ServiceOption {
	return func(gs *GameService) {
		gs.autoTick = true
		gs.listener = listener
	}
}

// NewGameService creates a new game service
func NewGameService(db persistence.Storage, log *zap.Logger, opts ...ServiceOption) *GameService {
	gs := &GameService{
		sessions: make(map[string]*session),
		db:       db,
		log:      log,
	}
	for _, opt := range opts {
		opt(gs)
	}
	return gs
}

// NewGame creates a game from a built-in mode and layout
func (gs *GameService) NewGame(modeName, layoutName string) (*messages.UpdateMessage, error) {
	mode, err := models.ModeByName(modeName)
	if err != nil {
		return nil, err
	}
	layout, err := LayoutByName(layoutName)
	if err != nil {
		return nil, err
	}

	g := dungeon.NewGame(mode, layout.Start,
		dungeon.WithID(uuid.NewString()),
		dungeon.WithBounds(layout.Width, layout.Height),
		dungeon.WithLogger(gs.log),
	)
	if err := layout.populate(g); err != nil {
		return nil, fmt.Errorf("failed to populate layout %s: %w", layout.Name, err)
	}

	gs.register(g)
	gs.log.Info("game created",
		zap.String("game_id", g.ID()),
		zap.String("mode", mode.Name()),
		zap.String("layout", layout.Name),
	)
	return buildUpdate(g), nil
}

func (gs *GameService) register(g *dungeon.Game) {
	s := &session{game: g, stop: make(chan struct{})}

	gs.mutex.Lock()
	if old, exists := gs.sessions[g.ID()]; exists {
		close(old.stop)
	}
	gs.sessions[g.ID()] = s
	gs.mutex.Unlock()

	if gs.autoTick {
		go gs.runScheduler(g.ID(), s, g.Mode().TickRate())
	}
}

func (gs *GameService) session(gameID string) (*session, error) {
	gs.mutex.RLock()
	defer gs.mutex.RUnlock()

	s, exists := gs.sessions[gameID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return s, nil
}

// act runs fn against the game under its session lock and returns the
// resulting state
func (gs *GameService) act(gameID string, fn func(g *dungeon.Game) error) (*messages.UpdateMessage, error) {
	s, err := gs.session(gameID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(s.game); err != nil {
		return nil, err
	}
	return buildUpdate(s.game), nil
}

// State returns the current state without acting
func (gs *GameService) State(gameID string) (*messages.UpdateMessage, error) {
	return gs.act(gameID, func(*dungeon.Game) error { return nil })
}

// Move processes a player movement request
func (gs *GameService) Move(gameID, direction string) (*messages.UpdateMessage, error) {
	d, err := models.ParseDirection(direction)
	if err != nil {
		return nil, err
	}
	return gs.act(gameID, func(g *dungeon.Game) error { return g.MovePlayer(d) })
}

func (gs *GameService) Wait(gameID string) (*messages.UpdateMessage, error) {
	return gs.act(gameID, func(g *dungeon.Game) error { return g.Wait() })
}

func (gs *GameService) UseItem(gameID, itemID string) (*messages.UpdateMessage, error) {
	return gs.act(gameID, func(g *dungeon.Game) error { return g.UseItem(itemID) })
}

func (gs *GameService) Build(gameID, recipe string) (*messages.UpdateMessage, error) {
	return gs.act(gameID, func(g *dungeon.Game) error {
		_, err := g.Build(recipe)
		return err
	})
}

func (gs *GameService) Interact(gameID, entityID string) (*messages.UpdateMessage, error) {
	return gs.act(gameID, func(g *dungeon.Game) error { return g.Interact(entityID) })
}

func (gs *GameService) Rewind(gameID string, ticks int) (*messages.UpdateMessage, error) {
	return gs.act(gameID, func(g *dungeon.Game) error { return g.Rewind(ticks) })
}

// Save persists the game's current snapshot
func (gs *GameService) Save(gameID string) (*messages.SavedMessage, error) {
	s, err := gs.session(gameID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	snapshot := s.game.Snapshot()
	s.mu.Unlock()

	if err := gs.db.SaveGame(&snapshot); err != nil {
		return nil, fmt.Errorf("failed to save game %s: %w", gameID, err)
	}
	gs.log.Info("game saved", zap.String("game_id", gameID), zap.Int("tick", snapshot.Tick))
	return &messages.SavedMessage{GameID: gameID, Tick: snapshot.Tick}, nil
}

// Load restores a saved game into memory, replacing a running copy
func (gs *GameService) Load(gameID string) (*messages.UpdateMessage, error) {
	snapshot, err := gs.db.LoadGame(gameID)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
		}
		return nil, err
	}
	g, err := dungeon.Restore(*snapshot, dungeon.WithLogger(gs.log))
	if err != nil {
		return nil, fmt.Errorf("failed to restore game %s: %w", gameID, err)
	}
	gs.register(g)
	gs.log.Info("game loaded", zap.String("game_id", gameID), zap.Int("tick", g.CurrentTick()))
	return buildUpdate(g), nil
}

// SavedGames lists the ids in storage
func (gs *GameService) SavedGames() ([]string, error) {
	return gs.db.ListGames()
}

// CloseGame stops a running game and forgets it
func (gs *GameService) CloseGame(gameID string) {
	gs.mutex.Lock()
	defer gs.mutex.Unlock()

	if s, exists := gs.sessions[gameID]; exists {
		close(s.stop)
		delete(gs.sessions, gameID)
	}
}

// Shutdown stops every scheduler
func (gs *GameService) Shutdown() {
	gs.mutex.Lock()
	defer gs.mutex.Unlock()

	for id, s := range gs.sessions {
		close(s.stop)
		delete(gs.sessions, id)
	}
}

// runScheduler advances the game tickRate times per second until the game
// ends or is closed
func (gs *GameService) runScheduler(gameID string, s *session, tickRate int) {
	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			err := s.game.Wait()
			update := buildUpdate(s.game)
			s.mu.Unlock()

			if errors.Is(err, dungeon.ErrGameOver) {
				gs.log.Info("scheduler stopped, game over", zap.String("game_id", gameID))
				return
			}
			if err != nil {
				gs.log.Error("scheduled tick failed", zap.String("game_id", gameID), zap.Error(err))
				continue
			}
			if gs.listener != nil {
				gs.listener(update)
			}
		}
	}
}
