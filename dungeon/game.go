package dungeon

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dungeonmania/server/models"
)

// Bounds limits the playable area to [0, Width) x [0, Height)
type Bounds struct {
	Width  int
	Height int
}

func (b Bounds) Contains(p models.Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < b.Width && p.Y < b.Height
}

// Game owns the entity registry and advances it one tick at a time.
// It is not safe for concurrent use.
type Game struct {
	id       string
	mode     models.Mode
	tick     int
	over     bool
	bounds   *Bounds
	entities []*Entity
	index    map[string]*Entity
	player   *Player
	newID    func() string
	log      *zap.Logger
}

// Option configures a Game
type Option func(*Game)

func WithID(id string) Option {
	return func(g *Game) { g.id = id }
}

func WithBounds(width, height int) Option {
	return func(g *Game) { g.bounds = &Bounds{Width: width, Height: height} }
}

func WithLogger(log *zap.Logger) Option {
	return func(g *Game) { g.log = log }
}

// WithIDGenerator replaces the uuid generator used for spawned entities
func WithIDGenerator(fn func() string) Option {
	return func(g *Game) { g.newID = fn }
}

// NewGame creates a game with a player at start
func NewGame(mode models.Mode, start models.Position, opts ...Option) *Game {
	g := &Game{
		mode:  mode,
		index: make(map[string]*Entity),
		newID: uuid.NewString,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.id == "" {
		g.id = uuid.NewString()
	}
	g.log = g.log.With(zap.String("game_id", g.id))
	g.player = newPlayer(g.newID(), start, mode.InitialHealth())
	g.register(g.player.Entity)
	return g
}

func (g *Game) ID() string        { return g.id }
func (g *Game) Mode() models.Mode { return g.mode }
func (g *Game) CurrentTick() int  { return g.tick }
func (g *Game) Over() bool        { return g.over }
func (g *Game) Player() *Player   { return g.player }
func (g *Game) Bounds() (Bounds, bool) {
	if g.bounds == nil {
		return Bounds{}, false
	}
	return *g.bounds, true
}

// Entities returns the registry in registration order
func (g *Game) Entities() []*Entity {
	out := make([]*Entity, len(g.entities))
	copy(out, g.entities)
	return out
}

// Entity looks up a registered entity by id
func (g *Game) Entity(id string) (*Entity, bool) {
	e, ok := g.index[id]
	return e, ok
}

// Contains reports whether e is currently registered
func (g *Game) Contains(e *Entity) bool {
	registered, ok := g.index[e.id]
	return ok && registered == e
}

// EntitiesAt returns every entity on the cell, in registration order
func (g *Game) EntitiesAt(pos models.Position) []*Entity {
	var out []*Entity
	for _, e := range g.entities {
		if e.pos == pos {
			out = append(out, e)
		}
	}
	return out
}

// AdjacentEntities returns every entity within one step of pos, diagonals
// and pos itself included.
func (g *Game) AdjacentEntities(pos models.Position) []*Entity {
	var out []*Entity
	for _, e := range g.entities {
		if pos.Surrounds(e.pos) {
			out = append(out, e)
		}
	}
	return out
}

// AddEntity registers e. Hostile enemies start observing the player.
func (g *Game) AddEntity(e *Entity) error {
	if e.kind == KindPlayer {
		return fmt.Errorf("%w: the player is created with the game", ErrDuplicateEntity)
	}
	if _, exists := g.index[e.id]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateEntity, e.id)
	}
	g.register(e)
	if e.kind.IsEnemy() && e.hostile {
		g.player.Attach(e)
	}
	return nil
}

func (g *Game) register(e *Entity) {
	g.entities = append(g.entities, e)
	g.index[e.id] = e
}

// RemoveEntity drops e from the registry and from the player's observers.
// Removing the player ends the game.
func (g *Game) RemoveEntity(e *Entity) bool {
	if !g.Contains(e) {
		return false
	}
	delete(g.index, e.id)
	for i, existing := range g.entities {
		if existing == e {
			g.entities = append(g.entities[:i], g.entities[i+1:]...)
			break
		}
	}
	g.player.Detach(e)
	if e == g.player.Entity {
		g.over = true
	}
	g.log.Debug("entity removed", zap.String("entity_id", e.id), zap.String("kind", string(e.kind)), zap.Int("tick", g.tick))
	return true
}

// CanOccupy checks whether an actor may stand on pos
func (g *Game) CanOccupy(pos models.Position) error {
	if g.bounds != nil && !g.bounds.Contains(pos) {
		return ErrOutOfBounds
	}
	for _, e := range g.entities {
		if e.pos == pos && e.blocksMovement() {
			return ErrBlocked
		}
	}
	return nil
}

// stepToward picks a single orthogonal step from `from` that closes on
// `to`, trying the horizontal axis first.
func (g *Game) stepToward(from, to models.Position) (models.Position, bool) {
	var candidates []models.Position
	if dx := sign(to.X - from.X); dx != 0 {
		candidates = append(candidates, from.Add(dx, 0))
	}
	if dy := sign(to.Y - from.Y); dy != 0 {
		candidates = append(candidates, from.Add(0, dy))
	}
	for _, c := range candidates {
		if g.CanOccupy(c) == nil {
			return c, true
		}
	}
	return from, false
}

// Tick advances every entity that carries a state, in registration order.
// Entities spawned during the tick first act on the next one; entities
// removed during the tick do not act.
func (g *Game) Tick() error {
	if g.over {
		return ErrGameOver
	}
	for _, e := range g.Entities() {
		if e.state == nil || !g.Contains(e) {
			continue
		}
		if err := e.state.Advance(g, e); err != nil {
			return fmt.Errorf("tick %d: advance %s: %w", g.tick, e.id, err)
		}
		if g.over {
			break
		}
	}
	g.player.decay()
	g.player.history = append(g.player.history, g.player.pos)
	g.tick++
	return nil
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}
