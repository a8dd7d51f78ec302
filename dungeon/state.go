package dungeon

import "dungeonmania/server/models"

// State is the single active behaviour of an entity. Advance computes the
// entity's next position (or removes it) and performs any interaction
// before returning.
type State interface {
	Name() string
	Advance(g *Game, e *Entity) error
	Snapshot() models.StateSnapshot
}

const (
	StateIdle   = "idle"
	StatePatrol = "patrol"
	StateFollow = "follow"
	StateRewind = "rewind"
	StateFuse   = "fuse"
)

// IdleState stands still
type IdleState struct{}

func (s *IdleState) Name() string { return StateIdle }

func (s *IdleState) Advance(g *Game, e *Entity) error {
	return nil
}

func (s *IdleState) Snapshot() models.StateSnapshot {
	return models.StateSnapshot{Name: StateIdle}
}

// PatrolState walks a fixed route of directions. After the last step it
// wraps to loopFrom, so a route may open with a lead-in. A blocked step is
// retried on the next tick.
type PatrolState struct {
	route    []models.Direction
	step     int
	loopFrom int
}

func NewPatrolState(route []models.Direction) *PatrolState {
	return &PatrolState{route: append([]models.Direction(nil), route...)}
}

// NewSpiderState steps up off the spawn cell once, then circles the spawn
// cell clockwise
func NewSpiderState() *PatrolState {
	s := NewPatrolState(SpiderRoute)
	s.loopFrom = 1
	return s
}

func (s *PatrolState) Name() string { return StatePatrol }

func (s *PatrolState) Advance(g *Game, e *Entity) error {
	if len(s.route) == 0 {
		return nil
	}
	to := e.pos.Translate(s.route[s.step])
	if g.CanOccupy(to) != nil {
		return nil
	}
	e.pos = to
	s.step++
	if s.step >= len(s.route) {
		s.step = s.loopFrom
	}
	g.engageIfColliding(e)
	return nil
}

func (s *PatrolState) Snapshot() models.StateSnapshot {
	path := make([]models.Position, len(s.route))
	for i, d := range s.route {
		dx, dy := d.Offset()
		path[i] = models.Pos(dx, dy)
	}
	return models.StateSnapshot{Name: StatePatrol, Path: path, Step: s.step, Loop: s.loopFrom}
}

// FollowState closes in on the player one cell per tick and battles on
// contact. Horizontal steps are preferred over vertical ones.
type FollowState struct{}

func (s *FollowState) Name() string { return StateFollow }

func (s *FollowState) Advance(g *Game, e *Entity) error {
	p := g.player
	if p == nil || p.Invisible() {
		return nil
	}
	if e.pos != p.pos {
		if next, ok := g.stepToward(e.pos, p.pos); ok {
			e.pos = next
		}
	}
	g.engageIfColliding(e)
	return nil
}

func (s *FollowState) Snapshot() models.StateSnapshot {
	return models.StateSnapshot{Name: StateFollow}
}

// RewindState replays a recorded path one position per tick. Once the path
// is used up, the next Advance removes the entity from the game.
type RewindState struct {
	path []models.Position
	next int
}

func NewRewindState(path []models.Position) *RewindState {
	return &RewindState{path: append([]models.Position(nil), path...)}
}

func (s *RewindState) Name() string { return StateRewind }

// Remaining is the number of recorded positions not yet replayed
func (s *RewindState) Remaining() int {
	return len(s.path) - s.next
}

func (s *RewindState) Advance(g *Game, e *Entity) error {
	if s.next >= len(s.path) {
		g.RemoveEntity(e)
		return nil
	}
	e.pos = s.path[s.next]
	s.next++
	g.engageIfColliding(e)
	return nil
}

func (s *RewindState) Snapshot() models.StateSnapshot {
	return models.StateSnapshot{Name: StateRewind, Path: append([]models.Position(nil), s.path...), Step: s.next}
}

// FuseState counts down an armed bomb
type FuseState struct {
	Remaining int
}

func (s *FuseState) Name() string { return StateFuse }

func (s *FuseState) Advance(g *Game, e *Entity) error {
	s.Remaining--
	if s.Remaining <= 0 {
		g.Explode(e)
	}
	return nil
}

func (s *FuseState) Snapshot() models.StateSnapshot {
	return models.StateSnapshot{Name: StateFuse, Fuse: s.Remaining}
}

func restoreState(snap *models.StateSnapshot) State {
	if snap == nil {
		return nil
	}
	switch snap.Name {
	case StatePatrol:
		route := make([]models.Direction, 0, len(snap.Path))
		for _, off := range snap.Path {
			route = append(route, directionOf(off))
		}
		s := NewPatrolState(route)
		if len(route) > 0 {
			s.step = snap.Step % len(route)
			s.loopFrom = snap.Loop % len(route)
		}
		return s
	case StateFollow:
		return &FollowState{}
	case StateRewind:
		s := NewRewindState(snap.Path)
		s.next = snap.Step
		return s
	case StateFuse:
		return &FuseState{Remaining: snap.Fuse}
	}
	return &IdleState{}
}

func directionOf(off models.Position) models.Direction {
	switch off {
	case models.Pos(0, -1):
		return models.DirectionUp
	case models.Pos(0, 1):
		return models.DirectionDown
	case models.Pos(-1, 0):
		return models.DirectionLeft
	case models.Pos(1, 0):
		return models.DirectionRight
	}
	return models.DirectionNone
}
