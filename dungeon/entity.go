package dungeon

import "dungeonmania/server/models"

// Kind tags the variant of an Entity
type Kind string

const (
	KindPlayer      Kind = "player"
	KindZombie      Kind = "zombie_toast"
	KindMercenary   Kind = "mercenary"
	KindSpider      Kind = "spider"
	KindOlderPlayer Kind = "older_player"
	KindWall        Kind = "wall"
	KindPortal      Kind = "portal"
	KindItem        Kind = "item"
	KindBomb        Kind = "bomb"
)

// IsEnemy reports whether the kind fights the player
func (k Kind) IsEnemy() bool {
	switch k {
	case KindZombie, KindMercenary, KindSpider, KindOlderPlayer:
		return true
	}
	return false
}

// Entity is anything placed in the dungeon. Static entities, ground items,
// armed bombs and moving actors share this type; behaviour lives in State.
type Entity struct {
	id           string
	kind         Kind
	pos          models.Position
	interactable bool

	health  int
	attack  int
	hostile bool
	state   State

	item   *models.Item
	colour string
}

type enemyStats struct {
	health int
	attack int
}

var defaultStats = map[Kind]enemyStats{
	KindZombie:      {health: 10, attack: 2},
	KindSpider:      {health: 6, attack: 1},
	KindMercenary:   {health: 12, attack: 3},
	KindOlderPlayer: {health: 10, attack: 3},
}

// SpiderRoute is one step up followed by a clockwise circle of the spawn cell
var SpiderRoute = []models.Direction{
	models.DirectionUp,
	models.DirectionRight,
	models.DirectionDown,
	models.DirectionDown,
	models.DirectionLeft,
	models.DirectionLeft,
	models.DirectionUp,
	models.DirectionUp,
	models.DirectionRight,
}

// NewEnemy builds a hostile actor with the default stats and starting
// state for its kind. Older players should be spawned through Game.Rewind.
func NewEnemy(id string, kind Kind, pos models.Position) *Entity {
	stats := defaultStats[kind]
	e := &Entity{
		id:      id,
		kind:    kind,
		pos:     pos,
		health:  stats.health,
		attack:  stats.attack,
		hostile: true,
	}
	switch kind {
	case KindMercenary:
		e.interactable = true
		e.state = &FollowState{}
	case KindSpider:
		e.state = NewSpiderState()
	default:
		e.state = &IdleState{}
	}
	return e
}

func NewWall(id string, pos models.Position) *Entity {
	return &Entity{id: id, kind: KindWall, pos: pos}
}

// NewPortal creates one end of a portal pair; pairs share a colour
func NewPortal(id string, pos models.Position, colour string) *Entity {
	return &Entity{id: id, kind: KindPortal, pos: pos, colour: colour}
}

// NewGroundItem places a collectable; the entity shares the item's id
func NewGroundItem(pos models.Position, item *models.Item) *Entity {
	return &Entity{id: item.ID, kind: KindItem, pos: pos, item: item}
}

// NewBomb creates an armed bomb that explodes after fuse ticks
func NewBomb(id string, pos models.Position, fuse int) *Entity {
	return &Entity{id: id, kind: KindBomb, pos: pos, state: &FuseState{Remaining: fuse}}
}

func (e *Entity) ID() string                { return e.id }
func (e *Entity) Kind() Kind                { return e.kind }
func (e *Entity) Position() models.Position { return e.pos }
func (e *Entity) Interactable() bool        { return e.interactable }
func (e *Entity) Health() int               { return e.health }
func (e *Entity) Attack() int               { return e.attack }
func (e *Entity) Hostile() bool             { return e.hostile }
func (e *Entity) State() State              { return e.state }
func (e *Entity) Item() *models.Item        { return e.item }
func (e *Entity) Colour() string            { return e.colour }

// SetState replaces the behaviour state wholesale
func (e *Entity) SetState(s State) {
	e.state = s
}

// Update reacts to the player moving. An idle, patrolling or replaying enemy
// that finds the player on or next to its own cell switches to FollowState.
func (e *Entity) Update(s Subject) {
	if !e.hostile || e.state == nil {
		return
	}
	switch e.state.(type) {
	case *IdleState, *PatrolState, *RewindState:
		if s.Position().Touches(e.pos) {
			e.state = &FollowState{}
		}
	}
}

func (e *Entity) blocksMovement() bool {
	return e.kind == KindWall
}

func (e *Entity) damage(n int) {
	e.health -= n
	if e.health < 0 {
		e.health = 0
	}
}
