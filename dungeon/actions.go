package dungeon

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"dungeonmania/server/models"
)

// MovePlayer moves the player one cell, resolves portals and pickups,
// notifies observers, fights enemies on the destination and then ticks.
func (g *Game) MovePlayer(d models.Direction) error {
	if g.over {
		return ErrGameOver
	}
	p := g.player
	from := p.pos
	to := from.Translate(d)
	if to != from {
		if err := g.CanOccupy(to); err != nil {
			return &MoveError{EntityID: p.id, From: from, To: to, Reason: err}
		}
		if portal, ok := g.portalAt(to); ok {
			dest, err := g.throughPortal(portal, d)
			if err != nil {
				return &MoveError{EntityID: p.id, From: from, To: to, Reason: err}
			}
			to = dest
		}
		p.pos = to
		g.pickUp(to)
		p.NotifyObservers()
		for _, e := range g.EntitiesAt(to) {
			if e.kind.IsEnemy() {
				g.battle(e)
			}
			if g.over {
				return nil
			}
		}
	}
	return g.Tick()
}

// Wait lets one tick pass without the player acting
func (g *Game) Wait() error {
	return g.MovePlayer(models.DirectionNone)
}

// UseItem consumes a potion or arms a bomb from the inventory, then ticks
func (g *Game) UseItem(itemID string) error {
	if g.over {
		return ErrGameOver
	}
	p := g.player
	item, ok := p.inventory.Get(itemID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrMissingItem, itemID)
	}
	switch item.Kind {
	case models.ItemInvincibilityPotion:
		p.invincible = potionDuration * g.mode.InvincibilityMultiplier()
	case models.ItemInvisibilityPotion:
		p.invisible = potionDuration
	case models.ItemBomb:
		bomb := NewBomb(g.newID(), p.pos, DefaultBombFuse)
		if err := g.AddEntity(bomb); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %s", ErrNotUsable, item.Kind)
	}
	p.inventory.Remove(item.ID)
	return g.Tick()
}

// Interact bribes a mercenary within range with a treasure. A bribed
// mercenary stops fighting and stops observing the player.
func (g *Game) Interact(entityID string) error {
	if g.over {
		return ErrGameOver
	}
	e, ok := g.index[entityID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrEntityNotFound, entityID)
	}
	if !e.interactable {
		return fmt.Errorf("%w: %s", ErrNotInteractable, entityID)
	}
	p := g.player
	if e.pos.ChebyshevDistance(p.pos) > mercenaryBribeRange {
		return fmt.Errorf("%w: %s", ErrOutOfRange, entityID)
	}
	treasure, ok := p.inventory.Find(models.ItemTreasure)
	if !ok {
		return fmt.Errorf("%w: %s", ErrMissingItem, models.ItemTreasure)
	}
	p.inventory.Remove(treasure.ID)
	e.hostile = false
	e.interactable = false
	e.state = &IdleState{}
	p.Detach(e)
	g.log.Debug("mercenary bribed", zap.String("entity_id", e.id), zap.Int("tick", g.tick))
	return g.Tick()
}

// Rewind spawns an older copy of the player where it stood `ticks` ticks
// ago. The copy replays the player's moves since then and then vanishes.
func (g *Game) Rewind(ticks int) error {
	if g.over {
		return ErrGameOver
	}
	p := g.player
	if !p.inventory.Has(models.ItemTimeTurner) {
		return fmt.Errorf("%w: %s", ErrMissingItem, models.ItemTimeTurner)
	}
	if ticks < 1 || ticks >= len(p.history) {
		return fmt.Errorf("%w: %d ticks with %d recorded", ErrInvalidRewind, ticks, len(p.history)-1)
	}
	start := p.history[len(p.history)-1-ticks]
	echo := NewEnemy(g.newID(), KindOlderPlayer, start)
	echo.health = p.health
	replay := NewRewindState(p.history[len(p.history)-ticks:])
	echo.state = replay
	if err := g.AddEntity(echo); err != nil {
		return err
	}
	g.log.Debug("older player spawned", zap.String("entity_id", echo.id), zap.Int("replay", replay.Remaining()))
	return g.Tick()
}

// Build crafts the named recipe from the inventory. Time does not pass.
func (g *Game) Build(recipe string) (*models.Item, error) {
	if g.over {
		return nil, ErrGameOver
	}
	return g.player.inventory.Craft(recipe, g.newID())
}

func (g *Game) portalAt(pos models.Position) (*Entity, bool) {
	for _, e := range g.entities {
		if e.kind == KindPortal && e.pos == pos {
			return e, true
		}
	}
	return nil, false
}

// throughPortal finds the exit beyond the paired portal. An unpaired
// portal behaves as an ordinary floor cell.
func (g *Game) throughPortal(entry *Entity, d models.Direction) (models.Position, error) {
	for _, e := range g.entities {
		if e.kind != KindPortal || e == entry || e.colour != entry.colour {
			continue
		}
		dest := e.pos.Translate(d)
		if err := g.CanOccupy(dest); err != nil {
			return entry.pos, err
		}
		if _, chained := g.portalAt(dest); chained {
			return entry.pos, ErrBlocked
		}
		return dest, nil
	}
	return entry.pos, nil
}

func (g *Game) pickUp(pos models.Position) {
	for _, e := range g.EntitiesAt(pos) {
		if e.kind != KindItem {
			continue
		}
		if err := g.player.inventory.Add(e.item); err != nil {
			if !errors.Is(err, models.ErrKeyLimit) {
				g.log.Warn("pickup failed", zap.String("entity_id", e.id), zap.Error(err))
			}
			continue
		}
		g.RemoveEntity(e)
	}
}
