package dungeon

import (
	"fmt"
	"time"

	"dungeonmania/server/models"
)

// Snapshot captures the full game state for persistence
func (g *Game) Snapshot() models.GameSnapshot {
	p := g.player
	snap := models.GameSnapshot{
		ID:   g.id,
		Mode: g.mode.Name(),
		Tick: g.tick,
		Over: g.over,
		Player: models.PlayerSnapshot{
			ID:              p.id,
			Position:        p.pos,
			Health:          p.health,
			Attack:          p.attack,
			Inventory:       copyItems(p.inventory.Items()),
			History:         p.History(),
			InvincibleTicks: p.invincible,
			InvisibleTicks:  p.invisible,
		},
		SavedAt: time.Now(),
	}
	if g.bounds != nil {
		snap.Width, snap.Height = g.bounds.Width, g.bounds.Height
	}
	for _, e := range g.entities {
		if e.kind == KindPlayer {
			continue
		}
		es := models.EntitySnapshot{
			ID:       e.id,
			Kind:     string(e.kind),
			Position: e.pos,
			Health:   e.health,
			Attack:   e.attack,
			Hostile:  e.hostile,
			Item:     copyItem(e.item),
			Colour:   e.colour,
		}
		if e.state != nil {
			st := e.state.Snapshot()
			es.State = &st
		}
		snap.Entities = append(snap.Entities, es)
	}
	return snap
}

// Restore rebuilds a game from a snapshot. Observer links are re-derived
// from hostility.
func Restore(snap models.GameSnapshot, opts ...Option) (*Game, error) {
	mode, err := models.ModeByName(snap.Mode)
	if err != nil {
		return nil, err
	}
	opts = append(opts, WithID(snap.ID))
	if snap.Width > 0 && snap.Height > 0 {
		opts = append(opts, WithBounds(snap.Width, snap.Height))
	}
	g := NewGame(mode, snap.Player.Position, opts...)
	p := g.player
	delete(g.index, p.id)
	p.id = snap.Player.ID
	g.index[p.id] = p.Entity
	p.health = snap.Player.Health
	p.attack = snap.Player.Attack
	p.invincible = snap.Player.InvincibleTicks
	p.invisible = snap.Player.InvisibleTicks
	if len(snap.Player.History) > 0 {
		p.history = append([]models.Position(nil), snap.Player.History...)
	}
	for _, item := range copyItems(snap.Player.Inventory) {
		if err := p.inventory.Add(item); err != nil {
			return nil, fmt.Errorf("restore inventory: %w", err)
		}
	}
	for _, es := range snap.Entities {
		e := &Entity{
			id:           es.ID,
			kind:         Kind(es.Kind),
			pos:          es.Position,
			health:       es.Health,
			attack:       es.Attack,
			hostile:      es.Hostile,
			item:         copyItem(es.Item),
			colour:       es.Colour,
			state:        restoreState(es.State),
			interactable: Kind(es.Kind) == KindMercenary && es.Hostile,
		}
		if err := g.AddEntity(e); err != nil {
			return nil, fmt.Errorf("restore entity: %w", err)
		}
	}
	g.tick = snap.Tick
	if snap.Over {
		g.RemoveEntity(p.Entity)
	}
	return g, nil
}

func copyItem(item *models.Item) *models.Item {
	if item == nil {
		return nil
	}
	c := *item
	return &c
}

func copyItems(items []*models.Item) []*models.Item {
	out := make([]*models.Item, len(items))
	for i, item := range items {
		out[i] = copyItem(item)
	}
	return out
}
