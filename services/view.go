package services

import (
	"dungeonmania/server/dungeon"
	"dungeonmania/server/messages"
)

// buildUpdate renders the whole game for clients. Fog of war is not
// modelled; every entity is visible.
func buildUpdate(g *dungeon.Game) *messages.UpdateMessage {
	p := g.Player()
	inv := p.Inventory()

	items := make([]messages.ItemView, 0, inv.Len())
	for _, item := range inv.Items() {
		items = append(items, messages.ItemView{
			ID:         item.ID,
			Kind:       string(item.Kind),
			Durability: item.Durability,
		})
	}
	buildable := inv.Buildable()
	if buildable == nil {
		buildable = []string{}
	}

	entities := make([]messages.EntityView, 0)
	for _, e := range g.Entities() {
		if e.Kind() == dungeon.KindPlayer {
			continue
		}
		view := messages.EntityView{
			ID:           e.ID(),
			Kind:         string(e.Kind()),
			X:            e.Position().X,
			Y:            e.Position().Y,
			Health:       e.Health(),
			Hostile:      e.Hostile(),
			Interactable: e.Interactable(),
		}
		if s := e.State(); s != nil {
			view.State = s.Name()
		}
		if item := e.Item(); item != nil {
			view.Item = string(item.Kind)
		}
		entities = append(entities, view)
	}

	update := &messages.UpdateMessage{
		GameID: g.ID(),
		Mode:   g.Mode().Name(),
		Tick:   g.CurrentTick(),
		Over:   g.Over(),
		Player: messages.PlayerView{
			ID:              p.ID(),
			X:               p.Position().X,
			Y:               p.Position().Y,
			Health:          p.Health(),
			InvincibleTicks: p.InvincibleTicks(),
			InvisibleTicks:  p.InvisibleTicks(),
			Inventory:       items,
			Buildable:       buildable,
		},
		Entities: entities,
	}
	if bounds, ok := g.Bounds(); ok {
		update.Width, update.Height = bounds.Width, bounds.Height
	}
	return update
}
