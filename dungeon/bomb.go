package dungeon

import (
	"github.com/zyedidia/generic/mapset"
	"go.uber.org/zap"
)

// Explode removes the bomb, then every entity around it except the player.
// Bombs caught in the blast explode in turn; each bomb detonates once.
func (g *Game) Explode(bomb *Entity) {
	g.explode(bomb, mapset.New[string]())
}

func (g *Game) explode(bomb *Entity, detonated mapset.Set[string]) {
	if detonated.Has(bomb.id) {
		return
	}
	detonated.Put(bomb.id)
	g.RemoveEntity(bomb)
	g.log.Debug("bomb exploded", zap.String("entity_id", bomb.id), zap.Int("tick", g.tick))

	for _, e := range g.AdjacentEntities(bomb.pos) {
		if e.kind == KindPlayer || !g.Contains(e) {
			continue
		}
		if e.kind == KindBomb {
			g.explode(e, detonated)
			continue
		}
		g.RemoveEntity(e)
	}
}
