package dungeon

import "go.uber.org/zap"

// engageIfColliding starts a battle when a hostile entity shares the
// player's cell
func (g *Game) engageIfColliding(e *Entity) {
	if g.player != nil && e.pos == g.player.pos && e.kind.IsEnemy() {
		g.battle(e)
	}
}

// battle fights rounds until one side drops to zero health. The loser is
// removed from the registry.
func (g *Game) battle(enemy *Entity) {
	p := g.player
	if !enemy.hostile || p.Invisible() || !g.Contains(enemy) {
		return
	}
	rounds := 0
	if p.Invincible() {
		enemy.health = 0
	} else {
		for enemy.health > 0 && p.health > 0 {
			rounds++
			enemy.damage(p.strike())
			if enemy.health <= 0 {
				break
			}
			p.damage(p.absorb(g.mode.ScaleDamage(enemy.attack)))
		}
	}
	g.log.Debug("battle",
		zap.String("enemy_id", enemy.id),
		zap.Int("rounds", rounds),
		zap.Int("player_health", p.health),
		zap.Int("tick", g.tick),
	)
	if enemy.health <= 0 {
		g.RemoveEntity(enemy)
	}
	if p.health <= 0 {
		g.RemoveEntity(p.Entity)
	}
}
