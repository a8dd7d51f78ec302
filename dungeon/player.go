package dungeon

import "dungeonmania/server/models"

const (
	DefaultPlayerAttack = 5
	swordBonus          = 2
	potionDuration      = 5
	DefaultBombFuse     = 3
	mercenaryBribeRange = 2
)

// Player is the entity driven by client commands. It publishes its
// position to attached enemies after every move.
type Player struct {
	*Entity
	Publisher

	inventory  *models.Inventory
	history    []models.Position
	invincible int
	invisible  int
}

func newPlayer(id string, pos models.Position, health int) *Player {
	return &Player{
		Entity: &Entity{
			id:     id,
			kind:   KindPlayer,
			pos:    pos,
			health: health,
			attack: DefaultPlayerAttack,
		},
		inventory: models.NewInventory(),
		history:   []models.Position{pos},
	}
}

// NotifyObservers publishes the player's current position
func (p *Player) NotifyObservers() {
	p.publish(p)
}

func (p *Player) Inventory() *models.Inventory { return p.inventory }
func (p *Player) Invincible() bool             { return p.invincible > 0 }
func (p *Player) Invisible() bool              { return p.invisible > 0 }
func (p *Player) InvincibleTicks() int         { return p.invincible }
func (p *Player) InvisibleTicks() int          { return p.invisible }

// HasWeapon reports whether a sword or bow is held
func (p *Player) HasWeapon() bool {
	return p.inventory.HasWeapon()
}

// Weapon returns the preferred held weapon, if any
func (p *Player) Weapon() (*models.Item, bool) {
	return p.inventory.Weapon()
}

// History returns the player's position at the end of every tick so far,
// starting with the spawn position.
func (p *Player) History() []models.Position {
	return append([]models.Position(nil), p.history...)
}

// strike returns the damage of one battle round and wears out the weapons used
func (p *Player) strike() int {
	dmg := p.attack
	if dmg < 1 {
		dmg = 1
	}
	if sword, ok := p.inventory.Find(models.ItemSword); ok {
		dmg += swordBonus
		p.wear(sword)
	}
	if bow, ok := p.inventory.Find(models.ItemBow); ok {
		dmg *= 2
		p.wear(bow)
	}
	return dmg
}

// absorb reduces incoming damage with a shield
func (p *Player) absorb(dmg int) int {
	if shield, ok := p.inventory.Find(models.ItemShield); ok && dmg > 0 {
		dmg /= 2
		p.wear(shield)
	}
	return dmg
}

func (p *Player) wear(item *models.Item) {
	if item.Wear() {
		p.inventory.Remove(item.ID)
	}
}

func (p *Player) decay() {
	if p.invincible > 0 {
		p.invincible--
	}
	if p.invisible > 0 {
		p.invisible--
	}
}
