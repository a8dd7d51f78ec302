package models

// ItemKind names a class of collectable or equippable item
type ItemKind string

const (
	ItemKey                 ItemKind = "key"
	ItemTreasure            ItemKind = "treasure"
	ItemWood                ItemKind = "wood"
	ItemArrow               ItemKind = "arrow"
	ItemSword               ItemKind = "sword"
	ItemBow                 ItemKind = "bow"
	ItemShield              ItemKind = "shield"
	ItemInvincibilityPotion ItemKind = "invincibility_potion"
	ItemInvisibilityPotion  ItemKind = "invisibility_potion"
	ItemBomb                ItemKind = "bomb"
	ItemTimeTurner          ItemKind = "time_turner"
)

// Default durabilities for equipment, in battle rounds
const (
	SwordDurability  = 5
	BowDurability    = 4
	ShieldDurability = 3
)

// Item is a single collectable instance
type Item struct {
	ID         string   `json:"id"`
	Kind       ItemKind `json:"kind"`
	KeyID      string   `json:"key_id,omitempty"`
	Durability int      `json:"durability,omitempty"`
}

// NewItem builds an item with the default durability for its kind
func NewItem(id string, kind ItemKind) *Item {
	item := &Item{ID: id, Kind: kind}
	switch kind {
	case ItemSword:
		item.Durability = SwordDurability
	case ItemBow:
		item.Durability = BowDurability
	case ItemShield:
		item.Durability = ShieldDurability
	}
	return item
}

// IsWeapon reports whether the item adds to the player's attack
func (i *Item) IsWeapon() bool {
	return i.Kind == ItemSword || i.Kind == ItemBow
}

// Wear uses up one point of durability and reports whether the item broke
func (i *Item) Wear() bool {
	if i.Durability <= 0 {
		return false
	}
	i.Durability--
	return i.Durability == 0
}
