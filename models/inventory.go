package models

import (
	"errors"
	"fmt"
)

var (
	ErrKeyLimit              = errors.New("already holding a key with that id")
	ErrUnknownRecipe         = errors.New("unknown recipe")
	ErrInsufficientMaterials = errors.New("insufficient materials")
)

// Inventory is the ordered bag of items a player carries
type Inventory struct {
	items []*Item
}

// NewInventory creates an empty inventory
func NewInventory() *Inventory {
	return &Inventory{}
}

// Add appends an item. A second key with the same key id is refused.
func (inv *Inventory) Add(item *Item) error {
	if item.Kind == ItemKey {
		for _, held := range inv.items {
			if held.Kind == ItemKey && held.KeyID == item.KeyID {
				return fmt.Errorf("%w: %s", ErrKeyLimit, item.KeyID)
			}
		}
	}
	inv.items = append(inv.items, item)
	return nil
}

// Remove drops the item with the given id and returns it
func (inv *Inventory) Remove(id string) (*Item, bool) {
	for i, item := range inv.items {
		if item.ID == id {
			inv.items = append(inv.items[:i], inv.items[i+1:]...)
			return item, true
		}
	}
	return nil, false
}

// Get finds an item by id
func (inv *Inventory) Get(id string) (*Item, bool) {
	for _, item := range inv.items {
		if item.ID == id {
			return item, true
		}
	}
	return nil, false
}

// Find returns the first item of the given kind
func (inv *Inventory) Find(kind ItemKind) (*Item, bool) {
	for _, item := range inv.items {
		if item.Kind == kind {
			return item, true
		}
	}
	return nil, false
}

// FindKey returns the held key with the given key id
func (inv *Inventory) FindKey(keyID string) (*Item, bool) {
	for _, item := range inv.items {
		if item.Kind == ItemKey && item.KeyID == keyID {
			return item, true
		}
	}
	return nil, false
}

// Count returns how many items of a kind are held
func (inv *Inventory) Count(kind ItemKind) int {
	n := 0
	for _, item := range inv.items {
		if item.Kind == kind {
			n++
		}
	}
	return n
}

func (inv *Inventory) Has(kind ItemKind) bool {
	_, ok := inv.Find(kind)
	return ok
}

// HasWeapon reports whether a sword or a bow is held
func (inv *Inventory) HasWeapon() bool {
	for _, item := range inv.items {
		if item.IsWeapon() {
			return true
		}
	}
	return false
}

// Weapon returns the sword if one is held, otherwise the bow
func (inv *Inventory) Weapon() (*Item, bool) {
	if sword, ok := inv.Find(ItemSword); ok {
		return sword, true
	}
	return inv.Find(ItemBow)
}

// Items returns a copy of the held items in pickup order
func (inv *Inventory) Items() []*Item {
	out := make([]*Item, len(inv.items))
	copy(out, inv.items)
	return out
}

func (inv *Inventory) Len() int {
	return len(inv.items)
}

// take removes n items of a kind, oldest first
func (inv *Inventory) take(kind ItemKind, n int) {
	kept := inv.items[:0]
	for _, item := range inv.items {
		if n > 0 && item.Kind == kind {
			n--
			continue
		}
		kept = append(kept, item)
	}
	inv.items = kept
}
