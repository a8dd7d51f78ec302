package models

import "fmt"

// Ingredient is a quantity of one item kind
type Ingredient struct {
	Kind  ItemKind
	Count int
}

// Recipe produces one item from ingredients. Each entry of Options is an
// alternative set of extra ingredients; the first satisfiable one is used.
type Recipe struct {
	Name     string
	Produces ItemKind
	Base     []Ingredient
	Options  [][]Ingredient
}

// Recipes lists the buildable items by name
var Recipes = map[string]Recipe{
	"bow": {
		Name:     "bow",
		Produces: ItemBow,
		Base:     []Ingredient{{ItemWood, 1}, {ItemArrow, 3}},
	},
	"shield": {
		Name:     "shield",
		Produces: ItemShield,
		Base:     []Ingredient{{ItemWood, 2}},
		Options: [][]Ingredient{
			{{ItemTreasure, 1}},
			{{ItemKey, 1}},
		},
	},
}

// Buildable returns the names of every recipe the inventory can satisfy now
func (inv *Inventory) Buildable() []string {
	var names []string
	for _, name := range []string{"bow", "shield"} {
		if _, ok := inv.plan(Recipes[name]); ok {
			names = append(names, name)
		}
	}
	return names
}

// Craft consumes the ingredients of the named recipe and adds the result.
// Nothing is consumed when the materials are missing.
func (inv *Inventory) Craft(name, newID string) (*Item, error) {
	recipe, ok := Recipes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRecipe, name)
	}
	need, ok := inv.plan(recipe)
	if !ok {
		return nil, fmt.Errorf("%w for %s", ErrInsufficientMaterials, name)
	}
	for _, ing := range need {
		inv.take(ing.Kind, ing.Count)
	}
	item := NewItem(newID, recipe.Produces)
	inv.items = append(inv.items, item)
	return item, nil
}

func (inv *Inventory) plan(r Recipe) ([]Ingredient, bool) {
	if !inv.covers(r.Base) {
		return nil, false
	}
	if len(r.Options) == 0 {
		return r.Base, true
	}
	for _, opt := range r.Options {
		if inv.covers(opt) {
			return append(append([]Ingredient{}, r.Base...), opt...), true
		}
	}
	return nil, false
}

func (inv *Inventory) covers(ings []Ingredient) bool {
	for _, ing := range ings {
		if inv.Count(ing.Kind) < ing.Count {
			return false
		}
	}
	return true
}
