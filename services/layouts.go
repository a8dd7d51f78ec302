package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"dungeonmania/server/dungeon"
	"dungeonmania/server/models"
)

var ErrUnknownLayout = errors.New("unknown layout")

// Layout is a built-in dungeon. Map files are not supported; layouts are
// assembled in code.
type Layout struct {
	Name     string
	Width    int
	Height   int
	Start    models.Position
	populate func(g *dungeon.Game) error
}

var layouts = map[string]Layout{
	"empty": {
		Name:     "empty",
		Width:    8,
		Height:   8,
		Start:    models.Pos(0, 0),
		populate: func(*dungeon.Game) error { return nil },
	},
	"starter": {
		Name:     "starter",
		Width:    12,
		Height:   10,
		Start:    models.Pos(1, 1),
		populate: populateStarter,
	},
}

// LayoutByName returns a built-in layout; the empty name selects "starter"
func LayoutByName(name string) (Layout, error) {
	if name == "" {
		name = "starter"
	}
	l, ok := layouts[name]
	if !ok {
		return Layout{}, fmt.Errorf("%w: %q", ErrUnknownLayout, name)
	}
	return l, nil
}

func populateStarter(g *dungeon.Game) error {
	item := func(x, y int, kind models.ItemKind) *dungeon.Entity {
		return dungeon.NewGroundItem(models.Pos(x, y), models.NewItem(uuid.NewString(), kind))
	}
	key := models.NewItem(uuid.NewString(), models.ItemKey)
	key.KeyID = "vault"

	entities := []*dungeon.Entity{
		dungeon.NewWall(uuid.NewString(), models.Pos(4, 0)),
		dungeon.NewWall(uuid.NewString(), models.Pos(4, 1)),
		dungeon.NewWall(uuid.NewString(), models.Pos(4, 2)),
		dungeon.NewWall(uuid.NewString(), models.Pos(4, 4)),
		dungeon.NewWall(uuid.NewString(), models.Pos(4, 5)),
		dungeon.NewPortal(uuid.NewString(), models.Pos(2, 5), "blue"),
		dungeon.NewPortal(uuid.NewString(), models.Pos(9, 8), "blue"),
		item(2, 1, models.ItemSword),
		item(1, 3, models.ItemWood),
		item(2, 3, models.ItemArrow),
		item(3, 3, models.ItemArrow),
		item(3, 2, models.ItemArrow),
		item(6, 1, models.ItemTreasure),
		item(1, 6, models.ItemBomb),
		item(7, 6, models.ItemInvisibilityPotion),
		item(10, 2, models.ItemInvincibilityPotion),
		item(0, 8, models.ItemTimeTurner),
		dungeon.NewGroundItem(models.Pos(8, 4), key),
		dungeon.NewEnemy(uuid.NewString(), dungeon.KindZombie, models.Pos(6, 3)),
		dungeon.NewEnemy(uuid.NewString(), dungeon.KindSpider, models.Pos(9, 5)),
		dungeon.NewEnemy(uuid.NewString(), dungeon.KindMercenary, models.Pos(10, 8)),
	}
	for _, e := range entities {
		if err := g.AddEntity(e); err != nil {
			return err
		}
	}
	return nil
}
