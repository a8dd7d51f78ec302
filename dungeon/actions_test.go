package dungeon

import (
	"errors"
	"testing"

	"dungeonmania/server/models"
)

func TestMovePlayer_WallIsRejected(t *testing.T) {
	g := newTestGame(t, models.Standard, models.Pos(0, 0))
	mustAdd(t, g, NewWall("wall", models.Pos(1, 0)))

	err := g.MovePlayer(models.DirectionRight)
	var moveErr *MoveError
	if !errors.As(err, &moveErr) {
		t.Fatalf("MovePlayer() error = %v, want *MoveError", err)
	}
	if !errors.Is(err, ErrBlocked) {
		t.Errorf("MovePlayer() error = %v, want ErrBlocked", err)
	}
	if moveErr.To != models.Pos(1, 0) {
		t.Errorf("MoveError.To = %s, want (1,0)", moveErr.To)
	}
	if g.CurrentTick() != 0 {
		t.Errorf("tick = %d, a rejected move must not advance time", g.CurrentTick())
	}
	if got := g.Player().Position(); got != models.Pos(0, 0) {
		t.Errorf("player at %s, want (0,0)", got)
	}
}

func TestMovePlayer_OutOfBounds(t *testing.T) {
	g := newTestGame(t, models.Standard, models.Pos(0, 0), WithBounds(3, 3))

	if err := g.MovePlayer(models.DirectionLeft); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("MovePlayer(left) error = %v, want ErrOutOfBounds", err)
	}
	if err := g.MovePlayer(models.DirectionDown); err != nil {
		t.Errorf("MovePlayer(down) failed: %v", err)
	}
}

func TestMovePlayer_ThroughPortal(t *testing.T) {
	g := newTestGame(t, models.Standard, models.Pos(0, 0))
	mustAdd(t, g,
		NewPortal("red-a", models.Pos(1, 0), "red"),
		NewPortal("red-b", models.Pos(5, 5), "red"),
		NewPortal("blue-a", models.Pos(0, 1), "blue"),
	)

	if err := g.MovePlayer(models.DirectionRight); err != nil {
		t.Fatalf("MovePlayer() failed: %v", err)
	}
	if got, want := g.Player().Position(), models.Pos(6, 5); got != want {
		t.Errorf("player at %s, want %s", got, want)
	}
}

func TestMovePlayer_PortalExitBlocked(t *testing.T) {
	g := newTestGame(t, models.Standard, models.Pos(0, 0))
	mustAdd(t, g,
		NewPortal("red-a", models.Pos(1, 0), "red"),
		NewPortal("red-b", models.Pos(5, 5), "red"),
		NewWall("wall", models.Pos(6, 5)),
	)

	if err := g.MovePlayer(models.DirectionRight); !errors.Is(err, ErrBlocked) {
		t.Errorf("MovePlayer() error = %v, want ErrBlocked", err)
	}
	if got := g.Player().Position(); got != models.Pos(0, 0) {
		t.Errorf("player at %s, want (0,0)", got)
	}
}

func TestMovePlayer_PicksUpItems(t *testing.T) {
	g := newTestGame(t, models.Standard, models.Pos(0, 0))
	first := models.NewItem("key-1", models.ItemKey)
	first.KeyID = "door-1"
	dup := models.NewItem("key-2", models.ItemKey)
	dup.KeyID = "door-1"
	sword := NewGroundItem(models.Pos(1, 0), models.NewItem("sword", models.ItemSword))
	mustAdd(t, g,
		sword,
		NewGroundItem(models.Pos(1, 0), first),
		NewGroundItem(models.Pos(2, 0), dup),
	)

	for i := 0; i < 2; i++ {
		if err := g.MovePlayer(models.DirectionRight); err != nil {
			t.Fatalf("MovePlayer() failed: %v", err)
		}
	}

	inv := g.Player().Inventory()
	if !g.Player().HasWeapon() {
		t.Error("HasWeapon() = false after picking up a sword")
	}
	if g.Contains(sword) {
		t.Error("picked up sword still on the ground")
	}
	if got := inv.Count(models.ItemKey); got != 1 {
		t.Errorf("keys held = %d, want 1", got)
	}
	if _, ok := g.Entity("key-2"); !ok {
		t.Error("duplicate key should stay on the ground")
	}
}

func TestUseItem_Errors(t *testing.T) {
	g := newTestGame(t, models.Standard, models.Pos(0, 0))
	mustGive(t, g, models.NewItem("wood", models.ItemWood))

	if err := g.UseItem("missing"); !errors.Is(err, ErrMissingItem) {
		t.Errorf("UseItem(missing) error = %v, want ErrMissingItem", err)
	}
	if err := g.UseItem("wood"); !errors.Is(err, ErrNotUsable) {
		t.Errorf("UseItem(wood) error = %v, want ErrNotUsable", err)
	}
	if g.CurrentTick() != 0 {
		t.Errorf("tick = %d, failed actions must not advance time", g.CurrentTick())
	}
}

func TestInteract_Errors(t *testing.T) {
	g := newTestGame(t, models.Standard, models.Pos(0, 0))
	mustAdd(t, g,
		NewEnemy("zombie", KindZombie, models.Pos(1, 1)),
		NewEnemy("near", KindMercenary, models.Pos(1, 0)),
		NewEnemy("far", KindMercenary, models.Pos(5, 0)),
	)

	tests := []struct {
		id   string
		want error
	}{
		{"nobody", ErrEntityNotFound},
		{"zombie", ErrNotInteractable},
		{"far", ErrOutOfRange},
		{"near", ErrMissingItem},
	}
	for _, tt := range tests {
		if err := g.Interact(tt.id); !errors.Is(err, tt.want) {
			t.Errorf("Interact(%s) error = %v, want %v", tt.id, err, tt.want)
		}
	}
}

func TestInteract_BribeDetachesMercenary(t *testing.T) {
	g := newTestGame(t, models.Standard, models.Pos(0, 0))
	merc := NewEnemy("merc", KindMercenary, models.Pos(2, 2))
	mustAdd(t, g, merc)
	mustGive(t, g, models.NewItem("gold", models.ItemTreasure))

	if err := g.Interact("merc"); err != nil {
		t.Fatalf("Interact() failed: %v", err)
	}
	if merc.Hostile() || merc.Interactable() {
		t.Error("bribed mercenary should be neither hostile nor interactable")
	}
	if _, ok := merc.State().(*IdleState); !ok {
		t.Errorf("state = %T, want *IdleState", merc.State())
	}
	if got := len(g.Player().Observers()); got != 0 {
		t.Errorf("observers = %d, want 0", got)
	}
	if g.Player().Inventory().Has(models.ItemTreasure) {
		t.Error("treasure should be spent on the bribe")
	}
}

func TestRewind_SpawnsOlderPlayer(t *testing.T) {
	g := newTestGame(t, models.Standard, models.Pos(0, 0))
	mustGive(t, g, models.NewItem("turner", models.ItemTimeTurner))
	for i := 0; i < 3; i++ {
		if err := g.MovePlayer(models.DirectionRight); err != nil {
			t.Fatalf("MovePlayer() failed: %v", err)
		}
	}

	if err := g.Rewind(2); err != nil {
		t.Fatalf("Rewind() failed: %v", err)
	}
	var echo *Entity
	for _, e := range g.Entities() {
		if e.Kind() == KindOlderPlayer {
			echo = e
		}
	}
	if echo == nil {
		t.Fatal("no older player spawned")
	}
	if got := echo.Position(); got != models.Pos(2, 0) {
		t.Errorf("older player at %s after its first replayed move, want (2,0)", got)
	}

	if err := g.MovePlayer(models.DirectionUp); err != nil {
		t.Fatalf("MovePlayer() failed: %v", err)
	}
	if got := echo.Position(); got != models.Pos(3, 0) {
		t.Errorf("older player at %s, want (3,0)", got)
	}
	if _, ok := echo.State().(*RewindState); !ok {
		t.Errorf("state = %T, want *RewindState", echo.State())
	}

	mustWait(t, g, 1)
	if g.Contains(echo) {
		t.Error("older player should vanish once its moves run out")
	}
}

func TestRewind_Errors(t *testing.T) {
	g := newTestGame(t, models.Standard, models.Pos(0, 0))
	if err := g.Rewind(1); !errors.Is(err, ErrMissingItem) {
		t.Errorf("Rewind() without time turner error = %v, want ErrMissingItem", err)
	}
	mustGive(t, g, models.NewItem("turner", models.ItemTimeTurner))
	mustWait(t, g, 2)
	for _, n := range []int{0, 3} {
		if err := g.Rewind(n); !errors.Is(err, ErrInvalidRewind) {
			t.Errorf("Rewind(%d) error = %v, want ErrInvalidRewind", n, err)
		}
	}
}

func TestBuild(t *testing.T) {
	g := newTestGame(t, models.Standard, models.Pos(0, 0))
	mustGive(t, g,
		models.NewItem("w1", models.ItemWood),
		models.NewItem("a1", models.ItemArrow),
		models.NewItem("a2", models.ItemArrow),
		models.NewItem("a3", models.ItemArrow),
	)

	bow, err := g.Build("bow")
	if err != nil {
		t.Fatalf("Build(bow) failed: %v", err)
	}
	if bow.Kind != models.ItemBow {
		t.Errorf("built %s, want bow", bow.Kind)
	}
	if weapon, ok := g.Player().Weapon(); !ok || weapon.ID != bow.ID {
		t.Errorf("Weapon() = %v, %v; want the new bow", weapon, ok)
	}
	if g.CurrentTick() != 0 {
		t.Error("building must not advance time")
	}
	if _, err := g.Build("shield"); !errors.Is(err, models.ErrInsufficientMaterials) {
		t.Errorf("Build(shield) error = %v, want ErrInsufficientMaterials", err)
	}
}

func TestAddEntity_DuplicateID(t *testing.T) {
	g := newTestGame(t, models.Standard, models.Pos(0, 0))
	mustAdd(t, g, NewWall("wall", models.Pos(1, 1)))
	if err := g.AddEntity(NewWall("wall", models.Pos(2, 2))); !errors.Is(err, ErrDuplicateEntity) {
		t.Errorf("AddEntity() error = %v, want ErrDuplicateEntity", err)
	}
}

func TestAdjacentEntities(t *testing.T) {
	g := newTestGame(t, models.Standard, models.Pos(0, 0))
	mustAdd(t, g,
		NewWall("diag", models.Pos(1, 1)),
		NewWall("far", models.Pos(2, 0)),
	)

	got := g.AdjacentEntities(models.Pos(0, 0))
	if len(got) != 2 || got[0] != g.Player().Entity || got[1].ID() != "diag" {
		ids := make([]string, len(got))
		for i, e := range got {
			ids[i] = e.ID()
		}
		t.Errorf("AdjacentEntities() = %v, want [player diag]", ids)
	}
	if got := g.AdjacentEntities(models.Pos(50, 50)); len(got) != 0 {
		t.Errorf("AdjacentEntities() far away = %d entities, want none", len(got))
	}
}
