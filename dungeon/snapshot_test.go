package dungeon

import (
	"reflect"
	"testing"
	"time"

	"dungeonmania/server/models"
)

func TestSnapshot_RestoreRoundTrip(t *testing.T) {
	g := newTestGame(t, models.Hard, models.Pos(0, 0))
	mustAdd(t, g,
		NewWall("wall", models.Pos(0, 3)),
		NewPortal("portal", models.Pos(4, 4), "red"),
		NewEnemy("spider", KindSpider, models.Pos(8, 8)),
		NewEnemy("merc", KindMercenary, models.Pos(6, 0)),
		NewGroundItem(models.Pos(9, 0), models.NewItem("wood", models.ItemWood)),
	)
	mustGive(t, g,
		models.NewItem("turner", models.ItemTimeTurner),
		models.NewItem("bomb", models.ItemBomb),
	)
	mustAdd(t, g, NewBomb("armed", models.Pos(20, 20), 10))
	for _, d := range []models.Direction{models.DirectionDown, models.DirectionRight} {
		if err := g.MovePlayer(d); err != nil {
			t.Fatalf("MovePlayer(%s) failed: %v", d, err)
		}
	}
	if err := g.Rewind(2); err != nil {
		t.Fatalf("Rewind() failed: %v", err)
	}

	before := g.Snapshot()
	restored, err := Restore(before, WithIDGenerator(sequentialIDs("r")))
	if err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}
	after := restored.Snapshot()
	before.SavedAt, after.SavedAt = time.Time{}, time.Time{}

	if !reflect.DeepEqual(before, after) {
		t.Errorf("restored snapshot differs:\nbefore: %+v\nafter:  %+v", before, after)
	}
	if got := len(restored.Player().Observers()); got != 3 {
		t.Errorf("restored observers = %d, want 3", got)
	}

	// Both games must keep evolving identically.
	if err := g.Wait(); err != nil {
		t.Fatalf("Wait() failed: %v", err)
	}
	if err := restored.Wait(); err != nil {
		t.Fatalf("restored Wait() failed: %v", err)
	}
	a, b := g.Snapshot(), restored.Snapshot()
	a.SavedAt, b.SavedAt = time.Time{}, time.Time{}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("games diverged after one tick:\nbefore save: %+v\nrestored: %+v", a, b)
	}
}

func TestRestore_UnknownMode(t *testing.T) {
	if _, err := Restore(models.GameSnapshot{Mode: "nightmare"}); err == nil {
		t.Error("Restore() with unknown mode should fail")
	}
}
