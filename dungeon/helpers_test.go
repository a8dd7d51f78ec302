package dungeon

import (
	"fmt"
	"testing"

	"go.uber.org/zap/zaptest"

	"dungeonmania/server/models"
)

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func newTestGame(t *testing.T, mode models.Mode, start models.Position, opts ...Option) *Game {
	t.Helper()
	base := []Option{
		WithID("test-game"),
		WithIDGenerator(sequentialIDs("e")),
		WithLogger(zaptest.NewLogger(t)),
	}
	return NewGame(mode, start, append(base, opts...)...)
}

func mustAdd(t *testing.T, g *Game, entities ...*Entity) {
	t.Helper()
	for _, e := range entities {
		if err := g.AddEntity(e); err != nil {
			t.Fatalf("AddEntity(%s) failed: %v", e.ID(), err)
		}
	}
}

func mustGive(t *testing.T, g *Game, items ...*models.Item) {
	t.Helper()
	for _, item := range items {
		if err := g.Player().Inventory().Add(item); err != nil {
			t.Fatalf("Inventory.Add(%s) failed: %v", item.ID, err)
		}
	}
}

func mustWait(t *testing.T, g *Game, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := g.Wait(); err != nil {
			t.Fatalf("Wait() failed: %v", err)
		}
	}
}
