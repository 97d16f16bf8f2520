package systems

import (
	"testing"

	"github.com/teitasan/Dungeon-sub000/internal/domain"
)

// visionFixture: a 5x5 room at (2,2) with a corridor leading east from (7,4).
func visionFixture() *domain.Dungeon {
	d := domain.NewDungeon("test", 1, 15, 15)
	carveRoomAt(d, 0, 2, 2, 5, 5)
	for x := 7; x <= 11; x++ {
		d.CellAt(domain.Position{X: x, Y: 4}).SetType(domain.CellCorridor)
	}
	return d
}

func TestVisionInsideRoom(t *testing.T) {
	d := visionFixture()
	v := NewVisionTracker(d)

	// Player at the room's east edge, next to the corridor mouth.
	v.EnsureVisible(domain.Position{X: 6, Y: 4}, 1)

	// The whole room is visible.
	for _, p := range d.Rooms[0].CellPositions() {
		if !v.IsVisible(p) {
			t.Errorf("room cell %v should be visible", p)
		}
	}
	// The adjacent corridor cell is visible through the 8-neighborhood.
	if !v.IsVisible(domain.Position{X: 7, Y: 4}) {
		t.Error("corridor cell adjacent to player should be visible")
	}
	// Two cells into the corridor is beyond sight.
	if v.IsVisible(domain.Position{X: 8, Y: 4}) {
		t.Error("corridor cell out of the neighborhood must not be visible")
	}

	// 25 room cells plus the three neighborhood cells outside the room.
	if got := v.VisibleCount(); got != 28 {
		t.Errorf("expected 28 visible cells, got %d", got)
	}
}

func TestVisionInCorridor(t *testing.T) {
	d := visionFixture()
	v := NewVisionTracker(d)

	// In a corridor only the player's cell and its 8 neighbors are visible.
	v.EnsureVisible(domain.Position{X: 9, Y: 4}, 1)

	if got := v.VisibleCount(); got != 9 {
		t.Errorf("expected 9 visible cells in corridor, got %d", got)
	}
	if v.IsVisible(domain.Position{X: 3, Y: 3}) {
		t.Error("room must not be visible from a distant corridor")
	}
}

func TestVisionMemoizedByTurn(t *testing.T) {
	d := visionFixture()
	v := NewVisionTracker(d)

	v.EnsureVisible(domain.Position{X: 3, Y: 3}, 1)

	// Same turn: the call is a no-op even with a different position.
	v.EnsureVisible(domain.Position{X: 9, Y: 4}, 1)
	if !v.IsVisible(domain.Position{X: 2, Y: 2}) {
		t.Error("cache must survive a same-turn call")
	}

	// New turn: full recompute from the new position.
	v.EnsureVisible(domain.Position{X: 9, Y: 4}, 2)
	if v.IsVisible(domain.Position{X: 2, Y: 2}) {
		t.Error("new turn must drop the old visibility set")
	}
	if !v.IsVisible(domain.Position{X: 9, Y: 4}) {
		t.Error("new position must be visible after recompute")
	}
}

func TestVisionResetOnNewFloor(t *testing.T) {
	d := visionFixture()
	v := NewVisionTracker(d)
	v.EnsureVisible(domain.Position{X: 3, Y: 3}, 5)
	v.SetScent(domain.Position{X: 3, Y: 3}, 5)

	next := domain.NewDungeon("test", 2, 20, 20)
	v.Reset(next)

	if v.VisibleCount() != 0 {
		t.Error("reset must clear visibility")
	}
	if v.IsScentFresh(domain.Position{X: 3, Y: 3}, 5, 30) {
		t.Error("reset must clear the scent grid")
	}
}

func TestScentFreshness(t *testing.T) {
	d := visionFixture()
	v := NewVisionTracker(d)
	p := domain.Position{X: 4, Y: 4}

	// Unmarked cell carries no scent, whatever the horizon.
	if v.IsScentFresh(p, 100, 1000) {
		t.Error("unmarked cell must not smell")
	}

	v.SetScent(p, 5)
	if !v.IsScentFresh(p, 10, 30) {
		t.Error("scent aged 5 turns must be fresh within horizon 30")
	}
	if !v.IsScentFresh(p, 35, 30) {
		t.Error("scent exactly at the horizon is still fresh")
	}
	if v.IsScentFresh(p, 36, 30) {
		t.Error("scent past the horizon must be stale")
	}

	// Out of bounds never smells.
	if v.IsScentFresh(domain.Position{X: -1, Y: -1}, 10, 30) {
		t.Error("out-of-bounds cell must not smell")
	}
}

func TestFreshestScent(t *testing.T) {
	d := visionFixture()
	v := NewVisionTracker(d)

	if _, ok := v.FreshestScent(10, 30); ok {
		t.Error("empty grid has no freshest scent")
	}

	v.SetScent(domain.Position{X: 3, Y: 3}, 5)
	v.SetScent(domain.Position{X: 5, Y: 5}, 8)
	v.SetScent(domain.Position{X: 4, Y: 4}, 2)

	pos, ok := v.FreshestScent(10, 30)
	if !ok {
		t.Fatal("expected a freshest scent")
	}
	if !pos.Equals(domain.Position{X: 5, Y: 5}) {
		t.Errorf("expected freshest at (5,5), got %v", pos)
	}

	// A tight horizon hides stale trails entirely.
	if _, ok := v.FreshestScent(50, 30); ok {
		t.Error("all trails are stale past the horizon")
	}
}
