package systems

import (
	"testing"

	"github.com/teitasan/Dungeon-sub000/internal/domain"
	"github.com/teitasan/Dungeon-sub000/internal/registry"
	"github.com/teitasan/Dungeon-sub000/pkg/rng"
)

func newTrapEngine(seq rng.Source) (*TrapEngine, *domain.Dungeon) {
	reg := registry.Default()
	status := NewStatusEngine(reg, seq, nil)
	eng := NewTrapEngine(DefaultTrapConfig(), reg, status, seq, nil)
	return eng, newOpenDungeon(10, 10)
}

func TestPlaceTrap(t *testing.T) {
	eng, d := newTrapEngine(rng.NewSequence(0.5))
	pos := domain.Position{X: 3, Y: 3}

	trap, err := eng.PlaceTrap(d, pos, registry.TrapSpike)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if trap.Visible || trap.Triggered {
		t.Error("a freshly placed trap starts hidden and untriggered")
	}

	// Unknown type.
	if _, err := eng.PlaceTrap(d, domain.Position{X: 4, Y: 4}, "lava_pit"); err == nil {
		t.Error("expected an error for an unregistered trap type")
	}
	// Occupied cell.
	if _, err := eng.PlaceTrap(d, pos, registry.TrapSnare); err == nil {
		t.Error("expected an error for a cell that already holds a trap")
	}
	// Wall cell.
	if _, err := eng.PlaceTrap(d, domain.Position{X: 0, Y: 0}, registry.TrapSpike); err == nil {
		t.Error("expected an error for an unwalkable cell")
	}
}

func TestDetectTrap(t *testing.T) {
	pos := domain.Position{X: 3, Y: 3}

	// Level 0, no bonus: chance is 0.1. Roll 0.5 misses.
	eng, d := newTrapEngine(rng.NewSequence(0.5))
	eng.PlaceTrap(d, pos, registry.TrapSpike)
	if res := eng.Detect(d, pos, 0, 0); res.Detected {
		t.Error("a failed roll must not reveal the trap")
	}
	if d.CellAt(pos).Trap.Visible {
		t.Error("trap must stay hidden after a failed check")
	}

	// Roll 0.05 beats 0.1: the trap flips to visible for good.
	eng, d = newTrapEngine(rng.NewSequence(0.05, 0.99))
	eng.PlaceTrap(d, pos, registry.TrapSpike)
	if res := eng.Detect(d, pos, 0, 0); !res.Detected {
		t.Fatal("expected the trap to be detected")
	}
	if !d.CellAt(pos).Trap.Visible {
		t.Error("detection must mark the trap visible")
	}
	// A visible trap is detected with certainty, no roll.
	if res := eng.Detect(d, pos, 0, 0); !res.Detected {
		t.Error("a visible trap must always be detected")
	}

	// No trap: nothing to detect.
	if res := eng.Detect(d, domain.Position{X: 5, Y: 5}, 10, 1.0); res.Detected {
		t.Error("an empty cell must never report a trap")
	}
}

func TestActivateSingleUseTrap(t *testing.T) {
	eng, d := newTrapEngine(rng.NewSequence(0.1))
	pos := domain.Position{X: 3, Y: 3}
	eng.PlaceTrap(d, pos, registry.TrapSpike)

	victim := newFighter("victim", 20, 0, 0)
	res := eng.Activate(d, pos, victim)

	if res == nil || !res.Activated {
		t.Fatal("expected the trap to fire")
	}
	if res.Damage != 6 || victim.Health.HP != 14 {
		t.Errorf("expected 6 spike damage, got %d (HP %d)", res.Damage, victim.Health.HP)
	}
	if !res.Destroyed {
		t.Error("a single-use trap must be destroyed on firing")
	}
	if d.CellAt(pos).Trap != nil {
		t.Error("a destroyed trap must be detached from its cell")
	}

	// The cell is inert now.
	if res := eng.Activate(d, pos, victim); res != nil {
		t.Error("no trap, no activation")
	}
}

func TestActivateAvoided(t *testing.T) {
	// Spike activation chance is 0.85; a 0.9 roll slips past the mechanism.
	eng, d := newTrapEngine(rng.NewSequence(0.9))
	pos := domain.Position{X: 3, Y: 3}
	eng.PlaceTrap(d, pos, registry.TrapSpike)

	victim := newFighter("victim", 20, 0, 0)
	res := eng.Activate(d, pos, victim)

	if res == nil || !res.Avoided || res.Activated {
		t.Fatalf("expected an avoided activation, got %+v", res)
	}
	if victim.Health.HP != 20 {
		t.Error("an avoided trap deals no damage")
	}
	trap := d.CellAt(pos).Trap
	if trap == nil || trap.Triggered || trap.Visible {
		t.Error("an avoided activation must not change the trap's state")
	}
}

func TestActivateReusableTrap(t *testing.T) {
	eng, d := newTrapEngine(rng.NewSequence(0.1))
	pos := domain.Position{X: 3, Y: 3}
	eng.PlaceTrap(d, pos, registry.TrapSnare)

	victim := newFighter("victim", 20, 0, 0)

	first := eng.Activate(d, pos, victim)
	if first == nil || !first.Activated {
		t.Fatal("expected the snare to fire")
	}
	if victim.Status.Effects[registry.StatusSnared] == nil {
		t.Error("the snare must apply its status effect")
	}
	if d.CellAt(pos).Trap == nil {
		t.Fatal("a reusable trap must survive its own firing")
	}

	second := eng.Activate(d, pos, victim)
	if second == nil || !second.Activated {
		t.Error("a reusable trap must fire again")
	}
	if second.Destroyed {
		t.Error("a reusable trap is never destroyed by firing")
	}
}

func TestDisarmHiddenTrap(t *testing.T) {
	eng, d := newTrapEngine(rng.NewSequence(0.0))
	pos := domain.Position{X: 3, Y: 3}
	eng.PlaceTrap(d, pos, registry.TrapSpike)

	res := eng.Disarm(d, pos, newFighter("hero", 20, 0, 0), 10, 1.0)
	if res == nil {
		t.Fatal("expected a result for a cell with a trap")
	}
	if res.Success || res.ForcedActivation {
		t.Error("a hidden trap cannot be disarmed, even with perfect rolls")
	}
	if d.CellAt(pos).Trap == nil {
		t.Error("the hidden trap must stay on the cell")
	}
}

func TestDisarmSuccess(t *testing.T) {
	// Level 0, no bonus: chance 0.3. Roll 0.1 succeeds.
	eng, d := newTrapEngine(rng.NewSequence(0.1))
	pos := domain.Position{X: 3, Y: 3}
	trap, _ := eng.PlaceTrap(d, pos, registry.TrapSpike)
	trap.Visible = true

	res := eng.Disarm(d, pos, newFighter("hero", 20, 0, 0), 0, 0)
	if res == nil || !res.Success {
		t.Fatal("expected a successful disarm")
	}
	if d.CellAt(pos).Trap != nil {
		t.Error("a disarmed trap must be removed from the cell")
	}
}

func TestDisarmForcedActivation(t *testing.T) {
	// Rolls: disarm 0.9 fails vs 0.3; forced roll 0.1 beats 0.3;
	// activation roll 0.1 beats spike's 0.85.
	eng, d := newTrapEngine(rng.NewSequence(0.9, 0.1, 0.1))
	pos := domain.Position{X: 3, Y: 3}
	trap, _ := eng.PlaceTrap(d, pos, registry.TrapSpike)
	trap.Visible = true

	hero := newFighter("hero", 20, 0, 0)
	res := eng.Disarm(d, pos, hero, 0, 0)

	if res.Success {
		t.Fatal("expected the disarm to fail")
	}
	if !res.ForcedActivation || res.Activation == nil || !res.Activation.Activated {
		t.Fatalf("expected a forced activation, got %+v", res)
	}
	if hero.Health.HP != 14 {
		t.Errorf("the botcher takes the trap's damage, got HP %d", hero.Health.HP)
	}
	if d.CellAt(pos).Trap != nil {
		t.Error("the single-use trap is spent by the forced activation")
	}
}

func TestDisarmFailureWithoutActivation(t *testing.T) {
	// Rolls: disarm 0.9 fails; forced roll 0.9 spares the mechanism.
	eng, d := newTrapEngine(rng.NewSequence(0.9))
	pos := domain.Position{X: 3, Y: 3}
	trap, _ := eng.PlaceTrap(d, pos, registry.TrapSpike)
	trap.Visible = true

	hero := newFighter("hero", 20, 0, 0)
	res := eng.Disarm(d, pos, hero, 0, 0)

	if res.Success || res.ForcedActivation {
		t.Errorf("expected a plain failure, got %+v", res)
	}
	if hero.Health.HP != 20 || d.CellAt(pos).Trap == nil {
		t.Error("a plain failure must leave everything as it was")
	}
}
