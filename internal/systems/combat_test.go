package systems

import (
	"testing"

	"github.com/teitasan/Dungeon-sub000/internal/domain"
	"github.com/teitasan/Dungeon-sub000/pkg/rng"
)

func TestResolveAttackFormula(t *testing.T) {
	// Attack 10 vs Defense 5, no crit, random multiplier forced to 1.0:
	// floor(10 * 1.3 * (35/36)^5) = floor(11.29) = 11.
	attacker := newFighter("attacker", 20, 10, 0)
	defender := newFighter("defender", 30, 0, 5)
	attacker.Pos = domain.Position{X: 1, Y: 1}
	defender.Pos = domain.Position{X: 2, Y: 1}

	// Rolls consumed: crit (fails vs chance 0), then random multiplier.
	// 0.5 lands the multiplier exactly in the middle of [7/8, 9/8] = 1.0.
	seq := rng.NewSequence(0.9, 0.5)
	eng := NewCombatEngine(DefaultCombatConfig(), seq, nil)

	res := eng.ResolveAttack(attacker, defender)
	if !res.Success || res.Evaded || res.Critical {
		t.Fatalf("expected a plain successful hit, got %+v", res)
	}
	if res.Damage != 11 {
		t.Errorf("expected 11 damage, got %d", res.Damage)
	}
	if defender.Health.HP != 19 {
		t.Errorf("expected defender at 19 HP, got %d", defender.Health.HP)
	}
}

func TestResolveAttackCritical(t *testing.T) {
	// A crit ignores defense and multiplies the damage:
	// floor(10 * 1.3 * 1.0 * 1.5) = 19.
	attacker := newFighter("attacker", 20, 10, 0)
	attacker.Combat.CriticalChance = 0.5
	defender := newFighter("defender", 30, 0, 5)
	attacker.Pos = domain.Position{X: 1, Y: 1}
	defender.Pos = domain.Position{X: 1, Y: 2}

	// Rolls: crit succeeds (0.0 < 0.5), random multiplier 1.0.
	seq := rng.NewSequence(0.0, 0.5)
	eng := NewCombatEngine(DefaultCombatConfig(), seq, nil)

	res := eng.ResolveAttack(attacker, defender)
	if !res.Critical {
		t.Fatal("expected a critical hit")
	}
	if res.Damage != 19 {
		t.Errorf("expected 19 crit damage, got %d", res.Damage)
	}
}

func TestResolveAttackCritResisted(t *testing.T) {
	attacker := newFighter("attacker", 20, 10, 0)
	attacker.Combat.CriticalChance = 0.5
	defender := newFighter("defender", 30, 0, 5)
	defender.Combat.CriticalResist = 0.5
	attacker.Pos = domain.Position{X: 1, Y: 1}
	defender.Pos = domain.Position{X: 2, Y: 2}

	// Rolls: crit succeeds, resist cancels it, random multiplier 1.0.
	seq := rng.NewSequence(0.0, 0.0, 0.5)
	eng := NewCombatEngine(DefaultCombatConfig(), seq, nil)

	res := eng.ResolveAttack(attacker, defender)
	if res.Critical {
		t.Fatal("expected the crit to be resisted")
	}
	if res.Damage != 11 {
		t.Errorf("expected plain 11 damage after resist, got %d", res.Damage)
	}
}

func TestResolveAttackEvasion(t *testing.T) {
	attacker := newFighter("attacker", 20, 10, 0)
	defender := newFighter("defender", 30, 0, 5)
	defender.Combat.EvasionChance = 0.5
	attacker.Pos = domain.Position{X: 1, Y: 1}
	defender.Pos = domain.Position{X: 2, Y: 1}

	seq := rng.NewSequence(0.1)
	eng := NewCombatEngine(DefaultCombatConfig(), seq, nil)

	res := eng.ResolveAttack(attacker, defender)
	if !res.Success {
		t.Error("evaded attack still consumes the action: Success must be true")
	}
	if !res.Evaded {
		t.Error("expected an evasion")
	}
	if res.Damage != 0 || defender.Health.HP != 30 {
		t.Error("evasion must deal no damage")
	}

	// The global switch turns evasion off entirely.
	cfg := DefaultCombatConfig()
	cfg.EvasionEnabled = false
	eng = NewCombatEngine(cfg, rng.NewSequence(0.1, 0.9, 0.5), nil)
	if res := eng.ResolveAttack(attacker, defender); res.Evaded {
		t.Error("evasion must never fire when disabled")
	}
}

func TestResolveAttackOutOfRange(t *testing.T) {
	attacker := newFighter("attacker", 20, 10, 0)
	defender := newFighter("defender", 30, 0, 5)
	attacker.Pos = domain.Position{X: 1, Y: 1}
	defender.Pos = domain.Position{X: 4, Y: 1}

	eng := NewCombatEngine(DefaultCombatConfig(), rng.NewSequence(0.5), nil)
	res := eng.ResolveAttack(attacker, defender)

	if res.Success {
		t.Error("out-of-range attack must not succeed")
	}
	if res.Evaded || res.Damage != 0 {
		t.Error("out of range is a failed action, not a miss")
	}
	if defender.Health.HP != 30 {
		t.Error("defender must be untouched")
	}
}

func TestResolveAttackDamageCappedAtHP(t *testing.T) {
	attacker := newFighter("attacker", 20, 50, 0)
	defender := newFighter("defender", 3, 0, 0)
	attacker.Pos = domain.Position{X: 1, Y: 1}
	defender.Pos = domain.Position{X: 2, Y: 1}

	eng := NewCombatEngine(DefaultCombatConfig(), rng.NewSequence(0.9, 0.5), nil)
	res := eng.ResolveAttack(attacker, defender)

	if res.Damage != 3 {
		t.Errorf("damage must be capped at remaining HP, got %d", res.Damage)
	}
	if !res.Defeated || !defender.Health.IsDead {
		t.Error("defender must be defeated")
	}
	if defender.Health.HP != 0 {
		t.Errorf("HP must bottom out at 0, got %d", defender.Health.HP)
	}
}

func TestResolveAttackMinimumDamage(t *testing.T) {
	// A weak attacker against heavy armor still chips at least 1 HP.
	attacker := newFighter("attacker", 20, 1, 0)
	defender := newFighter("defender", 30, 0, 100)
	attacker.Pos = domain.Position{X: 1, Y: 1}
	defender.Pos = domain.Position{X: 2, Y: 1}

	eng := NewCombatEngine(DefaultCombatConfig(), rng.NewSequence(0.9, 0.0), nil)
	res := eng.ResolveAttack(attacker, defender)

	if res.Damage != 1 {
		t.Errorf("expected minimum damage 1, got %d", res.Damage)
	}
}

func TestCombatLogCap(t *testing.T) {
	attacker := newFighter("attacker", 20, 5, 0)
	defender := newFighter("defender", 100, 0, 0)
	attacker.Pos = domain.Position{X: 1, Y: 1}
	defender.Pos = domain.Position{X: 2, Y: 1}

	cfg := DefaultCombatConfig()
	cfg.LogCap = 2
	eng := NewCombatEngine(cfg, rng.NewSequence(0.9, 0.5), nil)

	for i := 0; i < 5; i++ {
		eng.ResolveAttack(attacker, defender)
	}
	if got := len(eng.Log()); got != 2 {
		t.Errorf("expected log capped at 2 entries, got %d", got)
	}
}

func TestResolveAttackOnCorpse(t *testing.T) {
	attacker := newFighter("attacker", 20, 5, 0)
	defender := newFighter("defender", 10, 0, 0)
	defender.Health.TakeDamage(10)
	attacker.Pos = domain.Position{X: 1, Y: 1}
	defender.Pos = domain.Position{X: 2, Y: 1}

	eng := NewCombatEngine(DefaultCombatConfig(), rng.NewSequence(0.5), nil)
	res := eng.ResolveAttack(attacker, defender)

	if res.Success || res.Damage != 0 {
		t.Error("attacking a corpse must be a no-op")
	}
}
