package registry

import "testing"

func TestUnknownTemplatesReturnErrors(t *testing.T) {
	r := Default()

	if _, err := r.Monster("dragon"); err == nil {
		t.Error("expected an error for an unknown monster ID")
	}
	if _, err := r.Item("excalibur"); err == nil {
		t.Error("expected an error for an unknown item ID")
	}
	if _, err := r.Trap("lava_pit"); err == nil {
		t.Error("expected an error for an unknown trap type")
	}
	if _, err := r.Status("petrified"); err == nil {
		t.Error("expected an error for an unknown status type")
	}
}

func TestDefaultRegistryIsSelfConsistent(t *testing.T) {
	r := Default()

	// Every status a trap references must itself be registered.
	for _, typ := range r.TrapTypes() {
		tmpl, err := r.Trap(typ)
		if err != nil {
			t.Fatalf("TrapTypes listed an unregistered trap %q", typ)
		}
		for _, eff := range tmpl.Effects {
			if eff.Status == "" {
				continue
			}
			if _, err := r.Status(eff.Status); err != nil {
				t.Errorf("trap %q references unregistered status %q", typ, eff.Status)
			}
		}
	}

	for _, id := range r.MonsterIDs() {
		if _, err := r.Monster(id); err != nil {
			t.Errorf("MonsterIDs listed an unregistered monster %q", id)
		}
	}
}

func TestSpawnMonster(t *testing.T) {
	r := Default()

	m, err := r.SpawnMonster("goblin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.ID == "" {
		t.Error("spawned monster must get a fresh ID")
	}
	if m.Health == nil || m.Health.HP != 15 || m.Health.MaxHP != 15 {
		t.Errorf("goblin HP mismatch: %+v", m.Health)
	}
	if m.Combat == nil || m.Combat.Attack != 4 {
		t.Errorf("goblin combat stats mismatch: %+v", m.Combat)
	}
	if m.Status == nil {
		t.Error("monsters must be able to carry status effects")
	}

	// Two spawns are independent entities.
	m2, _ := r.SpawnMonster("goblin")
	if m.ID == m2.ID {
		t.Error("spawned monsters must not share an ID")
	}
	m.Health.TakeDamage(5)
	if m2.Health.HP != 15 {
		t.Error("spawned monsters must not share components")
	}

	if _, err := r.SpawnMonster("dragon"); err == nil {
		t.Error("expected an error for an unknown monster")
	}
}
