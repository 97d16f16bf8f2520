package engine

import (
	"encoding/json"
	"testing"

	"github.com/teitasan/Dungeon-sub000/internal/domain"
	"github.com/teitasan/Dungeon-sub000/internal/registry"
	"github.com/teitasan/Dungeon-sub000/pkg/api"
)

func newTestService(t *testing.T, seed int64) *GameService {
	t.Helper()
	cfg := NewConfig()
	cfg.Seed = seed
	s, err := NewService(cfg, registry.Default())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return s
}

func TestNewServiceSpawnsPlayer(t *testing.T) {
	s := newTestService(t, 42)

	if s.Player == nil || !s.Player.IsAlive() {
		t.Fatal("expected a living player")
	}
	if !s.Player.Pos.Equals(s.World.PlayerSpawn) {
		t.Errorf("player at %v, spawn is %v", s.Player.Pos, s.World.PlayerSpawn)
	}
	if s.World.FindEntity(s.Player.ID) != s.Player {
		t.Error("player must be placed on the floor")
	}
	// The starting room is lit before the first action.
	if s.Vision.VisibleCount() == 0 {
		t.Error("initial visibility must be computed")
	}
	if s.Turn() != 0 {
		t.Errorf("turn counter must start at 0, got %d", s.Turn())
	}
}

func TestSameSeedSameFloor(t *testing.T) {
	a := newTestService(t, 7)
	b := newTestService(t, 7)

	if a.World.Width != b.World.Width || a.World.Height != b.World.Height {
		t.Fatal("floor dimensions differ")
	}
	if len(a.World.Rooms) != len(b.World.Rooms) {
		t.Fatalf("room counts differ: %d vs %d", len(a.World.Rooms), len(b.World.Rooms))
	}
	for i := range a.World.Cells {
		if a.World.Cells[i].Type != b.World.Cells[i].Type {
			t.Fatalf("cell %d differs between identically seeded floors", i)
		}
	}
	if !a.World.PlayerSpawn.Equals(b.World.PlayerSpawn) {
		t.Error("spawn points differ")
	}
}

func TestWaitCommandAdvancesTurn(t *testing.T) {
	s := newTestService(t, 42)

	s.ProcessCommand(api.ClientCommand{Action: "WAIT"})
	if s.Turn() != 1 {
		t.Errorf("expected turn 1 after a wait, got %d", s.Turn())
	}

	// The player's tick moved forward by the wait cost.
	tick, ok := s.Turns.Tick(s.Player.ID)
	if !ok {
		t.Fatal("player must stay in the turn queue")
	}
	if tick < domain.TimeCostWait {
		t.Errorf("expected tick >= %d, got %d", domain.TimeCostWait, tick)
	}
}

func TestUnknownCommandDoesNotAdvanceTurn(t *testing.T) {
	s := newTestService(t, 42)

	s.ProcessCommand(api.ClientCommand{Action: "DANCE"})
	if s.Turn() != 0 {
		t.Errorf("an unknown command must not consume a turn, got turn %d", s.Turn())
	}

	logs := s.Logs()
	if len(logs) == 0 || logs[len(logs)-1].Type != LogTypeError {
		t.Error("an unknown command must leave an error log entry")
	}
}

func TestInitCommandDoesNotAdvanceTurn(t *testing.T) {
	s := newTestService(t, 42)
	ch := s.Hub.Register(s.Player.ID)

	s.ProcessCommand(api.ClientCommand{Action: "INIT"})
	if s.Turn() != 0 {
		t.Errorf("INIT must not consume a turn, got %d", s.Turn())
	}

	select {
	case resp := <-ch:
		if resp.Type != "INIT" {
			t.Errorf("expected an INIT snapshot, got %q", resp.Type)
		}
		if resp.MyEntityID != s.Player.ID {
			t.Error("snapshot must identify the player entity")
		}
	default:
		t.Fatal("expected an INIT snapshot on the player's channel")
	}
}

func TestMovePlayer(t *testing.T) {
	s := newTestService(t, 42)
	start := s.Player.Pos

	// Probe directions until one succeeds: the floor layout is seed-driven.
	dirs := [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	moved := false
	for _, dir := range dirs {
		target := start.Shift(dir[0], dir[1])
		if !s.World.CanEnter(target, s.Player) {
			continue
		}
		payload, _ := json.Marshal(api.DirectionPayload{Dx: dir[0], Dy: dir[1]})
		s.ProcessCommand(api.ClientCommand{Action: "MOVE", Payload: payload})
		moved = true
		break
	}
	if !moved {
		t.Skip("no open neighbor next to spawn for this seed")
	}

	if s.Player.Pos.Equals(start) {
		t.Error("expected the player to leave the spawn cell")
	}
	if s.Turn() != 1 {
		t.Errorf("a move consumes one turn, got %d", s.Turn())
	}
}

func TestMoveRejectsTeleport(t *testing.T) {
	s := newTestService(t, 42)
	start := s.Player.Pos

	// A malicious payload with a long jump is clamped to one step.
	payload, _ := json.Marshal(api.DirectionPayload{Dx: 10, Dy: 0})
	s.ProcessCommand(api.ClientCommand{Action: "MOVE", Payload: payload})

	if s.Player.Pos.ChebyshevDistance(start) > 1 {
		t.Errorf("player teleported from %v to %v", start, s.Player.Pos)
	}
}

func TestGameOverBlocksCommands(t *testing.T) {
	s := newTestService(t, 42)

	s.Player.Health.TakeDamage(s.Player.Health.HP)
	s.checkPlayerDeath()
	if !s.GameOver {
		t.Fatal("expected GameOver after the player's death")
	}

	turnBefore := s.Turn()
	s.ProcessCommand(api.ClientCommand{Action: "WAIT"})
	if s.Turn() != turnBefore {
		t.Error("commands after game over must not advance the simulation")
	}
}

func TestNextFloorResetsVision(t *testing.T) {
	s := newTestService(t, 42)

	if err := s.NextFloor(); err != nil {
		t.Fatalf("NextFloor: %v", err)
	}

	if s.World.Floor != 2 {
		t.Errorf("expected floor 2, got %d", s.World.Floor)
	}
	if !s.Player.Pos.Equals(s.World.PlayerSpawn) {
		t.Error("player must stand on the new floor's spawn")
	}
	if s.World.FindEntity(s.Player.ID) != s.Player {
		t.Error("player must be registered on the new floor")
	}
	// Vision follows the new floor immediately.
	if !s.Vision.IsVisible(s.Player.Pos) {
		t.Error("the player's cell must be visible after the transition")
	}
}

func TestMessageLogCap(t *testing.T) {
	s := newTestService(t, 42)
	s.cfg.MessageLogCap = 3

	for i := 0; i < 10; i++ {
		s.pushLog("запись", LogTypeInfo)
	}
	if got := len(s.Logs()); got != 3 {
		t.Errorf("expected log capped at 3, got %d", got)
	}
}

func TestFlushLogsDrainsPending(t *testing.T) {
	s := newTestService(t, 42)
	s.pushLog("одно", LogTypeInfo)
	s.pushLog("другое", LogTypeInfo)

	first := s.flushLogs()
	if len(first) < 2 {
		t.Errorf("expected at least the two fresh entries, got %d", len(first))
	}
	if second := s.flushLogs(); len(second) != 0 {
		t.Errorf("a second flush must be empty, got %d entries", len(second))
	}
}
