package engine

import (
	"encoding/json"
	"fmt"

	"github.com/teitasan/Dungeon-sub000/internal/domain"
	"github.com/teitasan/Dungeon-sub000/internal/network"
	"github.com/teitasan/Dungeon-sub000/internal/registry"
	"github.com/teitasan/Dungeon-sub000/internal/systems"
	"github.com/teitasan/Dungeon-sub000/pkg/api"
	"github.com/teitasan/Dungeon-sub000/pkg/dungeon"
	"github.com/teitasan/Dungeon-sub000/pkg/logger"
	"github.com/teitasan/Dungeon-sub000/pkg/rng"
)

// GameService - планировщик ходов. Владеет этажом и всеми движками ядра
// и вызывает их строго последовательно: внутри ядра нет ни горутин,
// ни блокировок. Снаружи команды сериализуются через CommandChan.
type GameService struct {
	cfg  Config
	reg  *registry.Registry
	rand rng.Source

	World  *domain.Dungeon
	Player *domain.Entity

	Vision *systems.VisionTracker
	Combat *systems.CombatEngine
	Status *systems.StatusEngine
	Traps  *systems.TrapEngine
	Turns  *TurnManager

	Hub *network.Broadcaster

	CommandChan chan api.ClientCommand

	// turn - дискретный номер хода (одно действие игрока = один ход).
	turn int

	// GameOver - игрок погиб, команды больше не принимаются.
	GameOver bool

	logs        []api.LogEntry
	pendingLogs []api.LogEntry
}

// NewService собирает движок: генерирует первый этаж, создает игрока
// и связывает системы. Реестр шаблонов - явная зависимость.
func NewService(cfg Config, reg *registry.Registry) (*GameService, error) {
	s := &GameService{
		cfg:         cfg,
		reg:         reg,
		rand:        rng.New(cfg.Seed),
		Hub:         network.NewBroadcaster(),
		CommandChan: make(chan api.ClientCommand, 100),
	}

	// Движки получают общий источник случайности и пишут в игровой лог.
	s.Combat = systems.NewCombatEngine(cfg.Combat, s.rand, func(msg string) { s.pushLog(msg, LogTypeCombat) })
	s.Status = systems.NewStatusEngine(reg, s.rand, func(msg string) { s.pushLog(msg, LogTypeStatus) })
	s.Traps = systems.NewTrapEngine(cfg.Traps, reg, s.Status, s.rand, func(msg string) { s.pushLog(msg, LogTypeTrap) })

	world, err := dungeon.Generate(cfg.Gen, 1, s.rand, reg)
	if err != nil {
		return nil, fmt.Errorf("engine: generate first floor: %w", err)
	}
	s.World = world
	s.Vision = systems.NewVisionTracker(world)

	s.Player = makePlayer()
	if !world.AddEntity(s.Player, world.PlayerSpawn) {
		return nil, fmt.Errorf("engine: player spawn %v is not walkable", world.PlayerSpawn)
	}

	s.rebuildTurnQueue()

	// Стартовая видимость: ход 0, до первого действия.
	s.Vision.EnsureVisible(s.Player.Pos, 0)
	s.Vision.SetScent(s.Player.Pos, 0)

	logger.Component("engine").WithField("seed", cfg.Seed).Info("Game service initialized.")
	return s, nil
}

// makePlayer создает сущность игрока со всеми способностями.
func makePlayer() *domain.Entity {
	return &domain.Entity{
		ID:     "hero_1", // известный ID для удобства отладки
		Kind:   domain.EntityKindPlayer,
		Name:   "Герой",
		Render: &domain.RenderComponent{Symbol: "@", Color: "#22D3EE"},
		Health: &domain.HealthComponent{HP: 100, MaxHP: 100},
		Combat: &domain.CombatComponent{
			Attack:         10,
			Defense:        5,
			CriticalChance: 0.1,
			CriticalResist: 0.1,
			EvasionChance:  0.15,
		},
		Inventory: &domain.InventoryComponent{MaxSlots: 20},
		Hunger:    &domain.HungerComponent{Current: 100, Max: 100},
		Status:    domain.NewStatusComponent(),
	}
}

// rebuildTurnQueue пересобирает очередь ходов по текущему этажу.
func (s *GameService) rebuildTurnQueue() {
	s.Turns = NewTurnManager()
	s.Turns.AddEntity(s.Player, 0)
	for _, e := range s.World.AllEntities() {
		if e != s.Player && e.IsAlive() {
			s.Turns.AddEntity(e, 0)
		}
	}
}

// Run крутит цикл обработки команд. Запускается в отдельной горутине;
// сама обработка строго последовательна.
func (s *GameService) Run() {
	for cmd := range s.CommandChan {
		s.ProcessCommand(cmd)
	}
}

// GetEntity ищет сущность по ID на текущем этаже.
func (s *GameService) GetEntity(id string) *domain.Entity {
	return s.World.FindEntity(id)
}

// Turn возвращает номер текущего хода.
func (s *GameService) Turn() int {
	return s.turn
}

// ProcessCommand выполняет одну команду игрока и доигрывает ходы монстров
// до следующего хода игрока.
func (s *GameService) ProcessCommand(cmd api.ClientCommand) {
	action := domain.ParseAction(cmd.Action)

	if action == domain.ActionInit {
		s.Hub.SendTo(s.Player.ID, s.buildSnapshot("INIT"))
		return
	}

	if s.GameOver {
		s.pushLog("Все кончено. Герой мертв.", LogTypeError)
		s.broadcast()
		return
	}
	if action == domain.ActionUnknown {
		s.pushLog(fmt.Sprintf("Неизвестная команда: %s", cmd.Action), LogTypeError)
		s.broadcast()
		return
	}

	s.playerAct(action, cmd.Payload)

	if !s.GameOver {
		s.runMonsterTurns()
	}

	s.broadcast()
}

// playerAct - один ход игрока: фазы статусов вокруг одного действия,
// затем видимость и запах.
func (s *GameService) playerAct(action domain.ActionType, payload json.RawMessage) {
	s.turn++
	p := s.Player

	// --- Фаза начала хода ---
	s.applyOutcomes(p, s.Status.ProcessPhase(p, domain.TimingTurnStart))
	if s.checkPlayerDeath() {
		return
	}

	// --- Фаза перед действием ---
	prevented, restricted, randomized := s.beforeActionFlags(p)

	cost := domain.TimeCostWait
	if prevented {
		s.pushLog(fmt.Sprintf("%s не может действовать!", p.Name), LogTypeStatus)
	} else {
		cost = s.executePlayerAction(action, payload, restricted, randomized)
	}

	// --- Фаза после действия ---
	s.applyOutcomes(p, s.Status.ProcessPhase(p, domain.TimingAfterAction))

	// --- Фаза конца хода: действия TURN_END + восстановление/истечение ---
	outcomes, _ := s.Status.ProcessTurnEnd(p)
	s.applyOutcomes(p, outcomes)
	if s.checkPlayerDeath() {
		return
	}

	// --- Видимость и запах ---
	s.Vision.EnsureVisible(p.Pos, s.turn)
	s.Vision.SetScent(p.Pos, s.turn)

	if tick, ok := s.Turns.Tick(p.ID); ok {
		s.Turns.UpdatePriority(p.ID, tick+cost)
	}
}

// beforeActionFlags прогоняет фазу BEFORE_ACTION и собирает маркеры.
func (s *GameService) beforeActionFlags(e *domain.Entity) (prevented, restricted, randomized bool) {
	for _, out := range s.Status.ProcessPhase(e, domain.TimingBeforeAction) {
		switch out.Kind {
		case domain.EffectActionPrevent:
			prevented = true
		case domain.EffectActionMoveRestrict:
			restricted = true
		case domain.EffectActionRandomAction:
			randomized = true
		}
	}
	return
}

// executePlayerAction выполняет само действие и возвращает его стоимость в тиках.
func (s *GameService) executePlayerAction(action domain.ActionType, payload json.RawMessage, restricted, randomized bool) int {
	p := s.Player

	switch action {
	case domain.ActionMove:
		var dir api.DirectionPayload
		if err := json.Unmarshal(payload, &dir); err != nil {
			s.pushLog("Некорректное направление движения.", LogTypeError)
			return domain.TimeCostWait
		}
		return s.movePlayer(dir.Dx, dir.Dy, restricted, randomized)

	case domain.ActionAttack:
		var target api.EntityPayload
		if err := json.Unmarshal(payload, &target); err != nil || target.TargetID == "" {
			s.pushLog("Цель атаки не указана.", LogTypeError)
			return domain.TimeCostWait
		}
		defender := s.World.FindEntity(target.TargetID)
		if defender == nil {
			s.pushLog("Цель не найдена.", LogTypeError)
			return domain.TimeCostWait
		}
		s.applyOutcomes(p, s.Status.ProcessPhase(p, domain.TimingOnAttack))
		s.applyOutcomes(defender, s.Status.ProcessPhase(defender, domain.TimingOnDefend))
		res := s.Combat.ResolveAttack(p, defender)
		if res.Defeated {
			s.handleDeath(defender)
		}
		return domain.TimeCostAttack

	case domain.ActionWait:
		return domain.TimeCostWait

	case domain.ActionSearch:
		return s.searchTraps()

	case domain.ActionDisarm:
		var pos api.PositionPayload
		if err := json.Unmarshal(payload, &pos); err != nil {
			s.pushLog("Не указана клетка для обезвреживания.", LogTypeError)
			return domain.TimeCostWait
		}
		return s.disarmTrap(domain.Position{X: pos.X, Y: pos.Y})

	case domain.ActionDescend:
		return s.descend()
	}

	return domain.TimeCostWait
}

// movePlayer - шаг игрока с проверкой ловушки на новой клетке.
func (s *GameService) movePlayer(dx, dy int, restricted, randomized bool) int {
	p := s.Player

	if restricted {
		s.pushLog(fmt.Sprintf("%s не может сдвинуться с места!", p.Name), LogTypeStatus)
		return domain.TimeCostWait
	}
	if randomized {
		// Замешательство: направление подменяется случайным.
		dx = s.rand.Intn(3) - 1
		dy = s.rand.Intn(3) - 1
	}

	target := p.Pos.Shift(clampStep(dx), clampStep(dy))
	if target.Equals(p.Pos) || !s.World.MoveEntity(p, target) {
		s.pushLog("Туда не пройти.", LogTypeInfo)
		return domain.TimeCostWait
	}

	// Наступили на ловушку?
	if res := s.Traps.Activate(s.World, p.Pos, p); res != nil && res.Defeated {
		s.checkPlayerDeath()
	}
	return domain.TimeCostMove
}

// searchTraps - явный поиск ловушек на своей клетке и восьми соседних.
func (s *GameService) searchTraps() int {
	found := 0
	positions := append([]domain.Position{s.Player.Pos}, neighborhood(s.Player.Pos)...)
	for _, pos := range positions {
		if res := s.Traps.Detect(s.World, pos, s.World.Floor, 0); res.Detected && res.Message != "" {
			found++
		}
	}
	if found == 0 {
		s.pushLog("Ничего подозрительного не видно.", LogTypeInfo)
	}
	return domain.TimeCostSearch
}

// disarmTrap - попытка обезвреживания на своей или соседней клетке.
func (s *GameService) disarmTrap(pos domain.Position) int {
	p := s.Player
	if !pos.Equals(p.Pos) && !p.Pos.IsAdjacent(pos) {
		s.pushLog("Слишком далеко, чтобы возиться с ловушкой.", LogTypeInfo)
		return domain.TimeCostWait
	}
	res := s.Traps.Disarm(s.World, pos, p, s.World.Floor, 0)
	if res == nil {
		s.pushLog("Здесь нет ловушки.", LogTypeInfo)
		return domain.TimeCostWait
	}
	if res.ForcedActivation && res.Activation != nil && res.Activation.Defeated {
		s.checkPlayerDeath()
	}
	return domain.TimeCostDisarm
}

// descend - спуск на следующий этаж с лестницы вниз.
func (s *GameService) descend() int {
	cell := s.World.CellAt(s.Player.Pos)
	if cell == nil || cell.Type != domain.CellStairsDown {
		s.pushLog("Здесь нет лестницы вниз.", LogTypeInfo)
		return domain.TimeCostWait
	}
	if err := s.NextFloor(); err != nil {
		s.pushLog("Спуск не удался: лестница обрушилась.", LogTypeError)
		logger.Component("engine").WithError(err).Error("Floor transition failed.")
	}
	return domain.TimeCostMove
}

// NextFloor генерирует следующий этаж и переносит на него игрока.
// Этаж заменяется ЦЕЛИКОМ; кэш видимости и запаховая сетка сбрасываются.
func (s *GameService) NextFloor() error {
	next := s.World.Floor + 1
	world, err := dungeon.Generate(s.cfg.Gen, next, s.rand, s.reg)
	if err != nil {
		return err
	}

	s.World.RemoveEntity(s.Player)
	if !world.AddEntity(s.Player, world.PlayerSpawn) {
		return fmt.Errorf("engine: player spawn %v on floor %d is not walkable", world.PlayerSpawn, next)
	}

	s.World = world
	s.Vision.Reset(world)
	s.rebuildTurnQueue()

	s.Vision.EnsureVisible(s.Player.Pos, s.turn)
	s.Vision.SetScent(s.Player.Pos, s.turn)

	s.pushLog(fmt.Sprintf("Вы спускаетесь на этаж %d.", next), LogTypeInfo)
	logger.Component("engine").WithField("floor", next).Info("Descended to next floor.")
	return nil
}

// runMonsterTurns доигрывает монстров, пока в очереди не всплывет игрок.
func (s *GameService) runMonsterTurns() {
	for {
		next := s.Turns.PeekNext()
		if next == nil || next.Value == s.Player {
			return
		}
		m := next.Value
		if !m.IsAlive() {
			s.Turns.RemoveEntity(m.ID)
			continue
		}

		cost := s.monsterAct(m)
		s.Turns.UpdatePriority(m.ID, next.Priority+cost)

		if s.GameOver {
			return
		}
	}
}

// monsterAct - один ход монстра: те же фазы, что и у игрока.
func (s *GameService) monsterAct(m *domain.Entity) int {
	s.applyOutcomes(m, s.Status.ProcessPhase(m, domain.TimingTurnStart))
	if !m.IsAlive() {
		s.handleDeath(m)
		return domain.TimeCostWait
	}

	prevented, restricted, _ := s.beforeActionFlags(m)

	cost := domain.TimeCostWait
	if !prevented {
		decision := systems.ComputeMonsterAction(m, s.Player, s.World, s.Vision, s.turn, s.cfg.ScentHorizon)
		switch decision.Action {
		case domain.ActionAttack:
			s.applyOutcomes(m, s.Status.ProcessPhase(m, domain.TimingOnAttack))
			s.applyOutcomes(decision.Target, s.Status.ProcessPhase(decision.Target, domain.TimingOnDefend))
			res := s.Combat.ResolveAttack(m, decision.Target)
			if res.Defeated {
				s.handleDeath(decision.Target)
			}
			cost = domain.TimeCostAttack
		case domain.ActionMove:
			if !restricted && s.World.MoveEntity(m, decision.Step) {
				// Монстры тоже наступают на ловушки.
				if res := s.Traps.Activate(s.World, m.Pos, m); res != nil && res.Defeated {
					s.handleDeath(m)
				}
				cost = domain.TimeCostMove
			}
		}
	}

	if m.IsAlive() {
		outcomes, _ := s.Status.ProcessTurnEnd(m)
		s.applyOutcomes(m, outcomes)
	}
	if !m.IsAlive() {
		s.handleDeath(m)
	}
	return cost
}

// applyOutcomes обрабатывает последствия действий эффектов (смерть от яда и т.п.).
func (s *GameService) applyOutcomes(e *domain.Entity, outcomes []systems.EffectOutcome) {
	for _, out := range outcomes {
		if out.Defeated {
			s.handleDeath(e)
			return
		}
	}
}

// handleDeath убирает погибшую сущность с этажа и из очереди ходов.
// Игрок остается лежать: для него это конец игры.
func (s *GameService) handleDeath(e *domain.Entity) {
	if e == s.Player {
		s.checkPlayerDeath()
		return
	}
	s.World.RemoveEntity(e)
	s.Turns.RemoveEntity(e.ID)
}

// checkPlayerDeath переводит игру в состояние GameOver, если герой мертв.
func (s *GameService) checkPlayerDeath() bool {
	if s.Player.IsAlive() || s.GameOver {
		return s.GameOver
	}
	s.GameOver = true
	s.Turns.RemoveEntity(s.Player.ID)
	s.pushLog("Герой погибает. Подземелье забирает еще одну душу.", LogTypeError)
	return true
}

// clampStep обрезает компонент шага до [-1, 1]: телепорты через payload не проходят.
func clampStep(v int) int {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// neighborhood возвращает восемь соседних позиций.
func neighborhood(p domain.Position) []domain.Position {
	out := make([]domain.Position, 0, 8)
	for _, off := range domain.CardinalOffsets {
		out = append(out, p.Shift(off.X, off.Y))
	}
	for _, off := range domain.DiagonalOffsets {
		out = append(out, p.Shift(off.X, off.Y))
	}
	return out
}
