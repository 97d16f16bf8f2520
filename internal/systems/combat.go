package systems

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/teitasan/Dungeon-sub000/internal/domain"
	"github.com/teitasan/Dungeon-sub000/pkg/logger"
	"github.com/teitasan/Dungeon-sub000/pkg/rng"
)

// CombatConfig - константы боевой формулы.
type CombatConfig struct {
	// AttackMultiplier - общий множитель атаки.
	AttackMultiplier float64

	// DefenseBase - основание степени защиты: урон умножается
	// на DefenseBase^defense. При DefenseBase < 1 каждая единица
	// защиты срезает фиксированный процент урона.
	DefenseBase float64

	// RandomMin/RandomMax - диапазон случайного множителя урона.
	RandomMin float64
	RandomMax float64

	// CriticalMultiplier - множитель урона критического удара.
	CriticalMultiplier float64

	// MinimumDamage - нижняя планка урона. Урон никогда не бывает
	// нулевым или отрицательным.
	MinimumDamage int

	// EvasionEnabled - глобальный выключатель уклонения.
	EvasionEnabled bool

	// LogCap - емкость боевого лога; старые записи вытесняются.
	LogCap int
}

// DefaultCombatConfig возвращает номинальные константы формулы.
func DefaultCombatConfig() CombatConfig {
	return CombatConfig{
		AttackMultiplier:   1.3,
		DefenseBase:        35.0 / 36.0,
		RandomMin:          7.0 / 8.0,
		RandomMax:          9.0 / 8.0,
		CriticalMultiplier: 1.5,
		MinimumDamage:      1,
		EvasionEnabled:     true,
		LogCap:             100,
	}
}

// AttackResult - исход одной атаки.
// Вызывающий судит об исходе ТОЛЬКО по этой структуре, не по побочным
// эффектам.
type AttackResult struct {
	AttackerID string `json:"attackerId"`
	DefenderID string `json:"defenderId"`

	// Success - атака состоялась (цель в радиусе и пригодна).
	// Уклонение НЕ сбрасывает Success: действие потрачено.
	Success bool `json:"success"`

	Evaded   bool `json:"evaded"`
	Critical bool `json:"critical"`

	// Damage - фактически примененный урон (уже ограничен текущим HP цели).
	Damage int `json:"damage"`

	// Defeated - цель погибла от этого удара.
	Defeated bool `json:"defeated"`

	Message string `json:"message"`
}

// CombatEngine разрешает одиночные стычки атакующий/защитник.
type CombatEngine struct {
	cfg  CombatConfig
	rand rng.Source
	sink func(string)

	// log - ограниченный боевой журнал для инспекции и отладки.
	log []AttackResult
}

// NewCombatEngine создает движок боя.
// sink может быть nil, тогда сообщения никуда не шлются.
func NewCombatEngine(cfg CombatConfig, rand rng.Source, sink func(string)) *CombatEngine {
	if sink == nil {
		sink = func(string) {}
	}
	return &CombatEngine{cfg: cfg, rand: rand, sink: sink}
}

// ResolveAttack проводит одну атаку по конечному автомату:
// дистанция -> уклонение -> крит -> расчет урона -> применение -> отчет.
func (c *CombatEngine) ResolveAttack(attacker, defender *domain.Entity) AttackResult {
	combatLogger := logger.Component("combat_system").WithFields(logrus.Fields{
		"attacker_id":   attacker.ID,
		"attacker_name": attacker.Name,
		"defender_id":   defender.ID,
		"defender_name": defender.Name,
	})

	res := AttackResult{AttackerID: attacker.ID, DefenderID: defender.ID}

	// --- Проверка дистанции ---
	// Ближняя атака бьет на одну клетку, включая диагонали.
	// Вне дистанции - проваленное действие с нулевым уроном, это НЕ промах:
	// уклонение применимо только к атакам в радиусе.
	if !attacker.Pos.IsAdjacent(defender.Pos) {
		res.Message = fmt.Sprintf("%s замахивается, но %s слишком далеко.", attacker.Name, defender.Name)
		combatLogger.Debug("Attack failed: defender out of melee range.")
		c.record(res)
		return res
	}

	if defender.Health == nil {
		res.Message = fmt.Sprintf("%s атакует %s, но это бесполезно.", attacker.Name, defender.Name)
		combatLogger.Warn("Attack failed: defender has no HealthComponent.")
		c.record(res)
		return res
	}
	if defender.Health.IsDead {
		res.Message = fmt.Sprintf("%s пинает труп %s.", attacker.Name, defender.Name)
		combatLogger.Info("Attack ineffective: defender is already dead.")
		c.record(res)
		return res
	}

	// --- Бросок уклонения ---
	if c.cfg.EvasionEnabled && defender.Combat != nil && defender.Combat.EvasionChance > 0 {
		if c.rand.Float64() < defender.Combat.EvasionChance {
			res.Success = true
			res.Evaded = true
			res.Message = fmt.Sprintf("%s уклоняется от атаки %s!", defender.Name, attacker.Name)
			combatLogger.Info("Attack evaded.")
			c.record(res)
			return res
		}
	}

	// --- Бросок крита ---
	// Крит проходит, если бросок атакующего удался И защитник
	// не отменил его собственным броском крит-сопротивления.
	critChance := 0.0
	if attacker.Combat != nil {
		critChance = attacker.Combat.CriticalChance
	}
	critical := c.rand.Float64() < critChance
	if critical && defender.Combat != nil && defender.Combat.CriticalResist > 0 {
		if c.rand.Float64() < defender.Combat.CriticalResist {
			critical = false
		}
	}

	// --- Расчет урона ---
	attack := 1
	if attacker.Combat != nil {
		attack = attacker.Combat.Attack
	}
	defense := 0
	if defender.Combat != nil {
		defense = defender.Combat.Defense
	}
	// Крит полностью игнорирует защиту.
	effectiveDefense := defense
	if critical {
		effectiveDefense = 0
	}

	base := float64(attack) * c.cfg.AttackMultiplier * math.Pow(c.cfg.DefenseBase, float64(effectiveDefense))
	randomMult := c.cfg.RandomMin + c.rand.Float64()*(c.cfg.RandomMax-c.cfg.RandomMin)
	raw := base * randomMult
	if critical {
		raw *= c.cfg.CriticalMultiplier
	}

	damage := int(math.Floor(raw))
	if damage < c.cfg.MinimumDamage {
		damage = c.cfg.MinimumDamage
	}
	// Фактический урон не уводит HP в минус.
	if damage > defender.Health.HP {
		damage = defender.Health.HP
	}

	hpBefore := defender.Health.HP
	died := defender.Health.TakeDamage(damage)

	res.Success = true
	res.Critical = critical
	res.Damage = damage
	res.Defeated = died

	// --- Сообщение ---
	if critical {
		res.Message = fmt.Sprintf("Критический удар! %s наносит %d урона по %s.", attacker.Name, damage, defender.Name)
	} else {
		res.Message = fmt.Sprintf("%s наносит %d урона по %s.", attacker.Name, damage, defender.Name)
	}
	if died {
		res.Message += fmt.Sprintf(" %s погибает.", defender.Name)
	}

	combatLogger.WithFields(logrus.Fields{
		"attack":       attack,
		"defense":      defense,
		"critical":     critical,
		"final_damage": damage,
		"hp_before":    hpBefore,
		"hp_after":     defender.Health.HP,
		"died":         died,
	}).Info("Attack resolved.")

	c.record(res)
	return res
}

// record пишет результат в ограниченный журнал и шлет сообщение в sink.
func (c *CombatEngine) record(res AttackResult) {
	c.log = append(c.log, res)
	if c.cfg.LogCap > 0 && len(c.log) > c.cfg.LogCap {
		c.log = c.log[len(c.log)-c.cfg.LogCap:]
	}
	if res.Message != "" {
		c.sink(res.Message)
	}
}

// Log возвращает записи боевого журнала (от старых к новым).
func (c *CombatEngine) Log() []AttackResult {
	return c.log
}
