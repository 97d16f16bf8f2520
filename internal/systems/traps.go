package systems

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/teitasan/Dungeon-sub000/internal/domain"
	"github.com/teitasan/Dungeon-sub000/internal/registry"
	"github.com/teitasan/Dungeon-sub000/pkg/logger"
	"github.com/teitasan/Dungeon-sub000/pkg/rng"
)

// TrapConfig - константы вероятностных кривых ловушек.
type TrapConfig struct {
	// ForcedActivationChance - вероятность того, что проваленная попытка
	// обезвреживания сама активирует ловушку. Фиксированная константа,
	// общая для всех типов ловушек.
	ForcedActivationChance float64
}

// DefaultTrapConfig возвращает номинальные константы.
func DefaultTrapConfig() TrapConfig {
	return TrapConfig{ForcedActivationChance: 0.3}
}

// DetectionResult - исход проверки обнаружения.
type DetectionResult struct {
	Detected bool   `json:"detected"`
	Message  string `json:"message,omitempty"`
}

// ActivationResult - исход попытки срабатывания ловушки.
type ActivationResult struct {
	// Activated - ловушка сработала и эффекты были брошены.
	Activated bool `json:"activated"`

	// Avoided - проверка активации провалилась: жертва чудом не задела
	// механизм. Состояние ловушки не меняется.
	Avoided bool `json:"avoided"`

	// Damage - суммарный урон сработавших эффектов.
	Damage int `json:"damage"`

	// Defeated - жертва погибла.
	Defeated bool `json:"defeated"`

	// Destroyed - одноразовая ловушка снята с клетки.
	Destroyed bool `json:"destroyed"`

	Messages []string `json:"messages,omitempty"`
}

// DisarmResult - исход попытки обезвреживания.
type DisarmResult struct {
	Success bool `json:"success"`

	// ForcedActivation - неудача сорвала механизм, и ловушка сработала.
	ForcedActivation bool `json:"forcedActivation"`

	// Activation - результат вынужденного срабатывания (если было).
	Activation *ActivationResult `json:"activation,omitempty"`

	Message string `json:"message"`
}

// TrapEngine владеет жизненным циклом ловушек на клетках:
// скрыта -> (обнаружена) -> видима -> (сработала) -> [снята | осталась].
type TrapEngine struct {
	cfg    TrapConfig
	reg    *registry.Registry
	status *StatusEngine
	rand   rng.Source
	sink   func(string)
}

// NewTrapEngine создает движок ловушек.
// status нужен для эффектов-статусов; sink может быть nil.
func NewTrapEngine(cfg TrapConfig, reg *registry.Registry, status *StatusEngine, rand rng.Source, sink func(string)) *TrapEngine {
	if sink == nil {
		sink = func(string) {}
	}
	return &TrapEngine{cfg: cfg, reg: reg, status: status, rand: rand, sink: sink}
}

// PlaceTrap кладет новую скрытую ловушку на клетку.
// Ошибка - незарегистрированный тип, занятая ловушкой или непригодная клетка.
func (t *TrapEngine) PlaceTrap(d *domain.Dungeon, p domain.Position, typ domain.TrapType) (*domain.Trap, error) {
	if _, err := t.reg.Trap(typ); err != nil {
		return nil, err
	}
	c := d.CellAt(p)
	if c == nil || !c.Walkable {
		return nil, fmt.Errorf("traps: cell %v cannot hold a trap", p)
	}
	if c.Trap != nil {
		return nil, fmt.Errorf("traps: cell %v already has a trap", p)
	}
	trap := domain.NewTrap(typ)
	c.Trap = trap
	return trap, nil
}

// Detect - проверка обнаружения ловушки на клетке.
//
// Уже видимая ловушка обнаруживается с гарантией. Скрытая - с вероятностью
// min(0.9, 0.1 + 0.02*level + bonus). Успех делает ловушку видимой;
// обратно в "скрыта" эта проверка ловушку никогда не переводит.
func (t *TrapEngine) Detect(d *domain.Dungeon, p domain.Position, level int, bonus float64) DetectionResult {
	c := d.CellAt(p)
	if c == nil || c.Trap == nil {
		return DetectionResult{}
	}
	trap := c.Trap

	if trap.Visible {
		return DetectionResult{Detected: true}
	}

	chance := 0.1 + 0.02*float64(level) + bonus
	if chance > 0.9 {
		chance = 0.9
	}
	if t.rand.Float64() >= chance {
		return DetectionResult{}
	}

	trap.Visible = true
	tmpl, _ := t.reg.Trap(trap.Type)
	msg := fmt.Sprintf("Вы замечаете ловушку: %s!", tmpl.Name)
	t.sink(msg)
	logger.Component("trap_system").WithFields(logrus.Fields{
		"trap_id":   trap.ID,
		"trap_type": trap.Type,
		"pos":       p,
	}).Info("Trap detected.")
	return DetectionResult{Detected: true, Message: msg}
}

// Activate - попытка срабатывания при входе сущности на клетку.
//
// Возвращает nil ("нет активации"), если ловушки на клетке нет или она
// уже сработала и одноразова. Иначе бросается шанс активации типа ловушки:
// неудача - исход "чудом избежал" без эффектов и без смены состояния.
// При успехе каждый эффект бросается НЕЗАВИСИМО, ловушка помечается
// сработавшей, и одноразовая ловушка отцепляется от клетки.
func (t *TrapEngine) Activate(d *domain.Dungeon, p domain.Position, victim *domain.Entity) *ActivationResult {
	c := d.CellAt(p)
	if c == nil || c.Trap == nil {
		return nil
	}
	trap := c.Trap

	tmpl, err := t.reg.Trap(trap.Type)
	if err != nil {
		logger.Component("trap_system").WithField("trap_type", trap.Type).
			Error("Trap on cell has no registered template; ignoring.")
		return nil
	}

	// Сработавшая одноразовая ловушка инертна навсегда.
	if trap.Triggered && !tmpl.Reusable {
		return nil
	}

	trapLogger := logger.Component("trap_system").WithFields(logrus.Fields{
		"trap_id":   trap.ID,
		"trap_type": trap.Type,
		"victim_id": victim.ID,
	})

	if t.rand.Float64() >= tmpl.ActivationChance {
		msg := fmt.Sprintf("%s чудом не задевает ловушку (%s).", victim.Name, tmpl.Name)
		t.sink(msg)
		trapLogger.Info("Trap activation avoided.")
		return &ActivationResult{Avoided: true, Messages: []string{msg}}
	}

	res := &ActivationResult{Activated: true}
	for _, eff := range tmpl.Effects {
		if eff.Chance < 1.0 && t.rand.Float64() >= eff.Chance {
			continue
		}
		if eff.Message != "" {
			res.Messages = append(res.Messages, eff.Message)
			t.sink(eff.Message)
		}
		if eff.Damage > 0 && victim.Health != nil {
			dmg := eff.Damage
			if dmg > victim.Health.HP {
				dmg = victim.Health.HP
			}
			res.Damage += dmg
			if victim.Health.TakeDamage(dmg) {
				res.Defeated = true
				msg := fmt.Sprintf("%s погибает.", victim.Name)
				res.Messages = append(res.Messages, msg)
				t.sink(msg)
			}
		}
		if eff.Status != "" {
			if _, err := t.status.Apply(victim, eff.Status, string(trap.Type)); err != nil {
				trapLogger.WithError(err).Error("Trap references unknown status template.")
			}
		}
	}

	trap.Triggered = true
	trap.Visible = true
	if !tmpl.Reusable {
		// Снимаем одноразовую ловушку в момент срабатывания.
		c.Trap = nil
		res.Destroyed = true
	}

	trapLogger.WithFields(logrus.Fields{
		"damage":    res.Damage,
		"destroyed": res.Destroyed,
	}).Info("Trap activated.")
	return res
}

// Disarm - попытка обезвреживания ловушки на клетке.
//
// Необнаруженную (скрытую) ловушку обезвредить нельзя. Иначе шанс
// min(0.95, 0.3 + 0.05*level + bonus): успех убирает ловушку с клетки,
// неудача с фиксированной вероятностью срывает механизм и запускает
// полный путь активации против неудачника.
func (t *TrapEngine) Disarm(d *domain.Dungeon, p domain.Position, actor *domain.Entity, level int, bonus float64) *DisarmResult {
	c := d.CellAt(p)
	if c == nil || c.Trap == nil {
		return nil
	}
	trap := c.Trap

	if !trap.Visible {
		return &DisarmResult{Message: "Здесь нечего обезвреживать."}
	}

	tmpl, err := t.reg.Trap(trap.Type)
	if err != nil {
		return nil
	}

	chance := 0.3 + 0.05*float64(level) + bonus
	if chance > 0.95 {
		chance = 0.95
	}

	if t.rand.Float64() < chance {
		c.Trap = nil
		msg := fmt.Sprintf("%s обезвреживает ловушку (%s).", actor.Name, tmpl.Name)
		t.sink(msg)
		logger.Component("trap_system").WithFields(logrus.Fields{
			"trap_id":   trap.ID,
			"trap_type": trap.Type,
		}).Info("Trap disarmed.")
		return &DisarmResult{Success: true, Message: msg}
	}

	res := &DisarmResult{Message: fmt.Sprintf("%s возится с ловушкой, но механизм не поддается.", actor.Name)}
	t.sink(res.Message)

	// Неудача может сорвать механизм.
	if t.rand.Float64() < t.cfg.ForcedActivationChance {
		res.ForcedActivation = true
		res.Activation = t.Activate(d, p, actor)
	}
	return res
}
