package systems

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/teitasan/Dungeon-sub000/internal/domain"
	"github.com/teitasan/Dungeon-sub000/internal/registry"
	"github.com/teitasan/Dungeon-sub000/pkg/logger"
	"github.com/teitasan/Dungeon-sub000/pkg/rng"
)

// EffectOutcome - результат одного сработавшего действия эффекта.
type EffectOutcome struct {
	Effect domain.StatusEffectType `json:"effect"`
	Kind   domain.EffectActionKind `json:"kind"`

	// Damage/Heal - фактическое изменение HP.
	Damage int `json:"damage,omitempty"`
	Heal   int `json:"heal,omitempty"`

	// Defeated - сущность погибла от урона эффекта.
	Defeated bool `json:"defeated,omitempty"`

	Message string `json:"message,omitempty"`
}

// RemovalOutcome - снятие эффекта (восстановление или истечение срока).
type RemovalOutcome struct {
	Effect    domain.StatusEffectType `json:"effect"`
	Recovered bool                    `json:"recovered"` // true - бросок восстановления, false - истек срок
	Message   string                  `json:"message"`
}

// StatusEngine - машина состояний статусных эффектов.
//
// На сущности эффекты хранятся по типу: повторное наложение никогда
// не создает дубликат. Стакающийся тип усиливается (+1 Intensity),
// нестакающийся сбрасывает счетчик прошедших ходов.
type StatusEngine struct {
	reg  *registry.Registry
	rand rng.Source
	sink func(string)
}

// NewStatusEngine создает движок статусов.
func NewStatusEngine(reg *registry.Registry, rand rng.Source, sink func(string)) *StatusEngine {
	if sink == nil {
		sink = func(string) {}
	}
	return &StatusEngine{reg: reg, rand: rand, sink: sink}
}

// Apply накладывает эффект на сущность.
// Возвращает false, если сущность не имеет способности Status.
// Незарегистрированный тип - ошибка конфигурации.
func (s *StatusEngine) Apply(e *domain.Entity, t domain.StatusEffectType, source string) (bool, error) {
	tmpl, err := s.reg.Status(t)
	if err != nil {
		return false, err
	}
	if e.Status == nil {
		return false, nil
	}

	statusLogger := logger.Component("status_system").WithFields(logrus.Fields{
		"entity_id": e.ID,
		"effect":    t,
	})

	if inst, ok := e.Status.Effects[t]; ok {
		if tmpl.Stackable {
			inst.Intensity++
			statusLogger.WithField("intensity", inst.Intensity).Info("Status effect stacked.")
			s.sink(fmt.Sprintf("%s: %s усиливается!", e.Name, tmpl.Name))
		} else {
			inst.TurnsElapsed = 0
			statusLogger.Info("Status effect refreshed.")
		}
		return true, nil
	}

	e.Status.Effects[t] = &domain.StatusEffectInstance{
		Type:      t,
		Intensity: 1,
		Source:    source,
	}
	statusLogger.Info("Status effect applied.")
	s.sink(fmt.Sprintf("%s: %s!", e.Name, tmpl.Name))
	return true, nil
}

// Has проверяет наличие эффекта.
func (s *StatusEngine) Has(e *domain.Entity, t domain.StatusEffectType) bool {
	return e.Status != nil && e.Status.Effects[t] != nil
}

// ProcessPhase выполняет все действия активных эффектов, чья фаза совпадает
// с timing. Каждое действие несет независимую вероятность срабатывания,
// она бросается отдельно от проверки восстановления самого эффекта.
func (s *StatusEngine) ProcessPhase(e *domain.Entity, timing domain.EffectTiming) []EffectOutcome {
	if e.Status == nil || len(e.Status.Effects) == 0 {
		return nil
	}

	var outcomes []EffectOutcome
	for _, t := range s.sortedEffectTypes(e) {
		inst := e.Status.Effects[t]
		tmpl, err := s.reg.Status(t)
		if err != nil {
			// Эффект без шаблона - сломанная конфигурация; снимаем молча.
			logger.Component("status_system").WithField("effect", t).
				Error("Active status effect has no registered template; dropping.")
			delete(e.Status.Effects, t)
			continue
		}

		for _, action := range tmpl.Actions {
			if action.Timing != timing {
				continue
			}
			if action.Chance < 1.0 && s.rand.Float64() >= action.Chance {
				continue
			}
			outcomes = append(outcomes, s.executeAction(e, inst, tmpl, action))
		}
	}
	return outcomes
}

// executeAction применяет одно действие эффекта.
func (s *StatusEngine) executeAction(e *domain.Entity, inst *domain.StatusEffectInstance, tmpl registry.StatusTemplate, action registry.EffectAction) EffectOutcome {
	out := EffectOutcome{Effect: inst.Type, Kind: action.Kind, Message: action.Message}

	switch action.Kind {
	case domain.EffectActionDamage:
		if e.Health != nil {
			// Урон масштабируется интенсивностью стака.
			dmg := action.Power * inst.Intensity
			if dmg > e.Health.HP {
				dmg = e.Health.HP
			}
			out.Damage = dmg
			out.Defeated = e.Health.TakeDamage(dmg)
			if out.Defeated {
				out.Message += fmt.Sprintf(" %s погибает.", e.Name)
			}
		}
	case domain.EffectActionHeal:
		if e.Health != nil {
			before := e.Health.HP
			e.Health.Heal(action.Power * inst.Intensity)
			out.Heal = e.Health.HP - before
		}
	case domain.EffectActionPrevent, domain.EffectActionRandomAction,
		domain.EffectActionStatModifier, domain.EffectActionMoveRestrict:
		// Маркерные действия: их интерпретирует планировщик хода
		// (запрет действия, случайное действие, модификатор, запрет движения).
	}

	if out.Message != "" {
		s.sink(out.Message)
	}
	return out
}

// ProcessTurnEnd - конец хода сущности: действия фазы TURN_END, затем
// для каждого эффекта - счетчик ходов, бросок восстановления и проверка
// истечения срока.
//
// Восстановление и истечение - два НЕЗАВИСИМЫХ пути снятия: достаточно
// любого из них. p = min(RecoveryMax, RecoveryBase + RecoveryIncrease*turns).
func (s *StatusEngine) ProcessTurnEnd(e *domain.Entity) ([]EffectOutcome, []RemovalOutcome) {
	outcomes := s.ProcessPhase(e, domain.TimingTurnEnd)
	if e.Status == nil || len(e.Status.Effects) == 0 {
		return outcomes, nil
	}

	var removals []RemovalOutcome
	for _, t := range s.sortedEffectTypes(e) {
		inst, ok := e.Status.Effects[t]
		if !ok {
			continue // снят выше как сломанный
		}
		tmpl, err := s.reg.Status(t)
		if err != nil {
			continue
		}

		inst.TurnsElapsed++

		// Путь 1: бросок восстановления.
		p := tmpl.RecoveryBase + tmpl.RecoveryIncrease*float64(inst.TurnsElapsed)
		if p > tmpl.RecoveryMax {
			p = tmpl.RecoveryMax
		}
		if p > 0 && s.rand.Float64() < p {
			delete(e.Status.Effects, t)
			msg := fmt.Sprintf("%s: %s проходит.", e.Name, tmpl.Name)
			removals = append(removals, RemovalOutcome{Effect: t, Recovered: true, Message: msg})
			s.sink(msg)
			continue
		}

		// Путь 2: истечение максимального срока.
		if inst.TurnsElapsed >= tmpl.MaxDuration {
			delete(e.Status.Effects, t)
			msg := fmt.Sprintf("%s: %s сходит на нет.", e.Name, tmpl.Name)
			removals = append(removals, RemovalOutcome{Effect: t, Recovered: false, Message: msg})
			s.sink(msg)
		}
	}
	return outcomes, removals
}

// IsActionPrevented: эффект с действием PREVENT_ACTION в фазе BEFORE_ACTION
// не дает сущности действовать на этом ходу (с учетом вероятности действия).
func (s *StatusEngine) IsActionPrevented(e *domain.Entity) (bool, string) {
	for _, out := range s.ProcessPhase(e, domain.TimingBeforeAction) {
		if out.Kind == domain.EffectActionPrevent {
			return true, out.Message
		}
	}
	return false, ""
}

// sortedEffectTypes возвращает типы активных эффектов в стабильном порядке.
// Порядок обхода мапы случаен, а обработка должна быть воспроизводимой
// при фиксированном сиде.
func (s *StatusEngine) sortedEffectTypes(e *domain.Entity) []domain.StatusEffectType {
	types := make([]domain.StatusEffectType, 0, len(e.Status.Effects))
	for t := range e.Status.Effects {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
