// Package registry хранит шаблоны монстров, предметов, ловушек и статусных
// эффектов. Реестр - явная зависимость: он передается в конструкторы движков,
// а не лежит глобальной переменной пакета.
package registry

import (
	"fmt"

	"github.com/teitasan/Dungeon-sub000/internal/domain"
)

// MonsterTemplate - шаблон монстра.
type MonsterTemplate struct {
	ID     string `json:"id" jsonschema:"required"`
	Name   string `json:"name" jsonschema:"required"`
	Symbol string `json:"symbol"`
	Color  string `json:"color"`

	HP             int     `json:"hp"`
	Attack         int     `json:"attack"`
	Defense        int     `json:"defense"`
	CriticalChance float64 `json:"criticalChance"`
	CriticalResist float64 `json:"criticalResist"`
	EvasionChance  float64 `json:"evasionChance"`
}

// ItemTemplate - шаблон предмета.
type ItemTemplate struct {
	ID       string `json:"id" jsonschema:"required"`
	Name     string `json:"name" jsonschema:"required"`
	Symbol   string `json:"symbol"`
	Color    string `json:"color"`
	Category string `json:"category"`
}

// TrapEffect - один эффект ловушки. Каждый эффект бросается независимо.
type TrapEffect struct {
	// Chance - вероятность срабатывания эффекта в [0,1].
	Chance float64 `json:"chance"`

	// Damage - прямой урон (0 - эффект не бьет).
	Damage int `json:"damage,omitempty"`

	// Status - накладываемый статус ("" - статус не накладывается).
	Status domain.StatusEffectType `json:"status,omitempty"`

	// Message - сообщение для лога при срабатывании.
	Message string `json:"message,omitempty"`
}

// TrapTemplate - шаблон ловушки.
type TrapTemplate struct {
	Type domain.TrapType `json:"type" jsonschema:"required"`
	Name string          `json:"name" jsonschema:"required"`

	// ActivationChance - вероятность срабатывания при наступании.
	ActivationChance float64 `json:"activationChance"`

	// Reusable - ловушка остается на клетке после срабатывания.
	Reusable bool `json:"reusable"`

	Effects []TrapEffect `json:"effects"`
}

// EffectAction - одно действие статусного эффекта, привязанное к фазе хода.
type EffectAction struct {
	Kind   domain.EffectActionKind `json:"kind" jsonschema:"required"`
	Timing domain.EffectTiming     `json:"timing" jsonschema:"required"`

	// Chance - независимая вероятность срабатывания действия в [0,1].
	// Бросается отдельно от проверки восстановления самого эффекта.
	Chance float64 `json:"chance"`

	// Power - сила действия (урон, лечение, величина модификатора).
	Power int `json:"power,omitempty"`

	// Message - сообщение для лога при срабатывании.
	Message string `json:"message,omitempty"`
}

// StatusTemplate - шаблон статусного эффекта.
type StatusTemplate struct {
	Type domain.StatusEffectType `json:"type" jsonschema:"required"`
	Name string                  `json:"name" jsonschema:"required"`

	// Stackable: повторное наложение усиливает эффект (Intensity+1).
	// Нестакающиеся типы вместо этого сбрасывают счетчик прошедших ходов.
	Stackable bool `json:"stackable"`

	// MaxDuration - максимум ходов; по достижении эффект истекает
	// независимо от бросков восстановления.
	MaxDuration int `json:"maxDuration"`

	// Восстановление: p = min(RecoveryMax, RecoveryBase + RecoveryIncrease*turnsElapsed),
	// бросается раз в конец хода.
	RecoveryBase     float64 `json:"recoveryBase"`
	RecoveryIncrease float64 `json:"recoveryIncrease"`
	RecoveryMax      float64 `json:"recoveryMax"`

	Actions []EffectAction `json:"actions"`
}

// TemplateFile - корневой документ набора шаблонов.
// По этому типу tools/schemagen строит JSON-схему для авторских файлов.
type TemplateFile struct {
	Monsters []MonsterTemplate `json:"monsters"`
	Items    []ItemTemplate    `json:"items"`
	Traps    []TrapTemplate    `json:"traps"`
	Statuses []StatusTemplate  `json:"statuses"`
}

// Registry - набор зарегистрированных шаблонов.
type Registry struct {
	monsters map[string]MonsterTemplate
	items    map[string]ItemTemplate
	traps    map[domain.TrapType]TrapTemplate
	statuses map[domain.StatusEffectType]StatusTemplate
}

// New создает пустой реестр.
func New() *Registry {
	return &Registry{
		monsters: make(map[string]MonsterTemplate),
		items:    make(map[string]ItemTemplate),
		traps:    make(map[domain.TrapType]TrapTemplate),
		statuses: make(map[domain.StatusEffectType]StatusTemplate),
	}
}

func (r *Registry) RegisterMonster(t MonsterTemplate) { r.monsters[t.ID] = t }
func (r *Registry) RegisterItem(t ItemTemplate)       { r.items[t.ID] = t }
func (r *Registry) RegisterTrap(t TrapTemplate)       { r.traps[t.Type] = t }
func (r *Registry) RegisterStatus(t StatusTemplate)   { r.statuses[t.Type] = t }

// Monster возвращает шаблон монстра.
// Запрос незарегистрированного ID - ошибка конфигурации, она фатальна
// для вызывающего на старте, поэтому возвращается явно, а не глотается.
func (r *Registry) Monster(id string) (MonsterTemplate, error) {
	t, ok := r.monsters[id]
	if !ok {
		return MonsterTemplate{}, fmt.Errorf("registry: unknown monster template %q", id)
	}
	return t, nil
}

// Item возвращает шаблон предмета.
func (r *Registry) Item(id string) (ItemTemplate, error) {
	t, ok := r.items[id]
	if !ok {
		return ItemTemplate{}, fmt.Errorf("registry: unknown item template %q", id)
	}
	return t, nil
}

// Trap возвращает шаблон ловушки.
func (r *Registry) Trap(t domain.TrapType) (TrapTemplate, error) {
	tmpl, ok := r.traps[t]
	if !ok {
		return TrapTemplate{}, fmt.Errorf("registry: unknown trap template %q", t)
	}
	return tmpl, nil
}

// Status возвращает шаблон статусного эффекта.
func (r *Registry) Status(t domain.StatusEffectType) (StatusTemplate, error) {
	tmpl, ok := r.statuses[t]
	if !ok {
		return StatusTemplate{}, fmt.Errorf("registry: unknown status template %q", t)
	}
	return tmpl, nil
}

// TrapTypes перечисляет зарегистрированные типы ловушек
// (для генератора; порядок не гарантируется).
func (r *Registry) TrapTypes() []domain.TrapType {
	out := make([]domain.TrapType, 0, len(r.traps))
	for t := range r.traps {
		out = append(out, t)
	}
	return out
}

// MonsterIDs перечисляет зарегистрированные ID монстров.
func (r *Registry) MonsterIDs() []string {
	out := make([]string, 0, len(r.monsters))
	for id := range r.monsters {
		out = append(out, id)
	}
	return out
}

// SpawnMonster создает сущность-монстра из шаблона.
func (r *Registry) SpawnMonster(id string) (*domain.Entity, error) {
	t, err := r.Monster(id)
	if err != nil {
		return nil, err
	}
	return &domain.Entity{
		ID:   domain.GenerateID(),
		Kind: domain.EntityKindMonster,
		Name: t.Name,
		Render: &domain.RenderComponent{
			Symbol: t.Symbol,
			Color:  t.Color,
		},
		Health: &domain.HealthComponent{HP: t.HP, MaxHP: t.HP},
		Combat: &domain.CombatComponent{
			Attack:         t.Attack,
			Defense:        t.Defense,
			CriticalChance: t.CriticalChance,
			CriticalResist: t.CriticalResist,
			EvasionChance:  t.EvasionChance,
		},
		Status: domain.NewStatusComponent(),
	}, nil
}
