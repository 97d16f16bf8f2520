package domain

import (
	"crypto/rand"
	"encoding/hex"
)

// EntityKind - крупный класс сущности.
type EntityKind string

const (
	EntityKindPlayer    EntityKind = "PLAYER"
	EntityKindMonster   EntityKind = "MONSTER"
	EntityKindItem      EntityKind = "ITEM"
	EntityKindCompanion EntityKind = "COMPANION"
)

// GenerateID создает простой уникальный ID (замена UUID для снижения зависимостей).
func GenerateID() string {
	b := make([]byte, 8) // 16 символов hex
	if _, err := rand.Read(b); err != nil {
		panic("domain: failed to generate random ID: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// --- СУЩНОСТЬ ---

// Entity - любой размещаемый игровой объект (игрок, монстр, предмет, спутник).
//
// Вместо утиной типизации ("есть ли у объекта поле hunger?") сущность несет
// закрытый набор опциональных компонентов-способностей. Если указатель nil -
// способности нет, и системы обязаны проверять это явно.
//
// Позиция сущности и список Entities клетки пишутся только мутационным API
// Dungeon, всегда вместе.
type Entity struct {
	ID   string     `json:"id"`
	Kind EntityKind `json:"kind"`
	Name string     `json:"name"`
	Pos  Position   `json:"pos"`

	// Render - как рисовать (клиентская часть).
	Render *RenderComponent `json:"render,omitempty"`

	// Health - живое существо с запасом здоровья.
	Health *HealthComponent `json:"health,omitempty"`

	// Combat - боевые характеристики. Без него сущность не атакует
	// и защищается "голышом" (нулевая защита, нет уклонения).
	Combat *CombatComponent `json:"combat,omitempty"`

	// Inventory - способность нести предметы.
	Inventory *InventoryComponent `json:"inventory,omitempty"`

	// Hunger - сытость (только у игрока и спутников).
	Hunger *HungerComponent `json:"hunger,omitempty"`

	// Status - способность страдать от статусных эффектов.
	Status *StatusComponent `json:"status,omitempty"`
}

// IsAlive возвращает true для живой сущности с ненулевым здоровьем.
// Сущности без HealthComponent (предметы, лестницы) живыми не считаются.
func (e *Entity) IsAlive() bool {
	return e.Health != nil && !e.Health.IsDead
}

// --- КОМПОНЕНТЫ ---

// RenderComponent - визуализация (клиент).
type RenderComponent struct {
	Symbol string `json:"symbol"` // Символ отображения (g-гоблин, ^-ловушка)
	Color  string `json:"color"`
}

// HealthComponent - здоровье и смерть.
type HealthComponent struct {
	HP     int  `json:"hp"`
	MaxHP  int  `json:"maxHp"`
	IsDead bool `json:"isDead"`
}

// TakeDamage наносит урон. Возвращает true, если сущность погибла.
func (h *HealthComponent) TakeDamage(amount int) bool {
	if h.IsDead {
		return false
	}
	if amount < 0 {
		amount = 0
	}
	h.HP -= amount
	if h.HP <= 0 {
		h.HP = 0
		h.IsDead = true
		return true
	}
	return false
}

// Heal лечит сущность. Трупы не лечатся.
func (h *HealthComponent) Heal(amount int) {
	if h.IsDead {
		return
	}
	h.HP += amount
	if h.HP > h.MaxHP {
		h.HP = h.MaxHP
	}
}

// CombatComponent - боевые характеристики.
type CombatComponent struct {
	Attack  int `json:"attack"`
	Defense int `json:"defense"`

	// Вероятности в [0,1].
	CriticalChance float64 `json:"criticalChance"`
	CriticalResist float64 `json:"criticalResist"`
	EvasionChance  float64 `json:"evasionChance"`
}

// InventoryComponent - переносимые предметы.
// Сущность-предмет живет либо в списке клетки, либо в инвентаре - никогда
// в обоих местах сразу.
type InventoryComponent struct {
	Items    []*Entity `json:"items"`
	MaxSlots int       `json:"maxSlots"`
}

// Add кладет предмет в инвентарь. false - если нет места.
func (inv *InventoryComponent) Add(item *Entity) bool {
	if inv.MaxSlots > 0 && len(inv.Items) >= inv.MaxSlots {
		return false
	}
	inv.Items = append(inv.Items, item)
	return true
}

// Remove убирает предмет по ID. false - если предмета нет.
func (inv *InventoryComponent) Remove(itemID string) bool {
	for i, it := range inv.Items {
		if it.ID == itemID {
			inv.Items = append(inv.Items[:i], inv.Items[i+1:]...)
			return true
		}
	}
	return false
}

// HungerComponent - сытость.
type HungerComponent struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

// StatusComponent - активные статусные эффекты сущности, ключ - тип эффекта.
// Инвариант: на один тип - не больше одного экземпляра.
type StatusComponent struct {
	Effects map[StatusEffectType]*StatusEffectInstance `json:"effects"`
}

// NewStatusComponent создает пустой компонент статусов.
func NewStatusComponent() *StatusComponent {
	return &StatusComponent{Effects: make(map[StatusEffectType]*StatusEffectInstance)}
}
