package domain

// StatusEffectType - тип статусного эффекта ("poison", "paralysis"...).
type StatusEffectType string

// EffectTiming - фаза хода, в которую срабатывает действие эффекта.
type EffectTiming string

const (
	TimingTurnStart    EffectTiming = "TURN_START"
	TimingTurnEnd      EffectTiming = "TURN_END"
	TimingBeforeAction EffectTiming = "BEFORE_ACTION"
	TimingAfterAction  EffectTiming = "AFTER_ACTION"
	TimingOnAttack     EffectTiming = "ON_ATTACK"
	TimingOnDefend     EffectTiming = "ON_DEFEND"
)

// EffectActionKind - что именно делает действие эффекта.
type EffectActionKind string

const (
	EffectActionDamage       EffectActionKind = "DAMAGE"
	EffectActionHeal         EffectActionKind = "HEAL"
	EffectActionPrevent      EffectActionKind = "PREVENT_ACTION"
	EffectActionRandomAction EffectActionKind = "RANDOM_ACTION"
	EffectActionStatModifier EffectActionKind = "STAT_MODIFIER"
	EffectActionMoveRestrict EffectActionKind = "MOVEMENT_RESTRICTION"
)

// StatusEffectInstance - один активный эффект на сущности.
// Принадлежит пораженной сущности; уничтожается при восстановлении
// или истечении срока.
type StatusEffectInstance struct {
	Type StatusEffectType `json:"type"`

	// TurnsElapsed - сколько полных ходов эффект уже висит.
	TurnsElapsed int `json:"turnsElapsed"`

	// Intensity - сила эффекта. Растет при повторном наложении
	// стакающихся типов; минимальное значение 1.
	Intensity int `json:"intensity"`

	// Source - кто наложил (ID сущности или тип ловушки). Опционально.
	Source string `json:"source,omitempty"`
}
