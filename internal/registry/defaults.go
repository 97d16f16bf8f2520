package registry

import "github.com/teitasan/Dungeon-sub000/internal/domain"

// Типы ловушек стандартного набора.
const (
	TrapSpike      domain.TrapType = "spike"
	TrapPoisonDart domain.TrapType = "poison_dart"
	TrapSnare      domain.TrapType = "snare"
	TrapAlarm      domain.TrapType = "alarm"
)

// Типы статусов стандартного набора.
const (
	StatusPoison    domain.StatusEffectType = "poison"
	StatusParalysis domain.StatusEffectType = "paralysis"
	StatusSnared    domain.StatusEffectType = "snared"
	StatusRegen     domain.StatusEffectType = "regeneration"
	StatusConfusion domain.StatusEffectType = "confusion"
)

// Default возвращает реестр со стандартным набором шаблонов.
// В бою и генерации участвуют только зарегистрированные здесь шаблоны;
// запрос чего-либо вне набора - фатальная ошибка конфигурации.
func Default() *Registry {
	r := New()

	// --- МОНСТРЫ ---

	r.RegisterMonster(MonsterTemplate{
		ID:     "goblin",
		Name:   "Хитрый Гоблин",
		Symbol: "g",
		Color:  "#22C55E",
		HP:     15, Attack: 4, Defense: 1,
		CriticalChance: 0.05,
		EvasionChance:  0.10,
	})
	r.RegisterMonster(MonsterTemplate{
		ID:     "orc",
		Name:   "Свирепый Орк",
		Symbol: "O",
		Color:  "#DC2626",
		HP:     30, Attack: 7, Defense: 3,
		CriticalChance: 0.08,
		CriticalResist: 0.10,
	})
	r.RegisterMonster(MonsterTemplate{
		ID:     "rat",
		Name:   "Пещерная Крыса",
		Symbol: "r",
		Color:  "#A8A29E",
		HP:     6, Attack: 2,
		EvasionChance: 0.20,
	})

	// --- ПРЕДМЕТЫ ---

	r.RegisterItem(ItemTemplate{
		ID: "potion_small", Name: "Малое зелье", Symbol: "!", Color: "#F472B6", Category: "potion",
	})
	r.RegisterItem(ItemTemplate{
		ID: "bread", Name: "Черствый хлеб", Symbol: "%", Color: "#D6A35C", Category: "food",
	})

	// --- ЛОВУШКИ ---

	r.RegisterTrap(TrapTemplate{
		Type:             TrapSpike,
		Name:             "Шипы",
		ActivationChance: 0.85,
		Reusable:         false,
		Effects: []TrapEffect{
			{Chance: 1.0, Damage: 6, Message: "Из пола выстреливают шипы!"},
		},
	})
	r.RegisterTrap(TrapTemplate{
		Type:             TrapPoisonDart,
		Name:             "Отравленный дротик",
		ActivationChance: 0.75,
		Reusable:         false,
		Effects: []TrapEffect{
			{Chance: 1.0, Damage: 2, Message: "Из стены вылетает дротик!"},
			{Chance: 0.6, Status: StatusPoison, Message: "Яд растекается по венам."},
		},
	})
	r.RegisterTrap(TrapTemplate{
		Type:             TrapSnare,
		Name:             "Силок",
		ActivationChance: 0.8,
		Reusable:         true,
		Effects: []TrapEffect{
			{Chance: 1.0, Status: StatusSnared, Message: "Нога застревает в силке!"},
		},
	})
	r.RegisterTrap(TrapTemplate{
		Type:             TrapAlarm,
		Name:             "Сигнальная ловушка",
		ActivationChance: 0.95,
		Reusable:         true,
		Effects: []TrapEffect{
			{Chance: 1.0, Message: "Раздается пронзительный звон!"},
		},
	})

	// --- СТАТУСЫ ---

	r.RegisterStatus(StatusTemplate{
		Type:             StatusPoison,
		Name:             "Отравление",
		Stackable:        true,
		MaxDuration:      10,
		RecoveryBase:     0.1,
		RecoveryIncrease: 0.05,
		RecoveryMax:      0.8,
		Actions: []EffectAction{
			{Kind: domain.EffectActionDamage, Timing: domain.TimingTurnEnd, Chance: 1.0, Power: 2, Message: "Яд разъедает тело."},
		},
	})
	r.RegisterStatus(StatusTemplate{
		Type:             StatusParalysis,
		Name:             "Паралич",
		Stackable:        false,
		MaxDuration:      5,
		RecoveryBase:     0.2,
		RecoveryIncrease: 0.15,
		RecoveryMax:      0.9,
		Actions: []EffectAction{
			{Kind: domain.EffectActionPrevent, Timing: domain.TimingBeforeAction, Chance: 1.0, Message: "Тело не слушается!"},
		},
	})
	r.RegisterStatus(StatusTemplate{
		Type:             StatusSnared,
		Name:             "Силок",
		Stackable:        false,
		MaxDuration:      4,
		RecoveryBase:     0.3,
		RecoveryIncrease: 0.2,
		RecoveryMax:      0.95,
		Actions: []EffectAction{
			{Kind: domain.EffectActionMoveRestrict, Timing: domain.TimingBeforeAction, Chance: 1.0, Message: "Силок не дает сдвинуться с места."},
		},
	})
	r.RegisterStatus(StatusTemplate{
		Type:             StatusRegen,
		Name:             "Регенерация",
		Stackable:        true,
		MaxDuration:      8,
		RecoveryBase:     0.0,
		RecoveryIncrease: 0.0,
		RecoveryMax:      0.0,
		Actions: []EffectAction{
			{Kind: domain.EffectActionHeal, Timing: domain.TimingTurnStart, Chance: 1.0, Power: 2},
		},
	})
	r.RegisterStatus(StatusTemplate{
		Type:             StatusConfusion,
		Name:             "Замешательство",
		Stackable:        false,
		MaxDuration:      6,
		RecoveryBase:     0.15,
		RecoveryIncrease: 0.1,
		RecoveryMax:      0.85,
		Actions: []EffectAction{
			{Kind: domain.EffectActionRandomAction, Timing: domain.TimingBeforeAction, Chance: 0.5, Message: "Голова идет кругом..."},
		},
	})

	return r
}
