package domain

// Стоимость действий в тиках (Time Units).
// Очередь ходов выдает ход сущности с минимальным NextActionTick.
const (
	TimeCostMove   = 100
	TimeCostAttack = 100
	TimeCostWait   = 50
	TimeCostDisarm = 120
	TimeCostSearch = 80
)

// Параметры восприятия.
const (
	// ScentHorizonDefault - сколько ходов запах игрока считается свежим.
	ScentHorizonDefault = 30
)
