package domain

// TrapType - тип ловушки ("spike", "poison_dart"...).
type TrapType string

// Trap - состояние ловушки на клетке.
//
// Жизненный цикл: скрыта -> (обнаружена) -> видима -> (сработала) ->
// уничтожена либо остается, если многоразовая. Владелец - ровно одна
// клетка; одноразовая ловушка отцепляется от клетки в момент срабатывания,
// успешное обезвреживание убирает ловушку в любом случае.
type Trap struct {
	ID   string   `json:"id"`
	Type TrapType `json:"type"`

	// Visible - ловушка обнаружена. Обратно в "скрыта" не переходит.
	Visible bool `json:"visible"`

	// Triggered - ловушка уже срабатывала. Для одноразовых ловушек
	// это терминальное состояние: повторные проверки активации не идут.
	Triggered bool `json:"triggered"`
}

// NewTrap создает скрытую несработавшую ловушку.
func NewTrap(t TrapType) *Trap {
	return &Trap{
		ID:   GenerateID(),
		Type: t,
	}
}
