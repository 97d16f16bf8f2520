package engine

import (
	"time"

	"github.com/teitasan/Dungeon-sub000/internal/domain"
	"github.com/teitasan/Dungeon-sub000/internal/systems"
	"github.com/teitasan/Dungeon-sub000/pkg/dungeon"
)

// Config хранит параметры запуска движка.
type Config struct {
	// Seed - мастер-зерно. От него зависят генерация этажей
	// и все вероятностные броски.
	Seed int64

	// Combat/Traps - константы боевой формулы и ловушек.
	Combat systems.CombatConfig
	Traps  systems.TrapConfig

	// Gen - параметры генерации этажа.
	Gen dungeon.GenerationParams

	// ScentHorizon - сколько ходов запах игрока считается свежим.
	ScentHorizon int

	// MessageLogCap - емкость игрового лога.
	MessageLogCap int
}

// NewConfig создает конфиг по умолчанию (случайный сид).
func NewConfig() Config {
	return Config{
		Seed:          time.Now().UnixNano(),
		Combat:        systems.DefaultCombatConfig(),
		Traps:         systems.DefaultTrapConfig(),
		Gen:           dungeon.DefaultParams(),
		ScentHorizon:  domain.ScentHorizonDefault,
		MessageLogCap: 200,
	}
}
