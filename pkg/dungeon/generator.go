// Package dungeon - генератор этажей: комнаты, коридоры, лестницы,
// ловушки и спавн монстров. Движок трактует генератор как внешнего
// коллаборатора: он выдает готовый domain.Dungeon целиком, а дальше
// этаж мутируется только через собственный API.
package dungeon

import (
	"fmt"
	"sort"

	"github.com/teitasan/Dungeon-sub000/internal/domain"
	"github.com/teitasan/Dungeon-sub000/internal/registry"
	"github.com/teitasan/Dungeon-sub000/pkg/logger"
	"github.com/teitasan/Dungeon-sub000/pkg/rng"
)

// GenerationParams - параметры генерации этажа.
type GenerationParams struct {
	Width  int
	Height int

	MaxRooms    int
	MinRoomSize int
	MaxRoomSize int

	// TrapChance - вероятность ловушки в комнате (кроме стартовой).
	TrapChance float64

	// MonsterChance - вероятность монстра в комнате (кроме стартовой).
	MonsterChance float64
}

// DefaultParams возвращает параметры по умолчанию.
func DefaultParams() GenerationParams {
	return GenerationParams{
		Width:         45,
		Height:        45,
		MaxRooms:      8,
		MinRoomSize:   4,
		MaxRoomSize:   10,
		TrapChance:    0.4,
		MonsterChance: 0.7,
	}
}

// Generate создает новый этаж.
// Все случайные решения идут через переданный источник: при одинаковом
// сиде этаж воспроизводится бит в бит.
func Generate(params GenerationParams, floor int, rand rng.Source, reg *registry.Registry) (*domain.Dungeon, error) {
	genLogger := logger.Component("generator").WithField("floor", floor)

	d := domain.NewDungeon(fmt.Sprintf("Подземелье, этаж %d", floor), floor, params.Width, params.Height)

	// 1. Генерируем непересекающиеся комнаты.
	for i := 0; i < params.MaxRooms; i++ {
		w := randRange(rand, params.MinRoomSize, params.MaxRoomSize)
		h := randRange(rand, params.MinRoomSize, params.MaxRoomSize)
		x := randRange(rand, 1, params.Width-w-1)
		y := randRange(rand, 1, params.Height-h-1)

		newRoom := domain.Room{ID: len(d.Rooms), X: x, Y: y, Width: w, Height: h}

		failed := false
		for _, other := range d.Rooms {
			if newRoom.Intersects(other) {
				failed = true
				break
			}
		}
		if failed {
			continue
		}

		carveRoom(d, newRoom)

		if len(d.Rooms) > 0 {
			// Соединяем с предыдущей комнатой L-образным коридором.
			prev := d.Rooms[len(d.Rooms)-1].Center()
			curr := newRoom.Center()
			if rand.Intn(2) == 0 {
				carveHCorridor(d, prev.X, curr.X, prev.Y)
				carveVCorridor(d, prev.Y, curr.Y, curr.X)
			} else {
				carveVCorridor(d, prev.Y, curr.Y, prev.X)
				carveHCorridor(d, prev.X, curr.X, curr.Y)
			}
		}
		d.Rooms = append(d.Rooms, newRoom)
	}

	if len(d.Rooms) == 0 {
		return nil, fmt.Errorf("dungeon: generation produced no rooms (%dx%d)", params.Width, params.Height)
	}

	// 2. Лестницы и точка спавна.
	first := d.Rooms[0]
	last := d.Rooms[len(d.Rooms)-1]

	up := first.Center()
	down := last.Center()
	if down.Equals(up) {
		// Единственная комната: разводим лестницы по разным клеткам.
		down = up.Shift(-1, 0)
	}
	d.CellAt(up).SetType(domain.CellStairsUp)
	d.CellAt(down).SetType(domain.CellStairsDown)
	d.StairsUp = up
	d.StairsDown = down

	// Спавним рядом с лестницей вверх, но на комнатной клетке.
	d.PlayerSpawn = up.Shift(1, 0)

	// 3. Ловушки и монстры (во всех комнатах, кроме стартовой).
	monsterIDs := reg.MonsterIDs()
	sort.Strings(monsterIDs) // порядок мапы случаен, а генерация должна быть детерминированной

	for i := 1; i < len(d.Rooms); i++ {
		room := d.Rooms[i]

		if rand.Float64() < params.TrapChance {
			if err := placeTrap(d, room, rand, reg); err != nil {
				return nil, err
			}
		}

		if len(monsterIDs) > 0 && rand.Float64() < params.MonsterChance {
			id := monsterIDs[rand.Intn(len(monsterIDs))]
			monster, err := reg.SpawnMonster(id)
			if err != nil {
				// Незарегистрированный шаблон - фатальная ошибка конфигурации.
				return nil, err
			}
			pos := randomRoomCell(room, rand)
			if !d.AddEntity(monster, pos) {
				// Центр комнаты проходим всегда.
				d.AddEntity(monster, room.Center())
			}
		}
	}

	genLogger.WithField("rooms", len(d.Rooms)).Info("Floor generated.")
	return d, nil
}

// carveRoom вырезает комнату в стенах.
func carveRoom(d *domain.Dungeon, r domain.Room) {
	for _, p := range r.CellPositions() {
		d.CellAt(p).SetType(domain.CellRoom)
	}
}

// carveHCorridor вырезает горизонтальный коридор.
// Клетки комнат не перезаписываются: коридором становятся только стены.
func carveHCorridor(d *domain.Dungeon, x1, x2, y int) {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		carveCorridorCell(d, domain.Position{X: x, Y: y})
	}
}

// carveVCorridor вырезает вертикальный коридор.
func carveVCorridor(d *domain.Dungeon, y1, y2, x int) {
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		carveCorridorCell(d, domain.Position{X: x, Y: y})
	}
}

func carveCorridorCell(d *domain.Dungeon, p domain.Position) {
	if c := d.CellAt(p); c != nil && c.Type == domain.CellWall {
		c.SetType(domain.CellCorridor)
	}
}

// placeTrap кладет случайную ловушку на случайную клетку комнаты.
func placeTrap(d *domain.Dungeon, room domain.Room, rand rng.Source, reg *registry.Registry) error {
	types := reg.TrapTypes()
	if len(types) == 0 {
		return nil
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	typ := types[rand.Intn(len(types))]
	if _, err := reg.Trap(typ); err != nil {
		return err
	}

	pos := randomRoomCell(room, rand)
	c := d.CellAt(pos)
	if c == nil || !c.Walkable || c.Trap != nil || c.Type != domain.CellRoom {
		return nil // неудачная клетка - этаж просто остается без этой ловушки
	}
	c.Trap = domain.NewTrap(typ)
	return nil
}

// randomRoomCell возвращает случайную позицию внутри комнаты.
func randomRoomCell(room domain.Room, rand rng.Source) domain.Position {
	return domain.Position{
		X: room.X + rand.Intn(room.Width),
		Y: room.Y + rand.Intn(room.Height),
	}
}

func randRange(rand rng.Source, min, max int) int {
	if max <= min {
		return min
	}
	return min + rand.Intn(max-min+1)
}
