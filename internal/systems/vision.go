package systems

import (
	"github.com/teitasan/Dungeon-sub000/internal/domain"
	"github.com/teitasan/Dungeon-sub000/pkg/logger"
)

// VisionTracker отвечает за туман войны и запаховую сетку одного этажа.
//
// Видимость КОМНАТНАЯ, без трассировки лучей: если игрок стоит в комнате,
// видна вся комната плюс восемь клеток вокруг игрока; в коридоре - только
// клетка игрока и восемь соседних.
//
// Результат мемоизируется по номеру хода: повторный вызов EnsureVisible
// с тем же ходом - no-op, с новым ходом - полный пересчет.
type VisionTracker struct {
	dungeon *domain.Dungeon

	// cachedTurn - ход, для которого посчитан visible. -1 - кэш пуст.
	cachedTurn int
	visible    map[int]bool

	// scent[i] - номер хода, когда игрок последний раз стоял на клетке i.
	// 0 означает "никогда".
	scent []int
}

// NewVisionTracker создает трекер для этажа.
func NewVisionTracker(d *domain.Dungeon) *VisionTracker {
	v := &VisionTracker{}
	v.Reset(d)
	return v
}

// Reset привязывает трекер к новому этажу: кэш видимости
// инвалидируется, запаховая сетка выделяется заново по размеру этажа.
func (v *VisionTracker) Reset(d *domain.Dungeon) {
	v.dungeon = d
	v.cachedTurn = -1
	v.visible = make(map[int]bool)
	v.scent = make([]int, d.Width*d.Height)

	logger.Component("vision").WithField("floor", d.Floor).Debug("Vision tracker reset for new floor.")
}

// EnsureVisible пересчитывает множество видимых клеток для хода turn.
// Если кэш уже посчитан для этого хода, ничего не делает.
func (v *VisionTracker) EnsureVisible(playerPos domain.Position, turn int) {
	if v.cachedTurn == turn {
		return
	}

	v.visible = make(map[int]bool)
	v.cachedTurn = turn

	// Клетка игрока и 8-окрестность видны всегда.
	v.markIfInBounds(playerPos)
	for _, off := range domain.CardinalOffsets {
		v.markIfInBounds(playerPos.Shift(off.X, off.Y))
	}
	for _, off := range domain.DiagonalOffsets {
		v.markIfInBounds(playerPos.Shift(off.X, off.Y))
	}

	// В комнате видна вся комната.
	if room := v.dungeon.RoomAt(playerPos); room != nil {
		for _, p := range room.CellPositions() {
			v.markIfInBounds(p)
		}
	}
}

func (v *VisionTracker) markIfInBounds(p domain.Position) {
	if v.dungeon.InBounds(p) {
		v.visible[v.dungeon.Index(p.X, p.Y)] = true
	}
}

// IsVisible проверяет, видна ли клетка на последнем посчитанном ходу.
func (v *VisionTracker) IsVisible(p domain.Position) bool {
	if !v.dungeon.InBounds(p) {
		return false
	}
	return v.visible[v.dungeon.Index(p.X, p.Y)]
}

// VisibleCount возвращает размер текущего множества видимых клеток.
func (v *VisionTracker) VisibleCount() int {
	return len(v.visible)
}

// --- ЗАПАХ ---

// SetScent штампует клетку номером хода, когда на ней стоял игрок.
func (v *VisionTracker) SetScent(p domain.Position, turn int) {
	if !v.dungeon.InBounds(p) {
		return
	}
	v.scent[v.dungeon.Index(p.X, p.Y)] = turn
}

// IsScentFresh: true, если клетка когда-либо была помечена
// и с тех пор прошло не больше horizon ходов.
func (v *VisionTracker) IsScentFresh(p domain.Position, now, horizon int) bool {
	if !v.dungeon.InBounds(p) {
		return false
	}
	stamp := v.scent[v.dungeon.Index(p.X, p.Y)]
	return stamp != 0 && now-stamp <= horizon
}

// FreshestScent сканирует всю сетку и возвращает позицию с максимальным
// штампом, удовлетворяющим горизонту. false - свежего запаха нет.
//
// При равных штампах побеждает первая найденная клетка построчного скана.
// Это деталь реализации, а не семантика: на порядок полагаться нельзя.
func (v *VisionTracker) FreshestScent(now, horizon int) (domain.Position, bool) {
	best := 0
	var bestPos domain.Position
	for i, stamp := range v.scent {
		if stamp == 0 || now-stamp > horizon {
			continue
		}
		if stamp > best {
			best = stamp
			bestPos = domain.Position{X: i % v.dungeon.Width, Y: i / v.dungeon.Width}
		}
	}
	if best == 0 {
		return domain.Position{}, false
	}
	return bestPos, true
}
