package systems

import (
	"github.com/teitasan/Dungeon-sub000/internal/domain"
)

// FindPath ищет кратчайший путь поиском в ширину по графу соседства.
// Граф невзвешенный (стоимость шага 1), возвращается первый найденный
// кратчайший путь в порядке раскрытия вершин, включая start и goal.
// Пустой срез - цель недостижима.
//
// Диагональные шаги подчиняются запрету "срезания углов": шаг по диагонали
// допустим, только если обе боковые ортогональные клетки проходимы
// (проверка внутри Dungeon.Neighbors).
func FindPath(d *domain.Dungeon, start, goal domain.Position, diagonal bool) []domain.Position {
	if !d.IsWalkable(goal) || !d.InBounds(start) {
		return nil
	}
	if start.Equals(goal) {
		return []domain.Position{start}
	}

	startIdx := d.Index(start.X, start.Y)

	// prev хранит индекс предыдущей клетки пути; -1 - не посещено.
	prev := make([]int, d.Width*d.Height)
	for i := range prev {
		prev[i] = -1
	}
	prev[startIdx] = startIdx

	queue := []domain.Position{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, n := range d.Neighbors(cur, diagonal) {
			nIdx := d.Index(n.X, n.Y)
			if prev[nIdx] != -1 {
				continue
			}
			prev[nIdx] = d.Index(cur.X, cur.Y)

			if n.Equals(goal) {
				return reconstructPath(d, prev, startIdx, nIdx)
			}
			queue = append(queue, n)
		}
	}

	return nil
}

// reconstructPath разворачивает цепочку prev от цели к старту.
func reconstructPath(d *domain.Dungeon, prev []int, startIdx, goalIdx int) []domain.Position {
	var reversed []domain.Position
	for idx := goalIdx; ; idx = prev[idx] {
		reversed = append(reversed, domain.Position{X: idx % d.Width, Y: idx / d.Width})
		if idx == startIdx {
			break
		}
	}

	path := make([]domain.Position, len(reversed))
	for i, p := range reversed {
		path[len(reversed)-1-i] = p
	}
	return path
}

// NextStep возвращает первый шаг кратчайшего пути к цели
// и false, если цель недостижима.
func NextStep(d *domain.Dungeon, from, to domain.Position, diagonal bool) (domain.Position, bool) {
	path := FindPath(d, from, to, diagonal)
	if len(path) < 2 {
		return domain.Position{}, false
	}
	return path[1], true
}
