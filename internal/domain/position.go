package domain

// Position - координаты клетки на этаже. (0,0) - левый верхний угол.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Shift возвращает НОВУЮ позицию, сдвинутую на (dx, dy).
// Исходная позиция не меняется.
func (p Position) Shift(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Equals сравнивает две позиции.
func (p Position) Equals(o Position) bool {
	return p.X == o.X && p.Y == o.Y
}

// ChebyshevDistance - расстояние "короля": max(|dx|, |dy|).
// Используется для проверки дистанции атаки (диагонали считаются соседними).
func (p Position) ChebyshevDistance(o Position) int {
	dx := abs(p.X - o.X)
	dy := abs(p.Y - o.Y)
	if dx > dy {
		return dx
	}
	return dy
}

// ManhattanDistance - расстояние по осям: |dx| + |dy|.
func (p Position) ManhattanDistance(o Position) int {
	return abs(p.X-o.X) + abs(p.Y-o.Y)
}

// IsAdjacent возвращает true, если o - одна из восьми соседних клеток.
// Сама клетка соседней НЕ считается.
func (p Position) IsAdjacent(o Position) bool {
	if p.Equals(o) {
		return false
	}
	return p.ChebyshevDistance(o) <= 1
}

// CardinalOffsets - смещения четырех ортогональных направлений.
// Порядок фиксирован (N, E, S, W): от него зависит порядок обхода BFS.
var CardinalOffsets = [4]Position{
	{X: 0, Y: -1},
	{X: 1, Y: 0},
	{X: 0, Y: 1},
	{X: -1, Y: 0},
}

// DiagonalOffsets - смещения четырех диагональных направлений (NE, SE, SW, NW).
var DiagonalOffsets = [4]Position{
	{X: 1, Y: -1},
	{X: 1, Y: 1},
	{X: -1, Y: 1},
	{X: -1, Y: -1},
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
