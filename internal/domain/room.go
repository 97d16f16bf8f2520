package domain

// Room - прямоугольная комната этажа.
// Инвариант: комнаты не пересекаются; каждая клетка типа CellRoom
// принадлежит ровно одной комнате.
type Room struct {
	ID     int `json:"id"`
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Contains проверяет, попадает ли позиция в прямоугольник комнаты.
func (r Room) Contains(p Position) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Center возвращает центр комнаты.
func (r Room) Center() Position {
	return Position{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Intersects проверяет пересечение с другой комнатой
// (включая касание стенами, чтобы между комнатами оставался зазор).
func (r Room) Intersects(other Room) bool {
	return r.X <= other.X+other.Width && r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height && r.Y+r.Height >= other.Y
}

// CellPositions перечисляет все позиции внутри комнаты построчно.
func (r Room) CellPositions() []Position {
	out := make([]Position, 0, r.Width*r.Height)
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			out = append(out, Position{X: x, Y: y})
		}
	}
	return out
}

// PerimeterPositions перечисляет клетки по периметру комнаты.
func (r Room) PerimeterPositions() []Position {
	var out []Position
	for x := r.X; x < r.X+r.Width; x++ {
		out = append(out, Position{X: x, Y: r.Y})
		if r.Height > 1 {
			out = append(out, Position{X: x, Y: r.Y + r.Height - 1})
		}
	}
	for y := r.Y + 1; y < r.Y+r.Height-1; y++ {
		out = append(out, Position{X: r.X, Y: y})
		if r.Width > 1 {
			out = append(out, Position{X: r.X + r.Width - 1, Y: y})
		}
	}
	return out
}
