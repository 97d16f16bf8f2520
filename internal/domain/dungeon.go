package domain

// Dungeon - один этаж подземелья: сетка клеток, список комнат и именованные
// позиции. Создается генератором целиком и заменяется целиком при переходе
// на другой этаж. Снаружи клетки не патчатся - только через мутационный API.
type Dungeon struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Floor int    `json:"floor"`

	Width  int `json:"width"`
	Height int `json:"height"`

	// Cells - плоский массив клеток, индекс y*Width+x.
	Cells []Cell `json:"-"`

	Rooms []Room `json:"rooms"`

	// Именованные позиции этажа.
	PlayerSpawn Position `json:"playerSpawn"`
	StairsUp    Position `json:"stairsUp"`
	StairsDown  Position `json:"stairsDown"`
}

// NewDungeon создает этаж, целиком заполненный стенами.
// Комнаты и коридоры вырезает генератор.
func NewDungeon(name string, floor, width, height int) *Dungeon {
	d := &Dungeon{
		ID:     GenerateID(),
		Name:   name,
		Floor:  floor,
		Width:  width,
		Height: height,
		Cells:  make([]Cell, width*height),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			d.Cells[y*width+x] = NewCell(Position{X: x, Y: y}, CellWall)
		}
	}
	return d
}

// Index возвращает индекс клетки в плоском массиве.
// Вызывающий обязан проверить границы.
func (d *Dungeon) Index(x, y int) int {
	return y*d.Width + x
}

// InBounds проверяет, лежит ли позиция внутри этажа.
func (d *Dungeon) InBounds(p Position) bool {
	return p.X >= 0 && p.X < d.Width && p.Y >= 0 && p.Y < d.Height
}
