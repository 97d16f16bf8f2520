package domain

// CellType - тип клетки этажа.
type CellType uint8

const (
	CellWall CellType = iota
	CellRoom
	CellCorridor
	CellStairsUp
	CellStairsDown
	CellDoor
)

var cellTypeNames = map[CellType]string{
	CellWall:       "WALL",
	CellRoom:       "ROOM",
	CellCorridor:   "CORRIDOR",
	CellStairsUp:   "STAIRS_UP",
	CellStairsDown: "STAIRS_DOWN",
	CellDoor:       "DOOR",
}

// String реализует Stringer (для логов).
func (t CellType) String() string {
	if name, ok := cellTypeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// DefaultWalkable возвращает проходимость для типа клетки по умолчанию.
func (t CellType) DefaultWalkable() bool {
	return t != CellWall
}

// DefaultTransparent возвращает прозрачность (для линии взгляда) по умолчанию.
// Двери считаются непрозрачными, пока закрыты.
func (t CellType) DefaultTransparent() bool {
	return t != CellWall && t != CellDoor
}

// Cell - одна клетка этажа.
//
// Инвариант занятости: список Entities клетки и поле Pos каждой сущности
// обязаны совпадать. Их синхронно пишут только AddEntity/RemoveEntity/
// MoveEntity на Dungeon - больше никто.
type Cell struct {
	Pos  Position `json:"pos"`
	Type CellType `json:"type"`

	// Walkable и Transparent снимаются с типа при создании клетки,
	// но хранятся отдельно: эффекты могут менять их независимо
	// (открытая дверь, обрушенный пол).
	Walkable    bool `json:"walkable"`
	Transparent bool `json:"transparent"`

	// Entities - сущности, стоящие на клетке, в порядке добавления.
	Entities []*Entity `json:"-"`

	// Trap - ловушка клетки. nil, если ловушки нет.
	// Клетка - единственный владелец ловушки.
	Trap *Trap `json:"-"`
}

// NewCell создает клетку заданного типа с флагами по умолчанию.
func NewCell(pos Position, t CellType) Cell {
	return Cell{
		Pos:         pos,
		Type:        t,
		Walkable:    t.DefaultWalkable(),
		Transparent: t.DefaultTransparent(),
	}
}

// SetType меняет тип клетки и пересчитывает флаги по умолчанию.
func (c *Cell) SetType(t CellType) {
	c.Type = t
	c.Walkable = t.DefaultWalkable()
	c.Transparent = t.DefaultTransparent()
}
