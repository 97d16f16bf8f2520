package domain

import (
	"github.com/sirupsen/logrus"

	"github.com/teitasan/Dungeon-sub000/pkg/logger"
)

// Мутационный и запросный API этажа.
//
// Единственный источник правды о местонахождении сущности - список Entities
// клетки. Поле Pos сущности - синхронизируемый кэш, который пишется только
// здесь, вместе с правкой списка.

// CellAt возвращает клетку или nil для позиции за границами.
// Никогда не паникует на некорректном входе.
func (d *Dungeon) CellAt(p Position) *Cell {
	if !d.InBounds(p) {
		return nil
	}
	return &d.Cells[d.Index(p.X, p.Y)]
}

// IsWalkable возвращает false для стен и позиций за границами.
func (d *Dungeon) IsWalkable(p Position) bool {
	c := d.CellAt(p)
	return c != nil && c.Walkable
}

// IsTransparent возвращает false для непрозрачных клеток и позиций за границами.
func (d *Dungeon) IsTransparent(p Position) bool {
	c := d.CellAt(p)
	return c != nil && c.Transparent
}

// EntitiesAt возвращает сущности на клетке (nil за границами).
func (d *Dungeon) EntitiesAt(p Position) []*Entity {
	c := d.CellAt(p)
	if c == nil {
		return nil
	}
	return c.Entities
}

// AddEntity ставит сущность на клетку.
// Возвращает false без каких-либо мутаций, если клетка за границами
// или непроходима. При успехе дописывает сущность в список клетки
// и записывает позицию обратно в сущность.
func (d *Dungeon) AddEntity(e *Entity, p Position) bool {
	c := d.CellAt(p)
	if c == nil || !c.Walkable {
		return false
	}
	c.Entities = append(c.Entities, e)
	e.Pos = p
	return true
}

// RemoveEntity убирает сущность с этажа.
//
// Порядок попыток:
//  1. удаление по тождеству указателя в клетке, на которую указывает e.Pos;
//  2. удаление по совпадению ID в той же клетке;
//  3. полный скан этажа по ID - последняя линия обороны на случай
//     рассинхронизации позиции. В нормальной работе недостижима, поэтому
//     срабатывание пишется в лог как аномалия (но не считается фатальным).
func (d *Dungeon) RemoveEntity(e *Entity) bool {
	if c := d.CellAt(e.Pos); c != nil {
		// 1. По тождеству указателя
		for i, other := range c.Entities {
			if other == e {
				c.Entities = append(c.Entities[:i], c.Entities[i+1:]...)
				return true
			}
		}
		// 2. По ID в той же клетке
		for i, other := range c.Entities {
			if other.ID == e.ID {
				c.Entities = append(c.Entities[:i], c.Entities[i+1:]...)
				return true
			}
		}
	}

	// 3. Полный скан
	for i := range d.Cells {
		c := &d.Cells[i]
		for j, other := range c.Entities {
			if other.ID == e.ID {
				logger.Component("world").WithFields(logrus.Fields{
					"entity_id":  e.ID,
					"cached_pos": e.Pos,
					"actual_pos": c.Pos,
				}).Warn("Entity position desync detected; removed via full-floor scan.")
				c.Entities = append(c.Entities[:j], c.Entities[j+1:]...)
				return true
			}
		}
	}
	return false
}

// CanEnter проверяет, может ли mover войти на клетку: клетка проходима
// и не занята другой живой сущностью.
func (d *Dungeon) CanEnter(p Position, mover *Entity) bool {
	c := d.CellAt(p)
	if c == nil || !c.Walkable {
		return false
	}
	for _, other := range c.Entities {
		if other == mover {
			continue
		}
		if other.IsAlive() {
			return false
		}
	}
	return true
}

// MoveEntity переносит сущность на новую клетку (снять + поставить).
// Атомарность: все проверки выполняются ДО мутаций, при непригодной
// цели сущность остается на исходной клетке нетронутой.
func (d *Dungeon) MoveEntity(e *Entity, p Position) bool {
	if !d.CanEnter(p, e) {
		return false
	}
	if !d.RemoveEntity(e) {
		return false
	}
	// Цель уже проверена, добавление не может не удаться.
	return d.AddEntity(e, p)
}

// FindEntity ищет сущность по ID полным сканом этажа.
func (d *Dungeon) FindEntity(id string) *Entity {
	for i := range d.Cells {
		for _, e := range d.Cells[i].Entities {
			if e.ID == id {
				return e
			}
		}
	}
	return nil
}

// AllEntities перечисляет все сущности этажа построчно.
func (d *Dungeon) AllEntities() []*Entity {
	var out []*Entity
	for i := range d.Cells {
		out = append(out, d.Cells[i].Entities...)
	}
	return out
}

// Neighbors возвращает проходимых соседей позиции.
// При diagonal=false - только четыре ортогональных направления.
// Диагональный шаг дополнительно требует, чтобы ОБЕ боковые ортогональные
// клетки были проходимы: путь не должен "срезать" угол стены.
func (d *Dungeon) Neighbors(p Position, diagonal bool) []Position {
	out := make([]Position, 0, 8)
	for _, off := range CardinalOffsets {
		n := p.Shift(off.X, off.Y)
		if d.IsWalkable(n) {
			out = append(out, n)
		}
	}
	if !diagonal {
		return out
	}
	for _, off := range DiagonalOffsets {
		n := p.Shift(off.X, off.Y)
		if !d.IsWalkable(n) {
			continue
		}
		side1 := p.Shift(off.X, 0)
		side2 := p.Shift(0, off.Y)
		if d.IsWalkable(side1) && d.IsWalkable(side2) {
			out = append(out, n)
		}
	}
	return out
}

// --- КОМНАТЫ ---

// RoomAt возвращает комнату, которой принадлежит позиция.
// Комната возвращается только для клеток типа CellRoom: коридорная клетка,
// случайно попавшая в прямоугольник комнаты, не считается.
func (d *Dungeon) RoomAt(p Position) *Room {
	c := d.CellAt(p)
	if c == nil || c.Type != CellRoom {
		return nil
	}
	for i := range d.Rooms {
		if d.Rooms[i].Contains(p) {
			return &d.Rooms[i]
		}
	}
	return nil
}

// SameRoom проверяет, лежат ли обе позиции в одной комнате.
func (d *Dungeon) SameRoom(a, b Position) bool {
	ra := d.RoomAt(a)
	rb := d.RoomAt(b)
	return ra != nil && rb != nil && ra.ID == rb.ID
}

// RoomExitPositions перечисляет клетки периметра комнаты, у которых есть
// хотя бы одна ортогонально соседняя коридорная клетка (выходы из комнаты).
func (d *Dungeon) RoomExitPositions(r Room) []Position {
	var out []Position
	for _, p := range r.PerimeterPositions() {
		for _, off := range CardinalOffsets {
			n := p.Shift(off.X, off.Y)
			if c := d.CellAt(n); c != nil && c.Type == CellCorridor {
				out = append(out, p)
				break
			}
		}
	}
	return out
}
