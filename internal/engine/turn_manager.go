package engine

import (
	"container/heap"

	"github.com/teitasan/Dungeon-sub000/internal/domain"
	"github.com/teitasan/Dungeon-sub000/pkg/logger"
)

// TurnManager управляет очередью ходов сущностей.
// Сущности не несут счетчик тиков сами - он живет здесь.
type TurnManager struct {
	queue   TurnQueue
	itemMap map[string]*TurnItem
}

func NewTurnManager() *TurnManager {
	return &TurnManager{
		queue:   make(TurnQueue, 0),
		itemMap: make(map[string]*TurnItem),
	}
}

// AddEntity регистрирует сущность в системе ходов.
func (tm *TurnManager) AddEntity(e *domain.Entity, tick int) {
	if _, ok := tm.itemMap[e.ID]; ok {
		return
	}
	item := &TurnItem{Value: e, Priority: tick}
	heap.Push(&tm.queue, item)
	tm.itemMap[e.ID] = item

	logger.Component("turn_manager").WithField("entity_id", e.ID).Debug("Entity added to TurnManager")
}

// UpdatePriority двигает сущность в очереди (после того, как она сходила).
func (tm *TurnManager) UpdatePriority(entityID string, newTick int) {
	if item, ok := tm.itemMap[entityID]; ok {
		tm.queue.Update(item, newTick)
	}
}

// PeekNext возвращает сущность, чей ход следующий, не снимая ее с очереди.
func (tm *TurnManager) PeekNext() *TurnItem {
	if tm.queue.Len() == 0 {
		return nil
	}
	return tm.queue[0]
}

// Tick возвращает текущий тик сущности и false, если ее нет в очереди.
func (tm *TurnManager) Tick(entityID string) (int, bool) {
	if item, ok := tm.itemMap[entityID]; ok {
		return item.Priority, true
	}
	return 0, false
}

// RemoveEntity убирает сущность из системы ходов (например, смерть).
func (tm *TurnManager) RemoveEntity(entityID string) {
	if item, ok := tm.itemMap[entityID]; ok {
		heap.Remove(&tm.queue, item.Index)
		delete(tm.itemMap, entityID)
	}
}

func (tm *TurnManager) Len() int {
	return tm.queue.Len()
}

// DebugDump возвращает снимок очереди для отладки.
func (tm *TurnManager) DebugDump() []map[string]interface{} {
	// Инициализируем как пустой слайс, а не nil: в JSON это будет "[]", а не "null".
	result := make([]map[string]interface{}, 0)
	for _, item := range tm.queue {
		result = append(result, map[string]interface{}{
			"id":       item.Value.ID,
			"name":     item.Value.Name,
			"priority": item.Priority,
			"index":    item.Index,
		})
	}
	return result
}
