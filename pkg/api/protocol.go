package api

import "encoding/json"

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand - входящее сообщение от клиента.
type ClientCommand struct {
	// Token - ID сущности, от имени которой шлется команда.
	Token string `json:"token,omitempty"`

	// Action - MOVE, ATTACK, WAIT, SEARCH, DISARM, DESCEND...
	Action string `json:"action"`

	Payload json.RawMessage `json:"payload,omitempty"`
}

// DirectionPayload: для WASD-движения.
// Используется в: MOVE.
type DirectionPayload struct {
	Dx int `json:"dx"`
	Dy int `json:"dy"`
}

// EntityPayload: для взаимодействия с конкретным объектом.
// Используется в: ATTACK.
type EntityPayload struct {
	TargetID string `json:"targetId"`
}

// PositionPayload: для действий над клеткой.
// Используется в: DISARM.
type PositionPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// --- СЕРВЕР -> КЛИЕНТ ---

// LogEntry - одна строка игрового лога.
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"` // INFO, COMBAT, TRAP, STATUS, ERROR
	Timestamp int64  `json:"timestamp"`
}

// GridMeta - размеры карты, чтобы клиент подготовил сетку для рендера.
type GridMeta struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// TileView - DTO одного тайла карты.
type TileView struct {
	X int `json:"x"`
	Y int `json:"y"`

	Symbol string `json:"symbol"`
	Color  string `json:"color"`

	IsWalkable bool `json:"isWalkable"`

	// IsVisible - тайл в текущем поле зрения, рендерится ярко.
	IsVisible bool `json:"isVisible"`

	// HasTrap - на тайле ВИДИМАЯ ловушка. Скрытые ловушки клиенту
	// не отдаются никогда.
	HasTrap bool `json:"hasTrap,omitempty"`
}

// StatsView - DTO характеристик сущности.
type StatsView struct {
	HP     int `json:"hp"`
	MaxHP  int `json:"maxHp"`
	Attack int `json:"attack,omitempty"`
}

// EntityView - DTO игровой сущности.
type EntityView struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
	Name string `json:"name"`

	Pos struct {
		X int `json:"x"`
		Y int `json:"y"`
	} `json:"pos"`

	Symbol string `json:"symbol"`
	Color  string `json:"color"`

	// Stats может отсутствовать, если клиент не вправе видеть статы.
	Stats *StatsView `json:"stats,omitempty"`

	// Statuses - типы активных статусных эффектов.
	Statuses []string `json:"statuses,omitempty"`
}

// ServerResponse - корневой объект, "снимок" мира для конкретного клиента.
// Отправляется каждый раз, когда мир продвинулся на ход.
type ServerResponse struct {
	// Type тип сообщения: INIT или UPDATE.
	Type string `json:"type"`

	// Turn текущий номер хода.
	Turn int `json:"turn"`

	// Floor номер этажа.
	Floor int `json:"floor"`

	// MyEntityID - ID сущности, которой управляет этот клиент.
	MyEntityID string `json:"myEntityId,omitempty"`

	Grid *GridMeta `json:"grid,omitempty"`

	// Map - только видимые тайлы.
	Map []TileView `json:"map,omitempty"`

	// Entities - только видимые сущности.
	Entities []EntityView `json:"entities,omitempty"`

	// Logs - новые сообщения с прошлого снимка.
	Logs []LogEntry `json:"logs,omitempty"`
}
