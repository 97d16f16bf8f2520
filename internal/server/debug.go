package server

import (
	"encoding/json"
	"net/http"

	"github.com/teitasan/Dungeon-sub000/internal/engine"
	"github.com/teitasan/Dungeon-sub000/pkg/logger"
)

// DebugHandler предоставляет доступ к внутреннему состоянию движка.
type DebugHandler struct {
	Service *engine.GameService
}

func NewDebugHandler(s *engine.GameService) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты.
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/floor", h.handleFloor)
	mux.HandleFunc("/debug/entities", h.handleDumpEntities)
	mux.HandleFunc("/debug/queue", h.handleTurnQueue)
	mux.HandleFunc("/debug/combatlog", h.handleCombatLog)
}

// /debug/floor - сводка по текущему этажу.
func (h *DebugHandler) handleFloor(w http.ResponseWriter, r *http.Request) {
	world := h.Service.World
	writeJSON(w, map[string]interface{}{
		"floor":       world.Floor,
		"name":        world.Name,
		"width":       world.Width,
		"height":      world.Height,
		"rooms":       len(world.Rooms),
		"entities":    len(world.AllEntities()),
		"turn":        h.Service.Turn(),
		"game_over":   h.Service.GameOver,
		"subscribers": h.Service.Hub.SubscriberCount(),
	})
}

// /debug/entities - дамп всех сущностей этажа (включая скрытые параметры).
func (h *DebugHandler) handleDumpEntities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Service.World.AllEntities())
}

// /debug/queue - снимок очереди ходов.
func (h *DebugHandler) handleTurnQueue(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Service.Turns.DebugDump())
}

// /debug/combatlog - ограниченный боевой журнал.
func (h *DebugHandler) handleCombatLog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Service.Combat.Log())
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.WithError(err).Debug("debug endpoint write failed")
	}
}
