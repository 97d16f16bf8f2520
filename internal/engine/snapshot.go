package engine

import (
	"github.com/teitasan/Dungeon-sub000/internal/domain"
	"github.com/teitasan/Dungeon-sub000/pkg/api"
)

// Символы тайлов для клиента.
var tileSymbols = map[domain.CellType]string{
	domain.CellWall:       "#",
	domain.CellRoom:       ".",
	domain.CellCorridor:   ".",
	domain.CellStairsUp:   "<",
	domain.CellStairsDown: ">",
	domain.CellDoor:       "+",
}

var tileColors = map[domain.CellType]string{
	domain.CellWall:       "#6B7280",
	domain.CellRoom:       "#D1D5DB",
	domain.CellCorridor:   "#9CA3AF",
	domain.CellStairsUp:   "#FFFFFF",
	domain.CellStairsDown: "#FFFFFF",
	domain.CellDoor:       "#B45309",
}

// broadcast рассылает текущий снапшот всем подписчикам.
func (s *GameService) broadcast() {
	s.Hub.Broadcast(s.buildSnapshot("UPDATE"))
}

// buildSnapshot собирает снимок мира для клиента.
// Клиент получает ТОЛЬКО видимые тайлы и сущности; скрытые ловушки
// не покидают сервер никогда.
func (s *GameService) buildSnapshot(msgType string) api.ServerResponse {
	resp := api.ServerResponse{
		Type:       msgType,
		Turn:       s.turn,
		Floor:      s.World.Floor,
		MyEntityID: s.Player.ID,
		Grid:       &api.GridMeta{Width: s.World.Width, Height: s.World.Height},
		Logs:       s.flushLogs(),
	}

	for y := 0; y < s.World.Height; y++ {
		for x := 0; x < s.World.Width; x++ {
			pos := domain.Position{X: x, Y: y}
			if !s.Vision.IsVisible(pos) {
				continue
			}
			cell := s.World.CellAt(pos)

			tile := api.TileView{
				X:          x,
				Y:          y,
				Symbol:     tileSymbols[cell.Type],
				Color:      tileColors[cell.Type],
				IsWalkable: cell.Walkable,
				IsVisible:  true,
			}
			if cell.Trap != nil && cell.Trap.Visible {
				tile.HasTrap = true
				tile.Symbol = "^"
			}
			resp.Map = append(resp.Map, tile)

			for _, e := range cell.Entities {
				resp.Entities = append(resp.Entities, entityView(e))
			}
		}
	}

	return resp
}

// entityView собирает DTO сущности.
func entityView(e *domain.Entity) api.EntityView {
	view := api.EntityView{
		ID:   e.ID,
		Kind: string(e.Kind),
		Name: e.Name,
	}
	view.Pos.X = e.Pos.X
	view.Pos.Y = e.Pos.Y

	if e.Render != nil {
		view.Symbol = e.Render.Symbol
		view.Color = e.Render.Color
	}
	if e.Health != nil {
		view.Stats = &api.StatsView{HP: e.Health.HP, MaxHP: e.Health.MaxHP}
		if e.Combat != nil {
			view.Stats.Attack = e.Combat.Attack
		}
	}
	if e.Status != nil {
		for t := range e.Status.Effects {
			view.Statuses = append(view.Statuses, string(t))
		}
	}
	return view
}
