package systems

import (
	"github.com/teitasan/Dungeon-sub000/internal/domain"
	"github.com/teitasan/Dungeon-sub000/pkg/logger"
)

// AIDecision - решение монстра на его ход.
type AIDecision struct {
	Action domain.ActionType
	Target *domain.Entity  // цель атаки (для ActionAttack)
	Step   domain.Position // следующая клетка (для ActionMove)
}

// ComputeMonsterAction решает, что делать монстру.
//
// Приоритеты: игрок рядом - атаковать; игрок в той же комнате - идти к нему
// по кратчайшему пути; иначе идти на свежайший след запаха, если он есть.
// Во всех остальных случаях - ждать.
func ComputeMonsterAction(monster, player *domain.Entity, d *domain.Dungeon, vision *VisionTracker, turn, scentHorizon int) AIDecision {
	aiLogger := logger.Component("ai_system").WithField("monster", monster.Name)

	if !monster.IsAlive() || player == nil || !player.IsAlive() {
		return AIDecision{Action: domain.ActionWait}
	}

	// В упор - бьем.
	if monster.Pos.IsAdjacent(player.Pos) {
		aiLogger.Debug("Player adjacent. Action: ATTACK")
		return AIDecision{Action: domain.ActionAttack, Target: player}
	}

	// Видим игрока (одна комната) - преследуем напрямую.
	if d.SameRoom(monster.Pos, player.Pos) {
		if step, ok := NextStep(d, monster.Pos, player.Pos, true); ok && d.CanEnter(step, monster) {
			aiLogger.Debug("Player in same room. Action: MOVE")
			return AIDecision{Action: domain.ActionMove, Step: step}
		}
	}

	// Не видим - идем по запаху.
	if pos, ok := vision.FreshestScent(turn, scentHorizon); ok && !pos.Equals(monster.Pos) {
		if step, ok := NextStep(d, monster.Pos, pos, true); ok && d.CanEnter(step, monster) {
			aiLogger.Debug("Following scent trail. Action: MOVE")
			return AIDecision{Action: domain.ActionMove, Step: step}
		}
	}

	return AIDecision{Action: domain.ActionWait}
}
