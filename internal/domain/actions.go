package domain

import "strings"

// ActionType - внутренний числовой идентификатор действия.
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionInit
	ActionMove
	ActionAttack
	ActionWait
	ActionSearch // поиск ловушек вокруг
	ActionDisarm // обезвреживание ловушки
	ActionDescend
)

// Маппинг для конвертации JSON -> Domain.
var actionStringToCmd = map[string]ActionType{
	"INIT":    ActionInit,
	"MOVE":    ActionMove,
	"ATTACK":  ActionAttack,
	"WAIT":    ActionWait,
	"SEARCH":  ActionSearch,
	"DISARM":  ActionDisarm,
	"DESCEND": ActionDescend,
}

// Маппинг для логов Domain -> String.
var actionCmdToString = map[ActionType]string{
	ActionInit:    "INIT",
	ActionMove:    "MOVE",
	ActionAttack:  "ATTACK",
	ActionWait:    "WAIT",
	ActionSearch:  "SEARCH",
	ActionDisarm:  "DISARM",
	ActionDescend: "DESCEND",
}

// ParseAction конвертирует строку из JSON в ActionType.
func ParseAction(s string) ActionType {
	// Нечувствительно к регистру для надежности.
	if val, ok := actionStringToCmd[strings.ToUpper(s)]; ok {
		return val
	}
	return ActionUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf).
func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}
