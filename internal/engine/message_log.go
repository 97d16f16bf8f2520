package engine

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/teitasan/Dungeon-sub000/pkg/api"
	"github.com/teitasan/Dungeon-sub000/pkg/logger"
)

// Типы записей игрового лога.
const (
	LogTypeInfo   = "INFO"
	LogTypeCombat = "COMBAT"
	LogTypeTrap   = "TRAP"
	LogTypeStatus = "STATUS"
	LogTypeError  = "ERROR"
)

// pushLog добавляет запись в игровой лог.
// Лог ограничен по емкости: старые записи вытесняются.
func (s *GameService) pushLog(text, logType string) {
	entry := api.LogEntry{
		ID:        fmt.Sprintf("%d_%d", s.turn, time.Now().UnixNano()),
		Text:      text,
		Type:      logType,
		Timestamp: time.Now().UnixMilli(),
	}

	s.logs = append(s.logs, entry)
	if s.cfg.MessageLogCap > 0 && len(s.logs) > s.cfg.MessageLogCap {
		s.logs = s.logs[len(s.logs)-s.cfg.MessageLogCap:]
	}
	s.pendingLogs = append(s.pendingLogs, entry)

	logger.Log.WithFields(logrus.Fields{
		"component": "game_log",
		"log_type":  logType,
		"turn":      s.turn,
	}).Info(text)
}

// flushLogs возвращает накопленные с прошлого снапшота записи и очищает буфер.
func (s *GameService) flushLogs() []api.LogEntry {
	out := s.pendingLogs
	s.pendingLogs = nil
	return out
}

// Logs возвращает весь ограниченный игровой лог (от старых к новым).
func (s *GameService) Logs() []api.LogEntry {
	return s.logs
}
