package main

import (
	"flag"
	"os"

	"github.com/teitasan/Dungeon-sub000/internal/engine"
	"github.com/teitasan/Dungeon-sub000/internal/registry"
	"github.com/teitasan/Dungeon-sub000/internal/server"
	"github.com/teitasan/Dungeon-sub000/internal/version"
	"github.com/teitasan/Dungeon-sub000/pkg/logger"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации
	var seed int64
	var port string
	// Флаг -seed. По умолчанию 0 (значит сгенерировать случайно).
	flag.Int64Var(&seed, "seed", 0, "Initial world seed (0 for random)")
	flag.StringVar(&port, "port", "8080", "HTTP port to listen on")
	flag.Parse()

	logger.Log.Info("Starting Dungeon server...")
	logger.Log.Info(version.String())

	cfg := engine.NewConfig()
	if seed != 0 {
		cfg.Seed = seed
		logger.Log.WithField("seed", seed).Info("Using fixed seed")
	}

	// 2. Реестр шаблонов - явная зависимость движка.
	reg := registry.Default()

	// 3. Движок
	gameService, err := engine.NewService(cfg, reg)
	if err != nil {
		// Нерегистрируемый шаблон или провал генерации - фатальная
		// ошибка конфигурации, продолжать нечем.
		logger.Log.Fatal("Failed to initialize game service: ", err)
	}
	go gameService.Run()

	// 4. HTTP/WebSocket сервер
	srv := server.New(gameService, port)
	if err := srv.Run(); err != nil {
		logger.Log.Error("Server stopped: ", err)
		os.Exit(1)
	}
}
