// File: cmd/strata/main.go
package main

import (
	"fmt"
	"log/slog"
	"os"

	"strata/internal/config"
	"strata/internal/logger"

	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is normal; the environment and config file still apply
	_ = godotenv.Load()

	cfgManager, err := config.NewConfigManager()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to initialize configuration:", err)
		os.Exit(1)
	}

	cfg, err := cfgManager.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}

	levelVar := new(slog.LevelVar)
	log, err := logger.NewLogger(logger.Options{
		Level:    cfg.Log.Level,
		Format:   cfg.Log.Format,
		LevelVar: levelVar,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to initialize logger:", err)
		os.Exit(1)
	}

	app, err := newApp(cfgManager, cfg, log, levelVar)
	if err != nil {
		log.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}
	Execute(app)
}
