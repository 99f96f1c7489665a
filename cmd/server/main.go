package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prakriti/internal/ayurveda"
	"github.com/prakriti/internal/config"
	"github.com/prakriti/internal/db"
	"github.com/prakriti/internal/logger"
	"github.com/prakriti/internal/router"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(cfg.DatabaseDriver, cfg.DatabaseTarget()); err != nil {
		logger.Error("failed to initialize database", "driver", cfg.DatabaseDriver, "error", err)
		os.Exit(1)
	}

	if err := db.EnsurePatient("Demo Patient", cfg.DemoPatientEmail, cfg.DemoPatientPassword); err != nil {
		logger.Error("failed to ensure demo patient", "error", err)
		os.Exit(1)
	}

	kb, err := ayurveda.LoadKnowledge(cfg.FoodDataPath)
	if err != nil {
		logger.Error("failed to load food data", "path", cfg.FoodDataPath, "error", err)
		os.Exit(1)
	}

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(cfg, kb)
	logger.Info("server starting", "addr", cfg.ListenAddr, "foods", len(kb.Foods()))
	if err := r.Run(cfg.ListenAddr); err != nil {
		logger.Error("failed to run server", "error", err)
		os.Exit(1)
	}
}
