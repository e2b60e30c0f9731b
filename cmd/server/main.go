package main

import (
	"log"

	"github.com/campusfront/internal/config"
	"github.com/campusfront/internal/db"
	"github.com/campusfront/internal/handler"
	"github.com/campusfront/internal/router"
	"github.com/campusfront/internal/seed"
)

func main() {
	// 配置错误必须在启动时爆出来，否则所有读取都会静默降级
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// 初始化本地内容库
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// 首次运行时写入内置示例内容
	if err := seed.Apply(db.DB); err != nil {
		log.Fatalf("failed to seed database: %v", err)
	}

	// 根据环境变量创建初始编辑账号
	if err := db.EnsureUser(cfg.RootEditorUsername, cfg.RootEditorPassword); err != nil {
		log.Fatalf("failed to ensure editor account: %v", err)
	}

	if cfg.RemoteConfigured() {
		log.Printf("remote content service: %s", cfg.RemoteContentURL)
	} else {
		log.Printf("no remote content service configured, running disconnected")
	}

	// 设置并运行 Gin 服务器
	api := handler.NewAPI(cfg, db.DB)
	r := router.SetupRouter(cfg, api)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
