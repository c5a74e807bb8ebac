package main

import (
	"context"
	"log"

	"github.com/raulfrk/Dietor/config"
	"github.com/raulfrk/Dietor/routes"
	"github.com/raulfrk/Dietor/services"
	"github.com/raulfrk/Dietor/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	stores := storage.NewManager(cfg.DataDir)

	backups, err := services.NewBackupService(context.Background(), cfg.S3Bucket, cfg.S3Region)
	if err != nil {
		log.Fatalf("init backup service: %v", err)
	}

	r := routes.SetupRouter(cfg, stores, backups)
	log.Printf("listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("run server: %v", err)
	}
}
