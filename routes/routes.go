package routes

import (
	"github.com/raulfrk/Dietor/config"
	"github.com/raulfrk/Dietor/controllers"
	"github.com/raulfrk/Dietor/middlewares"
	"github.com/raulfrk/Dietor/services"
	"github.com/raulfrk/Dietor/storage"

	"github.com/gin-gonic/gin"
)

func SetupRouter(cfg *config.Config, stores *storage.Manager, backups *services.BackupService) *gin.Engine {
	r := gin.Default()

	cycleCtl := controllers.NewCycleController(stores)
	entryCtl := controllers.NewEntryController(stores)
	statsCtl := controllers.NewStatsController(stores)
	backupCtl := controllers.NewBackupController(stores, backups)

	api := r.Group("/")
	api.Use(middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		cycles := api.Group("/cycles")
		{
			cycles.POST("", cycleCtl.Open)
			cycles.GET("", cycleCtl.List)
			cycles.GET("/current", cycleCtl.Current)
			cycles.POST("/current/close", cycleCtl.Close)
			cycles.GET("/at", cycleCtl.At)
			cycles.DELETE("/:id", cycleCtl.Delete)
		}

		entries := api.Group("/entries")
		{
			entries.POST("/:kind", entryCtl.Create)
			entries.PUT("/:kind/:id", entryCtl.Update)
			entries.DELETE("/:kind/:id", entryCtl.Delete)
		}

		stats := api.Group("/stats")
		{
			stats.GET("/day", statsCtl.Day)
			stats.GET("/period", statsCtl.Period)
			stats.GET("/cycle", statsCtl.CycleTotals)
		}

		api.POST("/backup", backupCtl.Create)
	}

	return r
}
