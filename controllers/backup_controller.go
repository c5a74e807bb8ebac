package controllers

import (
	"errors"

	"github.com/raulfrk/Dietor/services"
	"github.com/raulfrk/Dietor/storage"

	"github.com/gin-gonic/gin"
)

type BackupController struct {
	Stores  *storage.Manager
	Backups *services.BackupService
}

func NewBackupController(stores *storage.Manager, backups *services.BackupService) *BackupController {
	return &BackupController{Stores: stores, Backups: backups}
}

// Create snapshots the acting user's store to S3.
func (ctl *BackupController) Create(c *gin.Context) {
	userID := c.GetString("userID")
	// Open (or touch) the store first so a brand-new user still gets a file.
	if db := userDB(c, ctl.Stores); db == nil {
		return
	}

	key, err := ctl.Backups.Backup(c.Request.Context(), userID, ctl.Stores.Path(userID))
	if err != nil {
		if errors.Is(err, services.ErrBackupNotConfigured) {
			c.JSON(503, gin.H{"error": err.Error()})
			return
		}
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"key": key})
}
