package controllers

import (
	"errors"
	"time"

	"github.com/raulfrk/Dietor/services"
	"github.com/raulfrk/Dietor/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// userDB resolves the acting user's store from the id the auth middleware
// left on the context. A nil return means the response has been written.
func userDB(c *gin.Context, stores *storage.Manager) *gorm.DB {
	userID := c.GetString("userID")
	db, err := stores.ForUser(userID)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return nil
	}
	return db
}

// abortDomainError translates ledger errors to HTTP statuses. Everything in
// the taxonomy is recoverable by the caller, hence the 4xx mapping.
func abortDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCannotCreate):
		c.JSON(409, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNoOpenCycle):
		c.JSON(422, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrEntryNotFound):
		c.JSON(404, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrConstraintViolation),
		errors.Is(err, services.ErrUnknownEntryKind):
		c.JSON(400, gin.H{"error": err.Error()})
	default:
		c.JSON(500, gin.H{"error": err.Error()})
	}
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseTime accepts the handful of timestamp shapes clients send.
func parseTime(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
