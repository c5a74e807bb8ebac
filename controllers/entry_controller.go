package controllers

import (
	"strconv"
	"time"

	"github.com/raulfrk/Dietor/models"
	"github.com/raulfrk/Dietor/services"
	"github.com/raulfrk/Dietor/storage"

	"github.com/gin-gonic/gin"
)

type EntryController struct {
	Stores *storage.Manager
}

func NewEntryController(stores *storage.Manager) *EntryController {
	return &EntryController{Stores: stores}
}

type entryReq struct {
	Name string `json:"name" binding:"required,max=100"`
	Kcal int    `json:"kcal"`
	Dt   string `json:"dt"`
}

func (r *entryReq) timestamp(c *gin.Context) (time.Time, bool) {
	if r.Dt == "" {
		return time.Now(), true
	}
	t, ok := parseTime(r.Dt)
	if !ok {
		c.JSON(400, gin.H{"error": "invalid dt timestamp"})
	}
	return t, ok
}

func entryKind(c *gin.Context) (models.EntryKind, bool) {
	kind := models.EntryKind(c.Param("kind"))
	if !kind.Valid() {
		c.JSON(400, gin.H{"error": "kind must be food or exercise"})
		return "", false
	}
	return kind, true
}

// Create appends an entry to the open cycle. 422 when no cycle is open.
func (ctl *EntryController) Create(c *gin.Context) {
	db := userDB(c, ctl.Stores)
	if db == nil {
		return
	}
	kind, ok := entryKind(c)
	if !ok {
		return
	}
	var req entryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	dt, ok := req.timestamp(c)
	if !ok {
		return
	}

	svc := services.NewEntryService(db)
	var (
		entry any
		err   error
	)
	if kind == models.EntryKindFood {
		entry, err = svc.AddFoodEntry(req.Name, req.Kcal, dt)
	} else {
		entry, err = svc.AddExerciseEntry(req.Name, req.Kcal, dt)
	}
	if err != nil {
		abortDomainError(c, err)
		return
	}
	c.JSON(201, entry)
}

// Update rewrites name, kcal and timestamp of an entry. 404 for absent ids.
func (ctl *EntryController) Update(c *gin.Context) {
	db := userDB(c, ctl.Stores)
	if db == nil {
		return
	}
	kind, ok := entryKind(c)
	if !ok {
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"error": "invalid entry id"})
		return
	}
	var req entryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	dt, ok := req.timestamp(c)
	if !ok {
		return
	}

	svc := services.NewEntryService(db)
	var entry any
	if kind == models.EntryKindFood {
		entry, err = svc.UpdateFoodEntry(uint(id), req.Name, req.Kcal, dt)
	} else {
		entry, err = svc.UpdateExerciseEntry(uint(id), req.Name, req.Kcal, dt)
	}
	if err != nil {
		abortDomainError(c, err)
		return
	}
	c.JSON(200, entry)
}

// Delete removes an entry by id. Removing a missing id succeeds with
// removed=0, mirroring the service's idempotence guarantee.
func (ctl *EntryController) Delete(c *gin.Context) {
	db := userDB(c, ctl.Stores)
	if db == nil {
		return
	}
	kind, ok := entryKind(c)
	if !ok {
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"error": "invalid entry id"})
		return
	}

	removed, err := services.NewEntryService(db).RemoveEntry(kind, uint(id))
	if err != nil {
		abortDomainError(c, err)
		return
	}
	c.JSON(200, gin.H{"removed": removed})
}
