package controllers

import (
	"strconv"
	"time"

	"github.com/raulfrk/Dietor/services"
	"github.com/raulfrk/Dietor/storage"

	"github.com/gin-gonic/gin"
)

type CycleController struct {
	Stores *storage.Manager
}

func NewCycleController(stores *storage.Manager) *CycleController {
	return &CycleController{Stores: stores}
}

type openCycleReq struct {
	MaintenanceKcal  int    `json:"maintenance_kcal" binding:"required"`
	DailyDeficitGoal int    `json:"daily_deficit_goal"`
	Start            string `json:"start"`
}

// Open starts a new cycle. 409 when one is already open.
func (ctl *CycleController) Open(c *gin.Context) {
	db := userDB(c, ctl.Stores)
	if db == nil {
		return
	}

	var req openCycleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	start := time.Now()
	if req.Start != "" {
		t, ok := parseTime(req.Start)
		if !ok {
			c.JSON(400, gin.H{"error": "invalid start timestamp"})
			return
		}
		start = t
	}

	cycle, err := services.NewCycleService(db).OpenCycle(req.MaintenanceKcal, req.DailyDeficitGoal, start)
	if err != nil {
		abortDomainError(c, err)
		return
	}
	c.JSON(201, cycle)
}

// List returns every cycle, oldest first.
func (ctl *CycleController) List(c *gin.Context) {
	db := userDB(c, ctl.Stores)
	if db == nil {
		return
	}
	cycles, err := services.NewCycleService(db).ListCycles()
	if err != nil {
		abortDomainError(c, err)
		return
	}
	c.JSON(200, cycles)
}

// Current returns the open cycle, 404 when nothing is open.
func (ctl *CycleController) Current(c *gin.Context) {
	db := userDB(c, ctl.Stores)
	if db == nil {
		return
	}
	cycle, err := services.NewCycleService(db).CurrentCycle()
	if err != nil {
		abortDomainError(c, err)
		return
	}
	if cycle == nil {
		c.JSON(404, gin.H{"error": "no open cycle"})
		return
	}
	c.JSON(200, cycle)
}

// Close ends the open cycle. 404 when nothing is open; the store is left
// untouched in that case.
func (ctl *CycleController) Close(c *gin.Context) {
	db := userDB(c, ctl.Stores)
	if db == nil {
		return
	}
	cycle, err := services.NewCycleService(db).CloseCurrentCycle()
	if err != nil {
		abortDomainError(c, err)
		return
	}
	if cycle == nil {
		c.JSON(404, gin.H{"error": "no open cycle"})
		return
	}
	c.JSON(200, cycle)
}

// At looks up the cycle containing the instant in the t query parameter.
func (ctl *CycleController) At(c *gin.Context) {
	db := userDB(c, ctl.Stores)
	if db == nil {
		return
	}
	t, ok := parseTime(c.Query("t"))
	if !ok {
		c.JSON(400, gin.H{"error": "invalid or missing t parameter"})
		return
	}
	cycle, err := services.NewCycleService(db).CycleContaining(t)
	if err != nil {
		abortDomainError(c, err)
		return
	}
	if cycle == nil {
		c.JSON(404, gin.H{"error": "no cycle contains that instant"})
		return
	}
	c.JSON(200, cycle)
}

// Delete removes a cycle and all its entries.
func (ctl *CycleController) Delete(c *gin.Context) {
	db := userDB(c, ctl.Stores)
	if db == nil {
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"error": "invalid cycle id"})
		return
	}
	if err := services.NewCycleService(db).DeleteCycle(uint(id)); err != nil {
		abortDomainError(c, err)
		return
	}
	c.JSON(200, gin.H{"deleted": id})
}
