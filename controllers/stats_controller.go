package controllers

import (
	"time"

	"github.com/raulfrk/Dietor/services"
	"github.com/raulfrk/Dietor/storage"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	Stores *storage.Manager
}

func NewStatsController(stores *storage.Manager) *StatsController {
	return &StatsController{Stores: stores}
}

// Day returns one calendar day's aggregate. 404 when the day has neither
// entries nor any cycle context to report against.
func (ctl *StatsController) Day(c *gin.Context) {
	db := userDB(c, ctl.Stores)
	if db == nil {
		return
	}
	ref := time.Now()
	if s := c.Query("date"); s != "" {
		t, ok := parseTime(s)
		if !ok {
			c.JSON(400, gin.H{"error": "invalid date parameter"})
			return
		}
		ref = t
	}

	stats, err := services.NewStatsService(db).DayStats(c.Request.Context(), ref)
	if err != nil {
		abortDomainError(c, err)
		return
	}
	if stats == nil {
		c.JSON(404, gin.H{"error": "no data for that day"})
		return
	}
	c.JSON(200, stats)
}

// Period returns aggregates over every calendar day between start and end.
func (ctl *StatsController) Period(c *gin.Context) {
	db := userDB(c, ctl.Stores)
	if db == nil {
		return
	}
	start, ok := parseTime(c.Query("start"))
	if !ok {
		c.JSON(400, gin.H{"error": "invalid or missing start parameter"})
		return
	}
	end, ok := parseTime(c.Query("end"))
	if !ok {
		c.JSON(400, gin.H{"error": "invalid or missing end parameter"})
		return
	}

	stats, err := services.NewStatsService(db).PeriodStats(c.Request.Context(), start, end)
	if err != nil {
		abortDomainError(c, err)
		return
	}
	c.JSON(200, stats)
}

// CycleTotals returns intake/expenditure summed over the open cycle.
func (ctl *StatsController) CycleTotals(c *gin.Context) {
	db := userDB(c, ctl.Stores)
	if db == nil {
		return
	}
	totals, err := services.NewStatsService(db).CurrentCycleTotals(c.Request.Context())
	if err != nil {
		abortDomainError(c, err)
		return
	}
	c.JSON(200, totals)
}
