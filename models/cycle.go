package models

import "time"

// Cycle is one accounting period: a fixed daily maintenance target and
// deficit goal applied to every day between StartDt and EndDt. A nil EndDt
// means the cycle is still open; at most one open cycle may exist per store,
// enforced by a partial unique index (see storage.Open). A closed cycle is
// never reopened.
type Cycle struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	StartDt          time.Time  `gorm:"not null" json:"start_dt"`
	EndDt            *time.Time `json:"end_dt"`
	MaintenanceKcal  int        `gorm:"not null;check:maintenance_kcal > 0" json:"maintenance_kcal"`
	DailyDeficitGoal int        `gorm:"not null" json:"daily_deficit_goal"`

	FoodEntries     []FoodEntry     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ExerciseEntries []ExerciseEntry `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// IsOpen reports whether the cycle has not been closed yet.
func (c *Cycle) IsOpen() bool { return c.EndDt == nil }

// Contains reports whether t falls inside the cycle's window. The window is
// [StartDt, EndDt): start inclusive, end exclusive, so the boundary instant
// of two contiguous cycles belongs to the later one. An open cycle contains
// every instant from StartDt onward.
func (c *Cycle) Contains(t time.Time) bool {
	if t.Before(c.StartDt) {
		return false
	}
	return c.EndDt == nil || t.Before(*c.EndDt)
}
