package models

import "time"

// EntryKind discriminates the two entry tables in API calls. Food and
// exercise entries share a shape but stay separate types on purpose; only
// this string ties them together.
type EntryKind string

const (
	EntryKindFood     EntryKind = "food"
	EntryKindExercise EntryKind = "exercise"
)

// Valid reports whether k names one of the two entry tables.
func (k EntryKind) Valid() bool {
	return k == EntryKindFood || k == EntryKindExercise
}

// FoodEntry is a single intake event. It always belongs to exactly one
// cycle and is deleted together with it.
type FoodEntry struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	Name    string    `gorm:"size:100;not null" json:"name"`
	Kcal    int       `gorm:"not null;check:kcal >= 0" json:"kcal"`
	Dt      time.Time `gorm:"not null;index" json:"dt"`
	CycleID uint      `gorm:"not null;index" json:"cycle_id"`
}

// ExerciseEntry is a single expenditure event, owned like FoodEntry.
type ExerciseEntry struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	Name    string    `gorm:"size:100;not null" json:"name"`
	Kcal    int       `gorm:"not null;check:kcal >= 0" json:"kcal"`
	Dt      time.Time `gorm:"not null;index" json:"dt"`
	CycleID uint      `gorm:"not null;index" json:"cycle_id"`
}
