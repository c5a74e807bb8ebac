package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/raulfrk/Dietor/models"
	"github.com/raulfrk/Dietor/storage"

	"gorm.io/gorm"
)

// EntryService is the write path of the ledger: entry create, update and
// delete. Creation always attaches to the currently open cycle; update and
// delete address entries by id regardless of their cycle's state. No entry
// operation ever touches cycle rows.
type EntryService struct{ db *gorm.DB }

func NewEntryService(db *gorm.DB) *EntryService { return &EntryService{db: db} }

// AddFoodEntry appends an intake event to the open cycle. Fails with
// ErrNoOpenCycle when nothing is open and ErrConstraintViolation for
// negative kcal.
func (s *EntryService) AddFoodEntry(name string, kcal int, dt time.Time) (*models.FoodEntry, error) {
	entry := models.FoodEntry{Name: name, Kcal: kcal, Dt: dt}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		current, err := currentCycle(tx)
		if err != nil {
			return err
		}
		if current == nil {
			return ErrNoOpenCycle
		}
		entry.CycleID = current.ID
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, mapEntryWriteError(err)
	}
	return &entry, nil
}

// AddExerciseEntry appends an expenditure event to the open cycle, with the
// same failure modes as AddFoodEntry.
func (s *EntryService) AddExerciseEntry(name string, kcal int, dt time.Time) (*models.ExerciseEntry, error) {
	entry := models.ExerciseEntry{Name: name, Kcal: kcal, Dt: dt}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		current, err := currentCycle(tx)
		if err != nil {
			return err
		}
		if current == nil {
			return ErrNoOpenCycle
		}
		entry.CycleID = current.ID
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, mapEntryWriteError(err)
	}
	return &entry, nil
}

// RemoveEntry deletes the entry of the given kind by id and returns how many
// rows went away (0 or 1). A missing id is not an error: the second call on
// the same id succeeds with 0.
func (s *EntryService) RemoveEntry(kind models.EntryKind, id uint) (int64, error) {
	var removed int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var res *gorm.DB
		switch kind {
		case models.EntryKindFood:
			res = tx.Delete(&models.FoodEntry{}, id)
		case models.EntryKindExercise:
			res = tx.Delete(&models.ExerciseEntry{}, id)
		default:
			return fmt.Errorf("%w: %q", ErrUnknownEntryKind, kind)
		}
		removed = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// UpdateFoodEntry replaces name, kcal and timestamp of an existing entry.
// The owning cycle never changes. Fails with ErrEntryNotFound for an absent
// id.
func (s *EntryService) UpdateFoodEntry(id uint, name string, kcal int, dt time.Time) (*models.FoodEntry, error) {
	var entry models.FoodEntry
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&entry, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: food entry %d", ErrEntryNotFound, id)
			}
			return err
		}
		entry.Name = name
		entry.Kcal = kcal
		entry.Dt = dt
		return tx.Save(&entry).Error
	})
	if err != nil {
		return nil, mapEntryWriteError(err)
	}
	return &entry, nil
}

// UpdateExerciseEntry mirrors UpdateFoodEntry for the exercise table.
func (s *EntryService) UpdateExerciseEntry(id uint, name string, kcal int, dt time.Time) (*models.ExerciseEntry, error) {
	var entry models.ExerciseEntry
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&entry, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: exercise entry %d", ErrEntryNotFound, id)
			}
			return err
		}
		entry.Name = name
		entry.Kcal = kcal
		entry.Dt = dt
		return tx.Save(&entry).Error
	})
	if err != nil {
		return nil, mapEntryWriteError(err)
	}
	return &entry, nil
}

// GetFoodEntry looks up a single food entry by id; nil when absent.
func (s *EntryService) GetFoodEntry(id uint) (*models.FoodEntry, error) {
	var entry models.FoodEntry
	err := s.db.First(&entry, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// GetExerciseEntry looks up a single exercise entry by id; nil when absent.
func (s *EntryService) GetExerciseEntry(id uint) (*models.ExerciseEntry, error) {
	var entry models.ExerciseEntry
	err := s.db.First(&entry, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func mapEntryWriteError(err error) error {
	switch {
	case storage.IsCheckViolation(err):
		return fmt.Errorf("%w: %v", ErrConstraintViolation, err)
	default:
		return err
	}
}
