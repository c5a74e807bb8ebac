package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/raulfrk/Dietor/models"
	"github.com/raulfrk/Dietor/storage"

	"gorm.io/gorm"
)

// CycleService manages the cycle lifecycle: open, close, point-in-time
// lookup. A cycle transitions OPEN -> CLOSED exactly once and is never
// reopened; start a new cycle instead.
type CycleService struct{ db *gorm.DB }

func NewCycleService(db *gorm.DB) *CycleService { return &CycleService{db: db} }

// OpenCycle creates a new open cycle. It fails with ErrCannotCreate when an
// open cycle already exists: the partial unique index decides, so two
// concurrent opens resolve deterministically without a check-then-act
// window. Non-positive maintenance fails with ErrConstraintViolation.
func (s *CycleService) OpenCycle(maintenanceKcal, dailyDeficitGoal int, start time.Time) (*models.Cycle, error) {
	cycle := models.Cycle{
		StartDt:          start,
		MaintenanceKcal:  maintenanceKcal,
		DailyDeficitGoal: dailyDeficitGoal,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&cycle).Error
	})
	if err != nil {
		switch {
		case storage.IsUniqueViolation(err):
			return nil, ErrCannotCreate
		case storage.IsCheckViolation(err):
			return nil, fmt.Errorf("%w: %v", ErrConstraintViolation, err)
		default:
			return nil, err
		}
	}
	return &cycle, nil
}

// CurrentCycle returns the open cycle, or nil when none is open.
func (s *CycleService) CurrentCycle() (*models.Cycle, error) {
	return currentCycle(s.db)
}

func currentCycle(tx *gorm.DB) (*models.Cycle, error) {
	var cycle models.Cycle
	err := tx.Where("end_dt IS NULL").First(&cycle).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cycle, nil
}

// CloseCurrentCycle stamps the open cycle's end with the current time and
// returns it. With nothing open it is a no-op returning nil. It reports no
// metrics; callers wanting a closing summary read stats first.
func (s *CycleService) CloseCurrentCycle() (*models.Cycle, error) {
	var closed *models.Cycle
	err := s.db.Transaction(func(tx *gorm.DB) error {
		current, err := currentCycle(tx)
		if err != nil || current == nil {
			return err
		}
		now := time.Now()
		current.EndDt = &now
		if err := tx.Save(current).Error; err != nil {
			return err
		}
		closed = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return closed, nil
}

// CycleContaining returns the cycle whose window contains t, or nil. A
// closed cycle covers [start_dt, end_dt) so the shared boundary of two
// contiguous cycles belongs to the later one; an open cycle covers
// everything from start_dt onward. Instants in a gap yield nil.
func (s *CycleService) CycleContaining(t time.Time) (*models.Cycle, error) {
	var cycle models.Cycle
	err := s.db.
		Where("start_dt <= ? AND (end_dt > ? OR end_dt IS NULL)", t, t).
		First(&cycle).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cycle, nil
}

// ListCycles returns every cycle, oldest first.
func (s *CycleService) ListCycles() ([]models.Cycle, error) {
	var cycles []models.Cycle
	err := s.db.Order("start_dt ASC").Find(&cycles).Error
	return cycles, err
}

// DeleteCycle removes a cycle and, through the cascading foreign keys, all
// entries it owns. Deleting an absent id is a no-op.
func (s *CycleService) DeleteCycle(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Delete(&models.Cycle{}, id).Error
	})
}
