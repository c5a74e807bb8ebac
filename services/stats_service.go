package services

import (
	"context"
	"sort"
	"time"

	"github.com/raulfrk/Dietor/models"

	"gorm.io/gorm"
)

// StatsService is the read side of the ledger: per-day and per-period
// aggregates. It composes cycle and entry reads and performs no writes.
type StatsService struct{ db *gorm.DB }

func NewStatsService(db *gorm.DB) *StatsService { return &StatsService{db: db} }

// DailyStats is one calendar day's accounting. Deficit is maintenance minus
// net intake (in − out); a negative deficit is a surplus. Empty marks a day
// with cycle context but no recorded calories, which is distinct from the
// nil result DayStats returns when no context resolves at all.
type DailyStats struct {
	FoodEntries     []models.FoodEntry     `json:"food_entries"`
	ExerciseEntries []models.ExerciseEntry `json:"exercise_entries"`
	KcalIn          int                    `json:"kcal_in"`
	KcalOut         int                    `json:"kcal_out"`
	Maintenance     int                    `json:"maintenance"`
	Deficit         int                    `json:"deficit"`
	DeficitGoal     int                    `json:"deficit_goal"`
	Date            string                 `json:"date"`
	Empty           bool                   `json:"empty"`
}

// PeriodStats sums DailyStats over a span of days. Deficit counts only days
// other than the current calendar date, because today is still being
// written; DeficitInclToday counts them all.
type PeriodStats struct {
	Days             []DailyStats `json:"days"`
	KcalIn           int          `json:"kcal_in"`
	KcalOut          int          `json:"kcal_out"`
	Maintenance      int          `json:"maintenance"`
	Deficit          int          `json:"deficit"`
	DeficitInclToday int          `json:"deficit_incl_today"`
	DeficitGoal      int          `json:"deficit_goal"`
	StartDate        string       `json:"start_date"`
	EndDate          string       `json:"end_date"`
}

// CycleTotals sums intake and expenditure over a whole cycle.
type CycleTotals struct {
	CycleID uint `json:"cycle_id"`
	KcalIn  int  `json:"kcal_in"`
	KcalOut int  `json:"kcal_out"`
}

const dateLayout = "2006-01-02"

// DayStats aggregates the calendar day containing ref. The day window is
// [00:00:00, 23:59:59], both bounds inclusive. The day is attributed to a
// single cycle: the cycle of the latest food entry in the window, falling
// back to the currently open cycle; entries of other cycles are filtered
// out. nil means no entries and no cycle context — nothing to report.
//
// The attribution rule can drop exercise-only days that straddle a cycle
// close/open boundary; kept as the original behaviour until real usage says
// otherwise.
func (s *StatsService) DayStats(ctx context.Context, ref time.Time) (*DailyStats, error) {
	var stats *DailyStats
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		stats, err = dayStats(tx, ref)
		return err
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func dayStats(tx *gorm.DB, ref time.Time) (*DailyStats, error) {
	from, to := dayStart(ref), dayEnd(ref)

	var foods []models.FoodEntry
	if err := tx.
		Where("dt >= ? AND dt <= ?", from, to).
		Order("dt ASC").
		Find(&foods).Error; err != nil {
		return nil, err
	}
	var exercises []models.ExerciseEntry
	if err := tx.
		Where("dt >= ? AND dt <= ?", from, to).
		Order("dt ASC").
		Find(&exercises).Error; err != nil {
		return nil, err
	}

	var cycle *models.Cycle
	if len(foods) > 0 {
		var c models.Cycle
		if err := tx.First(&c, foods[len(foods)-1].CycleID).Error; err != nil {
			return nil, err
		}
		cycle = &c
	} else {
		var err error
		cycle, err = currentCycle(tx)
		if err != nil {
			return nil, err
		}
		if cycle == nil {
			return nil, nil
		}
	}

	kcalIn := 0
	filteredFoods := make([]models.FoodEntry, 0, len(foods))
	for _, e := range foods {
		if e.CycleID == cycle.ID {
			filteredFoods = append(filteredFoods, e)
			kcalIn += e.Kcal
		}
	}
	kcalOut := 0
	filteredExercises := make([]models.ExerciseEntry, 0, len(exercises))
	for _, e := range exercises {
		if e.CycleID == cycle.ID {
			filteredExercises = append(filteredExercises, e)
			kcalOut += e.Kcal
		}
	}

	date := from.Format(dateLayout)
	if kcalIn == 0 && kcalOut == 0 {
		return &DailyStats{
			FoodEntries:     []models.FoodEntry{},
			ExerciseEntries: []models.ExerciseEntry{},
			Date:            date,
			Empty:           true,
		}, nil
	}

	// Display order only; storage order stays chronological.
	sort.SliceStable(filteredFoods, func(i, j int) bool {
		return filteredFoods[i].Kcal < filteredFoods[j].Kcal
	})
	sort.SliceStable(filteredExercises, func(i, j int) bool {
		return filteredExercises[i].Kcal < filteredExercises[j].Kcal
	})

	return &DailyStats{
		FoodEntries:     filteredFoods,
		ExerciseEntries: filteredExercises,
		KcalIn:          kcalIn,
		KcalOut:         kcalOut,
		Maintenance:     cycle.MaintenanceKcal,
		Deficit:         cycle.MaintenanceKcal - (kcalIn - kcalOut),
		DeficitGoal:     cycle.DailyDeficitGoal,
		Date:            date,
	}, nil
}

// PeriodStats aggregates every calendar day from the start of from's day
// through to (inclusive). Days with no data and empty days are skipped. The
// whole walk runs inside one read transaction so a concurrent cycle
// open/close cannot be observed halfway through.
func (s *StatsService) PeriodStats(ctx context.Context, from, to time.Time) (*PeriodStats, error) {
	out := &PeriodStats{Days: []DailyStats{}}
	today := time.Now().Format(dateLayout)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for d := dayStart(from); !d.After(to); d = d.AddDate(0, 0, 1) {
			ds, err := dayStats(tx, d)
			if err != nil {
				return err
			}
			if ds == nil || ds.Empty {
				continue
			}
			out.Days = append(out.Days, *ds)
			out.KcalIn += ds.KcalIn
			out.KcalOut += ds.KcalOut
			out.Maintenance += ds.Maintenance
			out.DeficitGoal += ds.DeficitGoal
			out.DeficitInclToday += ds.Deficit
			if ds.Date != today {
				out.Deficit += ds.Deficit
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(out.Days) > 0 {
		out.StartDate = out.Days[0].Date
		out.EndDate = out.Days[len(out.Days)-1].Date
	}
	return out, nil
}

// CurrentCycleTotals sums all intake and expenditure recorded in the open
// cycle. Fails with ErrNoOpenCycle when nothing is open.
func (s *StatsService) CurrentCycleTotals(ctx context.Context) (*CycleTotals, error) {
	totals := &CycleTotals{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := currentCycle(tx)
		if err != nil {
			return err
		}
		if current == nil {
			return ErrNoOpenCycle
		}
		totals.CycleID = current.ID

		if err := tx.Model(&models.FoodEntry{}).
			Where("cycle_id = ?", current.ID).
			Select("COALESCE(SUM(kcal), 0)").
			Scan(&totals.KcalIn).Error; err != nil {
			return err
		}
		return tx.Model(&models.ExerciseEntry{}).
			Where("cycle_id = ?", current.ID).
			Select("COALESCE(SUM(kcal), 0)").
			Scan(&totals.KcalOut).Error
	})
	if err != nil {
		return nil, err
	}
	return totals, nil
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
