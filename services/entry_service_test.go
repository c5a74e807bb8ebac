package services

import (
	"errors"
	"testing"
	"time"

	"github.com/raulfrk/Dietor/models"
)

func TestAddEntryRequiresOpenCycle(t *testing.T) {
	db := newTestDB(t)
	svc := NewEntryService(db)

	if _, err := svc.AddFoodEntry("toast", 200, time.Now()); !errors.Is(err, ErrNoOpenCycle) {
		t.Errorf("food: expected ErrNoOpenCycle, got %v", err)
	}
	if _, err := svc.AddExerciseEntry("run", 300, time.Now()); !errors.Is(err, ErrNoOpenCycle) {
		t.Errorf("exercise: expected ErrNoOpenCycle, got %v", err)
	}
}

func TestAddEntriesAttachToOpenCycle(t *testing.T) {
	db := newTestDB(t)
	svc := NewEntryService(db)

	cycleID := openCycle(t, db, 1800, 600, time.Now().Add(-time.Hour))

	food, err := svc.AddFoodEntry("toast", 200, time.Now())
	if err != nil {
		t.Fatalf("add food: %v", err)
	}
	if food.ID == 0 {
		t.Error("expected a store-generated id")
	}
	if food.CycleID != cycleID {
		t.Errorf("food attached to cycle %d, want %d", food.CycleID, cycleID)
	}

	exercise, err := svc.AddExerciseEntry("run", 0, time.Now())
	if err != nil {
		t.Fatalf("add exercise with zero kcal: %v", err)
	}
	if exercise.CycleID != cycleID {
		t.Errorf("exercise attached to cycle %d, want %d", exercise.CycleID, cycleID)
	}
}

func TestAddEntryRejectsNegativeKcal(t *testing.T) {
	db := newTestDB(t)
	svc := NewEntryService(db)

	openCycle(t, db, 1800, 600, time.Now().Add(-time.Hour))

	if _, err := svc.AddFoodEntry("toast", -1, time.Now()); !errors.Is(err, ErrConstraintViolation) {
		t.Errorf("food: expected ErrConstraintViolation, got %v", err)
	}
	if _, err := svc.AddExerciseEntry("run", -50, time.Now()); !errors.Is(err, ErrConstraintViolation) {
		t.Errorf("exercise: expected ErrConstraintViolation, got %v", err)
	}
}

func TestRemoveEntryIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewEntryService(db)

	openCycle(t, db, 1800, 600, time.Now().Add(-time.Hour))
	food, err := svc.AddFoodEntry("toast", 200, time.Now())
	if err != nil {
		t.Fatalf("add food: %v", err)
	}

	removed, err := svc.RemoveEntry(models.EntryKindFood, food.ID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if removed != 1 {
		t.Errorf("first remove: got %d, want 1", removed)
	}

	removed, err = svc.RemoveEntry(models.EntryKindFood, food.ID)
	if err != nil {
		t.Fatalf("second remove: %v", err)
	}
	if removed != 0 {
		t.Errorf("second remove: got %d, want 0", removed)
	}

	// Removing an id that never existed is also a degenerate success.
	removed, err = svc.RemoveEntry(models.EntryKindExercise, 9999)
	if err != nil || removed != 0 {
		t.Errorf("remove of unknown id: got %d err=%v, want 0 nil", removed, err)
	}
}

func TestRemoveEntryUnknownKind(t *testing.T) {
	db := newTestDB(t)
	svc := NewEntryService(db)

	if _, err := svc.RemoveEntry("snack", 1); !errors.Is(err, ErrUnknownEntryKind) {
		t.Errorf("expected ErrUnknownEntryKind, got %v", err)
	}
}

func TestUpdateEntry(t *testing.T) {
	db := newTestDB(t)
	svc := NewEntryService(db)

	cycleID := openCycle(t, db, 1800, 600, time.Now().Add(-time.Hour))
	food, err := svc.AddFoodEntry("toast", 200, time.Now())
	if err != nil {
		t.Fatalf("add food: %v", err)
	}

	newDt := time.Now().Add(-30 * time.Minute)
	updated, err := svc.UpdateFoodEntry(food.ID, "toast with butter", 260, newDt)
	if err != nil {
		t.Fatalf("update food: %v", err)
	}
	if updated.Name != "toast with butter" || updated.Kcal != 260 {
		t.Errorf("update did not stick: %+v", updated)
	}
	if updated.CycleID != cycleID {
		t.Errorf("cycle membership changed on update: %d -> %d", cycleID, updated.CycleID)
	}
}

func TestUpdateEntryNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewEntryService(db)

	if _, err := svc.UpdateFoodEntry(42, "x", 1, time.Now()); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("food: expected ErrEntryNotFound, got %v", err)
	}
	if _, err := svc.UpdateExerciseEntry(42, "x", 1, time.Now()); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("exercise: expected ErrEntryNotFound, got %v", err)
	}
}

func TestUpdateAndRemoveWorkOnClosedCycles(t *testing.T) {
	db := newTestDB(t)
	entrySvc := NewEntryService(db)
	cycleSvc := NewCycleService(db)

	openCycle(t, db, 1800, 600, time.Now().Add(-time.Hour))
	food, err := entrySvc.AddFoodEntry("toast", 200, time.Now())
	if err != nil {
		t.Fatalf("add food: %v", err)
	}
	exercise, err := entrySvc.AddExerciseEntry("run", 300, time.Now())
	if err != nil {
		t.Fatalf("add exercise: %v", err)
	}
	if _, err := cycleSvc.CloseCurrentCycle(); err != nil {
		t.Fatalf("close cycle: %v", err)
	}

	// Creation is gated on an open cycle; update/delete are not.
	if _, err := entrySvc.AddFoodEntry("late toast", 100, time.Now()); !errors.Is(err, ErrNoOpenCycle) {
		t.Errorf("expected ErrNoOpenCycle after close, got %v", err)
	}
	if _, err := entrySvc.UpdateExerciseEntry(exercise.ID, "long run", 400, time.Now()); err != nil {
		t.Errorf("update in closed cycle: %v", err)
	}
	if removed, err := entrySvc.RemoveEntry(models.EntryKindFood, food.ID); err != nil || removed != 1 {
		t.Errorf("remove in closed cycle: got %d err=%v", removed, err)
	}
}
