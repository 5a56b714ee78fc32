package db

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupModelTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

func TestHabitRecurrenceRoundTrip(t *testing.T) {
	gdb := setupModelTestDB(t)

	habit := Habit{Title: "Reading", DailyGoal: 2, CreatedOn: "2024-01-01", Active: true}
	habit.SetDays([]int{1, 3, 5})
	if err := gdb.Create(&habit).Error; err != nil {
		t.Fatalf("failed to create habit: %v", err)
	}
	if habit.ID == "" {
		t.Fatal("expected uuid to be assigned")
	}

	var loaded Habit
	if err := gdb.First(&loaded, "id = ?", habit.ID).Error; err != nil {
		t.Fatalf("failed to load habit: %v", err)
	}
	days := loaded.Days()
	if len(days) != 3 || days[0] != 1 || days[2] != 5 {
		t.Fatalf("unexpected recurrence: %v", days)
	}

	var empty Habit
	empty.SetDays(nil)
	if string(empty.Recurrence) != "[]" {
		t.Fatalf("expected empty array, got %s", empty.Recurrence)
	}
}

func TestHabitLogUniquePerDay(t *testing.T) {
	gdb := setupModelTestDB(t)

	first := HabitLog{HabitID: "h", LogDate: "2024-01-02", Value: 1, Status: "done"}
	if err := gdb.Create(&first).Error; err != nil {
		t.Fatalf("failed to create log: %v", err)
	}

	dup := HabitLog{HabitID: "h", LogDate: "2024-01-02", Value: 2, Status: "done"}
	if err := gdb.Create(&dup).Error; err == nil {
		t.Fatal("expected unique index to reject second log on the same day")
	}

	other := HabitLog{HabitID: "h", LogDate: "2024-01-03", Value: 2, Status: "done"}
	if err := gdb.Create(&other).Error; err != nil {
		t.Fatalf("failed to create log for another day: %v", err)
	}
}
