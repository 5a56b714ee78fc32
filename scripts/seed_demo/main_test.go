package main

import (
	"testing"
	"time"

	"github.com/habitledger/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSeedTestDB(t *testing.T) func() {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file:demo-seed?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	db.DB = gdb

	return func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	cleanup := setupSeedTestDB(t)
	defer cleanup()

	today := time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)

	created, logged, err := seed(db.DB, time.UTC, today, demoDays)
	if err != nil {
		t.Fatalf("seed returned error: %v", err)
	}
	if created != len(demoHabits) {
		t.Fatalf("expected %d habits, got %d", len(demoHabits), created)
	}
	if logged == 0 {
		t.Fatal("expected demo logs")
	}

	var stored int64
	db.DB.Model(&db.HabitLog{}).Count(&stored)
	if int(stored) != logged {
		t.Fatalf("expected %d stored logs, got %d", logged, stored)
	}

	var achievements int64
	db.DB.Model(&db.Notification{}).Where("type = ?", db.NotificationAchievement).Count(&achievements)
	if achievements == 0 {
		t.Fatal("expected seeded history to unlock badges")
	}

	created, _, err = seed(db.DB, time.UTC, today, demoDays)
	if err != nil {
		t.Fatalf("second seed returned error: %v", err)
	}
	if created != 0 {
		t.Fatalf("expected second seed to be skipped, got %d", created)
	}
}
