package service

import (
	"time"

	"github.com/habitledger/internal/calendar"
	"github.com/habitledger/internal/db"
	"github.com/habitledger/internal/progress"
)

// toEngineHabit 将存储模型转换为引擎类型，CreatedOn 在 loc 中解析为零点
func toEngineHabit(h db.Habit, loc *time.Location) progress.Habit {
	created, err := calendar.ParseDateKey(h.CreatedOn, loc)
	if err != nil {
		created = calendar.Day(h.CreatedAt.In(loc))
	}

	return progress.Habit{
		ID:                  h.ID,
		Title:               h.Title,
		Category:            h.Category,
		DailyGoal:           h.DailyGoal,
		WeeklyGoalOverride:  h.WeeklyGoalOverride,
		MonthlyGoalOverride: h.MonthlyGoalOverride,
		Recurrence:          h.Days(),
		CreatedAt:           created,
		Active:              h.Active,
		Archived:            h.Archived,
	}
}

func toEngineHabits(habits []db.Habit, loc *time.Location) []progress.Habit {
	out := make([]progress.Habit, 0, len(habits))
	for _, h := range habits {
		out = append(out, toEngineHabit(h, loc))
	}
	return out
}

func toEngineLog(l db.HabitLog) progress.LogEntry {
	return progress.LogEntry{
		ID:             l.ID,
		HabitID:        l.HabitID,
		Date:           l.LogDate,
		Value:          l.Value,
		TargetSnapshot: l.TargetSnapshot,
		Status:         progress.LogStatus(l.Status),
	}
}

func toEngineLogs(logs []db.HabitLog) []progress.LogEntry {
	out := make([]progress.LogEntry, 0, len(logs))
	for _, l := range logs {
		out = append(out, toEngineLog(l))
	}
	return out
}
