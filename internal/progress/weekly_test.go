package progress

import "testing"

func TestWeeklyStatusScenario(t *testing.T) {
	h := scenarioHabit()

	status := WeeklyStatusFor(h, scenarioLogs(), day(2024, 1, 3))

	// 整周七天都参与计算：周一至周五都是计划日
	if status.ActiveDays != 5 {
		t.Fatalf("expected 5 active days, got %d", status.ActiveDays)
	}
	if status.TotalValue != 3 {
		t.Fatalf("expected total 3, got %v", status.TotalValue)
	}
	if status.WeeklyGoal != 10 {
		t.Fatalf("expected weekly goal 10, got %v", status.WeeklyGoal)
	}
	if status.IsWeeklyMet {
		t.Fatal("expected weekly goal not met")
	}
	// 1 日达标、2 日 skip 计为成功，3 日未达标
	if status.SuccessDays != 2 {
		t.Fatalf("expected 2 success days, got %d", status.SuccessDays)
	}
	if !status.WeekStart.Equal(day(2024, 1, 1)) {
		t.Fatalf("unexpected week start %v", status.WeekStart)
	}
}

func TestWeeklyStatusProratesCreationWeek(t *testing.T) {
	h := Habit{ID: "w", DailyGoal: 10, Recurrence: weekdaysOnly, CreatedAt: at(2024, 1, 3, 14), Active: true}

	status := WeeklyStatusFor(h, nil, at(2024, 1, 3, 20))
	if status.ActiveDays != 3 {
		t.Fatalf("expected Wed-Fri to be active, got %d", status.ActiveDays)
	}
	if status.WeeklyGoal != 30 {
		t.Fatalf("expected weekly goal 30, got %v", status.WeeklyGoal)
	}
}

func TestWeeklyStatusBonusDay(t *testing.T) {
	h := scenarioHabit()
	logs := []LogEntry{
		logOn(h.ID, "2024-01-06", 10, StatusDone, 2), // 周六不是计划日
	}

	status := WeeklyStatusFor(h, logs, day(2024, 1, 7))
	if status.TotalValue != 10 {
		t.Fatalf("expected bonus value to count, got %v", status.TotalValue)
	}
	if status.SuccessDays != 0 {
		t.Fatalf("expected bonus day not to count as success, got %d", status.SuccessDays)
	}
	if !status.IsWeeklyMet {
		t.Fatal("expected weekly goal met through bonus day")
	}
}

func TestWeeklyStatusIgnoresOtherHabitsAndWeeks(t *testing.T) {
	h := scenarioHabit()
	logs := []LogEntry{
		logOn("other", "2024-01-02", 50, StatusDone, 2),
		logOn(h.ID, "2024-01-08", 50, StatusDone, 2),
		logOn(h.ID, "2024-01-02", 2, StatusDone, 2),
	}

	status := WeeklyStatusFor(h, logs, day(2024, 1, 5))
	if status.TotalValue != 2 {
		t.Fatalf("expected only this week's own logs, got %v", status.TotalValue)
	}
}

func TestWeeklyStatusZeroGoalNeverMet(t *testing.T) {
	h := scenarioHabit()
	h.Recurrence = nil
	logs := []LogEntry{logOn(h.ID, "2024-01-02", 5, StatusDone, 2)}

	status := WeeklyStatusFor(h, logs, day(2024, 1, 3))
	if status.WeeklyGoal != 0 || status.IsWeeklyMet {
		t.Fatalf("expected zero goal and not met, got %+v", status)
	}
	if status.Percent() != 0 {
		t.Fatalf("expected 0 percent, got %v", status.Percent())
	}
}

func TestWeeklyStatusOverride(t *testing.T) {
	h := scenarioHabit()
	h.WeeklyGoalOverride = Float(3)

	status := WeeklyStatusFor(h, scenarioLogs(), day(2024, 1, 3))
	if status.WeeklyGoal != 3 || !status.IsWeeklyMet {
		t.Fatalf("expected override goal met, got %+v", status)
	}
}

func TestWeeklyProgress(t *testing.T) {
	ref := day(2024, 1, 5)

	half := scenarioHabit()
	full := Habit{ID: "full", DailyGoal: 1, Recurrence: weekdaysOnly, CreatedAt: day(2023, 1, 1), Active: true}
	zero := Habit{ID: "zero", DailyGoal: 1, CreatedAt: day(2023, 1, 1), Active: true}
	archived := Habit{ID: "arch", DailyGoal: 1, Recurrence: weekdaysOnly, CreatedAt: day(2023, 1, 1), Active: false, Archived: true}
	inactive := Habit{ID: "off", DailyGoal: 1, Recurrence: weekdaysOnly, CreatedAt: day(2023, 1, 1)}

	logs := []LogEntry{
		logOn(half.ID, "2024-01-01", 2, StatusDone, 2),
		logOn(half.ID, "2024-01-02", 3, StatusDone, 2),
		logOn(full.ID, "2024-01-01", 20, StatusDone, 1),
	}

	got := WeeklyProgress([]Habit{half, full, zero, archived, inactive}, logs, ref)
	if got != 75 {
		t.Fatalf("expected 75, got %d", got)
	}

	if got := WeeklyProgress(nil, nil, ref); got != 0 {
		t.Fatalf("expected 0 for empty input, got %d", got)
	}
}
