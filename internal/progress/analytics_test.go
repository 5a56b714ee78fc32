package progress

import "testing"

func TestDailyStatusRecoveredByWeek(t *testing.T) {
	h := scenarioHabit()
	logs := []LogEntry{
		logOn(h.ID, "2024-01-01", 6, StatusDone, 2),
		logOn(h.ID, "2024-01-02", 4, StatusDone, 2),
		logOn(h.ID, "2024-01-03", 0, StatusFail, 2),
	}

	status := DailyStatusFor(h, logs, day(2024, 1, 3))
	if !status.Logged || status.Percent != 0 {
		t.Fatalf("unexpected status %+v", status)
	}
	if !status.Recovered || !status.Done {
		t.Fatalf("expected day to be recovered by weekly total, got %+v", status)
	}

	logs[0].Value = 2
	status = DailyStatusFor(h, logs, day(2024, 1, 3))
	if status.Recovered || status.Done {
		t.Fatalf("expected day not recovered when week is short, got %+v", status)
	}
}

func TestDailyStatusSkipAndMet(t *testing.T) {
	h := scenarioHabit()
	logs := scenarioLogs()

	skipped := DailyStatusFor(h, logs, day(2024, 1, 2))
	if !skipped.Skipped || skipped.Recovered || !skipped.Done {
		t.Fatalf("unexpected skip status %+v", skipped)
	}

	met := DailyStatusFor(h, logs, day(2024, 1, 1))
	if met.Percent != 100 || !met.Done || met.Recovered {
		t.Fatalf("unexpected met status %+v", met)
	}

	missing := DailyStatusFor(h, logs, day(2024, 1, 4))
	if missing.Logged || missing.Target != 2 || missing.Done {
		t.Fatalf("unexpected missing status %+v", missing)
	}
}

func TestDashboardHabits(t *testing.T) {
	saturday := day(2024, 1, 6)

	weekday := scenarioHabit()
	bonus := Habit{ID: "bonus", DailyGoal: 1, Recurrence: weekdaysOnly, CreatedAt: day(2024, 1, 1), Active: true}
	weekend := Habit{ID: "weekend", DailyGoal: 1, Recurrence: []int{6}, CreatedAt: day(2024, 1, 1), Active: true}
	paused := Habit{ID: "paused", DailyGoal: 1, Recurrence: []int{6}, CreatedAt: day(2024, 1, 1)}
	archived := Habit{ID: "arch", DailyGoal: 1, Recurrence: []int{6}, CreatedAt: day(2024, 1, 1), Archived: true}

	logs := []LogEntry{logOn(bonus.ID, "2024-01-06", 1, StatusDone, 1)}

	got := DashboardHabits([]Habit{weekday, bonus, weekend, paused, archived}, logs, saturday)
	if len(got) != 2 || got[0].ID != "bonus" || got[1].ID != "weekend" {
		t.Fatalf("unexpected dashboard habits %+v", got)
	}
}

func TestOverallScoreCountsZeroGoalHabits(t *testing.T) {
	h := scenarioHabit()
	empty := Habit{ID: "empty", DailyGoal: 1, CreatedAt: day(2024, 1, 1), Active: true}
	logs := []LogEntry{
		logOn(h.ID, "2024-01-01", 2, StatusDone, 2),
		logOn(h.ID, "2024-01-02", 3, StatusDone, 2),
	}

	if got := OverallScore([]Habit{h, empty}, logs, day(2024, 1, 3)); got != 25 {
		t.Fatalf("expected 25, got %d", got)
	}
	if got := OverallScore(nil, nil, day(2024, 1, 3)); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestWeekGrid(t *testing.T) {
	h := scenarioHabit()
	grid := WeekGrid([]Habit{h}, scenarioLogs(), day(2024, 1, 3))

	if len(grid) != 7 {
		t.Fatalf("expected 7 days, got %d", len(grid))
	}
	if grid[0].Date != "2024-01-01" || grid[0].Weekday != "Mon" {
		t.Fatalf("unexpected first day %+v", grid[0])
	}
	if grid[0].Succeeded != 1 || grid[1].Succeeded != 1 || grid[2].Succeeded != 0 {
		t.Fatalf("unexpected success counts %+v", grid[:3])
	}
	if grid[2].Future || !grid[3].Future {
		t.Fatal("expected days after the reference date to be future")
	}
	if grid[5].Scheduled != 0 || grid[5].Ratio != 0 {
		t.Fatalf("expected saturday unscheduled, got %+v", grid[5])
	}
}

func TestHeatmap(t *testing.T) {
	h := scenarioHabit()
	logs := []LogEntry{
		logOn(h.ID, "2024-01-01", 2, StatusDone, 2),
		logOn(h.ID, "2024-01-02", 1, StatusDone, 2),
	}

	cells := Heatmap([]Habit{h}, logs, day(2024, 1, 3), 3)
	if len(cells) != 3 {
		t.Fatalf("expected 3 cells, got %d", len(cells))
	}

	want := []float64{100, 50, 0}
	for i, cell := range cells {
		if cell.Average != want[i] {
			t.Fatalf("cell %s: expected %v, got %v", cell.Date, want[i], cell.Average)
		}
	}
	if cells[0].Date != "2024-01-01" {
		t.Fatalf("expected oldest day first, got %s", cells[0].Date)
	}

	if Heatmap([]Habit{h}, logs, day(2024, 1, 3), 0) != nil {
		t.Fatal("expected nil heatmap for non-positive range")
	}
}

func TestHeatmapCountsSkipAsComplete(t *testing.T) {
	h := scenarioHabit()
	logs := []LogEntry{logOn(h.ID, "2024-01-02", 0, StatusSkip, 2)}

	cells := Heatmap([]Habit{h}, logs, day(2024, 1, 2), 1)
	if len(cells) != 1 {
		t.Fatalf("expected 1 cell, got %d", len(cells))
	}
	if cells[0].Average != 100 {
		t.Fatalf("expected skipped day to count as 100, got %v", cells[0].Average)
	}
}

func TestProgressByCategory(t *testing.T) {
	reading := scenarioHabit()
	running := Habit{ID: "run", Category: "Health", DailyGoal: 1, Recurrence: weekdaysOnly, CreatedAt: day(2024, 1, 1), Active: true}
	logs := []LogEntry{
		logOn(reading.ID, "2024-01-01", 5, StatusDone, 2),
		logOn(running.ID, "2024-01-01", 5, StatusDone, 1),
	}

	got := ProgressByCategory([]Habit{reading, running}, logs, day(2024, 1, 3))
	if len(got) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(got))
	}
	if got[0].Category != "Education" || got[0].Percent != 50 {
		t.Fatalf("unexpected first category %+v", got[0])
	}
	if got[1].Category != "Health" || got[1].Percent != 100 {
		t.Fatalf("unexpected second category %+v", got[1])
	}
}

func TestHistoryHandlesDanglingHabit(t *testing.T) {
	h := scenarioHabit()
	logs := append(scenarioLogs(), logOn("gone", "2024-01-04", 3, StatusDone, 1))

	entries := History([]Habit{h}, logs, 2)
	if len(entries) != 2 {
		t.Fatalf("expected limit of 2 entries, got %d", len(entries))
	}
	if entries[0].HabitTitle != DeletedHabitTitle || entries[0].Percent != 0 {
		t.Fatalf("expected placeholder for dangling habit, got %+v", entries[0])
	}
	if entries[1].Date != "2024-01-03" || entries[1].Percent != 50 {
		t.Fatalf("unexpected second entry %+v", entries[1])
	}
}

func TestDetailFor(t *testing.T) {
	detail := DetailFor(scenarioHabit(), scenarioLogs(), day(2024, 1, 3))
	if detail.Streak != 1 || detail.Weekly.SuccessDays != 2 || detail.Goals.Monthly != 46 {
		t.Fatalf("unexpected detail %+v", detail)
	}
	if detail.Today.Value != 1 || detail.Today.Percent != 50 {
		t.Fatalf("unexpected today status %+v", detail.Today)
	}
}
