package progress

import (
	"time"
)

var weekdaysOnly = []int{1, 2, 3, 4, 5}
var everyDay = []int{0, 1, 2, 3, 4, 5, 6}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, time.UTC)
}

func logOn(habitID, date string, value float64, status LogStatus, snapshot float64) LogEntry {
	return LogEntry{
		ID:             habitID + "-" + date,
		HabitID:        habitID,
		Date:           date,
		Value:          value,
		TargetSnapshot: Float(snapshot),
		Status:         status,
	}
}

// scenarioHabit 创建于 2024-01-01（周一），工作日每天 2
func scenarioHabit() Habit {
	return Habit{
		ID:         "h",
		Title:      "Reading",
		Category:   "Education",
		DailyGoal:  2,
		Recurrence: weekdaysOnly,
		CreatedAt:  day(2024, 1, 1),
		Active:     true,
	}
}

func scenarioLogs() []LogEntry {
	return []LogEntry{
		logOn("h", "2024-01-01", 2, StatusDone, 2),
		logOn("h", "2024-01-02", 0, StatusSkip, 2),
		logOn("h", "2024-01-03", 1, StatusFail, 2),
	}
}

// dailyRun 生成从 start 起连续 n 天、每天达到 value 的记录
func dailyRun(habitID string, start time.Time, n int, value float64) []LogEntry {
	logs := make([]LogEntry, 0, n)
	for i := 0; i < n; i++ {
		key := start.AddDate(0, 0, i).Format("2006-01-02")
		logs = append(logs, logOn(habitID, key, value, StatusDone, value))
	}
	return logs
}
