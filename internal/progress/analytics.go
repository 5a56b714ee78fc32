package progress

import (
	"cmp"
	"math"
	"slices"
	"time"

	"github.com/habitledger/internal/calendar"
)

// DeletedHabitTitle 是找不到所属习惯时的占位标题
const DeletedHabitTitle = "Deleted"

// DailyStatus 描述习惯某日的完成情况
type DailyStatus struct {
	Date      string
	Value     float64
	Target    float64
	Percent   int
	Logged    bool
	Skipped   bool
	Recovered bool
	Done      bool
}

// DailyStatusFor 计算某日状态。未达标但本周总量已满足周目标时视为“被周目标挽回”，
// 挽回只看 IsWeeklyMet，不看成功日数。
func DailyStatusFor(h Habit, logs []LogEntry, day time.Time) DailyStatus {
	return dailyStatus(h, newLogIndex(logs), day)
}

func dailyStatus(h Habit, idx logIndex, day time.Time) DailyStatus {
	status := DailyStatus{Date: calendar.DateKey(day), Target: h.DailyGoal}

	var snapshot *float64
	if entry, ok := idx.find(h.ID, day); ok {
		status.Logged = true
		status.Value = entry.Value
		status.Skipped = entry.Status == StatusSkip
		status.Target = entry.EffectiveTarget(h)
		snapshot = entry.TargetSnapshot
	}

	status.Percent = CompletionPercentage(h, status.Value, snapshot)
	if !status.Skipped && status.Value < status.Target {
		status.Recovered = weeklyStatus(h, idx, day).IsWeeklyMet
	}
	status.Done = status.Percent >= 100 || status.Skipped || status.Recovered
	return status
}

// DashboardHabits 返回今天需要展示的习惯：启用、未归档，且今天是计划星期或今天已有记录
func DashboardHabits(habits []Habit, logs []LogEntry, today time.Time) []Habit {
	idx := newLogIndex(logs)
	out := make([]Habit, 0, len(habits))
	for _, h := range habits {
		if !h.Active || h.Archived {
			continue
		}
		if _, logged := idx.find(h.ID, today); logged || calendar.Contains(h.Recurrence, today.Weekday()) {
			out = append(out, h)
		}
	}
	return out
}

// OverallScore 以通用周目标衡量未归档习惯的本周完成度均值，周目标为 0 的习惯按 0 计入
func OverallScore(habits []Habit, logs []LogEntry, ref time.Time) int {
	idx := newLogIndex(logs)
	visible := Visible(habits)
	if len(visible) == 0 {
		return 0
	}

	var sum float64
	for _, h := range visible {
		sum += capPercent(weeklyStatus(h, idx, ref).TotalValue, ResolveGoals(h, ref).Weekly)
	}
	return int(math.Round(sum / float64(len(visible))))
}

// WeekDay 是周视图中的一天
type WeekDay struct {
	Date      string
	Weekday   string
	Scheduled int
	Succeeded int
	Ratio     float64
	Future    bool
}

// WeekGrid 统计 ref 所在周每天的计划习惯数与达标（含 skip）数
func WeekGrid(habits []Habit, logs []LogEntry, ref time.Time) []WeekDay {
	idx := newLogIndex(logs)
	visible := Visible(habits)
	monday := calendar.MondayOf(ref)
	today := calendar.Day(ref)

	days := make([]WeekDay, 0, 7)
	for i := 0; i < 7; i++ {
		d := calendar.AddDays(monday, i)
		day := WeekDay{
			Date:    calendar.DateKey(d),
			Weekday: calendar.WeekdayName(int(d.Weekday())),
			Future:  d.After(today),
		}
		for _, h := range visible {
			if !h.ScheduledOn(d) {
				continue
			}
			day.Scheduled++
			if entry, ok := idx.find(h.ID, d); ok && (entry.Value >= entry.EffectiveTarget(h) || entry.Status == StatusSkip) {
				day.Succeeded++
			}
		}
		if day.Scheduled > 0 {
			day.Ratio = float64(day.Succeeded) / float64(day.Scheduled)
		}
		days = append(days, day)
	}
	return days
}

// HeatmapDay 是热力图中的一天
type HeatmapDay struct {
	Date      string
	Scheduled int
	Average   float64
}

// Heatmap 返回截至 ref 的最近 days 天，每天为计划习惯完成度的均值，缺失记录按 0 计，skip 按 100 计
func Heatmap(habits []Habit, logs []LogEntry, ref time.Time, days int) []HeatmapDay {
	if days <= 0 {
		return nil
	}

	idx := newLogIndex(logs)
	visible := Visible(habits)
	end := calendar.Day(ref)

	out := make([]HeatmapDay, 0, days)
	for i := days - 1; i >= 0; i-- {
		d := calendar.AddDays(end, -i)
		cell := HeatmapDay{Date: calendar.DateKey(d)}

		var total float64
		for _, h := range visible {
			if !h.ScheduledOn(d) {
				continue
			}
			cell.Scheduled++
			entry, ok := idx.find(h.ID, d)
			if !ok {
				continue
			}
			if entry.Status == StatusSkip {
				total += 100
				continue
			}
			total += capPercent(entry.Value, entry.EffectiveTarget(h))
		}
		if cell.Scheduled > 0 {
			cell.Average = total / float64(cell.Scheduled)
		}
		out = append(out, cell)
	}
	return out
}

// CategoryProgress 是某分类下习惯本周完成度的均值
type CategoryProgress struct {
	Category   string
	HabitCount int
	Percent    int
}

// ProgressByCategory 按分类聚合本周完成度，分类按名称排序
func ProgressByCategory(habits []Habit, logs []LogEntry, ref time.Time) []CategoryProgress {
	idx := newLogIndex(logs)

	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, h := range Visible(habits) {
		counts[h.Category]++
		sums[h.Category] += capPercent(weeklyStatus(h, idx, ref).TotalValue, ResolveGoals(h, ref).Weekly)
	}

	out := make([]CategoryProgress, 0, len(counts))
	for category, count := range counts {
		out = append(out, CategoryProgress{
			Category:   category,
			HabitCount: count,
			Percent:    int(math.Round(sums[category] / float64(count))),
		})
	}
	slices.SortFunc(out, func(a, b CategoryProgress) int {
		return cmp.Compare(a.Category, b.Category)
	})
	return out
}

// HistoryEntry 是历史列表中的一条记录
type HistoryEntry struct {
	LogEntry
	HabitTitle string
	Percent    int
}

// History 按日期倒序返回最多 limit 条记录；所属习惯缺失时使用占位标题，完成度为 0
func History(habits []Habit, logs []LogEntry, limit int) []HistoryEntry {
	byID := make(map[string]Habit, len(habits))
	for _, h := range habits {
		byID[h.ID] = h
	}

	sorted := slices.Clone(logs)
	slices.SortStableFunc(sorted, func(a, b LogEntry) int {
		return cmp.Compare(b.Date, a.Date)
	})
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}

	out := make([]HistoryEntry, 0, len(sorted))
	for _, l := range sorted {
		entry := HistoryEntry{LogEntry: l, HabitTitle: DeletedHabitTitle}
		if h, ok := byID[l.HabitID]; ok {
			entry.HabitTitle = h.Title
			entry.Percent = CompletionPercentage(h, l.Value, l.TargetSnapshot)
		}
		out = append(out, entry)
	}
	return out
}

// HabitDetail 汇总单个习惯的统计视图
type HabitDetail struct {
	Goals  Goals
	Weekly WeeklyStatus
	Streak int
	Today  DailyStatus
}

// DetailFor 计算单个习惯在 ref 的目标、周汇总、连胜与当日状态
func DetailFor(h Habit, logs []LogEntry, ref time.Time) HabitDetail {
	idx := newLogIndex(logs)
	return HabitDetail{
		Goals:  ResolveGoals(h, ref),
		Weekly: weeklyStatus(h, idx, ref),
		Streak: streak(h, idx, ref),
		Today:  dailyStatus(h, idx, ref),
	}
}
