// Package progress 是习惯进度引擎：目标推导、周汇总、连胜、徽章与风险检测。
// 所有函数都是纯函数，输入为习惯集合、日志集合与参考时间，不做任何 I/O。
package progress

import (
	"time"

	"github.com/habitledger/internal/calendar"
)

// LogStatus 表示单日记录的状态
type LogStatus string

const (
	StatusDone      LogStatus = "done"
	StatusSkip      LogStatus = "skip"
	StatusFail      LogStatus = "fail"
	StatusRecovered LogStatus = "recovered"
)

// Valid 判断是否为可写入的状态；recovered 只由历史数据带入
func (s LogStatus) Valid() bool {
	switch s {
	case StatusDone, StatusSkip, StatusFail:
		return true
	}
	return false
}

// maintainsStreak 为 true 的状态既不增加也不打断连胜
func (s LogStatus) maintainsStreak() bool {
	return s == StatusSkip || s == StatusRecovered
}

// Habit 是引擎视角下的习惯定义
type Habit struct {
	ID                  string
	Title               string
	Category            string
	DailyGoal           float64
	WeeklyGoalOverride  *float64
	MonthlyGoalOverride *float64
	Recurrence          []int // 0=周日 .. 6=周六
	CreatedAt           time.Time
	Active              bool
	Archived            bool
}

// ScheduledOn 判断 day 是否为计划日：星期命中且不早于创建日
func (h Habit) ScheduledOn(day time.Time) bool {
	return calendar.Contains(h.Recurrence, day.Weekday()) && !calendar.Before(day, h.CreatedAt)
}

// LogEntry 是某习惯某日的一条记录
type LogEntry struct {
	ID             string
	HabitID        string
	Date           string // calendar.KeyFormat
	Value          float64
	TargetSnapshot *float64
	Status         LogStatus
}

// EffectiveTarget 优先使用记录时的目标快照
func (l LogEntry) EffectiveTarget(h Habit) float64 {
	if l.TargetSnapshot != nil {
		return *l.TargetSnapshot
	}
	return h.DailyGoal
}

// logIndex 以 habitID+日期键 定位记录
type logIndex map[string]LogEntry

func indexKey(habitID, dateKey string) string {
	return habitID + "|" + dateKey
}

func newLogIndex(logs []LogEntry) logIndex {
	idx := make(logIndex, len(logs))
	for _, l := range logs {
		idx[indexKey(l.HabitID, l.Date)] = l
	}
	return idx
}

func (idx logIndex) find(habitID string, day time.Time) (LogEntry, bool) {
	l, ok := idx[indexKey(habitID, calendar.DateKey(day))]
	return l, ok
}

// FindLog 返回 habitID 在 day 当天的记录
func FindLog(logs []LogEntry, habitID string, day time.Time) (LogEntry, bool) {
	key := calendar.DateKey(day)
	for _, l := range logs {
		if l.HabitID == habitID && l.Date == key {
			return l, true
		}
	}
	return LogEntry{}, false
}

// Visible 返回未归档的习惯
func Visible(habits []Habit) []Habit {
	out := make([]Habit, 0, len(habits))
	for _, h := range habits {
		if !h.Archived {
			out = append(out, h)
		}
	}
	return out
}

// ResolveSnapshot 决定写入时的目标快照：已有快照保持不变，否则取习惯当前日目标。
// 习惯不存在时快照为 0。
func ResolveSnapshot(existing *LogEntry, habit *Habit) float64 {
	if existing != nil && existing.TargetSnapshot != nil {
		return *existing.TargetSnapshot
	}
	if habit != nil {
		return habit.DailyGoal
	}
	return 0
}

// Float 返回 v 的指针，便于构造可选目标
func Float(v float64) *float64 {
	return &v
}
