package progress

import (
	"fmt"
	"strings"
	"time"

	"github.com/habitledger/internal/calendar"
)

// RaisedSignal 描述调用方已发出的提醒，用于当日去重
type RaisedSignal struct {
	Kind    string
	HabitID string
	Date    string
}

// RiskKind 是风险提醒的类型标识
const RiskKind = "risk"

// RiskSignal 表示某习惯连续两个计划日低于目标
type RiskSignal struct {
	HabitID string
	Date    string
	Title   string
	Message string
}

// DetectRisk 在“昨天是计划日、今天与昨天都低于目标”时给出风险提醒。
// 昨天的目标优先使用其记录快照。raised 中已有同一习惯当天的风险提醒时不再重复。
// 该函数只提出建议，不修改任何状态。
func DetectRisk(h Habit, logs []LogEntry, todayValue float64, today time.Time, raised []RaisedSignal) (RiskSignal, bool) {
	day := calendar.Day(today)
	yesterday := calendar.AddDays(day, -1)

	if !h.ScheduledOn(yesterday) {
		return RiskSignal{}, false
	}

	yesterdayValue := 0.0
	yesterdayTarget := h.DailyGoal
	if entry, ok := FindLog(logs, h.ID, yesterday); ok {
		yesterdayValue = entry.Value
		yesterdayTarget = entry.EffectiveTarget(h)
	}

	if todayValue >= h.DailyGoal || yesterdayValue >= yesterdayTarget {
		return RiskSignal{}, false
	}

	todayKey := calendar.DateKey(day)
	// 去重按习惯+日期，而不是每天全局只提醒一次
	for _, r := range raised {
		if r.Kind == RiskKind && r.HabitID == h.ID && r.Date == todayKey {
			return RiskSignal{}, false
		}
	}

	title := strings.TrimSpace(h.Title)
	if title == "" {
		title = "Habit"
	}

	return RiskSignal{
		HabitID: h.ID,
		Date:    todayKey,
		Title:   "Heads up!",
		Message: fmt.Sprintf("%s has been under target for 2 days.", title),
	}, true
}
