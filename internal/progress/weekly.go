package progress

import (
	"math"
	"time"

	"github.com/habitledger/internal/calendar"
)

// WeeklyStatus 汇总某习惯在参考周（周一至周日）的完成情况
type WeeklyStatus struct {
	WeekStart   time.Time
	TotalValue  float64
	WeeklyGoal  float64
	IsWeeklyMet bool
	SuccessDays int
	ActiveDays  int
}

// WeeklyStatusFor 扫描 ref 所在周的七天。
// 非计划日的记录同样计入总量（加练），但只有计划日才可能算作成功日。
// 周目标按本周实际计划日数折算，覆盖创建当周不完整的情况。
func WeeklyStatusFor(h Habit, logs []LogEntry, ref time.Time) WeeklyStatus {
	return weeklyStatus(h, newLogIndex(logs), ref)
}

func weeklyStatus(h Habit, idx logIndex, ref time.Time) WeeklyStatus {
	monday := calendar.MondayOf(ref)
	status := WeeklyStatus{WeekStart: monday}

	for i := 0; i < 7; i++ {
		d := calendar.AddDays(monday, i)
		scheduled := h.ScheduledOn(d)
		if scheduled {
			status.ActiveDays++
		}

		entry, ok := idx.find(h.ID, d)
		if !ok {
			continue
		}
		status.TotalValue += entry.Value
		if scheduled && (entry.Value >= entry.EffectiveTarget(h) || entry.Status == StatusSkip) {
			status.SuccessDays++
		}
	}

	status.WeeklyGoal = h.DailyGoal * float64(status.ActiveDays)
	if h.WeeklyGoalOverride != nil {
		status.WeeklyGoal = *h.WeeklyGoalOverride
	}
	status.IsWeeklyMet = status.WeeklyGoal > 0 && status.TotalValue >= status.WeeklyGoal

	return status
}

// Percent 返回本周总量相对周目标的百分比，封顶 100
func (s WeeklyStatus) Percent() float64 {
	return capPercent(s.TotalValue, s.WeeklyGoal)
}

// WeeklyProgress 计算所有启用且未归档习惯的本周平均完成度。
// 周目标为 0 的习惯既不计入分子也不计入分母。
func WeeklyProgress(habits []Habit, logs []LogEntry, ref time.Time) int {
	idx := newLogIndex(logs)

	var sum float64
	count := 0
	for _, h := range habits {
		if !h.Active || h.Archived {
			continue
		}
		status := weeklyStatus(h, idx, ref)
		if status.WeeklyGoal <= 0 {
			continue
		}
		sum += status.Percent()
		count++
	}

	if count == 0 {
		return 0
	}
	return int(math.Round(sum / float64(count)))
}
