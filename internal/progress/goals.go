package progress

import (
	"math"
	"time"

	"github.com/habitledger/internal/calendar"
)

// Goals 为某参考日的日/周/月目标
type Goals struct {
	Daily   float64
	Weekly  float64
	Monthly float64
}

// ResolveGoals 计算习惯在 ref 所在周期的目标。
// 周目标不按创建日折算（折算由 WeeklyStatusFor 完成），月目标按创建日折算。
func ResolveGoals(h Habit, ref time.Time) Goals {
	daily := h.DailyGoal

	weekly := daily * float64(calendar.DistinctDays(h.Recurrence))
	if h.WeeklyGoalOverride != nil {
		weekly = *h.WeeklyGoalOverride
	}

	monthly := daily * float64(calendar.ScheduledDaysInMonth(ref.Year(), ref.Month(), h.Recurrence, h.CreatedAt))
	if h.MonthlyGoalOverride != nil {
		monthly = *h.MonthlyGoalOverride
	}

	return Goals{Daily: daily, Weekly: weekly, Monthly: monthly}
}

// CompletionPercentage 返回 value 相对目标的完成度，封顶 100。
// snapshot 为空时使用当前日目标；目标为 0 时恒为 0。
func CompletionPercentage(h Habit, value float64, snapshot *float64) int {
	target := h.DailyGoal
	if snapshot != nil {
		target = *snapshot
	}
	return int(math.Round(capPercent(value, target)))
}

// capPercent 返回 value/target 的百分比，封顶 100，target<=0 时为 0
func capPercent(value, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return math.Min(100, value/target*100)
}
