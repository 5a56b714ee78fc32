package progress

import (
	"time"

	"github.com/habitledger/internal/calendar"
)

// maxStreakScanDays 限制回溯天数
const maxStreakScanDays = 365

// Streak 从 today 向前逐日回溯，返回当前连续达标的计划日数。
//
//   - 早于创建日即停止（today 本身除外）
//   - 非计划日跳过
//   - skip/recovered 维持连胜但不计数
//   - 达到目标（优先快照）计数 +1
//   - 今天未完成或未记录不算中断，当天还没结束
//   - 其余情况中断
func Streak(h Habit, logs []LogEntry, today time.Time) int {
	return streak(h, newLogIndex(logs), today)
}

func streak(h Habit, idx logIndex, today time.Time) int {
	count := 0
	start := calendar.Day(today)

	for i := 0; i < maxStreakScanDays; i++ {
		d := calendar.AddDays(start, -i)
		if i > 0 && calendar.Before(d, h.CreatedAt) {
			break
		}
		if !calendar.Contains(h.Recurrence, d.Weekday()) {
			continue
		}

		entry, ok := idx.find(h.ID, d)
		switch {
		case ok && entry.Status.maintainsStreak():
			continue
		case ok && entry.Value >= entry.EffectiveTarget(h):
			count++
		case i == 0:
			continue
		default:
			return count
		}
	}

	return count
}
