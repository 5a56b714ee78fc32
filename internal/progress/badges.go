package progress

import "time"

// BadgeKind 标识一枚徽章。集合固定，不能在运行时扩展。
type BadgeKind string

const (
	BadgeFirstStep   BadgeKind = "b_first_step"
	BadgeWeekStreak  BadgeKind = "b_week_streak"
	BadgeMonthStreak BadgeKind = "b_month_streak"
	BadgeEarlyBird   BadgeKind = "b_early_bird"
	BadgeCollector   BadgeKind = "b_collector"
)

const (
	weekStreakThreshold  = 7
	monthStreakThreshold = 30
	earlyBirdLogCount    = 10
	collectorHabitCount  = 5
)

// Badge 是徽章的展示信息
type Badge struct {
	Kind        BadgeKind
	Title       string
	Description string
	Icon        string
}

// BadgeState 是一次评估中某徽章的解锁结果
type BadgeState struct {
	Badge
	Unlocked bool
}

var badgeCatalog = [...]Badge{
	{Kind: BadgeFirstStep, Title: "First Step", Description: "Recorded your first progress.", Icon: "🌱"},
	{Kind: BadgeWeekStreak, Title: "Weekly Streak", Description: "Reached a 7 day streak on a habit.", Icon: "🔥"},
	{Kind: BadgeMonthStreak, Title: "Monument of Consistency", Description: "Reached a 30 day streak on a habit.", Icon: "👑"},
	{Kind: BadgeEarlyBird, Title: "Early Bird", Description: "Recorded 10 entries in total.", Icon: "🌅"},
	{Kind: BadgeCollector, Title: "Collector", Description: "Created 5 different habits.", Icon: "🎒"},
}

// Badges 返回徽章目录的副本
func Badges() []Badge {
	out := make([]Badge, len(badgeCatalog))
	copy(out, badgeCatalog[:])
	return out
}

// unlocked 对每种徽章求值；归档习惯不参与连胜与数量判断
func (k BadgeKind) unlocked(habits []Habit, logs []LogEntry, idx logIndex, today time.Time) bool {
	switch k {
	case BadgeFirstStep:
		for _, l := range logs {
			if l.Value > 0 {
				return true
			}
		}
		return false
	case BadgeWeekStreak:
		return anyStreakAtLeast(habits, idx, today, weekStreakThreshold)
	case BadgeMonthStreak:
		return anyStreakAtLeast(habits, idx, today, monthStreakThreshold)
	case BadgeEarlyBird:
		return len(logs) >= earlyBirdLogCount
	case BadgeCollector:
		return len(Visible(habits)) >= collectorHabitCount
	default:
		return false
	}
}

func anyStreakAtLeast(habits []Habit, idx logIndex, today time.Time, threshold int) bool {
	for _, h := range habits {
		if h.Archived {
			continue
		}
		if streak(h, idx, today) >= threshold {
			return true
		}
	}
	return false
}

// EvaluateBadges 对全部徽章求值，无状态、幂等
func EvaluateBadges(habits []Habit, logs []LogEntry, today time.Time) []BadgeState {
	idx := newLogIndex(logs)
	states := make([]BadgeState, 0, len(badgeCatalog))
	for _, b := range badgeCatalog {
		states = append(states, BadgeState{Badge: b, Unlocked: b.Kind.unlocked(habits, logs, idx, today)})
	}
	return states
}

// NewlyUnlocked 返回 next 中已解锁而 prev 中未解锁的徽章
func NewlyUnlocked(prev, next []BadgeState) []Badge {
	before := make(map[BadgeKind]bool, len(prev))
	for _, s := range prev {
		before[s.Kind] = s.Unlocked
	}

	var out []Badge
	for _, s := range next {
		if s.Unlocked && !before[s.Kind] {
			out = append(out, s.Badge)
		}
	}
	return out
}
