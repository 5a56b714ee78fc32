// Package calendar 提供日期键、星期与月份天数等纯函数，全部按调用方传入时间的时区计算。
package calendar

import (
	"strings"
	"time"
)

// KeyFormat 是日期键格式，整个系统以它判断“同一天”
const KeyFormat = "2006-01-02"

var weekdayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// DateKey 返回 t 所在日历日的 YYYY-MM-DD 表示
func DateKey(t time.Time) string {
	return t.Format(KeyFormat)
}

// ParseDateKey 在 loc 中解析日期键，返回当日零点
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(KeyFormat, strings.TrimSpace(key), loc)
}

// WeekdayName 返回星期缩写，0 为周日；越界返回空字符串
func WeekdayName(index int) string {
	if index < 0 || index >= len(weekdayNames) {
		return ""
	}
	return weekdayNames[index]
}

// Day 截断到当日零点
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// AddDays 按日历日偏移，跨夏令时也保持零点
func AddDays(t time.Time, days int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+days, 0, 0, 0, 0, t.Location())
}

// MondayOf 返回 t 所在周的周一零点。周一至周日为一周，周日偏移 6。
func MondayOf(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return AddDays(t, 1-weekday)
}

// Before 比较两个日历日，忽略时分秒
func Before(a, b time.Time) bool {
	return DateKey(a) < DateKey(b)
}

// Contains 判断 weekday 是否在 recurrence 中
func Contains(recurrence []int, weekday time.Weekday) bool {
	for _, day := range recurrence {
		if day == int(weekday) {
			return true
		}
	}
	return false
}

// DistinctDays 返回 recurrence 中不同且合法的星期数
func DistinctDays(recurrence []int) int {
	var seen [7]bool
	count := 0
	for _, day := range recurrence {
		if day < 0 || day > 6 || seen[day] {
			continue
		}
		seen[day] = true
		count++
	}
	return count
}

// ScheduledDaysInMonth 统计 year/month 中星期落在 recurrence 的天数，
// 起点为 max(当月 1 日, createdAt)，不会跨入下个月。
func ScheduledDaysInMonth(year int, month time.Month, recurrence []int, createdAt time.Time) int {
	loc := createdAt.Location()
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)

	start := first
	if created := Day(createdAt); created.After(first) {
		start = created
	}

	count := 0
	for d := start; d.Month() == month && d.Year() == year; d = AddDays(d, 1) {
		if Contains(recurrence, d.Weekday()) {
			count++
		}
	}
	return count
}
