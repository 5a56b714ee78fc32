package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/habitledger/internal/calendar"
	"github.com/habitledger/internal/locale"
	"github.com/habitledger/internal/progress"
)

// GetDashboard 返回当天需要展示的习惯、完成状态与本周整体进度
func (a *API) GetDashboard(c *gin.Context) {
	ref, ok := a.referenceDate(c)
	if !ok {
		respondError(c, http.StatusBadRequest, locale.MsgInvalidDate)
		return
	}

	view, err := a.progress.Dashboard(ref)
	if err != nil {
		handleHabitError(c, err)
		return
	}

	items := make([]gin.H, 0, len(view.Items))
	for _, item := range view.Items {
		items = append(items, gin.H{
			"habit":  habitToPayload(item.Habit),
			"today":  serializeDailyStatus(item.Today),
			"weekly": serializeWeeklyStatus(item.Weekly),
			"streak": item.Streak,
		})
	}

	respondSuccess(c, http.StatusOK, gin.H{
		"date":            view.Date,
		"weekday":         view.Weekday,
		"weekly_progress": view.WeeklyProgress,
		"habits":          items,
		"unread":          view.Unread,
	})
}

// GetHabitProgress 返回单个习惯的目标、周汇总、连胜与记录
func (a *API) GetHabitProgress(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, locale.MsgInvalidHabitID)
		return
	}

	ref, ok := a.referenceDate(c)
	if !ok {
		respondError(c, http.StatusBadRequest, locale.MsgInvalidDate)
		return
	}

	view, err := a.progress.HabitProgress(id, ref)
	if err != nil {
		handleHabitError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{
		"habit": habitToPayload(view.Habit),
		"goals": gin.H{
			"daily":   view.Detail.Goals.Daily,
			"weekly":  view.Detail.Goals.Weekly,
			"monthly": view.Detail.Goals.Monthly,
		},
		"weekly": serializeWeeklyStatus(view.Detail.Weekly),
		"streak": view.Detail.Streak,
		"today":  serializeDailyStatus(view.Detail.Today),
		"logs":   serializeHabitLogs(view.Logs),
	})
}

// GetStats 返回统计页汇总
func (a *API) GetStats(c *gin.Context) {
	ref, ok := a.referenceDate(c)
	if !ok {
		respondError(c, http.StatusBadRequest, locale.MsgInvalidDate)
		return
	}

	stats, err := a.progress.Stats(ref)
	if err != nil {
		handleHabitError(c, err)
		return
	}

	week := make([]gin.H, 0, len(stats.Week))
	for _, d := range stats.Week {
		week = append(week, gin.H{
			"date":      d.Date,
			"weekday":   d.Weekday,
			"scheduled": d.Scheduled,
			"succeeded": d.Succeeded,
			"ratio":     d.Ratio,
			"future":    d.Future,
		})
	}

	heatmap := make([]gin.H, 0, len(stats.Heatmap))
	for _, d := range stats.Heatmap {
		heatmap = append(heatmap, gin.H{
			"date":      d.Date,
			"scheduled": d.Scheduled,
			"average":   d.Average,
		})
	}

	categories := make([]gin.H, 0, len(stats.Categories))
	for _, cp := range stats.Categories {
		categories = append(categories, gin.H{
			"category":    cp.Category,
			"habit_count": cp.HabitCount,
			"percent":     cp.Percent,
		})
	}

	history := make([]gin.H, 0, len(stats.History))
	for _, h := range stats.History {
		history = append(history, gin.H{
			"id":          h.ID,
			"habit_id":    h.HabitID,
			"habit_title": h.HabitTitle,
			"date":        h.Date,
			"value":       h.Value,
			"status":      h.Status,
			"percent":     h.Percent,
		})
	}

	respondSuccess(c, http.StatusOK, gin.H{
		"date":            stats.Date,
		"overall_score":   stats.OverallScore,
		"weekly_progress": stats.WeeklyProgress,
		"week":            week,
		"heatmap":         heatmap,
		"categories":      categories,
		"history":         history,
	})
}

// GetBadges 返回徽章目录及解锁状态
func (a *API) GetBadges(c *gin.Context) {
	states, err := a.progress.Badges(a.progress.Today())
	if err != nil {
		handleHabitError(c, err)
		return
	}

	items := make([]gin.H, 0, len(states))
	for _, s := range states {
		items = append(items, gin.H{
			"id":          s.Kind,
			"title":       s.Title,
			"description": s.Description,
			"icon":        s.Icon,
			"unlocked":    s.Unlocked,
		})
	}

	respondSuccess(c, http.StatusOK, gin.H{"badges": items})
}

func serializeDailyStatus(s progress.DailyStatus) gin.H {
	return gin.H{
		"date":      s.Date,
		"value":     s.Value,
		"target":    s.Target,
		"percent":   s.Percent,
		"logged":    s.Logged,
		"skipped":   s.Skipped,
		"recovered": s.Recovered,
		"done":      s.Done,
	}
}

func serializeWeeklyStatus(s progress.WeeklyStatus) gin.H {
	return gin.H{
		"week_start":    calendar.DateKey(s.WeekStart),
		"total_value":   s.TotalValue,
		"weekly_goal":   s.WeeklyGoal,
		"is_weekly_met": s.IsWeeklyMet,
		"success_days":  s.SuccessDays,
		"active_days":   s.ActiveDays,
		"percent":       s.Percent(),
	}
}
