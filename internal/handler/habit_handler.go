package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/habitledger/internal/db"
	"github.com/habitledger/internal/locale"
	"github.com/habitledger/internal/progress"
	"github.com/habitledger/internal/service"
)

type habitPayload struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Unit        string   `json:"unit"`
	Category    string   `json:"category"`
	Color       string   `json:"color"`
	Icon        string   `json:"icon"`
	DailyGoal   float64  `json:"daily_goal"`
	WeeklyGoal  *float64 `json:"weekly_goal"`
	MonthlyGoal *float64 `json:"monthly_goal"`
	Recurrence  []int    `json:"recurrence"`
	Active      *bool    `json:"active"`
}

type habitLogPayload struct {
	Value  float64 `json:"value"`
	Status string  `json:"status"`
}

// ListHabits 返回习惯列表 JSON
func (a *API) ListHabits(c *gin.Context) {
	filter := service.HabitFilter{
		Archived: parseBoolQuery(c, "archived"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}

	habits, err := a.habits.List(filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, locale.MsgListHabitsFailed)
		return
	}

	items := make([]gin.H, 0, len(habits))
	for _, habit := range habits {
		items = append(items, habitToPayload(habit))
	}

	respondSuccess(c, http.StatusOK, gin.H{"habits": items})
}

// GetHabit 返回单个习惯详情
func (a *API) GetHabit(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, locale.MsgInvalidHabitID)
		return
	}

	habit, err := a.habits.Get(id)
	if err != nil {
		handleHabitError(c, err)
		return
	}

	payload := habitToPayload(*habit)
	payload["description_html"] = renderDescription(habit.Description)
	respondSuccess(c, http.StatusOK, gin.H{"habit": payload})
}

// CreateHabit 创建习惯
func (a *API) CreateHabit(c *gin.Context) {
	var payload habitPayload
	if !bindJSON(c, &payload) {
		return
	}

	habit, err := a.progress.CreateHabit(payload.toInput())
	if err != nil {
		handleHabitError(c, err)
		return
	}
	a.log.Info("habit_created", "habit_id", habit.ID, "title", habit.Title)

	respondSuccess(c, http.StatusCreated, gin.H{"habit": habitToPayload(*habit)})
}

// UpdateHabit 更新习惯
func (a *API) UpdateHabit(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, locale.MsgInvalidHabitID)
		return
	}

	var payload habitPayload
	if !bindJSON(c, &payload) {
		return
	}

	habit, err := a.progress.UpdateHabit(id, payload.toInput())
	if err != nil {
		handleHabitError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"habit": habitToPayload(*habit)})
}

// ArchiveHabit 归档习惯，历史记录保留
func (a *API) ArchiveHabit(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, locale.MsgInvalidHabitID)
		return
	}

	habit, err := a.progress.ArchiveHabit(id)
	if err != nil {
		handleHabitError(c, err)
		return
	}
	a.log.Info("habit_archived", "habit_id", habit.ID)

	respondSuccess(c, http.StatusOK, gin.H{"habit": habitToPayload(*habit)})
}

// RestoreHabit 取消归档
func (a *API) RestoreHabit(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, locale.MsgInvalidHabitID)
		return
	}

	habit, err := a.progress.RestoreHabit(id)
	if err != nil {
		handleHabitError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"habit": habitToPayload(*habit)})
}

// ListHabitLogs 返回某习惯的记录，可按 start/end 过滤
func (a *API) ListHabitLogs(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, locale.MsgInvalidHabitID)
		return
	}

	if _, err := a.habits.Get(id); err != nil {
		handleHabitError(c, err)
		return
	}

	logs, err := a.habitLogs.List(service.HabitLogFilter{
		HabitID: id,
		Start:   strings.TrimSpace(c.Query("start")),
		End:     strings.TrimSpace(c.Query("end")),
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, locale.MsgListLogsFailed)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"logs": serializeHabitLogs(logs)})
}

// UpsertHabitLog 写入某习惯某日的进度，同日重复提交会覆盖数值与状态
func (a *API) UpsertHabitLog(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, locale.MsgInvalidHabitID)
		return
	}

	var payload habitLogPayload
	if !bindJSON(c, &payload) {
		return
	}

	result, err := a.progress.RecordProgress(service.HabitLogInput{
		HabitID: id,
		Date:    c.Param("date"),
		Value:   payload.Value,
		Status:  payload.Status,
	})
	if err != nil {
		handleHabitError(c, err)
		return
	}

	response := gin.H{
		"log":      serializeHabitLog(*result.Log),
		"unlocked": serializeBadges(result.Unlocked),
	}
	if result.Risk != nil {
		response["risk"] = gin.H{
			"habit_id": result.Risk.HabitID,
			"date":     result.Risk.Date,
			"title":    result.Risk.Title,
			"message":  result.Risk.Message,
		}
	}

	respondSuccess(c, http.StatusOK, response)
}

// DeleteHabitLog 删除单条记录
func (a *API) DeleteHabitLog(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, locale.MsgInvalidLogID)
		return
	}

	if err := a.progress.DeleteLog(id); err != nil {
		handleHabitError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"deleted": true})
}

func (p habitPayload) toInput() service.HabitInput {
	return service.HabitInput{
		Title:               p.Title,
		Description:         p.Description,
		Unit:                p.Unit,
		Category:            p.Category,
		Color:               p.Color,
		Icon:                p.Icon,
		DailyGoal:           p.DailyGoal,
		WeeklyGoalOverride:  p.WeeklyGoal,
		MonthlyGoalOverride: p.MonthlyGoal,
		Recurrence:          p.Recurrence,
		Active:              p.Active,
	}
}

func habitToPayload(habit db.Habit) gin.H {
	item := gin.H{
		"id":          habit.ID,
		"title":       habit.Title,
		"description": habit.Description,
		"unit":        habit.Unit,
		"category":    habit.Category,
		"color":       habit.Color,
		"icon":        habit.Icon,
		"daily_goal":  habit.DailyGoal,
		"recurrence":  habit.Days(),
		"created_on":  habit.CreatedOn,
		"active":      habit.Active,
		"archived":    habit.Archived,
	}

	if habit.WeeklyGoalOverride != nil {
		item["weekly_goal"] = *habit.WeeklyGoalOverride
	}
	if habit.MonthlyGoalOverride != nil {
		item["monthly_goal"] = *habit.MonthlyGoalOverride
	}

	return item
}

func serializeHabitLogs(logs []db.HabitLog) []gin.H {
	items := make([]gin.H, 0, len(logs))
	for _, log := range logs {
		items = append(items, serializeHabitLog(log))
	}
	return items
}

func serializeHabitLog(log db.HabitLog) gin.H {
	payload := gin.H{
		"id":         log.ID,
		"habit_id":   log.HabitID,
		"date":       log.LogDate,
		"value":      log.Value,
		"status":     log.Status,
		"updated_at": log.UpdatedAt.Format(time.RFC3339),
	}
	if log.TargetSnapshot != nil {
		payload["target_snapshot"] = *log.TargetSnapshot
	}
	return payload
}

func serializeBadges(badges []progress.Badge) []gin.H {
	items := make([]gin.H, 0, len(badges))
	for _, b := range badges {
		items = append(items, gin.H{
			"id":          b.Kind,
			"title":       b.Title,
			"description": b.Description,
			"icon":        b.Icon,
		})
	}
	return items
}

func handleHabitError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrHabitNotFound):
		respondError(c, http.StatusNotFound, locale.MsgHabitNotFound)
	case errors.Is(err, service.ErrInvalidHabit):
		respondError(c, http.StatusBadRequest, locale.MsgInvalidHabit)
	case errors.Is(err, service.ErrHabitLogNotFound):
		respondError(c, http.StatusNotFound, locale.MsgLogNotFound)
	case errors.Is(err, service.ErrInvalidLogStatus):
		respondError(c, http.StatusBadRequest, locale.MsgInvalidLogStatus)
	case errors.Is(err, service.ErrInvalidLogDate):
		respondError(c, http.StatusBadRequest, locale.MsgInvalidLogDate)
	case errors.Is(err, service.ErrNotificationNotFound):
		respondError(c, http.StatusNotFound, locale.MsgNotificationNotFound)
	default:
		c.Error(err)
		respondError(c, http.StatusInternalServerError, locale.MsgInternal)
	}
}
