package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/habitledger/internal/locale"
)

const defaultNotificationPageSize = 50

// ListNotifications 返回最近的提醒
func (a *API) ListNotifications(c *gin.Context) {
	items, err := a.notifications.List(parseLimitQuery(c, defaultNotificationPageSize))
	if err != nil {
		respondError(c, http.StatusInternalServerError, locale.MsgListNotificationsFailed)
		return
	}

	unread, err := a.notifications.UnreadCount()
	if err != nil {
		respondError(c, http.StatusInternalServerError, locale.MsgListNotificationsFailed)
		return
	}

	payload := make([]gin.H, 0, len(items))
	for _, n := range items {
		entry := gin.H{
			"id":         n.ID,
			"type":       n.Type,
			"title":      n.Title,
			"message":    n.Message,
			"date":       n.DateKey,
			"read":       n.Read,
			"created_at": n.CreatedAt.Format(time.RFC3339),
		}
		if n.HabitID != "" {
			entry["habit_id"] = n.HabitID
		}
		if n.BadgeKind != "" {
			entry["badge"] = n.BadgeKind
		}
		payload = append(payload, entry)
	}

	respondSuccess(c, http.StatusOK, gin.H{"notifications": payload, "unread": unread})
}

// MarkNotificationRead 将单条通知标为已读
func (a *API) MarkNotificationRead(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, locale.MsgInvalidNotificationID)
		return
	}

	if err := a.notifications.MarkRead(id); err != nil {
		handleHabitError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"read": true})
}

// MarkAllNotificationsRead 将全部通知标为已读
func (a *API) MarkAllNotificationsRead(c *gin.Context) {
	if err := a.notifications.MarkAllRead(); err != nil {
		respondError(c, http.StatusInternalServerError, locale.MsgUpdateNotificationsFailed)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"read": true})
}
