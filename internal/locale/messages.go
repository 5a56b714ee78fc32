package locale

// MessageKey 标识一条面向用户的错误提示，同时作为响应中的 code
type MessageKey string

const (
	MsgInvalidPayload            MessageKey = "invalid_payload"
	MsgInvalidHabitID            MessageKey = "invalid_habit_id"
	MsgInvalidLogID              MessageKey = "invalid_log_id"
	MsgInvalidNotificationID     MessageKey = "invalid_notification_id"
	MsgInvalidDate               MessageKey = "invalid_date"
	MsgHabitNotFound             MessageKey = "habit_not_found"
	MsgInvalidHabit              MessageKey = "invalid_habit"
	MsgLogNotFound               MessageKey = "log_not_found"
	MsgInvalidLogStatus          MessageKey = "invalid_log_status"
	MsgInvalidLogDate            MessageKey = "invalid_log_date"
	MsgNotificationNotFound      MessageKey = "notification_not_found"
	MsgListHabitsFailed          MessageKey = "list_habits_failed"
	MsgListLogsFailed            MessageKey = "list_logs_failed"
	MsgListNotificationsFailed   MessageKey = "list_notifications_failed"
	MsgUpdateNotificationsFailed MessageKey = "update_notifications_failed"
	MsgInternal                  MessageKey = "internal_error"
)

type text struct {
	english string
	chinese string
}

var catalog = map[MessageKey]text{
	MsgInvalidPayload:            {"Invalid request payload", "请求参数不合法"},
	MsgInvalidHabitID:            {"Invalid habit id", "无效的习惯ID"},
	MsgInvalidLogID:              {"Invalid log id", "无效的记录ID"},
	MsgInvalidNotificationID:     {"Invalid notification id", "无效的通知ID"},
	MsgInvalidDate:               {"Invalid date", "无效的日期"},
	MsgHabitNotFound:             {"Habit not found", "习惯不存在"},
	MsgInvalidHabit:              {"Invalid habit configuration", "习惯配置无效"},
	MsgLogNotFound:               {"Log not found", "记录不存在"},
	MsgInvalidLogStatus:          {"Invalid log status", "无效的记录状态"},
	MsgInvalidLogDate:            {"Invalid log date", "无效的记录日期"},
	MsgNotificationNotFound:      {"Notification not found", "通知不存在"},
	MsgListHabitsFailed:          {"Failed to list habits", "获取习惯列表失败"},
	MsgListLogsFailed:            {"Failed to list logs", "获取记录失败"},
	MsgListNotificationsFailed:   {"Failed to list notifications", "获取通知失败"},
	MsgUpdateNotificationsFailed: {"Failed to update notifications", "更新通知失败"},
	MsgInternal:                  {"Internal server error", "服务器内部错误"},
}

// Message 返回 key 在指定语言下的文本，未知 key 原样返回
func Message(language string, key MessageKey) string {
	t, ok := catalog[key]
	if !ok {
		return string(key)
	}
	return Pick(language, t.english, t.chinese)
}
