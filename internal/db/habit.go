package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Habit 定义了习惯模型
// Recurrence 以 JSON 数组保存星期索引（0 为周日）
// CreatedOn 为习惯生效的日历日（YYYY-MM-DD），创建后不可修改
// Archived 为软删除标记，归档后历史记录仍可查询
type Habit struct {
	ID                  string `gorm:"primaryKey;size:36"`
	Title               string
	Description         string
	Unit                string
	Category            string `gorm:"index"`
	Color               string
	Icon                string
	DailyGoal           float64
	WeeklyGoalOverride  *float64
	MonthlyGoalOverride *float64
	Recurrence          datatypes.JSON
	CreatedOn           string `gorm:"size:10"`
	Active              bool   `gorm:"index"`
	Archived            bool   `gorm:"index"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// BeforeCreate 为新习惯分配 uuid
func (h *Habit) BeforeCreate(*gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}

// Days 解析 Recurrence，损坏的数据视为空集合
func (h Habit) Days() []int {
	var days []int
	if len(h.Recurrence) == 0 {
		return days
	}
	if err := json.Unmarshal(h.Recurrence, &days); err != nil {
		return nil
	}
	return days
}

// SetDays 序列化星期索引
func (h *Habit) SetDays(days []int) {
	if days == nil {
		days = []int{}
	}
	raw, _ := json.Marshal(days)
	h.Recurrence = datatypes.JSON(raw)
}

// HabitLog 记录习惯某日的进度
// Habit + LogDate 采用唯一索引，保证每日至多一条；TargetSnapshot 在首次写入时固定
// 不设外键：习惯只会归档，不会物理删除，悬空记录由上层容忍
type HabitLog struct {
	ID             string  `gorm:"primaryKey;size:36"`
	HabitID        string  `gorm:"size:36;index;index:idx_habit_log_unique,unique"`
	LogDate        string  `gorm:"size:10;index;index:idx_habit_log_unique,unique"`
	Value          float64
	TargetSnapshot *float64
	Status         string `gorm:"size:16"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// BeforeCreate 为新记录分配 uuid
func (l *HabitLog) BeforeCreate(*gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// TableName 重写确保唯一索引作用到 habit_id + log_date
func (HabitLog) TableName() string {
	return "habit_logs"
}
