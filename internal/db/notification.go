package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 通知类型
const (
	NotificationDaily       = "daily"
	NotificationSystem      = "system"
	NotificationAchievement = "achievement"
	NotificationRisk        = "risk"
)

// Notification 保存已发出的提醒
// DateKey 为发出当日，风险提醒按 (HabitID, DateKey) 去重，徽章提醒按 BadgeKind 去重
type Notification struct {
	ID        string `gorm:"primaryKey;size:36"`
	Type      string `gorm:"size:16;index"`
	Title     string
	Message   string
	DateKey   string `gorm:"size:10;index"`
	HabitID   string `gorm:"size:36;index"`
	BadgeKind string `gorm:"size:32;index"`
	Read      bool
	CreatedAt time.Time
}

// BeforeCreate 为新通知分配 uuid
func (n *Notification) BeforeCreate(*gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
