package service

import (
	"errors"
	"fmt"

	"github.com/habitledger/internal/db"
	"github.com/habitledger/internal/progress"
	"gorm.io/gorm"
)

// ErrNotificationNotFound 在指定通知不存在时返回
var ErrNotificationNotFound = errors.New("notification not found")

const defaultNotificationLimit = 100

// NotificationService 保存由风险检测与徽章评估产生的提醒
type NotificationService struct {
	db *gorm.DB
}

// NewNotificationService 构造 NotificationService
func NewNotificationService(gdb *gorm.DB) *NotificationService {
	return &NotificationService{db: gdb}
}

// List 按时间倒序返回最近的通知
func (s *NotificationService) List(limit int) ([]db.Notification, error) {
	if limit <= 0 {
		limit = defaultNotificationLimit
	}

	var items []db.Notification
	if err := s.db.Order("created_at DESC").Limit(limit).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return items, nil
}

// UnreadCount 返回未读通知数
func (s *NotificationService) UnreadCount() (int64, error) {
	var count int64
	if err := s.db.Model(&db.Notification{}).Where("read = ?", false).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead 将单条通知标为已读
func (s *NotificationService) MarkRead(id string) error {
	result := s.db.Model(&db.Notification{}).Where("id = ?", id).Update("read", true)
	if result.Error != nil {
		return fmt.Errorf("mark notification read: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead 将全部通知标为已读
func (s *NotificationService) MarkAllRead() error {
	if err := s.db.Model(&db.Notification{}).Where("read = ?", false).Update("read", true).Error; err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}

// RaisedOn 返回某日已发出的风险提醒，供检测器去重
func (s *NotificationService) RaisedOn(tx *gorm.DB, dateKey string) ([]progress.RaisedSignal, error) {
	var items []db.Notification
	if err := s.conn(tx).Where("type = ? AND date_key = ?", db.NotificationRisk, dateKey).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list raised signals: %w", err)
	}

	raised := make([]progress.RaisedSignal, 0, len(items))
	for _, n := range items {
		raised = append(raised, progress.RaisedSignal{Kind: progress.RiskKind, HabitID: n.HabitID, Date: n.DateKey})
	}
	return raised, nil
}

// UnlockedBadges 返回已经发过解锁提醒的徽章，作为上一次评估结果
func (s *NotificationService) UnlockedBadges(tx *gorm.DB) ([]progress.BadgeState, error) {
	var kinds []string
	if err := s.conn(tx).Model(&db.Notification{}).
		Where("type = ? AND badge_kind <> ''", db.NotificationAchievement).
		Distinct().Pluck("badge_kind", &kinds).Error; err != nil {
		return nil, fmt.Errorf("list unlocked badges: %w", err)
	}

	states := make([]progress.BadgeState, 0, len(kinds))
	for _, kind := range kinds {
		states = append(states, progress.BadgeState{Badge: progress.Badge{Kind: progress.BadgeKind(kind)}, Unlocked: true})
	}
	return states, nil
}

// Create 保存一条通知
func (s *NotificationService) Create(tx *gorm.DB, n *db.Notification) error {
	if err := s.conn(tx).Create(n).Error; err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

func (s *NotificationService) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return s.db
}
