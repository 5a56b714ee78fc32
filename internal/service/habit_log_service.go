package service

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/habitledger/internal/calendar"
	"github.com/habitledger/internal/db"
	"github.com/habitledger/internal/progress"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrHabitLogNotFound 在指定记录不存在时返回
	ErrHabitLogNotFound = errors.New("habit log not found")
	// ErrInvalidLogStatus 当记录状态不是 done/skip/fail 时返回
	ErrInvalidLogStatus = errors.New("invalid habit log status")
	// ErrInvalidLogDate 当日期不是 YYYY-MM-DD 时返回
	ErrInvalidLogDate = errors.New("invalid habit log date")
)

// HabitLogService 负责记录的写入与删除，是两种变更操作的唯一入口
type HabitLogService struct {
	db  *gorm.DB
	loc *time.Location
	mu  sync.Mutex
}

// HabitLogInput 定义写入记录时的输入对象
type HabitLogInput struct {
	HabitID string
	Date    string // 2006-01-02
	Value   float64
	Status  string
}

// HabitLogFilter 指定查询条件，Start/End 为闭区间日期键，可为空
type HabitLogFilter struct {
	HabitID string
	Start   string
	End     string
}

// NewHabitLogService 构造 HabitLogService
func NewHabitLogService(gdb *gorm.DB, loc *time.Location) *HabitLogService {
	if loc == nil {
		loc = time.Local
	}
	return &HabitLogService{db: gdb, loc: loc}
}

// Upsert 写入某习惯某日的记录：存在则更新数值与状态，否则创建。
// 读取已有记录与写入在同一事务内完成；目标快照一经写入不再改变。
func (s *HabitLogService) Upsert(input HabitLogInput) (*db.HabitLog, error) {
	status := progress.LogStatus(strings.TrimSpace(strings.ToLower(input.Status)))
	if status == "" {
		status = progress.StatusDone
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidLogStatus, input.Status)
	}

	day, err := calendar.ParseDateKey(input.Date, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidLogDate, input.Date)
	}
	dateKey := calendar.DateKey(day)

	s.mu.Lock()
	defer s.mu.Unlock()

	var record db.HabitLog
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var habit db.Habit
		if err := tx.First(&habit, "id = ?", input.HabitID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrHabitNotFound
			}
			return err
		}

		var existing *progress.LogEntry
		var current db.HabitLog
		lookup := tx.Where("habit_id = ? AND log_date = ?", habit.ID, dateKey).Limit(1).Find(&current)
		if lookup.Error != nil {
			return lookup.Error
		}
		if lookup.RowsAffected > 0 {
			entry := toEngineLog(current)
			existing = &entry
		}

		engineHabit := toEngineHabit(habit, s.loc)
		snapshot := progress.ResolveSnapshot(existing, &engineHabit)

		record = db.HabitLog{
			HabitID:        habit.ID,
			LogDate:        dateKey,
			Value:          input.Value,
			TargetSnapshot: &snapshot,
			Status:         string(status),
		}

		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "habit_id"}, {Name: "log_date"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "status", "target_snapshot", "updated_at"}),
		}).Create(&record).Error; err != nil {
			return err
		}

		// 冲突时库中保留原 ID，需重新读取
		var saved db.HabitLog
		if err := tx.Where("habit_id = ? AND log_date = ?", habit.ID, dateKey).First(&saved).Error; err != nil {
			return err
		}
		record = saved
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrHabitNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("upsert habit log: %w", err)
	}

	return &record, nil
}

// Get 根据 ID 获取记录
func (s *HabitLogService) Get(id string) (*db.HabitLog, error) {
	var record db.HabitLog
	if err := s.db.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHabitLogNotFound
		}
		return nil, fmt.Errorf("get habit log: %w", err)
	}
	return &record, nil
}

// Delete 删除指定记录，不产生级联影响
func (s *HabitLogService) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := s.db.Delete(&db.HabitLog{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete habit log: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrHabitLogNotFound
	}
	return nil
}

// List 返回满足条件的记录，按日期升序
func (s *HabitLogService) List(filter HabitLogFilter) ([]db.HabitLog, error) {
	var logs []db.HabitLog

	query := s.db.Model(&db.HabitLog{})
	if filter.HabitID != "" {
		query = query.Where("habit_id = ?", filter.HabitID)
	}
	if filter.Start != "" {
		query = query.Where("log_date >= ?", filter.Start)
	}
	if filter.End != "" {
		query = query.Where("log_date <= ?", filter.End)
	}

	if err := query.Order("log_date ASC").Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list habit logs: %w", err)
	}
	return logs, nil
}
