package service

import (
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/habitledger/internal/calendar"
	"github.com/habitledger/internal/db"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

var (
	// ErrHabitNotFound 在指定习惯不存在时返回
	ErrHabitNotFound = errors.New("habit not found")
	// ErrInvalidHabit 当习惯配置校验失败时返回
	ErrInvalidHabit = errors.New("invalid habit configuration")
)

var (
	validate    = validator.New()
	plainPolicy = bluemonday.StrictPolicy()
)

// Clock 返回当前时间，测试时可注入固定值
type Clock func() time.Time

// HabitService 负责 Habit 数据的增删改查
// 删除为软删除（归档），CreatedOn 创建后不可修改
type HabitService struct {
	db  *gorm.DB
	loc *time.Location
	now Clock
}

// HabitFilter 描述列表过滤条件
type HabitFilter struct {
	Archived *bool
	Category string
	Search   string
}

// HabitInput 定义创建/更新习惯时可配置字段
type HabitInput struct {
	Title               string   `validate:"required,max=120"`
	Description         string   `validate:"max=4000"`
	Unit                string   `validate:"max=32"`
	Category            string   `validate:"max=64"`
	Color               string   `validate:"omitempty,hexcolor"`
	Icon                string   `validate:"max=32"`
	DailyGoal           float64  `validate:"gte=0"`
	WeeklyGoalOverride  *float64 `validate:"omitempty,gte=0"`
	MonthlyGoalOverride *float64 `validate:"omitempty,gte=0"`
	Recurrence          []int    `validate:"dive,min=0,max=6"`
	Active              *bool
}

// NewHabitService 构造 HabitService
func NewHabitService(gdb *gorm.DB, loc *time.Location, now Clock) *HabitService {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &HabitService{db: gdb, loc: loc, now: now}
}

// List 返回习惯集合，支持基本筛选
func (s *HabitService) List(filter HabitFilter) ([]db.Habit, error) {
	var habits []db.Habit

	query := s.db.Model(&db.Habit{})

	if filter.Archived != nil {
		query = query.Where("archived = ?", *filter.Archived)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		like := fmt.Sprintf("%%%s%%", strings.TrimSpace(filter.Search))
		query = query.Where("title LIKE ? OR description LIKE ?", like, like)
	}

	if err := query.Order("created_at ASC").Find(&habits).Error; err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}

	return habits, nil
}

// Get 根据 ID 获取习惯
func (s *HabitService) Get(id string) (*db.Habit, error) {
	var habit db.Habit
	if err := s.db.First(&habit, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHabitNotFound
		}
		return nil, fmt.Errorf("get habit: %w", err)
	}
	return &habit, nil
}

// Create 新建习惯，CreatedOn 取当前日历日
func (s *HabitService) Create(input HabitInput) (*db.Habit, error) {
	input, err := normalizeHabitInput(input)
	if err != nil {
		return nil, err
	}

	habit := db.Habit{
		Title:               input.Title,
		Description:         input.Description,
		Unit:                input.Unit,
		Category:            input.Category,
		Color:               input.Color,
		Icon:                input.Icon,
		DailyGoal:           input.DailyGoal,
		WeeklyGoalOverride:  input.WeeklyGoalOverride,
		MonthlyGoalOverride: input.MonthlyGoalOverride,
		CreatedOn:           calendar.DateKey(s.now().In(s.loc)),
		Active:              input.Active == nil || *input.Active,
	}
	habit.SetDays(input.Recurrence)

	if err := s.db.Create(&habit).Error; err != nil {
		return nil, fmt.Errorf("create habit: %w", err)
	}
	return &habit, nil
}

// Update 更新习惯。单位与分类保持创建时的值，已有记录的快照不受影响。
func (s *HabitService) Update(id string, input HabitInput) (*db.Habit, error) {
	input, err := normalizeHabitInput(input)
	if err != nil {
		return nil, err
	}

	existing, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	existing.Title = input.Title
	existing.Description = input.Description
	existing.Color = input.Color
	existing.Icon = input.Icon
	existing.DailyGoal = input.DailyGoal
	existing.WeeklyGoalOverride = input.WeeklyGoalOverride
	existing.MonthlyGoalOverride = input.MonthlyGoalOverride
	existing.SetDays(input.Recurrence)
	if input.Active != nil && !existing.Archived {
		existing.Active = *input.Active
	}

	if err := s.db.Save(existing).Error; err != nil {
		return nil, fmt.Errorf("update habit: %w", err)
	}
	return existing, nil
}

// Archive 软删除习惯
func (s *HabitService) Archive(id string) (*db.Habit, error) {
	return s.setArchived(id, true)
}

// Restore 取消归档并重新启用
func (s *HabitService) Restore(id string) (*db.Habit, error) {
	return s.setArchived(id, false)
}

func (s *HabitService) setArchived(id string, archived bool) (*db.Habit, error) {
	habit, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	habit.Archived = archived
	habit.Active = !archived

	if err := s.db.Model(habit).Updates(map[string]interface{}{
		"archived": archived,
		"active":   !archived,
	}).Error; err != nil {
		return nil, fmt.Errorf("archive habit: %w", err)
	}
	return habit, nil
}

func normalizeHabitInput(input HabitInput) (HabitInput, error) {
	input.Title = sanitizePlain(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.Unit = sanitizePlain(input.Unit)
	input.Category = sanitizePlain(input.Category)
	input.Color = strings.TrimSpace(input.Color)
	input.Icon = strings.TrimSpace(input.Icon)
	input.Recurrence = uniqueDays(input.Recurrence)

	if err := validate.Struct(input); err != nil {
		return input, fmt.Errorf("%w: %v", ErrInvalidHabit, err)
	}
	return input, nil
}

// sanitizePlain 去掉所有 HTML 标签，保留原始文本字符
func sanitizePlain(value string) string {
	return strings.TrimSpace(html.UnescapeString(plainPolicy.Sanitize(value)))
}

// uniqueDays 去重并按星期排序
func uniqueDays(days []int) []int {
	var seen [7]bool
	for _, d := range days {
		if d < 0 || d > 6 {
			// 越界值交给校验报错
			return days
		}
		seen[d] = true
	}

	out := make([]int, 0, len(days))
	for d, ok := range seen {
		if ok {
			out = append(out, d)
		}
	}
	return out
}
