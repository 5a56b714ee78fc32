package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/habitledger/internal/calendar"
	"github.com/habitledger/internal/db"
	"github.com/habitledger/internal/logger"
	"github.com/habitledger/internal/metrics"
	"github.com/habitledger/internal/progress"
	"gorm.io/gorm"
)

const historyLimit = 50

// ProgressService 是应用状态的唯一持有者：串行执行两种记录变更，
// 并在每次读取时从习惯与记录两个集合重新推导全部视图，不缓存任何派生值。
type ProgressService struct {
	db            *gorm.DB
	habits        *HabitService
	logs          *HabitLogService
	notifications *NotificationService
	loc           *time.Location
	now           Clock
	log           *logger.Logger
	heatmapDays   int
	mu            sync.Mutex
}

// ProgressOptions 为 ProgressService 的可选配置
type ProgressOptions struct {
	Location    *time.Location
	Now         Clock
	Logger      *logger.Logger
	HeatmapDays int
}

// RecordResult 为一次写入产生的结果与提醒
type RecordResult struct {
	Log      *db.HabitLog
	Risk     *progress.RiskSignal
	Unlocked []progress.Badge
}

// DashboardItem 是首页中的单个习惯
type DashboardItem struct {
	Habit  db.Habit
	Today  progress.DailyStatus
	Weekly progress.WeeklyStatus
	Streak int
}

// DashboardView 是首页数据
type DashboardView struct {
	Date           string
	Weekday        string
	WeeklyProgress int
	Items          []DashboardItem
	Unread         int64
}

// HabitProgressView 是单个习惯的统计页数据
type HabitProgressView struct {
	Habit  db.Habit
	Detail progress.HabitDetail
	Logs   []db.HabitLog
}

// StatsView 是统计页数据
type StatsView struct {
	Date           string
	OverallScore   int
	WeeklyProgress int
	Week           []progress.WeekDay
	Heatmap        []progress.HeatmapDay
	Categories     []progress.CategoryProgress
	History        []progress.HistoryEntry
}

// NewProgressService 构造 ProgressService
func NewProgressService(gdb *gorm.DB, habits *HabitService, logs *HabitLogService, notifications *NotificationService, opts ProgressOptions) *ProgressService {
	svc := &ProgressService{
		db:            gdb,
		habits:        habits,
		logs:          logs,
		notifications: notifications,
		loc:           opts.Location,
		now:           opts.Now,
		log:           opts.Logger,
		heatmapDays:   opts.HeatmapDays,
	}
	if svc.loc == nil {
		svc.loc = time.Local
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	if svc.log == nil {
		svc.log = logger.Nop()
	}
	if svc.heatmapDays <= 0 {
		svc.heatmapDays = 30
	}
	return svc
}

// Today 返回配置时区下的当前时间
func (s *ProgressService) Today() time.Time {
	return s.now().In(s.loc)
}

// Location 返回计算日历日所用的时区
func (s *ProgressService) Location() *time.Location {
	return s.loc
}

// RecordProgress 写入记录。若记录的是今天，运行风险检测；随后重新评估徽章。
// 记录提交后，后续检测失败只记日志，仍返回已保存的记录。
func (s *ProgressService) RecordProgress(input HabitLogInput) (*RecordResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.logs.Upsert(input)
	if err != nil {
		return nil, err
	}
	metrics.LogMutations.WithLabelValues("upsert").Inc()
	s.log.Info("habit_log_upserted", "habit_id", record.HabitID, "date", record.LogDate, "value", record.Value, "status", record.Status)

	result := &RecordResult{Log: record}

	habits, logs, err := s.load()
	if err != nil {
		s.log.Error("progress_reload_failed", "habit_id", record.HabitID, "error", err)
		return result, nil
	}

	today := s.Today()
	if record.LogDate == calendar.DateKey(today) {
		signal, err := s.checkRisk(habits, logs, record.HabitID, input.Value, today)
		if err != nil {
			s.log.Error("risk_check_failed", "habit_id", record.HabitID, "error", err)
		} else {
			result.Risk = signal
		}
	}

	unlocked, err := s.reconcileBadges(habits, logs, today)
	if err != nil {
		s.log.Error("badge_reconcile_failed", "error", err)
		return result, nil
	}
	result.Unlocked = unlocked

	return result, nil
}

// DeleteLog 删除一条记录后重新评估徽章
func (s *ProgressService) DeleteLog(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.logs.Delete(id); err != nil {
		return err
	}
	metrics.LogMutations.WithLabelValues("delete").Inc()
	s.log.Info("habit_log_deleted", "log_id", id)

	s.reconcileAfterChange()
	return nil
}

// CreateHabit 创建习惯并重新评估徽章
func (s *ProgressService) CreateHabit(input HabitInput) (*db.Habit, error) {
	return s.mutateHabit(func() (*db.Habit, error) { return s.habits.Create(input) })
}

// UpdateHabit 更新习惯；计划日变化可能改变连胜，因此同样重新评估徽章
func (s *ProgressService) UpdateHabit(id string, input HabitInput) (*db.Habit, error) {
	return s.mutateHabit(func() (*db.Habit, error) { return s.habits.Update(id, input) })
}

// ArchiveHabit 归档习惯并重新评估徽章
func (s *ProgressService) ArchiveHabit(id string) (*db.Habit, error) {
	return s.mutateHabit(func() (*db.Habit, error) { return s.habits.Archive(id) })
}

// RestoreHabit 取消归档并重新评估徽章
func (s *ProgressService) RestoreHabit(id string) (*db.Habit, error) {
	return s.mutateHabit(func() (*db.Habit, error) { return s.habits.Restore(id) })
}

func (s *ProgressService) mutateHabit(apply func() (*db.Habit, error)) (*db.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	habit, err := apply()
	if err != nil {
		return nil, err
	}

	s.reconcileAfterChange()
	return habit, nil
}

// reconcileAfterChange 在变更已提交后评估徽章，失败只记日志；调用方须持有 s.mu
func (s *ProgressService) reconcileAfterChange() {
	if _, err := s.reconcile(); err != nil {
		s.log.Error("badge_reconcile_failed", "error", err)
	}
}

// ReconcileBadges 重新评估徽章，并为首次解锁的徽章保存一次性提醒
func (s *ProgressService) ReconcileBadges() ([]progress.Badge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reconcile()
}

func (s *ProgressService) reconcile() ([]progress.Badge, error) {
	habits, logs, err := s.load()
	if err != nil {
		return nil, err
	}
	return s.reconcileBadges(habits, logs, s.Today())
}

func (s *ProgressService) reconcileBadges(habits []progress.Habit, logs []progress.LogEntry, today time.Time) ([]progress.Badge, error) {
	next := progress.EvaluateBadges(habits, logs, today)

	var unlocked []progress.Badge
	err := s.db.Transaction(func(tx *gorm.DB) error {
		prev, err := s.notifications.UnlockedBadges(tx)
		if err != nil {
			return err
		}

		unlocked = progress.NewlyUnlocked(prev, next)
		for _, badge := range unlocked {
			n := db.Notification{
				Type:      db.NotificationAchievement,
				Title:     "Badge unlocked!",
				Message:   fmt.Sprintf("You earned the %s badge!", badge.Title),
				DateKey:   calendar.DateKey(today),
				BadgeKind: string(badge.Kind),
			}
			if err := s.notifications.Create(tx, &n); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, badge := range unlocked {
		metrics.BadgeUnlocks.WithLabelValues(string(badge.Kind)).Inc()
		s.log.Info("badge_unlocked", "badge", badge.Kind)
	}
	return unlocked, nil
}

func (s *ProgressService) checkRisk(habits []progress.Habit, logs []progress.LogEntry, habitID string, todayValue float64, today time.Time) (*progress.RiskSignal, error) {
	var habit *progress.Habit
	for i := range habits {
		if habits[i].ID == habitID {
			habit = &habits[i]
			break
		}
	}
	if habit == nil || habit.Archived {
		return nil, nil
	}

	var signal *progress.RiskSignal
	err := s.db.Transaction(func(tx *gorm.DB) error {
		raised, err := s.notifications.RaisedOn(tx, calendar.DateKey(today))
		if err != nil {
			return err
		}

		detected, ok := progress.DetectRisk(*habit, logs, todayValue, today, raised)
		if !ok {
			return nil
		}

		if err := s.notifications.Create(tx, &db.Notification{
			Type:    db.NotificationRisk,
			Title:   detected.Title,
			Message: detected.Message,
			DateKey: detected.Date,
			HabitID: detected.HabitID,
		}); err != nil {
			return err
		}
		signal = &detected
		return nil
	})
	if err != nil {
		return nil, err
	}

	if signal != nil {
		metrics.RiskSignals.Inc()
		s.log.Warn("risk_signal_raised", "habit_id", signal.HabitID, "date", signal.Date)
	}
	return signal, nil
}

// Dashboard 返回 ref 当天需要展示的习惯与本周整体进度
func (s *ProgressService) Dashboard(ref time.Time) (*DashboardView, error) {
	stored, err := s.habits.List(HabitFilter{})
	if err != nil {
		return nil, err
	}
	logs, err := s.allLogs()
	if err != nil {
		return nil, err
	}
	habits := toEngineHabits(stored, s.loc)

	byID := make(map[string]db.Habit, len(stored))
	for _, h := range stored {
		byID[h.ID] = h
	}

	view := &DashboardView{
		Date:           calendar.DateKey(ref),
		Weekday:        calendar.WeekdayName(int(ref.Weekday())),
		WeeklyProgress: progress.WeeklyProgress(habits, logs, ref),
	}

	for _, h := range progress.DashboardHabits(habits, logs, ref) {
		detail := progress.DetailFor(h, logs, ref)
		view.Items = append(view.Items, DashboardItem{
			Habit:  byID[h.ID],
			Today:  detail.Today,
			Weekly: detail.Weekly,
			Streak: detail.Streak,
		})
	}

	unread, err := s.notifications.UnreadCount()
	if err != nil {
		return nil, err
	}
	view.Unread = unread

	return view, nil
}

// HabitProgress 返回单个习惯在 ref 的目标、周汇总、连胜与记录
func (s *ProgressService) HabitProgress(id string, ref time.Time) (*HabitProgressView, error) {
	habit, err := s.habits.Get(id)
	if err != nil {
		return nil, err
	}

	stored, err := s.logs.List(HabitLogFilter{HabitID: habit.ID})
	if err != nil {
		return nil, err
	}

	return &HabitProgressView{
		Habit:  *habit,
		Detail: progress.DetailFor(toEngineHabit(*habit, s.loc), toEngineLogs(stored), ref),
		Logs:   stored,
	}, nil
}

// Stats 返回统计页所需的汇总
func (s *ProgressService) Stats(ref time.Time) (*StatsView, error) {
	habits, logs, err := s.load()
	if err != nil {
		return nil, err
	}

	return &StatsView{
		Date:           calendar.DateKey(ref),
		OverallScore:   progress.OverallScore(habits, logs, ref),
		WeeklyProgress: progress.WeeklyProgress(habits, logs, ref),
		Week:           progress.WeekGrid(habits, logs, ref),
		Heatmap:        progress.Heatmap(habits, logs, ref, s.heatmapDays),
		Categories:     progress.ProgressByCategory(habits, logs, ref),
		History:        progress.History(habits, logs, historyLimit),
	}, nil
}

// Badges 返回当前全部徽章的解锁状态
func (s *ProgressService) Badges(ref time.Time) ([]progress.BadgeState, error) {
	habits, logs, err := s.load()
	if err != nil {
		return nil, err
	}
	return progress.EvaluateBadges(habits, logs, ref), nil
}

func (s *ProgressService) load() ([]progress.Habit, []progress.LogEntry, error) {
	stored, err := s.habits.List(HabitFilter{})
	if err != nil {
		return nil, nil, err
	}
	logs, err := s.allLogs()
	if err != nil {
		return nil, nil, err
	}
	return toEngineHabits(stored, s.loc), logs, nil
}

func (s *ProgressService) allLogs() ([]progress.LogEntry, error) {
	stored, err := s.logs.List(HabitLogFilter{})
	if err != nil {
		return nil, err
	}
	return toEngineLogs(stored), nil
}
