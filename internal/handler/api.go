package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/habitledger/internal/calendar"
	"github.com/habitledger/internal/logger"
	"github.com/habitledger/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db            *gorm.DB
	habits        *service.HabitService
	habitLogs     *service.HabitLogService
	notifications *service.NotificationService
	progress      *service.ProgressService
	log           *logger.Logger
}

// Options 控制 API 的时区、时钟与日志
type Options struct {
	Location    *time.Location
	Now         service.Clock
	Logger      *logger.Logger
	HeatmapDays int
}

// NewAPI constructs a handler set with shared services.
func NewAPI(db *gorm.DB, opts Options) *API {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}

	habits := service.NewHabitService(db, opts.Location, opts.Now)
	habitLogs := service.NewHabitLogService(db, opts.Location)
	notifications := service.NewNotificationService(db)

	return &API{
		db:            db,
		habits:        habits,
		habitLogs:     habitLogs,
		notifications: notifications,
		progress: service.NewProgressService(db, habits, habitLogs, notifications, service.ProgressOptions{
			Location:    opts.Location,
			Now:         opts.Now,
			Logger:      opts.Logger,
			HeatmapDays: opts.HeatmapDays,
		}),
		log: opts.Logger,
	}
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}

// Progress exposes the progress service for scripts and background jobs.
func (a *API) Progress() *service.ProgressService {
	return a.progress
}

// referenceDate 解析 ?date=YYYY-MM-DD，缺省为今天
func (a *API) referenceDate(c *gin.Context) (time.Time, bool) {
	raw := strings.TrimSpace(c.Query("date"))
	if raw == "" {
		return a.progress.Today(), true
	}

	day, err := calendar.ParseDateKey(raw, a.progress.Location())
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}
