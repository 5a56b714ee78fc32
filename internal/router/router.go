package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/habitledger/internal/handler"
	"github.com/habitledger/internal/logger"
	"github.com/habitledger/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options 描述路由所需的依赖
type Options struct {
	API         *handler.API
	Logger      *logger.Logger
	CORSOrigins []string
}

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(opts Options) *gin.Engine {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := gin.New()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestLogger(log))

	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := opts.API
	v := r.Group("/api")
	v.Use(handler.LocaleMiddleware())
	{
		// 习惯
		v.GET("/habits", api.ListHabits)
		v.POST("/habits", api.CreateHabit)
		v.GET("/habits/:id", api.GetHabit)
		v.PUT("/habits/:id", api.UpdateHabit)
		v.DELETE("/habits/:id", api.ArchiveHabit)
		v.POST("/habits/:id/archive", api.ArchiveHabit)
		v.POST("/habits/:id/restore", api.RestoreHabit)
		v.GET("/habits/:id/progress", api.GetHabitProgress)

		// 记录
		v.GET("/habits/:id/logs", api.ListHabitLogs)
		v.PUT("/habits/:id/logs/:date", api.UpsertHabitLog)
		v.DELETE("/logs/:id", api.DeleteHabitLog)

		// 汇总
		v.GET("/dashboard", api.GetDashboard)
		v.GET("/stats", api.GetStats)
		v.GET("/badges", api.GetBadges)

		// 通知
		v.GET("/notifications", api.ListNotifications)
		v.POST("/notifications/read-all", api.MarkAllNotificationsRead)
		v.POST("/notifications/:id/read", api.MarkNotificationRead)
	}

	return r
}
