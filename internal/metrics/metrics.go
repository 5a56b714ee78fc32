// Package metrics 定义 Prometheus 指标
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ReqCount HTTP 请求总数
	ReqCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habitledger_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// ReqDuration HTTP 请求耗时
	ReqDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "habitledger_request_duration_seconds",
			Help:    "Request duration seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// LogMutations 打卡写入与删除次数
	LogMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habitledger_log_mutations_total",
			Help: "Habit log upserts and deletes",
		},
		[]string{"op"},
	)

	// RiskSignals 已发出的风险提醒数
	RiskSignals = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "habitledger_risk_signals_total",
			Help: "Risk notifications raised",
		},
	)

	// BadgeUnlocks 按徽章统计的解锁次数
	BadgeUnlocks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habitledger_badge_unlocks_total",
			Help: "Badges unlocked",
		},
		[]string{"badge"},
	)
)

var registerOnce sync.Once

// Register 将指标注册到默认 Registry，可重复调用
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(ReqCount, ReqDuration, LogMutations, RiskSignals, BadgeUnlocks)
	})
}
