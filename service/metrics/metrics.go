/*
 * @module service/metrics/metrics
 * @description Prometheus指标定义，覆盖增强运行、外部端点调用和控制桥触发
 * @architecture 基础设施层
 * @documentReference ai_docs/enhancement_engine_design.md
 * @stateFlow 业务事件 -> 计数器/直方图 -> /metrics 暴露
 * @rules 指标标签基数受控，仅使用有限枚举值
 * @dependencies github.com/prometheus/client_golang/prometheus
 * @refs api/routes.go
 */

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EnhancementRunsTotal 增强运行总数，按入口模式和结果状态分
	EnhancementRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enhancement_runs_total",
			Help: "Total number of enhancement runs by mode and status.",
		},
		[]string{"mode", "status"},
	)

	// EnhancementDurationSeconds 增强运行耗时分布
	EnhancementDurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "enhancement_duration_seconds",
			Help:    "Enhancement run duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
	)

	// AIInvocationsTotal 外部生成端点调用总数，按结果状态分
	AIInvocationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_invocations_total",
			Help: "Total number of external generation endpoint invocations by status.",
		},
		[]string{"status"},
	)

	// BridgeTriggersTotal 控制桥触发总数，按槽位和结果状态分
	BridgeTriggersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bridge_triggers_total",
			Help: "Total number of control bridge trigger executions by slot and status.",
		},
		[]string{"slot", "status"},
	)
)
