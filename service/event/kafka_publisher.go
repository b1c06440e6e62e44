/*
 * @module service/event/kafka_publisher
 * @description Kafka事件发布器，将增强报告生成事件发布到消息总线供下游系统消费
 * @architecture 适配器模式 - 封装第三方Kafka客户端
 * @documentReference ai_docs/control_bridge_design.md
 * @stateFlow 增强完成 -> 事件序列化 -> 发布到topic
 * @rules 未配置broker时发布为空操作，发布失败不影响主流程
 * @dependencies github.com/segmentio/kafka-go, encoding/json
 * @refs service/bridge/dispatcher.go
 */

package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"enhancement-service/service/models"

	"github.com/segmentio/kafka-go"
)

// 增强事件topic
const TopicPackageCreated = "enhancement.package.created"

// PackageCreatedEvent 增强包生成事件
type PackageCreatedEvent struct {
	ReportID  string    `json:"report_id"`
	Title     string    `json:"title"`
	Source    string    `json:"source"`
	Mode      string    `json:"mode"`
	WordCount int       `json:"word_count"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// KafkaPublisher Kafka事件发布器
// brokers 为空时所有发布调用直接返回，服务可在无消息总线的环境中运行
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher 创建Kafka事件发布器
// brokers 为逗号分隔的broker地址列表，空串表示禁用发布
func NewKafkaPublisher(brokers string) *KafkaPublisher {
	brokers = strings.TrimSpace(brokers)
	if brokers == "" {
		return &KafkaPublisher{}
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(brokers, ",")...),
		Topic:        TopicPackageCreated,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
	}

	slog.Info("Kafka事件发布器已启用", "brokers", brokers, "topic", TopicPackageCreated)
	return &KafkaPublisher{writer: writer}
}

// Enabled 发布器是否启用
func (p *KafkaPublisher) Enabled() bool {
	return p.writer != nil
}

// PublishPackageCreated 发布增强包生成事件
func (p *KafkaPublisher) PublishPackageCreated(ctx context.Context, report *models.EnhancementReport) error {
	if p.writer == nil {
		return nil
	}

	payload, err := json.Marshal(PackageCreatedEvent{
		ReportID:  report.ID,
		Title:     report.Title,
		Source:    report.Source,
		Mode:      report.Mode,
		WordCount: report.WordCount,
		CreatedBy: report.CreatedBy,
		CreatedAt: report.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("序列化增强事件失败: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(report.ID),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("发布增强事件失败: %w", err)
	}

	return nil
}

// Close 关闭发布器
func (p *KafkaPublisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
