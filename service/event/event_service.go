/*
 * @module service/event/event_service
 * @description 事件推送服务，通过SSE向前端推送调度器状态变化和增强完成通知
 * @architecture 事件驱动架构 - 业务服务层
 * @documentReference ai_docs/control_bridge_design.md
 * @stateFlow 状态变化 -> 事件分发 -> 客户端推送
 * @rules 推送为尽力而为，客户端队列满时丢弃而不阻塞调度器
 * @dependencies 标准库
 * @refs service/bridge/dispatcher.go, api/controllers/event_controller.go
 */

package event

import (
	"log/slog"
	"sync"
	"time"
)

// 推送事件类型
const (
	EventBridgeStatus       = "bridge_status"
	EventEnhancementDone    = "enhancement_done"
	EventEnhancementFailure = "enhancement_failure"
)

// SSEEvent 推送给客户端的事件
type SSEEvent struct {
	EventType string                 `json:"event_type"`
	Data      map[string]interface{} `json:"data"`
	Timestamp time.Time              `json:"timestamp"`
}

// SSEClient SSE客户端连接
type SSEClient struct {
	ID       string
	UserName string
	Channel  chan *SSEEvent
	Done     chan bool
	ClientIP string
}

// EventService 事件推送服务
type EventService struct {
	connections map[string]map[string]*SSEClient // userName -> connectionID -> client
	mu          sync.RWMutex
}

// NewEventService 创建事件服务实例
func NewEventService() *EventService {
	return &EventService{
		connections: make(map[string]map[string]*SSEClient),
	}
}

// AddSSEConnection 添加SSE连接
func (s *EventService) AddSSEConnection(userName, connectionID, clientIP string) *SSEClient {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.connections[userName] == nil {
		s.connections[userName] = make(map[string]*SSEClient)
	}

	client := &SSEClient{
		ID:       connectionID,
		UserName: userName,
		Channel:  make(chan *SSEEvent, 100), // 缓冲100个事件
		Done:     make(chan bool),
		ClientIP: clientIP,
	}

	s.connections[userName][connectionID] = client

	slog.Info("SSE连接已建立", "user", userName, "connection_id", connectionID, "client_ip", clientIP)
	return client
}

// RemoveSSEConnection 移除SSE连接
func (s *EventService) RemoveSSEConnection(userName, connectionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if userConnections, exists := s.connections[userName]; exists {
		if client, exists := userConnections[connectionID]; exists {
			close(client.Done)
			delete(userConnections, connectionID)

			if len(userConnections) == 0 {
				delete(s.connections, userName)
			}

			slog.Info("SSE连接已断开", "user", userName, "connection_id", connectionID)
		}
	}
}

// BroadcastEvent 广播事件给所有连接
// 客户端事件队列满时跳过该连接，不阻塞调用方
func (s *EventService) BroadcastEvent(eventType string, data map[string]interface{}) {
	event := &SSEEvent{
		EventType: eventType,
		Data:      data,
		Timestamp: time.Now(),
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for userName, userConnections := range s.connections {
		for _, client := range userConnections {
			select {
			case client.Channel <- event:
			default:
				slog.Warn("客户端事件队列已满，跳过推送", "user", userName, "connection_id", client.ID)
			}
		}
	}
}

// ConnectionCount 当前活跃连接数
func (s *EventService) ConnectionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, userConnections := range s.connections {
		count += len(userConnections)
	}
	return count
}

// Stop 停止事件服务，关闭所有连接
func (s *EventService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, userConnections := range s.connections {
		for _, client := range userConnections {
			close(client.Done)
		}
	}
	s.connections = make(map[string]map[string]*SSEClient)

	slog.Info("事件服务已停止")
}
