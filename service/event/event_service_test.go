/*
 * @module service/event/event_service_test
 * @description 事件推送服务单元测试，覆盖连接管理和非阻塞广播
 * @architecture 测试层
 * @documentReference ai_docs/control_bridge_design.md
 * @stateFlow 建立连接 -> 广播事件 -> 断言接收与清理
 * @rules 广播不阻塞，队列满的客户端被跳过
 * @dependencies github.com/stretchr/testify/assert
 * @refs service/event/event_service.go
 */

package event

import (
	"context"
	"testing"
	"time"

	"enhancement-service/service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventService_AddAndRemoveConnection(t *testing.T) {
	service := NewEventService()

	client := service.AddSSEConnection("alice", "conn-1", "127.0.0.1")
	assert.Equal(t, "conn-1", client.ID)
	assert.Equal(t, "alice", client.UserName)
	assert.Equal(t, 1, service.ConnectionCount())

	service.AddSSEConnection("alice", "conn-2", "127.0.0.1")
	service.AddSSEConnection("bob", "conn-3", "10.0.0.2")
	assert.Equal(t, 3, service.ConnectionCount())

	service.RemoveSSEConnection("alice", "conn-1")
	assert.Equal(t, 2, service.ConnectionCount())

	// 连接移除时Done通道被关闭
	select {
	case <-client.Done:
	case <-time.After(time.Second):
		t.Fatal("Done通道未关闭")
	}

	// 重复移除为空操作
	service.RemoveSSEConnection("alice", "conn-1")
	assert.Equal(t, 2, service.ConnectionCount())
}

func TestEventService_BroadcastEvent(t *testing.T) {
	service := NewEventService()
	alice := service.AddSSEConnection("alice", "conn-1", "127.0.0.1")
	bob := service.AddSSEConnection("bob", "conn-2", "10.0.0.2")

	service.BroadcastEvent(EventBridgeStatus, map[string]interface{}{"status": "Working"})

	for _, client := range []*SSEClient{alice, bob} {
		select {
		case event := <-client.Channel:
			assert.Equal(t, EventBridgeStatus, event.EventType)
			assert.Equal(t, "Working", event.Data["status"])
			assert.False(t, event.Timestamp.IsZero())
		case <-time.After(time.Second):
			t.Fatal("客户端未收到广播事件")
		}
	}
}

func TestEventService_BroadcastDoesNotBlockOnFullQueue(t *testing.T) {
	service := NewEventService()
	client := service.AddSSEConnection("alice", "conn-1", "127.0.0.1")

	// 填满客户端事件队列后继续广播，调用方不得阻塞
	for i := 0; i < cap(client.Channel)+10; i++ {
		service.BroadcastEvent(EventEnhancementDone, map[string]interface{}{"seq": i})
	}

	assert.Len(t, client.Channel, cap(client.Channel))
}

func TestEventService_Stop(t *testing.T) {
	service := NewEventService()
	client := service.AddSSEConnection("alice", "conn-1", "127.0.0.1")

	service.Stop()

	require.Equal(t, 0, service.ConnectionCount())
	select {
	case <-client.Done:
	case <-time.After(time.Second):
		t.Fatal("Done通道未关闭")
	}
}

func TestKafkaPublisher_DisabledWithoutBrokers(t *testing.T) {
	publisher := NewKafkaPublisher("   ")

	assert.False(t, publisher.Enabled())
	assert.NoError(t, publisher.Close())

	// 禁用状态下发布为空操作
	err := publisher.PublishPackageCreated(context.Background(), &models.EnhancementReport{ID: "r-1"})
	assert.NoError(t, err)
}

func TestKafkaPublisher_EnabledWithBrokers(t *testing.T) {
	publisher := NewKafkaPublisher("broker-1:9092,broker-2:9092")
	defer publisher.Close()

	assert.True(t, publisher.Enabled())
}
