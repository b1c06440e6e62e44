/*
 * @module service/bridge/mqtt_trigger
 * @description MQTT触发源，订阅触发主题并将消息转换为控制桥触发事件
 * @architecture 适配器模式 - 封装第三方MQTT客户端
 * @documentReference ai_docs/control_bridge_design.md
 * @stateFlow 连接broker -> 订阅触发主题 -> 消息解析 -> 提交调度器
 * @rules broker未配置时触发源禁用；消息解析失败只记日志不中断订阅
 * @dependencies github.com/eclipse/paho.mqtt.golang, enhancement-service/service/models
 * @refs service/bridge/dispatcher.go
 */

package bridge

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"enhancement-service/service/models"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// 触发主题
const triggerTopic = "enhancement/bridge/trigger"

// MQTTTrigger MQTT触发源
// 订阅 enhancement/bridge/trigger 主题，消息体为 TriggerEvent JSON
type MQTTTrigger struct {
	dispatcher *Dispatcher
	client     mqtt.Client
	broker     string
}

// NewMQTTTrigger 创建MQTT触发源
// broker 为空时返回禁用实例，Start 为空操作
func NewMQTTTrigger(broker, clientID string, dispatcher *Dispatcher) *MQTTTrigger {
	trigger := &MQTTTrigger{
		dispatcher: dispatcher,
		broker:     strings.TrimSpace(broker),
	}
	if trigger.broker == "" {
		return trigger
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(trigger.broker)
	opts.SetClientID(clientID)
	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	opts.SetOnConnectHandler(trigger.onConnected)
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		slog.Warn("MQTT连接丢失", "broker", trigger.broker, "error", err)
	})

	trigger.client = mqtt.NewClient(opts)
	return trigger
}

// Enabled 触发源是否启用
func (t *MQTTTrigger) Enabled() bool {
	return t.client != nil
}

// Start 连接broker并开始订阅
func (t *MQTTTrigger) Start() error {
	if t.client == nil {
		return nil
	}

	slog.Info("正在连接MQTT broker", "broker", t.broker)
	if token := t.client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("MQTT连接失败: %w", token.Error())
	}
	return nil
}

// Stop 断开broker连接
func (t *MQTTTrigger) Stop() {
	if t.client == nil {
		return
	}
	t.client.Disconnect(250) // 等待250ms让消息发送完成
	slog.Info("MQTT触发源已停止")
}

// onConnected 连接（含重连）成功后订阅触发主题
func (t *MQTTTrigger) onConnected(client mqtt.Client) {
	token := client.Subscribe(triggerTopic, 1, t.handleMessage)
	if token.Wait() && token.Error() != nil {
		slog.Error("订阅触发主题失败", "topic", triggerTopic, "error", token.Error())
		return
	}
	slog.Info("MQTT触发源已就绪", "topic", triggerTopic)
}

func (t *MQTTTrigger) handleMessage(_ mqtt.Client, message mqtt.Message) {
	var trigger models.TriggerEvent
	if err := json.Unmarshal(message.Payload(), &trigger); err != nil {
		slog.Warn("解析触发消息失败", "topic", message.Topic(), "error", err)
		return
	}
	if trigger.Actor == "" {
		trigger.Actor = "mqtt"
	}

	if err := t.dispatcher.Trigger(trigger); err != nil {
		slog.Warn("MQTT触发被拒绝", "slot", trigger.Slot, "error", err)
	}
}
