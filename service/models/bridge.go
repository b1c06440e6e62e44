/*
 * @module service/models/bridge
 * @description 控制桥状态模型，保存调度器状态、输入区和最近一次输出
 * @architecture 数据模型层
 * @documentReference ai_docs/control_bridge_design.md
 * @stateFlow Idle -> Working -> Ready/Error -> Idle
 * @rules 状态字段仅允许调度器单写，外部协作方只读
 * @dependencies gorm.io/gorm, github.com/google/uuid
 * @refs service/bridge
 */

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 调度器状态常量
const (
	BridgeStatusIdle    = "Idle"
	BridgeStatusWorking = "Working"
	BridgeStatusReady   = "Ready"
)

// 控制桥动作槽位常量
const (
	SlotRunEnhancement = "runEnhancement"
	SlotCreateFolder   = "createFolder"
	SlotSyncConfig     = "syncConfig"
	SlotCopyOutput     = "copyOutput"
	SlotSaveToReports  = "saveToReports"
)

// BridgeState 控制桥持久化状态，单行记录
type BridgeState struct {
	ID           string     `gorm:"type:uuid;primary_key" json:"id"`
	Status       string     `gorm:"type:varchar(200);not null;default:'Idle'" json:"status"`
	LastAction   string     `gorm:"type:varchar(40)" json:"last_action"`
	LastActionAt *time.Time `json:"last_action_at"`
	InputTitle   string     `gorm:"type:varchar(200)" json:"input_title"`
	InputSource  string     `gorm:"type:varchar(200);default:'Control Bridge'" json:"input_source"`
	InputText    string     `gorm:"type:text" json:"input_text"`
	Output       string     `gorm:"type:text" json:"output"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName 指定表名
func (BridgeState) TableName() string {
	return "bridge_states"
}

// BeforeCreate 创建前钩子
func (b *BridgeState) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.Status == "" {
		b.Status = BridgeStatusIdle
	}
	return nil
}

// TriggerEvent 外部触发事件，携带槽位标识和新值
// 仅当已知动作槽位迁移到真值（armed）时才会驱动调度
type TriggerEvent struct {
	Slot  string `json:"slot"`
	Value bool   `json:"value"`
	Actor string `json:"actor"`
}
