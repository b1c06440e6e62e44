/*
 * @module service/utils/response_decoder
 * @description 宽容响应解码器，将外部端点返回的JSON或纯文本响应体归一化为响应文本
 * @architecture 工具层
 * @documentReference ai_docs/external_invoker_design.md
 * @stateFlow 响应体 -> JSON解析尝试 -> 已知字段提取 -> 原文回退
 * @rules 端点响应格式不受本系统控制，解码永不失败，非JSON原样返回
 * @dependencies encoding/json, github.com/spf13/cast
 * @refs service/ai/invoker.go
 */

package utils

import (
	"encoding/json"

	"github.com/spf13/cast"
)

// 按优先级尝试提取的响应字段
var responseTextKeys = []string{"response", "text", "content", "output"}

// DecodeResponseText 归一化外部端点响应体
// 响应体为JSON对象时按 response/text/content/output 顺序取第一个可用值：
// 字符串直接返回，数字和布尔转为字符串，null和嵌套结构跳到下一字段；
// 其余情况（非JSON、JSON数组、无可用字段）原样返回响应体文本
func DecodeResponseText(body string) string {
	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		return body
	}

	for _, key := range responseTextKeys {
		value, ok := parsed[key]
		if !ok || value == nil {
			continue
		}
		switch v := value.(type) {
		case string:
			return v
		case float64, bool:
			return cast.ToString(v)
		}
	}

	return body
}
