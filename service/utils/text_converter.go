/*
 * @module service/utils/text_converter
 * @description 文本编码归一化工具，将非UTF-8（GBK/GB18030）输入转换为UTF-8
 * @architecture 工具层
 * @documentReference ai_docs/enhancement_engine_design.md
 * @stateFlow 输入字节 -> UTF-8校验 -> GB18030解码回退 -> UTF-8文本
 * @rules 合法UTF-8原样透传，保证信号提取的确定性不受编码转换影响
 * @dependencies golang.org/x/text/encoding/simplifiedchinese, golang.org/x/text/transform
 * @refs api/controllers/enhancement_controller.go
 */

package utils

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

// NormalizeToUTF8 将输入文本归一化为UTF-8
// 已是合法UTF-8时原样返回；否则按GB18030（GBK超集）解码，解码失败时原样返回
func NormalizeToUTF8(text string) string {
	if utf8.ValidString(text) {
		return text
	}

	decoder := simplifiedchinese.GB18030.NewDecoder()
	result, _, err := transform.String(decoder, text)
	if err != nil {
		return text
	}
	return result
}
