/*
 * @module service/utils/text_converter_test
 * @description 文本编码归一化工具单元测试
 * @architecture 测试层
 * @documentReference ai_docs/enhancement_engine_design.md
 * @stateFlow 构造输入字节 -> 归一化 -> 断言UTF-8输出
 * @rules 合法UTF-8原样透传
 * @dependencies github.com/stretchr/testify/assert
 * @refs service/utils/text_converter.go
 */

package utils

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeToUTF8_ValidPassthrough(t *testing.T) {
	for _, text := range []string{
		"",
		"plain ascii",
		"中文文本原样透传",
		"mixed 中英 content",
	} {
		assert.Equal(t, text, NormalizeToUTF8(text))
	}
}

func TestNormalizeToUTF8_GBKDecoded(t *testing.T) {
	// "中文" 的GBK编码字节
	gbk := string([]byte{0xd6, 0xd0, 0xce, 0xc4})

	result := NormalizeToUTF8(gbk)

	assert.Equal(t, "中文", result)
	assert.True(t, utf8.ValidString(result))
}
