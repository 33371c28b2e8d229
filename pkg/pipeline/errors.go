package pipeline

import (
	"errors"
	"fmt"
)

// ErrGeneratorUnconfigured 生成后端未配置，整次运行进入纯回退模式
var ErrGeneratorUnconfigured = errors.New("generation backend not configured")

// ParseError 后端返回的文本无法解析为结构化数据
// Raw 保留原始输出用于诊断
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse backend output: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// GenerationError 某一阶段的生成调用失败或超时
type GenerationError struct {
	Phase int
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("phase %d generation failed: %v", e.Phase, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
