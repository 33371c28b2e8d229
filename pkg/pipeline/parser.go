package pipeline

import (
	"encoding/json"
	"errors"
	"strings"
)

// ExtractJSON 从原始后端文本中提取一个 JSON 对象
// 依次尝试：直接解析、```json 围栏内部、首尾大括号切片
// 纯函数，绝不 panic；失败时返回携带原文的 *ParseError
func ExtractJSON(raw string) ([]byte, error) {
	trimmed := strings.TrimSpace(raw)

	if isJSONObject(trimmed) {
		return []byte(trimmed), nil
	}

	if inner, ok := fencedBlock(trimmed); ok && isJSONObject(inner) {
		return []byte(inner), nil
	}

	// 退而求其次：取首个 { 到最后一个 } 的切片
	if start := strings.Index(trimmed, "{"); start >= 0 {
		if end := strings.LastIndex(trimmed, "}"); end > start {
			candidate := trimmed[start : end+1]
			if isJSONObject(candidate) {
				return []byte(candidate), nil
			}
		}
	}

	return nil, &ParseError{Raw: raw, Err: errors.New("no valid JSON object found")}
}

func isJSONObject(s string) bool {
	return strings.HasPrefix(s, "{") && json.Valid([]byte(s))
}

// fencedBlock 查找第一个 ``` 围栏并返回其内部文本
func fencedBlock(s string) (string, bool) {
	start := strings.Index(s, "```")
	if start < 0 {
		return "", false
	}
	rest := s[start+3:]

	// 跳过语言标记行（json 等）
	nl := strings.Index(rest, "\n")
	if nl < 0 {
		return "", false
	}
	rest = rest[nl+1:]

	end := strings.Index(rest, "```")
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(rest[:end]), true
}
