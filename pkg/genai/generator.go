package genai

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/market_radar/pkg/config"
)

// Generator 文本生成后端的统一接口
// 每次调用发送一个提示词，返回原始文本；不保证文本是合法 JSON
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

const systemPrompt = "You are a JSON generator. Output a single valid JSON object and nothing else."

// Client 基于 eino 的 OpenAI 兼容生成客户端
type Client struct {
	cm      model.ChatModel
	limiter *rate.Limiter
}

// Ensure Client implements Generator
var _ Generator = (*Client)(nil)

// NewClient 初始化生成客户端；limiter 为空时不限流
func NewClient(ctx context.Context, cfg config.LLMConfig, limiter *rate.Limiter) (*Client, error) {
	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM init failed: %w", err)
	}

	return &Client{cm: cm, limiter: limiter}, nil
}

// Generate 单次生成调用，不在本层重试
// 重试策略由上层流水线统一控制，保证最坏延迟可预期
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	messages := []*schema.Message{
		{Role: schema.System, Content: systemPrompt},
		{Role: schema.User, Content: prompt},
	}

	resp, err := c.cm.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("chat model generate: %w", err)
	}
	return resp.Content, nil
}
