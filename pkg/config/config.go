package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config 项目配置结构体
type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	Search      SearchConfig      `yaml:"search"`
	Research    ResearchConfig    `yaml:"research"`
	Pipeline    PipelineConfig    `yaml:"pipeline"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	DB          DBConfig          `yaml:"db"`
	Log         LogConfig         `yaml:"log"`
}

// LLMConfig 生成后端相关配置；api_key 为空表示未配置，走回退分析
type LLMConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
}

// SearchConfig 搜索后端相关配置
type SearchConfig struct {
	Provider string        `yaml:"provider"`
	Tavily   TavilyConfig  `yaml:"tavily"`
	SearXNG  SearXNGConfig `yaml:"searxng"`
}

// TavilyConfig Tavily 配置
type TavilyConfig struct {
	APIKey string `yaml:"api_key"`
}

// SearXNGConfig SearXNG 配置
type SearXNGConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout int    `yaml:"timeout"` // 秒
}

// ResearchConfig 调研聚合配置
type ResearchConfig struct {
	PoolSize        int `yaml:"pool_size"`         // 并发 worker 数上限
	QueryTimeout    int `yaml:"query_timeout"`     // 单次查询超时（秒）
	SnippetTimeout  int `yaml:"snippet_timeout"`   // 二次抓取正文超时（秒）
	MaxResults      int `yaml:"max_results"`       // 每个查询保留的结果数
	SnippetMaxRunes int `yaml:"snippet_max_runes"` // 摘要截断长度
}

// PipelineConfig 生成流水线配置
type PipelineConfig struct {
	PhaseRetries   int `yaml:"phase_retries"`    // 每阶段最多额外重试次数
	OverallTimeout int `yaml:"overall_timeout"`  // 整次分析的总超时（秒）
	MaxPromptChars int `yaml:"max_prompt_chars"` // 组装后提示词的长度上限
}

// ConcurrencyConfig 生成调用限流配置
type ConcurrencyConfig struct {
	QPS int `yaml:"qps"`
	RPM int `yaml:"rpm"`
}

// DBConfig 数据库相关配置；host 为空表示不持久化
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// LoadConfig 从指定路径加载配置并填充默认值
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Research.PoolSize <= 0 {
		c.Research.PoolSize = 4
	}
	if c.Research.QueryTimeout <= 0 {
		c.Research.QueryTimeout = 10
	}
	if c.Research.SnippetTimeout <= 0 {
		c.Research.SnippetTimeout = 5
	}
	if c.Research.MaxResults <= 0 {
		c.Research.MaxResults = 3
	}
	if c.Research.SnippetMaxRunes <= 0 {
		c.Research.SnippetMaxRunes = 500
	}
	if c.Pipeline.PhaseRetries <= 0 {
		c.Pipeline.PhaseRetries = 1
	}
	if c.Pipeline.OverallTimeout <= 0 {
		c.Pipeline.OverallTimeout = 300
	}
	if c.Pipeline.MaxPromptChars <= 0 {
		c.Pipeline.MaxPromptChars = 16000
	}
	if c.Concurrency.QPS <= 0 {
		c.Concurrency.QPS = 1
	}
	if c.Concurrency.RPM <= 0 {
		c.Concurrency.RPM = 30
	}
}
