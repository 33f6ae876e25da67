package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultEndpoint = "http://127.0.0.1:5000/verify"
	DefaultTimeout  = 120
)

// Config 项目配置结构体
type Config struct {
	Backend     BackendConfig     `yaml:"backend"`
	Page        PageConfig        `yaml:"page"`
	Defaults    DefaultsConfig    `yaml:"defaults"`
	Log         LogConfig         `yaml:"log"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
}

// BackendConfig 验证后端配置
type BackendConfig struct {
	Endpoint string `yaml:"endpoint"`
	Timeout  int    `yaml:"timeout"` // 秒
}

// TimeoutDuration 返回请求超时
func (b BackendConfig) TimeoutDuration() time.Duration {
	return time.Duration(b.Timeout) * time.Second
}

// PageConfig 页面正文提取配置
type PageConfig struct {
	Extractor string `yaml:"extractor"` // readability, dom 或留空（先 readability 后 dom）
	Timeout   int    `yaml:"timeout"`   // 秒
	UserAgent string `yaml:"user_agent"`
}

// DefaultsConfig 界面默认选择
type DefaultsConfig struct {
	Mode     string `yaml:"mode"`
	Language string `yaml:"language"`
	Format   string `yaml:"format"`
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ConcurrencyConfig 请求节流配置，RPM 为 0 时不限速
type ConcurrencyConfig struct {
	QPS int `yaml:"qps"`
	RPM int `yaml:"rpm"`
}

// LoadConfig 从指定路径加载配置。
// path 为空时只使用默认值和环境变量；.env 文件存在时先加载。
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	cfg.ApplyEnv()
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyEnv 使用环境变量覆盖配置
func (c *Config) ApplyEnv() {
	if v := os.Getenv("VERIFIER_ENDPOINT"); v != "" {
		c.Backend.Endpoint = v
	}
	if v := os.Getenv("VERIFIER_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Backend.Timeout = n
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		c.Log.File = v
	}
}

// ApplyDefaults 填充未配置项
func (c *Config) ApplyDefaults() {
	if c.Backend.Endpoint == "" {
		c.Backend.Endpoint = DefaultEndpoint
	}
	if c.Backend.Timeout <= 0 {
		c.Backend.Timeout = DefaultTimeout
	}
	if c.Page.Timeout <= 0 {
		c.Page.Timeout = 30
	}
	if c.Defaults.Mode == "" {
		c.Defaults.Mode = "news"
	}
	if c.Defaults.Language == "" {
		c.Defaults.Language = "auto"
	}
	if c.Defaults.Format == "" {
		c.Defaults.Format = "text"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate 校验配置
func (c *Config) Validate() error {
	u, err := url.Parse(c.Backend.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("配置错误: backend.endpoint 无效: %q", c.Backend.Endpoint)
	}
	switch c.Page.Extractor {
	case "", "readability", "dom":
	default:
		return fmt.Errorf("配置错误: 未知的 page.extractor: %q", c.Page.Extractor)
	}
	switch c.Defaults.Format {
	case "text", "html":
	default:
		return fmt.Errorf("配置错误: 未知的 defaults.format: %q", c.Defaults.Format)
	}
	return nil
}
