package server

import (
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/news_verifier/internal/conf"
	"github.com/iWorld-y/news_verifier/internal/config"
	"github.com/iWorld-y/news_verifier/internal/engine"
	vlogger "github.com/iWorld-y/news_verifier/internal/logger"
)

// NewConfig 将 internal/conf.Verifier 转换为 config.Config，并补齐默认值与环境变量覆盖
func NewConfig(c *conf.Verifier) (*config.Config, error) {
	cfg := &config.Config{}
	if c != nil {
		if c.Backend != nil {
			cfg.Backend = config.BackendConfig{
				Endpoint: c.Backend.Endpoint,
				Timeout:  int(c.Backend.Timeout),
			}
		}
		if c.Page != nil {
			cfg.Page = config.PageConfig{
				Extractor: c.Page.Extractor,
				Timeout:   int(c.Page.Timeout),
				UserAgent: c.Page.UserAgent,
			}
		}
		if c.Defaults != nil {
			cfg.Defaults = config.DefaultsConfig{
				Mode:     c.Defaults.Mode,
				Language: c.Defaults.Language,
			}
		}
		if c.Log != nil {
			cfg.Log = config.LogConfig{
				Level: c.Log.Level,
				File:  c.Log.File,
			}
		}
		if c.Concurrency != nil {
			cfg.Concurrency = config.ConcurrencyConfig{
				QPS: int(c.Concurrency.Qps),
				RPM: int(c.Concurrency.Rpm),
			}
		}
	}

	cfg.ApplyEnv()
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewVerifierEngine 初始化验证引擎
func NewVerifierEngine(cfg *config.Config, logger log.Logger) (*engine.Engine, func(), error) {
	helper := log.NewHelper(logger)

	// 初始化日志
	if err := vlogger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		helper.Errorf("Failed to init verifier logger: %v", err)
		_ = vlogger.InitLogger("info", "") // 降级处理
	}

	eng, err := engine.NewEngine(cfg)
	if err != nil {
		helper.Errorf("Failed to init engine: %v", err)
		return nil, nil, err
	}
	helper.Infof("verification backend: %s", cfg.Backend.Endpoint)

	cleanup := func() {
		helper.Info("Cleaning up verifier engine")
	}
	return eng, cleanup, nil
}
