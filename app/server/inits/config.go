package inits

import (
	"context"
	"fmt"
	"github.com/sethvargo/go-envconfig"
	"profile-feed-api/app/server/config"
)

func Config() (*config.Config, error) {
	return ConfigWith(envconfig.OsLookuper())
}

// ConfigWith 从指定的来源读取配置，测试时可以传入 envconfig.MapLookuper
func ConfigWith(l envconfig.Lookuper) (*config.Config, error) {
	var cfg config.Config
	if err := envconfig.ProcessWith(context.Background(), &cfg, l); err != nil {
		return nil, fmt.Errorf("parsing env vars: %w", err)
	}

	if cfg.Security.AuthTokenDuration <= 0 {
		return nil, fmt.Errorf("AUTH_TOKEN_DURATION should be a positive duration")
	}

	return &cfg, nil
}
