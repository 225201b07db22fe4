package config

import (
	"context"
	"fmt"
	"github.com/sethvargo/go-envconfig"
	"strings"
)

type Config struct {
	Mode                  string `env:"MODE,default=dev"`
	DBConnectionString    string `env:"DB_CONN,required"` // 与服务端使用同一个数据库
	RedisConnectionString string `env:"REDIS_CONN"`       // 与服务端使用同一个缓存，改密码后清理调用者缓存
	AdminPassword         string `env:"ADMIN_PASSWORD"`   // createsuperuser 没有提供 -password 时使用
}

func (c *Config) IsProd() bool {
	return strings.HasPrefix(strings.ToLower(c.Mode), "p")
}

func Load(l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(context.Background(), &cfg, l); err != nil {
		return nil, fmt.Errorf("parsing env vars: %w", err)
	}
	return &cfg, nil
}
