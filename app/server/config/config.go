package config

import (
	"strings"
	"time"
)

type Config struct {
	System struct {
		Mode                  string `env:"MODE,default=dev"`     // 运行模式， p 开头视为生产环境
		Listen                string `env:"LISTEN,default=:1323"` // 监听地址
		MetricsListen         string `env:"METRICS_LISTEN"`       // 指标服务的监听地址，留空则不启动
		DBConnectionString    string `env:"DB_CONN,required"`     // Postgres 数据库的连接字符串
		RedisConnectionString string `env:"REDIS_CONN"`           // Redis 数据库的连接字符串，留空则不使用缓存
	}
	Security struct {
		SignatureSecretKey string        `env:"SIGNATURE_SECRET_KEY,required"`   // 签名密钥，用于产生 JWT ，更新会导致旧有会话失效
		AuthTokenDuration  time.Duration `env:"AUTH_TOKEN_DURATION,default=24h"` // 登录令牌的有效期
	}
	Bootstrap struct {
		AdminEmail    string `env:"ADMIN_EMAIL"`                      // 初始管理员邮箱，与密码同时设定时才会创建
		AdminName     string `env:"ADMIN_NAME,default=Administrator"` // 初始管理员名称
		AdminPassword string `env:"ADMIN_PASSWORD"`                   // 初始管理员密码
	}
}

func (c *Config) IsProd() bool {
	return strings.HasPrefix(strings.ToLower(c.System.Mode), "p")
}

func (c *Config) HasBootstrapAdmin() bool {
	return c.Bootstrap.AdminEmail != "" && c.Bootstrap.AdminPassword != ""
}
