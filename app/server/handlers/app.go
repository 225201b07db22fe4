package handlers

import (
	"go.uber.org/zap"
	"gorm.io/gorm"
	"profile-feed-api/app/server/accounts"
	"profile-feed-api/app/server/auth"
	"profile-feed-api/app/server/cache"
	"profile-feed-api/app/server/jwt"
	"time"
)

type App struct {
	l     *zap.Logger         // 日志
	db    *gorm.DB            // 数据库
	cache *cache.AccountCache // 调用者缓存
	jwt   *jwt.JWT            // JWT ，用于无状态验证
	authn *auth.Authenticator // 登录凭证校验
	ttl   time.Duration       // 登录令牌有效期

	accounts *accounts.Repository
	factory  *accounts.Factory
}

func NewApp(l *zap.Logger, db *gorm.DB, ac *cache.AccountCache, j *jwt.JWT, authn *auth.Authenticator, ttl time.Duration) *App {
	return &App{
		l:     l,
		db:    db,
		cache: ac,
		jwt:   j,
		authn: authn,
		ttl:   ttl,

		accounts: accounts.NewRepository(db),
		factory:  accounts.NewFactory(db),
	}
}
