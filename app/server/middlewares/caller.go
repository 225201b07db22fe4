package middlewares

import (
	"crypto/subtle"
	"errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
	"profile-feed-api/app/server/accounts"
	"profile-feed-api/app/server/apperr"
	"profile-feed-api/app/server/cache"
	"profile-feed-api/app/server/constants"
	"profile-feed-api/app/server/jwt"
	"profile-feed-api/app/server/types"
)

// Caller 把 Token 解析出的令牌对应到当前账号，必须放在 Token 之后
func Caller(repo *accounts.Repository, ac *cache.AccountCache, l *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenUser, ok := c.Get(constants.ContextKeyToken).(*jwt.User)
			if !ok {
				// 匿名请求
				return next(c)
			}

			rctx := c.Request().Context()

			// 查询缓存
			caller := ac.Get(rctx, tokenUser.ID)
			if caller == nil {
				// 查询数据库
				account, err := repo.Get(rctx, tokenUser.ID)
				if err != nil {
					if errors.Is(err, apperr.ErrNotFound) {
						return echo.NewHTTPError(http.StatusUnauthorized, apperr.ErrInvalidToken.Error())
					}
					l.Error("failed to get caller account", zap.Uint("id", tokenUser.ID), zap.Error(err))
					return echo.NewHTTPError(http.StatusInternalServerError)
				}

				// 加入缓存，方便下一次查询
				caller = types.NewCacheAccount(account)
				ac.Set(rctx, caller)
			}

			// 停用的账号和已经轮换过密钥的令牌都不能继续使用
			if !caller.IsActive || subtle.ConstantTimeCompare([]byte(caller.TokenKey), []byte(tokenUser.Key)) != 1 {
				return echo.NewHTTPError(http.StatusUnauthorized, apperr.ErrInvalidToken.Error())
			}

			// 设置 context
			c.Set(constants.ContextKeyCaller, caller)

			// 继续处理
			return next(c)
		}
	}
}
