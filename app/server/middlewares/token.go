package middlewares

import (
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"net/http"
	"profile-feed-api/app/server/constants"
	"profile-feed-api/app/server/jwt"
)

// Token 从 Authorization 头（ Bearer 或 Token 前缀）中解析令牌。
// 没有提供令牌的请求按匿名处理，提供了但无效的令牌直接拒绝
func Token(j *jwt.JWT) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  constants.ContextKeyToken,
		TokenLookup: "header:Authorization:Bearer ,header:Authorization:Token ",
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return j.ParseUser(auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
				// 匿名
				return nil
			}
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token").SetInternal(err)
		},
		ContinueOnIgnoredError: true,
	})
}
