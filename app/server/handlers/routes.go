package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"profile-feed-api/app/server/middlewares"
	"strings"
)

// RegisterHandlers 绑定错误处理、认证中间件与全部路由
func RegisterHandlers(e *echo.Echo, a *App) {
	e.HTTPErrorHandler = a.HTTPErrorHandler

	// 资源路径统一以 / 结尾，文档路径除外
	e.Pre(middleware.AddTrailingSlashWithConfig(middleware.TrailingSlashConfig{
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().URL.Path, "/api")
		},
	}))

	g := e.Group("", middlewares.Token(a.jwt), middlewares.Caller(a.accounts, a.cache, a.l))

	// 认证
	g.POST("/login/", a.AuthLogin)
	g.POST("/logout/", a.AuthLogout)

	// 用户资料
	g.GET("/UserProfile/", a.ProfileList)
	g.POST("/UserProfile/", a.ProfileCreate)
	g.GET("/UserProfile/:id/", a.ProfileGet)
	g.PUT("/UserProfile/:id/", a.ProfileUpdate)
	g.PATCH("/UserProfile/:id/", a.ProfilePartialUpdate)
	g.DELETE("/UserProfile/:id/", a.ProfileDelete)
	g.PATCH("/UserProfile/:id/flags/", a.ProfileFlagsUpdate)

	// 动态
	g.GET("/feed/", a.FeedList)
	g.POST("/feed/", a.FeedCreate)
	g.GET("/feed/:id/", a.FeedGet)
	g.PUT("/feed/:id/", a.FeedUpdate)
	g.PATCH("/feed/:id/", a.FeedPartialUpdate)
	g.DELETE("/feed/:id/", a.FeedDelete)

	e.GET("/health/", a.HealthCheck)
}
