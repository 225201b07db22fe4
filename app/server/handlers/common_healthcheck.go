package handlers

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
)

// HealthCheck 检查数据库连接是否可用
func (a *App) HealthCheck(c echo.Context) error {
	sqlDB, err := a.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request().Context())
	}
	if err != nil {
		a.l.Warn("health check failed", zap.Error(err))
		return a.er(c, http.StatusServiceUnavailable)
	}

	return c.NoContent(http.StatusOK)
}
