package handlers

import (
	"errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
	"profile-feed-api/app/server/apperr"
	"profile-feed-api/app/server/schemas"
	"profile-feed-api/app/server/utils"
)

func (a *App) er(c echo.Context, statusCode int) error {
	return c.JSON(statusCode, &schemas.ErrorMessage{
		Message: utils.P(http.StatusText(statusCode)),
	})
}

func (a *App) erValidation(c echo.Context, verr *apperr.ValidationError) error {
	return c.JSON(http.StatusBadRequest, &schemas.ErrorMessage{
		Message: utils.P(http.StatusText(http.StatusBadRequest)),
		Errors:  verr.Fields,
	})
}

// fail 把下层返回的错误转换为响应，无法归类的错误记录日志后按 500 返回
func (a *App) fail(c echo.Context, err error, msg string, fields ...zap.Field) error {
	if verr, ok := apperr.AsValidation(err); ok {
		return a.erValidation(c, verr)
	}

	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return a.er(c, http.StatusNotFound)
	case errors.Is(err, apperr.ErrAuthentication):
		return c.JSON(http.StatusUnauthorized, &schemas.ErrorMessage{
			Message: utils.P("Unable to log in with provided credentials."),
		})
	case errors.Is(err, apperr.ErrUnauthenticated), errors.Is(err, apperr.ErrInvalidToken):
		return a.er(c, http.StatusUnauthorized)
	case errors.Is(err, apperr.ErrForbidden):
		return a.er(c, http.StatusForbidden)
	}

	a.l.Error(msg, append(fields, zap.Error(err))...)
	return a.er(c, http.StatusInternalServerError)
}

// HTTPErrorHandler 处理路由与中间件产生的错误，保持与接口相同的响应格式
func (a *App) HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	statusCode := http.StatusInternalServerError
	var he *echo.HTTPError
	if errors.As(err, &he) {
		statusCode = he.Code
	}
	if statusCode >= http.StatusInternalServerError {
		a.l.Error("unhandled error", zap.String("URI", c.Request().RequestURI), zap.Error(err))
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(statusCode)
	} else {
		err = a.er(c, statusCode)
	}
	if err != nil {
		a.l.Error("failed to write error response", zap.Error(err))
	}
}
