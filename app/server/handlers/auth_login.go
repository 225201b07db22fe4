package handlers

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
	"profile-feed-api/app/server/apperr"
	"profile-feed-api/app/server/jwt"
	"profile-feed-api/app/server/schemas"
	"time"
)

func (a *App) AuthLogin(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req schemas.LoginRequest
	if err := c.Bind(&req); err != nil {
		a.l.Debug("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	// 登录标识可以写在 username 或登录字段同名的键里
	identifier := req.Username
	if identifier == nil && a.authn.LoginField() == "email" {
		identifier = req.Email
	}

	var verr apperr.ValidationError
	if identifier == nil {
		verr.Add("username", apperr.MsgRequired)
	} else if *identifier == "" {
		verr.Add("username", apperr.MsgBlank)
	}
	if req.Password == nil {
		verr.Add("password", apperr.MsgRequired)
	} else if *req.Password == "" {
		verr.Add("password", apperr.MsgBlank)
	}
	if err := verr.Err(); err != nil {
		return a.fail(c, err, "invalid login request")
	}

	// 校验凭证
	principal, err := a.authn.Authenticate(rctx, *identifier, *req.Password)
	if err != nil {
		return a.fail(c, err, "failed to authenticate")
	}

	account, err := a.accounts.Get(rctx, principal.Identify())
	if err != nil {
		return a.fail(c, err, "failed to get account", zap.Uint("id", principal.Identify()))
	}

	// 签出 JWT
	expires := time.Now().Add(a.ttl)
	token, err := a.jwt.SignToken(&jwt.User{
		ID:      account.ID,
		Key:     account.TokenKey,
		Expires: expires.Unix(),
	})
	if err != nil {
		a.l.Error("failed to sign token", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 返回
	return c.JSON(http.StatusOK, &schemas.LoginToken{
		Token: &token,
	})
}

// AuthLogout 轮换调用者的令牌密钥，之前签发的所有令牌都会失效
func (a *App) AuthLogout(c echo.Context) error {
	caller, err := a.requireCaller(c)
	if err != nil {
		return a.fail(c, err, "failed to get caller")
	}

	rctx := c.Request().Context()

	if err = a.accounts.RotateTokenKey(rctx, caller.ID); err != nil {
		return a.fail(c, err, "failed to rotate token key", zap.Uint("id", caller.ID))
	}
	a.cache.Del(rctx, caller.ID)

	return c.NoContent(http.StatusNoContent)
}
