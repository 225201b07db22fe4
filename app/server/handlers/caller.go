package handlers

import (
	"github.com/labstack/echo/v4"
	"profile-feed-api/app/server/apperr"
	"profile-feed-api/app/server/constants"
	"profile-feed-api/app/server/types"
)

// caller 返回当前调用者，匿名时为 nil
func (a *App) caller(c echo.Context) *types.CacheAccount {
	caller, _ := c.Get(constants.ContextKeyCaller).(*types.CacheAccount)
	return caller
}

func (a *App) callerID(c echo.Context) *uint {
	if caller := a.caller(c); caller != nil {
		return &caller.ID
	}
	return nil
}

func (a *App) requireCaller(c echo.Context) (*types.CacheAccount, error) {
	caller := a.caller(c)
	if caller == nil {
		return nil, apperr.ErrUnauthenticated
	}
	return caller, nil
}

func (a *App) requireStaff(c echo.Context) (*types.CacheAccount, error) {
	caller, err := a.requireCaller(c)
	if err != nil {
		return nil, err
	}
	if !caller.IsStaff {
		return nil, apperr.ErrForbidden
	}
	return caller, nil
}
