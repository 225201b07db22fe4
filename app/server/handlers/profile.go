package handlers

import (
	"context"
	"errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"net/http"
	"profile-feed-api/app/server/accounts"
	"profile-feed-api/app/server/apperr"
	"profile-feed-api/app/server/models"
	"profile-feed-api/app/server/permissions"
	"profile-feed-api/app/server/schemas"
	"strconv"
)

func profileInfo(account *models.Account) *schemas.ProfileInfoWithID {
	return &schemas.ProfileInfoWithID{
		Id:    &account.ID,
		Email: &account.Email,
		Name:  &account.Name,
	}
}

// profileValidate 校验请求中提供的字段并就地规范化， requireAll 时 email 与 name 必须提供
func (a *App) profileValidate(ctx context.Context, req *schemas.ProfileInput, requireAll bool, exceptID uint) error {
	var verr apperr.ValidationError

	if req.Email == nil {
		if requireAll {
			verr.Add("email", apperr.MsgRequired)
		}
	} else if email, err := accounts.ValidateEmail(*req.Email); err != nil {
		ve, _ := apperr.AsValidation(err)
		verr.Merge(ve)
	} else if taken, err := accounts.EmailTaken(a.db.WithContext(ctx), email, exceptID); err != nil {
		return err
	} else if taken {
		verr.Add("email", apperr.MsgEmailTaken)
	} else {
		req.Email = &email
	}

	if req.Name == nil {
		if requireAll {
			verr.Add("name", apperr.MsgRequired)
		}
	} else if name, err := accounts.ValidateName(*req.Name); err != nil {
		ve, _ := apperr.AsValidation(err)
		verr.Merge(ve)
	} else {
		req.Name = &name
	}

	if req.Password != nil && *req.Password == "" {
		verr.Add("password", apperr.MsgBlank)
	}

	return verr.Err()
}

func (a *App) profileMapFields(req *schemas.ProfileInput, account *models.Account) error {
	if req.Email != nil {
		account.Email = *req.Email
	}
	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Password != nil {
		if err := account.SetPassword(*req.Password); err != nil {
			return err
		}
	}
	return nil
}

// profileQuery 按 search 过滤账号：每个词都要出现在 name 或 email 中，不区分大小写
func (a *App) profileQuery(ctx context.Context, search *string) *gorm.DB {
	query := a.db.WithContext(ctx).Model(&models.Account{})
	if search != nil {
		for _, term := range searchTerms(*search) {
			pattern := likePattern(term)
			query = query.Where("(LOWER(name) LIKE ? ESCAPE '\\' OR LOWER(email) LIKE ? ESCAPE '\\')", pattern, pattern)
		}
	}
	return query
}

func (a *App) ProfileCreate(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req schemas.ProfileInput
	if err := c.Bind(&req); err != nil {
		a.l.Debug("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	// 校验，创建时密码也是必填的
	var verr apperr.ValidationError
	if err := a.profileValidate(rctx, &req, true, 0); err != nil {
		ve, ok := apperr.AsValidation(err)
		if !ok {
			return a.fail(c, err, "failed to validate profile")
		}
		verr.Merge(ve)
	}
	if req.Password == nil {
		verr.Add("password", apperr.MsgRequired)
	}
	if err := verr.Err(); err != nil {
		return a.fail(c, err, "invalid profile")
	}

	// 创建用户
	account, err := a.factory.CreateAccount(rctx, *req.Email, *req.Name, *req.Password)
	if err != nil {
		return a.fail(c, err, "failed to create account")
	}

	return c.JSON(http.StatusCreated, profileInfo(account))
}

func (a *App) ProfileList(c echo.Context) error {
	rctx := c.Request().Context()

	params, err := a.parseListParams(c)
	if err != nil {
		return a.fail(c, err, "invalid list params")
	}

	var (
		profiles      []models.Account
		profilesCount int64
	)

	showAll, page, limit := a.parsePagination(params.Page, params.Limit)
	queryBase := a.profileQuery(rctx, params.Search).Order("id ASC")
	if !showAll {
		queryBase = queryBase.Limit(limit).Offset(page * limit)
	}

	if err := queryBase.Find(&profiles).Error; err != nil {
		a.l.Error("failed to get profile list", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	if err := a.profileQuery(rctx, params.Search).Count(&profilesCount).Error; err != nil {
		a.l.Error("failed to count profile", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	resProfiles := []schemas.ProfileInfoWithID{}
	for i := range profiles {
		resProfiles = append(resProfiles, *profileInfo(&profiles[i]))
	}

	c.Response().Header().Set(HeaderTotalCount, strconv.FormatInt(profilesCount, 10))
	c.Response().Header().Set(HeaderPageMax, strconv.FormatInt(a.calcMaxPage(profilesCount, showAll, limit), 10))
	return c.JSON(http.StatusOK, resProfiles)
}

func (a *App) ProfileGet(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return a.fail(c, err, "invalid id")
	}

	// 从数据库中获得指定的用户
	account, err := a.accounts.Get(c.Request().Context(), id)
	if err != nil {
		return a.fail(c, err, "failed to get profile", zap.Uint("id", id))
	}

	return c.JSON(http.StatusOK, profileInfo(account))
}

// ProfileUpdate 处理 PUT ： email 与 name 必须提供
func (a *App) ProfileUpdate(c echo.Context) error {
	return a.profileSave(c, false)
}

// ProfilePartialUpdate 处理 PATCH ：只更新提供的字段
func (a *App) ProfilePartialUpdate(c echo.Context) error {
	return a.profileSave(c, true)
}

func (a *App) profileSave(c echo.Context, partial bool) error {
	id, err := parseID(c)
	if err != nil {
		return a.fail(c, err, "invalid id")
	}

	rctx := c.Request().Context()

	// 从数据库中获得指定的用户
	account, err := a.accounts.Get(rctx, id)
	if err != nil {
		return a.fail(c, err, "failed to get profile", zap.Uint("id", id))
	}

	// 只有账号本人可以修改
	if err = permissions.CheckOwner(permissions.ActionForMethod(c.Request().Method), a.callerID(c), account.ID); err != nil {
		return a.fail(c, err, "permission denied")
	}

	// 绑定请求体
	var req schemas.ProfileInput
	if err = c.Bind(&req); err != nil {
		a.l.Debug("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	if err = a.profileValidate(rctx, &req, !partial, account.ID); err != nil {
		return a.fail(c, err, "failed to validate profile")
	}

	if err = a.profileMapFields(&req, account); err != nil {
		a.l.Error("failed to map profile fields", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 更新用户信息
	if err = a.db.WithContext(rctx).Model(account).Select("email", "name", "password").Updates(account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return a.erValidation(c, apperr.Validation("email", apperr.MsgEmailTaken))
		}
		a.l.Error("failed to update profile", zap.Uint("id", id), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	a.cache.Del(rctx, account.ID)

	return c.JSON(http.StatusOK, profileInfo(account))
}

func (a *App) ProfileDelete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return a.fail(c, err, "invalid id")
	}

	rctx := c.Request().Context()

	account, err := a.accounts.Get(rctx, id)
	if err != nil {
		return a.fail(c, err, "failed to get profile", zap.Uint("id", id))
	}

	if err = permissions.CheckOwner(permissions.ActionDestroy, a.callerID(c), account.ID); err != nil {
		return a.fail(c, err, "permission denied")
	}

	// 删除用户及其动态
	if err = a.accounts.Delete(rctx, account.ID); err != nil {
		return a.fail(c, err, "failed to delete profile", zap.Uint("id", id))
	}
	a.cache.Del(rctx, account.ID)

	return c.NoContent(http.StatusNoContent)
}

// ProfileFlagsUpdate 由管理人员启用、停用账号或调整 staff 标记
func (a *App) ProfileFlagsUpdate(c echo.Context) error {
	caller, err := a.requireStaff(c)
	if err != nil {
		return a.fail(c, err, "failed to get caller")
	}

	id, err := parseID(c)
	if err != nil {
		return a.fail(c, err, "invalid id")
	}

	rctx := c.Request().Context()

	// 绑定请求体
	var req schemas.ProfileFlagsInput
	if err = c.Bind(&req); err != nil {
		a.l.Debug("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}
	if req.IsActive == nil && req.IsStaff == nil {
		return a.erValidation(c, apperr.Validation("non_field_errors", "At least one of is_active or is_staff is required."))
	}

	account, err := a.accounts.Get(rctx, id)
	if err != nil {
		return a.fail(c, err, "failed to get profile", zap.Uint("id", id))
	}

	// 使用 map 更新，保证 false 也会写入
	updates := map[string]interface{}{}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
		account.IsActive = *req.IsActive
	}
	if req.IsStaff != nil {
		updates["is_staff"] = *req.IsStaff
		account.IsStaff = *req.IsStaff
	}

	if err = a.db.WithContext(rctx).Model(&models.Account{}).Where("id = ?", account.ID).Updates(updates).Error; err != nil {
		a.l.Error("failed to update profile flags", zap.Uint("id", id), zap.Any("updates", updates), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	a.cache.Del(rctx, account.ID)

	a.l.Info("profile flags updated", zap.Uint("by", caller.ID), zap.Uint("id", account.ID), zap.Any("updates", updates))

	return c.JSON(http.StatusOK, &schemas.ProfileFlags{
		Id:          &account.ID,
		IsActive:    &account.IsActive,
		IsStaff:     &account.IsStaff,
		IsSuperuser: &account.IsSuperuser,
	})
}
