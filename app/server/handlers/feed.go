package handlers

import (
	"context"
	"errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"net/http"
	"profile-feed-api/app/server/apperr"
	"profile-feed-api/app/server/constants"
	"profile-feed-api/app/server/models"
	"profile-feed-api/app/server/permissions"
	"profile-feed-api/app/server/schemas"
	"strconv"
	"strings"
	"unicode/utf8"
)

func feedItemInfo(item *models.FeedItem) *schemas.FeedItemInfoWithID {
	return &schemas.FeedItemInfoWithID{
		Id:          &item.ID,
		UserProfile: &item.AccountID,
		StatusText:  &item.StatusText,
		CreatedOn:   &item.CreatedOn,
	}
}

// feedValidate 去掉首尾空白后检查 status_text ， required 时必须提供
func (a *App) feedValidate(req *schemas.FeedItemInput, required bool) error {
	if req.StatusText == nil {
		if required {
			return apperr.Validation("status_text", apperr.MsgRequired)
		}
		return nil
	}

	statusText := strings.TrimSpace(*req.StatusText)
	if statusText == "" {
		return apperr.Validation("status_text", apperr.MsgBlank)
	}
	if utf8.RuneCountInString(statusText) > constants.MaxStatusTextLength {
		return apperr.Validation("status_text", apperr.MsgTooLong)
	}

	req.StatusText = &statusText
	return nil
}

func (a *App) feedGetItem(ctx context.Context, id uint) (*models.FeedItem, error) {
	var item models.FeedItem
	if err := a.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (a *App) feedQuery(ctx context.Context, owner *uint) *gorm.DB {
	query := a.db.WithContext(ctx).Model(&models.FeedItem{})
	if owner != nil {
		query = query.Where("account_id = ?", *owner)
	}
	return query
}

func (a *App) FeedCreate(c echo.Context) error {
	// 抓取 user 信息（认证）
	caller, err := a.requireCaller(c)
	if err != nil {
		return a.fail(c, err, "failed to get caller")
	}

	rctx := c.Request().Context()

	// 绑定请求体
	var req schemas.FeedItemInput
	if err = c.Bind(&req); err != nil {
		a.l.Debug("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	if err = a.feedValidate(&req, true); err != nil {
		return a.fail(c, err, "invalid feed item")
	}

	// 所属账号总是当前调用者，不读取请求中的任何所属信息
	item := models.FeedItem{
		AccountID:  caller.ID,
		StatusText: *req.StatusText,
	}

	if err = a.db.WithContext(rctx).Create(&item).Error; err != nil {
		a.l.Error("failed to create feed item", zap.Any("item", item), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusCreated, feedItemInfo(&item))
}

func (a *App) FeedList(c echo.Context) error {
	rctx := c.Request().Context()

	params, err := a.parseListParams(c)
	if err != nil {
		return a.fail(c, err, "invalid list params")
	}

	// 可以按所属账号过滤
	var owner *uint
	if raw := c.QueryParam("user_profile"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return a.erValidation(c, apperr.Validation("user_profile", "A valid integer is required."))
		}
		u := uint(v)
		owner = &u
	}

	var (
		items      []models.FeedItem
		itemsCount int64
	)

	showAll, page, limit := a.parsePagination(params.Page, params.Limit)
	queryBase := a.feedQuery(rctx, owner).Order("id ASC")
	if !showAll {
		queryBase = queryBase.Limit(limit).Offset(page * limit)
	}

	if err := queryBase.Find(&items).Error; err != nil {
		a.l.Error("failed to get feed list", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	if err := a.feedQuery(rctx, owner).Count(&itemsCount).Error; err != nil {
		a.l.Error("failed to count feed", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	resItems := []schemas.FeedItemInfoWithID{}
	for i := range items {
		resItems = append(resItems, *feedItemInfo(&items[i]))
	}

	c.Response().Header().Set(HeaderTotalCount, strconv.FormatInt(itemsCount, 10))
	c.Response().Header().Set(HeaderPageMax, strconv.FormatInt(a.calcMaxPage(itemsCount, showAll, limit), 10))
	return c.JSON(http.StatusOK, resItems)
}

func (a *App) FeedGet(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return a.fail(c, err, "invalid id")
	}

	item, err := a.feedGetItem(c.Request().Context(), id)
	if err != nil {
		return a.fail(c, err, "failed to get feed item", zap.Uint("id", id))
	}

	return c.JSON(http.StatusOK, feedItemInfo(item))
}

// FeedUpdate 处理 PUT ： status_text 必须提供
func (a *App) FeedUpdate(c echo.Context) error {
	return a.feedSave(c, false)
}

// FeedPartialUpdate 处理 PATCH
func (a *App) FeedPartialUpdate(c echo.Context) error {
	return a.feedSave(c, true)
}

func (a *App) feedSave(c echo.Context, partial bool) error {
	id, err := parseID(c)
	if err != nil {
		return a.fail(c, err, "invalid id")
	}

	rctx := c.Request().Context()

	// 从数据库中获得
	item, err := a.feedGetItem(rctx, id)
	if err != nil {
		return a.fail(c, err, "failed to get feed item", zap.Uint("id", id))
	}

	// 只有所属账号可以修改
	if err = permissions.CheckOwner(permissions.ActionForMethod(c.Request().Method), a.callerID(c), item.AccountID); err != nil {
		return a.fail(c, err, "permission denied")
	}

	// 绑定请求体
	var req schemas.FeedItemInput
	if err = c.Bind(&req); err != nil {
		a.l.Debug("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	if err = a.feedValidate(&req, !partial); err != nil {
		return a.fail(c, err, "invalid feed item")
	}

	// 只更新内容，所属账号与创建时间保持不变
	if req.StatusText != nil {
		if err = a.db.WithContext(rctx).Model(item).Update("status_text", *req.StatusText).Error; err != nil {
			a.l.Error("failed to update feed item", zap.Uint("id", id), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
		item.StatusText = *req.StatusText
	}

	return c.JSON(http.StatusOK, feedItemInfo(item))
}

func (a *App) FeedDelete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return a.fail(c, err, "invalid id")
	}

	rctx := c.Request().Context()

	item, err := a.feedGetItem(rctx, id)
	if err != nil {
		return a.fail(c, err, "failed to get feed item", zap.Uint("id", id))
	}

	if err = permissions.CheckOwner(permissions.ActionDestroy, a.callerID(c), item.AccountID); err != nil {
		return a.fail(c, err, "permission denied")
	}

	// 删除
	if err = a.db.WithContext(rctx).Delete(&models.FeedItem{}, item.ID).Error; err != nil {
		a.l.Error("failed to delete feed item", zap.Uint("id", id), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.NoContent(http.StatusNoContent)
}
