package handlers

import (
	"github.com/labstack/echo/v4"
	"profile-feed-api/app/server/apperr"
	"profile-feed-api/app/server/constants"
	"profile-feed-api/app/server/schemas"
	"strconv"
)

func (a *App) parsePagination(page *uint, limit *uint) (bool, int, int) {
	if page == nil && limit == nil {
		// 没有分页参数：展示全部
		return true, -1, -1
	}
	if page != nil && *page == 0 && limit != nil && *limit == 0 {
		// 特殊参数：展示全部
		return true, -1, -1
	}
	// 映射前：第几页，每页限制多少个
	// 映射后：页减一，限制不变
	var parsedPage, parsedLimit uint

	if page == nil || *page < 1 {
		parsedPage = 0
	} else {
		parsedPage = *page - 1
	}

	if limit == nil || *limit <= 0 {
		parsedLimit = constants.DefaultPageLimit
	} else if *limit > constants.MaxPageLimit {
		// 限制上限，避免 page * limit 溢出
		parsedLimit = constants.MaxPageLimit
	} else {
		parsedLimit = *limit
	}

	return false, int(parsedPage), int(parsedLimit)
}

func (a *App) calcMaxPage(count int64, showAll bool, limit int) int64 {
	if showAll {
		return 1
	} else {
		pageMax := count / int64(limit)
		if (count % int64(limit)) != 0 {
			pageMax++
		}
		return pageMax
	}
}

// parseListParams 读取 page 、 limit 与 search 查询参数
func (a *App) parseListParams(c echo.Context) (schemas.ListParams, error) {
	var (
		params schemas.ListParams
		verr   apperr.ValidationError
	)

	for name, target := range map[string]**uint{"page": &params.Page, "limit": &params.Limit} {
		raw := c.QueryParam(name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			verr.Add(name, "A valid integer is required.")
			continue
		}
		u := uint(v)
		*target = &u
	}

	if search := c.QueryParam("search"); search != "" {
		params.Search = &search
	}

	return params, verr.Err()
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.ErrNotFound
	}
	return uint(id), nil
}
