// Package cache 在 redis 中缓存调用者信息，没有 redis 时所有操作都不生效
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"profile-feed-api/app/server/constants"
	"profile-feed-api/app/server/types"
)

type AccountCache struct {
	rdb *redis.Client
	l   *zap.Logger
}

// NewAccountCache rdb 可以为 nil
func NewAccountCache(rdb *redis.Client, l *zap.Logger) *AccountCache {
	return &AccountCache{rdb: rdb, l: l}
}

func (c *AccountCache) Enabled() bool {
	return c != nil && c.rdb != nil
}

// Get 没有命中或缓存无效时返回 nil
func (c *AccountCache) Get(ctx context.Context, id uint) *types.CacheAccount {
	if !c.Enabled() {
		return nil
	}

	cacheKey := fmt.Sprintf(constants.CacheKeyAccountCaller, id)
	cacheBytes, err := c.rdb.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.l.Error("failed to query cache for account", zap.Uint("id", id), zap.Error(err))
		}
		return nil
	}

	var account types.CacheAccount
	if err = json.Unmarshal(cacheBytes, &account); err != nil {
		c.l.Error("failed to unmarshal account", zap.Uint("id", id), zap.ByteString("cacheBytes", cacheBytes), zap.Error(err))
		// 可能是无效的缓存，清理掉
		c.rdb.Del(ctx, cacheKey)
		return nil
	}

	return &account
}

func (c *AccountCache) Set(ctx context.Context, account *types.CacheAccount) {
	if !c.Enabled() {
		return
	}

	cacheBytes, err := json.Marshal(account)
	if err != nil {
		c.l.Error("failed to marshal account", zap.Uint("id", account.ID), zap.Error(err))
		return
	}

	if err = c.rdb.Set(ctx, fmt.Sprintf(constants.CacheKeyAccountCaller, account.ID), cacheBytes, constants.CacheExpireAccountCaller).Err(); err != nil {
		c.l.Error("failed to cache account", zap.Uint("id", account.ID), zap.Error(err))
	}
}

// Del 账号信息变化后调用
func (c *AccountCache) Del(ctx context.Context, id uint) {
	if !c.Enabled() {
		return
	}

	if err := c.rdb.Del(ctx, fmt.Sprintf(constants.CacheKeyAccountCaller, id)).Err(); err != nil {
		c.l.Error("failed to clear account cache", zap.Uint("id", id), zap.Error(err))
	}
}
