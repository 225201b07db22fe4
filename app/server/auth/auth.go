// Package auth 通过用户凭证识别账号，不依赖具体的账号模型
package auth

import (
	"context"
	"errors"
	"fmt"
	"github.com/alexedwards/argon2id"
	"profile-feed-api/app/server/apperr"
)

// Principal 是可以登录的主体
type Principal interface {
	Identify() uint
	VerifyCredential(secret string) bool
}

// activeChecker 由可以被停用的主体实现
type activeChecker interface {
	Active() bool
}

type PrincipalStore interface {
	// FindPrincipal 按登录字段查找主体，找不到时返回 apperr.ErrNotFound
	FindPrincipal(ctx context.Context, field, value string) (Principal, error)
}

type Config struct {
	LoginField string              // 作为登录标识的字段
	Normalize  func(string) string // 查询前对标识做的规范化，可以为空
}

type Authenticator struct {
	cfg       Config
	store     PrincipalStore
	dummyHash string
}

func New(cfg Config, store PrincipalStore) (*Authenticator, error) {
	if cfg.LoginField == "" {
		return nil, errors.New("login field is empty")
	}

	// 用于找不到账号时也执行一次哈希校验，避免通过耗时判断账号是否存在
	dummyHash, err := argon2id.CreateHash("dummy-password", argon2id.DefaultParams)
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}

	return &Authenticator{
		cfg:       cfg,
		store:     store,
		dummyHash: dummyHash,
	}, nil
}

func (a *Authenticator) LoginField() string {
	return a.cfg.LoginField
}

// Authenticate 校验凭证。账号不存在、密码错误、账号停用都返回同一个 apperr.ErrAuthentication
func (a *Authenticator) Authenticate(ctx context.Context, identifier, secret string) (Principal, error) {
	if a.cfg.Normalize != nil {
		identifier = a.cfg.Normalize(identifier)
	}

	principal, err := a.store.FindPrincipal(ctx, a.cfg.LoginField, identifier)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			_, _, _ = argon2id.CheckHash(secret, a.dummyHash)
			return nil, apperr.ErrAuthentication
		}
		return nil, fmt.Errorf("find principal: %w", err)
	}

	if !principal.VerifyCredential(secret) {
		return nil, apperr.ErrAuthentication
	}

	if ac, ok := principal.(activeChecker); ok && !ac.Active() {
		return nil, apperr.ErrAuthentication
	}

	return principal, nil
}
