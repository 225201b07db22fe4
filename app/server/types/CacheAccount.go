package types

import "profile-feed-api/app/server/models"

// CacheAccount 是缓存中的调用者信息，不包含密码
type CacheAccount struct {
	ID          uint   `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	IsActive    bool   `json:"is_active"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
	TokenKey    string `json:"token_key"`
}

func NewCacheAccount(account *models.Account) *CacheAccount {
	return &CacheAccount{
		ID:          account.ID,
		Email:       account.Email,
		Name:        account.Name,
		IsActive:    account.IsActive,
		IsStaff:     account.IsStaff,
		IsSuperuser: account.IsSuperuser,
		TokenKey:    account.TokenKey,
	}
}
