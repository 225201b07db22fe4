package accounts

import (
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"profile-feed-api/app/server/apperr"
	"profile-feed-api/app/server/auth"
	"profile-feed-api/app/server/models"
)

var _ auth.PrincipalStore = (*Repository)(nil)

// 允许作为登录标识的字段
var lookupFields = map[string]string{
	"email": "email",
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Get(ctx context.Context, id uint) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).First(&account, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("get account %d: %w", id, err)
	}
	return &account, nil
}

func (r *Repository) FindPrincipal(ctx context.Context, field, value string) (auth.Principal, error) {
	column, ok := lookupFields[field]
	if !ok {
		return nil, fmt.Errorf("unsupported login field %q", field)
	}

	var account models.Account
	if err := r.db.WithContext(ctx).First(&account, column+" = ?", value).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("find account by %s: %w", field, err)
	}
	return &account, nil
}

// RotateTokenKey 更换账号的令牌密钥，之前签发的令牌全部失效
func (r *Repository) RotateTokenKey(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&models.Account{}).Where("id = ?", id).Update("token_key", uuid.NewString())
	if res.Error != nil {
		return fmt.Errorf("rotate token key for account %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// SetPassword 更换密码并轮换令牌密钥
func (r *Repository) SetPassword(ctx context.Context, id uint, raw string) error {
	var account models.Account
	if err := account.SetPassword(raw); err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Model(&models.Account{}).Where("id = ?", id).Updates(map[string]interface{}{
		"password":  account.Password,
		"token_key": uuid.NewString(),
	})
	if res.Error != nil {
		return fmt.Errorf("set password for account %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// Delete 在同一个事务中删除账号及其全部动态
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("account_id = ?", id).Delete(&models.FeedItem{}).Error; err != nil {
			return fmt.Errorf("delete feed items of account %d: %w", id, err)
		}

		res := tx.Delete(&models.Account{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete account %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.ErrNotFound
		}
		return nil
	})
}
