// Package accounts 负责账号的创建、规范化与查询
package accounts

import (
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"profile-feed-api/app/server/apperr"
	"profile-feed-api/app/server/models"
)

// Factory 创建普通账号与管理员账号，每个账号要么完整写入，要么完全不存在
type Factory struct {
	db *gorm.DB
}

func NewFactory(db *gorm.DB) *Factory {
	return &Factory{db: db}
}

// CreateAccount 创建普通账号。密码为空时写入不可用的密码，账号在设定密码前不能登录
func (f *Factory) CreateAccount(ctx context.Context, email, name, password string) (*models.Account, error) {
	return f.create(ctx, email, name, password, false)
}

// CreateAdministrator 创建同时具有 staff 与 superuser 标记的账号，必须提供密码
func (f *Factory) CreateAdministrator(ctx context.Context, email, name, password string) (*models.Account, error) {
	return f.create(ctx, email, name, password, true)
}

func (f *Factory) create(ctx context.Context, email, name, password string, admin bool) (*models.Account, error) {
	// 校验输入
	var verr apperr.ValidationError

	normalizedEmail, err := ValidateEmail(email)
	if ve, ok := apperr.AsValidation(err); ok {
		verr.Fields = ve.Fields
	}

	trimmedName, msg := validateName(name)
	if msg != "" {
		verr.Add("name", msg)
	}

	if admin && password == "" {
		verr.Add("password", apperr.MsgRequired)
	}

	if err := verr.Err(); err != nil {
		return nil, err
	}

	// 准备账号
	account := &models.Account{
		Email:       normalizedEmail,
		Name:        trimmedName,
		IsActive:    true,
		IsStaff:     admin,
		IsSuperuser: admin,
		TokenKey:    uuid.NewString(),
	}
	if password == "" {
		err = account.SetUnusablePassword()
	} else {
		err = account.SetPassword(password)
	}
	if err != nil {
		return nil, err
	}

	// 在同一个事务里检查邮箱并写入
	if err := f.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := EmailTaken(tx, normalizedEmail, 0)
		if err != nil {
			return err
		}
		if taken {
			return apperr.Validation("email", apperr.MsgEmailTaken)
		}

		if err := tx.Create(account).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Validation("email", apperr.MsgEmailTaken)
			}
			return fmt.Errorf("create account: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return account, nil
}

// EmailTaken 检查邮箱是否已被 exceptID 以外的账号使用， exceptID 为 0 表示不排除
func EmailTaken(db *gorm.DB, email string, exceptID uint) (bool, error) {
	var count int64
	query := db.Model(&models.Account{}).Where("email = ?", email)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("count accounts by email: %w", err)
	}
	return count > 0, nil
}
