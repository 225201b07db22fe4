package models

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"github.com/alexedwards/argon2id"
	"strings"
	"time"
)

// unusablePasswordPrefix 标记不可用于登录的密码，argon2id 的编码结果不会以它开头
const unusablePasswordPrefix = "!"

// Account 是注册账号。没有使用 gorm.Model ，因为软删除会占住唯一的邮箱
type Account struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`

	// 基础信息
	Email string `gorm:"column:email;size:255;uniqueIndex;not null"` // 邮箱，全局唯一，也是登录标识
	Name  string `gorm:"column:name;size:255;not null"`              // 显示名称

	// 状态与权限
	IsActive    bool `gorm:"column:is_active;not null;default:true"`     // 是否启用：停用的账号不能登录
	IsStaff     bool `gorm:"column:is_staff;not null;default:false"`     // 是否为管理人员：可以修改其他账号的状态
	IsSuperuser bool `gorm:"column:is_superuser;not null;default:false"` // 是否为超级用户

	// 登录与授权认证相关
	Password string `gorm:"column:password;not null"`  // 密码，使用 argon2id 储存
	TokenKey string `gorm:"column:token_key;not null"` // 写入 JWT 的密钥标识，轮换后旧的令牌全部失效

	FeedItems []FeedItem `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
}

func (a *Account) Identify() uint {
	return a.ID
}

// VerifyCredential 校验明文密码，不可用的密码永远校验失败
func (a *Account) VerifyCredential(secret string) bool {
	if !a.HasUsablePassword() {
		return false
	}

	match, _, err := argon2id.CheckHash(secret, a.Password)
	if err != nil {
		return false
	}

	return match
}

func (a *Account) SetPassword(raw string) error {
	hash, err := argon2id.CreateHash(raw, argon2id.DefaultParams)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	a.Password = hash
	return nil
}

// SetUnusablePassword 设定一个无法通过校验的随机值，账号在设定密码前不能登录
func (a *Account) SetUnusablePassword() error {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Errorf("generate unusable password: %w", err)
	}

	a.Password = unusablePasswordPrefix + hex.EncodeToString(buf)
	return nil
}

func (a *Account) HasUsablePassword() bool {
	return a.Password != "" && !strings.HasPrefix(a.Password, unusablePasswordPrefix)
}

func (a *Account) FullName() string {
	return a.Name
}

func (a *Account) String() string {
	return a.Email
}

func (a *Account) Active() bool {
	return a.IsActive
}
