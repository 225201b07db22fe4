// Package schemas 声明各个接口的请求与响应结构，与 apispec/openapi.yaml 保持一致
package schemas

import "time"

// ErrorMessage 错误响应， Errors 只在校验失败时出现
type ErrorMessage struct {
	Message *string             `json:"message,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

type LoginRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type LoginToken struct {
	Token *string `json:"token"`
}

// ProfileInput 用于创建与更新账号，字段为 nil 表示请求中没有提供
type ProfileInput struct {
	Email    *string `json:"email"`
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

type ProfileInfoWithID struct {
	Id    *uint   `json:"id"`
	Email *string `json:"email"`
	Name  *string `json:"name"`
}

type ProfileFlagsInput struct {
	IsActive *bool `json:"is_active"`
	IsStaff  *bool `json:"is_staff"`
}

type ProfileFlags struct {
	Id          *uint `json:"id"`
	IsActive    *bool `json:"is_active"`
	IsStaff     *bool `json:"is_staff"`
	IsSuperuser *bool `json:"is_superuser"`
}

// FeedItemInput 不包含 user_profile 与 created_on ，它们只由服务端写入
type FeedItemInput struct {
	StatusText *string `json:"status_text"`
}

type FeedItemInfoWithID struct {
	Id          *uint      `json:"id"`
	UserProfile *uint      `json:"user_profile"`
	StatusText  *string    `json:"status_text"`
	CreatedOn   *time.Time `json:"created_on"`
}

// ListParams 列表查询参数
type ListParams struct {
	Page   *uint
	Limit  *uint
	Search *string
}
