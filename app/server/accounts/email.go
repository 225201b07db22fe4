package accounts

import (
	"net/mail"
	"profile-feed-api/app/server/apperr"
	"profile-feed-api/app/server/constants"
	"strings"
	"unicode/utf8"
)

// NormalizeEmail 去掉首尾空白，并把最后一个 @ 之后的域名部分转为小写，本地部分保持原样
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}

// validateEmail 检查已经规范化的邮箱，返回字段错误信息，空字符串表示通过
func validateEmail(email string) string {
	if email == "" {
		return apperr.MsgRequired
	}
	if utf8.RuneCountInString(email) > constants.MaxEmailLength {
		return apperr.MsgTooLong
	}

	// 只接受不带显示名称的纯地址
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return apperr.MsgInvalidEmail
	}

	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 || !strings.Contains(email[at+1:], ".") && email[at+1:] != "localhost" {
		return apperr.MsgInvalidEmail
	}

	return ""
}

// ValidateEmail 规范化并校验邮箱
func ValidateEmail(email string) (string, error) {
	normalized := NormalizeEmail(email)
	if msg := validateEmail(normalized); msg != "" {
		return normalized, apperr.Validation("email", msg)
	}
	return normalized, nil
}

// validateName 去掉首尾空白后检查名称
func validateName(name string) (string, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return name, apperr.MsgRequired
	}
	if utf8.RuneCountInString(name) > constants.MaxNameLength {
		return name, apperr.MsgTooLong
	}
	return name, ""
}

// ValidateName 检查并返回去掉首尾空白的名称
func ValidateName(name string) (string, error) {
	trimmed, msg := validateName(name)
	if msg != "" {
		return trimmed, apperr.Validation("name", msg)
	}
	return trimmed, nil
}
