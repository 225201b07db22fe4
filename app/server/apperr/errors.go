// Package apperr 定义各层之间传递的错误类型，由 handler 统一转换为响应
package apperr

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrAuthentication  = errors.New("unable to log in with provided credentials")
	ErrUnauthenticated = errors.New("authentication credentials were not provided")
	ErrForbidden       = errors.New("you do not have permission to perform this action")
	ErrInvalidToken    = errors.New("invalid token")
)

// 字段错误信息
const (
	MsgRequired     = "This field is required."
	MsgBlank        = "This field may not be blank."
	MsgInvalidEmail = "Enter a valid email address."
	MsgEmailTaken   = "user profile with this email already exists."
	MsgTooLong      = "Ensure this field has no more than 255 characters."
)

// ValidationError 按字段收集校验失败的原因
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// Merge 把 other 中的字段错误并入 e ， other 可以为 nil
func (e *ValidationError) Merge(other *ValidationError) {
	if other == nil {
		return
	}
	for field, messages := range other.Fields {
		for _, message := range messages {
			e.Add(field, message)
		}
	}
}

func (e *ValidationError) Has(field string) bool {
	return len(e.Fields[field]) > 0
}

// Err 没有收集到错误时返回 nil
func (e *ValidationError) Err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+strings.Join(e.Fields[name], " "))
	}
	return "validation error: " + strings.Join(parts, "; ")
}

func Validation(field, message string) *ValidationError {
	e := &ValidationError{}
	e.Add(field, message)
	return e
}

func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
