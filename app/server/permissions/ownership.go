// Package permissions 决定调用者能否对某个有所属者的资源执行操作
package permissions

import (
	"net/http"
	"profile-feed-api/app/server/apperr"
)

type Action int

const (
	ActionList Action = iota
	ActionRetrieve
	ActionCreate
	ActionUpdate
	ActionPartialUpdate
	ActionDestroy
)

// Safe 报告操作是否只读
func (a Action) Safe() bool {
	return a == ActionList || a == ActionRetrieve
}

func (a Action) String() string {
	switch a {
	case ActionList:
		return "list"
	case ActionRetrieve:
		return "retrieve"
	case ActionCreate:
		return "create"
	case ActionUpdate:
		return "update"
	case ActionPartialUpdate:
		return "partial_update"
	case ActionDestroy:
		return "destroy"
	default:
		return "unknown"
	}
}

// ActionForMethod 把针对单个资源的请求方法映射为操作
func ActionForMethod(method string) Action {
	switch method {
	case http.MethodPut:
		return ActionUpdate
	case http.MethodPatch:
		return ActionPartialUpdate
	case http.MethodDelete:
		return ActionDestroy
	case http.MethodPost:
		return ActionCreate
	default:
		return ActionRetrieve
	}
}

// IsOwnerOrReadOnly 只读操作总是允许，其他操作只允许资源的所属者执行。 caller 为 nil 表示匿名
func IsOwnerOrReadOnly(action Action, caller *uint, owner uint) bool {
	if action.Safe() {
		return true
	}
	return caller != nil && *caller == owner
}

// CheckOwner 与 IsOwnerOrReadOnly 相同，但区分匿名与非所属者
func CheckOwner(action Action, caller *uint, owner uint) error {
	if IsOwnerOrReadOnly(action, caller, owner) {
		return nil
	}
	if caller == nil {
		return apperr.ErrUnauthenticated
	}
	return apperr.ErrForbidden
}
