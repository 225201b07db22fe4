package constants

// 文本字段的最大长度（按字符计算）
const (
	MaxEmailLength      = 255
	MaxNameLength       = 255
	MaxStatusTextLength = 255
)

// 分页参数
const (
	DefaultPageLimit = 100
	MaxPageLimit     = 1000
)
