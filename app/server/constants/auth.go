package constants

const (
	ContextKeyToken  = "token"  // echo-jwt 解析得到的 *jwt.User
	ContextKeyCaller = "caller" // 当前调用者的 *types.CacheAccount
)

// LoginField 账号的登录标识字段
const LoginField = "email"
