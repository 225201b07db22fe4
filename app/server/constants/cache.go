package constants

import "time"

const (
	CacheKeyAccountCaller = "feed:account:caller:%d"
)

const (
	CacheExpireAccountCaller = 1 * time.Hour
)
