package xlru

import "errors"

// 配置错误，由 [New] 返回。
var (
	ErrInvalidSize    = errors.New("xlru: size must be positive")
	ErrSizeExceedsMax = errors.New("xlru: size exceeds 16777216 entries")
	ErrInvalidTTL     = errors.New("xlru: ttl must not be negative")
)
