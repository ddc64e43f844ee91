package xmac

import "errors"

// 预定义错误变量，支持 errors.Is 判断。
var (
	// ErrInvalidFormat 表示 MAC 地址文本不是六组冒号分隔的两位十六进制数。
	ErrInvalidFormat = errors.New("xmac: invalid MAC address")

	// ErrInvalidLength 表示二进制形式长度不正确（期望 6 字节）。
	ErrInvalidLength = errors.New("xmac: invalid length")
)
