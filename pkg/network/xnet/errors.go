package xnet

import "errors"

var (
	// ErrInvalidFormat 表示地址文本无法转换为二进制形式。
	ErrInvalidFormat = errors.New("xnet: invalid IP address format")

	// ErrMissingPrefixLength 表示 CIDR 文本缺少前缀长度（"/" 数量不为 1）。
	ErrMissingPrefixLength = errors.New("xnet: invalid CIDR format, missing prefix length")

	// ErrInvalidPrefixLength 表示前缀长度非数字或超出地址版本允许的范围。
	ErrInvalidPrefixLength = errors.New("xnet: invalid prefix length")

	// ErrVersionMismatch 表示参与运算的地址与网段版本不同。
	ErrVersionMismatch = errors.New("xnet: IP version mismatch")

	// ErrInvalidVersion 表示字节长度无法对应任何 IP 版本。
	ErrInvalidVersion = errors.New("xnet: invalid IP version")
)
