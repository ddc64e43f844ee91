package xendpoint

import "errors"

var (
	// ErrUnsupportedScheme 表示端点 URI 的 scheme 不是 unix、tcp、http 或 https。
	ErrUnsupportedScheme = errors.New("xendpoint: unsupported scheme")

	// ErrEmptySocketPath 表示 unix 端点缺少套接字路径。
	ErrEmptySocketPath = errors.New("xendpoint: empty socket path")

	// ErrEmptyHost 表示 TCP 类端点缺少主机。
	ErrEmptyHost = errors.New("xendpoint: empty host")
)
