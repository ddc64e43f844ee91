package xuri

import "errors"

var (
	// ErrSchemeMissing 表示文本开头没有可识别的 "scheme:" 段
	// （带 "://" 的文本还要求 scheme 之后紧跟 "//"）。
	ErrSchemeMissing = errors.New("xuri: URI scheme missing")

	// ErrInvalidPort 表示端口数字超出 0-65535。
	ErrInvalidPort = errors.New("xuri: invalid port")
)
