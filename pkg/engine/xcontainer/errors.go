package xcontainer

import (
	"errors"
	"fmt"

	"github.com/omeyang/xengine/internal/fieldmap"
)

var (
	// ErrMissingField 表示必需字段不存在或为 null。
	ErrMissingField = fieldmap.ErrMissing

	// ErrFieldType 表示字段的 JSON 类型与期望不符。
	ErrFieldType = fieldmap.ErrType

	// ErrInvalidState 表示未知的容器状态。
	ErrInvalidState = errors.New("xcontainer: invalid container state")

	// ErrInvalidProtocol 表示未知的传输协议。
	ErrInvalidProtocol = errors.New("xcontainer: invalid transport protocol")

	// ErrInvalidPort 表示端口号超出 0-65535。
	ErrInvalidPort = errors.New("xcontainer: invalid port number")

	// ErrInvalidMountType 表示未知的挂载类型。
	ErrInvalidMountType = errors.New("xcontainer: invalid mount type")

	// ErrInvalidNetworkMode 表示无法识别的网络模式。
	ErrInvalidNetworkMode = errors.New("xcontainer: invalid network mode")

	// ErrInvalidLimit 表示查询的 limit 为负数。
	ErrInvalidLimit = errors.New("xcontainer: limit must not be negative")
)

// FieldError 记录映射失败的字段路径及原因。
//
// Path 使用点号连接对象键、方括号表示数组下标，
// 如 "[2].NetworkSettings.Networks.bridge.Gateway"。
// Err 保留底层错误，可通过 errors.Is 匹配 xnet/xmac 或本包的哨兵错误。
type FieldError struct {
	Path string
	Err  error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("xcontainer: field %q: %v", e.Path, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
