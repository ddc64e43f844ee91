package xconf

import "errors"

// 配置加载与校验错误。
var (
	// ErrEmptyPath 表示配置文件路径为空。
	ErrEmptyPath = errors.New("xconf: empty config path")

	// ErrUnsupportedFormat 表示不支持的配置格式。
	ErrUnsupportedFormat = errors.New("xconf: unsupported config format")

	// ErrLoadFailed 表示读取配置文件失败。
	ErrLoadFailed = errors.New("xconf: failed to load config")

	// ErrParseFailed 表示配置内容无法解析。
	ErrParseFailed = errors.New("xconf: failed to parse config")

	// ErrUnmarshalFailed 表示配置无法解码为 [Settings]（未知键、类型不符、取值无法解析）。
	ErrUnmarshalFailed = errors.New("xconf: failed to unmarshal config")

	// ErrInvalidSettings 表示配置解码成功但取值不合法。
	ErrInvalidSettings = errors.New("xconf: invalid settings")

	// ErrNotReloadable 表示从字节数据创建的 Loader 不支持重载与监视。
	ErrNotReloadable = errors.New("xconf: loader was created from bytes")
)
