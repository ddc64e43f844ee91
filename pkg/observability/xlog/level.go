package xlog

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// ErrInvalidLevel 表示无法识别的日志级别名称。
// 配置解码与命令行参数校验通过 errors.Is 匹配它。
var ErrInvalidLevel = errors.New("xlog: invalid level")

// Level 日志级别，底层即 slog.Level。
type Level slog.Level

const (
	LevelDebug = Level(slog.LevelDebug)
	LevelInfo  = Level(slog.LevelInfo)
	LevelWarn  = Level(slog.LevelWarn)
	LevelError = Level(slog.LevelError)
)

// levelNames 是 ParseLevel 接受的名称，大小写不敏感。
var levelNames = map[string]Level{
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
}

// String 返回 DEBUG/INFO/WARN/ERROR；其余数值沿用 slog 的 "INFO+2" 形式。
func (l Level) String() string {
	return slog.Level(l).String()
}

// MarshalText 输出 [Level.String]，供 settings 回写 YAML/JSON。
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText 使 koanf 的 TextUnmarshaller 解码钩子能直接填充
// settings 中的 log.level 字段。
func (l *Level) UnmarshalText(data []byte) error {
	parsed, err := ParseLevel(string(data))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLevel 解析 debug/info/warn/warning/error，忽略大小写与首尾空白。
// 无法识别时返回 LevelInfo 与包装了 [ErrInvalidLevel] 的错误。
func ParseLevel(s string) (Level, error) {
	if l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return l, nil
	}
	return LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
}
