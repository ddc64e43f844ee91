package xlog

import "log/slog"

// 延迟求值：属性值在 handler 真正输出时才计算，级别被禁用时 fn 不会执行。
// 接口装箱的一次分配仍然存在，简单值直接用 slog.String 等即可。

type lazyValue func() any

func (f lazyValue) LogValue() slog.Value { return slog.AnyValue(f()) }

type lazyStringValue func() string

func (f lazyStringValue) LogValue() slog.Value { return slog.StringValue(f()) }

// Lazy 返回延迟求值的属性。
//
//	logger.Debug(ctx, "decoded",
//	    xlog.Lazy("ids", func() any { return shortIDs(list) }))
func Lazy(key string, fn func() any) slog.Attr {
	if fn == nil {
		return slog.Any(key, nil)
	}
	return slog.Any(key, lazyValue(fn))
}

// LazyString 返回延迟求值的字符串属性。
func LazyString(key string, fn func() string) slog.Attr {
	if fn == nil {
		return slog.String(key, "")
	}
	return slog.Any(key, lazyStringValue(fn))
}
