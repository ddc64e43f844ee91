package xlog

import (
	"context"
	"log/slog"
)

// Logger 是 xcontainer、xrepo、xrun 与 xnetctl 共用的日志接口。
//
// ctx 是必填参数：[TraceHandler] 从中取出 OpenTelemetry span，
// 使 xrepo 的日志与 "xrepo.containers" span 对应。属性只接受 slog.Attr，
// 键名统一走 attrs.go 中的构造函数（[ContainerID]、[Field] 等）。
type Logger interface {
	Debug(ctx context.Context, msg string, attrs ...slog.Attr)
	Info(ctx context.Context, msg string, attrs ...slog.Attr)
	Warn(ctx context.Context, msg string, attrs ...slog.Attr)
	Error(ctx context.Context, msg string, attrs ...slog.Attr)

	// Stack 以 Error 级别记录，并附带当前 goroutine 的调用栈。
	// xrepo 在来源 panic 时使用。
	Stack(ctx context.Context, msg string, attrs ...slog.Attr)

	// With 派生携带固定属性的 Logger，与父级共享级别。
	With(attrs ...slog.Attr) Logger

	// WithGroup 派生 Logger，此后的属性归入 name 分组。
	WithGroup(name string) Logger
}

// Leveler 在运行时调整级别。xnetctl watch 重载配置时通过它应用新的 log.level。
type Leveler interface {
	SetLevel(level Level)
	GetLevel() Level

	// Enabled 报告 level 是否会输出，可在构造昂贵属性前先行判断；见 [Lazy]。
	Enabled(ctx context.Context, level Level) bool
}

// LoggerWithLevel 是 [Builder.Build] 的返回类型。
//
// 设计决策: With/WithGroup 只返回 Logger。派生 logger 共享父级的 LevelVar，
// 级别仍由最初构建得到的 LoggerWithLevel 统一调整。
type LoggerWithLevel interface {
	Logger
	Leveler
}
