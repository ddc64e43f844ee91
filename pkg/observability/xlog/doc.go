// Package xlog 基于 log/slog 的结构化日志。
//
// # 创建 Logger
//
// 使用 [New] 得到 [Builder]，链式设置后调用 [Builder.Build]：
//
//	logger, cleanup, err := xlog.New().
//		SetLevelString(cfg.Level).
//		SetFormat("json").
//		SetRotation("/var/log/xnetctl.log", xlog.WithMaxSize(50)).
//		Build()
//	if err != nil {
//		return err
//	}
//	defer cleanup()
//
// Builder 记录第一个配置错误，由 Build 返回。SetRotation 基于 lumberjack 按大小轮转。
//
// # Trace 关联
//
// 默认启用 [TraceHandler]：context 中存在有效的 OpenTelemetry span 时，
// 每条日志自动带上 trace_id 与 span_id。
//
// # 全局 Logger
//
// [Default]、[SetDefault]、[ResetDefault] 以及 [Debug]、[Info]、[Warn]、[Error]
// 面向命令行工具等简单场景。
//
// # 便捷属性
//
// [Err]、[Duration]、[Component]、[Operation]、[Count]、[Field]、[ContainerID]、
// [Endpoint]、[Attempt]；延迟求值见 [Lazy]、[LazyString]。
//
// # 级别
//
// [Level] 与 slog.Level 兼容，实现 encoding.TextUnmarshaler，可直接用于配置解码。
// 派生 logger（With/WithGroup）共享父级的级别，[Leveler.SetLevel] 对其同步生效。
package xlog
