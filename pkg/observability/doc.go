// Package observability 提供可观测性相关的子包。
//
// 子包列表：
//   - xlog: 结构化日志，基于 log/slog 扩展，支持文件轮转与 trace 关联
//
// 链路追踪与指标直接使用 OpenTelemetry API，由调用方注入 provider。
package observability
