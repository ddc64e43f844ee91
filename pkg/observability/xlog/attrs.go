package xlog

import (
	"log/slog"
	"time"
)

// 日志中常用的标准字段名。
const (
	KeyError       = "error"
	KeyStack       = "stack"
	KeyDuration    = "duration"
	KeyCount       = "count"
	KeyComponent   = "component"
	KeyOperation   = "operation"
	KeyTraceID     = "trace_id"
	KeySpanID      = "span_id"
	KeyField       = "field"
	KeyContainerID = "container_id"
	KeyEndpoint    = "endpoint"
	KeyAttempt     = "attempt"
)

// Err 创建错误属性。err 为 nil 时返回空属性，会被 slog 忽略。
//
//	if err != nil {
//	    logger.Error(ctx, "list containers failed", xlog.Err(err))
//	}
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// Duration 创建耗时属性，输出人类可读格式（如 "1.5s"）。
func Duration(d time.Duration) slog.Attr {
	return slog.String(KeyDuration, d.String())
}

// Component 标识日志来源组件。
func Component(name string) slog.Attr {
	return slog.String(KeyComponent, name)
}

// Operation 标识当前执行的操作。
func Operation(name string) slog.Attr {
	return slog.String(KeyOperation, name)
}

// Count 创建计数属性。
func Count(n int64) slog.Attr {
	return slog.Int64(KeyCount, n)
}

// Field 记录出错字段的路径，如 "[3].Ports[0].Type"。
func Field(path string) slog.Attr {
	return slog.String(KeyField, path)
}

// ContainerID 记录容器 ID。空 ID 返回空属性。
func ContainerID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String(KeyContainerID, id)
}

// Endpoint 记录容器引擎地址。
func Endpoint(s string) slog.Attr {
	return slog.String(KeyEndpoint, s)
}

// Attempt 记录重试序号（从 1 开始）。
func Attempt(n uint) slog.Attr {
	return slog.Uint64(KeyAttempt, uint64(n))
}
