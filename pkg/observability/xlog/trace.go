package xlog

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// ErrNilHandler 当 NewTraceHandler 的 base handler 为 nil 时返回。
var ErrNilHandler = errors.New("xlog: base handler is nil")

// TraceHandler 从 context 中的 OpenTelemetry span 提取 trace_id 与 span_id 并注入日志。
//
// context 中没有有效 span 时不做任何修改。
type TraceHandler struct {
	base slog.Handler
}

// NewTraceHandler 包装 base。
//
// 设计决策: 对包装后的 handler 调用 WithGroup 时，trace_id 等字段会被归入该分组，
// 这是 slog handler 分组语义决定的。
func NewTraceHandler(base slog.Handler) (*TraceHandler, error) {
	if base == nil {
		return nil, ErrNilHandler
	}
	return &TraceHandler{base: base}, nil
}

// Enabled 委托给底层 handler。
func (h *TraceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

// Handle 在 span 有效时追加 trace 字段后交给底层 handler。
// 按 slog 约定，修改前先 Clone record。
func (h *TraceHandler) Handle(ctx context.Context, r slog.Record) error {
	if ctx != nil {
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			r = r.Clone()
			r.AddAttrs(
				slog.String(KeyTraceID, sc.TraceID().String()),
				slog.String(KeySpanID, sc.SpanID().String()),
			)
		}
	}
	return h.base.Handle(ctx, r)
}

// WithAttrs 返回带额外属性的新 handler。
func (h *TraceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TraceHandler{base: h.base.WithAttrs(attrs)}
}

// WithGroup 返回带分组的新 handler。
func (h *TraceHandler) WithGroup(name string) slog.Handler {
	return &TraceHandler{base: h.base.WithGroup(name)}
}
