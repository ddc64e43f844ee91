package xrun

import (
	"os"
	"syscall"

	"github.com/omeyang/xengine/pkg/observability/xlog"
)

// Option 配置 [Group]。
type Option func(*options)

type options struct {
	logger    xlog.Logger
	name      string
	signals   []os.Signal
	noSignals bool
	sigSource <-chan os.Signal
}

func defaultOptions() options {
	return options{
		logger:  xlog.Default(),
		name:    "xrun",
		signals: DefaultSignals(),
	}
}

// DefaultSignals 返回默认监听的信号：SIGINT、SIGTERM、SIGHUP。
func DefaultSignals() []os.Signal {
	return []os.Signal{syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP}
}

// WithLogger 设置生命周期日志，默认使用 [xlog.Default]。
func WithLogger(logger xlog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithName 设置 Group 名称，记录在日志的 component 字段中。
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithSignals 设置 [Run] 监听的信号。空列表使用 [DefaultSignals]。
func WithSignals(signals ...os.Signal) Option {
	copied := append([]os.Signal(nil), signals...)
	return func(o *options) {
		if len(copied) > 0 {
			o.signals = copied
		}
	}
}

// WithoutSignals 关闭 [Run] 的信号处理，由调用方自行取消 ctx。
func WithoutSignals() Option {
	return func(o *options) { o.noSignals = true }
}
