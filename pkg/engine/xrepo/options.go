package xrepo

import (
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/omeyang/xengine/pkg/observability/xlog"
)

// 默认值。
const (
	DefaultAttempts         = 3
	DefaultDelay            = 200 * time.Millisecond
	DefaultBreakerFailures  = 5
	DefaultBreakerOpenDelay = 10 * time.Second
	DefaultLoadTimeout      = 30 * time.Second
)

const instrumentationName = "github.com/omeyang/xengine/pkg/engine/xrepo"

type options struct {
	attempts        uint
	delay           time.Duration
	skipInvalid     bool
	cacheSize       int
	cacheTTL        time.Duration
	breakerFailures uint32
	breakerTimeout  time.Duration
	loadTimeout     time.Duration
	logger          xlog.Logger
	tracerProvider  trace.TracerProvider
	meterProvider   metric.MeterProvider
}

func defaultOptions() options {
	return options{
		attempts:        DefaultAttempts,
		delay:           DefaultDelay,
		breakerFailures: DefaultBreakerFailures,
		breakerTimeout:  DefaultBreakerOpenDelay,
		loadTimeout:     DefaultLoadTimeout,
		tracerProvider:  otel.GetTracerProvider(),
		meterProvider:   otel.GetMeterProvider(),
	}
}

func (o *options) validate() error {
	switch {
	case o.attempts < 1:
		return fmt.Errorf("%w: attempts must be at least 1", ErrInvalidOption)
	case o.delay < 0:
		return fmt.Errorf("%w: negative retry delay %s", ErrInvalidOption, o.delay)
	case o.cacheSize < 0:
		return fmt.Errorf("%w: negative cache size %d", ErrInvalidOption, o.cacheSize)
	case o.cacheSize > 0 && o.cacheTTL <= 0:
		return fmt.Errorf("%w: cache TTL must be positive", ErrInvalidOption)
	case o.breakerTimeout < 0:
		return fmt.Errorf("%w: negative breaker timeout %s", ErrInvalidOption, o.breakerTimeout)
	case o.loadTimeout < 0:
		return fmt.Errorf("%w: negative load timeout %s", ErrInvalidOption, o.loadTimeout)
	}
	return nil
}

// Option 配置 [Repository]。
type Option func(*options)

// WithRetry 设置总尝试次数（含首次）与两次尝试之间的固定间隔。
func WithRetry(attempts uint, delay time.Duration) Option {
	return func(o *options) {
		o.attempts = attempts
		o.delay = delay
	}
}

// WithSkipInvalid 为 true 时跳过无法映射的容器条目，否则任一条目出错即整体失败。
func WithSkipInvalid(skip bool) Option {
	return func(o *options) { o.skipInvalid = skip }
}

// WithCache 按查询缓存结果，size 为最多缓存的查询数。size 为 0 时不缓存。
func WithCache(size int, ttl time.Duration) Option {
	return func(o *options) {
		o.cacheSize = size
		o.cacheTTL = ttl
	}
}

// WithBreaker 设置熔断阈值：连续 failures 次失败后打开，经过 timeout 后半开探测。
// failures 为 0 时关闭熔断。
func WithBreaker(failures uint32, timeout time.Duration) Option {
	return func(o *options) {
		o.breakerFailures = failures
		o.breakerTimeout = timeout
	}
}

// WithLoadTimeout 设置一次共享加载（含全部重试）的超时，默认 [DefaultLoadTimeout]。
// 为 0 时不设超时，此时来源必须自行保证返回。
//
// 共享加载不随任何调用方的 ctx 取消：调用方取消只会让自己提前返回，
// 同一查询上的其他调用方仍能拿到结果。
func WithLoadTimeout(timeout time.Duration) Option {
	return func(o *options) { o.loadTimeout = timeout }
}

// WithLogger 设置日志，默认使用 [xlog.Default]。
func WithLogger(logger xlog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithTracerProvider 设置 TracerProvider，默认使用全局 provider。
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		if tp != nil {
			o.tracerProvider = tp
		}
	}
}

// WithMeterProvider 设置 MeterProvider，默认使用全局 provider。
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) {
		if mp != nil {
			o.meterProvider = mp
		}
	}
}
