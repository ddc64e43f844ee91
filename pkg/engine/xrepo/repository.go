package xrepo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	retry "github.com/avast/retry-go/v5"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"github.com/omeyang/xengine/pkg/engine/xcontainer"
	"github.com/omeyang/xengine/pkg/observability/xlog"
	"github.com/omeyang/xengine/pkg/util/xlru"
)

const (
	component = "xrepo"
	spanName  = "xrepo.containers"

	metricDecoded = "xengine.containers.decoded"
	metricSkipped = "xengine.containers.skipped"
	metricRetries = "xengine.source.retries"
)

// Repository 从 [Source] 读取容器列表并映射为 [xcontainer.Container]。
//
// 每次读取依次经过：结果缓存（可选）、相同查询合并、重试、熔断，
// 并记录 span "xrepo.containers" 与解码计数。并发安全。
type Repository struct {
	source  Source
	opts    options
	logger  xlog.Logger
	breaker *gobreaker.CircuitBreaker[[]any]
	cache   *xlru.Cache[string, []xcontainer.Container]
	group   singleflight.Group

	tracer  trace.Tracer
	decoded metric.Int64Counter
	skipped metric.Int64Counter
	retries metric.Int64Counter
}

// New 创建 Repository。启用 [WithCache] 时，不再使用后应调用 [Repository.Close]。
func New(source Source, opts ...Option) (*Repository, error) {
	if source == nil {
		return nil, ErrNilSource
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	r := &Repository{
		source: source,
		opts:   o,
		logger: o.logger,
		tracer: o.tracerProvider.Tracer(instrumentationName),
	}
	if r.logger == nil {
		r.logger = xlog.Default()
	}
	if err := r.initMetrics(o.meterProvider.Meter(instrumentationName)); err != nil {
		return nil, err
	}
	if o.cacheSize > 0 {
		cache, err := xlru.New[string, []xcontainer.Container](xlru.Config{Size: o.cacheSize, TTL: o.cacheTTL})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidOption, err)
		}
		r.cache = cache
	}
	if o.breakerFailures > 0 {
		r.breaker = gobreaker.NewCircuitBreaker[[]any](r.breakerSettings())
	}
	return r, nil
}

func (r *Repository) initMetrics(meter metric.Meter) error {
	var err error
	if r.decoded, err = meter.Int64Counter(metricDecoded,
		metric.WithDescription("containers mapped from the engine listing"),
		metric.WithUnit("{container}")); err != nil {
		return fmt.Errorf("xrepo: create counter %s: %w", metricDecoded, err)
	}
	if r.skipped, err = meter.Int64Counter(metricSkipped,
		metric.WithDescription("container entries skipped because they could not be mapped"),
		metric.WithUnit("{container}")); err != nil {
		return fmt.Errorf("xrepo: create counter %s: %w", metricSkipped, err)
	}
	if r.retries, err = meter.Int64Counter(metricRetries,
		metric.WithDescription("failed source attempts eligible for retry"),
		metric.WithUnit("1")); err != nil {
		return fmt.Errorf("xrepo: create counter %s: %w", metricRetries, err)
	}
	return nil
}

func (r *Repository) breakerSettings() gobreaker.Settings {
	failures := r.opts.breakerFailures
	return gobreaker.Settings{
		Name:        component,
		MaxRequests: 1,
		Timeout:     r.opts.breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		// 永久错误与调用方取消说明来源本身可用
		IsSuccessful: func(err error) bool {
			return err == nil || IsPermanent(err) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			r.logger.Warn(context.Background(), "container source breaker state changed",
				xlog.Component(component),
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	}
}

// Containers 按 query 读取容器列表。
//
// 非法查询（如 Limit 为负）直接返回错误，不访问来源。
// 并发的相同查询只访问来源一次。共享加载继承首个调用者 ctx 中的值（如 span），
// 但不继承其取消，时限由 [WithLoadTimeout] 决定；每个调用者仍可通过自己的 ctx 提前返回。
// 来源 panic 时返回 [ErrLoadPanic]。
// 返回的切片归调用方所有，但其中元素与缓存共享底层 map/slice，不应修改。
func (r *Repository) Containers(ctx context.Context, query xcontainer.Query) ([]xcontainer.Container, error) {
	key, err := query.Encode()
	if err != nil {
		return nil, err
	}
	if r.cache != nil {
		if list, ok := r.cache.Get(key); ok {
			return slices.Clone(list), nil
		}
	}

	ch := r.group.DoChan(key, func() (any, error) {
		loadCtx, cancel := r.loadContext(ctx)
		defer cancel()
		return r.safeLoad(loadCtx, key, query)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		list, _ := res.Val.([]xcontainer.Container)
		return slices.Clone(list), nil
	}
}

// Invalidate 清空结果缓存。
func (r *Repository) Invalidate() {
	if r.cache != nil {
		r.cache.Clear()
	}
}

// Close 释放缓存占用的后台资源，可重复调用。
func (r *Repository) Close() {
	if r.cache != nil {
		r.cache.Close()
	}
}

// loadContext 使共享加载脱离调用方的取消链并加上时限。
func (r *Repository) loadContext(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx = context.WithoutCancel(ctx)
	if r.opts.loadTimeout == 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.opts.loadTimeout)
}

// safeLoad 调用 load，并将来源的 panic 转为 [ErrLoadPanic]。
func (r *Repository) safeLoad(ctx context.Context, key string, query xcontainer.Query) (list []xcontainer.Container, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrLoadPanic, p)
			r.logger.Stack(ctx, "container source panicked",
				xlog.Component(component),
				xlog.Err(err))
		}
	}()
	return r.load(ctx, key, query)
}

func (r *Repository) load(ctx context.Context, key string, query xcontainer.Query) ([]xcontainer.Container, error) {
	ctx, span := r.tracer.Start(ctx, spanName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.Bool("xengine.query.all", query.All),
			attribute.Int("xengine.query.limit", query.Limit),
			attribute.Bool("xengine.query.size", query.Size),
			attribute.Int("xengine.query.filters", len(query.Filters)),
		))
	defer span.End()
	start := time.Now()

	raw, err := r.fetch(ctx, query)
	if err != nil {
		return nil, r.fail(ctx, span, "list containers failed", start, err)
	}

	mode := attribute.String("mode", "strict")
	var decodeOpts []xcontainer.Option
	if r.opts.skipInvalid {
		mode = attribute.String("mode", "lenient")
		decodeOpts = append(decodeOpts, xcontainer.WithSkipInvalid(r.logger))
	}
	list, err := xcontainer.FromList(ctx, raw, decodeOpts...)
	if err != nil && !r.opts.skipInvalid {
		return nil, r.fail(ctx, span, "decode containers failed", start, err)
	}
	skipped := len(raw) - len(list)

	r.decoded.Add(ctx, int64(len(list)), metric.WithAttributes(mode))
	if skipped > 0 {
		r.skipped.Add(ctx, int64(skipped), metric.WithAttributes(mode))
	}
	span.SetAttributes(
		attribute.Int(metricDecoded, len(list)),
		attribute.Int(metricSkipped, skipped),
	)
	r.logger.Debug(ctx, "containers listed",
		xlog.Component(component),
		xlog.Count(int64(len(list))),
		slog.Int("skipped", skipped),
		xlog.Duration(time.Since(start)))

	if r.cache != nil {
		r.cache.Set(key, list)
	}
	return list, nil
}

func (r *Repository) fail(ctx context.Context, span trace.Span, msg string, start time.Time, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	r.logger.Error(ctx, msg,
		xlog.Component(component),
		xlog.Duration(time.Since(start)),
		xlog.Err(err))
	return err
}

// fetch 以固定间隔重试来源调用。永久错误、熔断打开与 ctx 结束都会立即停止重试。
func (r *Repository) fetch(ctx context.Context, query xcontainer.Query) ([]any, error) {
	return retry.NewWithData[[]any](
		retry.Context(ctx),
		retry.Attempts(r.opts.attempts),
		retry.Delay(r.opts.delay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return ctx.Err() == nil && !IsPermanent(err) && !errors.Is(err, ErrSourceUnavailable)
		}),
		retry.OnRetry(func(n uint, err error) {
			r.retries.Add(ctx, 1)
			r.logger.Warn(ctx, "container source attempt failed",
				xlog.Component(component),
				xlog.Attempt(n+1),
				xlog.Err(err))
		}),
	).Do(func() ([]any, error) {
		return r.call(ctx, query)
	})
}

func (r *Repository) call(ctx context.Context, query xcontainer.Query) ([]any, error) {
	if r.breaker == nil {
		return r.source.ListContainers(ctx, query)
	}
	raw, err := r.breaker.Execute(func() ([]any, error) {
		return r.source.ListContainers(ctx, query)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	return raw, err
}
