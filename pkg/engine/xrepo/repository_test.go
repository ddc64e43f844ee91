package xrepo

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/mock/gomock"

	"github.com/omeyang/xengine/pkg/engine/xcontainer"
	"github.com/omeyang/xengine/pkg/observability/xlog"
)

var errTransient = errors.New("connection reset by peer")

func entry(id, state string) map[string]any {
	return map[string]any{
		"Id":      id,
		"Image":   "alpine",
		"Created": 1735689600.0,
		"State":   state,
		"Status":  "Up",
	}
}

type harness struct {
	spans  *tracetest.SpanRecorder
	reader *sdkmetric.ManualReader
	logs   *bytes.Buffer
	opts   []Option
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	spans := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		_ = mp.Shutdown(context.Background())
	})

	var logs bytes.Buffer
	logger, _, err := xlog.New().SetOutput(&logs).SetFormat("json").SetLevel(xlog.LevelDebug).Build()
	require.NoError(t, err)

	return &harness{
		spans:  spans,
		reader: reader,
		logs:   &logs,
		opts: []Option{
			WithTracerProvider(tp),
			WithMeterProvider(mp),
			WithLogger(logger),
			WithRetry(3, 0),
		},
	}
}

func (h *harness) repo(t *testing.T, src Source, opts ...Option) *Repository {
	t.Helper()
	r, err := New(src, append(h.opts, opts...)...)
	require.NoError(t, err)
	return r
}

// counter 返回指定计数器的累计值。
func (h *harness) counter(t *testing.T, name string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, h.reader.Collect(context.Background(), &rm))
	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "metric %s is not an int64 sum", name)
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}
	return total
}

func TestNewValidation(t *testing.T) {
	_, err := New(nil)
	require.ErrorIs(t, err, ErrNilSource)

	src := SourceFunc(func(context.Context, xcontainer.Query) ([]any, error) { return nil, nil })
	for name, opt := range map[string]Option{
		"zero attempts":  WithRetry(0, time.Second),
		"negative delay": WithRetry(1, -time.Second),
		"negative cache": WithCache(-1, time.Second),
		"cache no ttl":   WithCache(10, 0),
		"breaker":        WithBreaker(3, -time.Second),
		"load timeout":   WithLoadTimeout(-time.Second),
	} {
		_, err := New(src, opt)
		assert.ErrorIs(t, err, ErrInvalidOption, name)
	}
}

func TestContainersSuccess(t *testing.T) {
	h := newHarness(t)
	ctrl := gomock.NewController(t)
	src := NewMockSource(ctrl)

	query := xcontainer.Query{All: true, Limit: 2}
	src.EXPECT().
		ListContainers(gomock.Any(), query).
		Return([]any{entry("aaa", "running"), entry("bbb", "exited")}, nil)

	list, err := h.repo(t, src).Containers(context.Background(), query)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, xcontainer.StateExited, list[1].State)

	assert.Equal(t, int64(2), h.counter(t, metricDecoded))
	assert.Equal(t, int64(0), h.counter(t, metricSkipped))

	ended := h.spans.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, spanName, ended[0].Name())
	assert.Equal(t, codes.Unset, ended[0].Status().Code)
	assert.Contains(t, h.logs.String(), `"msg":"containers listed"`)
}

func TestContainersRetriesTransientErrors(t *testing.T) {
	h := newHarness(t)
	ctrl := gomock.NewController(t)
	src := NewMockSource(ctrl)

	gomock.InOrder(
		src.EXPECT().ListContainers(gomock.Any(), gomock.Any()).Return(nil, errTransient),
		src.EXPECT().ListContainers(gomock.Any(), gomock.Any()).Return(nil, errTransient),
		src.EXPECT().ListContainers(gomock.Any(), gomock.Any()).Return([]any{entry("aaa", "running")}, nil),
	)

	list, err := h.repo(t, src).Containers(context.Background(), xcontainer.Query{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, int64(2), h.counter(t, metricRetries))
	assert.Contains(t, h.logs.String(), `"attempt":2`)
}

func TestContainersGivesUpAfterAttempts(t *testing.T) {
	h := newHarness(t)
	ctrl := gomock.NewController(t)
	src := NewMockSource(ctrl)
	src.EXPECT().ListContainers(gomock.Any(), gomock.Any()).Return(nil, errTransient).Times(3)

	_, err := h.repo(t, src).Containers(context.Background(), xcontainer.Query{})
	require.ErrorIs(t, err, errTransient)

	ended := h.spans.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Contains(t, h.logs.String(), `"msg":"list containers failed"`)
}

func TestContainersPermanentErrorStopsRetry(t *testing.T) {
	h := newHarness(t)
	ctrl := gomock.NewController(t)
	src := NewMockSource(ctrl)

	errDenied := errors.New("permission denied")
	src.EXPECT().ListContainers(gomock.Any(), gomock.Any()).Return(nil, Permanent(errDenied)).Times(1)

	_, err := h.repo(t, src).Containers(context.Background(), xcontainer.Query{})
	require.ErrorIs(t, err, errDenied)
	assert.True(t, IsPermanent(err))
}

func TestPermanentNil(t *testing.T) {
	assert.NoError(t, Permanent(nil))
	assert.False(t, IsPermanent(errTransient))
}

func TestContainersInvalidQuery(t *testing.T) {
	h := newHarness(t)
	ctrl := gomock.NewController(t)
	src := NewMockSource(ctrl)

	_, err := h.repo(t, src).Containers(context.Background(), xcontainer.Query{Limit: -1})
	require.ErrorIs(t, err, xcontainer.ErrInvalidLimit)
}

func TestContainersContextCanceled(t *testing.T) {
	h := newHarness(t)
	ctx, cancel := context.WithCancel(context.Background())

	var calls atomic.Int32
	returned := make(chan struct{})
	done := make(chan error, 1)
	src := SourceFunc(func(loadCtx context.Context, _ xcontainer.Query) ([]any, error) {
		calls.Add(1)
		cancel()
		<-returned
		// 共享加载不随调用方取消
		done <- loadCtx.Err()
		return []any{entry("aaa", "running")}, nil
	})

	_, err := h.repo(t, src, WithRetry(5, time.Hour)).Containers(ctx, xcontainer.Query{})
	close(returned)
	require.ErrorIs(t, err, context.Canceled)
	require.NoError(t, <-done)
	assert.Equal(t, int32(1), calls.Load())
}

func TestContainersSharedLoadSurvivesLeaderCancel(t *testing.T) {
	h := newHarness(t)

	entered := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	src := SourceFunc(func(ctx context.Context, _ xcontainer.Query) ([]any, error) {
		if calls.Add(1) == 1 {
			close(entered)
		}
		select {
		case <-release:
			return []any{entry("aaa", "running"), entry("bbb", "running")}, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	})
	r := h.repo(t, src)

	leaderCtx, cancelLeader := context.WithCancel(context.Background())
	leader := make(chan error, 1)
	go func() {
		_, err := r.Containers(leaderCtx, xcontainer.Query{})
		leader <- err
	}()
	<-entered

	type result struct {
		list []xcontainer.Container
		err  error
	}
	follower := make(chan result, 1)
	go func() {
		list, err := r.Containers(context.Background(), xcontainer.Query{})
		follower <- result{list, err}
	}()
	// 等待跟随者加入同一次加载
	time.Sleep(50 * time.Millisecond)

	cancelLeader()
	require.ErrorIs(t, <-leader, context.Canceled)
	close(release)

	got := <-follower
	require.NoError(t, got.err)
	assert.Len(t, got.list, 2)
	assert.Equal(t, int32(1), calls.Load())
	assert.NotContains(t, h.logs.String(), "list containers failed")
}

func TestContainersLoadTimeout(t *testing.T) {
	h := newHarness(t)
	src := SourceFunc(func(ctx context.Context, _ xcontainer.Query) ([]any, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	r := h.repo(t, src, WithLoadTimeout(20*time.Millisecond), WithRetry(5, time.Hour))
	_, err := r.Containers(context.Background(), xcontainer.Query{})
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestContainersSourcePanic(t *testing.T) {
	h := newHarness(t)
	var calls atomic.Int32
	src := SourceFunc(func(context.Context, xcontainer.Query) ([]any, error) {
		if calls.Add(1) == 1 {
			panic("nil engine client")
		}
		return []any{entry("aaa", "running")}, nil
	})
	r := h.repo(t, src)

	_, err := r.Containers(context.Background(), xcontainer.Query{})
	require.ErrorIs(t, err, ErrLoadPanic)
	assert.Contains(t, err.Error(), "nil engine client")
	assert.Contains(t, h.logs.String(), "container source panicked")

	list, err := r.Containers(context.Background(), xcontainer.Query{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestContainersStrictDecodeError(t *testing.T) {
	h := newHarness(t)
	src := SourceFunc(func(context.Context, xcontainer.Query) ([]any, error) {
		return []any{entry("aaa", "running"), entry("bbb", "zombie")}, nil
	})

	_, err := h.repo(t, src).Containers(context.Background(), xcontainer.Query{})
	require.ErrorIs(t, err, xcontainer.ErrInvalidState)

	var fe *xcontainer.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "[1].State", fe.Path)
	assert.Equal(t, int64(0), h.counter(t, metricDecoded))
}

func TestContainersLenientDecode(t *testing.T) {
	h := newHarness(t)
	src := SourceFunc(func(context.Context, xcontainer.Query) ([]any, error) {
		return []any{entry("aaa", "running"), entry("bbb", "zombie"), "garbage"}, nil
	})

	list, err := h.repo(t, src, WithSkipInvalid(true)).Containers(context.Background(), xcontainer.Query{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "aaa", list[0].ID)

	assert.Equal(t, int64(1), h.counter(t, metricDecoded))
	assert.Equal(t, int64(2), h.counter(t, metricSkipped))
	assert.Contains(t, h.logs.String(), `"container_id":"bbb"`)
}

func TestContainersBreakerOpens(t *testing.T) {
	h := newHarness(t)
	ctrl := gomock.NewController(t)
	src := NewMockSource(ctrl)
	src.EXPECT().ListContainers(gomock.Any(), gomock.Any()).Return(nil, errTransient).Times(2)

	r := h.repo(t, src, WithRetry(1, 0), WithBreaker(2, time.Hour))
	ctx := context.Background()
	for range 2 {
		_, err := r.Containers(ctx, xcontainer.Query{})
		require.ErrorIs(t, err, errTransient)
	}

	_, err := r.Containers(ctx, xcontainer.Query{})
	require.ErrorIs(t, err, ErrSourceUnavailable)
	assert.Contains(t, h.logs.String(), "breaker state changed")
}

func TestContainersBreakerIgnoresPermanentErrors(t *testing.T) {
	h := newHarness(t)
	ctrl := gomock.NewController(t)
	src := NewMockSource(ctrl)
	src.EXPECT().ListContainers(gomock.Any(), gomock.Any()).Return(nil, Permanent(errTransient)).Times(3)

	r := h.repo(t, src, WithBreaker(1, time.Hour))
	for range 3 {
		_, err := r.Containers(context.Background(), xcontainer.Query{})
		require.NotErrorIs(t, err, ErrSourceUnavailable)
	}
}

func TestContainersCache(t *testing.T) {
	h := newHarness(t)
	ctrl := gomock.NewController(t)
	src := NewMockSource(ctrl)

	all := xcontainer.Query{All: true}
	src.EXPECT().ListContainers(gomock.Any(), all).Return([]any{entry("aaa", "running")}, nil).Times(2)
	src.EXPECT().ListContainers(gomock.Any(), xcontainer.Query{}).Return([]any{}, nil).Times(1)

	r := h.repo(t, src, WithCache(8, time.Hour))
	defer r.Close()
	ctx := context.Background()

	first, err := r.Containers(ctx, all)
	require.NoError(t, err)
	first[0].ID = "mutated"

	second, err := r.Containers(ctx, all)
	require.NoError(t, err)
	assert.Equal(t, "aaa", second[0].ID, "cached slice must not alias the caller's copy")

	_, err = r.Containers(ctx, xcontainer.Query{})
	require.NoError(t, err)

	r.Invalidate()
	_, err = r.Containers(ctx, all)
	require.NoError(t, err)
}

func TestContainersCoalescesConcurrentCalls(t *testing.T) {
	h := newHarness(t)

	release := make(chan struct{})
	var calls atomic.Int32
	src := SourceFunc(func(context.Context, xcontainer.Query) ([]any, error) {
		calls.Add(1)
		<-release
		return []any{entry("aaa", "running")}, nil
	})
	r := h.repo(t, src)

	const callers = 8
	var (
		wg      sync.WaitGroup
		started sync.WaitGroup
	)
	results := make([]int, callers)
	errs := make([]error, callers)
	started.Add(callers)
	for i := range callers {
		wg.Go(func() {
			started.Done()
			list, err := r.Containers(context.Background(), xcontainer.Query{})
			results[i], errs[i] = len(list), err
		})
	}
	started.Wait()
	// 等待所有调用进入 singleflight 后再放行来源
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for i := range callers {
		require.NoError(t, errs[i])
		assert.Equal(t, 1, results[i])
	}
	assert.LessOrEqual(t, calls.Load(), int32(callers))
	assert.GreaterOrEqual(t, calls.Load(), int32(1))
}

func TestContainersCallerContextDone(t *testing.T) {
	h := newHarness(t)

	release := make(chan struct{})
	src := SourceFunc(func(context.Context, xcontainer.Query) ([]any, error) {
		<-release
		return []any{}, nil
	})
	r := h.repo(t, src)

	leader := make(chan error, 1)
	go func() {
		_, err := r.Containers(context.Background(), xcontainer.Query{})
		leader <- err
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := r.Containers(ctx, xcontainer.Query{})
	require.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	require.NoError(t, <-leader)
}
