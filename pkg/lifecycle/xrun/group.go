package xrun

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/omeyang/xengine/pkg/observability/xlog"
)

// Task 是在 [Group] 中运行的任务，应在 ctx 取消后尽快返回。
type Task func(ctx context.Context) error

// Group 并发运行一组任务：任一任务返回错误、调用 Cancel 或收到信号时，
// 其余任务的 ctx 被取消。
//
// Go 与 Cancel 可并发调用；Wait 只应调用一次。
type Group struct {
	eg       *errgroup.Group
	ctx      context.Context
	causeCtx context.Context
	cancel   context.CancelCauseFunc
	opts     options
}

// NewGroup 创建 Group，返回的 ctx 在任一任务失败或 Cancel 后取消。
func NewGroup(ctx context.Context, opts ...Option) (*Group, context.Context) {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	causeCtx, cancel := context.WithCancelCause(ctx)
	eg, egCtx := errgroup.WithContext(causeCtx)
	return &Group{eg: eg, ctx: egCtx, causeCtx: causeCtx, cancel: cancel, opts: o}, egCtx
}

// Go 以 name 启动任务。任务以非取消错误退出时记录 Warn 日志。
func (g *Group) Go(name string, task Task) {
	g.eg.Go(func() error {
		if task == nil {
			return ErrNilTask
		}
		attrs := []slog.Attr{xlog.Component(g.opts.name), xlog.Operation(name)}
		g.opts.logger.Debug(g.ctx, "task starting", attrs...)
		start := time.Now()
		err := task(g.ctx)
		attrs = append(attrs, xlog.Duration(time.Since(start)))
		if err != nil && !errors.Is(err, context.Canceled) {
			g.opts.logger.Warn(g.ctx, "task failed", append(attrs, xlog.Err(err))...)
		} else {
			g.opts.logger.Debug(g.ctx, "task stopped", attrs...)
		}
		return err
	})
}

// Cancel 以 cause 取消全部任务。cause 非 nil 时由 [Group.Wait] 返回；
// cause 不应包装 context.Canceled。
func (g *Group) Cancel(cause error) {
	g.cancel(cause)
}

// Wait 等待全部任务退出并返回第一个错误。
//
// 由 Group 自身取消（Cancel 或父 ctx）导致的 context.Canceled 被视为
// 正常退出：有显式 cause（如 [*SignalError]）时返回 cause，否则返回 nil。
// 任务内部产生的 context.Canceled 原样返回。
func (g *Group) Wait() error {
	defer g.cancel(nil)

	err := g.eg.Wait()
	cause := g.explicitCause()
	switch {
	case err == nil:
		return cause
	case errors.Is(err, context.Canceled) && g.causeCtx.Err() != nil:
		return cause
	default:
		return err
	}
}

func (g *Group) explicitCause() error {
	if g.causeCtx.Err() == nil {
		return nil
	}
	if cause := context.Cause(g.causeCtx); !errors.Is(cause, context.Canceled) {
		return cause
	}
	return nil
}

// handleSignals 注册信号任务：收到信号后以 [*SignalError] 取消 Group。
func (g *Group) handleSignals() {
	g.Go("signals", func(ctx context.Context) error {
		sigCh := g.opts.sigSource
		if sigCh == nil {
			ch := make(chan os.Signal, 1)
			signal.Notify(ch, g.opts.signals...)
			defer signal.Stop(ch)
			sigCh = ch
		}
		select {
		case sig := <-sigCh:
			g.opts.logger.Info(ctx, "received signal",
				xlog.Component(g.opts.name), slog.String("signal", sig.String()))
			g.cancel(&SignalError{Signal: sig})
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
}

// Run 创建 Group、注册信号处理，调用 setup 添加任务后等待退出。
// 因信号退出时返回 [*SignalError]。
//
//	err := xrun.Run(ctx, func(g *xrun.Group) {
//	    g.Go("refresh", xrun.Ticker(5*time.Second, true, refresh))
//	}, xrun.WithLogger(logger))
//	if errors.Is(err, xrun.ErrSignal) {
//	    err = nil
//	}
func Run(ctx context.Context, setup func(g *Group), opts ...Option) error {
	g, _ := NewGroup(ctx, opts...)
	if !g.opts.noSignals {
		g.handleSignals()
	}
	if setup != nil {
		setup(g)
	}
	return g.Wait()
}

// Ticker 返回按 interval 周期执行 fn 的任务；immediate 为 true 时先执行一次。
// fn 返回错误时任务以该错误结束。
func Ticker(interval time.Duration, immediate bool, fn func(ctx context.Context) error) Task {
	return func(ctx context.Context) error {
		if interval <= 0 {
			return ErrInvalidInterval
		}
		if fn == nil {
			return ErrNilTask
		}
		if immediate {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(ctx); err != nil {
				return err
			}
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := fn(ctx); err != nil {
					return err
				}
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}
