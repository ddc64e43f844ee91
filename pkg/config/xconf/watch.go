package xconf

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce 默认防抖时间。
const DefaultDebounce = 100 * time.Millisecond

// WatchCallback 在每次重载后调用。err 非 nil 时 s 为重载前仍在生效的配置。
type WatchCallback func(s Settings, err error)

// WatchOption 监视器配置选项。
type WatchOption func(*watchOptions)

type watchOptions struct {
	debounce time.Duration
}

// WithDebounce 设置防抖时间，窗口内的多次变更只触发一次重载。
func WithDebounce(d time.Duration) WatchOption {
	return func(o *watchOptions) {
		if d > 0 {
			o.debounce = d
		}
	}
}

// Watcher 监视配置文件并自动重载。
type Watcher struct {
	loader   *Loader
	watcher  *fsnotify.Watcher
	callback WatchCallback
	debounce time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	mu       sync.Mutex
	started  bool
	stopped  bool
	timer    *time.Timer
	inflight sync.WaitGroup
}

// Watch 为 l 创建监视器，需调用 [Watcher.Start] 开始监视。
//
// 监视的是文件所在目录而不是文件本身：编辑器常以写临时文件再 rename
// 的方式保存，直接监视文件会在第一次保存后丢失后续事件。
//
//	w, err := xconf.Watch(loader, func(s xconf.Settings, err error) {
//	    if err != nil {
//	        xlog.Warn(ctx, "config reload failed", xlog.Err(err))
//	        return
//	    }
//	    logger.SetLevel(s.Log.Level)
//	})
//	if err != nil {
//	    return err
//	}
//	defer w.Stop()
//	w.Start()
func Watch(l *Loader, callback WatchCallback, opts ...WatchOption) (*Watcher, error) {
	if l == nil || l.isBytes {
		return nil, ErrNotReloadable
	}
	options := watchOptions{debounce: DefaultDebounce}
	for _, opt := range opts {
		opt(&options)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("xconf: failed to create watcher: %w", err)
	}
	dir := filepath.Dir(l.path)
	if err := fw.Add(dir); err != nil {
		return nil, errors.Join(
			fmt.Errorf("xconf: failed to watch directory %s: %w", dir, err),
			fw.Close(),
		)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		loader:   l,
		watcher:  fw,
		callback: callback,
		debounce: options.debounce,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}, nil
}

// Start 在后台启动监视循环，重复调用无效果。
func (w *Watcher) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started || w.stopped {
		return
	}
	w.started = true
	go w.run()
}

// Stop 停止监视，等待监视循环与进行中的回调结束。可重复调用。
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	started := w.started
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()

	w.cancel()
	err := w.watcher.Close()
	if started {
		<-w.done
	}
	w.inflight.Wait()
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	filename := filepath.Base(w.loader.path)
	for {
		select {
		case <-w.ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event, filename)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.notify(fmt.Errorf("xconf: watch error: %w", err))
		}
	}
}

// handleEvent 只响应目标文件的 Write/Create/Rename 事件。
func (w *Watcher) handleEvent(event fsnotify.Event, filename string) {
	if filepath.Base(event.Name) != filename {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.inflight.Add(1)
	w.mu.Unlock()
	defer w.inflight.Done()

	w.notify(w.loader.Reload())
}

func (w *Watcher) notify(err error) {
	if w.callback != nil {
		w.callback(w.loader.Settings(), err)
	}
}
