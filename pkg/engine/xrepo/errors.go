package xrepo

import (
	"errors"
)

var (
	// ErrNilSource 表示 New 的 source 参数为 nil。
	ErrNilSource = errors.New("xrepo: source cannot be nil")

	// ErrSourceUnavailable 表示熔断器处于打开状态，本次未调用来源。
	ErrSourceUnavailable = errors.New("xrepo: container source unavailable")

	// ErrInvalidOption 表示配置取值非法。
	ErrInvalidOption = errors.New("xrepo: invalid option")

	// ErrLoadPanic 表示来源在共享加载中 panic。
	// singleflight 会在独立 goroutine 中重新抛出 panic，因此在加载内 recover 并转为此错误。
	ErrLoadPanic = errors.New("xrepo: container source panicked")
)

// permanentError 标记不应重试的来源错误。
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }

func (e *permanentError) Unwrap() error { return e.err }

// Permanent 标记 err 不可重试（如请求参数错误、鉴权失败）。
// 永久错误不计入熔断器失败次数。err 为 nil 时返回 nil。
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent 报告 err 链中是否有 [Permanent] 标记。
func IsPermanent(err error) bool {
	var pe *permanentError
	return errors.As(err, &pe)
}
