package xrun

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrSignal 表示因收到系统信号而终止，配合 errors.Is 使用。
	ErrSignal = errors.New("xrun: received signal")

	// ErrNilTask 表示传入的任务为 nil。
	ErrNilTask = errors.New("xrun: nil task")

	// ErrInvalidInterval 表示 [Ticker] 的间隔不是正数。
	ErrInvalidInterval = errors.New("xrun: interval must be positive")
)

// SignalError 记录触发退出的信号。errors.Is(err, ErrSignal) 为 true。
type SignalError struct {
	Signal os.Signal
}

func (e *SignalError) Error() string {
	return fmt.Sprintf("xrun: received signal %v", e.Signal)
}

// Unwrap 返回 [ErrSignal]。
func (e *SignalError) Unwrap() error {
	return ErrSignal
}
