package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"
)

// usageError 表示参数错误，对应退出码 2。err 保留原始错误链。
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

// usagef 与 fmt.Errorf 相同，支持 %w。
func usagef(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

// exitError 表示命令已完成输出，只需设置非零退出码。
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// exitCode 将命令错误映射为退出码，并向 stderr 输出错误信息。
func exitCode(err error, stderr io.Writer) int {
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	var usageErr *usageError
	if errors.As(err, &usageErr) {
		fmt.Fprintf(stderr, "参数错误: %v\n", usageErr)
		return 2
	}
	var coder cli.ExitCoder
	if errors.As(err, &coder) {
		fmt.Fprintln(stderr, err)
		return coder.ExitCode()
	}
	fmt.Fprintf(stderr, "错误: %v\n", err)
	return 1
}
