//go:build !unix

package main

import (
	"fmt"
	"os"
)

// checkSocket 在非 unix 平台上只检查路径存在且为套接字。
func checkSocket(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Mode()&os.ModeSocket == 0 {
		return fmt.Errorf("%s is not a socket", path)
	}
	return nil
}
