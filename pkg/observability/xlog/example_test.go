package xlog_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/omeyang/xengine/pkg/observability/xlog"
)

func Example() {
	logger, cleanup, err := xlog.New().
		SetOutput(os.Stdout).
		SetFormat("json").
		SetReplaceAttr(func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		}).
		Build()
	if err != nil {
		panic(err)
	}
	defer cleanup()

	logger.Warn(context.Background(), "skip invalid container entry",
		xlog.Field("[3].Ports[0].Type"),
		xlog.ContainerID("8dfafdbc3a40"))
	// Output:
	// {"level":"WARN","msg":"skip invalid container entry","field":"[3].Ports[0].Type","container_id":"8dfafdbc3a40"}
}
