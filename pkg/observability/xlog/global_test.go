package xlog_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/omeyang/xengine/pkg/observability/xlog"
)

func TestGlobalLogger(t *testing.T) {
	t.Cleanup(xlog.ResetDefault)

	if xlog.Default() == nil {
		t.Fatal("Default() returned nil")
	}
	if xlog.Default() != xlog.Default() {
		t.Error("Default() should return the same instance")
	}

	var buf bytes.Buffer
	logger, _, err := xlog.New().SetOutput(&buf).SetLevel(xlog.LevelDebug).Build()
	if err != nil {
		t.Fatal(err)
	}
	xlog.SetDefault(logger)
	xlog.SetDefault(nil)

	ctx := context.Background()
	xlog.Debug(ctx, "d")
	xlog.Info(ctx, "i")
	xlog.Warn(ctx, "w")
	xlog.Error(ctx, "e")

	out := buf.String()
	for _, msg := range []string{"msg=d", "msg=i", "msg=w", "msg=e"} {
		if !strings.Contains(out, msg) {
			t.Errorf("output missing %q: %s", msg, out)
		}
	}

	xlog.ResetDefault()
	if xlog.Default() == logger {
		t.Error("ResetDefault should drop the custom logger")
	}
}
