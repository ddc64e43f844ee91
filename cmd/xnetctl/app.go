package main

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/xengine/pkg/config/xconf"
	"github.com/omeyang/xengine/pkg/network/xuri"
	"github.com/omeyang/xengine/pkg/observability/xlog"
)

// app 保存一次运行的共享状态，由根命令的 Before 填充。
type app struct {
	stdout  io.Writer
	stderr  io.Writer
	logger  xlog.LoggerWithLevel
	cleanup func() error

	// loader 仅在指定 --config 时非 nil。
	loader *xconf.Loader
	// pinned 记录被命令行覆盖的配置项，重载时保持不变。
	pinned struct{ endpoint, level, format bool }

	mu       sync.RWMutex
	settings xconf.Settings
}

// createApp 创建 CLI 应用，stdout/stderr 分别接收命令输出与日志、错误。
func createApp(stdout, stderr io.Writer) *cli.Command {
	a := &app{stdout: stdout, stderr: stderr, settings: xconf.Default()}
	return &cli.Command{
		Name:      "xnetctl",
		Usage:     "容器运行时客户端数据层工具",
		Version:   fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "配置文件路径（.yaml/.yml/.json）",
			},
			&cli.StringFlag{
				Name:  "endpoint",
				Usage: "运行时端点 URI，覆盖配置文件",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "日志级别 (debug/info/warn/error)，覆盖配置文件",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "日志格式 (text/json)，覆盖配置文件",
			},
		},
		Commands: []*cli.Command{
			a.ipCommand(),
			a.cidrCommand(),
			a.macCommand(),
			a.uriCommand(),
			a.endpointCommand(),
			a.containersCommand(),
			a.watchCommand(),
		},
		Before:       a.before,
		After:        a.after,
		OnUsageError: onUsageError,
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Args().Present() {
				return usagef("unknown command %q", cmd.Args().First())
			}
			return cli.ShowAppHelp(cmd)
		},
		// 设计决策: 禁止 urfave/cli 直接调用 os.Exit，退出码统一由 run() 映射。
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
}

// onUsageError 将 flag 解析错误转换为 usageError（退出码 2）。
func onUsageError(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return &usageError{err: err}
}

// before 加载配置、应用命令行覆盖并构建日志器。配置问题属于参数错误。
func (a *app) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if path := cmd.String("config"); path != "" {
		l, err := xconf.Load(path)
		if err != nil {
			return ctx, usagef("%w", err)
		}
		a.loader = l
		a.settings = l.Settings()
	}
	var err error
	if a.settings, err = a.applyOverrides(cmd, a.settings); err != nil {
		return ctx, err
	}
	if err := a.settings.Validate(); err != nil {
		return ctx, usagef("%w", err)
	}

	b := xlog.New().
		SetOutput(a.stderr).
		SetLevel(a.settings.Log.Level).
		SetFormat(a.settings.Log.Format)
	if a.settings.Log.File != "" {
		b.SetRotation(a.settings.Log.File)
	}
	logger, cleanup, err := b.Build()
	if err != nil {
		return ctx, usagef("log: %w", err)
	}
	a.logger, a.cleanup = logger, cleanup
	return ctx, nil
}

// applyOverrides 将全局 flag 覆盖到 s 上。
func (a *app) applyOverrides(cmd *cli.Command, s xconf.Settings) (xconf.Settings, error) {
	if v := cmd.String("endpoint"); v != "" {
		u, err := xuri.Parse(v)
		if err != nil {
			return s, usagef("--endpoint: %w", err)
		}
		s.Endpoint = u
		a.pinned.endpoint = true
	}
	if v := cmd.String("log-level"); v != "" {
		level, err := xlog.ParseLevel(v)
		if err != nil {
			return s, usagef("--log-level: %w", err)
		}
		s.Log.Level = level
		a.pinned.level = true
	}
	if v := cmd.String("log-format"); v != "" {
		s.Log.Format = v
		a.pinned.format = true
	}
	return s, nil
}

// current 返回当前生效的配置。
func (a *app) current() xconf.Settings {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.settings
}

// reload 应用重载后的配置。命令行覆盖过的项保持原值；
// 日志级别即时生效，日志格式与输出需重启。
func (a *app) reload(s xconf.Settings) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.pinned.endpoint {
		s.Endpoint = a.settings.Endpoint
	}
	if a.pinned.level {
		s.Log.Level = a.settings.Log.Level
	}
	if a.pinned.format {
		s.Log.Format = a.settings.Log.Format
	}
	a.settings = s
	a.logger.SetLevel(s.Log.Level)
}

func (a *app) after(context.Context, *cli.Command) error {
	if a.cleanup == nil {
		return nil
	}
	return a.cleanup()
}

// requireArgs 检查位置参数数量。
func requireArgs(cmd *cli.Command, n int) ([]string, error) {
	args := cmd.Args().Slice()
	if len(args) < n {
		return nil, usagef("%s: expected at least %d argument(s), usage: %s %s",
			cmd.Name, n, cmd.Name, cmd.ArgsUsage)
	}
	return args, nil
}

// failures 记录逐项处理中的失败；任一失败时命令以退出码 1 结束，
// 但其余项仍会输出。
type failures struct {
	w io.Writer
	n int
}

func (f *failures) add(item string, err error) {
	f.n++
	fmt.Fprintf(f.w, "%s: %v\n", item, err)
}

func (f *failures) err() error {
	if f.n == 0 {
		return nil
	}
	return &exitError{code: 1}
}
