package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/xengine/pkg/config/xconf"
	"github.com/omeyang/xengine/pkg/engine/xrepo"
	"github.com/omeyang/xengine/pkg/lifecycle/xrun"
	"github.com/omeyang/xengine/pkg/observability/xlog"
)

// defaultWatchInterval 是 watch 命令的默认刷新间隔。
const defaultWatchInterval = 5 * time.Second

func (a *app) watchCommand() *cli.Command {
	flags := append(listFlags(),
		&cli.DurationFlag{
			Name:    "interval",
			Aliases: []string{"i"},
			Usage:   "刷新间隔",
			Value:   defaultWatchInterval,
		},
		&cli.IntFlag{
			Name:  "count",
			Usage: "刷新 N 次后退出，0 表示直到收到信号",
		},
	)
	return &cli.Command{
		Name:         "watch",
		Usage:        "周期性映射容器列表；指定 --config 时配置文件变更自动生效",
		OnUsageError: onUsageError,
		Flags:        flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path, err := requireFile(cmd)
			if err != nil {
				return err
			}
			interval := cmd.Duration("interval")
			if interval <= 0 {
				return usagef("--interval must be positive")
			}
			count := int(cmd.Int("count"))
			if count < 0 {
				return usagef("--count must not be negative")
			}
			s := a.current()
			if _, err := queryFrom(s.Query, cmd); err != nil {
				return err
			}
			repo, err := a.newRepository(s, fileSource(path, os.Stdin), skipInvalid(s, cmd))
			if err != nil {
				return err
			}
			defer repo.Close()

			err = xrun.Run(ctx, func(g *xrun.Group) {
				g.Go("refresh", xrun.Ticker(interval, true, a.refresher(g, cmd, repo, count)))
				if a.loader != nil {
					a.watchConfig(g, repo)
				}
			}, xrun.WithLogger(a.logger), xrun.WithName("xnetctl"))
			if errors.Is(err, xrun.ErrSignal) {
				return nil
			}
			return err
		},
	}
}

// refresher 返回一次刷新：列出并输出容器，失败只记录日志；
// 完成 count 次后结束 watch。
func (a *app) refresher(g *xrun.Group, cmd *cli.Command, repo *xrepo.Repository, count int) func(context.Context) error {
	n := 0
	return func(ctx context.Context) error {
		n++
		if count > 0 && n >= count {
			defer g.Cancel(nil)
		}
		query, err := queryFrom(a.current().Query, cmd)
		if err != nil {
			a.logger.Warn(ctx, "invalid query after reload", xlog.Err(err))
			return nil
		}
		list, err := repo.Containers(ctx, query)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			a.logger.Warn(ctx, "list containers failed", xlog.Err(err), xlog.Count(int64(n)))
			return nil
		}
		if !cmd.Bool("quiet") {
			fmt.Fprintf(a.stdout, "--- %s\n", time.Now().Format(time.RFC3339))
		}
		return printContainers(a.stdout, list, cmd.Bool("quiet"))
	}
}

// watchConfig 监视配置文件：重载成功后应用新配置并清空查询缓存。
func (a *app) watchConfig(g *xrun.Group, repo *xrepo.Repository) {
	w, err := xconf.Watch(a.loader, func(s xconf.Settings, err error) {
		ctx := context.Background()
		if err != nil {
			a.logger.Warn(ctx, "config reload failed", xlog.Err(err))
			return
		}
		a.reload(s)
		repo.Invalidate()
		a.logger.Info(ctx, "config reloaded", slog.String("path", a.loader.Path()))
	})
	if err != nil {
		g.Cancel(err)
		return
	}
	w.Start()
	g.Go("config", func(ctx context.Context) error {
		<-ctx.Done()
		return w.Stop()
	})
}
