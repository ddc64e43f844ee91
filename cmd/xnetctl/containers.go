package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/xengine/pkg/config/xconf"
	"github.com/omeyang/xengine/pkg/engine/xcontainer"
	"github.com/omeyang/xengine/pkg/engine/xrepo"
)

// listFlags 是 containers 与 watch 共用的 flag。
func listFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "file",
			Aliases: []string{"f"},
			Usage:   "容器列表 JSON 文件（必需），\"-\" 表示标准输入",
		},
		&cli.BoolFlag{
			Name:    "all",
			Aliases: []string{"a"},
			Usage:   "包含已停止的容器，覆盖配置 query.all",
		},
		&cli.IntFlag{
			Name:    "limit",
			Aliases: []string{"n"},
			Usage:   "只显示最近创建的 N 个容器，覆盖配置 query.limit",
		},
		&cli.StringSliceFlag{
			Name:  "filter",
			Usage: "过滤条件 key=value，支持 status 与 label（可重复），覆盖配置 query.filters",
		},
		&cli.BoolFlag{
			Name:  "skip-invalid",
			Usage: "跳过无法映射的容器，覆盖配置 decode.skip_invalid",
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "只输出容器 ID",
		},
	}
}

func (a *app) containersCommand() *cli.Command {
	return &cli.Command{
		Name:         "containers",
		Aliases:      []string{"ps"},
		Usage:        "将容器列表 JSON（运行时 /containers/json 的响应）映射为容器记录",
		OnUsageError: onUsageError,
		Flags:        listFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path, err := requireFile(cmd)
			if err != nil {
				return err
			}
			s := a.current()
			query, err := queryFrom(s.Query, cmd)
			if err != nil {
				return err
			}
			repo, err := a.newRepository(s, fileSource(path, os.Stdin), skipInvalid(s, cmd))
			if err != nil {
				return err
			}
			defer repo.Close()

			list, err := repo.Containers(ctx, query)
			if err != nil {
				return err
			}
			return printContainers(a.stdout, list, cmd.Bool("quiet"))
		},
	}
}

func requireFile(cmd *cli.Command) (string, error) {
	path := cmd.String("file")
	if path == "" {
		return "", usagef("%s: --file is required", cmd.Name)
	}
	return path, nil
}

func skipInvalid(s xconf.Settings, cmd *cli.Command) bool {
	if cmd.IsSet("skip-invalid") {
		return cmd.Bool("skip-invalid")
	}
	return s.Decode.SkipInvalid
}

// queryFrom 以配置中的查询为底，应用命令行覆盖。
func queryFrom(base xcontainer.Query, cmd *cli.Command) (xcontainer.Query, error) {
	q := base
	if cmd.IsSet("all") {
		q.All = cmd.Bool("all")
	}
	if cmd.IsSet("limit") {
		q.Limit = int(cmd.Int("limit"))
	}
	if cmd.IsSet("filter") {
		q.Filters = map[string][]string{}
		for _, f := range cmd.StringSlice("filter") {
			key, value, ok := strings.Cut(f, "=")
			if !ok || key == "" {
				return q, usagef("--filter: expected key=value, got %q", f)
			}
			q.Filters[key] = append(q.Filters[key], value)
		}
	}
	if err := q.Validate(); err != nil {
		return q, usagef("%w", err)
	}
	return q, nil
}

// newRepository 按配置创建容器仓库，调用方负责 Close。
func (a *app) newRepository(s xconf.Settings, src xrepo.Source, skip bool) (*xrepo.Repository, error) {
	opts := []xrepo.Option{
		xrepo.WithRetry(s.Retry.Attempts, s.Retry.Delay),
		xrepo.WithSkipInvalid(skip),
		xrepo.WithBreaker(s.Breaker.Failures, s.Breaker.Timeout),
		xrepo.WithLogger(a.logger),
	}
	if s.Cache.Size > 0 {
		opts = append(opts, xrepo.WithCache(s.Cache.Size, s.Cache.TTL))
	}
	return xrepo.New(src, opts...)
}

// fileSource 从 JSON 文件读取容器列表，并按查询在本地筛选：
// 未指定 all 时只保留 running，按 status/label 过滤，最后截取 limit 个。
// 读取或解析失败不可通过重试恢复。
func fileSource(path string, stdin io.Reader) xrepo.Source {
	return xrepo.SourceFunc(func(_ context.Context, query xcontainer.Query) ([]any, error) {
		var (
			data []byte
			err  error
		)
		if path == "-" {
			data, err = io.ReadAll(stdin)
		} else {
			data, err = os.ReadFile(path)
		}
		if err != nil {
			return nil, xrepo.Permanent(err)
		}

		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		var raw []any
		if err := dec.Decode(&raw); err != nil {
			return nil, xrepo.Permanent(fmt.Errorf("parse %s: %w", path, err))
		}
		return filterRaw(raw, query)
	})
}

func filterRaw(raw []any, query xcontainer.Query) ([]any, error) {
	for key := range query.Filters {
		if key != "status" && key != "label" {
			return nil, xrepo.Permanent(fmt.Errorf("unsupported filter %q", key))
		}
	}
	out := make([]any, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			// 留给映射阶段报告类型错误。
			out = append(out, item)
			continue
		}
		state, _ := m["State"].(string)
		if !query.All && state != string(xcontainer.StateRunning) {
			continue
		}
		if st := query.Filters["status"]; len(st) > 0 && !slices.Contains(st, state) {
			continue
		}
		if !matchLabels(m["Labels"], query.Filters["label"]) {
			continue
		}
		out = append(out, item)
	}
	if query.Limit > 0 && len(out) > query.Limit {
		out = out[:query.Limit]
	}
	return out, nil
}

// matchLabels 要求每个条件都满足："key" 要求标签存在，"key=value" 要求值相等。
func matchLabels(labels any, conds []string) bool {
	m, _ := labels.(map[string]any)
	for _, c := range conds {
		key, want, hasValue := strings.Cut(c, "=")
		got, ok := m[key]
		if !ok {
			return false
		}
		if hasValue && got != want {
			return false
		}
	}
	return true
}

func printContainers(stdout io.Writer, list []xcontainer.Container, quiet bool) error {
	if quiet {
		for _, c := range list {
			fmt.Fprintln(stdout, c.ID)
		}
		return nil
	}
	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tIMAGE\tSTATE\tSTATUS\tADDRESSES")
	for _, c := range list {
		addrs := make([]string, 0, 2)
		for _, addr := range c.NetworkSettings.Addresses() {
			addrs = append(addrs, addr.String())
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			c.ShortID(), c.Name(), c.Image, c.State, c.Status, strings.Join(addrs, ","))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "\nTotal: %d containers\n", len(list))
	return nil
}
