package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/xengine/pkg/engine/xendpoint"
	"github.com/omeyang/xengine/pkg/network/xuri"
	"github.com/omeyang/xengine/pkg/observability/xlog"
)

// defaultCheckTimeout 是 TCP 端点可达性检查的默认超时。
const defaultCheckTimeout = 3 * time.Second

func (a *app) endpointCommand() *cli.Command {
	return &cli.Command{
		Name:         "endpoint",
		Usage:        "解析运行时端点，缺省使用配置中的端点",
		ArgsUsage:    "[uri]",
		OnUsageError: onUsageError,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "check",
				Usage: "检查端点是否可用（unix: 套接字可读写；tcp: 可建立连接）",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "TCP 检查超时",
				Value: defaultCheckTimeout,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			u := a.current().Endpoint
			if cmd.Args().Present() {
				parsed, err := xuri.Parse(cmd.Args().First())
				if err != nil {
					return err
				}
				u = parsed
			}
			ep, err := xendpoint.Resolve(u)
			if err != nil {
				return err
			}
			printEndpoint(a.stdout, ep)
			if !cmd.Bool("check") {
				return nil
			}
			if err := checkEndpoint(ctx, ep, cmd.Duration("timeout")); err != nil {
				a.logger.Warn(ctx, "endpoint check failed", xlog.Endpoint(ep.String()), xlog.Err(err))
				return err
			}
			fmt.Fprintln(a.stdout, "reachable")
			return nil
		},
	}
}

func printEndpoint(stdout io.Writer, ep xendpoint.Endpoint) {
	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "network\t%s\n", ep.Network())
	fmt.Fprintf(w, "address\t%s\n", ep.Address())
	fmt.Fprintf(w, "base\t%s\n", ep.BaseURL())
	fmt.Fprintf(w, "host\t%s\n", ep.Host())
	_ = w.Flush()
}

// checkEndpoint 检查端点可用性，只探测不发送请求。
func checkEndpoint(ctx context.Context, ep xendpoint.Endpoint, timeout time.Duration) error {
	if ep.Network() == xendpoint.NetworkUnix {
		return checkSocket(ep.Address())
	}
	d := net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, ep.Network(), ep.Address())
	if err != nil {
		return fmt.Errorf("dial %s: %w", ep.Address(), err)
	}
	return conn.Close()
}
