package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/xengine/pkg/network/xmac"
	"github.com/omeyang/xengine/pkg/network/xnet"
	"github.com/omeyang/xengine/pkg/network/xuri"
)

func (a *app) ipCommand() *cli.Command {
	return &cli.Command{
		Name:         "ip",
		Usage:        "解析 IP 地址，输出版本、二进制形式与地址范围",
		ArgsUsage:    "<addr>...",
		OnUsageError: onUsageError,
		Action: func(_ context.Context, cmd *cli.Command) error {
			args, err := requireArgs(cmd, 1)
			if err != nil {
				return err
			}
			return cmdIP(a.stdout, a.stderr, args)
		},
	}
}

func cmdIP(stdout, stderr io.Writer, args []string) error {
	fail := &failures{w: stderr}
	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	for _, s := range args {
		addr, err := xnet.ParseAddr(s)
		if err != nil {
			fail.add(s, err)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%x\t%s\n", addr, addr.Version(), addr.Bytes(), addrScope(addr))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return fail.err()
}

// addrScope 返回地址所属的特殊范围，普通地址为 "global"。
func addrScope(a xnet.Addr) string {
	ip := a.Netip()
	switch {
	case ip.IsUnspecified():
		return "unspecified"
	case ip.IsLoopback():
		return "loopback"
	case ip.IsLinkLocalUnicast():
		return "link-local"
	case ip.IsMulticast():
		return "multicast"
	case ip.IsPrivate():
		return "private"
	default:
		return "global"
	}
}

func (a *app) cidrCommand() *cli.Command {
	return &cli.Command{
		Name:         "cidr",
		Usage:        "解析网段，输出掩码与地址范围",
		ArgsUsage:    "<block>...",
		OnUsageError: onUsageError,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "contains",
				Usage: "检查地址是否落在每个网段内（可重复）",
			},
			&cli.BoolFlag{
				Name:  "merge",
				Usage: "输出所有网段合并后的最小网段集合",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			args, err := requireArgs(cmd, 1)
			if err != nil {
				return err
			}
			probes := make([]xnet.Addr, 0, len(cmd.StringSlice("contains")))
			for _, s := range cmd.StringSlice("contains") {
				addr, err := xnet.ParseAddr(s)
				if err != nil {
					return usagef("--contains: %w", err)
				}
				probes = append(probes, addr)
			}
			return cmdCIDR(a.stdout, a.stderr, args, probes, cmd.Bool("merge"))
		},
	}
}

func cmdCIDR(stdout, stderr io.Writer, args []string, probes []xnet.Addr, merge bool) error {
	fail := &failures{w: stderr}
	blocks := make([]xnet.Block, 0, len(args))
	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	for _, s := range args {
		b, err := xnet.ParseBlock(s)
		if err != nil {
			fail.add(s, err)
			continue
		}
		blocks = append(blocks, b)

		mask, _ := xnet.AddrFromSlice(b.Mask())
		start, end := b.Range()
		fmt.Fprintf(w, "%s\n", b)
		fmt.Fprintf(w, "  version\t%s\n", b.Version())
		fmt.Fprintf(w, "  network\t%s\n", b.Masked())
		fmt.Fprintf(w, "  mask\t%s\n", mask)
		fmt.Fprintf(w, "  range\t%s - %s\n", start, end)
		for _, p := range probes {
			ok, err := b.Contains(p)
			if err != nil {
				fmt.Fprintf(w, "  contains %s\t-\n", p)
				continue
			}
			fmt.Fprintf(w, "  contains %s\t%t\n", p, ok)
		}
	}
	if merge && len(blocks) > 0 {
		set, err := xnet.SetOf(blocks...)
		if err != nil {
			fail.add("merge", err)
		} else {
			fmt.Fprintln(w, "merged")
			for _, b := range xnet.Blocks(set) {
				fmt.Fprintf(w, "  %s\n", b)
			}
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return fail.err()
}

func (a *app) macCommand() *cli.Command {
	return &cli.Command{
		Name:         "mac",
		Usage:        "解析 MAC 地址，输出指定格式与地址类别",
		ArgsUsage:    "<addr>...",
		OnUsageError: onUsageError,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "输出格式 (COLON/colon/dash/bare)",
				Value:   xmac.FormatColonUpper.String(),
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			args, err := requireArgs(cmd, 1)
			if err != nil {
				return err
			}
			format, err := xmac.ParseFormat(cmd.String("format"))
			if err != nil {
				return usagef("--format: %w", err)
			}
			return cmdMAC(a.stdout, a.stderr, args, format)
		},
	}
}

func cmdMAC(stdout, stderr io.Writer, args []string, format xmac.Format) error {
	fail := &failures{w: stderr}
	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	for _, s := range args {
		addr, err := xmac.Parse(s)
		if err != nil {
			fail.add(s, err)
			continue
		}
		admin := "global"
		if addr.IsLocallyAdministered() {
			admin = "local"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", addr.FormatString(format), addr.OUI(), macKind(addr), admin)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return fail.err()
}

func macKind(a xmac.Addr) string {
	switch {
	case a.IsBroadcast():
		return "broadcast"
	case a.IsMulticast():
		return "multicast"
	default:
		return "unicast"
	}
}

func (a *app) uriCommand() *cli.Command {
	return &cli.Command{
		Name:         "uri",
		Usage:        "解析 URI 并列出各部分",
		ArgsUsage:    "<uri>...",
		OnUsageError: onUsageError,
		Action: func(_ context.Context, cmd *cli.Command) error {
			args, err := requireArgs(cmd, 1)
			if err != nil {
				return err
			}
			return cmdURI(a.stdout, a.stderr, args)
		},
	}
}

func cmdURI(stdout, stderr io.Writer, args []string) error {
	fail := &failures{w: stderr}
	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	for _, s := range args {
		u, err := xuri.Parse(s)
		if err != nil {
			fail.add(s, err)
			continue
		}
		fmt.Fprintf(w, "%s\n", u)
		fmt.Fprintf(w, "  scheme\t%s\n", u.Scheme())
		if u.User() != "" {
			fmt.Fprintf(w, "  userinfo\t%s\n", u.UserInfo())
		}
		if u.HasAuthority() {
			fmt.Fprintf(w, "  host\t%s\n", u.Host())
		}
		if port, ok := u.Port(); ok {
			fmt.Fprintf(w, "  port\t%d\n", port)
		}
		fmt.Fprintf(w, "  path\t%s\n", u.Path())
		if u.Query() != "" {
			fmt.Fprintf(w, "  query\t%s\n", u.Query())
		}
		if u.Fragment() != "" {
			fmt.Fprintf(w, "  fragment\t%s\n", u.Fragment())
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return fail.err()
}
