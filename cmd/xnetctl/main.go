// xnetctl 是容器运行时客户端数据层的命令行工具：解析并检查 IP 地址、
// 网段、MAC 地址、URI 与运行时端点，并将容器列表 JSON 映射为容器记录。
//
// 用法:
//
//	xnetctl [全局选项] <命令> [命令参数]
//
// 全局选项:
//
//	-c, --config     配置文件路径（YAML/JSON），缺省使用内置默认值
//	    --endpoint   覆盖配置中的运行时端点
//	    --log-level  覆盖配置中的日志级别 (debug/info/warn/error)
//	    --log-format 覆盖配置中的日志格式 (text/json)
//
// 命令:
//
//	ip <addr>...              解析 IP 地址
//	cidr <block>...           解析网段，--contains 检查地址，--merge 合并网段
//	mac <addr>...             解析 MAC 地址，--format 指定输出格式
//	uri <uri>...              解析 URI 并列出各部分
//	endpoint [uri]            解析运行时端点，--check 检查可达性
//	containers --file <path>  映射容器列表 JSON
//
// 退出码:
//
//	0: 命令执行成功
//	1: 命令执行失败（输入无法解析、端点不可达、映射失败等）
//	2: 参数错误（缺少参数、未知命令、未知 flag、配置文件无效等）
//
// 示例:
//
//	xnetctl cidr --contains 192.168.1.77 --contains 10.0.0.1 192.168.1.0/24
//	xnetctl mac --format dash 02:42:ac:11:00:02
//	xnetctl endpoint --check
//	xnetctl -c engine.yaml containers --all --file ps.json
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// 版本信息（可通过 -ldflags 注入）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	setupSignalHandler(cancel)

	os.Exit(run(ctx, os.Args, os.Stdout, os.Stderr))
}

// run 执行命令并返回退出码。
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	app := createApp(stdout, stderr)
	if err := app.Run(ctx, args); err != nil {
		return exitCode(err, stderr)
	}
	return 0
}

// setupSignalHandler 第一次信号取消 ctx，第二次信号强制退出。
func setupSignalHandler(cancel context.CancelFunc) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()

		<-sigCh
		signal.Stop(sigCh)
		fmt.Fprintln(os.Stderr, "xnetctl: interrupted")
		os.Exit(130)
	}()
}
