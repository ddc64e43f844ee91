// Package xrun 基于 errgroup 管理长时间运行的任务及其协调退出。
//
// [Group] 中任一任务失败、调用 [Group.Cancel] 或收到终止信号时，所有任务
// 的 ctx 被取消；[Group.Wait] 返回第一个真实错误或显式的退出原因。
// [Run] 额外注册信号处理，收到信号时返回 [*SignalError]
// （errors.Is(err, [ErrSignal]) 为 true）。
//
// [Ticker] 把周期性工作包装为任务，如定时刷新容器列表。
package xrun
