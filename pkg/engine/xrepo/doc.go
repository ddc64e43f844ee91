// Package xrepo 在外部容器来源之上提供带重试、熔断、缓存与可观测性的容器仓库。
//
// [Source] 抽象"向引擎请求 /containers/json 并解码 JSON"这一步，
// [Repository] 负责其余部分：
//
//   - 重试：retry-go，固定间隔，次数见 [WithRetry]；[Permanent] 错误与 ctx 结束立即停止
//   - 熔断：gobreaker，连续失败达到阈值后快速失败并返回 [ErrSourceUnavailable]
//   - 合并：singleflight 合并并发的相同查询
//   - 缓存：[xlru.Cache]（golang-lru expirable），按查询缓存映射结果，见 [WithCache]
//   - 映射：[xcontainer.FromList]，[WithSkipInvalid] 选择严格或宽松模式
//   - 观测：span "xrepo.containers"，计数器 xengine.containers.decoded、
//     xengine.containers.skipped、xengine.source.retries
//
// 用法：
//
//	repo, err := xrepo.New(src,
//		xrepo.WithRetry(3, 200*time.Millisecond),
//		xrepo.WithSkipInvalid(true),
//		xrepo.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	list, err := repo.Containers(ctx, xcontainer.Query{All: true})
package xrepo
