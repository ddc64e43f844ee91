package xrepo

import (
	"context"

	"github.com/omeyang/xengine/pkg/engine/xcontainer"
)

//go:generate mockgen -source=source.go -destination=mock_source_test.go -package=xrepo

// Source 是容器列表的外部来源，通常是对引擎 HTTP 接口的调用加 JSON 解码。
//
// 返回值的每个元素应为 map[string]any（即一个容器对象）。
// 无法通过重试恢复的错误应使用 [Permanent] 包装。
type Source interface {
	ListContainers(ctx context.Context, query xcontainer.Query) ([]any, error)
}

// SourceFunc 将普通函数适配为 [Source]。
type SourceFunc func(ctx context.Context, query xcontainer.Query) ([]any, error)

// ListContainers 调用 f。
func (f SourceFunc) ListContainers(ctx context.Context, query xcontainer.Query) ([]any, error) {
	return f(ctx, query)
}
