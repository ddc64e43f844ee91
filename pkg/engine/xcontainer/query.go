package xcontainer

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// Query 是容器列表接口的查询参数。
//
// 零值列出运行中的容器，不限数量、不计算大小、不过滤。
// 字段带 koanf 标签，可直接从配置文件解码。
type Query struct {
	// All 为 true 时包含已停止的容器。
	All bool `koanf:"all"`
	// Limit 限制返回最近创建的 N 个容器，0 表示不限制。
	Limit int `koanf:"limit"`
	// Size 为 true 时返回 SizeRw 与 SizeRootFs。
	Size bool `koanf:"size"`
	// Filters 是过滤条件，如 {"status": ["running"], "label": ["app=web"]}。
	Filters map[string][]string `koanf:"filters"`
}

// Validate 检查参数取值。Limit 为负数时返回 [ErrInvalidLimit]。
func (q Query) Validate() error {
	if q.Limit < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidLimit, q.Limit)
	}
	return nil
}

// Values 返回查询参数。all 与 size 总是出现；limit 仅在大于 0 时出现；
// filters 非空时编码为运行时要求的 JSON 对象。
func (q Query) Values() (url.Values, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	v := url.Values{}
	v.Set("all", strconv.FormatBool(q.All))
	v.Set("size", strconv.FormatBool(q.Size))
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if len(q.Filters) > 0 {
		data, err := json.Marshal(q.Filters)
		if err != nil {
			return nil, fmt.Errorf("xcontainer: encode filters: %w", err)
		}
		v.Set("filters", string(data))
	}
	return v, nil
}

// Encode 返回按键排序的查询串（不含 "?"）。
func (q Query) Encode() (string, error) {
	v, err := q.Values()
	if err != nil {
		return "", err
	}
	return v.Encode(), nil
}
