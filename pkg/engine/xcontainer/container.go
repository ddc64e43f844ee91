package xcontainer

import (
	"context"
	"errors"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/omeyang/xengine/internal/fieldmap"
	"github.com/omeyang/xengine/pkg/observability/xlog"
)

// shortIDLen 是短 ID 的长度，与运行时命令行输出一致。
const shortIDLen = 12

// Labels 是容器标签。
type Labels map[string]string

// Get 返回标签值。
func (l Labels) Get(key string) (string, bool) {
	v, ok := l[key]
	return v, ok
}

// Keys 返回按字典序排列的标签键。
func (l Labels) Keys() []string {
	return slices.Sorted(maps.Keys(l))
}

// Size 是容器的磁盘占用，仅在查询指定 size 时由运行时返回。
type Size struct {
	// RW 是可写层大小（字节）。
	RW int64
	// RootFs 是全部层的总大小（字节）。
	RootFs int64
}

// Container 是容器列表中的一项。
type Container struct {
	ID              string
	Names           []string
	Image           string
	ImageID         string
	Command         string
	Created         time.Time
	Ports           []Port
	Labels          Labels
	State           State
	Status          string
	HostConfig      HostConfig
	Mounts          []Mount
	NetworkSettings NetworkSettings
	// Size 在运行时未返回大小信息时为 nil。
	Size *Size
}

// ShortID 返回 ID 的前 12 个字符。
func (c Container) ShortID() string {
	if len(c.ID) <= shortIDLen {
		return c.ID
	}
	return c.ID[:shortIDLen]
}

// Name 返回第一个名字并去掉开头的 "/"；没有名字时返回空串。
func (c Container) Name() string {
	if len(c.Names) == 0 {
		return ""
	}
	return strings.TrimPrefix(c.Names[0], "/")
}

// FromMap 将一个已解码的容器对象映射为 [Container]。
//
// 必需字段：Id、Image、Created、State、Status，以及各嵌套对象内的必需字段
// （Ports 的 PrivatePort/Type，Mounts 的 Type/Destination）。
// 其余字段缺失或为 null 时取零值；地址类字段的空串表示"未分配"。
// 失败时返回 *[FieldError]，其中记录出错字段的路径。
func FromMap(m map[string]any) (Container, error) {
	return decodeContainer(m, "")
}

func decodeContainer(m map[string]any, path string) (Container, error) {
	d := newDecoder(m, path)
	c := Container{
		ID:      d.str("Id"),
		Names:   d.strs("Names"),
		Image:   d.str("Image"),
		ImageID: d.optStr("ImageID"),
		Command: d.optStr("Command"),
		Labels:  Labels(d.strMap("Labels")),
		Status:  d.str("Status"),
	}
	if created := d.integer("Created"); d.err == nil {
		c.Created = time.Unix(created, 0).UTC()
	}
	if s := d.str("State"); d.err == nil {
		st, err := ParseState(s)
		d.fail("State", err)
		c.State = st
	}

	d.objects("Ports", func(obj map[string]any, path string) error {
		p, err := decodePort(obj, path)
		if err != nil {
			return err
		}
		c.Ports = append(c.Ports, p)
		return nil
	})
	d.objects("Mounts", func(obj map[string]any, path string) error {
		mt, err := decodeMount(obj, path)
		if err != nil {
			return err
		}
		c.Mounts = append(c.Mounts, mt)
		return nil
	})
	if obj, ok := d.object("HostConfig"); ok {
		hc, err := decodeHostConfig(obj, d.at("HostConfig"))
		d.fail("HostConfig", err)
		c.HostConfig = hc
	}
	if obj, ok := d.object("NetworkSettings"); ok {
		ns, err := decodeNetworkSettings(obj, d.at("NetworkSettings"))
		d.fail("NetworkSettings", err)
		c.NetworkSettings = ns
	}

	rw, hasRW := d.optInteger("SizeRw")
	rootFs, hasRootFs := d.optInteger("SizeRootFs")
	if hasRW || hasRootFs {
		c.Size = &Size{RW: rw, RootFs: rootFs}
	}

	if d.err != nil {
		return Container{}, d.err
	}
	return c, nil
}

// Option 配置 [FromList]。
type Option func(*listOptions)

type listOptions struct {
	skipInvalid bool
	logger      xlog.Logger
}

// WithSkipInvalid 让 [FromList] 跳过无法映射的条目并记录警告日志，而不是整体失败。
// logger 为 nil 时使用 [xlog.Default]。
func WithSkipInvalid(logger xlog.Logger) Option {
	return func(o *listOptions) {
		o.skipInvalid = true
		o.logger = logger
	}
}

// FromList 映射容器列表，每个元素必须是对象。
//
// 默认严格模式：遇到第一个无法映射的条目即返回 (nil, err)。
// 使用 [WithSkipInvalid] 时跳过无效条目，返回全部有效条目以及
// 用 errors.Join 合并的各条目错误（全部有效时 err 为 nil）。
// 错误路径以条目下标开头，如 "[3].Ports[0].Type"。
func FromList(ctx context.Context, list []any, opts ...Option) ([]Container, error) {
	var o listOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.skipInvalid && o.logger == nil {
		o.logger = xlog.Default()
	}

	out := make([]Container, 0, len(list))
	var errs []error
	for i, item := range list {
		path := indexKey("", i)
		c, err := decodeItem(item, path)
		if err == nil {
			out = append(out, c)
			continue
		}
		if !o.skipInvalid {
			return nil, err
		}
		o.logger.Warn(ctx, "skip invalid container entry",
			xlog.Component("xcontainer"),
			xlog.Field(path),
			xlog.ContainerID(idOf(item)),
			xlog.Err(err),
		)
		errs = append(errs, err)
	}
	return out, errors.Join(errs...)
}

func decodeItem(item any, path string) (Container, error) {
	obj, err := fieldmap.AsObject(item)
	if err != nil {
		return Container{}, &FieldError{Path: path, Err: err}
	}
	return decodeContainer(obj, path)
}

// idOf 尽力取出条目的 ID，用于日志。
func idOf(item any) string {
	obj, ok := item.(map[string]any)
	if !ok {
		return ""
	}
	id, _ := obj["Id"].(string)
	return id
}
