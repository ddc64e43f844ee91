package xcontainer

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/omeyang/xengine/internal/fieldmap"
	"github.com/omeyang/xengine/pkg/network/xmac"
	"github.com/omeyang/xengine/pkg/network/xnet"
)

// decoder 按路径读取一个对象的字段，记录第一个错误。
// 出错后后续读取均返回零值，调用方在最后统一检查 err。
type decoder struct {
	m    map[string]any
	path string
	err  error
}

func newDecoder(m map[string]any, path string) *decoder {
	return &decoder{m: m, path: path}
}

func joinPath(base, key string) string {
	switch {
	case base == "":
		return key
	case len(key) > 0 && key[0] == '[':
		return base + key
	default:
		return base + "." + key
	}
}

func indexKey(key string, i int) string {
	return key + "[" + strconv.Itoa(i) + "]"
}

func (d *decoder) at(key string) string {
	return joinPath(d.path, key)
}

// fail 记录 key 处的错误。已是 *FieldError 的错误保留其原路径。
func (d *decoder) fail(key string, err error) {
	if d.err != nil || err == nil {
		return
	}
	var fe *FieldError
	if errors.As(err, &fe) {
		d.err = err
		return
	}
	d.err = &FieldError{Path: d.at(key), Err: err}
}

func (d *decoder) str(key string) string {
	if d.err != nil {
		return ""
	}
	s, err := fieldmap.String(d.m, key)
	d.fail(key, err)
	return s
}

func (d *decoder) optStr(key string) string {
	if d.err != nil {
		return ""
	}
	s, err := fieldmap.OptString(d.m, key)
	d.fail(key, err)
	return s
}

func (d *decoder) integer(key string) int64 {
	if d.err != nil {
		return 0
	}
	n, err := fieldmap.Int(d.m, key)
	d.fail(key, err)
	return n
}

func (d *decoder) optInteger(key string) (int64, bool) {
	if d.err != nil {
		return 0, false
	}
	n, ok, err := fieldmap.OptInt(d.m, key)
	d.fail(key, err)
	return n, ok
}

func (d *decoder) optBoolean(key string) bool {
	if d.err != nil {
		return false
	}
	b, err := fieldmap.OptBool(d.m, key)
	d.fail(key, err)
	return b
}

func (d *decoder) strs(key string) []string {
	if d.err != nil {
		return nil
	}
	s, err := fieldmap.Strings(d.m, key)
	d.fail(key, err)
	return s
}

func (d *decoder) strMap(key string) map[string]string {
	if d.err != nil {
		return nil
	}
	m, err := fieldmap.StringMap(d.m, key)
	d.fail(key, err)
	return m
}

func (d *decoder) object(key string) (map[string]any, bool) {
	if d.err != nil {
		return nil, false
	}
	obj, ok, err := fieldmap.Object(d.m, key)
	d.fail(key, err)
	return obj, ok
}

// objects 读取对象数组，对每个元素调用 fn，fn 的 path 参数为元素路径。
func (d *decoder) objects(key string, fn func(obj map[string]any, path string) error) {
	if d.err != nil {
		return
	}
	list, err := fieldmap.List(d.m, key)
	if err != nil {
		d.fail(key, err)
		return
	}
	for i, item := range list {
		elem := indexKey(key, i)
		obj, err := fieldmap.AsObject(item)
		if err != nil {
			d.fail(elem, err)
			return
		}
		if err := fn(obj, d.at(elem)); err != nil {
			d.fail(elem, err)
			return
		}
	}
}

// port 读取 0-65535 范围内的必需整数。
func (d *decoder) port(key string) uint16 {
	n := d.integer(key)
	if d.err == nil && (n < 0 || n > 65535) {
		d.fail(key, fmt.Errorf("%w: %d", ErrInvalidPort, n))
		return 0
	}
	return uint16(n)
}

// optPort 读取可选端口，不存在时返回 0。
func (d *decoder) optPort(key string) uint16 {
	n, ok := d.optInteger(key)
	if !ok {
		return 0
	}
	if n < 0 || n > 65535 {
		d.fail(key, fmt.Errorf("%w: %d", ErrInvalidPort, n))
		return 0
	}
	return uint16(n)
}

// addr 读取可选 IP 地址。空串表示未分配，返回零值。
func (d *decoder) addr(key string) xnet.Addr {
	s := d.optStr(key)
	if s == "" {
		return xnet.Addr{}
	}
	a, err := xnet.ParseAddr(s)
	d.fail(key, err)
	return a
}

// mac 读取可选 MAC 地址。空串表示未分配，返回零值。
func (d *decoder) mac(key string) xmac.Addr {
	s := d.optStr(key)
	if s == "" {
		return xmac.Addr{}
	}
	a, err := xmac.Parse(s)
	d.fail(key, err)
	return a
}

// block 由地址字段和前缀长度字段组合出网段。地址为空串时返回零值。
func (d *decoder) block(addrKey, prefixKey string) xnet.Block {
	s := d.optStr(addrKey)
	if s == "" {
		return xnet.Block{}
	}
	prefix := d.integer(prefixKey)
	if d.err != nil {
		return xnet.Block{}
	}
	b, err := xnet.ParseBlock(s + "/" + strconv.FormatInt(prefix, 10))
	d.fail(addrKey, err)
	return b
}
