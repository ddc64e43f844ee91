// Package fieldmap 从 JSON 解码得到的 map[string]any 中读取类型化字段。
//
// 输入可来自任意 JSON 解码器：数字可能是 float64、[json.Number] 或 Go 整数类型，
// 数组是 []any（或已类型化的 []string），对象是 map[string]any。
// 缺失字段与 JSON null 视为同一种"不存在"。
package fieldmap

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

var (
	// ErrMissing 表示必需字段不存在或为 null。
	ErrMissing = errors.New("missing field")

	// ErrType 表示字段的动态类型与期望不符。
	ErrType = errors.New("unexpected field type")
)

// Lookup 返回 key 对应的值；不存在或为 nil 时 ok 为 false。
func Lookup(m map[string]any, key string) (any, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// String 读取必需的字符串字段。
func String(m map[string]any, key string) (string, error) {
	v, ok := Lookup(m, key)
	if !ok {
		return "", ErrMissing
	}
	return AsString(v)
}

// OptString 读取可选的字符串字段，不存在时返回空串。
func OptString(m map[string]any, key string) (string, error) {
	v, ok := Lookup(m, key)
	if !ok {
		return "", nil
	}
	return AsString(v)
}

// Int 读取必需的整数字段。
func Int(m map[string]any, key string) (int64, error) {
	v, ok := Lookup(m, key)
	if !ok {
		return 0, ErrMissing
	}
	return AsInt(v)
}

// OptInt 读取可选的整数字段，不存在时 ok 为 false。
func OptInt(m map[string]any, key string) (n int64, ok bool, err error) {
	v, present := Lookup(m, key)
	if !present {
		return 0, false, nil
	}
	n, err = AsInt(v)
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

// OptBool 读取可选的布尔字段，不存在时返回 false。
func OptBool(m map[string]any, key string) (bool, error) {
	v, ok := Lookup(m, key)
	if !ok {
		return false, nil
	}
	b, isBool := v.(bool)
	if !isBool {
		return false, typeError("bool", v)
	}
	return b, nil
}

// Strings 读取字符串数组，不存在时返回 nil。
func Strings(m map[string]any, key string) ([]string, error) {
	v, ok := Lookup(m, key)
	if !ok {
		return nil, nil
	}
	switch arr := v.(type) {
	case []string:
		return append([]string(nil), arr...), nil
	case []any:
		out := make([]string, len(arr))
		for i, item := range arr {
			s, isString := item.(string)
			if !isString {
				return nil, fmt.Errorf("element %d: %w", i, typeError("string", item))
			}
			out[i] = s
		}
		return out, nil
	default:
		return nil, typeError("array", v)
	}
}

// StringMap 读取值全为字符串的对象，不存在时返回 nil。
func StringMap(m map[string]any, key string) (map[string]string, error) {
	v, ok := Lookup(m, key)
	if !ok {
		return nil, nil
	}
	switch obj := v.(type) {
	case map[string]string:
		out := make(map[string]string, len(obj))
		for k, s := range obj {
			out[k] = s
		}
		return out, nil
	case map[string]any:
		out := make(map[string]string, len(obj))
		for k, item := range obj {
			s, isString := item.(string)
			if !isString {
				return nil, fmt.Errorf("key %q: %w", k, typeError("string", item))
			}
			out[k] = s
		}
		return out, nil
	default:
		return nil, typeError("object", v)
	}
}

// Object 读取对象字段，不存在时 ok 为 false。
func Object(m map[string]any, key string) (obj map[string]any, ok bool, err error) {
	v, present := Lookup(m, key)
	if !present {
		return nil, false, nil
	}
	obj, err = AsObject(v)
	if err != nil {
		return nil, false, err
	}
	return obj, true, nil
}

// List 读取数组字段，不存在时返回 nil。
func List(m map[string]any, key string) ([]any, error) {
	v, ok := Lookup(m, key)
	if !ok {
		return nil, nil
	}
	arr, isList := v.([]any)
	if !isList {
		return nil, typeError("array", v)
	}
	return arr, nil
}

// AsString 将值断言为字符串。
func AsString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", typeError("string", v)
	}
	return s, nil
}

// AsObject 将值断言为对象。
func AsObject(v any) (map[string]any, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, typeError("object", v)
	}
	return obj, nil
}

// AsInt 将 JSON 数字转换为 int64。
// float64 必须是整数值且在 int64 范围内；字符串形式的数字不被接受。
func AsInt(v any) (int64, error) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) || n < math.MinInt64 || n >= math.MaxInt64 {
			return 0, fmt.Errorf("%w: non-integer number %g", ErrType, n)
		}
		return int64(n), nil
	case json.Number:
		i, err := strconv.ParseInt(string(n), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: non-integer number %s", ErrType, n)
		}
		return i, nil
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("%w: number %d overflows int64", ErrType, n)
		}
		return int64(n), nil
	default:
		return 0, typeError("number", v)
	}
}

func typeError(want string, got any) error {
	return fmt.Errorf("%w: want %s, got %T", ErrType, want, got)
}
