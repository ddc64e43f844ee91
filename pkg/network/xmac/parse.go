package xmac

import "fmt"

// canonicalLen 是 "XX:XX:XX:XX:XX:XX" 的长度。
const canonicalLen = 17

// Parse 解析冒号分隔的 MAC 地址文本。
//
// 只接受恰好六组、每组两位十六进制数、以 ":" 分隔的形式，大小写不敏感：
// "00:1a:2b:3c:4d:5e"、"00:1A:2B:3C:4D:5E"。
// 不去除空白，不接受短线、点分或无分隔格式。
// 其他输入返回 [ErrInvalidFormat]，消息中包含原始文本。
func Parse(s string) (Addr, error) {
	if len(s) != canonicalLen {
		return Addr{}, fmt.Errorf("%w: %s", ErrInvalidFormat, s)
	}
	var b [6]byte
	for i := range 6 {
		offset := i * 3
		if i > 0 && s[offset-1] != ':' {
			return Addr{}, fmt.Errorf("%w: %s", ErrInvalidFormat, s)
		}
		v, ok := parseHexByte(s[offset], s[offset+1])
		if !ok {
			return Addr{}, fmt.Errorf("%w: %s", ErrInvalidFormat, s)
		}
		b[i] = v
	}
	return AddrFrom6(b), nil
}

// MustParse 类似 [Parse]，但解析失败时 panic。
// 仅用于包级变量初始化或测试。
func MustParse(s string) Addr {
	addr, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("xmac.MustParse(%q): %v", s, err))
	}
	return addr
}

// parseHexByte 解析两个十六进制字符为一个字节。
func parseHexByte(high, low byte) (byte, bool) {
	h := hexValue(high)
	l := hexValue(low)
	if h < 0 || l < 0 {
		return 0, false
	}
	return byte(h<<4 | l), true
}

// hexValue 返回十六进制字符的数值，无效字符返回 -1。
func hexValue(c byte) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'f':
		return int(c - 'a' + 10)
	case 'A' <= c && c <= 'F':
		return int(c - 'A' + 10)
	default:
		return -1
	}
}
