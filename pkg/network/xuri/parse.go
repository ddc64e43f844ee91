package xuri

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse 解析 URI 文本。
//
// 文本包含 "://" 时按带 authority 的形式解析：
//
//	scheme "://" [user [":"+ pass] "@"] [host] [":" port] [path] ["?" query] ["#" fragment]
//
// 否则按不透明形式解析（[URI.HasAuthority] 为 false）：
//
//	scheme ":" [path] ["?" query] ["#" fragment]
//
// 字符类：scheme、user、pass、host 为 1 个以上不含 ":/?#" 的字符（可含 "@"）；
// port 为十进制数字；path 为不含 "?#" 的字符；query、fragment 为 1 个以上不含 "?#" 的字符。
// 语法只锚定开头，无法被任何部分消费的尾部文本被忽略，例如 "/p?a?b" 的 query 是 "a"。
//
// 错误：
//   - 缺少 scheme：[ErrSchemeMissing]，消息包含原始文本
//   - 端口超出 uint16：[ErrInvalidPort]
func Parse(s string) (URI, error) {
	if strings.Contains(s, "://") {
		return parseHierarchical(s)
	}
	return parseOpaque(s)
}

// MustParse 类似 [Parse]，但解析失败时 panic。
// 仅用于包级变量初始化或测试。
func MustParse(s string) URI {
	u, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("xuri.MustParse(%q): %v", s, err))
	}
	return u
}

func parseHierarchical(s string) (URI, error) {
	scheme, i, ok := scanScheme(s)
	if !ok || !strings.HasPrefix(s[i:], "//") {
		return URI{}, fmt.Errorf("%w: %s", ErrSchemeMissing, s)
	}
	u := URI{scheme: scheme, hasAuthority: true}
	i += len("//")

	u.user, u.pass, i = scanUserInfo(s, i)

	end := spanSegment(s, i)
	u.host = s[i:end]
	i = end

	// ":" 后没有数字时端口不存在，":" 归入 path
	if i < len(s) && s[i] == ':' {
		d := i + 1
		for d < len(s) && isDigit(s[d]) {
			d++
		}
		if d > i+1 {
			port, err := strconv.ParseUint(s[i+1:d], 10, 16)
			if err != nil {
				return URI{}, fmt.Errorf("%w: %s in %s", ErrInvalidPort, s[i+1:d], s)
			}
			u.port, u.hasPort = uint16(port), true
			i = d
		}
	}

	u.scanTail(s, i)
	return u, nil
}

func parseOpaque(s string) (URI, error) {
	scheme, i, ok := scanScheme(s)
	if !ok {
		return URI{}, fmt.Errorf("%w: %s", ErrSchemeMissing, s)
	}
	u := URI{scheme: scheme}
	u.scanTail(s, i)
	return u, nil
}

// scanScheme 匹配开头的 scheme 段和紧随的 ":"，返回 ":" 之后的位置。
func scanScheme(s string) (scheme string, next int, ok bool) {
	end := spanSegment(s, 0)
	if end == 0 || end >= len(s) || s[end] != ':' {
		return "", 0, false
	}
	return s[:end], end + 1, true
}

// scanUserInfo 从 i 开始匹配可选的 userinfo，返回 "@" 之后的位置；
// 不存在 userinfo 时返回 i 本身。
//
// 匹配顺序与贪婪回溯一致：
//  1. user 取 i 之后最长的段，若其后是若干 ":"，pass 取下一段中最后一个 "@" 之前的部分
//  2. 否则 user 取第一段中最后一个 "@" 之前的部分（至少 1 个字符），pass 为空
func scanUserInfo(s string, i int) (user, pass string, next int) {
	seg1End := spanSegment(s, i)
	seg1 := s[i:seg1End]

	if seg1 != "" && seg1End < len(s) && s[seg1End] == ':' {
		j := seg1End
		for j < len(s) && s[j] == ':' {
			j++
		}
		seg2End := spanSegment(s, j)
		if at := strings.LastIndexByte(s[j:seg2End], '@'); at >= 0 {
			return seg1, s[j : j+at], j + at + 1
		}
	}

	if at := strings.LastIndexByte(seg1, '@'); at >= 1 {
		return seg1[:at], "", i + at + 1
	}
	return "", "", i
}

// scanTail 从 i 开始依次匹配 path、query、fragment。
func (u *URI) scanTail(s string, i int) {
	end := spanPath(s, i)
	u.path = s[i:end]
	i = end

	if i+1 < len(s) && s[i] == '?' && isPathChar(s[i+1]) {
		end = spanPath(s, i+1)
		u.query = s[i+1 : end]
		i = end
	}
	if i+1 < len(s) && s[i] == '#' && isPathChar(s[i+1]) {
		end = spanPath(s, i+1)
		u.fragment = s[i+1 : end]
	}
}

// spanSegment 返回从 i 开始、不含 ":/?#" 的最长字符段的结束位置。
func spanSegment(s string, i int) int {
	for i < len(s) && isSegmentChar(s[i]) {
		i++
	}
	return i
}

// spanPath 返回从 i 开始、不含 "?#" 的最长字符段的结束位置。
func spanPath(s string, i int) int {
	for i < len(s) && isPathChar(s[i]) {
		i++
	}
	return i
}

func isSegmentChar(c byte) bool {
	return c != ':' && c != '/' && c != '?' && c != '#'
}

func isPathChar(c byte) bool {
	return c != '?' && c != '#'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
