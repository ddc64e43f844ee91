package xnet

import (
	"fmt"
	"net/netip"
)

// Addr 表示一个 IPv4 或 IPv6 地址。
//
// Addr 是不可变值类型，内部二进制形式长度恒等于 Version().ByteLen()：
// IPv4 为 4 字节，IPv6（包括 IPv4-mapped 形式 "::ffff:a.b.c.d"）为 16 字节。
// 零值表示无效地址。
//
// 底层使用 [netip.Addr]，可直接比较（==）和用作 map key。
type Addr struct {
	ip netip.Addr
}

// ParseAddr 解析 IP 地址文本。
//
// 接受点分十进制 IPv4，以及完整、压缩（"::"）和混合形式的 IPv6。
// 空串、无法解析的文本以及带 zone 的 IPv6（如 "fe80::1%eth0"）返回 [ErrInvalidFormat]。
func ParseAddr(s string) (Addr, error) {
	if s == "" {
		return Addr{}, fmt.Errorf("%w: %s", ErrInvalidFormat, s)
	}
	ip, err := netip.ParseAddr(s)
	if err != nil {
		return Addr{}, fmt.Errorf("%w: %s", ErrInvalidFormat, s)
	}
	if ip.Zone() != "" {
		return Addr{}, fmt.Errorf("%w: IPv6 zone is not supported: %s", ErrInvalidFormat, s)
	}
	return Addr{ip: ip}, nil
}

// MustParseAddr 类似 [ParseAddr]，但解析失败时 panic。
// 仅用于包级变量初始化或测试。
func MustParseAddr(s string) Addr {
	a, err := ParseAddr(s)
	if err != nil {
		panic(fmt.Sprintf("xnet.MustParseAddr(%q): %v", s, err))
	}
	return a
}

// AddrFrom4 从 4 字节数组创建 IPv4 地址。
func AddrFrom4(b [4]byte) Addr {
	return Addr{ip: netip.AddrFrom4(b)}
}

// AddrFrom16 从 16 字节数组创建 IPv6 地址。
// 结果始终是 IPv6，即使 b 是 IPv4-mapped 形式。
func AddrFrom16(b [16]byte) Addr {
	return Addr{ip: netip.AddrFrom16(b)}
}

// AddrFromSlice 从二进制形式创建地址，版本由长度决定（4 或 16）。
// 其他长度返回 [ErrInvalidVersion]。
func AddrFromSlice(b []byte) (Addr, error) {
	if _, ok := versionForByteLen(len(b)); !ok {
		return Addr{}, fmt.Errorf("%w: %d bytes", ErrInvalidVersion, len(b))
	}
	ip, _ := netip.AddrFromSlice(b)
	return Addr{ip: ip}, nil
}

// Version 返回地址版本。零值返回 [V0]。
func (a Addr) Version() Version {
	switch {
	case a.ip.Is4():
		return V4
	case a.ip.Is6():
		return V6
	default:
		return V0
	}
}

// IsValid 报告 a 是否为已初始化的地址。
func (a Addr) IsValid() bool {
	return a.ip.IsValid()
}

// Bytes 返回地址的二进制形式（网络字节序），长度为 Version().ByteLen()。
// 返回副本，修改不影响原值。零值返回 nil。
func (a Addr) Bytes() []byte {
	switch a.Version() {
	case V4:
		b := a.ip.As4()
		return b[:]
	case V6:
		b := a.ip.As16()
		return b[:]
	default:
		return nil
	}
}

// Equal 报告两个地址的二进制形式是否完全相同。
// IPv4 与其 IPv4-mapped IPv6 形式长度不同，视为不相等。
func (a Addr) Equal(b Addr) bool {
	return a.ip == b.ip
}

// Netip 返回对应的 [netip.Addr]。
func (a Addr) Netip() netip.Addr {
	return a.ip
}

// String 返回地址的规范文本形式，IPv6 使用最短压缩形式。
// 零值返回空字符串。
func (a Addr) String() string {
	if !a.ip.IsValid() {
		return ""
	}
	return a.ip.String()
}

// MarshalText 实现 [encoding.TextMarshaler]。零值输出空字节切片。
func (a Addr) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText 实现 [encoding.TextUnmarshaler]。空输入设置为零值。
func (a *Addr) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*a = Addr{}
		return nil
	}
	parsed, err := ParseAddr(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
