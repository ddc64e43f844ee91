package xnet

import (
	"fmt"
	"net/netip"
	"strconv"
	"strings"

	"go4.org/netipx"
)

// Block 表示一个 CIDR 网段：网络地址 + 前缀长度。
//
// 网络地址按解析时的原样保存，不会按前缀清零主机位：
// "192.168.1.77/24" 的 [Block.Start] 仍是 192.168.1.77。
// 需要规范网络地址时显式调用 [Block.Masked]。
//
// 零值表示无效网段。
type Block struct {
	network Addr
	prefix  int
}

// ParseBlock 解析 "<address>/<prefix>" 形式的 CIDR 文本。
//
// 错误：
//   - 空串，或 "/" 数量不为 1：[ErrMissingPrefixLength]
//   - 地址部分无法解析：[ErrInvalidFormat]
//   - 前缀非数字或超出 [0, Version.BitLen()]：[ErrInvalidPrefixLength]，
//     消息形如 "for IPv4: 33"
func ParseBlock(s string) (Block, error) {
	if s == "" {
		return Block{}, fmt.Errorf("%w: %s", ErrMissingPrefixLength, s)
	}
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return Block{}, fmt.Errorf("%w: %s", ErrMissingPrefixLength, s)
	}

	network, err := ParseAddr(parts[0])
	if err != nil {
		return Block{}, fmt.Errorf("%w: invalid CIDR format: %s", ErrInvalidFormat, s)
	}

	ver := network.Version()
	prefix, ok := parsePrefixLen(parts[1])
	if !ok {
		return Block{}, fmt.Errorf("%w for %s: %s", ErrInvalidPrefixLength, ver, parts[1])
	}
	if prefix < 0 || prefix > ver.BitLen() {
		return Block{}, fmt.Errorf("%w for %s: %d", ErrInvalidPrefixLength, ver, prefix)
	}
	return Block{network: network, prefix: prefix}, nil
}

// MustParseBlock 类似 [ParseBlock]，但解析失败时 panic。
// 仅用于包级变量初始化或测试。
func MustParseBlock(s string) Block {
	b, err := ParseBlock(s)
	if err != nil {
		panic(fmt.Sprintf("xnet.MustParseBlock(%q): %v", s, err))
	}
	return b
}

// BlockFrom 由已解析的网络地址和前缀长度构造网段。
// 网络地址原样保存，不清零主机位。
func BlockFrom(network Addr, prefix int) (Block, error) {
	ver := network.Version()
	if !ver.IsValid() {
		return Block{}, fmt.Errorf("%w: network address is not set", ErrInvalidFormat)
	}
	if prefix < 0 || prefix > ver.BitLen() {
		return Block{}, fmt.Errorf("%w for %s: %d", ErrInvalidPrefixLength, ver, prefix)
	}
	return Block{network: network, prefix: prefix}, nil
}

// parsePrefixLen 只接受 ASCII 数字串；符号、空白与小数一律拒绝，保证 String 可原样回写。
func parsePrefixLen(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		// 数字串溢出 int，必然超出任何版本的前缀上限
		return 0, false
	}
	return n, true
}

// IsValid 报告 b 是否为已初始化的网段。
func (b Block) IsValid() bool {
	return b.network.IsValid()
}

// Version 返回网段的地址版本。
func (b Block) Version() Version {
	return b.network.Version()
}

// Prefix 返回前缀长度。
func (b Block) Prefix() int {
	return b.prefix
}

// Network 返回解析时保存的网络地址（未清零主机位）。
func (b Block) Network() Addr {
	return b.network
}

// Start 返回网段起始地址，即原样保存的网络地址。
func (b Block) Start() Addr {
	return b.network
}

// End 返回网段结束地址：对每个字节 network[i] | ^mask[i]。
func (b Block) End() Addr {
	mask := b.Mask()
	end := b.network.Bytes()
	for i := range end {
		end[i] |= ^mask[i]
	}
	a, _ := AddrFromSlice(end)
	return a
}

// Range 返回 [Start, End]。
func (b Block) Range() (start, end Addr) {
	return b.Start(), b.End()
}

// Mask 返回子网掩码的二进制形式，长度为 Version().ByteLen()。
// 前缀 0 得到全零，前缀等于 BitLen 得到全 0xFF。
func (b Block) Mask() []byte {
	n := b.Version().ByteLen()
	mask := make([]byte, n)
	remaining := b.prefix
	for i := range n {
		if remaining < 8 {
			mask[i] = byte(0xFF) << (8 - remaining)
			break
		}
		mask[i] = 0xFF
		remaining -= 8
	}
	return mask
}

// Contains 报告 ip 是否落在网段内：每个字节满足
// network[i]&mask[i] == ip[i]&mask[i]。
// ip 与网段版本不同时返回 [ErrVersionMismatch]。
func (b Block) Contains(ip Addr) (bool, error) {
	if !b.IsValid() {
		return false, fmt.Errorf("%w: block is not set", ErrInvalidVersion)
	}
	if ip.Version() != b.Version() {
		return false, fmt.Errorf("%w: %s address %s, %s block %s",
			ErrVersionMismatch, ip.Version(), ip, b.Version(), b)
	}
	mask := b.Mask()
	network := b.network.Bytes()
	addr := ip.Bytes()
	for i := range network {
		if network[i]&mask[i] != addr[i]&mask[i] {
			return false, nil
		}
	}
	return true, nil
}

// Masked 返回主机位清零后的规范网段，如 "192.168.1.77/24" → "192.168.1.0/24"。
func (b Block) Masked() Block {
	if !b.IsValid() {
		return Block{}
	}
	mask := b.Mask()
	network := b.network.Bytes()
	for i := range network {
		network[i] &= mask[i]
	}
	a, _ := AddrFromSlice(network)
	return Block{network: a, prefix: b.prefix}
}

// Equal 报告两个网段的网络地址与前缀是否完全相同。
func (b Block) Equal(o Block) bool {
	return b.network.Equal(o.network) && b.prefix == o.prefix
}

// IPRange 返回 [Start, End] 对应的 [netipx.IPRange]。零值返回无效范围。
func (b Block) IPRange() netipx.IPRange {
	if !b.IsValid() {
		return netipx.IPRange{}
	}
	return netipx.IPRangeFrom(b.Start().Netip(), b.End().Netip())
}

// NetipPrefix 返回对应的 [netip.Prefix]，地址部分不清零。
func (b Block) NetipPrefix() netip.Prefix {
	if !b.IsValid() {
		return netip.Prefix{}
	}
	return netip.PrefixFrom(b.network.Netip(), b.prefix)
}

// String 返回 "<规范地址文本>/<前缀>"。零值返回空字符串。
func (b Block) String() string {
	if !b.IsValid() {
		return ""
	}
	return b.network.String() + "/" + strconv.Itoa(b.prefix)
}

// MarshalText 实现 [encoding.TextMarshaler]。
func (b Block) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText 实现 [encoding.TextUnmarshaler]。空输入设置为零值。
func (b *Block) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*b = Block{}
		return nil
	}
	parsed, err := ParseBlock(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
