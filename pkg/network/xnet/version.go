package xnet

// Version 表示 IP 协议版本。
type Version uint8

const (
	// V0 表示无效或未知的 IP 版本（零值）。
	V0 Version = 0
	// V4 表示 IPv4。
	V4 Version = 4
	// V6 表示 IPv6。
	V6 Version = 6
)

// String 返回版本的字符串表示。
func (v Version) String() string {
	switch v {
	case V4:
		return "IPv4"
	case V6:
		return "IPv6"
	default:
		return "unknown"
	}
}

// BitLen 返回该版本地址的比特长度：IPv4 为 32，IPv6 为 128。
// 无效版本返回 0。
func (v Version) BitLen() int {
	switch v {
	case V4:
		return 32
	case V6:
		return 128
	default:
		return 0
	}
}

// ByteLen 返回该版本地址的字节长度：IPv4 为 4，IPv6 为 16。
// 恒有 ByteLen() == BitLen()/8。
func (v Version) ByteLen() int {
	switch v {
	case V4:
		return 4
	case V6:
		return 16
	default:
		return 0
	}
}

// IsValid 报告 v 是否为 V4 或 V6。
func (v Version) IsValid() bool {
	return v == V4 || v == V6
}

// versionForByteLen 根据二进制地址的字节长度推断版本。
func versionForByteLen(n int) (Version, bool) {
	switch n {
	case 4:
		return V4, true
	case 16:
		return V6, true
	default:
		return V0, false
	}
}
