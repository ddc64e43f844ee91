package xmac

// broadcastBytes 是 FF:FF:FF:FF:FF:FF 的字节形式。
var broadcastBytes = [6]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}

// Broadcast 返回广播地址 FF:FF:FF:FF:FF:FF。
func Broadcast() Addr { return AddrFrom6(broadcastBytes) }

// IsUnicast 报告 a 是否为单播地址（第一字节 bit 0 为 0）。
// 未设置的地址返回 false。
func (a Addr) IsUnicast() bool {
	return a.set && a.bytes[0]&0x01 == 0
}

// IsMulticast 报告 a 是否为多播地址（第一字节 bit 0 为 1），广播地址也属于多播。
// 未设置的地址返回 false。
func (a Addr) IsMulticast() bool {
	return a.set && a.bytes[0]&0x01 == 1
}

// IsBroadcast 报告 a 是否为 FF:FF:FF:FF:FF:FF。
func (a Addr) IsBroadcast() bool {
	return a.set && a.bytes == broadcastBytes
}

// IsLocallyAdministered 报告 a 是否为本地管理地址（第一字节 bit 1 为 1）。
// 容器运行时为容器网卡生成的地址（如 02:42:...）属于此类。
func (a Addr) IsLocallyAdministered() bool {
	return a.set && a.bytes[0]&0x02 == 0x02
}

// IsZero 报告 a 是否为已设置的全零地址 00:00:00:00:00:00。
func (a Addr) IsZero() bool {
	return a.set && a.bytes == [6]byte{}
}

// IsUsable 报告 a 是否可作为网卡标识：已设置、单播、非全零。
func (a Addr) IsUsable() bool {
	return a.IsUnicast() && !a.IsZero()
}
