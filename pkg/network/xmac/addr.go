package xmac

import (
	"fmt"
	"net"
)

// Addr 表示 48 位 MAC 地址（EUI-48），由 OUI（前 3 字节）与设备标识（后 3 字节）组成。
//
// Addr 是不可变值类型：
//   - 零值表示"未设置"，IsValid() 返回 false
//   - 全零地址 00:00:00:00:00:00 是合法的已设置值，与零值不相等
//   - 可直接比较（==）和用作 map key，并发安全
//
// 使用 [Parse] 或 [MustParse] 从文本创建，[AddrFrom6] 从字节创建。
type Addr struct {
	bytes [6]byte
	// set 区分"未设置"与全零地址。
	set bool
}

// AddrFrom6 从 6 字节数组创建 MAC 地址。
func AddrFrom6(b [6]byte) Addr {
	return Addr{bytes: b, set: true}
}

// FromBytes 从字节切片创建 MAC 地址，长度必须为 6。
func FromBytes(b []byte) (Addr, error) {
	if len(b) != 6 {
		return Addr{}, fmt.Errorf("%w: expected 6 bytes, got %d", ErrInvalidLength, len(b))
	}
	return AddrFrom6([6]byte(b)), nil
}

// FromHardwareAddr 从 [net.HardwareAddr] 创建 MAC 地址。
// EUI-64 等非 6 字节地址返回 [ErrInvalidLength]。
func FromHardwareAddr(hw net.HardwareAddr) (Addr, error) {
	return FromBytes(hw)
}

// Bytes 返回 MAC 地址的 6 字节数组（副本）。
func (a Addr) Bytes() [6]byte {
	return a.bytes
}

// IsValid 报告 a 是否已设置。
func (a Addr) IsValid() bool {
	return a.set
}

// Equal 报告两个地址是否相同。
func (a Addr) Equal(b Addr) bool {
	return a == b
}

// Compare 按网络字节序比较两个地址，返回 -1、0 或 1。
// 未设置的地址排在所有已设置地址之前。
func (a Addr) Compare(b Addr) int {
	if a.set != b.set {
		if !a.set {
			return -1
		}
		return 1
	}
	for i := range 6 {
		if a.bytes[i] < b.bytes[i] {
			return -1
		}
		if a.bytes[i] > b.bytes[i] {
			return 1
		}
	}
	return 0
}

// HardwareAddr 返回 [net.HardwareAddr] 副本。未设置的地址返回 nil。
func (a Addr) HardwareAddr() net.HardwareAddr {
	if !a.set {
		return nil
	}
	hw := make(net.HardwareAddr, 6)
	copy(hw, a.bytes[:])
	return hw
}
