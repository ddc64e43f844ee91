package xnet

import (
	"fmt"

	"go4.org/netipx"
)

// SetOf 将多个网段合并为 [*netipx.IPSet]，重叠和相邻的范围自动合并。
// 每个网段按 [Block.IPRange] 计入，因此主机位非零的网段从其原样网络地址开始。
// 空参数返回空的 IPSet（非 nil）。
func SetOf(blocks ...Block) (*netipx.IPSet, error) {
	var b netipx.IPSetBuilder
	for i, blk := range blocks {
		if !blk.IsValid() {
			return nil, fmt.Errorf("%w: block [%d] is not set", ErrInvalidVersion, i)
		}
		b.AddRange(blk.IPRange())
	}
	set, err := b.IPSet()
	if err != nil {
		return nil, fmt.Errorf("xnet: build IPSet: %w", err)
	}
	return set, nil
}

// Blocks 将 IPSet 分解为最少数量的规范网段，按地址排序。
// set 为 nil 时返回 nil。
func Blocks(set *netipx.IPSet) []Block {
	if set == nil {
		return nil
	}
	prefixes := set.Prefixes()
	out := make([]Block, len(prefixes))
	for i, p := range prefixes {
		out[i] = Block{network: Addr{ip: p.Addr()}, prefix: p.Bits()}
	}
	return out
}

// SetContains 报告 addr 是否属于 set。nil set 或无效地址返回 false。
func SetContains(set *netipx.IPSet, addr Addr) bool {
	if set == nil || !addr.IsValid() {
		return false
	}
	return set.Contains(addr.Netip())
}
