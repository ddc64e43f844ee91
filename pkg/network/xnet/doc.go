// Package xnet 提供 IP 地址与 CIDR 网段的值类型。
//
// xnet 基于 Go 标准库 [net/netip] 和社区库 [go4.org/netipx] 构建：
// [Addr] 包装 [netip.Addr]，[Block] 保存网络地址与前缀长度，
// 并可转换为 [netipx.IPRange] / [*netipx.IPSet] 做集合运算。
//
// # 核心功能
//
//   - version.go: 地址版本 [Version]（[V4] / [V6]），位长与字节长度
//   - addr.go: [Addr] 解析、二进制形式、规范文本与文本序列化
//   - block.go: [Block] CIDR 解析、起止地址、掩码、包含判断
//   - set.go: 多个网段合并为 [*netipx.IPSet]
//
// # 快速示例
//
//	b, _ := xnet.ParseBlock("192.168.1.0/24")
//	fmt.Println(b.End())                       // 192.168.1.255
//	ok, _ := b.Contains(xnet.MustParseAddr("192.168.1.77"))
//	fmt.Println(ok)                            // true
//
// # 设计决策
//
//   - 所有值类型不可变，零值表示无效；解析失败返回零值和 error，不存在部分状态
//   - [Block] 原样保存网络地址，不清零主机位："10.0.0.5/8" 的 Start 是 10.0.0.5。
//     需要规范网段时调用 [Block.Masked]
//   - IPv4-mapped IPv6（"::ffff:1.2.3.4"）保持 16 字节 [V6]，不自动解映射，
//     因此与对应的 IPv4 地址不相等
//   - 拒绝带 zone 的 IPv6 地址（"fe80::1%eth0"），二进制形式无法表达 zone
//   - 跨版本包含判断返回 [ErrVersionMismatch]，而不是 false
//
// # 错误处理
//
// 预定义错误变量支持 errors.Is 判断，错误消息携带出错的原始文本：
//
//	_, err := xnet.ParseBlock("10.0.0.0/33")
//	errors.Is(err, xnet.ErrInvalidPrefixLength) // true
//	fmt.Println(err) // xnet: invalid prefix length for IPv4: 33
package xnet
