// Package xmac 提供 MAC 地址值类型。
//
// MAC 地址由前 3 字节的 OUI（组织唯一标识，IEEE 分配给厂商）
// 和后 3 字节的设备标识组成：
//
//	addr, err := xmac.Parse("00:1a:2b:3c:4d:5e")
//	fmt.Println(addr.OUI())      // 00:1A:2B
//	fmt.Println(addr.DeviceID()) // 3C:4D:5E
//	fmt.Println(addr)            // 00:1A:2B:3C:4D:5E
//
// # 设计决策
//
//   - 使用 [6]byte 固定数组：值语义、可比较、可作 map key
//   - [Parse] 只接受六组冒号分隔的两位十六进制数（大小写不敏感），
//     与容器运行时 API 输出的形式一致；短线、点分、无分隔形式以及首尾空白均被拒绝
//   - 规范输出为大写冒号形式，[Addr.FormatString] 提供其他风格
//   - 零值表示"未设置"；全零地址 00:00:00:00:00:00 解析后是已设置的合法值
//   - 仅支持 EUI-48，EUI-64 返回 [ErrInvalidLength]
package xmac
