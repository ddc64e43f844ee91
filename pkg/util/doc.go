// Package util 提供通用工具相关的子包。
//
// 子包列表：
//   - xlru: 泛型 LRU 缓存，带 TTL 过期与可关闭的后台清理
package util
