// Package xcontainer 将容器运行时列表接口的已解码 JSON 映射为类型化的值。
//
// 输入是任意 JSON 解码器产出的 map[string]any / []any，本包不做 JSON 解码。
// 地址类字段映射到 xnet、xmac 的值类型，枚举类字段（状态、协议、挂载类型、
// 网络模式）在映射时校验：
//
//	containers, err := xcontainer.FromList(ctx, decoded,
//	    xcontainer.WithSkipInvalid(logger))
//
// # 设计决策
//
//   - 容器停止后运行时把 IP、网关、MAC 等字段置为空串，映射为零值而不是错误；
//     非空但格式错误的值返回错误
//   - 所有映射错误都是 *[FieldError]，Path 指出出错字段，Err 可用 errors.Is 匹配
//     xnet.ErrInvalidFormat、xmac.ErrInvalidFormat、[ErrInvalidState] 等
//   - 默认严格模式，调用方可用 [WithSkipInvalid] 跳过单个坏条目
package xcontainer
