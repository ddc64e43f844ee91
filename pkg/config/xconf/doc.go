// Package xconf 加载引擎客户端配置，基于 koanf 实现。
//
// 配置文件（YAML 或 JSON）解码为强类型的 [Settings]：
//   - 未出现的键取 [Default] 的值
//   - endpoint 按 URI 解析，log.level 按级别名解析，时长接受 "500ms" 形式
//   - 未知键报错（[ErrUnmarshalFailed]），避免拼写错误被静默忽略
//   - 解码后执行 [Settings.Validate]（[ErrInvalidSettings]）
//
// # 支持的格式
//
//   - YAML：.yaml, .yml
//   - JSON：.json
//
// # 重载与监视
//
// [Loader.Reload] 失败时保留原配置。[Watch] 基于 fsnotify 监视配置文件
// 所在目录，内置防抖，兼容编辑器的原子写入。Stop 返回后不再有回调执行；
// 不要在回调中调用 Stop。
package xconf
