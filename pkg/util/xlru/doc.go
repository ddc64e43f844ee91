// Package xlru 基于 hashicorp/golang-lru/v2/expirable 的泛型 TTL LRU 缓存。
//
// 与直接使用 expirable.LRU 的区别在于 [Cache.Close]：它会停止 TTL 清理 goroutine，
// 使持有缓存的组件可以干净地退出（goleak 检查下不报泄漏）。
//
//	cache, err := xlru.New[string, []xcontainer.Container](xlru.Config{Size: 64, TTL: 5 * time.Second})
//	if err != nil {
//		return err
//	}
//	defer cache.Close()
package xlru
