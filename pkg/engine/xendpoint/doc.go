// Package xendpoint 根据端点 URI 选择访问容器运行时 API 的方式。
//
// 端点可以是 unix 套接字（"unix:///var/run/docker.sock"）或 TCP 地址
// （"tcp://10.0.0.1:2375"、"https://docker.example.com:2376"）。
// [Resolve] 只计算拨号参数与请求 URL，不打开套接字，
// 调用方据此配置自己的 HTTP 传输：
//
//	ep, err := xendpoint.Parse("unix:///var/run/docker.sock")
//	ep.Network()  // unix
//	ep.Address()  // /var/run/docker.sock
//	ep.RequestURL("/containers/json", "all=1") // http://localhost/containers/json?all=1
package xendpoint
