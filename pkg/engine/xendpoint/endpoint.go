package xendpoint

import (
	"fmt"
	"strings"

	"github.com/omeyang/xengine/pkg/network/xuri"
)

// DefaultURI 是容器运行时控制端点的默认地址。
const DefaultURI = "unix:///var/run/docker.sock"

// 传输网络名，取值与 [net.Dial] 的 network 参数一致。
const (
	NetworkUnix = "unix"
	NetworkTCP  = "tcp"
)

// socketHost 是经 unix 套接字访问时使用的 Host 头。
const socketHost = "docker"

// Endpoint 描述如何连接容器运行时 API：传输网络、拨号地址、
// 请求的基础 URL 以及 Host 头。Endpoint 只做选择，不建立任何连接。
type Endpoint struct {
	network string
	address string
	baseURL xuri.URI
	host    string
}

// Resolve 根据端点 URI 选择传输方式。
//
//   - unix:   network "unix"，address 为套接字路径，基础 URL "http://localhost"，Host 头 "docker"
//   - tcp、http: network "tcp"，address 为 host[:port]，基础 URL "http://" + authority + path
//   - https:  同上，基础 URL 使用 https
//
// 错误：unix 缺少路径返回 [ErrEmptySocketPath]；TCP 类缺少主机返回 [ErrEmptyHost]；
// 其他 scheme 返回 [ErrUnsupportedScheme]。
func Resolve(u xuri.URI) (Endpoint, error) {
	switch u.Scheme() {
	case "unix":
		if u.Path() == "" {
			return Endpoint{}, fmt.Errorf("%w: %s", ErrEmptySocketPath, u)
		}
		return Endpoint{
			network: NetworkUnix,
			address: u.Path(),
			baseURL: xuri.New(xuri.Components{Scheme: "http", Host: "localhost", HasAuthority: true}),
			host:    socketHost,
		}, nil
	case "tcp", "http", "https":
		if u.Host() == "" {
			return Endpoint{}, fmt.Errorf("%w: %s", ErrEmptyHost, u)
		}
		scheme := "http"
		if u.Scheme() == "https" {
			scheme = "https"
		}
		// 凭据不进入 BaseURL 与 Host 头。
		base := u.WithScheme(scheme).WithUserInfo("", "").WithQuery("").WithFragment("")
		return Endpoint{
			network: NetworkTCP,
			address: hostPort(u),
			baseURL: base,
			host:    hostPort(u),
		}, nil
	default:
		return Endpoint{}, fmt.Errorf("%w: %q in %s", ErrUnsupportedScheme, u.Scheme(), u)
	}
}

// Parse 解析端点文本并调用 [Resolve]。空串使用 [DefaultURI]。
func Parse(s string) (Endpoint, error) {
	if s == "" {
		s = DefaultURI
	}
	u, err := xuri.Parse(s)
	if err != nil {
		return Endpoint{}, fmt.Errorf("xendpoint: %w", err)
	}
	return Resolve(u)
}

// Default 返回 [DefaultURI] 对应的端点。
func Default() Endpoint {
	ep, err := Parse(DefaultURI)
	if err != nil {
		panic(fmt.Sprintf("xendpoint: default endpoint: %v", err))
	}
	return ep
}

func hostPort(u xuri.URI) string {
	if port, ok := u.Port(); ok {
		return fmt.Sprintf("%s:%d", u.Host(), port)
	}
	return u.Host()
}

// Network 返回传输网络名："unix" 或 "tcp"。
func (e Endpoint) Network() string { return e.network }

// Address 返回拨号地址：套接字路径或 host[:port]。
func (e Endpoint) Address() string { return e.address }

// BaseURL 返回请求的基础 URL。
func (e Endpoint) BaseURL() xuri.URI { return e.baseURL }

// Host 返回请求应携带的 Host 头。
func (e Endpoint) Host() string { return e.host }

// IsZero 报告 e 是否为零值。
func (e Endpoint) IsZero() bool { return e.network == "" }

// RequestURL 在基础 URL 的路径后拼接 path，并附加已编码的查询串。
func (e Endpoint) RequestURL(path, rawQuery string) xuri.URI {
	base := strings.TrimSuffix(e.baseURL.Path(), "/")
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return e.baseURL.WithPath(base + path).WithQuery(rawQuery)
}

// String 返回 "<network> <address>" 形式的描述。
func (e Endpoint) String() string {
	if e.IsZero() {
		return ""
	}
	return e.network + " " + e.address
}
