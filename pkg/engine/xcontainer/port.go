package xcontainer

import (
	"fmt"
	"strconv"

	"github.com/omeyang/xengine/pkg/network/xnet"
)

// TransportProtocol 是端口映射使用的传输层协议。
type TransportProtocol string

// 已知的传输层协议。
const (
	ProtocolTCP  TransportProtocol = "tcp"
	ProtocolUDP  TransportProtocol = "udp"
	ProtocolSCTP TransportProtocol = "sctp"
	ProtocolDCCP TransportProtocol = "dccp"
	ProtocolQUIC TransportProtocol = "quic"
)

// ParseTransportProtocol 校验并转换协议文本，未知协议返回 [ErrInvalidProtocol]。
func ParseTransportProtocol(s string) (TransportProtocol, error) {
	switch p := TransportProtocol(s); p {
	case ProtocolTCP, ProtocolUDP, ProtocolSCTP, ProtocolDCCP, ProtocolQUIC:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidProtocol, s)
	}
}

func (p TransportProtocol) String() string { return string(p) }

// Port 是一条端口映射。
//
// IP 与 PublicPort 只在端口发布到宿主机时存在；未发布时 IP 为零值、PublicPort 为 0。
type Port struct {
	IP          xnet.Addr
	PrivatePort uint16
	PublicPort  uint16
	Type        TransportProtocol
}

// IsPublished 报告端口是否发布到宿主机。
func (p Port) IsPublished() bool {
	return p.PublicPort != 0
}

// String 返回类似 "0.0.0.0:8080->80/tcp"、"[::]:8080->80/tcp" 或 "80/tcp" 的形式。
func (p Port) String() string {
	private := strconv.Itoa(int(p.PrivatePort)) + "/" + string(p.Type)
	if !p.IsPublished() {
		return private
	}
	public := strconv.Itoa(int(p.PublicPort))
	switch p.IP.Version() {
	case xnet.V4:
		public = p.IP.String() + ":" + public
	case xnet.V6:
		public = "[" + p.IP.String() + "]:" + public
	default:
	}
	return public + "->" + private
}

func decodePort(m map[string]any, path string) (Port, error) {
	d := newDecoder(m, path)
	p := Port{
		IP:          d.addr("IP"),
		PrivatePort: d.port("PrivatePort"),
		PublicPort:  d.optPort("PublicPort"),
	}
	if typ := d.str("Type"); d.err == nil {
		proto, err := ParseTransportProtocol(typ)
		d.fail("Type", err)
		p.Type = proto
	}
	if d.err != nil {
		return Port{}, d.err
	}
	return p, nil
}
