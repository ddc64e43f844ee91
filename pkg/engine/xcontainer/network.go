package xcontainer

import (
	"maps"
	"slices"

	"go4.org/netipx"

	"github.com/omeyang/xengine/internal/fieldmap"
	"github.com/omeyang/xengine/pkg/network/xmac"
	"github.com/omeyang/xengine/pkg/network/xnet"
)

// IPAMConfig 是容器在某网络上静态指定的地址。
type IPAMConfig struct {
	IPv4Address  xnet.Addr
	IPv6Address  xnet.Addr
	LinkLocalIPs []xnet.Addr
}

// NetworkSetting 是容器在单个网络上的端点信息。
//
// 地址类字段在容器未运行时由运行时置为空串，此时对应值为零值（IsValid 为 false）。
// IPAddress 与 GlobalIPv6Address 由地址和前缀长度组合而成，网络地址部分即容器自身地址。
type NetworkSetting struct {
	Name              string
	IPAMConfig        *IPAMConfig
	Links             []string
	MacAddress        xmac.Addr
	Aliases           []string
	DriverOpts        map[string]string
	GwPriority        int64
	NetworkID         string
	EndpointID        string
	Gateway           xnet.Addr
	IPAddress         xnet.Block
	IPv6Gateway       xnet.Addr
	GlobalIPv6Address xnet.Block
	DNSNames          []string
}

// Addresses 返回容器在此网络上已分配的地址（先 IPv4 后 IPv6）。
func (s NetworkSetting) Addresses() []xnet.Addr {
	var out []xnet.Addr
	for _, b := range []xnet.Block{s.IPAddress, s.GlobalIPv6Address} {
		if b.IsValid() {
			out = append(out, b.Network())
		}
	}
	return out
}

// Subnets 返回此网络上已分配地址所在的规范网段（主机位清零）。
func (s NetworkSetting) Subnets() []xnet.Block {
	var out []xnet.Block
	for _, b := range []xnet.Block{s.IPAddress, s.GlobalIPv6Address} {
		if b.IsValid() {
			out = append(out, b.Masked())
		}
	}
	return out
}

// NetworkSettings 是容器连接的全部网络，按网络名索引。
type NetworkSettings struct {
	Networks map[string]NetworkSetting
}

// Names 返回按字典序排列的网络名。
func (n NetworkSettings) Names() []string {
	return slices.Sorted(maps.Keys(n.Networks))
}

// Get 返回指定网络的端点信息。
func (n NetworkSettings) Get(name string) (NetworkSetting, bool) {
	s, ok := n.Networks[name]
	return s, ok
}

// Addresses 按网络名顺序返回容器的全部地址。
func (n NetworkSettings) Addresses() []xnet.Addr {
	var out []xnet.Addr
	for _, name := range n.Names() {
		out = append(out, n.Networks[name].Addresses()...)
	}
	return out
}

// SubnetSet 将容器连接的全部网段合并为一个 IPSet，可用于判断某地址
// 是否与容器处于同一二层网络。未分配地址的网络不计入。
func (n NetworkSettings) SubnetSet() (*netipx.IPSet, error) {
	var blocks []xnet.Block
	for _, name := range n.Names() {
		blocks = append(blocks, n.Networks[name].Subnets()...)
	}
	return xnet.SetOf(blocks...)
}

func decodeNetworkSettings(m map[string]any, path string) (NetworkSettings, error) {
	d := newDecoder(m, path)
	networks, ok := d.object("Networks")
	if d.err != nil {
		return NetworkSettings{}, d.err
	}
	ns := NetworkSettings{Networks: make(map[string]NetworkSetting, len(networks))}
	if !ok {
		return ns, nil
	}
	nd := newDecoder(networks, d.at("Networks"))
	// 按名字顺序解码，保证报告的首个错误稳定
	for _, name := range slices.Sorted(maps.Keys(networks)) {
		obj, err := fieldmap.AsObject(networks[name])
		if err != nil {
			nd.fail(name, err)
			break
		}
		setting, err := decodeNetworkSetting(name, obj, nd.at(name))
		if err != nil {
			nd.fail(name, err)
			break
		}
		ns.Networks[name] = setting
	}
	if nd.err != nil {
		return NetworkSettings{}, nd.err
	}
	return ns, nil
}

func decodeNetworkSetting(name string, m map[string]any, path string) (NetworkSetting, error) {
	d := newDecoder(m, path)
	s := NetworkSetting{Name: name}

	if ipam, ok := d.object("IPAMConfig"); ok {
		cfg, err := decodeIPAMConfig(ipam, d.at("IPAMConfig"))
		d.fail("IPAMConfig", err)
		s.IPAMConfig = cfg
	}
	s.Links = d.strs("Links")
	s.MacAddress = d.mac("MacAddress")
	s.Aliases = d.strs("Aliases")
	s.DriverOpts = d.strMap("DriverOpts")
	s.GwPriority, _ = d.optInteger("GwPriority")
	s.NetworkID = d.optStr("NetworkID")
	s.EndpointID = d.optStr("EndpointID")
	s.Gateway = d.addr("Gateway")
	s.IPAddress = d.block("IPAddress", "IPPrefixLen")
	s.IPv6Gateway = d.addr("IPv6Gateway")
	s.GlobalIPv6Address = d.block("GlobalIPv6Address", "GlobalIPv6PrefixLen")
	s.DNSNames = d.strs("DNSNames")

	if d.err != nil {
		return NetworkSetting{}, d.err
	}
	return s, nil
}

func decodeIPAMConfig(m map[string]any, path string) (*IPAMConfig, error) {
	d := newDecoder(m, path)
	cfg := &IPAMConfig{
		IPv4Address: d.addr("IPv4Address"),
		IPv6Address: d.addr("IPv6Address"),
	}
	for i, s := range d.strs("LinkLocalIPs") {
		a, err := xnet.ParseAddr(s)
		if err != nil {
			d.fail(indexKey("LinkLocalIPs", i), err)
			break
		}
		cfg.LinkLocalIPs = append(cfg.LinkLocalIPs, a)
	}
	if d.err != nil {
		return nil, d.err
	}
	return cfg, nil
}
