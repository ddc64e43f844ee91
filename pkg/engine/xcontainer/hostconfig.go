package xcontainer

import (
	"fmt"
	"strings"
)

// 网络模式的固定取值。
const (
	modeHost      = "host"
	modeNone      = "none"
	modeBridge    = "bridge"
	modeDefault   = "default"
	modeContainer = "container"
)

const containerPrefix = modeContainer + ":"

// NetworkMode 是容器的网络模式：host、none、bridge、default、
// "container:<id>"（共享其他容器的网络栈），或用户自定义网络名。
// 零值表示未知。
type NetworkMode struct {
	name        string
	containerID string
}

// ParseNetworkMode 解析网络模式文本。
//
// 空串、缺少 ID 的 "container:"，以及不符合网络命名规则
// （字母或数字开头，后续为字母、数字、"_"、"."、"-"）的文本返回 [ErrInvalidNetworkMode]。
func ParseNetworkMode(s string) (NetworkMode, error) {
	switch s {
	case modeHost, modeNone, modeBridge, modeDefault:
		return NetworkMode{name: s}, nil
	}
	if id, ok := strings.CutPrefix(s, containerPrefix); ok {
		if id == "" {
			return NetworkMode{}, fmt.Errorf("%w: container ID is required for %q mode", ErrInvalidNetworkMode, modeContainer)
		}
		return NetworkMode{name: modeContainer, containerID: id}, nil
	}
	if !isNetworkName(s) {
		return NetworkMode{}, fmt.Errorf("%w: %q", ErrInvalidNetworkMode, s)
	}
	return NetworkMode{name: s}, nil
}

func isNetworkName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		alnum := ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
		if alnum {
			continue
		}
		if i == 0 || (c != '_' && c != '.' && c != '-') {
			return false
		}
	}
	return true
}

// IsZero 报告 m 是否为零值。
func (m NetworkMode) IsZero() bool { return m.name == "" }

// IsHost 报告是否使用宿主机网络栈。
func (m NetworkMode) IsHost() bool { return m.name == modeHost }

// IsNone 报告是否禁用网络。
func (m NetworkMode) IsNone() bool { return m.name == modeNone }

// IsContainer 报告是否共享其他容器的网络栈。
func (m NetworkMode) IsContainer() bool { return m.name == modeContainer }

// IsUserDefined 报告是否为用户自定义网络。
func (m NetworkMode) IsUserDefined() bool {
	switch m.name {
	case "", modeHost, modeNone, modeBridge, modeDefault, modeContainer:
		return false
	default:
		return true
	}
}

// ContainerID 返回 "container:<id>" 模式下的容器 ID，其他模式返回空串。
func (m NetworkMode) ContainerID() string { return m.containerID }

// Name 返回模式名；container 模式返回 "container"。
func (m NetworkMode) Name() string { return m.name }

// String 返回与 [ParseNetworkMode] 互逆的文本。
func (m NetworkMode) String() string {
	if m.name == modeContainer {
		return containerPrefix + m.containerID
	}
	return m.name
}

// MarshalText 实现 [encoding.TextMarshaler]。
func (m NetworkMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// HostConfig 是列表接口返回的宿主机配置摘要。
type HostConfig struct {
	NetworkMode NetworkMode
	Annotations map[string]string
}

func decodeHostConfig(m map[string]any, path string) (HostConfig, error) {
	d := newDecoder(m, path)
	var hc HostConfig
	if s := d.optStr("NetworkMode"); s != "" {
		mode, err := ParseNetworkMode(s)
		d.fail("NetworkMode", err)
		hc.NetworkMode = mode
	}
	hc.Annotations = d.strMap("Annotations")
	if d.err != nil {
		return HostConfig{}, d.err
	}
	return hc, nil
}
