package xcontainer

import "fmt"

// MountType 是挂载类型。
type MountType string

// 已知的挂载类型。
const (
	MountBind    MountType = "bind"
	MountVolume  MountType = "volume"
	MountTmpfs   MountType = "tmpfs"
	MountImage   MountType = "image"
	MountNpipe   MountType = "npipe"
	MountCluster MountType = "cluster"
)

// ParseMountType 校验并转换挂载类型文本，未知类型返回 [ErrInvalidMountType]。
func ParseMountType(s string) (MountType, error) {
	switch t := MountType(s); t {
	case MountBind, MountVolume, MountTmpfs, MountImage, MountNpipe, MountCluster:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMountType, s)
	}
}

func (t MountType) String() string { return string(t) }

// StorageDriver 是卷或存储驱动名。
//
// 卷插件可以注册任意驱动名，因此不在已知列表中的名字同样被接受，
// 用 [StorageDriver.IsKnown] 区分。
type StorageDriver string

// 常见的驱动名。
const (
	DriverLocal         StorageDriver = "local"
	DriverOverlay2      StorageDriver = "overlay2"
	DriverFuseOverlayfs StorageDriver = "fuse-overlayfs"
	DriverBtrfs         StorageDriver = "btrfs"
	DriverZfs           StorageDriver = "zfs"
	DriverVfs           StorageDriver = "vfs"
)

// IsKnown 报告 d 是否为常见驱动名之一。
func (d StorageDriver) IsKnown() bool {
	switch d {
	case DriverLocal, DriverOverlay2, DriverFuseOverlayfs, DriverBtrfs, DriverZfs, DriverVfs:
		return true
	default:
		return false
	}
}

func (d StorageDriver) String() string { return string(d) }

// Mount 是容器的一个挂载点。Name 与 Driver 只对卷挂载有值。
type Mount struct {
	Type        MountType
	Name        string
	Source      string
	Destination string
	Driver      StorageDriver
	Mode        string
	RW          bool
	Propagation string
}

func decodeMount(m map[string]any, path string) (Mount, error) {
	d := newDecoder(m, path)
	var mt Mount
	if typ := d.str("Type"); d.err == nil {
		t, err := ParseMountType(typ)
		d.fail("Type", err)
		mt.Type = t
	}
	mt.Name = d.optStr("Name")
	mt.Source = d.optStr("Source")
	mt.Destination = d.str("Destination")
	mt.Driver = StorageDriver(d.optStr("Driver"))
	mt.Mode = d.optStr("Mode")
	mt.RW = d.optBoolean("RW")
	mt.Propagation = d.optStr("Propagation")
	if d.err != nil {
		return Mount{}, d.err
	}
	return mt, nil
}
