package xmac

import (
	"encoding"
	"fmt"
	"net"
	"testing"
)

// 编译期接口实现检查。
var (
	_ fmt.Stringer             = Addr{}
	_ encoding.TextMarshaler   = Addr{}
	_ encoding.TextUnmarshaler = (*Addr)(nil)
)

func TestAddr_IsValid(t *testing.T) {
	tests := []struct {
		name string
		addr Addr
		want bool
	}{
		{"parsed", MustParse("aa:bb:cc:dd:ee:ff"), true},
		{"zero value", Addr{}, false},
		{"all zero parsed", MustParse("00:00:00:00:00:00"), true},
		{"broadcast", Broadcast(), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.addr.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAddr_Equal(t *testing.T) {
	a := MustParse("00:1a:2b:3c:4d:5e")
	if !a.Equal(MustParse("00:1A:2B:3C:4D:5E")) {
		t.Error("case must not affect equality")
	}
	if a.Equal(MustParse("00:1a:2b:3c:4d:5f")) {
		t.Error("different addresses compare equal")
	}
	if (Addr{}).Equal(MustParse("00:00:00:00:00:00")) {
		t.Error("unset value equals all-zero address")
	}
}

func TestAddr_Compare(t *testing.T) {
	lo := MustParse("00:00:00:00:00:01")
	hi := MustParse("00:00:00:00:01:00")
	tests := []struct {
		a, b Addr
		want int
	}{
		{lo, hi, -1},
		{hi, lo, 1},
		{lo, lo, 0},
		{Addr{}, lo, -1},
		{lo, Addr{}, 1},
		{Addr{}, Addr{}, 0},
	}
	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Errorf("Compare(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestFromBytes(t *testing.T) {
	a, err := FromBytes([]byte{0x02, 0x42, 0xac, 0x11, 0x00, 0x02})
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if got := a.String(); got != "02:42:AC:11:00:02" {
		t.Errorf("String() = %q", got)
	}

	for _, n := range []int{0, 5, 7, 8} {
		if _, err := FromBytes(make([]byte, n)); !errorsIs(err, ErrInvalidLength) {
			t.Errorf("FromBytes(%d bytes) err = %v, want ErrInvalidLength", n, err)
		}
	}
}

func TestHardwareAddr(t *testing.T) {
	hw, _ := net.ParseMAC("00:1a:2b:3c:4d:5e")
	a, err := FromHardwareAddr(hw)
	if err != nil {
		t.Fatalf("FromHardwareAddr: %v", err)
	}
	out := a.HardwareAddr()
	if out.String() != "00:1a:2b:3c:4d:5e" {
		t.Errorf("HardwareAddr() = %v", out)
	}
	out[0] = 0xff
	if a.Bytes()[0] != 0x00 {
		t.Error("HardwareAddr must return a copy")
	}
	if (Addr{}).HardwareAddr() != nil {
		t.Error("unset addr must return nil HardwareAddr")
	}

	eui64, _ := net.ParseMAC("00:1a:2b:ff:fe:3c:4d:5e")
	if _, err := FromHardwareAddr(eui64); !errorsIs(err, ErrInvalidLength) {
		t.Errorf("EUI-64 err = %v, want ErrInvalidLength", err)
	}
}
