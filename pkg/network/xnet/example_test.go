package xnet_test

import (
	"errors"
	"fmt"

	"github.com/omeyang/xengine/pkg/network/xnet"
)

func ExampleParseAddr() {
	a, err := xnet.ParseAddr("2001:0db8:0000:0000:0000:0000:0000:0001")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(a.Version())
	fmt.Println(a)
	fmt.Println(len(a.Bytes()))
	// Output:
	// IPv6
	// 2001:db8::1
	// 16
}

func ExampleParseBlock() {
	b, err := xnet.ParseBlock("192.168.1.0/30")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	start, end := b.Range()
	fmt.Println(start, end)
	fmt.Println(b.Mask())
	// Output:
	// 192.168.1.0 192.168.1.3
	// [255 255 255 252]
}

func ExampleParseBlock_invalidPrefix() {
	_, err := xnet.ParseBlock("2001:db8::/129")
	fmt.Println(errors.Is(err, xnet.ErrInvalidPrefixLength))
	fmt.Println(err)
	// Output:
	// true
	// xnet: invalid prefix length for IPv6: 129
}

func ExampleBlock_Contains() {
	b := xnet.MustParseBlock("10.0.0.0/8")

	ok, _ := b.Contains(xnet.MustParseAddr("10.20.30.40"))
	fmt.Println(ok)

	_, err := b.Contains(xnet.MustParseAddr("::1"))
	fmt.Println(errors.Is(err, xnet.ErrVersionMismatch))
	// Output:
	// true
	// true
}

func ExampleSetOf() {
	set, err := xnet.SetOf(
		xnet.MustParseBlock("10.0.0.0/25"),
		xnet.MustParseBlock("10.0.0.128/25"),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, b := range xnet.Blocks(set) {
		fmt.Println(b)
	}
	// Output:
	// 10.0.0.0/24
}
