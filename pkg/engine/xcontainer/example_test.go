package xcontainer_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/omeyang/xengine/pkg/engine/xcontainer"
)

func ExampleFromList() {
	const payload = `[{
		"Id": "8dfafdbc3a40b1e1f0bd9e6f5f5b0a2b",
		"Names": ["/web"],
		"Image": "nginx:1.27",
		"Created": 1735689600,
		"State": "running",
		"Status": "Up 2 hours",
		"Ports": [{"IP": "0.0.0.0", "PrivatePort": 80, "PublicPort": 8080, "Type": "tcp"}],
		"NetworkSettings": {"Networks": {"bridge": {
			"MacAddress": "02:42:ac:11:00:02",
			"IPAddress": "172.17.0.2", "IPPrefixLen": 16
		}}}
	}]`

	var raw []any
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		panic(err)
	}
	list, err := xcontainer.FromList(context.Background(), raw)
	if err != nil {
		panic(err)
	}

	c := list[0]
	bridge, _ := c.NetworkSettings.Get("bridge")
	fmt.Println(c.Name(), c.ShortID(), c.State)
	fmt.Println(c.Ports[0])
	fmt.Println(bridge.IPAddress, bridge.MacAddress)
	// Output:
	// web 8dfafdbc3a40 running
	// 0.0.0.0:8080->80/tcp
	// 172.17.0.2/16 02:42:AC:11:00:02
}

func ExampleFieldError() {
	_, err := xcontainer.FromMap(map[string]any{
		"Id": "abc", "Image": "alpine", "Created": 0.0,
		"State": "running", "Status": "Up",
		"Ports": []any{map[string]any{"PrivatePort": 53.0, "Type": "icmp"}},
	})

	var fe *xcontainer.FieldError
	if errors.As(err, &fe) {
		fmt.Println(fe.Path)
	}
	fmt.Println(errors.Is(err, xcontainer.ErrInvalidProtocol))
	// Output:
	// Ports[0].Type
	// true
}

func ExampleQuery_Encode() {
	q := xcontainer.Query{All: true, Limit: 10}
	s, _ := q.Encode()
	fmt.Println(s)
	// Output: all=true&limit=10&size=false
}
