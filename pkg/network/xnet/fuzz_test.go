package xnet

import (
	"testing"
)

func FuzzParseAddr(f *testing.F) {
	f.Add("192.168.1.1")
	f.Add("0.0.0.0")
	f.Add("::1")
	f.Add("2001:db8::1")
	f.Add("::ffff:192.168.1.1")
	f.Add("fe80::1%eth0")
	f.Add("")

	f.Fuzz(func(t *testing.T, s string) {
		a, err := ParseAddr(s)
		if err != nil {
			if a.IsValid() {
				t.Fatalf("ParseAddr(%q) returned valid addr with error", s)
			}
			return
		}
		if len(a.Bytes()) != a.Version().ByteLen() {
			t.Fatalf("ParseAddr(%q): %d bytes for %s", s, len(a.Bytes()), a.Version())
		}
		again, err := ParseAddr(a.String())
		if err != nil {
			t.Fatalf("ParseAddr(%q) round trip failed: %v", a.String(), err)
		}
		if !again.Equal(a) {
			t.Fatalf("round trip mismatch: %s != %s", again, a)
		}
	})
}

func FuzzParseBlock(f *testing.F) {
	f.Add("192.168.1.0/24")
	f.Add("10.0.0.5/8")
	f.Add("2001:db8::/32")
	f.Add("::/0")
	f.Add("1.2.3.4/33")
	f.Add("1.2.3.4")
	f.Add("/")

	f.Fuzz(func(t *testing.T, s string) {
		b, err := ParseBlock(s)
		if err != nil {
			return
		}
		if b.Prefix() < 0 || b.Prefix() > b.Version().BitLen() {
			t.Fatalf("ParseBlock(%q): prefix %d out of range", s, b.Prefix())
		}
		for _, edge := range []Addr{b.Start(), b.End()} {
			ok, err := b.Contains(edge)
			if err != nil || !ok {
				t.Fatalf("ParseBlock(%q): edge %s not contained (err=%v)", s, edge, err)
			}
		}
		again, err := ParseBlock(b.String())
		if err != nil {
			t.Fatalf("ParseBlock(%q) round trip failed: %v", b.String(), err)
		}
		if !again.Equal(b) {
			t.Fatalf("round trip mismatch: %s != %s", again, b)
		}
	})
}
