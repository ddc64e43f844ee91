package xnet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionString(t *testing.T) {
	assert.Equal(t, "IPv4", V4.String())
	assert.Equal(t, "IPv6", V6.String())
	assert.Equal(t, "unknown", V0.String())
	assert.Equal(t, "unknown", Version(99).String())
}

func TestVersionLengths(t *testing.T) {
	tests := []struct {
		v       Version
		bits    int
		bytes   int
		isValid bool
	}{
		{V4, 32, 4, true},
		{V6, 128, 16, true},
		{V0, 0, 0, false},
		{Version(5), 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.v.String(), func(t *testing.T) {
			assert.Equal(t, tt.bits, tt.v.BitLen())
			assert.Equal(t, tt.bytes, tt.v.ByteLen())
			assert.Equal(t, tt.v.BitLen()/8, tt.v.ByteLen())
			assert.Equal(t, tt.isValid, tt.v.IsValid())
		})
	}
}

func TestVersionForByteLen(t *testing.T) {
	v, ok := versionForByteLen(4)
	assert.True(t, ok)
	assert.Equal(t, V4, v)

	v, ok = versionForByteLen(16)
	assert.True(t, ok)
	assert.Equal(t, V6, v)

	for _, n := range []int{0, 1, 6, 8, 15, 17} {
		v, ok = versionForByteLen(n)
		assert.False(t, ok, "len %d", n)
		assert.Equal(t, V0, v)
	}
}
