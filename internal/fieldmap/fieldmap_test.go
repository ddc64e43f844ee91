package fieldmap

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	m := map[string]any{"s": "v", "n": 1.0, "null": nil}

	s, err := String(m, "s")
	require.NoError(t, err)
	assert.Equal(t, "v", s)

	_, err = String(m, "missing")
	require.ErrorIs(t, err, ErrMissing)
	_, err = String(m, "null")
	require.ErrorIs(t, err, ErrMissing)
	_, err = String(m, "n")
	require.ErrorIs(t, err, ErrType)
	assert.Contains(t, err.Error(), "float64")

	s, err = OptString(m, "missing")
	require.NoError(t, err)
	assert.Empty(t, s)
	_, err = OptString(m, "n")
	require.ErrorIs(t, err, ErrType)
}

func TestAsInt(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    int64
		wantErr bool
	}{
		{"float64", 1700000000.0, 1700000000, false},
		{"negative float", -3.0, -3, false},
		{"fraction", 1.5, 0, true},
		{"too large", math.MaxFloat64, 0, true},
		{"json.Number", json.Number("42"), 42, false},
		{"json.Number float", json.Number("4.2"), 0, true},
		{"int", 7, 7, false},
		{"int64", int64(8), 8, false},
		{"uint16", uint16(9), 9, false},
		{"uint64 overflow", uint64(math.MaxUint64), 0, true},
		{"string", "10", 0, true},
		{"bool", true, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AsInt(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIntAndOptInt(t *testing.T) {
	m := map[string]any{"a": 3.0, "b": "x"}

	n, err := Int(m, "a")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	_, err = Int(m, "none")
	require.ErrorIs(t, err, ErrMissing)

	n, ok, err := OptInt(m, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(3), n)

	_, ok, err = OptInt(m, "none")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = OptInt(m, "b")
	require.ErrorIs(t, err, ErrType)
	assert.False(t, ok)
}

func TestOptBool(t *testing.T) {
	m := map[string]any{"t": true, "s": "true"}
	b, err := OptBool(m, "t")
	require.NoError(t, err)
	assert.True(t, b)

	b, err = OptBool(m, "none")
	require.NoError(t, err)
	assert.False(t, b)

	_, err = OptBool(m, "s")
	require.ErrorIs(t, err, ErrType)
}

func TestStrings(t *testing.T) {
	m := map[string]any{
		"any":   []any{"/web", "/db"},
		"typed": []string{"x"},
		"bad":   []any{"ok", 1.0},
		"obj":   map[string]any{},
	}

	got, err := Strings(m, "any")
	require.NoError(t, err)
	assert.Equal(t, []string{"/web", "/db"}, got)

	got, err = Strings(m, "typed")
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, got)

	got, err = Strings(m, "none")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = Strings(m, "bad")
	require.ErrorIs(t, err, ErrType)
	assert.Contains(t, err.Error(), "element 1")

	_, err = Strings(m, "obj")
	require.ErrorIs(t, err, ErrType)
}

func TestStringMap(t *testing.T) {
	m := map[string]any{
		"labels": map[string]any{"app": "web"},
		"typed":  map[string]string{"k": "v"},
		"bad":    map[string]any{"n": 1.0},
		"list":   []any{},
	}

	got, err := StringMap(m, "labels")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"app": "web"}, got)

	got, err = StringMap(m, "typed")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"k": "v"}, got)

	got, err = StringMap(m, "none")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = StringMap(m, "bad")
	require.ErrorIs(t, err, ErrType)
	assert.Contains(t, err.Error(), `key "n"`)

	_, err = StringMap(m, "list")
	require.ErrorIs(t, err, ErrType)
}

func TestObjectAndList(t *testing.T) {
	m := map[string]any{
		"obj":  map[string]any{"k": "v"},
		"list": []any{1.0},
		"str":  "x",
	}

	obj, ok, err := Object(m, "obj")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", obj["k"])

	_, ok, err = Object(m, "none")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = Object(m, "str")
	require.ErrorIs(t, err, ErrType)

	list, err := List(m, "list")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = List(m, "none")
	require.NoError(t, err)
	assert.Nil(t, list)

	_, err = List(m, "str")
	require.ErrorIs(t, err, ErrType)
}
