package xconf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xengine/pkg/engine/xcontainer"
	"github.com/omeyang/xengine/pkg/engine/xendpoint"
	"github.com/omeyang/xengine/pkg/observability/xlog"
)

const fullYAML = `
endpoint: tcp://10.0.0.5:2375
query:
  all: true
  limit: 20
  filters:
    label: ["app=web"]
decode:
  skip_invalid: true
retry:
  attempts: 5
  delay: 500ms
cache:
  size: 16
  ttl: 2s
breaker:
  failures: 0
  timeout: 1m
log:
  level: debug
  format: json
  file: /var/log/xnetctl.log
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	s := Default()
	require.NoError(t, s.Validate())
	assert.Equal(t, xendpoint.DefaultURI, s.Endpoint.String())
	assert.Equal(t, uint(3), s.Retry.Attempts)
	assert.Equal(t, xlog.LevelInfo, s.Log.Level)
	assert.False(t, s.Decode.SkipInvalid)
	assert.Zero(t, s.Cache.Size)
}

func TestLoadYAML(t *testing.T) {
	l, err := Load(writeFile(t, "engine.yaml", fullYAML))
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, l.Format())

	s := l.Settings()
	assert.Equal(t, "tcp://10.0.0.5:2375", s.Endpoint.String())
	assert.Equal(t, xcontainer.Query{
		All:     true,
		Limit:   20,
		Filters: map[string][]string{"label": {"app=web"}},
	}, s.Query)
	assert.True(t, s.Decode.SkipInvalid)
	assert.Equal(t, RetrySettings{Attempts: 5, Delay: 500 * time.Millisecond}, s.Retry)
	assert.Equal(t, CacheSettings{Size: 16, TTL: 2 * time.Second}, s.Cache)
	assert.Equal(t, BreakerSettings{Failures: 0, Timeout: time.Minute}, s.Breaker)
	assert.Equal(t, LogSettings{Level: xlog.LevelDebug, Format: "json", File: "/var/log/xnetctl.log"}, s.Log)

	ep, err := xendpoint.Resolve(s.Endpoint)
	require.NoError(t, err)
	assert.Equal(t, "tcp", ep.Network())
	assert.Equal(t, "10.0.0.5:2375", ep.Address())
}

func TestLoadJSONPartial(t *testing.T) {
	l, err := Load(writeFile(t, "engine.json", `{"retry": {"attempts": "7"}, "log": {"level": "warn"}}`))
	require.NoError(t, err)

	s := l.Settings()
	want := Default()
	want.Retry.Attempts = 7
	want.Log.Level = xlog.LevelWarn
	assert.Equal(t, want, s)
}

func TestLoadEmptyFile(t *testing.T) {
	l, err := Load(writeFile(t, "engine.yml", ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), l.Settings())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr error
	}{
		{"unknown extension", "engine.toml", "a = 1", ErrUnsupportedFormat},
		{"bad yaml", "engine.yaml", "retry: [", ErrParseFailed},
		{"unknown key", "engine.yaml", "retry:\n  attemps: 2\n", ErrUnmarshalFailed},
		{"bad duration", "engine.yaml", "retry:\n  delay: soon\n", ErrUnmarshalFailed},
		{"bad level", "engine.yaml", "log:\n  level: loud\n", ErrUnmarshalFailed},
		{"bad uri", "engine.yaml", "endpoint: '://nope'\n", ErrUnmarshalFailed},
		{"unsupported endpoint", "engine.yaml", "endpoint: ftp://host/\n", ErrInvalidSettings},
		{"negative limit", "engine.yaml", "query:\n  limit: -1\n", ErrInvalidSettings},
		{"zero attempts", "engine.yaml", "retry:\n  attempts: 0\n", ErrInvalidSettings},
		{"cache without ttl", "engine.yaml", "cache:\n  size: 4\n", ErrInvalidSettings},
		{"bad log format", "engine.yaml", "log:\n  format: xml\n", ErrInvalidSettings},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("bad level keeps cause", func(t *testing.T) {
		_, err := Load(writeFile(t, "engine.yaml", "log:\n  level: loud\n"))
		require.ErrorIs(t, err, ErrUnmarshalFailed)
		require.ErrorIs(t, err, xlog.ErrInvalidLevel)
	})
	t.Run("empty path", func(t *testing.T) {
		_, err := Load("")
		require.ErrorIs(t, err, ErrEmptyPath)
	})
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.ErrorIs(t, err, ErrLoadFailed)
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestValidateJoinsErrors(t *testing.T) {
	s := Default()
	s.Retry.Attempts = 0
	s.Query.Limit = -3
	err := s.Validate()
	require.ErrorIs(t, err, ErrInvalidSettings)
	require.ErrorIs(t, err, xcontainer.ErrInvalidLimit)
	assert.Contains(t, err.Error(), "retry.attempts")
}

func TestLoadBytes(t *testing.T) {
	l, err := LoadBytes([]byte(`{"endpoint": "unix:///run/engine.sock"}`), FormatJSON)
	require.NoError(t, err)
	assert.Empty(t, l.Path())
	assert.Equal(t, "unix:///run/engine.sock", l.Settings().Endpoint.String())
	require.ErrorIs(t, l.Reload(), ErrNotReloadable)

	_, err = LoadBytes([]byte("a: 1"), Format("toml"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestReloadKeepsSettingsOnFailure(t *testing.T) {
	path := writeFile(t, "engine.yaml", "retry:\n  attempts: 4\n")
	l, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, l.Path())

	require.NoError(t, os.WriteFile(path, []byte("retry:\n  attempts: 9\n"), 0o600))
	require.NoError(t, l.Reload())
	assert.Equal(t, uint(9), l.Settings().Retry.Attempts)

	require.NoError(t, os.WriteFile(path, []byte("retry:\n  attempts: 0\n"), 0o600))
	require.ErrorIs(t, l.Reload(), ErrInvalidSettings)
	assert.Equal(t, uint(9), l.Settings().Retry.Attempts)
}
